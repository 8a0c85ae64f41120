package client

import (
	"voxelcore/internal/meshing"
	"voxelcore/internal/world"
)

// GPUSink is the rendering backend's upload surface. The core never touches
// a graphics API directly; it hands finished meshes to whatever implements
// this interface (e.g. an OpenGL or Vulkan backend living outside this
// module) and trusts it to manage buffer lifetime per chunk coordinate.
type GPUSink interface {
	UploadChunk(coord world.ChunkCoord, mesh meshing.Mesh)
	EvictChunk(coord world.ChunkCoord)
	DrawFrame(view, proj [16]float32, lightPos, viewPos [3]float32)
}

// NoopGPUSink discards everything. Useful for headless testing of the net
// and mesh pipeline without a real rendering backend.
type NoopGPUSink struct{}

func (NoopGPUSink) UploadChunk(world.ChunkCoord, meshing.Mesh)       {}
func (NoopGPUSink) EvictChunk(world.ChunkCoord)                      {}
func (NoopGPUSink) DrawFrame([16]float32, [16]float32, [3]float32, [3]float32) {}
