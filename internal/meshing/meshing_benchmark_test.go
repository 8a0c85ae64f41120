package meshing

import (
	"testing"

	"voxelcore/internal/world"
)

func BenchmarkBuildMeshFullSurface(b *testing.B) {
	var target ChunkSnapshot
	for x := int32(0); x < world.ChunkSize; x++ {
		for z := int32(0); z < world.ChunkSize; z++ {
			target.Blocks[localIndex(x, world.ChunkSize-1, z)] = world.Block{Type: world.BlockTypeGrass}
		}
	}
	atlas := registryStub{}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = BuildMesh(target, Neighbors{}, atlas)
	}
}
