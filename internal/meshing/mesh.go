// Package meshing turns a chunk, plus up to six immediate neighbors, into a
// greedy-merged triangle mesh.
package meshing

import "voxelcore/internal/world"

// Vertex is one corner of an emitted quad. The shader remaps tex_coord into
// atlas space via atlas_offset + fract(tex_coord) * atlas_size so a merged
// quad tiles its atlas cell once per block unit of size.
type Vertex struct {
	Position    [3]float32
	Color       [3]float32
	Normal      [3]float32
	TexCoord    [2]float32
	AtlasOffset [2]float32
	AtlasSize   [2]float32
}

// Mesh is the output of BuildMesh: a flat vertex list and the triangle
// indices into it.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// AtlasLookup is the only polymorphism the mesher requires: a capability
// that maps a resolved block type and face normal to an atlas UV rectangle.
// Texture atlas generation itself lives outside the core.
type AtlasLookup interface {
	UVFor(bt world.BlockType, normal [3]int32) (uMin, vMin, uMax, vMax float32)
}

// ChunkSnapshot is an immutable copy of a chunk's coordinate and block
// array. The mesher never touches a live *world.Chunk: callers copy under
// the world lock and hand the mesher snapshots, so mesh workers are
// trivially thread-safe and the world can evict chunks without
// coordinating with in-flight mesh work.
type ChunkSnapshot struct {
	Coord  world.ChunkCoord
	Blocks [world.ChunkVolume]world.Block
}

// SnapshotOf copies c's coordinate and block data.
func SnapshotOf(c *world.Chunk) ChunkSnapshot {
	return ChunkSnapshot{Coord: c.Coord, Blocks: c.Blocks}
}

// Neighbors holds up to six optional neighbor snapshots in the fixed order
// -X, +X, -Y, +Y, -Z, +Z, matching world.World.Neighbors.
type Neighbors [6]*ChunkSnapshot

func localIndex(lx, ly, lz int32) int {
	return int(ly)*world.ChunkSize*world.ChunkSize + int(lz)*world.ChunkSize + int(lx)
}

// sampleBlock reads the block at a possibly out-of-range local coordinate,
// consulting the appropriate neighbor snapshot when a single axis steps
// outside [0, ChunkSize). An absent neighbor is treated as all-air.
func sampleBlock(target *ChunkSnapshot, neighbors Neighbors, lx, ly, lz int32) world.Block {
	switch {
	case lx < 0:
		return sampleNeighbor(neighbors[0], lx+world.ChunkSize, ly, lz)
	case lx >= world.ChunkSize:
		return sampleNeighbor(neighbors[1], lx-world.ChunkSize, ly, lz)
	case ly < 0:
		return sampleNeighbor(neighbors[2], lx, ly+world.ChunkSize, lz)
	case ly >= world.ChunkSize:
		return sampleNeighbor(neighbors[3], lx, ly-world.ChunkSize, lz)
	case lz < 0:
		return sampleNeighbor(neighbors[4], lx, ly, lz+world.ChunkSize)
	case lz >= world.ChunkSize:
		return sampleNeighbor(neighbors[5], lx, ly, lz-world.ChunkSize)
	default:
		return target.Blocks[localIndex(lx, ly, lz)]
	}
}

func sampleNeighbor(nb *ChunkSnapshot, lx, ly, lz int32) world.Block {
	if nb == nil {
		return world.Block{Type: world.BlockTypeAir}
	}
	return nb.Blocks[localIndex(lx, ly, lz)]
}

// resolveFaceType applies the Grass per-face substitution: GrassTop for the
// +Y face, Dirt for the -Y face, GrassSide for the four horizontal faces.
// Every other block type uses a single atlas entry for all six faces.
func resolveFaceType(bt world.BlockType, axis int, dir int32) world.BlockType {
	if bt != world.BlockTypeGrass {
		return bt
	}
	switch {
	case axis == 1 && dir > 0:
		return world.BlockTypeGrassTop
	case axis == 1 && dir < 0:
		return world.BlockTypeDirt
	default:
		return world.BlockTypeGrassSide
	}
}

// faceColor returns the per-face vertex color: white, except the +Y face of
// Grass which is tinted to colorize the otherwise-grayscale grass-top
// texture.
func faceColor(bt world.BlockType, axis int, dir int32) [3]float32 {
	if bt == world.BlockTypeGrass && axis == 1 && dir > 0 {
		return [3]float32{0.4, 0.8, 0.3}
	}
	return [3]float32{1, 1, 1}
}
