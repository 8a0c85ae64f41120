package world

import "fmt"

// Chunk is a 32x32x32 cube of blocks, the unit of storage, streaming, and
// meshing. Index layout is y*1024 + z*32 + x so horizontal scans stay
// cache-friendly.
type Chunk struct {
	Coord  ChunkCoord
	Blocks [ChunkVolume]Block
	dirty  bool
}

// NewChunk returns an empty (all-air) chunk at coord, clean.
func NewChunk(coord ChunkCoord) *Chunk {
	return &Chunk{Coord: coord}
}

func blockIndex(lx, ly, lz int32) int {
	if lx < 0 || lx >= ChunkSize || ly < 0 || ly >= ChunkSize || lz < 0 || lz >= ChunkSize {
		panic(fmt.Sprintf("world: local coordinate (%d,%d,%d) out of [0,%d) bounds", lx, ly, lz, ChunkSize))
	}
	return int(ly)*ChunkSize*ChunkSize + int(lz)*ChunkSize + int(lx)
}

// GetBlock returns the block at local coordinates. Out-of-range coordinates
// are a programming error and panic.
func (c *Chunk) GetBlock(lx, ly, lz int32) Block {
	return c.Blocks[blockIndex(lx, ly, lz)]
}

// SetBlock writes the block at local coordinates and marks the chunk dirty.
// Out-of-range coordinates are a programming error and panic.
func (c *Chunk) SetBlock(lx, ly, lz int32, b Block) {
	c.Blocks[blockIndex(lx, ly, lz)] = b
	c.dirty = true
}

// IsDirty reports whether the chunk has unsaved mutations.
func (c *Chunk) IsDirty() bool {
	return c.dirty
}

// MarkDirty forces the dirty flag, used to force an initial save of a
// freshly generated chunk.
func (c *Chunk) MarkDirty() {
	c.dirty = true
}

// SetClean clears the dirty flag. Only the persistence layer should call
// this, and only after a successful write.
func (c *Chunk) SetClean() {
	c.dirty = false
}

// ActiveBlocks returns the world-space positions of every non-air block in
// the chunk. The meshing path does not use it.
func (c *Chunk) ActiveBlocks() []WorldPos {
	wx, wy, wz := c.Coord.WorldOrigin()
	var out []WorldPos
	for ly := int32(0); ly < ChunkSize; ly++ {
		for lz := int32(0); lz < ChunkSize; lz++ {
			for lx := int32(0); lx < ChunkSize; lx++ {
				if c.GetBlock(lx, ly, lz).IsSolid() {
					out = append(out, WorldPos{X: wx + lx, Y: wy + ly, Z: wz + lz})
				}
			}
		}
	}
	return out
}

// WorldPos is an integer block position in world space.
type WorldPos struct {
	X, Y, Z int32
}
