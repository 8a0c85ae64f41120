package world

// Generator produces a freshly populated Chunk for a coordinate that is
// neither in memory nor on disk. The default rule is intentionally trivial:
// Grass at world-Y 0, Stone below, Air above.
type Generator func(coord ChunkCoord) *Chunk

// DefaultGenerator implements the placeholder terrain rule: for each block
// in the chunk at world-Y wy, Grass if wy == 0, Stone if wy < 0, Air
// otherwise.
func DefaultGenerator(coord ChunkCoord) *Chunk {
	c := NewChunk(coord)
	_, wy0, _ := coord.WorldOrigin()
	for ly := int32(0); ly < ChunkSize; ly++ {
		wy := wy0 + ly
		var bt BlockType
		switch {
		case wy == 0:
			bt = BlockTypeGrass
		case wy < 0:
			bt = BlockTypeStone
		default:
			bt = BlockTypeAir
		}
		if bt == BlockTypeAir {
			continue
		}
		for lz := int32(0); lz < ChunkSize; lz++ {
			for lx := int32(0); lx < ChunkSize; lx++ {
				c.Blocks[blockIndex(lx, ly, lz)] = Block{Type: bt}
			}
		}
	}
	return c
}
