package world

import "testing"

func TestChunkSetGetBlock(t *testing.T) {
	c := NewChunk(ChunkCoord{})
	if c.IsDirty() {
		t.Fatalf("new chunk should be clean")
	}

	c.SetBlock(1, 2, 3, Block{Type: BlockTypeStone})
	if !c.IsDirty() {
		t.Fatalf("chunk should be dirty after SetBlock")
	}
	got := c.GetBlock(1, 2, 3)
	if got.Type != BlockTypeStone {
		t.Fatalf("got %v, want stone", got.Type)
	}

	c.SetClean()
	if c.IsDirty() {
		t.Fatalf("chunk should be clean after SetClean")
	}
}

func TestChunkOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on out-of-range coordinate")
		}
	}()
	c := NewChunk(ChunkCoord{})
	c.GetBlock(-1, 0, 0)
}

func TestChunkIndexLayout(t *testing.T) {
	// index = y*1024 + z*32 + x
	got := blockIndex(3, 2, 1)
	want := 2*ChunkSize*ChunkSize + 1*ChunkSize + 3
	if got != want {
		t.Fatalf("blockIndex(3,2,1) = %d, want %d", got, want)
	}
}

func TestActiveBlocks(t *testing.T) {
	c := NewChunk(ChunkCoord{X: 1, Y: 0, Z: -1})
	c.SetBlock(0, 0, 0, Block{Type: BlockTypeStone})
	c.SetBlock(5, 5, 5, Block{Type: BlockTypeDirt})

	active := c.ActiveBlocks()
	if len(active) != 2 {
		t.Fatalf("got %d active blocks, want 2", len(active))
	}
	wx, wy, wz := c.Coord.WorldOrigin()
	found := false
	for _, p := range active {
		if p.X == wx && p.Y == wy && p.Z == wz {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected active block at chunk origin %d,%d,%d", wx, wy, wz)
	}
}
