package world

import "testing"

func TestWorldLoadAndGetSetBlock(t *testing.T) {
	w := New(nil, nil)
	coord := ChunkCoord{X: 0, Y: 0, Z: 0}
	w.LoadChunk("", coord)

	if !w.SetBlockAt(5, 5, 5, Block{Type: BlockTypeStone}) {
		t.Fatalf("expected SetBlockAt to succeed on a loaded chunk")
	}
	got, ok := w.GetBlockAt(5, 5, 5)
	if !ok || got.Type != BlockTypeStone {
		t.Fatalf("got (%v,%v), want (stone,true)", got, ok)
	}
}

func TestWorldSetBlockUnloadedChunkFails(t *testing.T) {
	w := New(nil, nil)
	if w.SetBlockAt(1000, 0, 0, Block{Type: BlockTypeStone}) {
		t.Fatalf("expected SetBlockAt to fail on an unloaded chunk")
	}
}

func TestWorldSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	w := New(nil, nil)
	coord := ChunkCoord{X: 2, Y: 0, Z: -1}
	c := w.LoadChunk(dir, coord)
	c.SetBlock(0, 0, 0, Block{Type: BlockTypeSand})

	written := w.SaveWorld(dir)
	if written != 1 {
		t.Fatalf("got %d chunks written, want 1", written)
	}
	if c.IsDirty() {
		t.Fatalf("chunk should be clean after a successful save")
	}

	w2 := New(nil, nil)
	loaded := w2.LoadWorld(dir)
	if loaded != 1 {
		t.Fatalf("got %d chunks loaded, want 1", loaded)
	}
	got, ok := w2.GetChunk(coord)
	if !ok || got.GetBlock(0, 0, 0).Type != BlockTypeSand {
		t.Fatalf("loaded chunk missing expected block")
	}
}

func TestChunksInRadiusIsADisc(t *testing.T) {
	center := ChunkCoord{}
	coords := ChunksInRadius(center, 2)
	for _, c := range coords {
		dx, dz := c.X-center.X, c.Z-center.Z
		if dx*dx+dz*dz > 4 {
			t.Fatalf("coordinate %v outside radius 2 disc", c)
		}
	}
	// corner at (2,2) should be excluded (distance sqrt(8) > 2), but (2,0) included.
	hasCorner, hasAxis := false, false
	for _, c := range coords {
		if c.X-center.X == 2 && c.Z-center.Z == 2 {
			hasCorner = true
		}
		if c.X-center.X == 2 && c.Z-center.Z == 0 {
			hasAxis = true
		}
	}
	if hasCorner {
		t.Fatalf("disc should exclude the square corner")
	}
	if !hasAxis {
		t.Fatalf("disc should include the axis-aligned edge")
	}
}

func TestUnloadDistant(t *testing.T) {
	w := New(nil, nil)
	near := ChunkCoord{X: 0, Y: 0, Z: 0}
	far := ChunkCoord{X: 100, Y: 0, Z: 100}
	w.LoadChunk("", near)
	w.LoadChunk("", far)

	removed := w.UnloadDistant([]ChunkCoord{near}, 2)
	if removed != 1 {
		t.Fatalf("got %d removed, want 1", removed)
	}
	if _, ok := w.GetChunk(far); ok {
		t.Fatalf("far chunk should have been evicted")
	}
	if _, ok := w.GetChunk(near); !ok {
		t.Fatalf("near chunk should still be loaded")
	}
}

func TestNeighbors(t *testing.T) {
	w := New(nil, nil)
	center := ChunkCoord{X: 5, Y: 0, Z: 5}
	w.LoadChunk("", center)
	w.LoadChunk("", center.Add(1, 0, 0))

	n := w.Neighbors(center)
	if n[1] == nil {
		t.Fatalf("expected +X neighbor to be loaded")
	}
	if n[0] != nil {
		t.Fatalf("expected -X neighbor to be absent")
	}
}
