package world

import "testing"

func TestChunkFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	coord := ChunkCoord{X: 1, Y: -2, Z: 3}
	c := NewChunk(coord)
	c.SetBlock(0, 0, 0, Block{Type: BlockTypeBrick})

	if err := writeChunkFile(dir, c); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := readChunkFile(dir, coord)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.GetBlock(0, 0, 0).Type != BlockTypeBrick {
		t.Fatalf("round trip lost block data")
	}
}

func TestReadChunkFileCoordMismatch(t *testing.T) {
	dir := t.TempDir()
	c := NewChunk(ChunkCoord{X: 0, Y: 0, Z: 0})
	if err := writeChunkFile(dir, c); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := readChunkFile(dir, ChunkCoord{X: 9, Y: 9, Z: 9}); err == nil {
		t.Fatalf("expected error reading mismatched coordinate")
	}
}

func TestParseChunkFileName(t *testing.T) {
	coord, ok := parseChunkFileName("chunk_-1_2_3.dat")
	if !ok {
		t.Fatalf("expected successful parse")
	}
	if coord != (ChunkCoord{X: -1, Y: 2, Z: 3}) {
		t.Fatalf("got %v", coord)
	}

	if _, ok := parseChunkFileName("not_a_chunk_file.txt"); ok {
		t.Fatalf("expected parse failure for unrelated filename")
	}
}
