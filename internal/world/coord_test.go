package world

import "testing"

func TestChunkCoordFromWorldPositive(t *testing.T) {
	coord, lx, ly, lz := ChunkCoordFromWorld(35, 10, 65)
	want := ChunkCoord{X: 1, Y: 0, Z: 2}
	if coord != want {
		t.Fatalf("coord = %v, want %v", coord, want)
	}
	if lx != 3 || ly != 10 || lz != 1 {
		t.Fatalf("local = (%d,%d,%d), want (3,10,1)", lx, ly, lz)
	}
}

func TestChunkCoordFromWorldNegative(t *testing.T) {
	// -1 should floor-divide into chunk -1, local 31 (not chunk 0, local -1).
	coord, lx, ly, lz := ChunkCoordFromWorld(-1, -32, -33)
	if coord != (ChunkCoord{X: -1, Y: -1, Z: -2}) {
		t.Fatalf("coord = %v, want (-1,-1,-2)", coord)
	}
	if lx != 31 || ly != 0 || lz != 31 {
		t.Fatalf("local = (%d,%d,%d), want (31,0,31)", lx, ly, lz)
	}
}

func TestChunkCoordLess(t *testing.T) {
	a := ChunkCoord{X: 0, Y: 0, Z: 0}
	b := ChunkCoord{X: 0, Y: 0, Z: 1}
	if !a.Less(b) {
		t.Fatalf("expected a < b")
	}
	if b.Less(a) {
		t.Fatalf("expected b not < a")
	}
}

func TestChunkCoordAddAndWorldOrigin(t *testing.T) {
	c := ChunkCoord{X: 2, Y: -1, Z: 0}.Add(1, 1, 1)
	if c != (ChunkCoord{X: 3, Y: 0, Z: 1}) {
		t.Fatalf("got %v", c)
	}
	wx, wy, wz := c.WorldOrigin()
	if wx != 3*ChunkSize || wy != 0 || wz != ChunkSize {
		t.Fatalf("WorldOrigin = (%d,%d,%d)", wx, wy, wz)
	}
}
