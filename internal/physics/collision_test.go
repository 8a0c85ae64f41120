package physics_test

import (
	"testing"

	"voxelcore/internal/physics"
	"voxelcore/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

func TestCollidesDetectsOverlap(t *testing.T) {
	lookup := func(x, y, z int32) world.Block {
		if x == 0 && y == 0 && z == 0 {
			return world.Block{Type: world.BlockTypeStone}
		}
		return world.Block{}
	}
	if !physics.Collides(mgl32.Vec3{0.5, 0, 0.5}, 0.6, 1.8, lookup) {
		t.Fatalf("expected overlap with block at origin")
	}
}

func TestCollidesNoOverlapWhenClear(t *testing.T) {
	lookup := func(x, y, z int32) world.Block { return world.Block{} }
	if physics.Collides(mgl32.Vec3{0.5, 0, 0.5}, 0.6, 1.8, lookup) {
		t.Fatalf("expected no overlap in an empty world")
	}
}

func TestWithinReach(t *testing.T) {
	origin := mgl32.Vec3{0, 0, 0}
	near := [3]int32{1, 0, 0}
	far := [3]int32{20, 0, 0}
	if !physics.WithinReach(origin, near, 15) {
		t.Fatalf("expected near target within reach")
	}
	if physics.WithinReach(origin, far, 15) {
		t.Fatalf("expected far target out of reach")
	}
}
