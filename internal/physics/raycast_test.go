package physics_test

import (
	"testing"

	"voxelcore/internal/physics"
	"voxelcore/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

func TestRaycastHitsAxisAlignedBlock(t *testing.T) {
	lookup := func(x, y, z int32) world.Block {
		if x == 3 && y == 0 && z == 0 {
			return world.Block{Type: world.BlockTypeStone}
		}
		return world.Block{}
	}

	hit, ok := physics.Raycast(mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{1, 0, 0}, 10, lookup)
	if !ok {
		t.Fatalf("expected a hit")
	}
	if hit.BlockPos != [3]int32{3, 0, 0} {
		t.Fatalf("blockPos = %v, want (3,0,0)", hit.BlockPos)
	}
	if hit.FaceNormal != [3]int32{-1, 0, 0} {
		t.Fatalf("normal = %v, want (-1,0,0)", hit.FaceNormal)
	}
	if hit.Distance != 2.5 {
		t.Fatalf("distance = %v, want 2.5", hit.Distance)
	}
}

func TestRaycastMissesBeyondTMax(t *testing.T) {
	lookup := func(x, y, z int32) world.Block {
		if x == 100 {
			return world.Block{Type: world.BlockTypeStone}
		}
		return world.Block{}
	}
	_, ok := physics.Raycast(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0}, 5, lookup)
	if ok {
		t.Fatalf("expected a miss past tMax")
	}
}

func TestRaycastDiagonal(t *testing.T) {
	lookup := func(x, y, z int32) world.Block {
		if x == 2 && y == 2 && z == 2 {
			return world.Block{Type: world.BlockTypeStone}
		}
		return world.Block{}
	}
	hit, ok := physics.Raycast(mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{1, 1, 1}, 10, lookup)
	if !ok {
		t.Fatalf("expected a hit")
	}
	if hit.BlockPos != [3]int32{2, 2, 2} {
		t.Fatalf("blockPos = %v, want (2,2,2)", hit.BlockPos)
	}
}

func TestRaycastZeroComponentDoesNotDivideByZero(t *testing.T) {
	lookup := func(x, y, z int32) world.Block { return world.Block{} }
	// A pure +X ray (Y, Z direction components are zero) must not panic.
	_, _ = physics.Raycast(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0}, 3, lookup)
}
