package meshing

import (
	"testing"

	"voxelcore/internal/world"
)

func snapshotWithBlock(lx, ly, lz int32, bt world.BlockType) ChunkSnapshot {
	var snap ChunkSnapshot
	snap.Blocks[localIndex(lx, ly, lz)] = world.Block{Type: bt}
	return snap
}

func TestSingleBlockMeshHasSixFaces(t *testing.T) {
	target := snapshotWithBlock(0, 0, 0, world.BlockTypeStone)
	mesh := BuildMesh(target, Neighbors{}, registryStub{})

	if len(mesh.Indices) != 6*6 {
		t.Fatalf("got %d indices, want 36 (6 faces * 2 tris * 3 idx)", len(mesh.Indices))
	}
	if len(mesh.Vertices) != 6*4 {
		t.Fatalf("got %d vertices, want 24 (6 faces * 4 verts)", len(mesh.Vertices))
	}
}

func TestTwoBlocksTouchingMergeIntoOneFacePerSide(t *testing.T) {
	var target ChunkSnapshot
	target.Blocks[localIndex(0, 0, 0)] = world.Block{Type: world.BlockTypeStone}
	target.Blocks[localIndex(1, 0, 0)] = world.Block{Type: world.BlockTypeStone}

	mesh := BuildMesh(target, Neighbors{}, registryStub{})

	// A 2x1x1 cuboid still has 6 faces; the two 1x1 top/bottom/front/back
	// faces along the shared axis each greedy-merge into one 2x1 quad.
	if len(mesh.Vertices) != 6*4 {
		t.Fatalf("got %d vertices, want 24 after merge", len(mesh.Vertices))
	}
}

func TestCrossChunkFaceCulling(t *testing.T) {
	var target ChunkSnapshot
	target.Blocks[localIndex(world.ChunkSize-1, 0, 0)] = world.Block{Type: world.BlockTypeStone}

	var neighborPosX ChunkSnapshot
	neighborPosX.Blocks[localIndex(0, 0, 0)] = world.Block{Type: world.BlockTypeStone}

	var neighbors Neighbors
	neighbors[1] = &neighborPosX // +X neighbor

	mesh := BuildMesh(target, neighbors, registryStub{})

	// One face (+X) is hidden by the matching neighbor block, leaving 5.
	if len(mesh.Vertices) != 5*4 {
		t.Fatalf("got %d vertices, want 20 (5 faces) after cross-chunk culling", len(mesh.Vertices))
	}
}

func TestGrassFaceSubstitutionAndTint(t *testing.T) {
	if got := resolveFaceType(world.BlockTypeGrass, 1, 1); got != world.BlockTypeGrassTop {
		t.Fatalf("+Y face of grass = %v, want GrassTop", got)
	}
	if got := resolveFaceType(world.BlockTypeGrass, 1, -1); got != world.BlockTypeDirt {
		t.Fatalf("-Y face of grass = %v, want Dirt", got)
	}
	if got := resolveFaceType(world.BlockTypeGrass, 0, 1); got != world.BlockTypeGrassSide {
		t.Fatalf("+X face of grass = %v, want GrassSide", got)
	}

	tint := faceColor(world.BlockTypeGrass, 1, 1)
	if tint != [3]float32{0.4, 0.8, 0.3} {
		t.Fatalf("grass top tint = %v, want (0.4,0.8,0.3)", tint)
	}
	if c := faceColor(world.BlockTypeGrass, 1, -1); c != [3]float32{1, 1, 1} {
		t.Fatalf("grass bottom (dirt) should be untinted, got %v", c)
	}
}

// registryStub is a trivial AtlasLookup returning a fixed unit UV rect,
// enough to exercise BuildMesh without a real atlas.
type registryStub struct{}

func (registryStub) UVFor(world.BlockType, [3]int32) (float32, float32, float32, float32) {
	return 0, 0, 1, 1
}
