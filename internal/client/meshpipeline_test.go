package client

import (
	"testing"
	"time"

	"voxelcore/internal/meshing"
	"voxelcore/internal/world"
)

type fixedAtlas struct{}

func (fixedAtlas) UVFor(world.BlockType, [3]int32) (float32, float32, float32, float32) {
	return 0, 0, 1, 1
}

func TestMeshPipelineProducesResult(t *testing.T) {
	p := NewMeshPipeline(1, 4, fixedAtlas{}, nil)
	defer p.Shutdown()

	var target meshing.ChunkSnapshot
	target.Coord = world.ChunkCoord{}
	p.Submit(MeshJob{Coord: target.Coord, Target: target})

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if results := p.Drain(10); len(results) > 0 {
			if results[0].Coord != target.Coord {
				t.Fatalf("unexpected coord in result")
			}
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for mesh result")
}

func TestMeshPipelineDiscardAll(t *testing.T) {
	p := NewMeshPipeline(0, 4, fixedAtlas{}, nil)
	defer p.Shutdown()

	p.Submit(MeshJob{})
	p.DiscardAll()
	if results := p.Drain(10); len(results) != 0 {
		t.Fatalf("expected nothing left after DiscardAll, got %d", len(results))
	}
}
