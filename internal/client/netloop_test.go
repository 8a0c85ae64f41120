package client

import (
	"net"
	"testing"
	"time"

	"voxelcore/internal/protocol"
	"voxelcore/internal/world"
)

func TestNetLoopQueuesGPUEvictionOnChunkUnload(t *testing.T) {
	serverSide, clientSide := net.Pipe()
	defer serverSide.Close()
	defer clientSide.Close()

	cache := NewChunkCache()
	coord := world.ChunkCoord{X: 2, Y: 0, Z: 0}
	cache.Put(world.NewChunk(coord))

	pipeline := NewMeshPipeline(1, 4, fixedAtlas{}, nil)
	defer pipeline.Shutdown()

	n := NewNetLoop(clientSide, cache, pipeline, nil)
	go n.Run()

	if err := protocol.WriteChunkUnload(serverSide, protocol.ChunkUnload{Coord: coord}); err != nil {
		t.Fatalf("write chunk unload: %v", err)
	}

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if evicted := n.DrainEvictions(); len(evicted) > 0 {
			if evicted[0] != coord {
				t.Fatalf("got eviction for %v, want %v", evicted[0], coord)
			}
			if _, ok := cache.Get(coord); ok {
				t.Fatalf("expected chunk removed from cache on unload")
			}
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for queued eviction")
}
