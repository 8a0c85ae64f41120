// Package client implements the client-side chunk cache, async mesh
// pipeline, and net loop that receive chunk data from a voxelcore server
// and hand finished meshes to a rendering backend.
package client

import (
	"sync"

	"voxelcore/internal/world"
)

// ChunkCache holds every chunk the server has told this client about.
// Capacity is bounded only by what the server sends; a ChunkUnload message
// removes the matching entry.
type ChunkCache struct {
	mu     sync.RWMutex
	chunks map[world.ChunkCoord]*world.Chunk
}

// NewChunkCache returns an empty cache.
func NewChunkCache() *ChunkCache {
	return &ChunkCache{chunks: make(map[world.ChunkCoord]*world.Chunk)}
}

// Put stores or replaces the chunk at coord.
func (cc *ChunkCache) Put(c *world.Chunk) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.chunks[c.Coord] = c
}

// Get returns the chunk at coord, if cached.
func (cc *ChunkCache) Get(coord world.ChunkCoord) (*world.Chunk, bool) {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	c, ok := cc.chunks[coord]
	return c, ok
}

// Remove deletes coord from the cache, used on ChunkUnload.
func (cc *ChunkCache) Remove(coord world.ChunkCoord) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	delete(cc.chunks, coord)
}

// Clear empties the cache, used on disconnect.
func (cc *ChunkCache) Clear() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.chunks = make(map[world.ChunkCoord]*world.Chunk)
}

// Len reports the number of cached chunks.
func (cc *ChunkCache) Len() int {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	return len(cc.chunks)
}

// neighborOffsets matches world.World.Neighbors' fixed order: -X,+X,-Y,+Y,-Z,+Z.
var neighborOffsets = [6][3]int32{
	{-1, 0, 0}, {1, 0, 0},
	{0, -1, 0}, {0, 1, 0},
	{0, 0, -1}, {0, 0, 1},
}

// Snapshot copies coord's chunk and its six neighbors (where cached) for
// handoff to a mesh worker. The mesher must never see a live *world.Chunk
// shared with the net-intake goroutine.
func (cc *ChunkCache) Snapshot(coord world.ChunkCoord) (target *world.Chunk, ok bool, neighbors [6]*world.Chunk) {
	cc.mu.RLock()
	defer cc.mu.RUnlock()

	c, found := cc.chunks[coord]
	if !found {
		return nil, false, neighbors
	}
	targetCopy := *c

	for i, off := range neighborOffsets {
		nc := coord.Add(off[0], off[1], off[2])
		if nb, ok := cc.chunks[nc]; ok {
			nbCopy := *nb
			neighbors[i] = &nbCopy
		}
	}
	return &targetCopy, true, neighbors
}
