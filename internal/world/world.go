package world

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
)

// World is a mapping ChunkCoord -> owned Chunk. Access is serialized by a
// single RWMutex: concurrent reads are safe, writes exclude all readers. A
// chunk is either present in memory, present on disk only, or nonexistent
// (generated on demand).
type World struct {
	mu     sync.RWMutex
	chunks map[ChunkCoord]*Chunk
	gen    Generator
	log    *slog.Logger
}

// New creates an empty world using gen to populate chunks that are neither
// in memory nor on disk. A nil logger falls back to slog.Default.
func New(gen Generator, log *slog.Logger) *World {
	if gen == nil {
		gen = DefaultGenerator
	}
	if log == nil {
		log = slog.Default()
	}
	return &World{
		chunks: make(map[ChunkCoord]*Chunk),
		gen:    gen,
		log:    log,
	}
}

// GetChunk returns a read-only view of the chunk at coord if loaded, and
// whether it was found. It never loads from disk or generates.
func (w *World) GetChunk(coord ChunkCoord) (*Chunk, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	c, ok := w.chunks[coord]
	return c, ok
}

// LoadChunk returns the chunk at coord: if already in memory, returns it;
// else tries disk; else generates. Always returns a live chunk.
func (w *World) LoadChunk(dir string, coord ChunkCoord) *Chunk {
	w.mu.Lock()
	defer w.mu.Unlock()

	if c, ok := w.chunks[coord]; ok {
		return c
	}

	if dir != "" {
		if c, err := readChunkFile(dir, coord); err == nil {
			w.chunks[coord] = c
			return c
		} else {
			w.log.Debug("world: chunk not on disk, falling through to generator", "coord", coord.String(), "err", err)
		}
	}

	c := w.gen(coord)
	w.chunks[coord] = c
	return c
}

// UnloadChunk removes coord from memory. The caller is responsible for
// persisting it first if it is dirty.
func (w *World) UnloadChunk(coord ChunkCoord) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.chunks, coord)
}

// GetBlockAt splits a world position into (coord, local) and returns the
// block there, if the containing chunk is loaded.
func (w *World) GetBlockAt(wx, wy, wz int32) (Block, bool) {
	coord, lx, ly, lz := ChunkCoordFromWorld(wx, wy, wz)
	w.mu.RLock()
	defer w.mu.RUnlock()
	c, ok := w.chunks[coord]
	if !ok {
		return Block{}, false
	}
	return c.GetBlock(lx, ly, lz), true
}

// SetBlockAt writes a block at a world position. Returns false if the
// containing chunk is not loaded; it never auto-loads on set, since the
// server is expected to guarantee the chunk is loaded before an edit is
// broadcast.
func (w *World) SetBlockAt(wx, wy, wz int32, b Block) bool {
	coord, lx, ly, lz := ChunkCoordFromWorld(wx, wy, wz)
	w.mu.Lock()
	defer w.mu.Unlock()
	c, ok := w.chunks[coord]
	if !ok {
		return false
	}
	c.SetBlock(lx, ly, lz, b)
	return true
}

// verticalBand is the fixed Y range (in chunks) that chunks_in_radius
// considers, representing the playable vertical slice.
const verticalBandLow, verticalBandHigh = -1, 1

// ChunksInRadius returns every chunk coordinate within Euclidean distance r
// of center on the XZ plane, at all Y levels in the playable band.
func ChunksInRadius(center ChunkCoord, r int32) []ChunkCoord {
	var out []ChunkCoord
	r2 := r * r
	for dx := -r; dx <= r; dx++ {
		for dz := -r; dz <= r; dz++ {
			if dx*dx+dz*dz > r2 {
				continue
			}
			for dy := int32(verticalBandLow); dy <= verticalBandHigh; dy++ {
				out = append(out, ChunkCoord{X: center.X + dx, Y: center.Y + dy, Z: center.Z + dz})
			}
		}
	}
	return out
}

// UnloadDistant evicts every loaded chunk that falls outside the union of
// the keep-radius discs around each position in positions, and returns the
// count removed. Callers should pass load_radius+2 as keepRadius to give a
// hysteresis margin over the streaming radius.
func (w *World) UnloadDistant(positions []ChunkCoord, keepRadius int32) int {
	keep := make(map[ChunkCoord]struct{})
	for _, p := range positions {
		for _, c := range ChunksInRadius(p, keepRadius) {
			keep[c] = struct{}{}
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	removed := 0
	for coord := range w.chunks {
		if _, ok := keep[coord]; !ok {
			delete(w.chunks, coord)
			removed++
		}
	}
	return removed
}

// SaveWorld writes every dirty loaded chunk to dir and clears its dirty
// flag on success. Returns the count written. A write failure for one
// chunk is logged and that chunk's dirty flag is retained for the next
// save attempt; it does not abort the sweep.
func (w *World) SaveWorld(dir string) int {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		w.log.Error("world: cannot create world directory", "dir", dir, "err", err)
		return 0
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	written := 0
	for _, c := range w.chunks {
		if !c.IsDirty() {
			continue
		}
		if err := writeChunkFile(dir, c); err != nil {
			w.log.Error("world: autosave failed for chunk, will retry", "coord", c.Coord.String(), "err", err)
			continue
		}
		c.SetClean()
		written++
	}
	return written
}

// LoadWorld scans dir for chunk files and loads every one into memory.
// A file whose embedded coordinates or size don't match its name is
// skipped with a log line; the sweep continues. Returns the count loaded.
func (w *World) LoadWorld(dir string) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		w.log.Warn("world: cannot read world directory", "dir", dir, "err", err)
		return 0
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	loaded := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		coord, ok := parseChunkFileName(entry.Name())
		if !ok {
			continue
		}
		c, err := readChunkFile(dir, coord)
		if err != nil {
			w.log.Warn("world: skipping bad chunk file", "name", entry.Name(), "err", err)
			continue
		}
		w.chunks[coord] = c
		loaded++
	}
	return loaded
}

// LoadedCount returns the number of chunks currently resident in memory.
func (w *World) LoadedCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.chunks)
}

// Neighbors returns the six chunks immediately adjacent to coord, in the
// order -X, +X, -Y, +Y, -Z, +Z, nil where a neighbor is not loaded. The
// returned values are the world's live chunks, looked up under the read
// lock, not copies.
func (w *World) Neighbors(coord ChunkCoord) [6]*Chunk {
	w.mu.RLock()
	defer w.mu.RUnlock()
	var n [6]*Chunk
	n[0] = w.chunks[coord.Add(-1, 0, 0)]
	n[1] = w.chunks[coord.Add(1, 0, 0)]
	n[2] = w.chunks[coord.Add(0, -1, 0)]
	n[3] = w.chunks[coord.Add(0, 1, 0)]
	n[4] = w.chunks[coord.Add(0, 0, -1)]
	n[5] = w.chunks[coord.Add(0, 0, 1)]
	return n
}

// Update is a reserved no-op hook for future timed block ticks, kept so the
// tick loop's shape matches the original engine's World::update() call
// site even though nothing implements timed ticks yet.
func (w *World) Update(dt float64) {}

func (w *World) String() string {
	return fmt.Sprintf("World{chunks=%d}", w.LoadedCount())
}
