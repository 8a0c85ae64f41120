package world

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
)

// chunkFileSize is the fixed size of a persisted chunk file: 12 bytes of
// coordinate header plus the raw 32768-entry block array at 2 bytes each.
const chunkFileSize = 12 + ChunkVolume*2

// chunkFileName returns the on-disk filename for coord, relative to a world
// directory.
func chunkFileName(coord ChunkCoord) string {
	return fmt.Sprintf("chunk_%d_%d_%d.dat", coord.X, coord.Y, coord.Z)
}

// writeChunkFile serializes a chunk to dir/chunk_<x>_<y>_<z>.dat: 3
// little-endian int32 coordinates followed by the raw block array (one
// little-endian uint16 block type per entry, uncompressed).
func writeChunkFile(dir string, c *Chunk) error {
	buf := make([]byte, chunkFileSize)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(c.Coord.X))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(c.Coord.Y))
	binary.LittleEndian.PutUint32(buf[8:12], uint32(c.Coord.Z))
	for i, b := range c.Blocks {
		off := 12 + i*2
		binary.LittleEndian.PutUint16(buf[off:off+2], uint16(b.Type))
	}

	path := filepath.Join(dir, chunkFileName(c.Coord))
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf, 0o644); err != nil {
		return fmt.Errorf("world: write chunk file %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("world: finalize chunk file %s: %w", path, err)
	}
	return nil
}

// readChunkFile deserializes dir/chunk_<x>_<y>_<z>.dat for want. A size
// mismatch or an embedded coordinate that disagrees with want is a hard
// refusal, not a partial load.
func readChunkFile(dir string, want ChunkCoord) (*Chunk, error) {
	path := filepath.Join(dir, chunkFileName(want))
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("world: read chunk file %s: %w", path, err)
	}
	if len(buf) != chunkFileSize {
		return nil, fmt.Errorf("world: chunk file %s: size %d, want %d", path, len(buf), chunkFileSize)
	}

	got := ChunkCoord{
		X: int32(binary.LittleEndian.Uint32(buf[0:4])),
		Y: int32(binary.LittleEndian.Uint32(buf[4:8])),
		Z: int32(binary.LittleEndian.Uint32(buf[8:12])),
	}
	if got != want {
		return nil, fmt.Errorf("world: chunk file %s: embedded coord %v does not match filename coord %v", path, got, want)
	}

	c := NewChunk(want)
	for i := 0; i < ChunkVolume; i++ {
		off := 12 + i*2
		c.Blocks[i] = Block{Type: BlockType(binary.LittleEndian.Uint16(buf[off : off+2]))}
	}
	return c, nil
}

// parseChunkFileName extracts the ChunkCoord encoded in a filename produced
// by chunkFileName, used when scanning a world directory during load.
func parseChunkFileName(name string) (ChunkCoord, bool) {
	var x, y, z int32
	n, err := fmt.Sscanf(name, "chunk_%d_%d_%d.dat", &x, &y, &z)
	if err != nil || n != 3 {
		return ChunkCoord{}, false
	}
	return ChunkCoord{X: x, Y: y, Z: z}, true
}
