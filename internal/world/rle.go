package world

import (
	"encoding/binary"
	"fmt"
)

// rlePairSize is the encoded size of one (run_length, block_type) pair.
const rlePairSize = 4

// EncodeRLE run-length encodes a chunk's block array for the wire: pairs of
// (run_length uint16, block_type uint16), little-endian. A run that would
// overflow uint16 ends early and a new run begins.
func EncodeRLE(blocks *[ChunkVolume]Block) []byte {
	out := make([]byte, 0, 64)
	i := 0
	for i < len(blocks) {
		bt := blocks[i].Type
		run := uint16(1)
		j := i + 1
		for j < len(blocks) && blocks[j].Type == bt && run < 65535 {
			run++
			j++
		}
		var pair [rlePairSize]byte
		binary.LittleEndian.PutUint16(pair[0:2], run)
		binary.LittleEndian.PutUint16(pair[2:4], uint16(bt))
		out = append(out, pair[:]...)
		i = j
	}
	return out
}

// DecodeRLE decodes an RLE payload into a fresh block array. Fails if the
// input ends mid-pair, decodes more than ChunkVolume blocks, or decodes
// fewer than ChunkVolume blocks by the time the input is exhausted.
func DecodeRLE(data []byte) (*[ChunkVolume]Block, error) {
	var out [ChunkVolume]Block
	pos := 0
	count := 0
	for pos < len(data) {
		if pos+rlePairSize > len(data) {
			return nil, fmt.Errorf("world: rle decode: truncated pair at offset %d", pos)
		}
		run := binary.LittleEndian.Uint16(data[pos : pos+2])
		bt := BlockType(binary.LittleEndian.Uint16(data[pos+2 : pos+4]))
		pos += rlePairSize

		if count+int(run) > ChunkVolume {
			return nil, fmt.Errorf("world: rle decode: overflow, decoded count would exceed %d", ChunkVolume)
		}
		for k := 0; k < int(run); k++ {
			out[count] = Block{Type: bt}
			count++
		}
	}
	if count != ChunkVolume {
		return nil, fmt.Errorf("world: rle decode: underflow, decoded %d blocks, want %d", count, ChunkVolume)
	}
	return &out, nil
}
