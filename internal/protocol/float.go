package protocol

import "math"

// floatBits and floatFromBits convert between float32 and its IEEE-754 bit
// pattern for little-endian wire encoding.
func floatBits(f float32) uint32 {
	return math.Float32bits(f)
}

func floatFromBits(bits uint32) float32 {
	return math.Float32frombits(bits)
}
