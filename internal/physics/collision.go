package physics

import (
	"math"

	"voxelcore/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// Collides reports whether an axis-aligned box of the given width (X/Z) and
// height (Y), centered horizontally at pos with its base at pos.Y(),
// overlaps any solid block. lookup answers single-block queries so the
// server and any future client-side physics can share this check.
func Collides(pos mgl32.Vec3, width, height float32, lookup func(x, y, z int32) world.Block) bool {
	minX := int32(math.Floor(float64(pos.X() - width/2)))
	maxX := int32(math.Floor(float64(pos.X() + width/2)))
	minY := int32(math.Floor(float64(pos.Y())))
	maxY := int32(math.Floor(float64(pos.Y() + height)))
	minZ := int32(math.Floor(float64(pos.Z() - width/2)))
	maxZ := int32(math.Floor(float64(pos.Z() + width/2)))

	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			for z := minZ; z <= maxZ; z++ {
				if !lookup(x, y, z).IsSolid() {
					continue
				}
				if IntersectsBlock(pos, width, height, x, y, z) {
					return true
				}
			}
		}
	}
	return false
}

// IntersectsBlock reports whether a player-shaped AABB at pos overlaps the
// unit block at (bx,by,bz).
func IntersectsBlock(pos mgl32.Vec3, width, height float32, bx, by, bz int32) bool {
	blockMinX, blockMaxX := float32(bx), float32(bx)+1
	blockMinY, blockMaxY := float32(by), float32(by)+1
	blockMinZ, blockMaxZ := float32(bz), float32(bz)+1

	minX, maxX := pos.X()-width/2, pos.X()+width/2
	minY, maxY := pos.Y(), pos.Y()+height
	minZ, maxZ := pos.Z()-width/2, pos.Z()+width/2

	return minX < blockMaxX && maxX > blockMinX &&
		minY < blockMaxY && maxY > blockMinY &&
		minZ < blockMaxZ && maxZ > blockMinZ
}

// WithinReach reports whether target is within reach blocks of origin,
// Euclidean. Used to validate BlockPlace/BlockBreak requests server-side.
func WithinReach(origin mgl32.Vec3, target [3]int32, reach float32) bool {
	center := mgl32.Vec3{float32(target[0]) + 0.5, float32(target[1]) + 0.5, float32(target[2]) + 0.5}
	return center.Sub(origin).Len() <= reach
}
