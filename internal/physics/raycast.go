// Package physics implements the core's collision and ray-traversal math:
// AABB-vs-block collision checks for block-edit validation and a DDA voxel
// raycaster for block placement/break targeting.
package physics

import (
	"math"

	"voxelcore/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// BlockLookup answers "what block occupies this voxel" for the raycaster,
// decoupling it from any particular World implementation.
type BlockLookup func(x, y, z int32) world.Block

// RaycastHit is the result of a successful Raycast.
type RaycastHit struct {
	BlockPos   [3]int32
	FaceNormal [3]int32
	Distance   float32
	BlockType  world.BlockType
}

const inf = float32(math.MaxFloat32)

// Raycast implements Amanatides & Woo voxel traversal: starting at origin
// and stepping one voxel at a time along the axis with the smallest
// parametric distance to the next grid boundary, until a solid block is
// found or tMax is exceeded. Direction components near zero yield +Inf for
// tDelta/tMax on that axis, avoiding an epsilon-division hazard.
//
// The returned face normal is the inward-facing normal of the face the ray
// entered through: the negation of the step direction on the axis that was
// just stepped, which is exactly the offset block placement needs.
func Raycast(origin, dir mgl32.Vec3, tMax float32, lookup BlockLookup) (RaycastHit, bool) {
	dir = dir.Normalize()

	voxelX := int32(math.Floor(float64(origin.X())))
	voxelY := int32(math.Floor(float64(origin.Y())))
	voxelZ := int32(math.Floor(float64(origin.Z())))

	stepX, tMaxX, tDeltaX := axisStep(origin.X(), dir.X(), voxelX)
	stepY, tMaxY, tDeltaY := axisStep(origin.Y(), dir.Y(), voxelY)
	stepZ, tMaxZ, tDeltaZ := axisStep(origin.Z(), dir.Z(), voxelZ)

	var normal [3]int32
	dist := float32(0)

	for dist <= tMax {
		if b := lookup(voxelX, voxelY, voxelZ); b.IsSolid() {
			return RaycastHit{
				BlockPos:   [3]int32{voxelX, voxelY, voxelZ},
				FaceNormal: normal,
				Distance:   dist,
				BlockType:  b.Type,
			}, true
		}

		switch {
		case tMaxX < tMaxY && tMaxX < tMaxZ:
			voxelX += stepX
			dist = tMaxX
			tMaxX += tDeltaX
			normal = [3]int32{-stepX, 0, 0}
		case tMaxY < tMaxZ:
			voxelY += stepY
			dist = tMaxY
			tMaxY += tDeltaY
			normal = [3]int32{0, -stepY, 0}
		default:
			voxelZ += stepZ
			dist = tMaxZ
			tMaxZ += tDeltaZ
			normal = [3]int32{0, 0, -stepZ}
		}
	}

	return RaycastHit{}, false
}

// axisStep computes one axis's step direction, initial tMax (distance to
// the next grid boundary), and tDelta (distance to cross one voxel).
func axisStep(pos, d float32, voxel int32) (step int32, tMax, tDelta float32) {
	if d > 0 {
		step = 1
		tDelta = 1 / d
		tMax = (float32(voxel) + 1 - pos) * tDelta
	} else if d < 0 {
		step = -1
		tDelta = 1 / -d
		tMax = (pos - float32(voxel)) * tDelta
	} else {
		step = 0
		tDelta = inf
		tMax = inf
	}
	return
}
