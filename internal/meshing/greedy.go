package meshing

import "voxelcore/internal/world"

// BuildMesh runs the per-axis greedy sweep over target, consulting
// neighbors for cross-chunk face culling, and returns the merged quad mesh.
// Complexity is O(6 * ChunkSize^3) voxel reads: six sweeps, ChunkSize
// slices each, ChunkSize^2 mask cells per slice.
func BuildMesh(target ChunkSnapshot, neighbors Neighbors, atlas AtlasLookup) Mesh {
	var mesh Mesh
	for axis := 0; axis < 3; axis++ {
		for _, dir := range [2]int32{-1, 1} {
			sweepSlices(&target, neighbors, axis, dir, atlas, &mesh)
		}
	}
	return mesh
}

// localCoord maps the sweep axis's fixed slice s and the two tangent
// coordinates (u,v) to a local (x,y,z). Tangent axis order is the one
// remaining after the fixed axis is removed, smallest index first.
func localCoord(axis int, s, u, v int32) (lx, ly, lz int32) {
	switch axis {
	case 0:
		return s, u, v
	case 1:
		return u, s, v
	default:
		return u, v, s
	}
}

type maskCell struct {
	faceType world.BlockType
	set      bool
}

func sweepSlices(target *ChunkSnapshot, neighbors Neighbors, axis int, dir int32, atlas AtlasLookup, mesh *Mesh) {
	const n = world.ChunkSize
	mask := make([]maskCell, n*n)

	for s := int32(0); s < n; s++ {
		for i := range mask {
			mask[i] = maskCell{}
		}

		for v := int32(0); v < n; v++ {
			for u := int32(0); u < n; u++ {
				lx, ly, lz := localCoord(axis, s, u, v)
				cur := sampleBlock(target, neighbors, lx, ly, lz)
				if !cur.IsSolid() {
					continue
				}

				nlx, nly, nlz := localCoord(axis, s+dir, u, v)
				neighbor := sampleBlock(target, neighbors, nlx, nly, nlz)
				if neighbor.Type == cur.Type {
					continue
				}

				mask[v*n+u] = maskCell{faceType: resolveFaceType(cur.Type, axis, dir), set: true}
			}
		}

		greedyMergeSlice(mask, n, axis, dir, s, atlas, mesh)
	}
}

// greedyMergeSlice scans the mask row-major, growing each unprocessed cell
// into the largest same-type rectangle it can, and emits one quad per
// rectangle.
func greedyMergeSlice(mask []maskCell, n int32, axis int, dir, s int32, atlas AtlasLookup, mesh *Mesh) {
	for v := int32(0); v < n; v++ {
		for u := int32(0); u < n; u++ {
			cell := mask[v*n+u]
			if !cell.set {
				continue
			}

			w := int32(1)
			for u+w < n && mask[v*n+u+w] == cell {
				w++
			}

			h := int32(1)
		growHeight:
			for v+h < n {
				for k := int32(0); k < w; k++ {
					if mask[(v+h)*n+u+k] != cell {
						break growHeight
					}
				}
				h++
			}

			emitQuad(mesh, axis, dir, s, u, v, w, h, cell.faceType, atlas)

			for vv := v; vv < v+h; vv++ {
				for uu := u; uu < u+w; uu++ {
					mask[vv*n+uu] = maskCell{}
				}
			}
		}
	}
}

func emitQuad(mesh *Mesh, axis int, dir, s, u0, v0, w, h int32, faceType world.BlockType, atlas AtlasLookup) {
	faceCoord := s
	if dir > 0 {
		faceCoord = s + 1
	}

	var normal [3]float32
	normal[axis] = float32(dir)
	var normalI [3]int32
	normalI[axis] = dir

	color := faceColor(faceType, axis, dir)
	uMin, vMin, uMax, vMax := atlas.UVFor(faceType, normalI)
	atlasOffset := [2]float32{uMin, vMin}
	atlasSize := [2]float32{uMax - uMin, vMax - vMin}

	corner := func(u, v int32) [3]float32 {
		lx, ly, lz := localCoord(axis, faceCoord, u, v)
		return [3]float32{float32(lx), float32(ly), float32(lz)}
	}

	texCoord := func(relU, relV int32) [2]float32 {
		ru, rv := float32(relU), float32(relV)
		ww, hh := float32(w), float32(h)
		if axis == 0 {
			ru, rv = rv, ru
			ww, hh = hh, ww
		}
		return [2]float32{ru, hh - rv}
	}

	type corn struct {
		pos [3]float32
		tex [2]float32
	}
	c00 := corn{corner(u0, v0), texCoord(0, 0)}
	c10 := corn{corner(u0+w, v0), texCoord(w, 0)}
	c11 := corn{corner(u0+w, v0+h), texCoord(w, h)}
	c01 := corn{corner(u0, v0+h), texCoord(0, h)}

	push := func(c corn) {
		mesh.Vertices = append(mesh.Vertices, Vertex{
			Position:    c.pos,
			Color:       color,
			Normal:      normal,
			TexCoord:    c.tex,
			AtlasOffset: atlasOffset,
			AtlasSize:   atlasSize,
		})
	}

	base := uint32(len(mesh.Vertices))
	// Winding is CCW as seen from the direction the normal points; the two
	// directions along an axis need mirrored vertex order. The Y axis's
	// tangent pair (x, z) is ordered opposite to the X and Z axes' pairs, so
	// its order is mirrored once more.
	if (dir > 0) != (axis == 1) {
		push(c00)
		push(c10)
		push(c11)
		push(c01)
	} else {
		push(c00)
		push(c01)
		push(c11)
		push(c10)
	}
	mesh.Indices = append(mesh.Indices,
		base, base+1, base+2,
		base+2, base+3, base,
	)
}
