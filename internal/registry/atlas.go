// Package registry holds the block definition table and the texture-atlas
// UV capability the mesher consumes. Atlas generation itself is an external
// concern (owned by the rendering backend); this package only assigns each
// block type a cell and answers lookups.
package registry

import "voxelcore/internal/world"

// BlockDefinition carries the non-geometric properties of a block type:
// display name and break hardness. Texture selection is handled entirely
// by Atlas, since the actual atlas image is built outside the core.
type BlockDefinition struct {
	Type     world.BlockType
	Name     string
	Hardness float32 // seconds to break; negative means unbreakable
}

// Atlas assigns every block type a single square cell in a uniform grid
// texture atlas and answers the mesher's uv_for(block_type, normal) lookup.
// It is a plain value owned by whatever constructs the client/server, never
// a package-level singleton, per the no-global-mutable-state policy.
type Atlas struct {
	cols, rows int
	cellOf     map[world.BlockType]int
	defs       map[world.BlockType]*BlockDefinition
}

// defaultDefs is the fixed catalogue of block definitions and their grid
// placement order. GrassSide and GrassTop are distinct BlockType values
// used only as the mesher's per-face substitution for Grass; they are not
// placeable blocks themselves but still need atlas cells.
var defaultDefs = []BlockDefinition{
	{Type: world.BlockTypeAir, Name: "air", Hardness: 0},
	{Type: world.BlockTypeStone, Name: "stone", Hardness: 1.5},
	{Type: world.BlockTypeDirt, Name: "dirt", Hardness: 0.5},
	{Type: world.BlockTypeCobblestone, Name: "cobblestone", Hardness: 2.0},
	{Type: world.BlockTypeWood, Name: "wood", Hardness: 2.0},
	{Type: world.BlockTypeSand, Name: "sand", Hardness: 0.5},
	{Type: world.BlockTypeBrick, Name: "brick", Hardness: 2.0},
	{Type: world.BlockTypeSnow, Name: "snow", Hardness: 0.1},
	{Type: world.BlockTypeGrass, Name: "grass", Hardness: 0.6},
	{Type: world.BlockTypeGrassSide, Name: "grass_side", Hardness: 0.6},
	{Type: world.BlockTypeGrassTop, Name: "grass_top", Hardness: 0.6},
}

// NewAtlas builds the default registry, placing each block type in
// row-major order in a cols-wide grid.
func NewAtlas(cols int) *Atlas {
	a := &Atlas{
		cols:   cols,
		cellOf: make(map[world.BlockType]int, len(defaultDefs)),
		defs:   make(map[world.BlockType]*BlockDefinition, len(defaultDefs)),
	}
	for i, def := range defaultDefs {
		def := def
		a.cellOf[def.Type] = i
		a.defs[def.Type] = &def
	}
	a.rows = (len(defaultDefs) + cols - 1) / cols
	return a
}

// Definition returns the block definition for bt, or nil if unregistered.
func (a *Atlas) Definition(bt world.BlockType) *BlockDefinition {
	return a.defs[bt]
}

// UVFor returns the atlas UV rectangle for bt. normal is accepted to match
// the mesher's capability interface (uv_for(block_type, normal)) even
// though this flat per-type grid never varies by normal: per-face texture
// variation for compound blocks like Grass is handled upstream by the
// mesher substituting BlockTypeGrassTop/BlockTypeGrassSide/BlockTypeDirt
// before calling UVFor, so by the time UVFor runs the type already encodes
// the face.
func (a *Atlas) UVFor(bt world.BlockType, normal [3]int32) (uMin, vMin, uMax, vMax float32) {
	cell, ok := a.cellOf[bt]
	if !ok {
		cell = 0
	}
	col := cell % a.cols
	row := cell / a.cols
	cw := 1.0 / float32(a.cols)
	ch := 1.0 / float32(a.rows)
	return float32(col) * cw, float32(row) * ch, float32(col+1) * cw, float32(row+1) * ch
}
