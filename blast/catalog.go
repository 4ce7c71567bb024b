package blast

import "math/rand/v2"

// Mask is a bit-packed shape footprint. Bit z marks the sub-cell
// (z % MaskStride, z / MaskStride) as occupied.
type Mask uint32

// MaskStride is the row width used by catalog masks: one byte per row.
const MaskStride = 8

// ShapeCount is the number of entries in the default catalog.
const ShapeCount = 25

// CatalogEntry describes one piece of the catalog.
type CatalogEntry struct {
	Mask Mask
	// Rotatable marks shapes that have orientation variants. Rotation itself
	// is never applied; every variant is its own entry.
	Rotatable bool
}

// Catalog is the fixed table of piece footprints dealt by a session.
type Catalog struct {
	entries []CatalogEntry
}

// NewCatalog builds a catalog from the given entries. Entries with an empty
// mask are dropped: a piece without cells can never be placed.
func NewCatalog(entries []CatalogEntry) *Catalog {
	c := &Catalog{entries: make([]CatalogEntry, 0, len(entries))}
	for _, e := range entries {
		if e.Mask != 0 {
			c.entries = append(c.entries, e)
		}
	}
	return c
}

// DefaultCatalog returns the 25 standard pieces, from the single block up to
// the 3x3 block. Orientation variants are listed as separate entries.
func DefaultCatalog() *Catalog {
	return NewCatalog([]CatalogEntry{
		{Mask: 0x0303, Rotatable: true},     // square
		{Mask: 0x0F, Rotatable: true},       // line, horizontal
		{Mask: 0x01010101, Rotatable: true}, // line, vertical
		{Mask: 0x0603, Rotatable: true},     // Z
		{Mask: 0x020301, Rotatable: true},   // Z, vertical
		{Mask: 0x0306, Rotatable: true},     // S
		{Mask: 0x010302, Rotatable: true},   // S, vertical
		{Mask: 0x0207, Rotatable: true},     // T, up
		{Mask: 0x010301, Rotatable: true},   // T, right
		{Mask: 0x0702, Rotatable: true},     // T, down
		{Mask: 0x020302, Rotatable: true},   // T, left
		{Mask: 0x0107, Rotatable: true},     // L
		{Mask: 0x030101, Rotatable: true},
		{Mask: 0x0704, Rotatable: true},
		{Mask: 0x020203, Rotatable: true},
		{Mask: 0x0407, Rotatable: true}, // J
		{Mask: 0x010103, Rotatable: true},
		{Mask: 0x0701, Rotatable: true},
		{Mask: 0x030202, Rotatable: true},
		{Mask: 0x070707},                // 3x3 block
		{Mask: 0x01},                    // single
		{Mask: 0x03, Rotatable: true},   // domino, horizontal
		{Mask: 0x0101, Rotatable: true}, // domino, vertical
		{Mask: 0x0103, Rotatable: true}, // corner
		{Mask: 0x0301, Rotatable: true}, // corner
	})
}

// Len returns the number of catalog entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// clamp bounds index to the valid entry range.
func (c *Catalog) clamp(index int) int {
	return max(0, min(index, len(c.entries)-1))
}

// Mask returns the footprint for index, clamping out-of-range indices.
func (c *Catalog) Mask(index int) Mask {
	if len(c.entries) == 0 {
		return 0
	}
	return c.entries[c.clamp(index)].Mask
}

// Rotatable reports the orientation flag for index, clamping out-of-range indices.
func (c *Catalog) Rotatable(index int) bool {
	if len(c.entries) == 0 {
		return false
	}
	return c.entries[c.clamp(index)].Rotatable
}

// Random draws a catalog index uniformly.
func (c *Catalog) Random(rng *rand.Rand) int {
	return rng.IntN(len(c.entries))
}
