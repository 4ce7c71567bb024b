package blast

import (
	"math/bits"
	"math/rand/v2"
)

// Point is a grid coordinate.
type Point struct {
	X, Y int
}

// Piece is a shape dealt to a candidate slot. It is owned by exactly one
// location at a time: a slot or the active drag.
type Piece struct {
	Shape   int
	Mask    Mask
	Cells   []Point
	Rows    int
	Columns int
	Color   int
}

// Expand converts mask into block offsets, ordered by ascending bit index.
func Expand(mask Mask, width int) []Point {
	if mask == 0 || width <= 0 {
		return nil
	}
	cells := make([]Point, 0, bits.OnesCount32(uint32(mask)))
	for m := uint32(mask); m != 0; m &= m - 1 {
		z := bits.TrailingZeros32(m)
		cells = append(cells, Point{X: z % width, Y: z / width})
	}
	return cells
}

// Encode packs offsets back into a mask of the given row width. Offsets
// outside the 32-bit footprint are ignored.
func Encode(cells []Point, width int) Mask {
	var mask Mask
	for _, c := range cells {
		if c.X < 0 || c.Y < 0 || c.X >= width {
			continue
		}
		z := c.Y*width + c.X
		if z >= 32 {
			continue
		}
		mask |= 1 << z
	}
	return mask
}

// Bounds returns the bounding box of cells. An empty list yields 0x0.
func Bounds(cells []Point) (rows, columns int) {
	for _, c := range cells {
		columns = max(columns, c.X+1, 1)
		rows = max(rows, c.Y+1, 1)
	}
	return rows, columns
}

// NewPiece expands the catalog entry at shape into a piece with a random
// color in [0, colors).
func NewPiece(catalog *Catalog, shape int, colors int, rng *rand.Rand) *Piece {
	shape = catalog.clamp(shape)
	mask := catalog.Mask(shape)
	cells := Expand(mask, MaskStride)
	rows, columns := Bounds(cells)

	color := 0
	if colors > 0 {
		color = rng.IntN(colors)
	}

	return &Piece{
		Shape:   shape,
		Mask:    mask,
		Cells:   cells,
		Rows:    rows,
		Columns: columns,
		Color:   color,
	}
}

// Empty reports whether the piece has no cells.
func (p *Piece) Empty() bool {
	return p == nil || len(p.Cells) == 0
}
