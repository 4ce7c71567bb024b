package blast

// DefaultBoardSize is the side length of the standard board.
const DefaultBoardSize = 8

// Cell is one grid position. Color is only meaningful when Occupied.
type Cell struct {
	Occupied bool
	Color    uint8
}

// ClearedCell is a cell removed by a line clear, with its pre-clear color.
type ClearedCell struct {
	Point
	Color int
}

// Board is a square grid of cells.
type Board struct {
	size  int
	cells []Cell
}

// NewBoard creates an empty size×size board.
func NewBoard(size int) *Board {
	if size <= 0 {
		size = DefaultBoardSize
	}
	return &Board{
		size:  size,
		cells: make([]Cell, size*size),
	}
}

// Size returns the side length of the board.
func (b *Board) Size() int {
	return b.size
}

// In reports whether (x, y) lies on the board.
func (b *Board) In(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.size && y < b.size
}

// At returns the cell at (x, y). Off-board positions read as empty.
func (b *Board) At(x, y int) Cell {
	if !b.In(x, y) {
		return Cell{}
	}
	return b.cells[y*b.size+x]
}

// Occupied reports whether (x, y) holds a block.
func (b *Board) Occupied(x, y int) bool {
	return b.At(x, y).Occupied
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	c := &Board{size: b.size, cells: make([]Cell, len(b.cells))}
	copy(c.cells, b.cells)
	return c
}

// Reset empties every cell.
func (b *Board) Reset() {
	clear(b.cells)
}

// Fits reports whether cells offset by (ox, oy) all land on empty cells.
func (b *Board) Fits(cells []Point, ox, oy int) bool {
	for _, c := range cells {
		x, y := ox+c.X, oy+c.Y
		if !b.In(x, y) || b.cells[y*b.size+x].Occupied {
			return false
		}
	}
	return true
}

// PlaceAnywhere scans every origin and reports whether cells fit at any of
// them. With commit set, the cells at the first fitting origin are marked
// occupied; their color is left untouched. An empty shape fits nowhere.
func (b *Board) PlaceAnywhere(cells []Point, commit bool) bool {
	if len(cells) == 0 {
		return false
	}
	for x := 0; x < b.size; x++ {
		for y := 0; y < b.size; y++ {
			if !b.Fits(cells, x, y) {
				continue
			}
			if commit {
				for _, c := range cells {
					b.cells[(y+c.Y)*b.size+x+c.X].Occupied = true
				}
			}
			return true
		}
	}
	return false
}

// Place marks every point occupied with color. Off-board points are skipped.
func (b *Board) Place(points []Point, color int) {
	for _, p := range points {
		if !b.In(p.X, p.Y) {
			continue
		}
		b.cells[p.Y*b.size+p.X] = Cell{Occupied: true, Color: uint8(color)}
	}
}

// ClearFullLines removes every full row and every full column. Rows and
// columns are judged on the grid as it was before any clearing, so a cell on
// both a full row and a full column is reported twice and scored twice.
func (b *Board) ClearFullLines() (delta int, cleared []ClearedCell) {
	var rows, cols []int
	for i := 0; i < b.size; i++ {
		rowFull, colFull := true, true
		for j := 0; j < b.size && (rowFull || colFull); j++ {
			rowFull = rowFull && b.cells[i*b.size+j].Occupied
			colFull = colFull && b.cells[j*b.size+i].Occupied
		}
		if rowFull {
			rows = append(rows, i)
		}
		if colFull {
			cols = append(cols, i)
		}
	}

	if len(rows) == 0 && len(cols) == 0 {
		return 0, nil
	}

	cleared = make([]ClearedCell, 0, (len(rows)+len(cols))*b.size)
	for _, y := range rows {
		for x := 0; x < b.size; x++ {
			cleared = append(cleared, ClearedCell{Point: Point{X: x, Y: y}, Color: int(b.cells[y*b.size+x].Color)})
		}
		delta += b.size
	}
	for _, x := range cols {
		for y := 0; y < b.size; y++ {
			cleared = append(cleared, ClearedCell{Point: Point{X: x, Y: y}, Color: int(b.cells[y*b.size+x].Color)})
		}
		delta += b.size
	}

	for _, c := range cleared {
		b.cells[c.Y*b.size+c.X] = Cell{}
	}
	return delta, cleared
}

// IsDeadlock reports whether at least one candidate exists and none of them
// fits anywhere on the board.
func (b *Board) IsDeadlock(candidates []*Piece) bool {
	present := 0
	for _, p := range candidates {
		if p == nil {
			continue
		}
		present++
		if b.PlaceAnywhere(Expand(p.Mask, MaskStride), false) {
			return false
		}
	}
	return present > 0
}

// FreeCells returns the number of empty cells.
func (b *Board) FreeCells() int {
	n := 0
	for _, c := range b.cells {
		if !c.Occupied {
			n++
		}
	}
	return n
}
