package blast

// Event is emitted by Session.Tick for presentation, sound and network
// collaborators.
type Event interface {
	isEvent()
}

// PiecePicked is emitted when a candidate is lifted from its slot.
type PiecePicked struct {
	Slot  int
	Shape int
}

// PieceReturned is emitted when a drag is cancelled and the piece goes back
// to its slot.
type PieceReturned struct {
	Slot  int
	Shape int
}

// PiecePlaced is emitted when a dragged piece is committed to the board.
type PiecePlaced struct {
	Cells []Point
	Color int
}

// LinesCleared is emitted when a placement completes rows or columns.
type LinesCleared struct {
	Cells      []ClearedCell
	ScoreDelta int
}

// GameOver is emitted once when no remaining candidate can be placed.
type GameOver struct {
	FinalScore int
}

// RoundAdvanced is emitted when a new batch of candidates is dealt.
type RoundAdvanced struct {
	Round int
}

func (PiecePicked) isEvent()   {}
func (PieceReturned) isEvent() {}
func (PiecePlaced) isEvent()   {}
func (LinesCleared) isEvent()  {}
func (GameOver) isEvent()      {}
func (RoundAdvanced) isEvent() {}
