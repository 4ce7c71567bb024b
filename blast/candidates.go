package blast

import (
	"math/rand/v2"

	"github.com/kamstrup/intmap"
)

//go:generate go tool stringer -type=Policy -trimprefix=Policy

// Policy selects how a batch of candidates is dealt.
type Policy int

const (
	// PolicySelective deals pieces that fit on the board after the earlier
	// pieces of the same batch have been hypothetically placed.
	PolicySelective Policy = iota
	// PolicyRandom deals uniformly random pieces with no repeats in a batch.
	PolicyRandom
)

// CandidateSlots is the number of pieces offered per round.
const CandidateSlots = 3

// CandidateSet holds the pieces offered to the player.
type CandidateSet struct {
	slots   [CandidateSlots]*Piece
	catalog *Catalog
	colors  int
}

// NewCandidateSet creates an empty set dealing from catalog with pieces
// colored in [0, colors).
func NewCandidateSet(catalog *Catalog, colors int) *CandidateSet {
	return &CandidateSet{catalog: catalog, colors: colors}
}

// Len returns the number of slots.
func (cs *CandidateSet) Len() int {
	return len(cs.slots)
}

// Slot returns the piece in slot i, or nil when the slot is empty or i is
// out of range.
func (cs *CandidateSet) Slot(i int) *Piece {
	if i < 0 || i >= len(cs.slots) {
		return nil
	}
	return cs.slots[i]
}

// Pieces returns the slot contents; empty slots are nil.
func (cs *CandidateSet) Pieces() []*Piece {
	out := make([]*Piece, len(cs.slots))
	copy(out, cs.slots[:])
	return out
}

// Empty reports whether every slot is empty.
func (cs *CandidateSet) Empty() bool {
	for _, p := range cs.slots {
		if p != nil {
			return false
		}
	}
	return true
}

// Take removes and returns the piece in slot i.
func (cs *CandidateSet) Take(i int) *Piece {
	p := cs.Slot(i)
	if p != nil {
		cs.slots[i] = nil
	}
	return p
}

// Return puts a previously taken piece back into slot i.
func (cs *CandidateSet) Return(i int, p *Piece) {
	if i < 0 || i >= len(cs.slots) {
		return
	}
	cs.slots[i] = p
}

// Clear empties every slot.
func (cs *CandidateSet) Clear() {
	clear(cs.slots[:])
}

// Refill deals a new batch. It does nothing unless every slot is empty.
// It returns the dealt catalog indices in slot order.
func (cs *CandidateSet) Refill(policy Policy, board *Board, rng *rand.Rand) []int {
	if !cs.Empty() || cs.catalog.Len() == 0 {
		return nil
	}

	var dealt []int
	switch policy {
	case PolicyRandom:
		dealt = cs.dealRandom(rng)
	default:
		dealt = cs.dealSelective(board, rng)
	}

	for i, shape := range dealt {
		cs.slots[i] = NewPiece(cs.catalog, shape, cs.colors, rng)
	}
	return dealt
}

func (cs *CandidateSet) dealRandom(rng *rand.Rand) []int {
	dealt := make([]int, 0, len(cs.slots))
	chosen := intmap.New[int, struct{}](len(cs.slots))
	for range cs.slots {
		shape := cs.catalog.Random(rng)
		// A catalog smaller than the slot count cannot avoid repeats.
		if cs.catalog.Len() >= len(cs.slots) {
			for {
				if _, dup := chosen.Get(shape); !dup {
					break
				}
				shape = cs.catalog.Random(rng)
			}
		}
		chosen.Put(shape, struct{}{})
		dealt = append(dealt, shape)
	}
	return dealt
}

// dealSelective scans a shuffled catalog per slot against a scratch board.
// If no shape fits, the last one tried is dealt anyway.
func (cs *CandidateSet) dealSelective(board *Board, rng *rand.Rand) []int {
	scratch := board.Clone()
	order := make([]int, cs.catalog.Len())
	for i := range order {
		order[i] = i
	}

	dealt := make([]int, 0, len(cs.slots))
	for range cs.slots {
		rng.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})

		shape := order[len(order)-1]
		for _, candidate := range order {
			if scratch.PlaceAnywhere(Expand(cs.catalog.Mask(candidate), MaskStride), true) {
				shape = candidate
				break
			}
		}
		dealt = append(dealt, shape)
	}
	return dealt
}
