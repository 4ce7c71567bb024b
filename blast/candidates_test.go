package blast_test

import (
	"math/rand/v2"
	"testing"

	"github.com/plus3/pixelblast/blast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCandidateSetRandomPolicy(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	catalog := blast.DefaultCatalog()
	board := blast.NewBoard(8)

	for trial := range 2000 {
		cs := blast.NewCandidateSet(catalog, 8)
		dealt := cs.Refill(blast.PolicyRandom, board, rng)
		require.Len(t, dealt, blast.CandidateSlots)
		assert.NotEqual(t, dealt[0], dealt[1], "trial %d", trial)
		assert.NotEqual(t, dealt[0], dealt[2], "trial %d", trial)
		assert.NotEqual(t, dealt[1], dealt[2], "trial %d", trial)
	}
}

func TestCandidateSetSelectivePolicy(t *testing.T) {
	catalog := blast.DefaultCatalog()

	t.Run("batch fits together on an empty board", func(t *testing.T) {
		rng := rand.New(rand.NewPCG(9, 9))
		for range 200 {
			board := blast.NewBoard(8)
			cs := blast.NewCandidateSet(catalog, 8)
			cs.Refill(blast.PolicySelective, board, rng)

			scratch := board.Clone()
			for _, p := range cs.Pieces() {
				require.NotNil(t, p)
				assert.True(t, scratch.PlaceAnywhere(p.Cells, true))
			}
		}
	})

	t.Run("only the single fits a single hole", func(t *testing.T) {
		rng := rand.New(rand.NewPCG(4, 2))
		board := blast.NewBoard(8)
		fill(board, blast.Point{X: 3, Y: 3})

		cs := blast.NewCandidateSet(catalog, 8)
		dealt := cs.Refill(blast.PolicySelective, board, rng)
		require.Len(t, dealt, blast.CandidateSlots)
		assert.Equal(t, 20, dealt[0])
		assert.Equal(t, 1, board.FreeCells())
	})
}

func TestCandidateSetSlots(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	cs := blast.NewCandidateSet(blast.DefaultCatalog(), 8)
	board := blast.NewBoard(8)

	assert.True(t, cs.Empty())
	assert.Equal(t, blast.CandidateSlots, cs.Len())
	require.Len(t, cs.Refill(blast.PolicyRandom, board, rng), 3)
	assert.False(t, cs.Empty())

	p := cs.Take(1)
	require.NotNil(t, p)
	assert.Nil(t, cs.Slot(1))
	assert.Nil(t, cs.Take(1))
	assert.Nil(t, cs.Slot(-1))
	assert.Nil(t, cs.Slot(3))

	t.Run("refill waits for every slot to empty", func(t *testing.T) {
		assert.Nil(t, cs.Refill(blast.PolicyRandom, board, rng))
		assert.Nil(t, cs.Slot(1))
	})

	cs.Return(1, p)
	assert.Same(t, p, cs.Slot(1))

	cs.Clear()
	assert.True(t, cs.Empty())
}
