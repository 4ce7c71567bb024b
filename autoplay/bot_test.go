package autoplay_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/pixelblast/autoplay"
	"github.com/plus3/pixelblast/blast"
)

func piece(mask blast.Mask) *blast.Piece {
	c := blast.NewCatalog([]blast.CatalogEntry{{Mask: mask}})
	return blast.NewPiece(c, 0, 1, rand.New(rand.NewPCG(1, 1)))
}

func TestBestPrefersClears(t *testing.T) {
	board := blast.NewBoard(8)
	for x := 0; x < 6; x++ {
		board.Place([]blast.Point{{X: x, Y: 5}}, 0)
	}

	pieces := []*blast.Piece{piece(0x01), nil, piece(0x03)}
	m, ok := autoplay.Best(board, pieces, nil)
	require.True(t, ok)
	assert.Equal(t, autoplay.Move{Slot: 2, X: 6, Y: 5, Score: m.Score}, m)
	assert.GreaterOrEqual(t, m.Score, 8*100)
}

func TestBestPrefersCorners(t *testing.T) {
	board := blast.NewBoard(8)
	m, ok := autoplay.Best(board, []*blast.Piece{piece(0x0303)}, nil)
	require.True(t, ok)
	assert.Equal(t, 0, m.X)
	assert.Equal(t, 0, m.Y)
	assert.Equal(t, 4, m.Score)
}

func TestBestNoFit(t *testing.T) {
	board := blast.NewBoard(4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if x != y {
				board.Place([]blast.Point{{X: x, Y: y}}, 0)
			}
		}
	}

	_, ok := autoplay.Best(board, []*blast.Piece{piece(0x03), piece(0x0101)}, nil)
	assert.False(t, ok)

	m, ok := autoplay.Best(board, []*blast.Piece{piece(0x03), piece(0x01)}, rand.New(rand.NewPCG(3, 4)))
	require.True(t, ok)
	assert.Equal(t, 1, m.Slot)
	assert.Equal(t, m.X, m.Y)
}

func TestBotPlaysWholeGames(t *testing.T) {
	for _, mode := range []blast.Mode{blast.ModeHold, blast.ModeClick} {
		t.Run(mode.String(), func(t *testing.T) {
			s := blast.NewSession(blast.Config{
				Mode:   mode,
				Colors: 8,
				Rand:   rand.New(rand.NewPCG(11, 12)),
			})
			bot := autoplay.New(s, rand.New(rand.NewPCG(13, 14)))

			var placed, returned, cleared int
			for i := 0; i < 5000 && !s.Over(); i++ {
				for _, e := range s.Tick(bot.Sample()) {
					switch e.(type) {
					case blast.PiecePlaced:
						placed++
					case blast.PieceReturned:
						returned++
					case blast.LinesCleared:
						cleared++
					}
				}
			}

			stats := bot.Stats()
			assert.Zero(t, returned)
			assert.Zero(t, stats.Replan)
			assert.Greater(t, placed, 10)
			assert.Greater(t, cleared, 0)
			assert.Equal(t, placed, stats.Drops)
			// A game cut off mid-drag leaves one pick without its drop.
			assert.InDelta(t, stats.Picks, stats.Drops, 1)
			assert.Positive(t, s.Score())
		})
	}
}
