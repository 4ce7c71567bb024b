package leaderboard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plus3/pixelblast/leaderboard"
)

func TestRank(t *testing.T) {
	list := []leaderboard.Stats{
		{ID: 1, Name: "a", MaxPoints: 10},
		{ID: 2, Name: "b", MaxPoints: 50},
		{ID: 3, Name: "c", MaxPoints: 30},
		{ID: 4, Name: "d", MaxPoints: 30},
	}

	assert.Equal(t, 1, leaderboard.Rank(list, 2))
	assert.Equal(t, 2, leaderboard.Rank(list, 3))
	assert.Equal(t, 3, leaderboard.Rank(list, 4))
	assert.Equal(t, 4, leaderboard.Rank(list, 1))
	assert.Equal(t, 0, leaderboard.Rank(list, 99))
	assert.Equal(t, 0, leaderboard.Rank(nil, 1))

	// The input order is untouched.
	assert.Equal(t, int64(1), list[0].ID)
}
