package app

import (
	"errors"

	"github.com/plus3/pixelblast/leaderboard"
	"github.com/plus3/pixelblast/locale"
)

// HUD returns the status lines shown above the board: score and best, the
// round, and the connection state or rank.
func (g *Game) HUD(strings *locale.Strings) []string {
	s := g.session
	lines := []string{
		strings.Sprintf(locale.Score, s.Score()) + "   " + strings.Sprintf(locale.Best, g.best),
		strings.Sprintf(locale.Round, s.Round()),
	}

	switch {
	case !g.online:
		lines = append(lines, strings.Sprintf(locale.Offline))
	case g.status != leaderboard.StatusOK:
		lines = append(lines, strings.Sprintf(locale.NetworkError))
	case g.rank > 0:
		lines = append(lines, strings.Sprintf(locale.Rank, g.rank, len(g.standings)))
	}
	return lines
}

// Notice turns the result of Register into a message for the player. A nil
// error gives an empty notice; the outcome arrives on a later tick.
func (g *Game) Notice(err error, strings *locale.Strings) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrOffline):
		return strings.Sprintf(locale.EnableOnline)
	case errors.Is(err, ErrNameTooShort):
		return strings.Sprintf(locale.NameTooShort)
	case errors.Is(err, ErrRegistered):
		return strings.Sprintf(locale.Registered, g.account.Name)
	default:
		return err.Error()
	}
}
