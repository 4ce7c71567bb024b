package debugui

import (
	"context"
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/pixelblast/app"
	"github.com/plus3/pixelblast/blast"
)

// SessionWindow inspects a running game and exposes its player controls.
type SessionWindow struct {
	ctx    context.Context
	game   *app.Game
	name   string
	notice string
}

func NewSessionWindow(ctx context.Context, game *app.Game) *SessionWindow {
	return &SessionWindow{ctx: ctx, game: game}
}

func (w *SessionWindow) Item() Item {
	return Item{Render: w.Render}
}

func (w *SessionWindow) Render() {
	s := w.game.Session()

	imgui.SetNextWindowPosV(imgui.NewVec2(400, 440), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(420, 360), imgui.CondOnce)

	if !imgui.BeginV("Session", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	if s.Over() {
		imgui.TextColored(imgui.NewVec4(1.0, 0.4, 0.4, 1.0), s.Phase().String())
	} else {
		imgui.TextColored(imgui.NewVec4(0.0, 1.0, 0.0, 1.0), s.Phase().String())
	}
	imgui.Text(fmt.Sprintf("Mode: %s | Dealing: %s", s.Mode(), s.Policy()))
	imgui.Text(fmt.Sprintf("Score: %d | Best: %d | Round: %d", s.Score(), w.game.Best(), s.Round()))
	imgui.Text(fmt.Sprintf("Frames: %d | Animation: %d", s.Frames(), s.AnimationFrame()))
	imgui.Text(fmt.Sprintf("Free Cells: %d", s.Board().FreeCells()))

	if imgui.TreeNodeStr("Slots") {
		_, origin := s.Active()
		for i, line := range SlotLines(s) {
			if i == origin {
				line += " (dragging)"
			}
			imgui.BulletText(line)
		}
		imgui.TreePop()
	}

	imgui.Separator()
	if imgui.Button("Restart") {
		w.game.Restart()
	}
	imgui.SameLine()
	online := w.game.Online()
	if imgui.Checkbox("Online", &online) {
		w.game.SetOnline(online)
	}

	w.renderAccount()
	imgui.End()
}

func (w *SessionWindow) renderAccount() {
	acc, registered := w.game.Account()
	imgui.Text(fmt.Sprintf("Leaderboard: %s", w.game.Status()))

	if !registered {
		imgui.SetNextItemWidth(200)
		imgui.InputTextWithHint("##name", "Player name", &w.name, imgui.InputTextFlagsNone, nil)
		imgui.SameLine()
		if imgui.Button("Register") {
			w.notice = ""
			if err := w.game.Register(w.name); err != nil {
				w.notice = err.Error()
			}
		}
		if w.game.Pending() {
			imgui.Text("Registering...")
		}
		if w.notice != "" {
			imgui.TextColored(imgui.NewVec4(1.0, 0.8, 0.0, 1.0), w.notice)
		}
		return
	}

	imgui.Text(fmt.Sprintf("Player %d: %s (best %d, rank %d)", acc.ID, acc.Name, acc.BestScore, w.game.Rank()))
	if imgui.Button("Reset ID") {
		if err := w.game.ResetAccount(w.ctx); err != nil {
			w.notice = err.Error()
		}
	}

	standings := w.game.Standings()
	if len(standings) == 0 {
		return
	}
	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsScrollY
	if imgui.BeginTableV("Standings", 3, tableFlags, imgui.NewVec2(0, 150), 0) {
		imgui.TableSetupColumn("#")
		imgui.TableSetupColumn("Name")
		imgui.TableSetupColumn("Max Points")
		imgui.TableHeadersRow()
		for i, st := range standings {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", i+1))
			imgui.TableNextColumn()
			imgui.Text(st.Name)
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", st.MaxPoints))
		}
		imgui.EndTable()
	}
}

// SlotLines describes each candidate slot: its shape index, block count and
// color, or "empty".
func SlotLines(s *blast.Session) []string {
	pieces := s.Candidates().Pieces()
	lines := make([]string, len(pieces))
	for i, p := range pieces {
		if active, origin := s.Active(); p == nil && origin == i {
			p = active
		}
		if p == nil {
			lines[i] = fmt.Sprintf("%d: empty", i)
			continue
		}
		lines[i] = fmt.Sprintf("%d: shape %d, %d blocks, %dx%d, color %d", i, p.Shape, len(p.Cells), p.Columns, p.Rows, p.Color)
	}
	return lines
}
