// Package ebiten hosts the debug UI in an ebiten window.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
)

// ImguiBackend wraps the ebiten Dear ImGui backend. It satisfies
// render.Overlay.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// New creates the backend and its window. The imgui.ini file is disabled.
func New(title string, width, height int) *ImguiBackend {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")
	return &ImguiBackend{EbitenBackend: backend}
}

func (b *ImguiBackend) BeginFrame() {
	b.EbitenBackend.BeginFrame()
}

func (b *ImguiBackend) EndFrame() {
	b.EbitenBackend.EndFrame()
}

func (b *ImguiBackend) Draw(screen *ebiten.Image) {
	b.EbitenBackend.Draw(screen)
}

func (b *ImguiBackend) Layout(width, height int) {
	b.EbitenBackend.Layout(width, height)
}
