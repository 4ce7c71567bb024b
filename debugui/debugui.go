// Package debugui draws Dear ImGui debug windows for a running game. Windows
// are emitted from a loop system so they are built inside the tick that the
// backend frame brackets.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/pixelblast/loop"
)

// Item holds a Dear ImGui render function called once per tick.
type Item struct {
	Render func()
}

// InputState tracks whether Dear ImGui is consuming mouse or keyboard input.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// System refreshes the input state and defers every item's render function
// until the tick's other systems have run.
type System struct {
	Items []Item
	Input InputState
}

// NewSystem returns a system rendering items.
func NewSystem(items ...Item) *System {
	return &System{Items: items}
}

func (s *System) Execute(frame *loop.Frame) {
	io := imgui.CurrentIO()
	s.Input.WantCaptureMouse = io.WantCaptureMouse()
	s.Input.WantCaptureKeyboard = io.WantCaptureKeyboard()

	for _, item := range s.Items {
		frame.Commands.Defer(item.Render)
	}
}

// CapturesMouse reports whether the last tick's windows wanted the mouse.
// It suits render.Sampler's Blocked hook.
func (s *System) CapturesMouse() bool {
	return s.Input.WantCaptureMouse
}

// CapturesKeyboard reports whether the last tick's windows wanted the
// keyboard.
func (s *System) CapturesKeyboard() bool {
	return s.Input.WantCaptureKeyboard
}
