package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/lidscene/choreo"
)

// Input holds the polled input state for one frame.
type Input struct {
	// CursorX/Y are the pointer position in window pixels.
	CursorX, CursorY float64
	// Moved is true when the pointer moved since the previous frame.
	Moved bool
	// ActivatePressed is true on the frame Enter was pressed.
	ActivatePressed bool
	// ReloadPressed is true on the frame F5 was pressed.
	ReloadPressed bool
	// CopyPosePressed is true on the frame C was pressed.
	CopyPosePressed bool
	// BackPressed is true on the frame Escape or Backspace was pressed.
	BackPressed bool
	// QuitPressed is true on the frame F12 was pressed.
	QuitPressed bool

	hasCursor bool
}

func NewInput() *Input {
	return &Input{}
}

// Update polls the keyboard and pointer.
func (i *Input) Update() {
	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)
	i.Moved = !i.hasCursor || x != i.CursorX || y != i.CursorY
	i.CursorX, i.CursorY = x, y
	i.hasCursor = true

	i.ActivatePressed = inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter)
	i.ReloadPressed = inpututil.IsKeyJustPressed(ebiten.KeyF5)
	i.CopyPosePressed = inpututil.IsKeyJustPressed(ebiten.KeyC)
	i.BackPressed = inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyBackspace)
	i.QuitPressed = inpututil.IsKeyJustPressed(ebiten.KeyF12)
}

// Messages converts this frame's input into session messages, pointer first.
func (i *Input) Messages() []any {
	if i == nil {
		return nil
	}
	var msgs []any
	if i.Moved {
		msgs = append(msgs, choreo.PointerMoved{X: i.CursorX, Y: i.CursorY})
	}
	if i.ActivatePressed {
		msgs = append(msgs, choreo.ActivateRequested{})
	}
	return msgs
}
