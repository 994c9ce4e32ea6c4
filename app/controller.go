package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/bvisness/flowcanvas/app/core"
)

// Controller feeds one frame of raylib input into the editor's pointer and
// camera operations.
type Controller struct {
	Editor  *core.Editor
	Input   InputProvider
	PanKeys []int32

	// Chrome reports whether a viewport point is covered by front-end UI.
	Chrome func(p core.V2) bool
	// Typing suppresses keyboard shortcuts, Escape included, while a text
	// field has focus.
	Typing func() bool

	pressed     bool
	pressChrome bool
	last        core.V2
}

func NewController(e *core.Editor, in InputProvider, panKey string) *Controller {
	return &Controller{
		Editor:  e,
		Input:   in,
		PanKeys: ParsePanKey(panKey),
	}
}

func (c *Controller) overChrome(p core.V2) bool {
	return c.Chrome != nil && c.Chrome(p)
}

// Update is called once per frame.
func (c *Controller) Update() {
	e, in := c.Editor, c.Input
	pos := in.GetMousePosition()
	chrome := c.overChrome(pos)

	if in.IsKeyPressed(rl.KeyEscape) && !c.typing() {
		e.Cancel()
		c.pressed = false
	}
	c.shortcuts()

	if wheel := in.GetMouseWheelMove(); wheel != 0 && !chrome {
		if wheel > 0 {
			e.ZoomIn()
		} else {
			e.ZoomOut()
		}
	}

	if in.IsMouseButtonPressed(rl.MouseLeftButton) {
		e.PointerDown(pos, core.Modifiers{Pan: anyKeyDown(in, c.PanKeys), OverChrome: chrome})
		c.pressed = true
		c.pressChrome = chrome
		c.last = pos
		return
	}

	if c.pressed && pos != c.last {
		e.PointerMove(pos)
		c.last = pos
	}

	if in.IsMouseButtonReleased(rl.MouseLeftButton) {
		dragged := e.PointerUp(pos)
		if c.pressed && !dragged && !c.pressChrome && !chrome {
			e.Click(pos)
		}
		c.pressed = false
	}
}

func (c *Controller) typing() bool {
	return c.Typing != nil && c.Typing()
}

func (c *Controller) shortcuts() {
	if c.typing() {
		return
	}
	e, in := c.Editor, c.Input
	switch {
	case in.IsKeyPressed(rl.KeyEqual), in.IsKeyPressed(rl.KeyKpAdd):
		e.ZoomIn()
	case in.IsKeyPressed(rl.KeyMinus), in.IsKeyPressed(rl.KeyKpSubtract):
		e.ZoomOut()
	case in.IsKeyPressed(rl.KeyZero):
		e.Reset()
	case in.IsKeyPressed(rl.KeyF):
		e.FitToScreen()
	case in.IsKeyPressed(rl.KeyDelete), in.IsKeyPressed(rl.KeyBackspace):
		e.ConfirmDelete()
	}
}
