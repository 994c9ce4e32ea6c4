package app

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/bvisness/flowcanvas/app/core"
)

const toolbarButtonSize = 32

type ToolbarAction int

const (
	ToolZoomIn ToolbarAction = iota
	ToolZoomOut
	ToolReset
	ToolFit

	toolCount
)

var toolLabels = [toolCount]string{"+", "-", "1:1", "Fit"}

// Toolbar is the row of camera buttons in the top-right corner of the canvas.
type Toolbar struct {
	Editor *core.Editor
	Input  InputProvider
}

func NewToolbar(e *core.Editor, in InputProvider) *Toolbar {
	return &Toolbar{Editor: e, Input: in}
}

// ButtonRect returns the rect of a button within view.
func (t *Toolbar) ButtonRect(view rl.Rectangle, a ToolbarAction) rl.Rectangle {
	right := view.X + view.Width - S3
	x := right - float32(toolCount-a)*(toolbarButtonSize+S1)
	return rl.Rectangle{X: x, Y: view.Y + S3, Width: toolbarButtonSize, Height: toolbarButtonSize}
}

// Bounds covers every button plus the zoom readout to their left.
func (t *Toolbar) Bounds(view rl.Rectangle) rl.Rectangle {
	first := t.ButtonRect(view, 0)
	last := t.ButtonRect(view, toolCount-1)
	return rl.Rectangle{X: first.X - 56, Y: first.Y, Width: last.X + last.Width - first.X + 56, Height: first.Height}
}

func (t *Toolbar) Contains(view rl.Rectangle, p core.V2) bool {
	return rl.CheckCollisionPointRec(p, t.Bounds(view))
}

func (t *Toolbar) Update(view rl.Rectangle) {
	if !t.Input.IsMouseButtonPressed(rl.MouseLeftButton) {
		return
	}
	pos := t.Input.GetMousePosition()
	for a := range toolCount {
		if rl.CheckCollisionPointRec(pos, t.ButtonRect(view, a)) {
			t.Run(a)
			return
		}
	}
}

func (t *Toolbar) Run(a ToolbarAction) {
	e := t.Editor
	switch a {
	case ToolZoomIn:
		e.ZoomIn()
	case ToolZoomOut:
		e.ZoomOut()
	case ToolReset:
		e.Reset()
	case ToolFit:
		e.FitToScreen()
	}
}

func (t *Toolbar) Draw(view rl.Rectangle, style Style) {
	mouse := t.Input.GetMousePosition()
	for a := range toolCount {
		r := t.ButtonRect(view, a)
		fill := style.Menu
		if rl.CheckCollisionPointRec(mouse, r) {
			fill = style.Highlight
		}
		rl.DrawRectangleRounded(r, radius(R2, r), 6, fill)
		drawCenteredText(toolLabels[a], r.X+r.Width/2, r.Y+(r.Height-F3)/2, F3, style.Text)
	}
	first := t.ButtonRect(view, 0)
	zoom := fmt.Sprintf("%d%%", int(t.Editor.Camera.Zoom*100+0.5))
	w := rl.MeasureText(zoom, F2)
	rl.DrawText(zoom, int32(first.X-S2)-w, int32(first.Y+(first.Height-F2)/2), F2, style.Subtle)
}
