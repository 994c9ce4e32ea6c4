package app

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/bvisness/flowcanvas/app/core"
)

const MinimapSize = 200
const MinimapPadding = 20

// World units of slack around the nodes.
const minimapSlack = 200

// Minimap shows every node and the visible region once the canvas holds more
// than Threshold nodes. Clicking it centres the view on that point.
type Minimap struct {
	Editor    *core.Editor
	Input     InputProvider
	Threshold int
}

func NewMinimap(e *core.Editor, in InputProvider, threshold int) *Minimap {
	return &Minimap{Editor: e, Input: in, Threshold: threshold}
}

func (m *Minimap) Visible() bool {
	return len(m.Editor.Nodes()) > m.Threshold
}

// Bounds is the minimap rect in the bottom-right corner of view.
func (m *Minimap) Bounds(view rl.Rectangle) rl.Rectangle {
	return rl.Rectangle{
		X:      view.X + view.Width - MinimapPadding - MinimapSize,
		Y:      view.Y + view.Height - MinimapPadding - MinimapSize,
		Width:  MinimapSize,
		Height: MinimapSize,
	}
}

func (m *Minimap) Contains(view rl.Rectangle, p core.V2) bool {
	return m.Visible() && rl.CheckCollisionPointRec(p, m.Bounds(view))
}

type minimapLayout struct {
	origin core.V2 // minimap top-left, viewport
	min    core.V2 // canvas point drawn at origin
	scale  float32
}

func (l minimapLayout) toMinimap(p core.V2) core.V2 {
	return rl.Vector2Add(l.origin, rl.Vector2Scale(rl.Vector2Subtract(p, l.min), l.scale))
}

func (l minimapLayout) toCanvas(p core.V2) core.V2 {
	return rl.Vector2Add(l.min, rl.Vector2Scale(rl.Vector2Subtract(p, l.origin), 1/l.scale))
}

func (m *Minimap) layout(view rl.Rectangle) minimapLayout {
	minX, minY := float32(math.Inf(1)), float32(math.Inf(1))
	maxX, maxY := float32(math.Inf(-1)), float32(math.Inf(-1))
	for _, n := range m.Editor.Nodes() {
		b := n.Bounds()
		minX = min(minX, b.X)
		minY = min(minY, b.Y)
		maxX = max(maxX, b.X+b.Width)
		maxY = max(maxY, b.Y+b.Height)
	}
	if minX > maxX {
		minX, minY, maxX, maxY = 0, 0, 0, 0
	}
	minX -= minimapSlack
	minY -= minimapSlack
	maxX += minimapSlack
	maxY += minimapSlack

	b := m.Bounds(view)
	scale := min(b.Width/(maxX-minX), b.Height/(maxY-minY))
	return minimapLayout{
		origin: core.V2{X: b.X, Y: b.Y},
		min:    core.V2{X: minX, Y: minY},
		scale:  scale,
	}
}

func (m *Minimap) Update(view rl.Rectangle) {
	if !m.Visible() || !m.Input.IsMouseButtonDown(rl.MouseLeftButton) {
		return
	}
	pos := m.Input.GetMousePosition()
	if !rl.CheckCollisionPointRec(pos, m.Bounds(view)) {
		return
	}
	m.CenterOn(view, m.layout(view).toCanvas(pos))
}

// CenterOn pans so that canvas point c sits in the middle of view.
func (m *Minimap) CenterOn(view rl.Rectangle, c core.V2) {
	cam := &m.Editor.Camera
	center := core.V2{X: view.X + view.Width/2, Y: view.Y + view.Height/2}
	cam.Pan = rl.Vector2Subtract(center, rl.Vector2Scale(c, cam.Zoom))
}

func (m *Minimap) Draw(view rl.Rectangle, style Style) {
	if !m.Visible() {
		return
	}
	b := m.Bounds(view)
	rl.DrawRectangleRec(b, rl.Fade(style.Panel, 0.8))
	rl.DrawRectangleLinesEx(b, 1, style.Highlight)

	l := m.layout(view)
	rl.BeginScissorMode(int32(b.X), int32(b.Y), int32(b.Width), int32(b.Height))
	for _, n := range m.Editor.Nodes() {
		if !n.Mounted {
			continue
		}
		nb := n.Bounds()
		tl := l.toMinimap(core.V2{X: nb.X, Y: nb.Y})
		rl.DrawRectangleV(tl, core.V2{X: nb.Width * l.scale, Y: nb.Height * l.scale}, rl.Fade(style.Port, 0.5))
	}

	cam := m.Editor.Camera
	viewTL := l.toMinimap(cam.ScreenToCanvas(core.V2{X: view.X, Y: view.Y}))
	viewBR := l.toMinimap(cam.ScreenToCanvas(core.V2{X: view.X + view.Width, Y: view.Y + view.Height}))
	rl.DrawRectangleLinesEx(rl.Rectangle{X: viewTL.X, Y: viewTL.Y, Width: viewBR.X - viewTL.X, Height: viewBR.Y - viewTL.Y}, 1, style.Text)
	rl.EndScissorMode()
}
