package core

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/bvisness/flowcanvas/util"
)

const (
	DefaultZoomStep = 1.2
	DefaultMinZoom  = 0.3
	DefaultMaxZoom  = 3.0
)

// Camera is the view transform of a canvas: screen = canvas*Zoom + Pan. It
// never touches node positions.
type Camera struct {
	Zoom float32
	Pan  V2

	Step     float32
	Min, Max float32
}

func NewCamera() Camera {
	return Camera{
		Zoom: 1,
		Step: DefaultZoomStep,
		Min:  DefaultMinZoom,
		Max:  DefaultMaxZoom,
	}
}

func (c *Camera) ZoomIn() {
	c.Zoom = util.Clamp(c.Zoom*c.Step, c.Min, c.Max)
}

func (c *Camera) ZoomOut() {
	c.Zoom = util.Clamp(c.Zoom/c.Step, c.Min, c.Max)
}

func (c *Camera) PanBy(dx, dy float32) {
	c.Pan = rl.Vector2Add(c.Pan, V2{X: dx, Y: dy})
}

func (c *Camera) Reset() {
	c.Zoom = 1
	c.Pan = V2{}
}

// FitToScreen is the same as Reset for now.
// TODO: frame the bounding box of all mounted nodes instead.
func (c *Camera) FitToScreen() {
	c.Reset()
}

// CanvasToScreen converts a canvas position to viewport coordinates.
func (c *Camera) CanvasToScreen(p V2) V2 {
	return rl.Vector2Add(rl.Vector2Scale(p, c.Zoom), c.Pan)
}

// ScreenToCanvas converts a viewport position to canvas coordinates.
func (c *Camera) ScreenToCanvas(p V2) V2 {
	return rl.Vector2Scale(rl.Vector2Subtract(p, c.Pan), 1/c.Zoom)
}

// Camera2D returns the equivalent raylib camera for BeginMode2D.
func (c *Camera) Camera2D() rl.Camera2D {
	return rl.Camera2D{Offset: c.Pan, Zoom: c.Zoom}
}
