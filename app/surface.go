package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/bvisness/flowcanvas/app/core"
)

const edgeSegments = 32

// Surface implements core.Surface for the raylib window. The editor pushes
// edge-layer changes into it and the Draw methods paint them each frame in
// canvas space.
type Surface struct {
	Style Style

	edges      []core.RenderedEdge
	preview    *core.Bezier
	affordance *rl.Rectangle
}

var _ core.Surface = &Surface{}

func NewSurface(style Style) *Surface {
	return &Surface{Style: style}
}

func (s *Surface) Clear() {
	s.edges = s.edges[:0]
}

func (s *Surface) DrawEdge(e core.RenderedEdge) {
	s.edges = append(s.edges, e)
}

func (s *Surface) DrawPreview(curve *core.Bezier) {
	if curve == nil {
		s.preview = nil
		return
	}
	c := *curve
	s.preview = &c
}

func (s *Surface) DrawDeleteAffordance(r *rl.Rectangle) {
	if r == nil {
		s.affordance = nil
		return
	}
	rr := *r
	s.affordance = &rr
}

func (s *Surface) Edges() []core.RenderedEdge {
	return s.edges
}

// DrawEdges paints the stored edges. Like DrawOverlay it must be called
// between BeginMode2D and EndMode2D.
func (s *Surface) DrawEdges() {
	for _, e := range s.edges {
		s.drawCurve(e.Curve, s.Style.Edge, true)
	}
}

// DrawOverlay paints the preview and the delete affordance above the nodes.
func (s *Surface) DrawOverlay() {
	if s.preview != nil {
		s.drawCurve(*s.preview, rl.Fade(s.Style.Edge, 0.6), false)
	}
	if s.affordance != nil {
		drawTrash(*s.affordance, s.Style)
	}
}

func (s *Surface) drawCurve(b core.Bezier, col rl.Color, arrow bool) {
	pts := b.Points(edgeSegments)
	for i := 1; i < len(pts); i++ {
		rl.DrawLineEx(pts[i-1], pts[i], s.Style.EdgeWidth, col)
	}
	if arrow && len(pts) >= 2 {
		drawArrowHead(pts[len(pts)-2], pts[len(pts)-1], 10, col)
	}
}

func drawArrowHead(from, tip core.V2, size float32, col rl.Color) {
	dir := rl.Vector2Normalize(rl.Vector2Subtract(tip, from))
	if dir == (core.V2{}) {
		return
	}
	back := rl.Vector2Subtract(tip, rl.Vector2Scale(dir, size))
	side := rl.Vector2Scale(core.V2{X: -dir.Y, Y: dir.X}, size/2)
	fillTriangle(tip, rl.Vector2Subtract(back, side), rl.Vector2Add(back, side), col)
}

func drawTrash(r rl.Rectangle, style Style) {
	rl.DrawRectangleRounded(r, radius(R2, r), 6, style.Menu)
	rl.DrawRectangleLinesEx(r, 1, style.Delete)
	drawTrashGlyph(r, style.Delete)
}
