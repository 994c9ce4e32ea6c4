package core

import (
	"errors"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/bvisness/flowcanvas/util"
)

// RenderedEdge is one drawn edge. Index is the store index captured at draw
// time; the delete affordance removes by it.
type RenderedEdge struct {
	Index  int
	Conn   Connection
	Curve  Bezier
	Bounds rl.Rectangle
}

// Surface is the drawing target of the renderer. Nodes are drawn by the front
// end from Editor.Nodes; the surface only receives edge-layer updates.
type Surface interface {
	// Clear removes every edge drawn so far. The preview is left alone.
	Clear()
	DrawEdge(e RenderedEdge)
	// DrawPreview replaces the preview curve; nil hides it.
	DrawPreview(curve *Bezier)
	// DrawDeleteAffordance shows the trash button at r; nil hides it.
	DrawDeleteAffordance(r *rl.Rectangle)
}

type nopSurface struct{}

func (nopSurface) Clear()                             {}
func (nopSurface) DrawEdge(RenderedEdge)              {}
func (nopSurface) DrawPreview(*Bezier)                {}
func (nopSurface) DrawDeleteAffordance(*rl.Rectangle) {}

type deleteAffordance struct {
	Index int
	Rect  rl.Rectangle
}

// Redraw rebuilds the edge layer from the store. Edges whose endpoints are
// missing or unmounted are skipped. Any open delete affordance is closed,
// since the indices it captured may be stale.
func (e *Editor) Redraw() {
	e.CloseDeleteAffordance()
	e.surface.Clear()
	e.rendered = e.rendered[:0]

	for i, c := range e.store.conns {
		to, err := e.ResolveAnchor(c.To, RoleInput, 0, nil)
		if skipEdge(c, err) {
			continue
		}
		from, err := e.ResolveAnchor(c.From, c.FromType, c.FromPort, &to)
		if skipEdge(c, err) {
			continue
		}

		curve := NewConnectionCurve(from, to, e.opts.Curvature)
		re := RenderedEdge{Index: i, Conn: c, Curve: curve, Bounds: curve.Bounds()}
		e.rendered = append(e.rendered, re)
		e.surface.DrawEdge(re)
	}
}

// skipEdge reports whether an edge cannot be drawn this frame. Missing ports
// mean the store holds an edge no gesture could have made.
func skipEdge(c Connection, err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrNodeNotFound) || errors.Is(err, ErrNodeNotMounted) {
		return true
	}
	util.Assert(false, "edge %v: %v", c, err)
	return true
}

// RenderedEdges returns the edges drawn by the last Redraw, in paint order.
func (e *Editor) RenderedEdges() []RenderedEdge {
	return append([]RenderedEdge(nil), e.rendered...)
}

// ShowDeleteAffordance opens the delete button for the edge at store index i,
// replacing any other. It reports false if that edge was not drawn.
func (e *Editor) ShowDeleteAffordance(i int) bool {
	for _, re := range e.rendered {
		if re.Index != i {
			continue
		}
		r := centeredRect(re.Curve.Midpoint(), DeleteIconSize, DeleteIconSize)
		e.affordance = &deleteAffordance{Index: i, Rect: r}
		e.surface.DrawDeleteAffordance(&r)
		return true
	}
	return false
}

// DeleteAffordance returns the open delete button and the edge it targets.
func (e *Editor) DeleteAffordance() (index int, r rl.Rectangle, ok bool) {
	if e.affordance == nil {
		return 0, rl.Rectangle{}, false
	}
	return e.affordance.Index, e.affordance.Rect, true
}

func (e *Editor) CloseDeleteAffordance() {
	if e.affordance == nil {
		return
	}
	e.affordance = nil
	e.surface.DrawDeleteAffordance(nil)
}

// ConfirmDelete removes the edge captured by the open delete affordance.
func (e *Editor) ConfirmDelete() (Connection, bool) {
	if e.affordance == nil {
		return Connection{}, false
	}
	i := e.affordance.Index
	c, ok := e.store.At(i)
	if !ok {
		e.CloseDeleteAffordance()
		return Connection{}, false
	}

	e.store.RemoveAt(i)
	e.refreshAffordances(c.From)
	e.Redraw()
	e.log.Debugf("removed %v", c)
	return c, true
}
