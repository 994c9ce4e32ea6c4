package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCamera_Zoom(t *testing.T) {
	e := NewEditor(DefaultOptions())

	for range 5 {
		e.ZoomIn()
	}
	assert.InDelta(t, 2.48832, e.Camera.Zoom, 1e-4)
	for range 2 {
		e.ZoomIn()
	}
	assert.Equal(t, float32(3.0), e.Camera.Zoom)
	e.ZoomIn()
	assert.Equal(t, float32(3.0), e.Camera.Zoom)

	e.Reset()
	for range 7 {
		e.ZoomOut()
	}
	assert.Equal(t, float32(0.3), e.Camera.Zoom)

	e.PanBy(10, -4)
	e.PanBy(5, 4)
	assert.Equal(t, V2{X: 15, Y: 0}, e.Camera.Pan)

	e.FitToScreen()
	assert.Equal(t, float32(1), e.Camera.Zoom)
	assert.Equal(t, V2{}, e.Camera.Pan)
}

func TestCamera_Mapping(t *testing.T) {
	c := NewCamera()
	c.Zoom = 2
	c.Pan = V2{X: 100, Y: 50}

	assert.Equal(t, V2{X: 120, Y: 70}, c.CanvasToScreen(V2{X: 10, Y: 10}))
	assert.Equal(t, V2{X: 10, Y: 10}, c.ScreenToCanvas(V2{X: 120, Y: 70}))
}

func TestZoomDoesNotMoveNodes(t *testing.T) {
	e := NewEditor(DefaultOptions())
	n, _ := e.CreateNode("Filter", "f", 40, 40)
	e.ZoomIn()
	e.PanBy(30, 30)
	assert.Equal(t, V2{X: 40, Y: 40}, n.Pos)

	// The same canvas point is hit through the transform.
	assert.Equal(t, "f", e.HitTest(e.Camera.ScreenToCanvas(e.Camera.CanvasToScreen(V2{X: 50, Y: 50}))).NodeID)
}

func TestPointer_NodeDrag(t *testing.T) {
	e, surface := newTestEditor(t)
	b := NewGraphBuilder(e)
	a := b.Add("ChatMessageTrigger", "a").At(0, 0)
	a.To(b.Add("Filter", "f").At(300, 10))
	clears := surface.clears

	e.PointerDown(V2{X: 45, Y: 45}, Modifiers{})
	e.PointerMove(V2{X: 46, Y: 46})
	assert.Equal(t, V2{}, a.Node.Pos, "below the drag threshold")

	e.PointerMove(V2{X: 65, Y: 55})
	assert.Equal(t, V2{X: 20, Y: 10}, a.Node.Pos)
	assert.Greater(t, surface.clears, clears, "edges follow the node")
	assert.InDelta(t, 118, surface.edges[0].Curve.P0.X, 1e-3)
	assert.InDelta(t, 55, surface.edges[0].Curve.P0.Y, 1e-3)
	assert.True(t, e.PointerUp(V2{X: 65, Y: 55}))

	// A press and release in place is a click, not a drag.
	e.PointerDown(V2{X: 45, Y: 45}, Modifiers{})
	assert.False(t, e.PointerUp(V2{X: 45, Y: 45}))
}

func TestPointer_NodeDragScalesWithZoom(t *testing.T) {
	e := NewEditor(DefaultOptions())
	n, _ := e.CreateNode("Filter", "f", 0, 0)
	e.Camera.Zoom = 2

	e.PointerDown(V2{X: 40, Y: 40}, Modifiers{})
	e.PointerMove(V2{X: 60, Y: 50})
	e.PointerUp(V2{X: 60, Y: 50})
	assert.Equal(t, V2{X: 10, Y: 5}, n.Pos)
}

func TestPointer_NoNodeDragFromPortsOrWithPanModifier(t *testing.T) {
	e := NewEditor(DefaultOptions())
	n, _ := e.CreateNode("ChatMessageTrigger", "a", 0, 0)

	// The dot is not eligible yet; the press is swallowed, not passed to the body.
	e.PointerDown(V2{X: 92, Y: 45}, Modifiers{})
	e.PointerMove(V2{X: 150, Y: 100})
	e.PointerUp(V2{X: 150, Y: 100})
	assert.Equal(t, V2{}, n.Pos)
	assert.Equal(t, ConnectIdle, e.ConnectState())

	e.PointerDown(V2{X: 45, Y: 45}, Modifiers{Pan: true})
	e.PointerMove(V2{X: 100, Y: 100})
	e.PointerUp(V2{X: 100, Y: 100})
	assert.Equal(t, V2{}, n.Pos)
	assert.Equal(t, V2{}, e.Camera.Pan, "pan does not start over a node")
}

func TestPointer_Pan(t *testing.T) {
	e := NewEditor(DefaultOptions())
	_, _ = e.CreateNode("Filter", "f", 0, 0)

	e.PointerDown(V2{X: 500, Y: 500}, Modifiers{})
	e.PointerMove(V2{X: 520, Y: 510})
	e.PointerUp(V2{X: 520, Y: 510})
	assert.Equal(t, V2{}, e.Camera.Pan, "no modifier, no pan")

	e.PointerDown(V2{X: 500, Y: 500}, Modifiers{Pan: true, OverChrome: true})
	e.PointerMove(V2{X: 520, Y: 510})
	e.PointerUp(V2{X: 520, Y: 510})
	assert.Equal(t, V2{}, e.Camera.Pan, "no pan from the sidebar")

	e.PointerDown(V2{X: 500, Y: 500}, Modifiers{Pan: true})
	e.PointerMove(V2{X: 520, Y: 510})
	assert.Equal(t, V2{X: 20, Y: 10}, e.Camera.Pan)
	assert.True(t, e.PointerUp(V2{X: 530, Y: 530}))
	assert.Equal(t, V2{X: 20, Y: 10}, e.Camera.Pan)

	// Panned view: the filter body is now at screen (20, 10).
	e.PointerDown(V2{X: 25, Y: 15}, Modifiers{Pan: true})
	e.PointerMove(V2{X: 100, Y: 100})
	e.PointerUp(V2{X: 100, Y: 100})
	assert.Equal(t, V2{X: 20, Y: 10}, e.Camera.Pan)
}

func TestClick_DeleteAffordance(t *testing.T) {
	e, surface := newTestEditor(t)
	b := NewGraphBuilder(e)
	a := b.Add("ChatMessageTrigger", "a").At(0, 0)
	f := b.Add("Filter", "f").At(300, 200)
	a.To(f)

	re := e.RenderedEdges()
	require.Len(t, re, 1)
	onEdge := re[0].Curve.Point(0.25)

	e.Click(onEdge)
	idx, r, ok := e.DeleteAffordance()
	require.True(t, ok)
	assert.Equal(t, 0, idx)
	assert.Equal(t, float32(DeleteIconSize), r.Width)
	mid := re[0].Curve.Midpoint()
	assert.InDelta(t, mid.X, rectCenter(r).X, 1e-3)
	assert.InDelta(t, mid.Y, rectCenter(r).Y, 1e-3)
	require.NotNil(t, surface.affordance)

	// Empty canvas closes it.
	e.Click(V2{X: 900, Y: 900})
	_, _, ok = e.DeleteAffordance()
	assert.False(t, ok)
	assert.Nil(t, surface.affordance)

	e.Click(onEdge)
	e.Click(rectCenter(r))
	assert.Empty(t, e.Connections())
	assert.True(t, a.Node.PlusVisible)
	_, _, ok = e.DeleteAffordance()
	assert.False(t, ok)
}

func TestClick_AffordanceCapturesIndex(t *testing.T) {
	e, _ := newTestEditor(t)
	b := NewGraphBuilder(e)
	a := b.Add("ChatMessageTrigger", "a").At(0, 0)
	f := b.Add("Filter", "f").At(300, 0)
	g := b.Add("Filter", "g").At(300, 300)
	a.To(f)
	a.To(g)

	second := e.RenderedEdges()[1]
	e.Click(second.Curve.Point(0.5))
	idx, _, ok := e.DeleteAffordance()
	require.True(t, ok)
	assert.Equal(t, 1, idx)

	_, ok = e.ConfirmDelete()
	require.True(t, ok)
	assert.Equal(t, []Connection{{From: "a", FromType: RoleOutput, To: "f"}}, e.Connections())
	assert.False(t, a.Node.PlusVisible)
}

func TestClick_Menu(t *testing.T) {
	e := NewEditor(DefaultOptions())
	b := NewGraphBuilder(e)
	a := b.Add("Filter", "a").At(0, 100)
	b.Add("Filter", "b").At(300, 100)

	e.Click(V2{X: 40, Y: 140})
	id, open := e.OpenMenuNode()
	require.True(t, open)
	assert.Equal(t, "a", id)

	e.Click(V2{X: 340, Y: 140})
	id, _ = e.OpenMenuNode()
	assert.Equal(t, "b", id)

	e.Click(V2{X: 340, Y: 140})
	_, open = e.OpenMenuNode()
	assert.False(t, open)

	e.Click(V2{X: 40, Y: 140})
	e.Click(V2{X: 900, Y: 900})
	_, open = e.OpenMenuNode()
	assert.False(t, open, "clicks outside the node close the menu")

	// Power, then delete, through the menu items.
	e.Click(V2{X: 40, Y: 140})
	power, _ := a.Node.ElementRect(ElemMenuItem, int(MenuPower))
	e.Click(rectCenter(power))
	assert.True(t, a.Node.Disabled)
	_, open = e.OpenMenuNode()
	assert.False(t, open)

	e.Click(V2{X: 40, Y: 140})
	del, _ := a.Node.ElementRect(ElemMenuItem, int(MenuDelete))
	e.Click(rectCenter(del))
	_, ok := e.Node("a")
	assert.False(t, ok)
}

func TestCancel(t *testing.T) {
	e, surface := newTestEditor(t)
	a, _ := e.CreateNode("ChatMessageTrigger", "a", 0, 0)
	f, _ := e.CreateNode("Filter", "f", 300, 0)

	e.PointerDown(V2{X: 150, Y: 45}, Modifiers{})
	e.PointerMove(V2{X: 200, Y: 60})
	require.Equal(t, ConnectDragging, e.ConnectState())
	e.Cancel()
	assert.Equal(t, ConnectIdle, e.ConnectState())
	assert.True(t, a.PlusVisible)
	assert.Nil(t, surface.preview)
	assert.False(t, e.PointerUp(V2{X: 290, Y: 45}), "the canceled gesture is gone")
	assert.Empty(t, e.Connections())

	e.PointerDown(V2{X: 340, Y: 40}, Modifiers{})
	e.PointerMove(V2{X: 400, Y: 100})
	require.Equal(t, V2{X: 360, Y: 60}, f.Pos)
	e.Cancel()
	assert.Equal(t, V2{X: 300, Y: 0}, f.Pos)

	e.PointerDown(V2{X: 600, Y: 600}, Modifiers{Pan: true})
	e.PointerMove(V2{X: 620, Y: 610})
	e.Cancel()
	assert.Equal(t, V2{}, e.Camera.Pan)
}
