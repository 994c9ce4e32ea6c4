package app

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bvisness/flowcanvas/app/config"
	"github.com/bvisness/flowcanvas/app/core"
	"github.com/bvisness/flowcanvas/internal/log"
)

func TestSidebar_ClickAddsToCenter(t *testing.T) {
	a, mock, frame := newTestApp(t)
	frame()

	r := a.Sidebar.itemRect(0)
	require.Equal(t, core.KindChatMessageTrigger, a.Sidebar.Items()[0].Kind)
	click(mock, frame, r.X+20, r.Y+20)

	nodes := a.Editor.Nodes()
	require.Len(t, nodes, 1)
	assert.Equal(t, core.KindChatMessageTrigger, nodes[0].Kind)
	// view is 1040x800, centred at (520, 400)
	assert.Equal(t, core.V2{X: 475, Y: 355}, nodes[0].Pos)
	_, open := a.Editor.OpenMenuNode()
	assert.False(t, open, "clicks on chrome do not reach the canvas")
}

func TestSidebar_DragOntoCanvas(t *testing.T) {
	a, mock, frame := newTestApp(t)
	a.Editor.ZoomIn()
	frame()

	r := a.Sidebar.itemRect(4)
	require.Equal(t, core.KindFilter, a.Sidebar.Items()[4].Kind)
	drag(mock, frame, core.V2{X: r.X + 20, Y: r.Y + 20}, core.V2{X: 480, Y: 360})

	nodes := a.Editor.Nodes()
	require.Len(t, nodes, 1)
	assert.Equal(t, core.KindFilter, nodes[0].Kind)
	// (480, 360) at zoom 1.2 is canvas (400, 300)
	assert.InDelta(t, 355, nodes[0].Pos.X, 1e-3)
	assert.InDelta(t, 255, nodes[0].Pos.Y, 1e-3)
	assert.Nil(t, a.Sidebar.Drag.Thing)
}

func TestSidebar_DropOnSidebarIsIgnored(t *testing.T) {
	a, mock, frame := newTestApp(t)
	frame()

	r := a.Sidebar.itemRect(1)
	drag(mock, frame, core.V2{X: r.X + 20, Y: r.Y + 20}, core.V2{X: r.X + 20, Y: r.Y + 300})
	assert.Empty(t, a.Editor.Nodes())
}

func TestSidebar_DropOnToolbarIsIgnored(t *testing.T) {
	a, mock, frame := newTestApp(t)
	frame()
	view := a.View(testWidth, testHeight)

	r := a.Sidebar.itemRect(2)
	button := a.Toolbar.ButtonRect(view, ToolZoomIn)
	drag(mock, frame, core.V2{X: r.X + 20, Y: r.Y + 20}, core.V2{X: button.X + button.Width/2, Y: button.Y + button.Height/2})

	assert.Empty(t, a.Editor.Nodes())
	assert.Equal(t, float32(1), a.Editor.Camera.Zoom, "the drop is not a toolbar press")
	assert.Nil(t, a.Sidebar.Drag.Thing)
}

func TestSidebar_Search(t *testing.T) {
	a, mock, frame := newTestApp(t)
	frame()
	a.Editor.ZoomIn()

	search := a.Sidebar.searchRect()
	click(mock, frame, search.X+10, search.Y+10)
	require.True(t, a.Sidebar.Focused)

	mock.Chars = []int32{'f', 'i', 'l', 't'}
	mock.KeysPressed[rl.KeyF] = true
	frame()
	mock.Idle()
	assert.Equal(t, "filt", a.Sidebar.Query)
	require.NotEmpty(t, a.Sidebar.Items())
	assert.Equal(t, core.KindFilter, a.Sidebar.Items()[0].Kind)
	assert.InDelta(t, 1.2, a.Editor.Camera.Zoom, 1e-6, "typing does not trigger shortcuts")

	mock.KeysPressed[rl.KeyBackspace] = true
	frame()
	mock.Idle()
	assert.Equal(t, "fil", a.Sidebar.Query)

	_, err := a.Editor.CreateNode("Filter", "f", 0, 100)
	require.NoError(t, err)
	a.Editor.OpenMenu("f")

	mock.KeysPressed[rl.KeyEscape] = true
	frame()
	mock.Idle()
	assert.Equal(t, "", a.Sidebar.Query)
	assert.False(t, a.Sidebar.Focused)
	assert.Len(t, a.Sidebar.Items(), 9)
	_, open := a.Editor.OpenMenuNode()
	assert.True(t, open, "Escape in the search field only clears the search")

	mock.KeysPressed[rl.KeyEscape] = true
	frame()
	mock.Idle()
	_, open = a.Editor.OpenMenuNode()
	assert.False(t, open)
}

func TestToolbar(t *testing.T) {
	a, mock, frame := newTestApp(t)
	view := a.View(testWidth, testHeight)
	press := func(action ToolbarAction) {
		r := a.Toolbar.ButtonRect(view, action)
		click(mock, frame, r.X+r.Width/2, r.Y+r.Height/2)
	}

	press(ToolZoomIn)
	press(ToolZoomIn)
	assert.InDelta(t, 1.44, a.Editor.Camera.Zoom, 1e-5)
	press(ToolZoomOut)
	assert.InDelta(t, 1.2, a.Editor.Camera.Zoom, 1e-5)

	a.Editor.PanBy(10, 10)
	press(ToolReset)
	assert.Equal(t, float32(1), a.Editor.Camera.Zoom)
	assert.Equal(t, core.V2{}, a.Editor.Camera.Pan)

	a.Editor.ZoomIn()
	press(ToolFit)
	assert.Equal(t, float32(1), a.Editor.Camera.Zoom)

	assert.True(t, a.Toolbar.Contains(view, core.V2{X: view.Width - 30, Y: 30}))
	assert.False(t, a.Toolbar.Contains(view, core.V2{X: 100, Y: 30}))
}

func TestMinimap(t *testing.T) {
	a, mock, frame := newTestApp(t)
	view := a.View(testWidth, testHeight)
	a.Minimap.Threshold = 1

	a.Editor.CreateNode("Filter", "a", 0, 0)
	assert.False(t, a.Minimap.Visible())
	a.Editor.CreateNode("Filter", "b", 1000, 500)
	require.True(t, a.Minimap.Visible())

	l := a.Minimap.layout(view)
	p := core.V2{X: 300, Y: 200}
	back := l.toCanvas(l.toMinimap(p))
	assert.InDelta(t, p.X, back.X, 1e-3)
	assert.InDelta(t, p.Y, back.Y, 1e-3)

	b := a.Minimap.Bounds(view)
	center := core.V2{X: b.X + b.Width/2, Y: b.Y + b.Height/2}
	target := l.toCanvas(center)
	click(mock, frame, center.X, center.Y)
	assert.InDelta(t, 520-target.X, a.Editor.Camera.Pan.X, 1e-3)
	assert.InDelta(t, 400-target.Y, a.Editor.Camera.Pan.Y, 1e-3)
}

func TestNew_TakesOverEditor(t *testing.T) {
	e := core.NewEditor(core.DefaultOptions())
	b := core.NewGraphBuilder(e)
	b.Add("GmailTrigger", "g").To(b.Add("Switch", "s").At(300, 0))

	a := New(config.Default(), NewMockInput(), log.Discard(), e)
	assert.Same(t, e, a.Editor)
	assert.Len(t, a.Surface.Edges(), 1)
	require.NotNil(t, e.Hooks.OnConnect)
}
