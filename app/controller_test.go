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

const (
	testWidth  = 1280
	testHeight = 800
)

func newTestApp(t *testing.T) (*App, *MockInputProvider, func()) {
	t.Helper()
	mock := NewMockInput()
	a := New(config.Default(), mock, log.Discard(), nil)
	frame := func() {
		a.Update(testWidth, testHeight)
	}
	return a, mock, frame
}

// click presses and releases at one point over two frames.
func click(mock *MockInputProvider, frame func(), x, y float32) {
	mock.Press(x, y)
	frame()
	mock.Release(x, y)
	frame()
	mock.Idle()
}

func drag(mock *MockInputProvider, frame func(), from, to core.V2) {
	mock.Press(from.X, from.Y)
	frame()
	mid := rl.Vector2Lerp(from, to, 0.5)
	mock.Hold(mid.X, mid.Y)
	frame()
	mock.Hold(to.X, to.Y)
	frame()
	mock.Release(to.X, to.Y)
	frame()
	mock.Idle()
}

func TestController_ConnectByMouse(t *testing.T) {
	a, mock, frame := newTestApp(t)
	e := a.Editor
	_, err := e.CreateNode("ChatMessageTrigger", "A", 0, 0)
	require.NoError(t, err)
	_, err = e.CreateNode("Filter", "B", 300, 0)
	require.NoError(t, err)

	mock.Press(150, 45)
	frame()
	require.Equal(t, core.ConnectDragging, e.ConnectState())
	mock.Hold(220, 60)
	frame()
	_, ok := e.Preview()
	assert.True(t, ok)
	mock.Release(290, 45)
	frame()
	mock.Idle()

	conns := e.Connections()
	require.Len(t, conns, 1)
	assert.Equal(t, core.Connection{From: "A", FromType: core.RoleOutput, To: "B"}, conns[0])
	assert.Len(t, a.Surface.Edges(), 1)
	_, open := e.OpenMenuNode()
	assert.False(t, open, "a drag is not a click")
}

func TestController_ClicksAndMenu(t *testing.T) {
	a, mock, frame := newTestApp(t)
	e := a.Editor
	b := core.NewGraphBuilder(e)
	// Low enough that the menu above A stays inside the view.
	b.Add("ChatMessageTrigger", "A").At(0, 100).To(b.Add("Filter", "B").At(300, 100))
	require.Len(t, e.Connections(), 1)

	click(mock, frame, 40, 140)
	id, open := e.OpenMenuNode()
	require.True(t, open)
	assert.Equal(t, "A", id)

	power, _ := e.Nodes()[0].ElementRect(core.ElemMenuItem, int(core.MenuPower))
	click(mock, frame, power.X+power.Width/2, power.Y+power.Height/2)
	n, _ := e.Node("A")
	assert.True(t, n.Disabled)

	click(mock, frame, 194, 145)
	idx, _, ok := e.DeleteAffordance()
	require.True(t, ok)
	assert.Equal(t, 0, idx)

	mock.KeysPressed[rl.KeyDelete] = true
	frame()
	mock.Idle()
	assert.Empty(t, e.Connections())
}

func TestController_WheelAndShortcuts(t *testing.T) {
	a, mock, frame := newTestApp(t)
	e := a.Editor

	mock.MousePos = rl.Vector2{X: 300, Y: 300}
	mock.Wheel = 1
	frame()
	mock.Idle()
	assert.InDelta(t, 1.2, e.Camera.Zoom, 1e-6)

	mock.MousePos = rl.Vector2{X: testWidth - 10, Y: 300}
	mock.Wheel = -1
	frame()
	mock.Idle()
	assert.InDelta(t, 1.2, e.Camera.Zoom, 1e-6, "wheel over the sidebar does not zoom")

	mock.KeysPressed[rl.KeyMinus] = true
	frame()
	mock.Idle()
	assert.InDelta(t, 1, e.Camera.Zoom, 1e-6)

	e.PanBy(30, 40)
	mock.KeysPressed[rl.KeyZero] = true
	frame()
	mock.Idle()
	assert.Equal(t, core.V2{}, e.Camera.Pan)
}

func TestController_PanModifier(t *testing.T) {
	a, mock, frame := newTestApp(t)
	e := a.Editor
	a.Controller.PanKeys = ParsePanKey("shift")

	mock.KeysDown[rl.KeyLeftShift] = true
	drag(mock, frame, core.V2{X: 600, Y: 600}, core.V2{X: 650, Y: 620})
	assert.Equal(t, core.V2{X: 50, Y: 20}, e.Camera.Pan)
	_, open := e.OpenMenuNode()
	assert.False(t, open)

	mock.KeysDown[rl.KeyLeftShift] = false
	drag(mock, frame, core.V2{X: 600, Y: 600}, core.V2{X: 700, Y: 700})
	assert.Equal(t, core.V2{X: 50, Y: 20}, e.Camera.Pan, "no pan without the modifier")
}

func TestController_EscapeCancelsConnect(t *testing.T) {
	a, mock, frame := newTestApp(t)
	e := a.Editor
	n, _ := e.CreateNode("GmailTrigger", "g", 0, 0)
	e.CreateNode("Switch", "s", 300, 0)

	mock.Press(150, 45)
	frame()
	mock.Hold(250, 45)
	frame()
	require.False(t, n.PlusVisible)

	mock.KeysPressed[rl.KeyEscape] = true
	frame()
	mock.KeysPressed[rl.KeyEscape] = false
	assert.Equal(t, core.ConnectIdle, e.ConnectState())
	assert.True(t, n.PlusVisible)

	mock.Release(290, 45)
	frame()
	mock.Idle()
	assert.Empty(t, e.Connections())
}

func TestParsePanKey(t *testing.T) {
	assert.Equal(t, []int32{rl.KeySpace}, ParsePanKey(" Space "))
	assert.Equal(t, PanKeys["ctrl"], ParsePanKey("hyper"))
}
