package app

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockInputProvider struct {
	KeysPressed     map[int32]bool
	KeysDown        map[int32]bool
	Chars           []int32
	ButtonsPressed  map[rl.MouseButton]bool
	ButtonsReleased map[rl.MouseButton]bool
	ButtonsUp       map[rl.MouseButton]bool
	ButtonsDown     map[rl.MouseButton]bool
	MousePos        rl.Vector2
	Wheel           float32
}

func (m *MockInputProvider) IsKeyPressed(key int32) bool {
	return m.KeysPressed[key]
}
func (m *MockInputProvider) IsKeyDown(key int32) bool {
	return m.KeysDown[key]
}
func (m *MockInputProvider) GetCharPressed() int32 {
	if len(m.Chars) == 0 {
		return 0
	}
	ch := m.Chars[0]
	m.Chars = m.Chars[1:]
	return ch
}
func (m *MockInputProvider) IsMouseButtonPressed(button rl.MouseButton) bool {
	return m.ButtonsPressed[button]
}
func (m *MockInputProvider) IsMouseButtonReleased(button rl.MouseButton) bool {
	return m.ButtonsReleased[button]
}
func (m *MockInputProvider) IsMouseButtonUp(button rl.MouseButton) bool {
	return m.ButtonsUp[button]
}
func (m *MockInputProvider) IsMouseButtonDown(button rl.MouseButton) bool {
	return m.ButtonsDown[button]
}
func (m *MockInputProvider) GetMousePosition() rl.Vector2 {
	return m.MousePos
}
func (m *MockInputProvider) GetMouseWheelMove() float32 {
	return m.Wheel
}

func NewMockInput() *MockInputProvider {
	m := &MockInputProvider{
		KeysPressed:     make(map[int32]bool),
		KeysDown:        make(map[int32]bool),
		ButtonsPressed:  make(map[rl.MouseButton]bool),
		ButtonsReleased: make(map[rl.MouseButton]bool),
		ButtonsUp:       make(map[rl.MouseButton]bool),
		ButtonsDown:     make(map[rl.MouseButton]bool),
	}
	m.ButtonsUp[rl.MouseLeftButton] = true
	return m
}

// Frame helpers. Each call sets up the left button for one frame.

func (m *MockInputProvider) Press(x, y float32) {
	m.MousePos = rl.Vector2{X: x, Y: y}
	m.ButtonsPressed[rl.MouseLeftButton] = true
	m.ButtonsDown[rl.MouseLeftButton] = true
	m.ButtonsUp[rl.MouseLeftButton] = false
	m.ButtonsReleased[rl.MouseLeftButton] = false
}

func (m *MockInputProvider) Hold(x, y float32) {
	m.MousePos = rl.Vector2{X: x, Y: y}
	m.ButtonsPressed[rl.MouseLeftButton] = false
	m.ButtonsDown[rl.MouseLeftButton] = true
}

func (m *MockInputProvider) Release(x, y float32) {
	m.MousePos = rl.Vector2{X: x, Y: y}
	m.ButtonsPressed[rl.MouseLeftButton] = false
	m.ButtonsDown[rl.MouseLeftButton] = false
	m.ButtonsReleased[rl.MouseLeftButton] = true
}

func (m *MockInputProvider) Idle() {
	m.ButtonsPressed[rl.MouseLeftButton] = false
	m.ButtonsDown[rl.MouseLeftButton] = false
	m.ButtonsReleased[rl.MouseLeftButton] = false
	m.ButtonsUp[rl.MouseLeftButton] = true
	clear(m.KeysPressed)
	m.Wheel = 0
}

func TestDragState_Lifecycle(t *testing.T) {
	mock := NewMockInput()
	d := DragState{Input: mock}

	d.Update()
	assert.False(t, d.Pending || d.Dragging, "should be idle")

	mock.Press(100, 100)
	d.Update()
	require.True(t, d.Pending)
	assert.Equal(t, rl.Vector2{X: 100, Y: 100}, d.MouseStart)

	thing := "my object"
	region := rl.Rectangle{X: 0, Y: 0, Width: 200, Height: 200}
	mock.Hold(101, 101)
	assert.False(t, d.TryStartDrag(thing, region, rl.Vector2{}), "movement too small")

	mock.Hold(105, 105)
	require.True(t, d.TryStartDrag(thing, region, rl.Vector2{X: 10, Y: 10}))
	assert.True(t, d.Dragging)
	assert.False(t, d.Pending)
	assert.Equal(t, thing, d.Thing)
	assert.Equal(t, rl.Vector2{X: 15, Y: 15}, d.NewObjPosition())

	d.Update()
	assert.True(t, d.Dragging, "should still be dragging")

	mock.Release(105, 105)
	d.Update()
	assert.False(t, d.Dragging)
	matches, done, canceled := d.State(thing)
	assert.True(t, matches)
	assert.True(t, done)
	assert.False(t, canceled)

	mock.Idle()
	d.Update()
	assert.Nil(t, d.Thing, "thing should be cleared")
}

func TestDragState_Cancel(t *testing.T) {
	mock := NewMockInput()
	d := DragState{Input: mock}

	mock.Press(100, 100)
	d.Update()
	mock.Hold(110, 110)
	require.True(t, d.TryStartDrag("thing", rl.Rectangle{X: 0, Y: 0, Width: 200, Height: 200}, rl.Vector2{}))

	mock.KeysPressed[rl.KeyEscape] = true
	d.Update()
	assert.False(t, d.Dragging)
	assert.True(t, d.Canceled)
	_, done, canceled := d.State("thing")
	assert.True(t, done)
	assert.True(t, canceled)
}

func TestDragState_WrongRegionOrThreshold(t *testing.T) {
	mock := NewMockInput()
	d := DragState{Input: mock, Threshold: 20}

	mock.Press(100, 100)
	d.Update()
	mock.Hold(110, 110)
	assert.False(t, d.TryStartDrag("thing", rl.Rectangle{X: 0, Y: 0, Width: 200, Height: 200}, rl.Vector2{}), "below custom threshold")
	mock.Hold(150, 150)
	assert.False(t, d.TryStartDrag("thing", rl.Rectangle{X: 300, Y: 300, Width: 10, Height: 10}, rl.Vector2{}), "started outside region")
	assert.True(t, d.TryStartDrag("thing", rl.Rectangle{X: 0, Y: 0, Width: 200, Height: 200}, rl.Vector2{}))
	assert.Panics(t, func() { GetDragKey(42) })
}
