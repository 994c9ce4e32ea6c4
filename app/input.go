package app

import (
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type InputProvider interface {
	IsKeyPressed(key int32) bool
	IsKeyDown(key int32) bool
	GetCharPressed() int32
	IsMouseButtonPressed(button rl.MouseButton) bool
	IsMouseButtonReleased(button rl.MouseButton) bool
	IsMouseButtonUp(button rl.MouseButton) bool
	IsMouseButtonDown(button rl.MouseButton) bool
	GetMousePosition() rl.Vector2
	GetMouseWheelMove() float32
}

type RealInputProvider struct{}

func (p RealInputProvider) IsKeyPressed(key int32) bool {
	return rl.IsKeyPressed(key)
}
func (p RealInputProvider) IsKeyDown(key int32) bool {
	return rl.IsKeyDown(key)
}
func (p RealInputProvider) GetCharPressed() int32 {
	return rl.GetCharPressed()
}
func (p RealInputProvider) IsMouseButtonPressed(button rl.MouseButton) bool {
	return rl.IsMouseButtonPressed(button)
}
func (p RealInputProvider) IsMouseButtonReleased(button rl.MouseButton) bool {
	return rl.IsMouseButtonReleased(button)
}
func (p RealInputProvider) IsMouseButtonUp(button rl.MouseButton) bool {
	return rl.IsMouseButtonUp(button)
}
func (p RealInputProvider) IsMouseButtonDown(button rl.MouseButton) bool {
	return rl.IsMouseButtonDown(button)
}
func (p RealInputProvider) GetMousePosition() rl.Vector2 {
	return rl.GetMousePosition()
}
func (p RealInputProvider) GetMouseWheelMove() float32 {
	return rl.GetMouseWheelMove()
}

// PanKeys maps the config's pan_key values to the keys that satisfy them.
var PanKeys = map[string][]int32{
	"ctrl":  {rl.KeyLeftControl, rl.KeyRightControl},
	"shift": {rl.KeyLeftShift, rl.KeyRightShift},
	"alt":   {rl.KeyLeftAlt, rl.KeyRightAlt},
	"space": {rl.KeySpace},
	"super": {rl.KeyLeftSuper, rl.KeyRightSuper},
}

// ParsePanKey returns the keys for name, falling back to ctrl.
func ParsePanKey(name string) []int32 {
	if keys, ok := PanKeys[strings.ToLower(strings.TrimSpace(name))]; ok {
		return keys
	}
	return PanKeys["ctrl"]
}

func anyKeyDown(in InputProvider, keys []int32) bool {
	for _, k := range keys {
		if in.IsKeyDown(k) {
			return true
		}
	}
	return false
}
