package app

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/bvisness/flowcanvas/app/core"
)

// DragState tracks drags owned by the front end, such as palette items
// dragged onto the canvas. Canvas gestures belong to core.Editor.
type DragState struct {
	Input     InputProvider
	Threshold float32

	Dragging    bool
	WasDragging bool
	Pending     bool
	Canceled    bool

	Thing any
	Key   string

	MouseStart core.V2
	ObjStart   core.V2
}

// Call once per frame at the start of the frame.
func (d *DragState) Update() {
	d.WasDragging = false
	if d.Input.IsKeyPressed(rl.KeyEscape) {
		d.Dragging = false
		d.Canceled = true
	} else if d.Input.IsMouseButtonReleased(rl.MouseLeftButton) {
		if d.Dragging {
			d.WasDragging = true
		}
		d.Dragging = false
	} else if d.Input.IsMouseButtonUp(rl.MouseLeftButton) {
		if d.Dragging {
			d.WasDragging = true
		}
		d.Dragging = false
		d.Pending = false
		d.Canceled = true
		d.Thing = nil
		d.Key = ""
		d.MouseStart = core.V2{}
		d.ObjStart = core.V2{}
	} else if d.Input.IsMouseButtonDown(rl.MouseLeftButton) {
		if !d.Dragging && !d.Pending {
			d.Pending = true
			d.MouseStart = d.Input.GetMousePosition()
		}
	}
}

func (d *DragState) TryStartDrag(thing any, dragRegion rl.Rectangle, objStart core.V2) bool {
	if thing == nil {
		panic("you must provide a thing to drag")
	}

	if d.Dragging {
		// can't start a new drag while one is in progress
		return false
	}

	if !d.Pending {
		// can't start a new drag with this item unless we have a pending one
		return false
	}

	threshold := d.Threshold
	if threshold <= 0 {
		threshold = 3
	}
	if rl.Vector2Length(rl.Vector2Subtract(d.Input.GetMousePosition(), d.MouseStart)) < threshold {
		// haven't dragged far enough
		return false
	}

	if !rl.CheckCollisionPointRec(d.MouseStart, dragRegion) {
		// not dragging from the right place
		return false
	}

	d.Dragging = true
	d.Pending = false
	d.Canceled = false
	d.Thing = thing
	d.Key = GetDragKey(thing)
	d.ObjStart = objStart

	return true
}

func (d *DragState) Offset() core.V2 {
	if !d.Dragging && d.Key == "" {
		return core.V2{}
	}
	return rl.Vector2Subtract(d.Input.GetMousePosition(), d.MouseStart)
}

func (d *DragState) NewObjPosition() core.V2 {
	return rl.Vector2Add(d.ObjStart, d.Offset())
}

// State reports the drag state for key. matchesKey is true if key is the
// thing being dragged, done is true on the frame the drag ends, and canceled
// is true if it ended by escape.
func (d *DragState) State(key any) (matchesKey bool, done bool, canceled bool) {
	matchesKey = true
	if key != nil {
		matchesKey = d.Key == GetDragKey(key)
	}

	if !d.Dragging && d.Key != "" && matchesKey {
		return matchesKey, true, d.Canceled
	} else {
		return matchesKey, false, false
	}
}

// Clear forgets a finished drag so State stops reporting it.
func (d *DragState) Clear() {
	d.Thing = nil
	d.Key = ""
}

func GetDragKey(key any) string {
	switch kt := key.(type) {
	case string:
		return kt
	case DragKeyer:
		return kt.DragKey()
	default:
		panic(fmt.Errorf("cannot make drag key for %v", key))
	}
}

type DragKeyer interface {
	DragKey() string
}
