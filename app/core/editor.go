package core

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/bvisness/flowcanvas/internal/log"
)

type Options struct {
	ZoomStep float32
	MinZoom  float32
	MaxZoom  float32

	Curvature     float32
	HitTolerance  float32 // max distance from an edge curve that still hits it, canvas units
	DragThreshold float32 // pointer travel before a body press becomes a node drag, screen pixels

	Logger  *log.Logger
	Surface Surface
	Now     func() time.Time
}

func DefaultOptions() Options {
	return Options{
		ZoomStep:      DefaultZoomStep,
		MinZoom:       DefaultMinZoom,
		MaxZoom:       DefaultMaxZoom,
		Curvature:     DefaultCurvature,
		HitTolerance:  6,
		DragThreshold: 3,
	}
}

// Hooks let the embedding application observe the editor.
type Hooks struct {
	OnMenuAction func(n *Node, action MenuAction)
	OnConnect    func(c Connection)
}

// Modifiers describe the state around a pointer press.
type Modifiers struct {
	Pan        bool // the pan modifier key is held
	OverChrome bool // the pointer is over UI outside the canvas (sidebar, toolbar)
}

type gestureKind int

const (
	gestureNone gestureKind = iota
	gestureConnect
	gestureNodeDrag
	gesturePan
)

type gesture struct {
	kind     gestureKind
	nodeID   string
	start    V2 // viewport
	objStart V2 // node position or camera pan at press time
	moved    bool
}

// Editor owns all state of one canvas: nodes and their port index, the edge
// store, the drag-connect session, the open menu, the delete affordance and
// the camera. It is not safe for concurrent use; every method leaves it
// consistent before returning.
type Editor struct {
	Camera Camera
	Hooks  Hooks

	opts    Options
	log     *log.Logger
	surface Surface

	nodes map[string]*Node
	order []string
	ports map[string][]Port
	store ConnectionStore

	connect    connectSession
	gesture    gesture
	menu       menuState
	rendered   []RenderedEdge
	affordance *deleteAffordance

	lastID int64
}

// NewEditor creates an empty editor. Zero option fields take their defaults.
func NewEditor(opts Options) *Editor {
	def := DefaultOptions()
	if opts.ZoomStep <= 1 {
		opts.ZoomStep = def.ZoomStep
	}
	if opts.MinZoom <= 0 {
		opts.MinZoom = def.MinZoom
	}
	if opts.MaxZoom <= 0 {
		opts.MaxZoom = def.MaxZoom
	}
	if opts.Curvature == 0 {
		opts.Curvature = def.Curvature
	}
	if opts.HitTolerance <= 0 {
		opts.HitTolerance = def.HitTolerance
	}
	if opts.DragThreshold <= 0 {
		opts.DragThreshold = def.DragThreshold
	}
	if opts.Logger == nil {
		opts.Logger = log.Discard()
	}
	if opts.Surface == nil {
		opts.Surface = nopSurface{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	cam := NewCamera()
	cam.Step, cam.Min, cam.Max = opts.ZoomStep, opts.MinZoom, opts.MaxZoom

	return &Editor{
		Camera:  cam,
		opts:    opts,
		log:     opts.Logger,
		surface: opts.Surface,
		nodes:   make(map[string]*Node),
		ports:   make(map[string][]Port),
	}
}

func (e *Editor) Options() Options {
	return e.opts
}

// SetSurface switches the drawing target and redraws onto it.
func (e *Editor) SetSurface(s Surface) {
	if s == nil {
		s = nopSurface{}
	}
	e.surface = s
	e.opts.Surface = s
	e.Redraw()
	if e.connect.preview != nil {
		s.DrawPreview(e.connect.preview)
	}
}

// Connections returns a copy of the edge store in order.
func (e *Editor) Connections() []Connection {
	return e.store.All()
}

func (e *Editor) ZoomIn() {
	e.Camera.ZoomIn()
	e.log.Debugf("zoom %.3f", e.Camera.Zoom)
}

func (e *Editor) ZoomOut() {
	e.Camera.ZoomOut()
	e.log.Debugf("zoom %.3f", e.Camera.Zoom)
}

func (e *Editor) Reset() {
	e.Camera.Reset()
}

func (e *Editor) FitToScreen() {
	e.Camera.FitToScreen()
}

func (e *Editor) PanBy(dx, dy float32) {
	e.Camera.PanBy(dx, dy)
}

// PointerDown handles a primary button press at viewport point p. A press on
// an eligible output starts a connection; a press on a body arms a node drag
// unless the pan modifier is held; a press with the pan modifier anywhere off
// nodes and chrome starts a pan.
func (e *Editor) PointerDown(p V2, mods Modifiers) {
	if e.gesture.kind != gestureNone {
		return
	}
	c := e.Camera.ScreenToCanvas(p)
	hit := e.HitTest(c)

	if hit.Element.IsPort() {
		// Presses on ports never fall through to the body, even ineligible ones.
		if e.PressPort(hit.NodeID, hit.Element, hit.Index) {
			e.gesture = gesture{kind: gestureConnect, nodeID: hit.NodeID, start: p}
			e.MovePointer(c)
		}
		return
	}
	if mods.OverChrome {
		return
	}

	switch hit.Element {
	case ElemBody:
		if mods.Pan {
			return
		}
		n := e.nodes[hit.NodeID]
		e.gesture = gesture{kind: gestureNodeDrag, nodeID: n.ID, start: p, objStart: n.Pos}
	case ElemNone, ElemEdge:
		if mods.Pan {
			e.gesture = gesture{kind: gesturePan, start: p, objStart: e.Camera.Pan}
		}
	}
}

// PointerMove handles pointer motion at viewport point p.
func (e *Editor) PointerMove(p V2) {
	g := &e.gesture
	switch g.kind {
	case gestureConnect:
		g.moved = true
		e.MovePointer(e.Camera.ScreenToCanvas(p))
	case gestureNodeDrag:
		delta := rl.Vector2Subtract(p, g.start)
		if !g.moved && rl.Vector2Length(delta) < e.opts.DragThreshold {
			// haven't dragged far enough
			return
		}
		g.moved = true
		n := e.nodes[g.nodeID]
		n.Pos = rl.Vector2Add(g.objStart, rl.Vector2Scale(delta, 1/e.Camera.Zoom))
		e.Redraw()
	case gesturePan:
		delta := rl.Vector2Subtract(p, g.start)
		if rl.Vector2Length(delta) > 0 {
			g.moved = true
		}
		e.Camera.Pan = rl.Vector2Add(g.objStart, delta)
	}
}

// PointerUp handles a release at viewport point p, wherever it happens. It
// ends any gesture in progress and reports whether the press turned into a
// drag, in which case the front end should not treat it as a click.
func (e *Editor) PointerUp(p V2) bool {
	g := e.gesture
	e.gesture = gesture{}

	switch g.kind {
	case gestureConnect:
		var target *PortRef
		if ref, ok := e.HitTest(e.Camera.ScreenToCanvas(p)).Port(); ok {
			target = &ref
		}
		e.ReleasePointer(target)
		return true
	case gestureNodeDrag:
		if g.moved {
			n := e.nodes[g.nodeID]
			e.log.Debugf("moved %v to (%g, %g)", n, n.Pos.X, n.Pos.Y)
		}
		return g.moved
	case gesturePan:
		if g.moved {
			e.log.Debugf("pan (%g, %g)", e.Camera.Pan.X, e.Camera.Pan.Y)
		}
		return g.moved
	}

	// A release with no gesture of ours still resolves a stray drag.
	if e.connect.state == ConnectDragging {
		e.ReleasePointer(nil)
		return true
	}
	return false
}

// Click handles a click at viewport point p: the delete affordance, menu
// items, edges and node bodies react; clicks on empty canvas close the menu
// and the delete affordance.
func (e *Editor) Click(p V2) {
	hit := e.HitTest(e.Camera.ScreenToCanvas(p))

	switch hit.Element {
	case ElemDeleteButton:
		e.ConfirmDelete()
	case ElemMenuItem:
		if err := e.RunMenuAction(hit.NodeID, MenuAction(hit.Index)); err != nil {
			e.log.Errorf("menu action: %v", err)
		}
	case ElemEdge:
		e.CloseMenu()
		e.ShowDeleteAffordance(hit.Edge)
	case ElemBody:
		e.CloseDeleteAffordance()
		e.ToggleMenu(hit.NodeID)
	case ElemNone:
		e.CloseDeleteAffordance()
		e.CloseMenu()
	default:
		e.CloseDeleteAffordance()
		if e.menu.open != hit.NodeID {
			e.CloseMenu()
		}
	}
}

// Cancel aborts the gesture in progress: a connection drag is dropped, a
// dragged node returns to where it was pressed and a pan snaps back.
func (e *Editor) Cancel() {
	g := e.gesture
	e.gesture = gesture{}

	switch g.kind {
	case gestureNodeDrag:
		if n, ok := e.nodes[g.nodeID]; ok && g.moved {
			n.Pos = g.objStart
			e.Redraw()
		}
	case gesturePan:
		e.Camera.Pan = g.objStart
	}
	if e.connect.state == ConnectDragging {
		e.ReleasePointer(nil)
	}
	e.CloseMenu()
	e.CloseDeleteAffordance()
}
