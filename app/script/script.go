// Package script replays JSON gesture scripts against a headless editor.
//
// A script is an object with optional "width" and "height" (the SVG snapshot
// size) and a "steps" array. Each step has an "op" and op-specific fields:
//
//	{"op": "create", "kind": "Filter", "id": "f", "x": 300, "y": 0}
//	{"op": "down", "x": 150, "y": 45, "pan": false}
//	{"op": "move", "x": 290, "y": 45}
//	{"op": "up", "x": 290, "y": 45}
//	{"op": "click", "x": 10, "y": 10}
//	{"op": "drag", "from": [150, 45], "to": [290, 45]}
//	{"op": "connect", "from": "a", "port": "plus", "index": 0, "to": "f"}
//	{"op": "delete", "id": "f"}
//	{"op": "delete-edge", "index": 0}
//	{"op": "move-node", "id": "f", "x": 0, "y": 0}
//	{"op": "mount", "id": "f", "mounted": false}
//	{"op": "menu", "id": "f", "action": "power"}
//	{"op": "zoom", "dir": "in"}
//	{"op": "pan", "dx": 10, "dy": 0}
//	{"op": "reset"}
//	{"op": "expect", "expr": "len(edges) == 1 && nodes.a.plus == false"}
//
// Pointer coordinates are viewport coordinates; everything else is canvas.
package script

import (
	"errors"
	"fmt"
	"io"

	"github.com/expr-lang/expr"
	"github.com/tidwall/gjson"

	"github.com/bvisness/flowcanvas/app/core"
	"github.com/bvisness/flowcanvas/app/svgcanvas"
	"github.com/bvisness/flowcanvas/internal/log"
)

var (
	ErrInvalidScript     = errors.New("invalid script")
	ErrUnknownOp         = errors.New("unknown op")
	ErrExpectationFailed = errors.New("expectation failed")
	ErrGestureRejected   = errors.New("gesture rejected")
)

// StepError reports which step of a script failed.
type StepError struct {
	Index int
	Op    string
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %v", e.Index, e.Op, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

type Runner struct {
	Editor  *core.Editor
	Surface *svgcanvas.Surface
	Width   int
	Height  int

	log *log.Logger
}

func NewRunner(opts core.Options, style svgcanvas.Style) *Runner {
	if opts.Logger == nil {
		opts.Logger = log.Discard()
	}
	surface := svgcanvas.New(style)
	opts.Surface = surface
	return &Runner{
		Editor:  core.NewEditor(opts),
		Surface: surface,
		Width:   1200,
		Height:  800,
		log:     opts.Logger,
	}
}

// Run executes every step of src in order and stops at the first failure.
func (r *Runner) Run(src []byte) error {
	if !gjson.ValidBytes(src) {
		return fmt.Errorf("%w: not valid JSON", ErrInvalidScript)
	}
	doc := gjson.ParseBytes(src)
	if w := doc.Get("width"); w.Exists() {
		r.Width = int(w.Int())
	}
	if h := doc.Get("height"); h.Exists() {
		r.Height = int(h.Int())
	}

	steps := doc.Get("steps")
	if !steps.IsArray() {
		return fmt.Errorf("%w: missing steps array", ErrInvalidScript)
	}

	var err error
	i := 0
	steps.ForEach(func(_, step gjson.Result) bool {
		if stepErr := r.Step(step); stepErr != nil {
			err = &StepError{Index: i, Op: step.Get("op").String(), Err: stepErr}
			return false
		}
		i++
		return true
	})
	if err == nil {
		r.log.Infof("ran %d steps: %d nodes, %d edges", i, len(r.Editor.Nodes()), len(r.Editor.Connections()))
	}
	return err
}

func point(step gjson.Result, xKey, yKey string) core.V2 {
	return core.V2{X: float32(step.Get(xKey).Float()), Y: float32(step.Get(yKey).Float())}
}

func pair(v gjson.Result) core.V2 {
	a := v.Array()
	if len(a) != 2 {
		return core.V2{}
	}
	return core.V2{X: float32(a[0].Float()), Y: float32(a[1].Float())}
}

var portElements = map[string]core.Element{
	"plus":      core.ElemPlus,
	"dot":       core.ElemDot,
	"suboutput": core.ElemSubOutput,
}

// Step executes a single step.
func (r *Runner) Step(step gjson.Result) error {
	e := r.Editor
	op := step.Get("op").String()
	r.log.Debugf("step %s", step.Raw)

	switch op {
	case "create":
		id := step.Get("id").String()
		if id == "" {
			id = e.NewNodeID()
		}
		_, err := e.CreateNode(step.Get("kind").String(), id, float32(step.Get("x").Float()), float32(step.Get("y").Float()))
		return err
	case "down":
		e.PointerDown(point(step, "x", "y"), core.Modifiers{Pan: step.Get("pan").Bool(), OverChrome: step.Get("chrome").Bool()})
	case "move":
		e.PointerMove(point(step, "x", "y"))
	case "up":
		if !e.PointerUp(point(step, "x", "y")) && step.Get("click").Bool() {
			e.Click(point(step, "x", "y"))
		}
	case "click":
		e.Click(point(step, "x", "y"))
	case "drag":
		from, to := pair(step.Get("from")), pair(step.Get("to"))
		e.PointerDown(from, core.Modifiers{Pan: step.Get("pan").Bool()})
		e.PointerMove(to)
		if !e.PointerUp(to) {
			e.Click(to)
		}
	case "connect":
		return r.connect(step)
	case "delete":
		return e.DeleteNode(step.Get("id").String())
	case "delete-edge":
		if !e.ShowDeleteAffordance(int(step.Get("index").Int())) {
			return fmt.Errorf("%w: no drawn edge %d", ErrGestureRejected, step.Get("index").Int())
		}
		e.ConfirmDelete()
	case "move-node":
		return e.MoveNode(step.Get("id").String(), point(step, "x", "y"))
	case "mount":
		mounted := step.Get("mounted")
		return e.SetMounted(step.Get("id").String(), !mounted.Exists() || mounted.Bool())
	case "menu":
		action, ok := core.ParseMenuAction(step.Get("action").String())
		if !ok {
			return fmt.Errorf("%w: menu action %q", ErrInvalidScript, step.Get("action").String())
		}
		return e.RunMenuAction(step.Get("id").String(), action)
	case "zoom":
		switch step.Get("dir").String() {
		case "in":
			e.ZoomIn()
		case "out":
			e.ZoomOut()
		default:
			return fmt.Errorf("%w: zoom dir %q", ErrInvalidScript, step.Get("dir").String())
		}
	case "pan":
		e.PanBy(float32(step.Get("dx").Float()), float32(step.Get("dy").Float()))
	case "reset":
		e.Reset()
	case "fit":
		e.FitToScreen()
	case "expect":
		return r.expect(step.Get("expr").String())
	default:
		return fmt.Errorf("%w %q", ErrUnknownOp, op)
	}
	return nil
}

func (r *Runner) connect(step gjson.Result) error {
	e := r.Editor
	from, to := step.Get("from").String(), step.Get("to").String()
	portName := step.Get("port").String()
	if portName == "" {
		portName = "plus"
		if !e.Eligible(from, core.ElemPlus, 0) {
			portName = "dot"
		}
	}
	elem, ok := portElements[portName]
	if !ok {
		return fmt.Errorf("%w: port %q", ErrInvalidScript, portName)
	}

	index := int(step.Get("index").Int())
	if !e.PressPort(from, elem, index) {
		return fmt.Errorf("%w: %s %s %d is not eligible", ErrGestureRejected, from, portName, index)
	}
	if p, err := e.ResolveAnchor(to, core.RoleInput, 0, nil); err == nil {
		e.MovePointer(p)
	}
	if _, ok := e.ReleasePointer(&core.PortRef{NodeID: to, Role: core.RoleInput}); !ok {
		return fmt.Errorf("%w: %s cannot connect to %s", ErrGestureRejected, from, to)
	}
	return nil
}

// Env exposes the editor state to expect expressions.
func (r *Runner) Env() map[string]any {
	e := r.Editor

	edges := make([]map[string]any, 0)
	for _, c := range e.Connections() {
		edges = append(edges, map[string]any{
			"from":     c.From,
			"to":       c.To,
			"fromType": c.FromType.String(),
			"fromPort": c.FromPort,
		})
	}

	nodes := make(map[string]any)
	for _, n := range e.Nodes() {
		nodes[n.ID] = map[string]any{
			"kind":     n.Kind.String(),
			"x":        float64(n.Pos.X),
			"y":        float64(n.Pos.Y),
			"plus":     n.PlusVisible,
			"guide":    n.GuideVisible,
			"dot":      n.DotInteractive,
			"disabled": n.Disabled,
			"mounted":  n.Mounted,
		}
	}

	menu, _ := e.OpenMenuNode()
	affordance := -1
	if i, _, ok := e.DeleteAffordance(); ok {
		affordance = i
	}

	return map[string]any{
		"edges":      edges,
		"nodes":      nodes,
		"zoom":       float64(e.Camera.Zoom),
		"panX":       float64(e.Camera.Pan.X),
		"panY":       float64(e.Camera.Pan.Y),
		"menu":       menu,
		"dragging":   e.ConnectState() == core.ConnectDragging,
		"affordance": affordance,
	}
}

func (r *Runner) expect(src string) error {
	env := r.Env()
	program, err := expr.Compile(src, expr.Env(env), expr.AsBool())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidScript, err)
	}
	out, err := expr.Run(program, env)
	if err != nil {
		return err
	}
	if ok, _ := out.(bool); !ok {
		return fmt.Errorf("%w: %s", ErrExpectationFailed, src)
	}
	return nil
}

// WriteSVG writes a snapshot of the editor.
func (r *Runner) WriteSVG(w io.Writer) error {
	return r.Surface.Render(w, r.Editor, r.Width, r.Height)
}
