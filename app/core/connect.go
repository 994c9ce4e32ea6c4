package core

type ConnectState int

const (
	ConnectIdle ConnectState = iota
	ConnectDragging
)

func (s ConnectState) String() string {
	if s == ConnectDragging {
		return "dragging"
	}
	return "idle"
}

type connectSession struct {
	state   ConnectState
	source  PortRef
	elem    Element // element the drag started from
	pointer V2
	preview *Bezier
}

// Eligible reports whether a press on the given element can start a new
// connection. The "+" only works while the node has no outgoing primary edge,
// the dot only once it has one. Suboutputs are always eligible.
func (e *Editor) Eligible(id string, elem Element, index int) bool {
	n, ok := e.nodes[id]
	if !ok || !n.Mounted {
		return false
	}
	s := n.Kind.Schema()

	switch elem {
	case ElemPlus:
		return index == 0 && s.Outputs > 0 && e.store.Outgoing(id, RoleOutput) == 0
	case ElemDot:
		return index >= 0 && index < s.Outputs && e.store.Outgoing(id, RoleOutput) > 0
	case ElemSubOutput:
		return index >= 0 && index < s.SubOutputs
	}
	return false
}

// PressPort starts a connection drag from an output element. Ineligible
// presses and presses during a drag are ignored.
func (e *Editor) PressPort(id string, elem Element, index int) bool {
	if e.connect.state != ConnectIdle || !e.Eligible(id, elem, index) {
		return false
	}

	role := RoleOutput
	if elem == ElemSubOutput {
		role = RoleSubOutput
	}
	e.connect = connectSession{
		state:  ConnectDragging,
		source: PortRef{NodeID: id, Role: role, Index: index},
		elem:   elem,
	}
	e.refreshAffordances(id)
	e.log.Debugf("connect from %v", e.connect.source)
	return true
}

// MovePointer updates the preview curve to end at canvas point p. Every call
// redraws the preview.
func (e *Editor) MovePointer(p V2) {
	if e.connect.state != ConnectDragging {
		return
	}
	src := e.connect.source
	e.connect.pointer = p

	from, err := e.ResolveAnchor(src.NodeID, src.Role, src.Index, &p)
	if err != nil {
		e.log.Warnf("preview from %v: %v", src, err)
		return
	}
	curve := NewConnectionCurve(from, p, e.opts.Curvature)
	e.connect.preview = &curve
	e.surface.DrawPreview(e.connect.preview)
}

// ReleasePointer ends the current drag. If target is the input of another
// node the edge is stored and returned. Any other release cancels. The machine
// is idle afterwards either way.
func (e *Editor) ReleasePointer(target *PortRef) (Connection, bool) {
	if e.connect.state != ConnectDragging {
		return Connection{}, false
	}
	src := e.connect.source
	e.cancelConnect()

	if target == nil || target.Role != RoleInput || target.NodeID == src.NodeID {
		e.refreshAffordances(src.NodeID)
		e.log.Debugf("connect from %v canceled", src)
		return Connection{}, false
	}
	dst, ok := e.nodes[target.NodeID]
	if !ok || !dst.Mounted || !dst.Kind.Schema().Input {
		e.refreshAffordances(src.NodeID)
		e.log.Debugf("connect from %v canceled: %v has no input", src, target)
		return Connection{}, false
	}

	c := Connection{From: src.NodeID, FromPort: src.Index, FromType: src.Role, To: dst.ID}
	e.store.Add(c)
	e.refreshAffordances(src.NodeID)
	e.Redraw()
	e.log.Debugf("connected %v", c)

	if e.Hooks.OnConnect != nil {
		e.Hooks.OnConnect(c)
	}
	return c, true
}

// cancelConnect drops the session and its preview without touching the store.
func (e *Editor) cancelConnect() {
	e.connect = connectSession{}
	e.surface.DrawPreview(nil)
}

func (e *Editor) ConnectState() ConnectState {
	return e.connect.state
}

// DragSource returns the port the current drag started from.
func (e *Editor) DragSource() (PortRef, bool) {
	return e.connect.source, e.connect.state == ConnectDragging
}

// Preview returns the live preview curve, if a drag has moved.
func (e *Editor) Preview() (Bezier, bool) {
	if e.connect.preview == nil {
		return Bezier{}, false
	}
	return *e.connect.preview, true
}
