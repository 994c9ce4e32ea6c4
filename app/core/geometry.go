package core

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ResolveAnchor returns the canvas point where an edge attaches to a port of
// n. For radial output anchors, toward (if given) moves the point from the
// anchor's centre to its rim in the direction of toward.
func ResolveAnchor(n *Node, role PortRole, index int, toward *V2) (V2, error) {
	if !n.Mounted {
		return V2{}, fmt.Errorf("%w: %s", ErrNodeNotMounted, n.ID)
	}
	s := n.Kind.Schema()

	switch role {
	case RoleInput:
		r, ok := n.ElementRect(ElemInput, index)
		if !ok {
			return V2{}, fmt.Errorf("%w: %s (%s) has no input", ErrNoSuchPort, n.ID, n.Kind)
		}
		return rectCenter(r), nil
	case RoleSubOutput:
		r, ok := n.ElementRect(ElemSubOutput, index)
		if !ok {
			return V2{}, fmt.Errorf("%w: suboutput %d of %s (%s has %d)", ErrIndexOutOfRange, index, n.ID, n.Kind, s.SubOutputs)
		}
		return rectCenter(r), nil
	case RoleOutput:
		if index < 0 || index >= s.Outputs {
			return V2{}, fmt.Errorf("%w: output %d of %s (%s has %d)", ErrIndexOutOfRange, index, n.ID, n.Kind, s.Outputs)
		}
		c := n.dotCenter(index)
		if s.Anchor == AnchorRect || toward == nil {
			return c, nil
		}
		dir := rl.Vector2Subtract(*toward, c)
		if rl.Vector2Length(dir) == 0 {
			return c, nil
		}
		return rl.Vector2Add(c, rl.Vector2Scale(rl.Vector2Normalize(dir), PortRadius)), nil
	}
	return V2{}, fmt.Errorf("%w: role %s", ErrNoSuchPort, role)
}

// ResolveAnchor looks the node up by id. Missing nodes yield ErrNodeNotFound.
func (e *Editor) ResolveAnchor(id string, role PortRole, index int, toward *V2) (V2, error) {
	n, ok := e.nodes[id]
	if !ok {
		return V2{}, fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	return ResolveAnchor(n, role, index, toward)
}

// Hit describes the topmost element under a canvas point.
type Hit struct {
	Element Element
	NodeID  string
	Index   int // port, suboutput or menu item index
	Edge    int // store index when Element is ElemEdge
}

// Port maps a port hit to the port it belongs to.
func (h Hit) Port() (PortRef, bool) {
	switch h.Element {
	case ElemInput:
		return PortRef{NodeID: h.NodeID, Role: RoleInput}, true
	case ElemDot, ElemPlus:
		return PortRef{NodeID: h.NodeID, Role: RoleOutput, Index: h.Index}, true
	case ElemSubOutput:
		return PortRef{NodeID: h.NodeID, Role: RoleSubOutput, Index: h.Index}, true
	}
	return PortRef{}, false
}

// HitTest finds what is under canvas point p. Priority follows paint order:
// the delete affordance, the open menu, nodes from topmost down (ports before
// bodies), then edges from last drawn to first.
func (e *Editor) HitTest(p V2) Hit {
	if e.affordance != nil && rl.CheckCollisionPointRec(p, e.affordance.Rect) {
		return Hit{Element: ElemDeleteButton, Edge: e.affordance.Index}
	}

	if n, ok := e.nodes[e.menu.open]; ok && n.Mounted {
		for i := range MenuItemCount {
			if r, _ := n.ElementRect(ElemMenuItem, i); rl.CheckCollisionPointRec(p, r) {
				return Hit{Element: ElemMenuItem, NodeID: n.ID, Index: i}
			}
		}
	}

	for i := len(e.order) - 1; i >= 0; i-- {
		n := e.nodes[e.order[i]]
		if !n.Mounted {
			continue
		}
		if h, ok := hitNode(n, p); ok {
			return h
		}
	}

	for i := len(e.rendered) - 1; i >= 0; i-- {
		re := e.rendered[i]
		if re.Curve.Distance(p) <= e.opts.HitTolerance {
			return Hit{Element: ElemEdge, Edge: re.Index}
		}
	}

	return Hit{}
}

func hitNode(n *Node, p V2) (Hit, bool) {
	s := n.Kind.Schema()

	if r, ok := n.ElementRect(ElemInput, 0); ok && rl.CheckCollisionPointRec(p, r) {
		return Hit{Element: ElemInput, NodeID: n.ID}, true
	}
	for i := range s.Outputs {
		if s.Anchor == AnchorDot {
			if rl.CheckCollisionPointCircle(p, n.dotCenter(i), PortRadius) {
				return Hit{Element: ElemDot, NodeID: n.ID, Index: i}, true
			}
		} else if r, _ := n.ElementRect(ElemDot, i); rl.CheckCollisionPointRec(p, r) {
			return Hit{Element: ElemDot, NodeID: n.ID, Index: i}, true
		}
	}
	if n.PlusVisible {
		if r, ok := n.ElementRect(ElemPlus, 0); ok && rl.CheckCollisionPointRec(p, r) {
			return Hit{Element: ElemPlus, NodeID: n.ID}, true
		}
	}
	for i := range s.SubOutputs {
		if r, _ := n.ElementRect(ElemSubOutput, i); rl.CheckCollisionPointRec(p, r) {
			return Hit{Element: ElemSubOutput, NodeID: n.ID, Index: i}, true
		}
	}
	if rl.CheckCollisionPointRec(p, n.Bounds()) {
		return Hit{Element: ElemBody, NodeID: n.ID}, true
	}
	return Hit{}, false
}
