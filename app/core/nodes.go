package core

import (
	"fmt"
	"slices"
)

type Node struct {
	ID   string
	Kind NodeKind
	Pos  V2 // top-left corner of the body, canvas coordinates

	// Mounted is false while the node is not laid out. Its edges are skipped
	// when drawing and it cannot be hit.
	Mounted  bool
	Disabled bool

	// Output affordances, recomputed from the store after every edge change.
	PlusVisible    bool
	GuideVisible   bool
	DotInteractive bool
}

func (n *Node) String() string {
	return fmt.Sprintf("%s (%s)", n.ID, n.Kind)
}

func (n *Node) DragKey() string {
	return "node-drag-" + n.ID
}

// PortRef names a port by its node, role and index. Ports have no identity
// beyond that triple.
type PortRef struct {
	NodeID string
	Role   PortRole
	Index  int
}

func (p PortRef) String() string {
	return fmt.Sprintf("%s.%s[%d]", p.NodeID, p.Role, p.Index)
}

// Port is an entry of the per-node port index. Elements lists the canvas
// elements a press can start from for this port.
type Port struct {
	PortRef
	Elements []Element
}

func buildPorts(id string, s PortSchema) []Port {
	var ports []Port
	if s.Input {
		ports = append(ports, Port{PortRef{id, RoleInput, 0}, []Element{ElemInput}})
	}
	for i := range s.Outputs {
		elems := []Element{ElemDot}
		if i == 0 {
			elems = append(elems, ElemPlus)
		}
		ports = append(ports, Port{PortRef{id, RoleOutput, i}, elems})
	}
	for i := range s.SubOutputs {
		ports = append(ports, Port{PortRef{id, RoleSubOutput, i}, []Element{ElemSubOutput}})
	}
	return ports
}

// CreateNode places a node of the kind named by token with its top-left corner
// at (x, y) in canvas coordinates.
func (e *Editor) CreateNode(token, id string, x, y float32) (*Node, error) {
	kind, err := ParseNodeKind(token)
	if err != nil {
		return nil, err
	}
	return e.AddNode(kind, id, V2{X: x, Y: y})
}

func (e *Editor) AddNode(kind NodeKind, id string, pos V2) (*Node, error) {
	if id == "" {
		return nil, ErrEmptyNodeID
	}
	if _, exists := e.nodes[id]; exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateNode, id)
	}

	n := &Node{ID: id, Kind: kind, Pos: pos, Mounted: true}
	e.nodes[id] = n
	e.order = append(e.order, id)
	e.ports[id] = buildPorts(id, kind.Schema())
	e.refreshAffordances(id)

	e.log.Debugf("created %v at (%g, %g)", n, pos.X, pos.Y)
	return n, nil
}

// DeleteNode removes a node and every edge touching it, then restores the
// output affordances of the nodes that fed into it.
func (e *Editor) DeleteNode(id string) error {
	if _, ok := e.nodes[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}

	var sources []string
	for _, c := range e.store.conns {
		if c.To == id && !slices.Contains(sources, c.From) {
			sources = append(sources, c.From)
		}
	}
	removed := e.store.RemoveAllForNode(id)

	if e.connect.state == ConnectDragging && e.connect.source.NodeID == id {
		e.cancelConnect()
	}
	if e.gesture.nodeID == id {
		e.gesture = gesture{}
	}
	if e.menu.open == id {
		e.CloseMenu()
	}

	delete(e.nodes, id)
	delete(e.ports, id)
	e.order = slices.DeleteFunc(e.order, func(other string) bool { return other == id })

	for _, src := range sources {
		e.refreshAffordances(src)
	}
	e.log.Debugf("deleted %s and %d edges", id, removed)
	e.Redraw()
	return nil
}

func (e *Editor) MoveNode(id string, pos V2) error {
	n, ok := e.nodes[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	n.Pos = pos
	e.Redraw()
	return nil
}

func (e *Editor) SetMounted(id string, mounted bool) error {
	n, ok := e.nodes[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	n.Mounted = mounted
	e.Redraw()
	return nil
}

func (e *Editor) Node(id string) (*Node, bool) {
	n, ok := e.nodes[id]
	return n, ok
}

// Nodes returns the nodes in paint order, bottom first.
func (e *Editor) Nodes() []*Node {
	res := make([]*Node, len(e.order))
	for i, id := range e.order {
		res[i] = e.nodes[id]
	}
	return res
}

// Ports returns the port index of a node.
func (e *Editor) Ports(id string) []Port {
	return slices.Clone(e.ports[id])
}

// NewNodeID returns a fresh "node-<unix millis>" id. Ids minted in the same
// millisecond are bumped forward so they stay unique within the editor.
func (e *Editor) NewNodeID() string {
	ms := e.opts.Now().UnixMilli()
	if ms <= e.lastID {
		ms = e.lastID + 1
	}
	for {
		id := fmt.Sprintf("node-%d", ms)
		if _, taken := e.nodes[id]; !taken {
			e.lastID = ms
			return id
		}
		ms++
	}
}

// refreshAffordances recomputes the output affordances of a node from its
// current outgoing primary edges. The "+" and guide stay hidden while a drag
// from the "+" is in flight.
func (e *Editor) refreshAffordances(id string) {
	n, ok := e.nodes[id]
	if !ok {
		return
	}
	s := n.Kind.Schema()
	out := e.store.Outgoing(id, RoleOutput)
	draggingPlus := e.connect.state == ConnectDragging && e.connect.source.NodeID == id && e.connect.elem == ElemPlus

	n.PlusVisible = s.Outputs > 0 && out == 0 && !draggingPlus
	n.GuideVisible = n.PlusVisible && s.Guide
	n.DotInteractive = out > 0
}
