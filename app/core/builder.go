package core

import (
	"fmt"

	"github.com/bvisness/flowcanvas/util"
)

// GraphBuilder sets up an editor through the same gestures a user would make.
// Failures panic; it is meant for tests and scripted scenes.
type GraphBuilder struct {
	Editor *Editor
	Nodes  map[string]*NodeBuilder
}

func NewGraphBuilder(e *Editor) *GraphBuilder {
	if e == nil {
		e = NewEditor(DefaultOptions())
	}
	return &GraphBuilder{
		Editor: e,
		Nodes:  make(map[string]*NodeBuilder),
	}
}

// Add creates a node of the given kind token. An empty id asks the editor for
// a fresh one.
func (gb *GraphBuilder) Add(kind, id string) *NodeBuilder {
	if id == "" {
		id = gb.Editor.NewNodeID()
	}
	n := util.Must1(gb.Editor.CreateNode(kind, id, 0, 0))
	nb := &NodeBuilder{Builder: gb, Node: n}
	gb.Nodes[id] = nb
	return nb
}

func (gb *GraphBuilder) Get(id string) *NodeBuilder {
	nb, ok := gb.Nodes[id]
	if !ok {
		panic(fmt.Sprintf("no node %q in builder", id))
	}
	return nb
}

type NodeBuilder struct {
	Builder *GraphBuilder
	Node    *Node
}

func (nb *NodeBuilder) At(x, y float32) *NodeBuilder {
	if err := nb.Builder.Editor.MoveNode(nb.Node.ID, V2{X: x, Y: y}); err != nil {
		panic(err)
	}
	return nb
}

// Connect drags from the given element of this node to the input of dst.
// Returns dst so chains read left to right: a.To(b).To(c) is a -> b -> c.
func (nb *NodeBuilder) Connect(elem Element, index int, dst *NodeBuilder) *NodeBuilder {
	e := nb.Builder.Editor
	if !e.PressPort(nb.Node.ID, elem, index) {
		panic(fmt.Sprintf("%v: cannot start a connection from %s %d", nb.Node, elem, index))
	}
	target := PortRef{NodeID: dst.Node.ID, Role: RoleInput}
	if p, err := e.ResolveAnchor(dst.Node.ID, RoleInput, 0, nil); err == nil {
		e.MovePointer(p)
	}
	if _, ok := e.ReleasePointer(&target); !ok {
		panic(fmt.Sprintf("%v: cannot connect to %v", nb.Node, dst.Node))
	}
	return dst
}

// To connects the primary output to dst, from the "+" or the dot depending on
// which one is live.
func (nb *NodeBuilder) To(dst *NodeBuilder) *NodeBuilder {
	if nb.Builder.Editor.Eligible(nb.Node.ID, ElemPlus, 0) {
		return nb.Connect(ElemPlus, 0, dst)
	}
	return nb.Connect(ElemDot, 0, dst)
}

// Sub connects suboutput i to dst and returns this node, so several
// suboutputs of one agent can be wired in a chain.
func (nb *NodeBuilder) Sub(i int, dst *NodeBuilder) *NodeBuilder {
	nb.Connect(ElemSubOutput, i, dst)
	return nb
}
