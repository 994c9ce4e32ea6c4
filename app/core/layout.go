package core

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Port and chrome dimensions, in canvas units.
const (
	PortRadius    = 6
	InputPortSize = 12
	InputInset    = 10 // distance of the input port centre left of the body

	RectAnchorWidth  = 10
	RectAnchorHeight = 16
	DotOutset        = 2

	PlusSize   = 24
	PlusOffset = 60

	SubOutputSize = 14
	SubOutputDrop = 31

	MenuItemSize   = 30
	MenuItemCount  = 4
	MenuRaise      = 38
	DeleteIconSize = 24
)

func centeredRect(c V2, w, h float32) rl.Rectangle {
	return rl.Rectangle{X: c.X - w/2, Y: c.Y - h/2, Width: w, Height: h}
}

func rectCenter(r rl.Rectangle) V2 {
	return V2{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Bounds returns the node body rectangle in canvas coordinates.
func (n *Node) Bounds() rl.Rectangle {
	size := n.Kind.Schema().Size
	return rl.Rectangle{X: n.Pos.X, Y: n.Pos.Y, Width: size.X, Height: size.Y}
}

// dotCenter is the centre of the primary output anchor with the given index.
// Radial anchors only have index 0.
func (n *Node) dotCenter(index int) V2 {
	s := n.Kind.Schema()
	y := n.Pos.Y + s.Size.Y/2
	if s.Anchor == AnchorRect {
		y = n.Pos.Y + s.Size.Y*float32(index+1)/float32(s.Outputs+1)
	}
	return V2{X: n.Pos.X + s.Size.X + DotOutset, Y: y}
}

// ElementRect returns the canvas rectangle of one element of the node. ok is
// false when the node's kind has no such element.
func (n *Node) ElementRect(elem Element, index int) (r rl.Rectangle, ok bool) {
	s := n.Kind.Schema()
	w, h := s.Size.X, s.Size.Y

	switch elem {
	case ElemBody:
		return n.Bounds(), index == 0
	case ElemInput:
		if !s.Input || index != 0 {
			return rl.Rectangle{}, false
		}
		return centeredRect(V2{X: n.Pos.X - InputInset, Y: n.Pos.Y + h/2}, InputPortSize, InputPortSize), true
	case ElemDot:
		if index < 0 || index >= s.Outputs {
			return rl.Rectangle{}, false
		}
		if s.Anchor == AnchorRect {
			return centeredRect(n.dotCenter(index), RectAnchorWidth, RectAnchorHeight), true
		}
		return centeredRect(n.dotCenter(index), 2*PortRadius, 2*PortRadius), true
	case ElemPlus:
		if s.Outputs == 0 || index != 0 {
			return rl.Rectangle{}, false
		}
		c := n.dotCenter(0)
		return centeredRect(V2{X: n.Pos.X + w + PlusOffset, Y: c.Y}, PlusSize, PlusSize), true
	case ElemSubOutput:
		if index < 0 || index >= s.SubOutputs {
			return rl.Rectangle{}, false
		}
		c := V2{
			X: n.Pos.X + w*float32(index+1)/float32(s.SubOutputs+1),
			Y: n.Pos.Y + h + SubOutputDrop,
		}
		return centeredRect(c, SubOutputSize, SubOutputSize), true
	case ElemMenuItem:
		if index < 0 || index >= MenuItemCount {
			return rl.Rectangle{}, false
		}
		return rl.Rectangle{
			X:      n.Pos.X + w - MenuItemCount*MenuItemSize + float32(index)*MenuItemSize,
			Y:      n.Pos.Y - MenuRaise,
			Width:  MenuItemSize,
			Height: MenuItemSize,
		}, true
	}
	return rl.Rectangle{}, false
}

// GuideLine returns the segment drawn from the output anchor's rim to the "+"
// affordance. ok is false for kinds without a guide.
func (n *Node) GuideLine() (from, to V2, ok bool) {
	if !n.Kind.Schema().Guide {
		return V2{}, V2{}, false
	}
	plus, ok := n.ElementRect(ElemPlus, 0)
	if !ok {
		return V2{}, V2{}, false
	}
	c := n.dotCenter(0)
	return V2{X: c.X + PortRadius, Y: c.Y}, V2{X: plus.X, Y: c.Y}, true
}

// SubOutputLine returns the stem joining the body to suboutput i.
func (n *Node) SubOutputLine(i int) (from, to V2, ok bool) {
	r, ok := n.ElementRect(ElemSubOutput, i)
	if !ok {
		return V2{}, V2{}, false
	}
	c := rectCenter(r)
	return V2{X: c.X, Y: n.Pos.Y + n.Kind.Schema().Size.Y}, V2{X: c.X, Y: r.Y}, true
}
