package core

import (
	"fmt"
	"slices"
)

// Connection is a directed edge from an output-capable port of one node to the
// single input of another. Endpoints are node ids, not pointers, so deleting a
// node has to sweep its edges explicitly.
type Connection struct {
	From     string
	FromPort int
	FromType PortRole
	To       string
}

func (c Connection) String() string {
	return fmt.Sprintf("%s.%s[%d] -> %s", c.From, c.FromType, c.FromPort, c.To)
}

func (c Connection) Touches(id string) bool {
	return c.From == id || c.To == id
}

// Source returns the port the edge leaves from.
func (c Connection) Source() PortRef {
	return PortRef{NodeID: c.From, Role: c.FromType, Index: c.FromPort}
}

// ConnectionStore is the ordered list of edges. Order is paint order and
// therefore hit-test priority; parallel edges are kept.
type ConnectionStore struct {
	conns []Connection
}

// Add appends c. Self-loops are rejected and Add reports false.
func (s *ConnectionStore) Add(c Connection) bool {
	if c.From == c.To {
		return false
	}
	s.conns = append(s.conns, c)
	return true
}

// RemoveAt removes the edge at index i. Out-of-range indices are a no-op.
func (s *ConnectionStore) RemoveAt(i int) bool {
	if i < 0 || i >= len(s.conns) {
		return false
	}
	s.conns = slices.Delete(s.conns, i, i+1)
	return true
}

// RemoveAllForNode removes every edge starting or ending at id, keeping the
// relative order of the rest, and returns how many were removed.
func (s *ConnectionStore) RemoveAllForNode(id string) int {
	before := len(s.conns)
	s.conns = slices.DeleteFunc(s.conns, func(c Connection) bool { return c.Touches(id) })
	return before - len(s.conns)
}

func (s *ConnectionStore) Len() int {
	return len(s.conns)
}

func (s *ConnectionStore) At(i int) (Connection, bool) {
	if i < 0 || i >= len(s.conns) {
		return Connection{}, false
	}
	return s.conns[i], true
}

// All returns a copy of the edges in store order.
func (s *ConnectionStore) All() []Connection {
	return slices.Clone(s.conns)
}

// Outgoing counts the edges leaving id through ports of the given role.
func (s *ConnectionStore) Outgoing(id string, role PortRole) int {
	n := 0
	for _, c := range s.conns {
		if c.From == id && c.FromType == role {
			n++
		}
	}
	return n
}
