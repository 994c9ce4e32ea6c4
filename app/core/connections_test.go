package core

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func edge(from, to string) Connection {
	return Connection{From: from, FromType: RoleOutput, To: to}
}

func TestConnectionStore_AddRejectsSelfLoops(t *testing.T) {
	var s ConnectionStore
	assert.False(t, s.Add(edge("a", "a")))
	assert.Equal(t, 0, s.Len())

	assert.True(t, s.Add(edge("a", "b")))
	assert.True(t, s.Add(edge("a", "b")), "parallel edges are kept")
	assert.Equal(t, 2, s.Len())
}

func TestConnectionStore_RemoveAt(t *testing.T) {
	var s ConnectionStore
	s.Add(edge("a", "b"))
	s.Add(edge("b", "c"))

	assert.False(t, s.RemoveAt(-1))
	assert.False(t, s.RemoveAt(2))
	assert.Equal(t, 2, s.Len())

	assert.True(t, s.RemoveAt(0))
	assert.Equal(t, []Connection{edge("b", "c")}, s.All())
	assert.False(t, s.RemoveAt(1))
}

func TestConnectionStore_RemoveAllForNodeKeepsOrder(t *testing.T) {
	var s ConnectionStore
	for _, c := range []Connection{
		edge("a", "b"),
		edge("c", "d"),
		edge("b", "e"),
		edge("f", "a"),
		edge("c", "e"),
		edge("a", "e"),
	} {
		s.Add(c)
	}

	assert.Equal(t, 3, s.RemoveAllForNode("a"))
	assert.Equal(t, []Connection{edge("c", "d"), edge("b", "e"), edge("c", "e")}, s.All())
	assert.Equal(t, 0, s.RemoveAllForNode("a"))
}

func TestConnectionStore_NeverHoldsSelfLoops(t *testing.T) {
	ids := []string{"a", "b", "c", "d"}
	r := rand.New(rand.NewPCG(7, 11))

	var s ConnectionStore
	for i := range 2000 {
		switch r.IntN(4) {
		case 0, 1:
			s.Add(edge(ids[r.IntN(len(ids))], ids[r.IntN(len(ids))]))
		case 2:
			s.RemoveAt(r.IntN(s.Len()+2) - 1)
		case 3:
			s.RemoveAllForNode(ids[r.IntN(len(ids))])
		}
		for _, c := range s.All() {
			if c.From == c.To {
				t.Fatalf("step %d: store holds self-loop %v", i, c)
			}
		}
	}
}

func TestConnectionStore_Outgoing(t *testing.T) {
	var s ConnectionStore
	s.Add(Connection{From: "agent", FromType: RoleSubOutput, FromPort: 0, To: "x"})
	s.Add(Connection{From: "agent", FromType: RoleSubOutput, FromPort: 2, To: "y"})
	s.Add(Connection{From: "agent", FromType: RoleOutput, To: "z"})

	assert.Equal(t, 1, s.Outgoing("agent", RoleOutput))
	assert.Equal(t, 2, s.Outgoing("agent", RoleSubOutput))
	assert.Equal(t, 0, s.Outgoing("x", RoleOutput))

	all := s.All()
	all[0].To = "mutated"
	c, ok := s.At(0)
	assert.True(t, ok)
	assert.Equal(t, "x", c.To)
	assert.Equal(t, "agent.suboutput[0] -> x", fmt.Sprint(c))
}
