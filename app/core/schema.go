package core

import (
	"fmt"
	"slices"
	"sync"
)

type NodeKind int

const (
	KindChatMessageTrigger NodeKind = iota
	KindGmailTrigger
	KindSwitch
	KindEditFields
	KindFilter
	KindEmbedding
	KindVectorStore
	KindAIAgent
	KindCustomerSupportAgent
)

type PortRole int

const (
	RoleInput PortRole = iota
	RoleOutput
	RoleSubOutput
)

func (r PortRole) String() string {
	switch r {
	case RoleInput:
		return "input"
	case RoleOutput:
		return "output"
	case RoleSubOutput:
		return "suboutput"
	default:
		return fmt.Sprintf("PortRole(%d)", int(r))
	}
}

// ParsePortRole is the inverse of PortRole.String.
func ParsePortRole(s string) (PortRole, bool) {
	for _, r := range []PortRole{RoleInput, RoleOutput, RoleSubOutput} {
		if r.String() == s {
			return r, true
		}
	}
	return 0, false
}

// Element identifies a hit-testable piece of the canvas.
type Element int

const (
	ElemNone Element = iota
	ElemBody
	ElemInput
	ElemDot  // persistent output anchor; radial or rectangular depending on the kind
	ElemPlus // "+" affordance that starts the first connection
	ElemSubOutput
	ElemEdge
	ElemDeleteButton
	ElemMenuItem
)

var elementNames = [...]string{"none", "body", "input", "dot", "plus", "suboutput", "edge", "delete", "menu"}

func (e Element) String() string {
	if e < 0 || int(e) >= len(elementNames) {
		return fmt.Sprintf("Element(%d)", int(e))
	}
	return elementNames[e]
}

// IsPort reports whether e belongs to a port. Presses on ports never move the node.
func (e Element) IsPort() bool {
	switch e {
	case ElemInput, ElemDot, ElemPlus, ElemSubOutput:
		return true
	}
	return false
}

type AnchorShape int

const (
	AnchorDot AnchorShape = iota
	AnchorRect
)

// PortSchema is the declarative port layout of a node kind. Geometry, hit
// testing and the connect state machine all read it; nothing compares kind
// names.
type PortSchema struct {
	Name       string
	Trigger    bool
	Input      bool
	Anchor     AnchorShape
	Outputs    int
	SubOutputs int
	Guide      bool // draws a guide line from the anchor to the "+" affordance
	Size       V2
}

var (
	kindsMu     sync.RWMutex
	kinds       = make(map[NodeKind]PortSchema)
	kindsByName = make(map[string]NodeKind)
)

func RegisterKind(kind NodeKind, schema PortSchema) {
	kindsMu.Lock()
	defer kindsMu.Unlock()
	kinds[kind] = schema
	kindsByName[schema.Name] = kind
}

// Schema returns the port schema of k. It panics for unregistered kinds,
// which can only come from a programming error since kinds are parsed first.
func (k NodeKind) Schema() PortSchema {
	kindsMu.RLock()
	defer kindsMu.RUnlock()
	if s, ok := kinds[k]; ok {
		return s
	}
	panic(fmt.Sprintf("unregistered node kind %d", int(k)))
}

func (k NodeKind) String() string {
	kindsMu.RLock()
	defer kindsMu.RUnlock()
	if s, ok := kinds[k]; ok {
		return s.Name
	}
	return fmt.Sprintf("NodeKind(%d)", int(k))
}

// ParseNodeKind maps a node-type token such as "AIAgent" to its kind.
func ParseNodeKind(token string) (NodeKind, error) {
	kindsMu.RLock()
	defer kindsMu.RUnlock()
	if k, ok := kindsByName[token]; ok {
		return k, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownNodeType, token)
}

// Kinds returns every registered kind in declaration order.
func Kinds() []NodeKind {
	kindsMu.RLock()
	defer kindsMu.RUnlock()
	res := make([]NodeKind, 0, len(kinds))
	for k := range kinds {
		res = append(res, k)
	}
	slices.Sort(res)
	return res
}

var (
	compactSize = V2{X: 90, Y: 90}
	agentSize   = V2{X: 240, Y: 100}
)

func init() {
	RegisterKind(KindChatMessageTrigger, PortSchema{Name: "ChatMessageTrigger", Trigger: true, Anchor: AnchorDot, Outputs: 1, Guide: true, Size: compactSize})
	RegisterKind(KindGmailTrigger, PortSchema{Name: "GmailTrigger", Trigger: true, Anchor: AnchorDot, Outputs: 1, Guide: true, Size: compactSize})
	RegisterKind(KindSwitch, PortSchema{Name: "Switch", Input: true, Anchor: AnchorRect, Outputs: 1, Guide: true, Size: compactSize})
	RegisterKind(KindEditFields, PortSchema{Name: "EditFields", Input: true, Anchor: AnchorRect, Outputs: 1, Guide: true, Size: compactSize})
	RegisterKind(KindFilter, PortSchema{Name: "Filter", Input: true, Anchor: AnchorDot, Outputs: 1, Guide: true, Size: compactSize})
	RegisterKind(KindEmbedding, PortSchema{Name: "Embedding", Anchor: AnchorDot, Outputs: 1, Guide: true, Size: compactSize})
	RegisterKind(KindVectorStore, PortSchema{Name: "VectorStore", Anchor: AnchorDot, Outputs: 1, Guide: true, Size: compactSize})
	RegisterKind(KindAIAgent, PortSchema{Name: "AIAgent", Input: true, Anchor: AnchorDot, Outputs: 1, SubOutputs: 3, Size: agentSize})
	RegisterKind(KindCustomerSupportAgent, PortSchema{Name: "CustomerSupportAgent", Input: true, Anchor: AnchorDot, Outputs: 1, SubOutputs: 3, Size: agentSize})
}
