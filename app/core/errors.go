package core

import "errors"

var (
	ErrUnknownNodeType = errors.New("unknown node type")
	ErrEmptyNodeID     = errors.New("node id must not be empty")
	ErrDuplicateNode   = errors.New("node already exists")
	ErrNodeNotFound    = errors.New("node not found")

	// The resolver errors below indicate a layout bug when they surface from
	// inside the engine. ErrNodeNotMounted is expected and means "skip this
	// edge for now".
	ErrNoSuchPort      = errors.New("no such port")
	ErrIndexOutOfRange = errors.New("port index out of range")
	ErrNodeNotMounted  = errors.New("node is not mounted")
)
