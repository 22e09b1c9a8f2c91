// Package spec provides shape error definitions
package spec

import "errors"

// Shape errors reject malformed declarations before validation runs
var (
	// ErrNilGraphSpec indicates a nil graph declaration
	ErrNilGraphSpec = errors.New("graph spec is nil")
	// ErrDuplicateNodeID indicates two nodes declared the same id
	ErrDuplicateNodeID = errors.New("duplicate node id")
	// ErrDuplicateEdgeID indicates two edges declared the same id
	ErrDuplicateEdgeID = errors.New("duplicate edge id")
)

// Storage errors
var (
	// ErrSpecNotFound indicates no stored declaration under the given id
	ErrSpecNotFound = errors.New("graph spec not found")
)
