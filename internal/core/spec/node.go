// Package spec provides node descriptor definitions
package spec

// NodeSpec describes a single workflow step declaration
// PRINCIPLES:
// - KISS: Plain value type, no behavior beyond identity
// - SRP: Only responsible for node declaration data
type NodeSpec struct {
	ID          string   `json:"id" yaml:"id" validate:"required,spec_id"`
	Name        string   `json:"name" yaml:"name" validate:"required"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	NodeType    string   `json:"node_type" yaml:"node_type" validate:"required"`
	OutputKeys  []string `json:"output_keys,omitempty" yaml:"output_keys,omitempty"`
}

// DisplayName returns the human-readable label used in findings,
// falling back to the id when no name was declared.
func (n *NodeSpec) DisplayName() string {
	if n.Name != "" {
		return n.Name
	}
	return n.ID
}
