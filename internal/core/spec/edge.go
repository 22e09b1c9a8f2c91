// Package spec provides edge descriptor definitions
package spec

import "strings"

// EdgeCondition classifies when a transition may be taken
type EdgeCondition string

const (
	// ConditionAlways marks an unconditional transition
	ConditionAlways EdgeCondition = "ALWAYS"
	// ConditionOnSuccess marks a transition taken after a successful step
	ConditionOnSuccess EdgeCondition = "ON_SUCCESS"
	// ConditionOnFailure marks a transition taken after a failed step
	ConditionOnFailure EdgeCondition = "ON_FAILURE"
	// ConditionConditional marks a transition guarded by an expression
	ConditionConditional EdgeCondition = "CONDITIONAL"
)

// KnownConditions lists the closed set of condition kinds.
func KnownConditions() []EdgeCondition {
	return []EdgeCondition{
		ConditionAlways,
		ConditionOnSuccess,
		ConditionOnFailure,
		ConditionConditional,
	}
}

// Known reports whether the condition belongs to the closed set.
func (c EdgeCondition) Known() bool {
	switch c {
	case ConditionAlways, ConditionOnSuccess, ConditionOnFailure, ConditionConditional:
		return true
	}
	return false
}

// EdgeSpec describes a directed transition between two declared nodes
// PRINCIPLES:
// - KISS: Plain value type, endpoints referenced by id
// - SRP: Only responsible for edge declaration data
type EdgeSpec struct {
	ID            string        `json:"id" yaml:"id" validate:"required,spec_id"`
	Source        string        `json:"source" yaml:"source" validate:"required"`
	Target        string        `json:"target" yaml:"target" validate:"required"`
	Condition     EdgeCondition `json:"condition" yaml:"condition" validate:"required,edge_condition"`
	ConditionExpr string        `json:"condition_expr,omitempty" yaml:"condition_expr,omitempty"`
}

// IsConditional checks whether the edge is expression-guarded
func (e *EdgeSpec) IsConditional() bool {
	return e.Condition == ConditionConditional
}

// HasExpr reports whether the edge carries a non-blank condition expression.
// Whitespace-only expressions count as absent.
func (e *EdgeSpec) HasExpr() bool {
	return strings.TrimSpace(e.ConditionExpr) != ""
}
