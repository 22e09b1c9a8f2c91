package flowspec

import (
	"context"

	"github.com/flowspec/flowspec/internal/adapters/registry/memory"
	"github.com/flowspec/flowspec/internal/app/dto"
	"github.com/flowspec/flowspec/internal/app/usecases"
	"github.com/flowspec/flowspec/internal/core/spec"
	"github.com/flowspec/flowspec/pkg/validation"
)

// Re-export core spec types for convenience
type GraphSpec = spec.GraphSpec
type NodeSpec = spec.NodeSpec
type EdgeSpec = spec.EdgeSpec
type EdgeCondition = spec.EdgeCondition

// Re-export edge condition values so callers never import internal packages.
const (
	ConditionAlways      = spec.ConditionAlways
	ConditionOnSuccess   = spec.ConditionOnSuccess
	ConditionOnFailure   = spec.ConditionOnFailure
	ConditionConditional = spec.ConditionConditional
)

// Re-export report types used by Runtime results.
type ValidationReport = dto.ValidationReport
type FindingCounts = dto.FindingCounts

// Validate runs the full graph-level validation pass and returns every
// finding in deterministic order. An empty slice means the spec is valid.
func Validate(g *GraphSpec) []string {
	return g.Validate()
}

// IsCycleMessage reports whether a finding produced by Validate describes a
// cycle rather than a structural problem.
func IsCycleMessage(finding string) bool {
	return spec.IsCycleMessage(finding)
}

// CheckSpec runs the shape gate: struct-tag validation plus relational shape
// checks such as duplicate ids. Specs that fail here are malformed and not
// worth handing to Validate.
func CheckSpec(g *GraphSpec) error {
	return validation.CheckSpec(g)
}

// Runtime is a simple façade to store and check specs without importing
// internal packages directly. The default runtime uses an in-memory registry
// and is suitable for local usage and tests.
type Runtime struct {
	checker  usecases.SpecChecker
	registry usecases.SpecRegistry
}

// NewRuntime constructs a default runtime with in-memory components suitable for local usage.
func NewRuntime() *Runtime {
	registry := memory.NewSpecRegistry()
	checker := usecases.NewSpecChecker(registry)
	return &Runtime{checker: checker, registry: registry}
}

// SaveSpec persists a spec to the runtime registry. Malformed specs are
// rejected before they are stored.
func (rt *Runtime) SaveSpec(ctx context.Context, g *GraphSpec) error {
	return rt.registry.Save(ctx, g)
}

// Check validates an inline spec and returns the full report.
func (rt *Runtime) Check(ctx context.Context, g *GraphSpec) (*ValidationReport, error) {
	return rt.checker.Check(ctx, &dto.ValidationRequest{Graph: g})
}

// CheckStored loads a previously saved spec by id and validates it.
func (rt *Runtime) CheckStored(ctx context.Context, graphID string) (*ValidationReport, error) {
	return rt.checker.Check(ctx, &dto.ValidationRequest{GraphID: graphID})
}
