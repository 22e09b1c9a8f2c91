package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/flowspec/flowspec/internal/app/dto"
	"github.com/flowspec/flowspec/internal/core/spec"
	"github.com/flowspec/flowspec/internal/infrastructure/metrics"
	"github.com/flowspec/flowspec/pkg/validation"
)

// ErrNoRegistry indicates a by-id request against a checker built
// without a registry
var ErrNoRegistry = errors.New("no spec registry configured")

// DefaultSpecChecker implements SpecChecker
// PRINCIPLES:
// - SRP: Orchestration only; the structural rules live in the core model
// - DIP: Depends on the SpecRegistry abstraction
type DefaultSpecChecker struct {
	registry SpecRegistry
}

// NewSpecChecker creates a checker. The registry may be nil for
// inline-only checking.
func NewSpecChecker(registry SpecRegistry) *DefaultSpecChecker {
	return &DefaultSpecChecker{registry: registry}
}

// Check resolves the declaration (inline wins over a registry lookup),
// rejects construction-class defects through the shape gate, and runs
// structural validation. Shape rejections come back as errors wrapping
// dto.ErrMalformedSpec; structural findings come back inside the report.
func (c *DefaultSpecChecker) Check(ctx context.Context, req *dto.ValidationRequest) (*dto.ValidationReport, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	g := req.Graph
	if g == nil {
		if c.registry == nil {
			return nil, ErrNoRegistry
		}
		stored, err := c.registry.Get(ctx, req.GraphID)
		if err != nil {
			return nil, fmt.Errorf("load graph %q: %w", req.GraphID, err)
		}
		g = stored
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := validation.CheckSpec(g); err != nil {
		metrics.RecordRejectedSpec()
		return nil, fmt.Errorf("%w: %w", dto.ErrMalformedSpec, err)
	}

	started := time.Now()
	findings := g.Validate()
	report := dto.NewValidationReport(g, findings, started)
	metrics.RecordValidation(report.Counts.Structural, report.Counts.Cycles)
	return report, nil
}

// CheckStored loads a stored declaration and checks it.
func (c *DefaultSpecChecker) CheckStored(ctx context.Context, graphID string) (*dto.ValidationReport, error) {
	return c.Check(ctx, &dto.ValidationRequest{GraphID: graphID})
}

// CheckGraph checks an inline declaration.
func (c *DefaultSpecChecker) CheckGraph(ctx context.Context, g *spec.GraphSpec) (*dto.ValidationReport, error) {
	return c.Check(ctx, &dto.ValidationRequest{Graph: g})
}
