// Package usecases contains the application logic for checking graph
// declarations
package usecases

import (
	"context"

	"github.com/flowspec/flowspec/internal/app/dto"
	"github.com/flowspec/flowspec/internal/core/spec"
)

// SpecRegistry defines the interface for graph declaration storage
// PRINCIPLES:
// - SRP: Only responsible for declaration persistence
// - DIP: Used for dependency injection
// - ISP: Interface with ≤5 methods
type SpecRegistry interface {
	// Save stores a declaration, replacing any existing one with the same id
	Save(ctx context.Context, g *spec.GraphSpec) error

	// Get loads a declaration by id
	Get(ctx context.Context, id string) (*spec.GraphSpec, error)

	// List returns every stored declaration ordered by id
	List(ctx context.Context) ([]*spec.GraphSpec, error)

	// Delete removes a declaration by id
	Delete(ctx context.Context, id string) error
}

// SpecChecker defines the interface for turning a validation request
// into a report
// PRINCIPLES:
// - SRP: Single responsibility for check orchestration
// - DIP: Depends on abstractions, not concretions
type SpecChecker interface {
	// Check resolves the requested declaration, gates its shape and
	// returns the structural findings as a report
	Check(ctx context.Context, req *dto.ValidationRequest) (*dto.ValidationReport, error)
}
