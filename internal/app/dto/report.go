package dto

import (
	"time"

	"github.com/flowspec/flowspec/internal/core/spec"
)

// ValidationRequest asks for a structural check of one graph
// declaration, either inline or by the id of a stored one. When both
// are present the inline declaration wins.
type ValidationRequest struct {
	GraphID string          `json:"graph_id,omitempty"`
	Graph   *spec.GraphSpec `json:"graph,omitempty"`
}

// Validate ensures the request names a graph to check
func (r *ValidationRequest) Validate() error {
	if r == nil {
		return ErrNilRequest
	}
	if r.Graph == nil && r.GraphID == "" {
		return ErrEmptyRequest
	}
	return nil
}

// FindingCounts breaks a report's findings down by class. Cycle
// findings are recognized by the report contract prefix; everything
// else is a structural finding.
type FindingCounts struct {
	Total      int `json:"total"`
	Structural int `json:"structural"`
	Cycles     int `json:"cycles"`
}

// ValidationReport carries the complete outcome of one check
type ValidationReport struct {
	GraphID   string        `json:"graph_id"`
	GoalID    string        `json:"goal_id,omitempty"`
	Valid     bool          `json:"valid"`
	Findings  []string      `json:"findings"`
	Counts    FindingCounts `json:"counts"`
	CheckedAt time.Time     `json:"checked_at"`
	Duration  time.Duration `json:"duration_ns"`
}

// NewValidationReport assembles a report from the ordered findings of
// one validation run started at the given time.
func NewValidationReport(g *spec.GraphSpec, findings []string, started time.Time) *ValidationReport {
	counts := FindingCounts{Total: len(findings)}
	for _, f := range findings {
		if spec.IsCycleMessage(f) {
			counts.Cycles++
		}
	}
	counts.Structural = counts.Total - counts.Cycles

	return &ValidationReport{
		GraphID:   g.ID,
		GoalID:    g.GoalID,
		Valid:     counts.Total == 0,
		Findings:  findings,
		Counts:    counts,
		CheckedAt: started,
		Duration:  time.Since(started),
	}
}

// CycleFindings returns only the cycle findings, in report order.
func (r *ValidationReport) CycleFindings() []string {
	cycles := make([]string, 0, r.Counts.Cycles)
	for _, f := range r.Findings {
		if spec.IsCycleMessage(f) {
			cycles = append(cycles, f)
		}
	}
	return cycles
}
