package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/flowspec/flowspec/internal/app/dto"
	"github.com/flowspec/flowspec/internal/app/usecases"
	"github.com/flowspec/flowspec/internal/core/spec"
)

// maxRequestBodySize limits the size of incoming request bodies (4MB).
const maxRequestBodySize = 4 * 1024 * 1024

type handlers struct {
	checker  usecases.SpecChecker
	registry usecases.SpecRegistry
}

// errorResponse is the JSON body of every non-2xx reply.
type errorResponse struct {
	Error string `json:"error"`
}

// specSummary is the per-spec entry returned by the list endpoint.
type specSummary struct {
	ID     string `json:"id"`
	GoalID string `json:"goal_id,omitempty"`
	Nodes  int    `json:"nodes"`
	Edges  int    `json:"edges"`
}

// handleValidate checks a graph declaration, inline or stored, and returns
// the full report. Malformed declarations come back as 400, never as a
// report with findings.
func (h *handlers) handleValidate(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	req, err := decodeValidationRequest(body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	report, err := h.checker.Check(r.Context(), req)
	if err != nil {
		writeJSON(w, statusFor(err), errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *handlers) handleSaveSpec(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	var g spec.GraphSpec
	if err := json.Unmarshal(body, &g); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid JSON: %v", err)})
		return
	}

	if err := h.registry.Save(r.Context(), &g); err != nil {
		writeJSON(w, statusFor(err), errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, specSummary{ID: g.ID, GoalID: g.GoalID, Nodes: len(g.Nodes), Edges: len(g.Edges)})
}

func (h *handlers) handleGetSpec(w http.ResponseWriter, r *http.Request) {
	g, err := h.registry.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeJSON(w, statusFor(err), errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, g)
}

func (h *handlers) handleListSpecs(w http.ResponseWriter, r *http.Request) {
	specs, err := h.registry.List(r.Context())
	if err != nil {
		writeJSON(w, statusFor(err), errorResponse{Error: err.Error()})
		return
	}

	summaries := make([]specSummary, 0, len(specs))
	for _, g := range specs {
		summaries = append(summaries, specSummary{ID: g.ID, GoalID: g.GoalID, Nodes: len(g.Nodes), Edges: len(g.Edges)})
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (h *handlers) handleDeleteSpec(w http.ResponseWriter, r *http.Request) {
	if err := h.registry.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeJSON(w, statusFor(err), errorResponse{Error: err.Error()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodeValidationRequest accepts either a request envelope carrying
// graph/graph_id or a bare graph document.
func decodeValidationRequest(body []byte) (*dto.ValidationRequest, error) {
	var req dto.ValidationRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if req.Graph != nil || req.GraphID != "" {
		return &req, nil
	}

	var g spec.GraphSpec
	if err := json.Unmarshal(body, &g); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return &dto.ValidationRequest{Graph: &g}, nil
}

// readBody reads the request body with a size limit so oversized documents
// cannot exhaust memory.
func readBody(r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("read request body: %w", err)
	}
	if len(body) > maxRequestBodySize {
		return nil, fmt.Errorf("request body too large (max %d bytes)", maxRequestBodySize)
	}
	return body, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, spec.ErrSpecNotFound):
		return http.StatusNotFound
	case errors.Is(err, dto.ErrMalformedSpec),
		errors.Is(err, dto.ErrNilRequest),
		errors.Is(err, dto.ErrEmptyRequest),
		errors.Is(err, spec.ErrNilGraphSpec),
		errors.Is(err, spec.ErrDuplicateNodeID),
		errors.Is(err, spec.ErrDuplicateEdgeID):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
