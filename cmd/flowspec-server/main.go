// Package main provides the FlowSpec validation HTTP server.
package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/flowspec/flowspec/internal/adapters/registry/memory"
	"github.com/flowspec/flowspec/internal/app/usecases"
)

func main() {
	addr := ":8080"
	if v := os.Getenv("FLOWSPEC_ADDR"); v != "" {
		addr = v
	}

	registry := memory.NewSpecRegistry()
	checker := usecases.NewSpecChecker(registry)

	srv := &http.Server{
		Addr:         addr,
		Handler:      newMux(checker, registry),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Handle graceful shutdown
	done := make(chan struct{})
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
		close(done)
	}()

	log.Printf("Starting FlowSpec server on %s", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}

	<-done
	log.Println("Server stopped")
}

// newMux wires all routes. Split out of main so tests can drive the full
// handler chain through httptest.
func newMux(checker usecases.SpecChecker, registry usecases.SpecRegistry) *http.ServeMux {
	h := &handlers{checker: checker, registry: registry}

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprintln(w, "FlowSpec server is running. See /healthz, /metrics, /debug/vars")
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprint(w, "ok")
	})

	// Prometheus-compatible metrics endpoint (no external deps)
	mux.HandleFunc("/metrics", promMetricsHandler)
	mux.Handle("/debug/vars", expvar.Handler())

	mux.HandleFunc("POST /v1/validate", h.handleValidate)
	mux.HandleFunc("POST /v1/specs", h.handleSaveSpec)
	mux.HandleFunc("GET /v1/specs", h.handleListSpecs)
	mux.HandleFunc("GET /v1/specs/{id}", h.handleGetSpec)
	mux.HandleFunc("DELETE /v1/specs/{id}", h.handleDeleteSpec)

	return mux
}

// promMetricsHandler renders expvar-published metrics in Prometheus text exposition format.
// It supports known FlowSpec metrics and falls back to a minimal conversion for other expvar vars.
func promMetricsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")

	// Define metadata for known metrics
	type meta struct {
		typ, help string
		isMap     bool
		label     string
	}
	metas := map[string]meta{
		"flowspec_findings_total":        {typ: "counter", help: "Validation findings by kind", isMap: true, label: "kind"},
		"flowspec_validations_total":     {typ: "counter", help: "Validation passes executed", isMap: false},
		"flowspec_graphs_valid_total":    {typ: "counter", help: "Specs that validated clean", isMap: false},
		"flowspec_graphs_invalid_total":  {typ: "counter", help: "Specs with at least one finding", isMap: false},
		"flowspec_specs_rejected_total":  {typ: "counter", help: "Specs refused by the shape gate", isMap: false},
		"flowspec_cycles_detected_total": {typ: "counter", help: "Cycle findings reported", isMap: false},
	}

	// Collect variable names deterministically
	varNames := make([]string, 0, 64)
	expvar.Do(func(kv expvar.KeyValue) {
		varNames = append(varNames, kv.Key)
	})
	sort.Strings(varNames)

	printed := make(map[string]bool)

	writeHeader := func(name string, m meta) {
		if printed[name] {
			return
		}
		_, _ = fmt.Fprintf(w, "# HELP %s %s\n", name, sanitizeHelp(m.help))
		_, _ = fmt.Fprintf(w, "# TYPE %s %s\n", name, m.typ)
		printed[name] = true
	}

	for _, name := range varNames {
		v := expvar.Get(name)
		m, known := metas[name]
		if !known {
			// Minimal rendering: publish as an untyped gauge if numeric
			if iv, ok := v.(*expvar.Int); ok {
				_, _ = fmt.Fprintf(w, "# TYPE %s gauge\n", name)
				_, _ = fmt.Fprintf(w, "%s %s\n", name, iv.String())
			}
			continue
		}
		writeHeader(name, m)
		if m.isMap {
			if mp, ok := v.(*expvar.Map); ok {
				// Collect subkeys deterministically
				sub := make([]expvar.KeyValue, 0, 8)
				mp.Do(func(kv expvar.KeyValue) { sub = append(sub, kv) })
				sort.Slice(sub, func(i, j int) bool { return sub[i].Key < sub[j].Key })
				for _, kv := range sub {
					fmt.Fprintf(w, "%s{%s=\"%s\"} %s\n", name, m.label, escapeLabel(kv.Key), kv.Value.String())
				}
			}
		} else {
			fmt.Fprintf(w, "%s %s\n", name, v.String())
		}
	}
}

func sanitizeHelp(s string) string {
	// Replace newlines with spaces to satisfy Prometheus text format
	return strings.ReplaceAll(s, "\n", " ")
}

func escapeLabel(s string) string {
	// Escape backslash, double-quote, and newline per Prometheus format
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
