package metrics

import (
	"expvar"
)

// Finding counters keyed by finding kind ("structural", "cycle").
var (
	findingsTotal = expvar.NewMap("flowspec_findings_total")
)

// Validation flow counters.
var (
	validationsTotal = new(expvar.Int)
	graphsValid      = new(expvar.Int)
	graphsInvalid    = new(expvar.Int)
	specsRejected    = new(expvar.Int)
	cyclesDetected   = new(expvar.Int)
)

func init() {
	expvar.Publish("flowspec_validations_total", validationsTotal)
	expvar.Publish("flowspec_graphs_valid_total", graphsValid)
	expvar.Publish("flowspec_graphs_invalid_total", graphsInvalid)
	expvar.Publish("flowspec_specs_rejected_total", specsRejected)
	expvar.Publish("flowspec_cycles_detected_total", cyclesDetected)
}

// RecordValidation counts one completed check and its findings by kind.
func RecordValidation(structural, cycles int) {
	validationsTotal.Add(1)
	if structural+cycles == 0 {
		graphsValid.Add(1)
	} else {
		graphsInvalid.Add(1)
	}
	if structural > 0 {
		findingsTotal.Add("structural", int64(structural))
	}
	if cycles > 0 {
		findingsTotal.Add("cycle", int64(cycles))
		cyclesDetected.Add(int64(cycles))
	}
}

// RecordRejectedSpec counts one declaration refused by the shape gate.
func RecordRejectedSpec() {
	specsRejected.Add(1)
}
