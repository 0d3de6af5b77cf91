package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/common/expfmt"
	"github.com/prometheus/common/model"
)

func TestWriteTextfileRoundTrip(t *testing.T) {
	r := NewRecorder()
	r.Snapshot()
	r.Snapshot()
	r.Termination("graceful")
	r.Termination("forced")
	r.Termination("forced")
	r.Recovery("relaunched")

	path := filepath.Join(t.TempDir(), "procwatch.prom")
	if err := r.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open textfile: %v", err)
	}
	defer f.Close()

	parser := expfmt.NewTextParser(model.UTF8Validation)
	families, err := parser.TextToMetricFamilies(f)
	if err != nil {
		t.Fatalf("Textfile is not valid Prometheus text format: %v", err)
	}

	snaps, ok := families["procwatch_snapshots_total"]
	if !ok {
		t.Fatal("procwatch_snapshots_total missing from textfile")
	}
	if got := snaps.GetMetric()[0].GetCounter().GetValue(); got != 2 {
		t.Errorf("Expected 2 snapshots, got %v", got)
	}

	terms, ok := families["procwatch_termination_outcomes_total"]
	if !ok {
		t.Fatal("procwatch_termination_outcomes_total missing from textfile")
	}
	byMethod := map[string]float64{}
	for _, m := range terms.GetMetric() {
		for _, l := range m.GetLabel() {
			if l.GetName() == "method" {
				byMethod[l.GetValue()] = m.GetCounter().GetValue()
			}
		}
	}
	if byMethod["graceful"] != 1 || byMethod["forced"] != 2 {
		t.Errorf("Unexpected termination counts: %v", byMethod)
	}

	if _, ok := families["procwatch_recovery_attempts_total"]; !ok {
		t.Error("procwatch_recovery_attempts_total missing from textfile")
	}
}
