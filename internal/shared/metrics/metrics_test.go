package metrics

import (
	"bytes"
	"strings"
	"testing"
)

func TestRenderIncludesCountersAndHistogram(t *testing.T) {
	before := predictRequestsTotal.Load()
	IncPredictRequests()
	ObserveDBProbe(true)
	ObservePredictDurationMs(0.2)
	ObservePredictDurationMs(-3)

	out := Render()
	for _, want := range []string{
		"# TYPE predict_requests_total counter",
		"# TYPE db_probe_failures_total counter",
		"# TYPE predict_duration_ms histogram",
		`predict_duration_ms_bucket{le="+Inf"}`,
		"predict_duration_ms_sum",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("render missing %q:\n%s", want, out)
		}
	}
	if predictRequestsTotal.Load() != before+1 {
		t.Fatalf("expected predict counter to advance by one")
	}
}

func TestHistogramBucketsAreCumulative(t *testing.T) {
	h := newHistogram([]float64{1, 10})
	h.Observe(0.5)
	h.Observe(5)
	h.Observe(50)

	snap := h.Snapshot()
	if snap.count != 3 {
		t.Fatalf("expected count 3, got %d", snap.count)
	}
	if snap.counts[0] != 1 || snap.counts[1] != 1 {
		t.Fatalf("unexpected bucket counts %v", snap.counts)
	}
	var buf bytes.Buffer
	writeHistogram(&buf, "h", "help", snap)
	if !strings.Contains(buf.String(), `h_bucket{le="10"} 2`) {
		t.Fatalf("expected cumulative bucket, got:\n%s", buf.String())
	}
	if formatFloat(snap.sum) != "55.5" {
		t.Fatalf("unexpected sum %s", formatFloat(snap.sum))
	}
}
