package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	predictRequestsTotal atomic.Uint64
	predictFailuresTotal atomic.Uint64
	dbProbeTotal         atomic.Uint64
	dbProbeFailuresTotal atomic.Uint64

	predictDuration = newHistogram([]float64{0.05, 0.1, 0.5, 1, 5, 10, 50, 100})
)

// IncPredictRequests increments the predict request counter.
func IncPredictRequests() {
	predictRequestsTotal.Add(1)
}

// IncPredictFailures increments the predict failure counter.
func IncPredictFailures() {
	predictFailuresTotal.Add(1)
}

// ObserveDBProbe records one database probe and whether it failed.
func ObserveDBProbe(failed bool) {
	dbProbeTotal.Add(1)
	if failed {
		dbProbeFailuresTotal.Add(1)
	}
}

// ObservePredictDurationMs records a provider call duration in milliseconds.
func ObservePredictDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	predictDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "predict_requests_total", "Total predict requests", predictRequestsTotal.Load())
	writeCounter(&buf, "predict_failures_total", "Total predict requests that failed", predictFailuresTotal.Load())
	writeCounter(&buf, "db_probe_total", "Total database liveness probes", dbProbeTotal.Load())
	writeCounter(&buf, "db_probe_failures_total", "Total failed database liveness probes", dbProbeFailuresTotal.Load())
	writeHistogram(&buf, "predict_duration_ms", "Prediction provider duration in milliseconds", predictDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			break
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
	return out
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
