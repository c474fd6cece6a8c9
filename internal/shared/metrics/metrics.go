// Package metrics exposes process-local counters in Prometheus text format.
package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	qualifyRequestsTotal   atomic.Uint64
	qualifyCompletedTotal  atomic.Uint64
	qualifyFailedTotal     atomic.Uint64
	qualifyAIEnhancedTotal atomic.Uint64
	batchAnalysesTotal     atomic.Uint64

	qualifyDuration = newHistogram([]float64{10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 15000})
)

// IncQualifyRequest increments the received-request counter.
func IncQualifyRequest() {
	qualifyRequestsTotal.Add(1)
}

// IncQualifyCompleted increments the completed counter.
func IncQualifyCompleted() {
	qualifyCompletedTotal.Add(1)
}

// IncQualifyFailed increments the failed counter.
func IncQualifyFailed() {
	qualifyFailedTotal.Add(1)
}

// IncQualifyAIEnhanced increments the AI-enhanced counter.
func IncQualifyAIEnhanced() {
	qualifyAIEnhancedTotal.Add(1)
}

// IncBatchAnalysis increments the batch-analysis counter.
func IncBatchAnalysis() {
	batchAnalysesTotal.Add(1)
}

// ObserveQualifyDurationMs records a scoring duration in milliseconds.
func ObserveQualifyDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	qualifyDuration.Observe(value)
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
	writeCounter(&buf, "qualify_requests_total", "Total qualification requests received", qualifyRequestsTotal.Load())
	writeCounter(&buf, "qualify_completed_total", "Total qualifications completed", qualifyCompletedTotal.Load())
	writeCounter(&buf, "qualify_failed_total", "Total qualifications failed", qualifyFailedTotal.Load())
	writeCounter(&buf, "qualify_ai_enhanced_total", "Total qualifications enhanced by the AI classifier", qualifyAIEnhancedTotal.Load())
	writeCounter(&buf, "batch_analyses_total", "Total batch analyses run", batchAnalysesTotal.Load())
	writeHistogram(&buf, "qualify_duration_ms", "Qualification duration in milliseconds", qualifyDuration.Snapshot())
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

// NowMillis returns current time in milliseconds, useful for callers without time utilities.
func NowMillis() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Millisecond)
}
