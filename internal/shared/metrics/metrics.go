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

type counter struct {
	name string
	help string
	v    atomic.Uint64
}

func (c *counter) add(n uint64) { c.v.Add(n) }

var (
	analysisStarted   = &counter{name: "resume_analysis_started_total", help: "Analyses accepted for a model call"}
	analysisCompleted = &counter{name: "resume_analysis_completed_total", help: "Analyses decoded and stored as a session"}
	analysisFailed    = &counter{name: "resume_analysis_failed_total", help: "Analyses voided by a model or schema failure"}
	chatbotReplies    = &counter{name: "chatbot_replies_total", help: "Chatbot replies returned to the client"}
	chatbotFailed     = &counter{name: "chatbot_failed_total", help: "Chatbot requests rejected or failed at the model"}
	sessionsSwept     = &counter{name: "sessions_swept_total", help: "Sessions removed by the expiry sweep"}

	counters = []*counter{analysisStarted, analysisCompleted, analysisFailed, chatbotReplies, chatbotFailed, sessionsSwept}

	sessionsActive atomic.Int64

	analysisDuration = newHistogram("resume_analysis_duration_ms", "Analysis latency including the model call",
		[]float64{2000, 5000, 10000, 20000, 40000, 60000, 90000, 120000})

	chatbotDuration = newHistogram("chatbot_reply_duration_ms", "Chatbot model call latency",
		[]float64{250, 500, 1000, 2000, 5000, 10000, 30000})
)

func IncAnalysisStarted()   { analysisStarted.add(1) }
func IncAnalysisCompleted() { analysisCompleted.add(1) }
func IncAnalysisFailed()    { analysisFailed.add(1) }
func IncChatbotReply()      { chatbotReplies.add(1) }
func IncChatbotFailed()     { chatbotFailed.add(1) }

// AddSessionsSwept adds n expired sessions removed by a sweep.
func AddSessionsSwept(n int) {
	if n > 0 {
		sessionsSwept.add(uint64(n))
	}
}

// SetSessionsActive records the current session count.
func SetSessionsActive(n int) {
	sessionsActive.Store(int64(n))
}

// ObserveAnalysisDurationMs records an analysis duration in milliseconds.
func ObserveAnalysisDurationMs(ms float64) { analysisDuration.observe(ms) }

// ObserveChatbotDurationMs records a chatbot model call duration in milliseconds.
func ObserveChatbotDurationMs(ms float64) { chatbotDuration.observe(ms) }

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
	for _, c := range counters {
		writeHeader(&buf, c.name, c.help, "counter")
		fmt.Fprintf(&buf, "%s %d\n", c.name, c.v.Load())
	}
	writeHeader(&buf, "sessions_active", "Sessions currently held in memory", "gauge")
	fmt.Fprintf(&buf, "sessions_active %d\n", sessionsActive.Load())
	analysisDuration.write(&buf)
	chatbotDuration.write(&buf)
	return buf.String()
}

type histogram struct {
	name   string
	help   string
	bounds []float64

	mu     sync.Mutex
	counts []uint64 // per bucket, not cumulative
	sum    float64
	count  uint64
}

func newHistogram(name, help string, bounds []float64) *histogram {
	return &histogram{name: name, help: help, bounds: bounds, counts: make([]uint64, len(bounds))}
}

func (h *histogram) observe(value float64) {
	if value < 0 {
		value = 0
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.bounds {
		if value <= bound {
			h.counts[i]++
			return
		}
	}
}

func (h *histogram) write(buf *bytes.Buffer) {
	h.mu.Lock()
	counts := append([]uint64(nil), h.counts...)
	sum, count := h.sum, h.count
	h.mu.Unlock()

	writeHeader(buf, h.name, h.help, "histogram")
	var cumulative uint64
	for i, bound := range h.bounds {
		cumulative += counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=%q} %d\n", h.name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", h.name, count)
	fmt.Fprintf(buf, "%s_sum %s\n", h.name, formatFloat(sum))
	fmt.Fprintf(buf, "%s_count %d\n", h.name, count)
}

func writeHeader(buf *bytes.Buffer, name, help, kind string) {
	fmt.Fprintf(buf, "# HELP %s %s\n# TYPE %s %s\n", name, help, name, kind)
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
