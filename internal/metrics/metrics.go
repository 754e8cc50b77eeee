package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder exposes pipeline metrics. A nil *Recorder records nothing.
type Recorder struct {
	verdicts    *prometheus.CounterVec
	llmAttempts *prometheus.CounterVec
	llmLatency  *prometheus.HistogramVec
	unavailable *prometheus.CounterVec
}

// New registers the pipeline collectors on reg.
func New(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		verdicts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "verdict_total",
				Help: "Verdicts produced, by signal and producing path",
			},
			[]string{"signal", "path"},
		),
		llmAttempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "verdict_llm_attempts_total",
				Help: "LLM completion attempts by outcome",
			},
			[]string{"provider", "outcome"},
		),
		llmLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "verdict_llm_latency_seconds",
				Help:    "LLM completion latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"provider"},
		),
		unavailable: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "verdict_source_unavailable_total",
				Help: "Collaborator calls that returned no data",
			},
			[]string{"source"},
		),
	}
}

func (r *Recorder) RecordVerdict(signal, path string) {
	if r == nil {
		return
	}
	r.verdicts.WithLabelValues(signal, path).Inc()
}

// RecordAttempt records one LLM call; outcome is ok, error or invalid.
func (r *Recorder) RecordAttempt(provider, outcome string, took time.Duration) {
	if r == nil {
		return
	}
	r.llmAttempts.WithLabelValues(provider, outcome).Inc()
	r.llmLatency.WithLabelValues(provider).Observe(took.Seconds())
}

func (r *Recorder) RecordUnavailable(source string) {
	if r == nil {
		return
	}
	r.unavailable.WithLabelValues(source).Inc()
}
