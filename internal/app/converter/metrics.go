package converter

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	apperrors "v2t/internal/app/errors"
)

const metricsNamespace = "v2t"

// Metrics counts conversions per model family. A nil *Metrics records nothing.
type Metrics struct {
	conversions  *prometheus.CounterVec
	latency      *prometheus.HistogramVec
	audioSeconds *prometheus.CounterVec
}

// NewMetrics registers the conversion collectors on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		conversions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "conversions_total",
			Help:      "Conversions by model family and outcome.",
		}, []string{"family", "outcome"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "conversion_duration_seconds",
			Help:      "Wall time of successful conversions.",
			Buckets:   prometheus.ExponentialBuckets(0.5, 2, 12),
		}, []string{"family"}),
		audioSeconds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "audio_processed_seconds_total",
			Help:      "Seconds of audio transcribed.",
		}, []string{"family"}),
	}
	for _, c := range []prometheus.Collector{m.conversions, m.latency, m.audioSeconds} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// RecordSuccess records a completed conversion of audioSeconds of audio.
func (m *Metrics) RecordSuccess(family string, elapsed time.Duration, audioSeconds int) {
	if m == nil {
		return
	}
	m.conversions.WithLabelValues(family, "success").Inc()
	m.latency.WithLabelValues(family).Observe(elapsed.Seconds())
	m.audioSeconds.WithLabelValues(family).Add(float64(audioSeconds))
}

// RecordFailure records a failed conversion under the outcome matching err.
func (m *Metrics) RecordFailure(family string, err error) {
	if m == nil {
		return
	}
	m.conversions.WithLabelValues(family, failureOutcome(err)).Inc()
}

func failureOutcome(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrMediaConversion):
		return "media_conversion_error"
	case errors.Is(err, apperrors.ErrTranscription):
		return "transcription_error"
	default:
		return "error"
	}
}
