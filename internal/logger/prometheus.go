package logger

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

var (
	messages     *prometheus.CounterVec //nolint:gochecknoglobals
	messagesOnce sync.Once              //nolint:gochecknoglobals
)

// PrometheusHook counts written log messages per level.
type PrometheusHook struct {
	counter *prometheus.CounterVec
}

// Run implements zerolog.Hook. Access log lines carry no level and are not counted.
func (h PrometheusHook) Run(_ *zerolog.Event, level zerolog.Level, _ string) {
	if level == zerolog.NoLevel || h.counter == nil {
		return
	}

	h.counter.WithLabelValues(level.String()).Inc()
}

// NewPrometheusHook registers peopledesk_log_messages_total on first use.
// The service label is fixed by the first caller.
func NewPrometheusHook(serviceName string) PrometheusHook {
	messagesOnce.Do(func() {
		messages = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   "peopledesk",
				Name:        "log_messages_total",
				Help:        "Log messages written, by level.",
				ConstLabels: prometheus.Labels{"service": serviceName},
			},
			[]string{"level"},
		)
	})

	return PrometheusHook{counter: messages}
}

// LevelCounter returns the counter for level, e.g. "warn".
func LevelCounter(level string) (prometheus.Counter, error) {
	if messages == nil {
		return nil, ErrHookNotInitialized
	}

	return messages.GetMetricWithLabelValues(level) //nolint:wrapcheck
}
