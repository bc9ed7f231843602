package auth

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultAllowed = "allowed"
	resultDenied  = "denied"
)

var decisions = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
	Name: "authorization_decisions_total",
	Help: "Number of authorization decisions per required permission and result.",
}, []string{"permission", "result"})

func recordDecision(required []string, allowed bool) {
	result := resultDenied
	if allowed {
		result = resultAllowed
	}

	decisions.WithLabelValues(strings.Join(required, ","), result).Inc()
}
