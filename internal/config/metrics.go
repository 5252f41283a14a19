package config

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Load results recorded by Metrics.
const (
	resultOK       = "ok"
	resultPartial  = "partial"
	resultDefaults = "defaults"
)

// Metrics counts document loads.
type Metrics struct {
	loads       *prometheus.CounterVec
	fieldErrors prometheus.Counter
	reloads     prometheus.Counter
}

// NewMetrics registers the configuration metrics with reg. A nil reg
// creates unregistered collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		loads: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "termcore",
			Subsystem: "config",
			Name:      "loads_total",
			Help:      "Configuration documents loaded, by result.",
		}, []string{"result"}),
		fieldErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "termcore",
			Subsystem: "config",
			Name:      "field_errors_total",
			Help:      "Configuration fields that failed to load.",
		}),
		reloads: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "termcore",
			Subsystem: "config",
			Name:      "reloads_total",
			Help:      "Configuration documents published by live reload.",
		}),
	}
}

func (m *Metrics) observeLoad(result string, fieldErrors int) {
	if m == nil {
		return
	}
	m.loads.WithLabelValues(result).Inc()
	m.fieldErrors.Add(float64(fieldErrors))
}

func (m *Metrics) observeReload() {
	if m == nil {
		return
	}
	m.reloads.Inc()
}
