package shroud

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	reloadApplied   = "applied"
	reloadUnchanged = "unchanged"
	reloadFailed    = "failed"
)

// Metrics contains Prometheus metrics for shroud zone reloads.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	reloads     *prometheus.CounterVec
	diagnostics *prometheus.CounterVec
	zones       prometheus.Gauge
	regions     prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		reloads: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shroud_zone_reloads_total",
				Help: "Total number of shroud zone reload attempts",
			},
			[]string{"result"},
		),

		diagnostics: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shroud_zone_skipped_entries_total",
				Help: "Total number of malformed shroud zone entries skipped",
			},
			[]string{"kind"},
		),

		zones: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "shroud_zones_loaded",
				Help: "Number of shroud zones in the current snapshot",
			},
		),

		regions: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "shroud_zone_regions_loaded",
				Help: "Number of landblocks carrying shroud zones in the current snapshot",
			},
		),
	}
}

func (m *Metrics) observeReload(result string) {
	if m == nil {
		return
	}
	m.reloads.WithLabelValues(result).Inc()
}

func (m *Metrics) observeDiagnostic(kind string) {
	if m == nil {
		return
	}
	m.diagnostics.WithLabelValues(kind).Inc()
}

func (m *Metrics) setZones(zones, regions int) {
	if m == nil {
		return
	}
	m.zones.Set(float64(zones))
	m.regions.Set(float64(regions))
}
