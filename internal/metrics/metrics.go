// internal/metrics/metrics.go
// Contadores Prometheus do núcleo de cálculo

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DowntimeComputations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "erp_downtime_computations_total",
		Help: "Quantidade de relatórios de parada calculados.",
	})

	TimelineBuilds = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "erp_timeline_builds_total",
		Help: "Quantidade de linhas do tempo montadas, por escopo.",
	}, []string{"scope"}) // "machine" | "fleet"

	TimelineEvents = promauto.NewCounter(prometheus.CounterOpts{
		Name: "erp_timeline_events_total",
		Help: "Total de eventos normalizados emitidos.",
	})
)
