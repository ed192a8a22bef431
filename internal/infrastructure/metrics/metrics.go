package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	appsync "github.com/ShreyashDhakate/Caton-IMS-sub000/internal/application/sync"
)

var _ appsync.Observer = (*SyncMetrics)(nil)

// SyncMetrics colectores Prometheus del núcleo de sincronización. Implementa
// sync.Observer: el motor reporta contadores por pasada sin conocer Prometheus.
type SyncMetrics struct {
	reconcileSucceeded prometheus.Counter
	reconcileFailed    prometheus.Counter
	reconcileDuration  prometheus.Histogram
	refreshLoaded      prometheus.Counter
	refreshSkipped     prometheus.Counter
}

// New registra los colectores en reg y devuelve el observador.
func New(reg prometheus.Registerer) *SyncMetrics {
	m := &SyncMetrics{
		reconcileSucceeded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "caton_reconcile_records_succeeded_total",
			Help: "Registros empujados al remoto con éxito.",
		}),
		reconcileFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "caton_reconcile_records_failed_total",
			Help: "Registros cuya reconciliación falló (se reintentan en la siguiente pasada).",
		}),
		reconcileDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "caton_reconcile_pass_duration_seconds",
			Help:    "Duración de cada pasada de reconciliación.",
			Buckets: prometheus.DefBuckets,
		}),
		refreshLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "caton_refresh_records_loaded_total",
			Help: "Registros cargados en la caché local por los refresh.",
		}),
		refreshSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "caton_refresh_records_skipped_total",
			Help: "Payloads remotos malformados descartados al normalizar.",
		}),
	}
	reg.MustRegister(
		m.reconcileSucceeded,
		m.reconcileFailed,
		m.reconcileDuration,
		m.refreshLoaded,
		m.refreshSkipped,
	)
	return m
}

// ReconcilePass registra los contadores de una pasada de reconciliación.
func (m *SyncMetrics) ReconcilePass(succeeded, failed int, elapsed time.Duration) {
	m.reconcileSucceeded.Add(float64(succeeded))
	m.reconcileFailed.Add(float64(failed))
	m.reconcileDuration.Observe(elapsed.Seconds())
}

// RefreshPass registra los contadores de un refresh.
func (m *SyncMetrics) RefreshPass(loaded, skipped int) {
	m.refreshLoaded.Add(float64(loaded))
	m.refreshSkipped.Add(float64(skipped))
}
