package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DroppedRows conta as linhas descartadas na normalização, por motivo
	DroppedRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stockmind_normalizer_dropped_rows_total",
		Help: "Total de linhas descartadas na normalização por motivo",
	}, []string{"reason"})

	// ImportedRows conta as linhas efetivamente gravadas por marketplace
	ImportedRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stockmind_sales_daily_imported_rows_total",
		Help: "Total de linhas de vendas diárias gravadas por marketplace",
	}, []string{"marketplace"})

	// SyncFailures conta falhas da sincronização diária por etapa
	SyncFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stockmind_daily_sync_failures_total",
		Help: "Total de falhas da sincronização diária por etapa",
	}, []string{"stage"})

	// SyncDuration mede a duração de cada execução dos jobs
	SyncDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "stockmind_job_duration_seconds",
		Help:    "Duração das execuções dos jobs de sincronização",
		Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 900},
	}, []string{"job"})

	// KeepaCalls conta as chamadas externas por resultado (ok, error, quota)
	KeepaCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stockmind_keepa_calls_total",
		Help: "Total de chamadas ao Keepa por resultado",
	}, []string{"result"})

	// ImageResults conta o desfecho de cada candidato da sincronização de imagens
	ImageResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stockmind_image_sync_results_total",
		Help: "Resultado por candidato da sincronização de imagens",
	}, []string{"result"}) // result: found, reused, not_found, failed

	// KeepaTokensLeft guarda o último saldo de tokens informado pelo Keepa
	KeepaTokensLeft = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "stockmind_keepa_tokens_left",
		Help: "Último saldo de tokens informado pelo Keepa",
	})
)

// RecordDropped soma um histograma de descartes ao contador
func RecordDropped(dropped map[string]int) {
	for reason, count := range dropped {
		DroppedRows.WithLabelValues(reason).Add(float64(count))
	}
}
