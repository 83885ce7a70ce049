package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/Adrian140/Stockmind/internal/domain"
	"github.com/Adrian140/Stockmind/internal/usecases/aggregating"
	"github.com/Adrian140/Stockmind/pkg/apiErrors"
	"github.com/Adrian140/Stockmind/pkg/log"
	"github.com/Adrian140/Stockmind/pkg/utils"
)

type metricsRangeResponse struct {
	Start       string                   `json:"start"`
	End         string                   `json:"end"`
	Marketplace string                   `json:"marketplace,omitempty"`
	Products    []*domain.ProductMetrics `json:"products"`
}

// GetMetricsRange agrega as vendas do intervalo, ordenadas por unidades
func GetMetricsRange(service aggregating.AggregatorService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		logger.Info("INIT - GetMetricsRange")

		_, ownerID, ok := resolveOwner(w, r)
		if !ok {
			return
		}

		query := r.URL.Query()
		if query.Get("start") == "" || query.Get("end") == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Parâmetros start e end são obrigatórios", nil)
			return
		}

		start, err := utils.ParseDate(query.Get("start"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "start deve estar no formato YYYY-MM-DD", err.Error())
			return
		}
		end, err := utils.ParseDate(query.Get("end"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "end deve estar no formato YYYY-MM-DD", err.Error())
			return
		}

		params := aggregating.AggregateParams{
			OwnerID: ownerID,
			Start:   *start,
			End:     *end,
		}
		marketplace := strings.ToUpper(strings.TrimSpace(query.Get("marketplace")))
		if marketplace != "" {
			params.Marketplace = &marketplace
		}

		groups, err := service.Aggregate(r.Context(), params)
		if err != nil {
			logger.WithError(err).Error("Erro ao agregar métricas")
			apiErrors.WriteFromError(w, err, "Erro ao agregar métricas")
			return
		}

		writeJSON(w, http.StatusOK, metricsRangeResponse{
			Start:       start.Format(time.DateOnly),
			End:         end.Format(time.DateOnly),
			Marketplace: marketplace,
			Products:    aggregating.Sorted(groups),
		})
	}
}
