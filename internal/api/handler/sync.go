package handler

import (
	"context"
	"net/http"

	"github.com/Adrian140/Stockmind/internal/domain"
	"github.com/Adrian140/Stockmind/internal/scheduler"
	"github.com/Adrian140/Stockmind/pkg/apiErrors"
	"github.com/Adrian140/Stockmind/pkg/log"
)

// DailySyncer executa a sincronização diária de forma síncrona
type DailySyncer interface {
	Sync(ctx context.Context, req scheduler.SyncRequest) (*domain.DailySyncReport, error)
}

// ImageSyncer executa a resolução de imagens de forma síncrona
type ImageSyncer interface {
	Run(ctx context.Context, batchSize, maxItems int) (*domain.ImageSyncSummary, error)
	DefaultLimits() (batchSize, maxItems int)
}

type syncDailyRequest struct {
	Marketplaces []string `json:"marketplaces"`
}

// SyncDaily sincroniza os marketplaces do dono do token e retorna o relatório
func SyncDaily(service DailySyncer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		logger.Info("INIT - SyncDaily")

		_, ownerID, ok := resolveOwner(w, r)
		if !ok {
			return
		}

		body := syncDailyRequest{}
		if r.ContentLength > 0 {
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", err.Error())
				return
			}
		}
		marketplaces := append(body.Marketplaces, r.URL.Query()["marketplace"]...)

		report, err := service.Sync(r.Context(), scheduler.SyncRequest{
			OwnerID:      ownerID,
			Marketplaces: marketplaces,
		})
		if err != nil {
			logger.WithError(err).Error("Erro ao sincronizar vendas diárias")
			apiErrors.WriteFromError(w, err, "Erro ao sincronizar vendas diárias")
			return
		}

		writeJSON(w, http.StatusOK, report)
	}
}

// SyncImages executa uma rodada do resolvedor de imagens
func SyncImages(service ImageSyncer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		logger.Info("INIT - SyncImages")

		defaultBatch, defaultMax := service.DefaultLimits()

		batchSize, err := queryInt(r, "batch_size", defaultBatch)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "batch_size inválido", err.Error())
			return
		}
		maxItems, err := queryInt(r, "max_items", defaultMax)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "max_items inválido", err.Error())
			return
		}

		summary, err := service.Run(r.Context(), batchSize, maxItems)
		if err != nil {
			logger.WithError(err).Error("Erro ao sincronizar imagens")
			apiErrors.WriteFromError(w, err, "Erro ao sincronizar imagens")
			return
		}

		writeJSON(w, http.StatusOK, summary)
	}
}
