package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"

	"github.com/Adrian140/Stockmind/internal/scheduler"
	"github.com/Adrian140/Stockmind/pkg/apiErrors"
	"github.com/Adrian140/Stockmind/pkg/middleware"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeDailySales  = scheduler.DailySalesJob
	CronJobTypeKeepaImages = scheduler.KeepaImagesJob
	CronJobTypeAll         = "all"
)

// CronJob é um job agendado que pode ser disparado manualmente
type CronJob interface {
	TriggerManualSync()
	GetStatus() map[string]any
}

// CronJobServices contém os serviços de cron necessários para executar manualmente
type CronJobServices struct {
	DailySalesSyncService CronJob
	KeepaImageSyncService CronJob
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		userClaims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok || userClaims.RoleID != middleware.RoleAdmin {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Apenas administradores podem executar cron jobs", nil)
			return
		}

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		switch cronType {
		case CronJobTypeDailySales:
			if services.DailySalesSyncService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de sincronização de vendas diárias não disponível", nil)
				return
			}
			services.DailySalesSyncService.TriggerManualSync()

		case CronJobTypeKeepaImages:
			if services.KeepaImageSyncService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de sincronização de imagens não disponível", nil)
				return
			}
			services.KeepaImageSyncService.TriggerManualSync()

		case CronJobTypeAll:
			if services.DailySalesSyncService != nil {
				services.DailySalesSyncService.TriggerManualSync()
			}
			if services.KeepaImageSyncService != nil {
				services.KeepaImageSyncService.TriggerManualSync()
			}

		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: daily-sales, keepa-images, all", nil)
			return
		}

		writeJSON(w, http.StatusAccepted, map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		})
	}
}

// GetCronStatus retorna o status de uma cron job ou de todas (type=all)
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetCronStatus")

		jobs := map[string]CronJob{}
		if services.DailySalesSyncService != nil {
			jobs[CronJobTypeDailySales] = services.DailySalesSyncService
		}
		if services.KeepaImageSyncService != nil {
			jobs[CronJobTypeKeepaImages] = services.KeepaImageSyncService
		}

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType != CronJobTypeAll {
			job, ok := jobs[cronType]
			if !ok {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: daily-sales, keepa-images, all", nil)
				return
			}
			writeJSON(w, http.StatusOK, job.GetStatus())
			return
		}

		status := make(map[string]any, len(jobs))
		for name, job := range jobs {
			status[name] = job.GetStatus()
		}

		writeJSON(w, http.StatusOK, status)
	}
}
