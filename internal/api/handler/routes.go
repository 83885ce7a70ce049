package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Adrian140/Stockmind/internal/api/handler/router"
	"github.com/Adrian140/Stockmind/internal/usecases/aggregating"
	"github.com/Adrian140/Stockmind/internal/usecases/ingesting"
	"github.com/Adrian140/Stockmind/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: promhttp.Handler(),
		},
	}
}

func Sync(dailySync DailySyncer, imageSync ImageSyncer) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/sync/daily",
			Method:      http.MethodPost,
			Handler:     SyncDaily(dailySync),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/images/sync",
			Method:      http.MethodPost,
			Handler:     SyncImages(imageSync),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
	}
}

func Metrics(service aggregating.AggregatorService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/metrics/range",
			Method:      http.MethodGet,
			Handler:     GetMetricsRange(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Imports(service ingesting.Importer) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/imports",
			Method:      http.MethodPost,
			Handler:     ImportFile(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/:type/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
	}
}
