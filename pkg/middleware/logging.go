package middleware

import (
	"net/http"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Adrian140/Stockmind/pkg/apiErrors"
	"github.com/Adrian140/Stockmind/pkg/log"
)

const slowRequestThreshold = 2 * time.Second

// quietPaths são registradas apenas em debug
var quietPaths = map[string]struct{}{
	"/healthcheck": {},
	"/metrics":     {},
}

// LoggingMiddleware propaga o X-Request-ID e registra status e duração de cada requisição
func LoggingMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, requestID := log.WithRequestID(r.Context(), r.Header.Get(log.RequestIDHeader))
			r = r.WithContext(ctx)
			w.Header().Set(log.RequestIDHeader, requestID)

			rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			startTime := time.Now()

			next.ServeHTTP(rw, r)

			elapsed := time.Since(startTime)
			logger := log.ForContext(ctx).WithFields(logrus.Fields{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status_code": rw.status,
				"duration_ms": elapsed.Milliseconds(),
				"bytes":       rw.bytes,
			})

			switch {
			case rw.status >= http.StatusInternalServerError:
				logger.Error("Requisição finalizada com erro")
			case rw.status >= http.StatusBadRequest:
				logger.Warn("Requisição finalizada com aviso")
			default:
				if _, quiet := quietPaths[r.URL.Path]; quiet {
					logger.Debug("Requisição finalizada")
				} else {
					logger.Info("Requisição finalizada")
				}
			}

			if elapsed > slowRequestThreshold {
				logger.Warn("Requisição lenta")
			}
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	n, err := s.ResponseWriter.Write(b)
	s.bytes += n
	return n, err
}

// LogPanicMiddleware recupera panics dos handlers e responde SRV_001
func LogPanicMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					stack := make([]byte, 4096)
					stack = stack[:runtime.Stack(stack, false)]

					log.ForContext(r.Context()).WithFields(logrus.Fields{
						"panic":       err,
						"method":      r.Method,
						"path":        r.URL.Path,
						"stack_trace": string(stack),
					}).Error("Erro não tratado na aplicação")

					apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno no servidor", nil)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
