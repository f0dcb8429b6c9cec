package transport

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/raywall/template-service/pkg/metrics"
)

const (
	HeaderCorrelationID = "x-correlation-id"
	HeaderLatency       = "x-latency-ms"
)

type contextKey string

const ContextKeyCorrID contextKey = "correlation_id"

// unmatchedRoute é a tag usada quando nenhuma rota do mux casou.
const unmatchedRoute = "unmatched"

// routeInfo é preenchido pelo mux (rota casada) e lido pelo middleware externo.
type routeInfo struct {
	template string
}

type routeInfoKey struct{}

type responseWriterWrapper struct {
	http.ResponseWriter
	statusCode  int
	startTime   time.Time
	wroteHeader bool
}

func (rw *responseWriterWrapper) WriteHeader(code int) {
	if rw.wroteHeader {
		return
	}
	rw.statusCode = code
	duration := time.Since(rw.startTime)
	rw.Header().Set(HeaderLatency, fmt.Sprintf("%d", duration.Milliseconds()))
	rw.ResponseWriter.WriteHeader(code)
	rw.wroteHeader = true
}

func (rw *responseWriterWrapper) Write(b []byte) (int, error) {
	if !rw.wroteHeader {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// CorrelationID retorna o id da requisição corrente, se houver.
func CorrelationID(ctx context.Context) string {
	id, _ := ctx.Value(ContextKeyCorrID).(string)
	return id
}

// ObservabilityMiddleware injeta correlation id e logger no contexto, mede a
// latência e publica as métricas de requisição.
func ObservabilityMiddleware(recorder *metrics.Processor) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			corrID := r.Header.Get(HeaderCorrelationID)
			if corrID == "" {
				corrID = uuid.NewString()
			}
			w.Header().Set(HeaderCorrelationID, corrID)

			logger := log.With().Str("correlation_id", corrID).Logger()
			ctx := logger.WithContext(r.Context())
			ctx = context.WithValue(ctx, ContextKeyCorrID, corrID)

			info := &routeInfo{template: unmatchedRoute}
			ctx = context.WithValue(ctx, routeInfoKey{}, info)

			wrapper := &responseWriterWrapper{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
				startTime:      start,
			}

			next.ServeHTTP(wrapper, r.WithContext(ctx))

			latency := time.Since(start)
			recorder.ObserveRequest(info.template, r.Method, wrapper.statusCode, latency)

			logger.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("route", info.template).
				Int("status", wrapper.statusCode).
				Int64("latency_ms", latency.Milliseconds()).
				Msg("request completed")
		})
	}
}

// routeTemplateMiddleware roda dentro do mux e registra o template da rota casada.
func routeTemplateMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if info, ok := r.Context().Value(routeInfoKey{}).(*routeInfo); ok {
			if route := mux.CurrentRoute(r); route != nil {
				if tpl, err := route.GetPathTemplate(); err == nil {
					info.template = tpl
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}
