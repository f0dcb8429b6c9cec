package transport

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/raywall/template-service/pkg/apperror"
	"github.com/raywall/template-service/pkg/config"
	"github.com/raywall/template-service/pkg/health"
	"github.com/raywall/template-service/pkg/metrics"
	"github.com/raywall/template-service/pkg/observability"
	"github.com/raywall/template-service/pkg/storage"
)

const (
	ServiceTitle   = "Template Service"
	ServiceVersion = "1.0.0"
)

// Dependencies reúne o que os handlers precisam. Metrics é opcional.
type Dependencies struct {
	Settings *config.Settings
	Health   health.Checker
	Storage  storage.Factory
	Metrics  *metrics.Processor
}

// NewRouter monta as rotas versionadas (/v{API_VERSION}) e os handlers de
// 404/405, tudo envolvido pelo middleware de observabilidade.
func NewRouter(deps Dependencies) http.Handler {
	if deps.Metrics == nil {
		deps.Metrics = metrics.NewProcessor(&observability.NoopProvider{})
	}

	r := mux.NewRouter()
	r.Use(routeTemplateMiddleware)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		WriteError(req.Context(), w, apperror.New(http.StatusNotFound, "Route not found."))
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		WriteError(req.Context(), w, apperror.New(http.StatusMethodNotAllowed, "Method not allowed."))
	})

	r.HandleFunc("/", serviceInfoHandler(deps.Settings)).Methods(http.MethodGet)

	api := r.PathPrefix(deps.Settings.RoutePrefix()).Subrouter()
	api.HandleFunc("/healthz", healthHandler(deps.Health, deps.Metrics)).Methods(http.MethodGet)
	api.HandleFunc("/s3/presigned-url", presignHandler(deps.Settings, deps.Storage)).Methods(http.MethodPost)

	return ObservabilityMiddleware(deps.Metrics)(r)
}
