package transport

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/raywall/template-service/pkg/apperror"
)

// ErrorBody é o formato de todas as respostas de erro.
type ErrorBody struct {
	Detail string `json:"detail"`
}

// WriteJSON serializa v com o status informado.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("falha ao serializar resposta")
	}
}

// WriteError converte err em {"detail": ...}. A causa original só vai para o log.
func WriteError(ctx context.Context, w http.ResponseWriter, err error) {
	appErr := apperror.From(err)

	event := log.Ctx(ctx).Warn()
	if appErr.Code >= http.StatusInternalServerError {
		event = log.Ctx(ctx).Error()
	}
	event.Err(err).Int("status", appErr.Code).Msg(appErr.Detail)

	WriteJSON(w, appErr.Code, ErrorBody{Detail: appErr.Detail})
}
