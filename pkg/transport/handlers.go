package transport

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/raywall/template-service/pkg/apperror"
	"github.com/raywall/template-service/pkg/config"
	"github.com/raywall/template-service/pkg/health"
	"github.com/raywall/template-service/pkg/metrics"
	"github.com/raywall/template-service/pkg/storage"
)

const maxBodyBytes = 1 << 20

var validate = validator.New()

// ServiceInfo é devolvido em GET /.
type ServiceInfo struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Version     string `json:"version"`
	Environment string `json:"environment"`
	APIVersion  string `json:"api_version"`
}

func serviceInfoHandler(settings *config.Settings) http.HandlerFunc {
	info := ServiceInfo{
		Title: ServiceTitle,
		Description: fmt.Sprintf("This API is currently running in the %s environment. "+
			"Go backend with AWS SDK v2 (DynamoDB, S3).", settings.Environment),
		Version:     ServiceVersion,
		Environment: settings.Environment,
		APIVersion:  settings.APIVersion,
	}
	return func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, info)
	}
}

func healthHandler(checker health.Checker, recorder *metrics.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, err := checker.CheckHealth(r.Context())
		if err != nil {
			recorder.ObserveHealth("error")
			WriteError(r.Context(), w, err)
			return
		}
		recorder.ObserveHealth(status.Status)
		WriteJSON(w, http.StatusOK, status)
	}
}

// presignBody diferencia bucket_name ausente (usa o padrão) de vazio (400).
type presignBody struct {
	BucketName *string `json:"bucket_name"`
	FileName   string  `json:"file_name"`
	Expiration *int    `json:"expiration" validate:"omitempty,gt=0"`
}

func presignHandler(settings *config.Settings, factory storage.Factory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var body presignBody
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err := dec.Decode(&body); err != nil {
			WriteError(ctx, w, apperror.Validation("body", err.Error()))
			return
		}
		if err := validate.Struct(body); err != nil {
			WriteError(ctx, w, apperror.Validation("expiration", "must be a positive number of seconds"))
			return
		}

		req := storage.PresignRequest{
			BucketName: settings.S3.DefaultBucket,
			FileName:   body.FileName,
			Expiration: storage.DefaultExpiration,
			Operation:  storage.OperationUpload,
		}
		if body.BucketName != nil {
			req.BucketName = *body.BucketName
		}
		if body.Expiration != nil {
			req.Expiration = *body.Expiration
		}

		svc := factory()
		defer svc.Close()

		resp, err := svc.GeneratePresignedURL(ctx, req)
		if err != nil {
			WriteError(ctx, w, err)
			return
		}
		WriteJSON(w, http.StatusOK, resp)
	}
}
