package storage

import (
	"context"
	"time"
)

// Operation identifica o verbo S3 assinado na URL.
type Operation string

const (
	OperationUpload   Operation = "put_object"
	OperationDownload Operation = "get_object"
)

// DefaultExpiration é a validade padrão das URLs pré-assinadas (3 minutos).
const DefaultExpiration = 180

// ActionName retorna o nome amigável usado nos logs.
func (o Operation) ActionName() string {
	if o == OperationDownload {
		return "download"
	}
	return "upload"
}

// PresignRequest descreve a URL a ser gerada. Expiration em segundos:
// 0 significa "não informado" e usa DefaultExpiration; negativo é rejeitado
// por GeneratePresignedURL.
type PresignRequest struct {
	BucketName string    `json:"bucket_name"`
	FileName   string    `json:"file_name"`
	Expiration int       `json:"expiration"`
	Operation  Operation `json:"-"`
}

// ExpiresIn aplica o padrão de 180 segundos quando Expiration é zero.
func (r PresignRequest) ExpiresIn() time.Duration {
	if r.Expiration == 0 {
		return DefaultExpiration * time.Second
	}
	return time.Duration(r.Expiration) * time.Second
}

// PresignResponse é devolvido ao frontend.
type PresignResponse struct {
	PresignedURL string `json:"presigned_url"`
}

// Service define as operações sobre o S3.
type Service interface {
	GeneratePresignedURL(ctx context.Context, req PresignRequest) (PresignResponse, error)
	ReadFile(ctx context.Context, bucket, key string) ([]byte, error)
	// Close libera o cliente criado para a requisição.
	Close()
}

// Factory cria um Service novo a cada requisição.
type Factory func() Service
