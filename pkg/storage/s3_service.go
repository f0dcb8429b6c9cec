package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"

	"github.com/raywall/template-service/pkg/apperror"
	"github.com/raywall/template-service/pkg/clients"
)

const (
	missingField   = "Bucket name and file name"
	missingMessage = "Bucket name and file name must be provided"
)

// S3Service implementa Service sobre um holder de cliente S3.
type S3Service struct {
	holder *clients.Holder[clients.S3]
}

var _ Service = (*S3Service)(nil)

// NewS3Service cria o serviço. O holder não é compartilhado entre requisições.
func NewS3Service(holder *clients.Holder[clients.S3]) *S3Service {
	return &S3Service{holder: holder}
}

// NewFactory retorna uma Factory que monta um holder novo por chamada.
func NewFactory(newHolder func() *clients.Holder[clients.S3]) Factory {
	return func() Service {
		return NewS3Service(newHolder())
	}
}

// GeneratePresignedURL gera uma URL SigV4 para upload (padrão) ou download.
func (s *S3Service) GeneratePresignedURL(ctx context.Context, req PresignRequest) (PresignResponse, error) {
	if req.BucketName == "" || req.FileName == "" {
		return PresignResponse{}, apperror.Validation(missingField, missingMessage)
	}
	if req.Expiration < 0 {
		return PresignResponse{}, apperror.Validation("expiration", "must be a positive number of seconds")
	}

	logger := zerolog.Ctx(ctx).With().
		Str("bucket", req.BucketName).
		Str("file", req.FileName).
		Logger()

	failure := fmt.Sprintf("Failed to generate pre-signed URL for bucket '%s', file '%s'", req.BucketName, req.FileName)

	c, err := s.holder.Client(ctx)
	if err != nil {
		logger.Error().Err(err).Msg(failure)
		return PresignResponse{}, apperror.Internal(failure, err)
	}

	expires := s3.WithPresignExpires(req.ExpiresIn())
	var url string
	switch req.Operation {
	case OperationDownload:
		out, perr := c.Presigner.PresignGetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(req.BucketName),
			Key:    aws.String(req.FileName),
		}, expires)
		if perr == nil {
			url = out.URL
		}
		err = perr
	default:
		out, perr := c.Presigner.PresignPutObject(ctx, &s3.PutObjectInput{
			Bucket: aws.String(req.BucketName),
			Key:    aws.String(req.FileName),
		}, expires)
		if perr == nil {
			url = out.URL
		}
		err = perr
	}
	if err != nil {
		logger.Error().Err(err).Msg(failure)
		return PresignResponse{}, apperror.Internal(failure, err)
	}

	logger.Info().Msgf("Generated pre-signed URL for %s of file %s in bucket %s",
		req.Operation.ActionName(), req.FileName, req.BucketName)
	return PresignResponse{PresignedURL: url}, nil
}

// ReadFile lê o objeto inteiro. Qualquer falha do SDK, inclusive NoSuchKey,
// vira internal error.
func (s *S3Service) ReadFile(ctx context.Context, bucket, key string) ([]byte, error) {
	if bucket == "" || key == "" {
		return nil, apperror.Validation(missingField, missingMessage)
	}

	logger := zerolog.Ctx(ctx)
	failure := fmt.Sprintf("Failed to read file from bucket '%s', file '%s'", bucket, key)

	c, err := s.holder.Client(ctx)
	if err != nil {
		logger.Error().Err(err).Msg(failure)
		return nil, apperror.Internal(failure, err)
	}

	out, err := c.Objects.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		logger.Error().Err(err).Msg(failure)
		return nil, apperror.Internal(failure, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		logger.Error().Err(err).Msg(failure)
		return nil, apperror.Internal(failure, err)
	}

	logger.Info().Msgf("Successfully read file %s from bucket %s", key, bucket)
	return data, nil
}

// Close libera o cliente do holder.
func (s *S3Service) Close() {
	s.holder.Close()
}
