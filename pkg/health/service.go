package health

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/rs/zerolog/log"

	"github.com/raywall/template-service/pkg/apperror"
)

const (
	StatusOK        = "OK"
	StatusUnhealthy = "unhealthy"

	// FailedMessage é o detalhe devolvido ao cliente quando o DynamoDB falha.
	FailedMessage = "DynamoDB health check failed"
)

// Status é o corpo da resposta do health check.
type Status struct {
	Status string `json:"status"`
}

// TableLister é a única operação do DynamoDB usada pelo health check.
type TableLister interface {
	ListTables(ctx context.Context, params *dynamodb.ListTablesInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ListTablesOutput, error)
}

// ClientProvider entrega o cliente ativo (o Holder do DynamoDB satisfaz via adaptador).
type ClientProvider func(ctx context.Context) (TableLister, error)

// Checker verifica a saúde das dependências.
type Checker interface {
	CheckHealth(ctx context.Context) (Status, error)
}

// Service implementa Checker consultando o DynamoDB.
type Service struct {
	client ClientProvider
}

var _ Checker = (*Service)(nil)

// NewService cria o serviço de health check.
func NewService(client ClientProvider) *Service {
	return &Service{client: client}
}

// CheckHealth lista no máximo uma tabela. A presença do campo TableNames
// na resposta (mesmo vazio) indica OK.
func (s *Service) CheckHealth(ctx context.Context) (Status, error) {
	client, err := s.client(ctx)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg(FailedMessage)
		return Status{}, apperror.Internal(FailedMessage, err)
	}

	out, err := client.ListTables(ctx, &dynamodb.ListTablesInput{Limit: aws.Int32(1)})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg(FailedMessage)
		return Status{}, apperror.Internal(FailedMessage, err)
	}

	if out == nil || out.TableNames == nil {
		log.Ctx(ctx).Warn().Msg("DynamoDB respondeu sem TableNames")
		return Status{Status: StatusUnhealthy}, nil
	}
	return Status{Status: StatusOK}, nil
}
