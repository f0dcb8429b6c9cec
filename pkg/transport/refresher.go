package transport

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/raywall/template-service/pkg/metrics"
)

// SQSClient define a interface necessária para o refresher (permite Mocking)
type SQSClient interface {
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
}

var _ SQSClient = (*sqs.Client)(nil)

// Refreshable é um cliente que pode ser recriado em runtime (ex: clients.Holder).
type Refreshable interface {
	Name() string
	Reset(ctx context.Context) error
}

// ClientRefresher escuta uma fila SQS e recria os clientes a cada mensagem,
// usado após rotação de credenciais.
type ClientRefresher struct {
	client     SQSClient
	queueURL   string
	targets    []Refreshable
	recorder   *metrics.Processor
	retryDelay time.Duration
	logger     zerolog.Logger
}

// NewClientRefresher cria uma nova instância do refresher
func NewClientRefresher(client SQSClient, queueURL string, recorder *metrics.Processor, targets ...Refreshable) *ClientRefresher {
	return &ClientRefresher{
		client:     client,
		queueURL:   queueURL,
		targets:    targets,
		recorder:   recorder,
		retryDelay: 5 * time.Second,
		logger:     log.With().Str("component", "client_refresher").Logger(),
	}
}

// Start inicia o monitoramento (bloqueante)
func (s *ClientRefresher) Start(ctx context.Context) {
	if s.queueURL == "" {
		s.logger.Warn().Msg("URL da fila SQS não configurada. Refresh de clientes desativado.")
		return
	}

	s.logger.Info().Str("queue", s.queueURL).Msg("Monitorando fila SQS para refresh de clientes")

	for {
		if ctx.Err() != nil {
			s.logger.Info().Msg("Parando monitoramento SQS")
			return
		}

		out, err := s.client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
			QueueUrl:            aws.String(s.queueURL),
			MaxNumberOfMessages: 1,
			WaitTimeSeconds:     20, // Long polling
		})
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			s.logger.Error().Err(err).Msgf("Erro no SQS. Retentando em %s...", s.retryDelay)
			select {
			case <-ctx.Done():
				return
			case <-time.After(s.retryDelay):
			}
			continue
		}

		for _, msg := range out.Messages {
			s.logger.Info().Str("message_id", aws.ToString(msg.MessageId)).Msg("Pedido de refresh recebido via SQS")
			s.refresh(ctx)

			if _, err := s.client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
				QueueUrl:      aws.String(s.queueURL),
				ReceiptHandle: msg.ReceiptHandle,
			}); err != nil {
				s.logger.Warn().Err(err).Msg("Falha ao remover mensagem da fila")
			}
		}
	}
}

func (s *ClientRefresher) refresh(ctx context.Context) {
	for _, target := range s.targets {
		err := target.Reset(ctx)
		if s.recorder != nil {
			s.recorder.ObserveRefresh(target.Name(), err)
		}
		if err != nil {
			s.logger.Error().Err(err).Str("client", target.Name()).Msg("Falha ao recriar cliente")
			continue
		}
		s.logger.Info().Str("client", target.Name()).Msg("Cliente recriado")
	}
}
