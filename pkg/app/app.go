// Package app conecta Settings, clientes AWS, serviços e transporte, e
// controla o ciclo de vida (startup/shutdown) do processo.
package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/raywall/template-service/pkg/clients"
	"github.com/raywall/template-service/pkg/config"
	"github.com/raywall/template-service/pkg/health"
	"github.com/raywall/template-service/pkg/metrics"
	"github.com/raywall/template-service/pkg/observability"
	"github.com/raywall/template-service/pkg/storage"
	"github.com/raywall/template-service/pkg/transport"
)

// App é o grafo de dependências de um processo.
type App struct {
	Settings *config.Settings
	DynamoDB *clients.Holder[clients.DynamoDBAPI]
	Metrics  *metrics.Processor
	Handler  http.Handler

	newS3     func() *clients.Holder[clients.S3]
	newSQS    func(ctx context.Context) (transport.SQSClient, error)
	refresher *transport.ClientRefresher
	cancel    context.CancelFunc
	done      chan struct{}
	logger    zerolog.Logger
}

// Option customiza a montagem (usado em testes).
type Option func(*App)

// WithDynamoDB substitui o holder do DynamoDB.
func WithDynamoDB(h *clients.Holder[clients.DynamoDBAPI]) Option {
	return func(a *App) { a.DynamoDB = h }
}

// WithS3 substitui a fábrica de holders S3.
func WithS3(newHolder func() *clients.Holder[clients.S3]) Option {
	return func(a *App) { a.newS3 = newHolder }
}

// WithMetrics substitui o provider de métricas.
func WithMetrics(p metrics.Provider) Option {
	return func(a *App) { a.Metrics = metrics.NewProcessor(p) }
}

// WithSQS substitui a criação do cliente da fila de refresh.
func WithSQS(newClient func(ctx context.Context) (transport.SQSClient, error)) Option {
	return func(a *App) { a.newSQS = newClient }
}

// New monta o App. Nenhum cliente é criado aqui; isso acontece em Start.
func New(settings *config.Settings, opts ...Option) (*App, error) {
	a := &App{
		Settings: settings,
		logger:   log.With().Str("component", "app").Logger(),
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.DynamoDB == nil {
		a.DynamoDB = clients.NewDynamoDB(settings)
	}
	if a.newS3 == nil {
		a.newS3 = func() *clients.Holder[clients.S3] { return clients.NewS3(settings) }
	}
	if a.newSQS == nil {
		a.newSQS = func(ctx context.Context) (transport.SQSClient, error) {
			cfg, err := settings.AWS.LoadAWSConfig(ctx)
			if err != nil {
				return nil, err
			}
			return sqs.NewFromConfig(cfg), nil
		}
	}
	if a.Metrics == nil {
		provider, err := observability.SetupMetrics(settings)
		if err != nil {
			return nil, err
		}
		a.Metrics = metrics.NewProcessor(provider)
	}

	a.Handler = transport.NewRouter(transport.Dependencies{
		Settings: settings,
		Health:   health.NewService(a.tableLister),
		Storage:  storage.NewFactory(a.newS3),
		Metrics:  a.Metrics,
	})
	return a, nil
}

func (a *App) tableLister(ctx context.Context) (health.TableLister, error) {
	c, err := a.DynamoDB.Client(ctx)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Start inicializa o DynamoDB antes de aceitar tráfego e, se configurado,
// inicia o refresh de clientes via SQS.
func (a *App) Start(ctx context.Context) error {
	a.logger.Info().Msg("Starting application...")

	if err := a.DynamoDB.Initialize(ctx); err != nil {
		return fmt.Errorf("startup: %w", err)
	}

	queue := a.Settings.Clients.RefreshQueueURL
	if queue == "" {
		return nil
	}

	client, err := a.newSQS(ctx)
	if err != nil {
		return fmt.Errorf("startup: cliente sqs: %w", err)
	}

	a.refresher = transport.NewClientRefresher(client, queue, a.Metrics, a.DynamoDB)
	loopCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	a.cancel = cancel
	a.done = make(chan struct{})
	go func() {
		defer close(a.done)
		a.refresher.Start(loopCtx)
	}()
	return nil
}

// Stop encerra o refresher, fecha os clientes e faz flush das métricas.
func (a *App) Stop(ctx context.Context) error {
	a.logger.Info().Msg("Shutting down application...")

	if a.cancel != nil {
		a.cancel()
		select {
		case <-a.done:
		case <-ctx.Done():
			a.logger.Warn().Msg("refresher não encerrou dentro do prazo")
		}
	}

	a.DynamoDB.Close()

	if err := a.Metrics.Close(); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
