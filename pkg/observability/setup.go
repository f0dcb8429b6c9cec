package observability

import (
	"fmt"

	"github.com/DataDog/datadog-go/v5/statsd"

	"github.com/raywall/template-service/pkg/config"
	"github.com/raywall/template-service/pkg/metrics"
)

// NoopProvider é um placeholder para quando métricas estão desabilitadas.
type NoopProvider struct{}

func (n *NoopProvider) Count(name string, value float64, tags []string) error     { return nil }
func (n *NoopProvider) Gauge(name string, value float64, tags []string) error     { return nil }
func (n *NoopProvider) Histogram(name string, value float64, tags []string) error { return nil }
func (n *NoopProvider) Close() error                                              { return nil }

// StatsdClient é o subconjunto do cliente statsd usado pelo provider.
type StatsdClient interface {
	Count(name string, value int64, tags []string, rate float64) error
	Gauge(name string, value float64, tags []string, rate float64) error
	Histogram(name string, value float64, tags []string, rate float64) error
	Flush() error
	Close() error
}

var _ StatsdClient = (*statsd.Client)(nil)

// DatadogProvider adapta a lib oficial do Datadog para nossa interface.
type DatadogProvider struct {
	client StatsdClient
}

// NewDatadogProvider envolve um cliente statsd já criado.
func NewDatadogProvider(client StatsdClient) *DatadogProvider {
	return &DatadogProvider{client: client}
}

func (d *DatadogProvider) Count(name string, value float64, tags []string) error {
	return d.client.Count(name, int64(value), tags, 1)
}

func (d *DatadogProvider) Gauge(name string, value float64, tags []string) error {
	return d.client.Gauge(name, value, tags, 1)
}

func (d *DatadogProvider) Histogram(name string, value float64, tags []string) error {
	return d.client.Histogram(name, value, tags, 1)
}

// Close faz flush do buffer antes de fechar o socket.
func (d *DatadogProvider) Close() error {
	if err := d.client.Flush(); err != nil {
		_ = d.client.Close()
		return fmt.Errorf("falha no flush do statsd: %w", err)
	}
	return d.client.Close()
}

// SetupMetrics inicializa o provedor correto baseado nas Settings.
func SetupMetrics(settings *config.Settings) (metrics.Provider, error) {
	cfg := settings.Metrics
	if !cfg.Datadog.Enabled {
		return &NoopProvider{}, nil
	}

	opts := []statsd.Option{
		statsd.WithNamespace(cfg.Datadog.Namespace),
		statsd.WithTags([]string{
			metrics.Tag("env", settings.Environment),
			metrics.Tag("version", settings.APIVersion),
		}),
	}

	client, err := statsd.New(cfg.Datadog.Addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("falha ao conectar no datadog statsd: %w", err)
	}

	return NewDatadogProvider(client), nil
}
