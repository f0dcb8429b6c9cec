// Package metrics descreve as métricas do template-service (requisições HTTP,
// estado do DynamoDB e refresh de clientes) e as envia por um Provider.
// O backend concreto (statsd do Datadog ou no-op) fica em pkg/observability.
package metrics

// Provider recebe os pontos já nomeados e com tags. Erros de envio são
// reportados ao Processor, que apenas os loga.
type Provider interface {
	Count(name string, value float64, tags []string) error
	Gauge(name string, value float64, tags []string) error
	Histogram(name string, value float64, tags []string) error
	// Close envia o que estiver em buffer e libera o transporte.
	Close() error
}

// MetricType escolhe qual método do Provider recebe o ponto.
type MetricType string

const (
	TypeCount     MetricType = "count"
	TypeGauge     MetricType = "gauge"
	TypeHistogram MetricType = "histogram"
)

// MetricDefinition liga o nome publicado ao tipo.
type MetricDefinition struct {
	Name string
	Type MetricType
}

var (
	// Tags: route, method, status.
	RequestCount   = MetricDefinition{Name: "http.requests", Type: TypeCount}
	RequestLatency = MetricDefinition{Name: "http.request.latency_ms", Type: TypeHistogram}

	// 1 quando o health check devolve OK, 0 caso contrário. Tag: status.
	HealthStatus = MetricDefinition{Name: "health.dynamodb", Type: TypeGauge}

	// Tags: client, result.
	ClientRefresh = MetricDefinition{Name: "clients.refresh", Type: TypeCount}
)
