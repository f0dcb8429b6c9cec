package metrics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// Processor traduz eventos do serviço em chamadas ao Provider.
// Falhas de envio nunca interrompem a requisição: são apenas logadas.
type Processor struct {
	provider Provider
}

// NewProcessor cria um processador sobre o provider informado.
func NewProcessor(provider Provider) *Processor {
	return &Processor{provider: provider}
}

// ObserveRequest registra contagem e latência de uma requisição HTTP.
func (p *Processor) ObserveRequest(route, method string, status int, latency time.Duration) {
	tags := []string{
		Tag("route", route),
		Tag("method", method),
		Tag("status", strconv.Itoa(status)),
	}
	p.emit(RequestCount, 1, tags)
	p.emit(RequestLatency, float64(latency.Microseconds())/1000, tags)
}

// ObserveHealth publica 1 para OK e 0 para qualquer outro estado.
func (p *Processor) ObserveHealth(status string) {
	value := 0.0
	if status == "OK" {
		value = 1
	}
	p.emit(HealthStatus, value, []string{Tag("status", status)})
}

// ObserveRefresh registra uma recriação de cliente solicitada via fila.
func (p *Processor) ObserveRefresh(client string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	p.emit(ClientRefresh, 1, []string{Tag("client", client), Tag("result", result)})
}

// Close repassa para o provider.
func (p *Processor) Close() error {
	return p.provider.Close()
}

func (p *Processor) emit(def MetricDefinition, value float64, tags []string) {
	if err := p.send(def, value, tags); err != nil {
		log.Warn().Err(err).Str("metric", def.Name).Msg("falha ao enviar métrica")
	}
}

func (p *Processor) send(def MetricDefinition, value float64, tags []string) error {
	switch def.Type {
	case TypeCount:
		return p.provider.Count(def.Name, value, tags)
	case TypeGauge:
		return p.provider.Gauge(def.Name, value, tags)
	case TypeHistogram:
		return p.provider.Histogram(def.Name, value, tags)
	default:
		return fmt.Errorf("tipo de métrica desconhecido: %s", def.Type)
	}
}

// Tag formata uma tag no padrão chave:valor do Datadog.
func Tag(key, value string) string {
	return fmt.Sprintf("%s:%s", key, value)
}
