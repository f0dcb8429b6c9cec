package clients

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/raywall/template-service/pkg/apperror"
)

// Factory constrói um novo cliente para o recurso externo.
type Factory[C any] func(ctx context.Context) (C, error)

// Holder controla o ciclo de vida de um único cliente de SDK:
// não inicializado -> inicializado -> fechado (pode ser reinicializado).
// O check-and-set é protegido por mutex, então no máximo um cliente é
// construído mesmo com chamadas concorrentes.
type Holder[C any] struct {
	name    string
	factory Factory[C]
	logger  zerolog.Logger

	mu     sync.Mutex
	client C
	ready  bool
}

// NewHolder cria um holder ainda não inicializado.
func NewHolder[C any](name string, factory Factory[C]) *Holder[C] {
	return &Holder[C]{
		name:    name,
		factory: factory,
		logger:  log.With().Str("component", "clients").Str("client", name).Logger(),
	}
}

// Name retorna o nome do recurso (ex: DynamoDB).
func (h *Holder[C]) Name() string {
	return h.name
}

// Initialize constrói o cliente se ainda não existir. Chamadas repetidas são no-op.
func (h *Holder[C]) Initialize(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.initializeLocked(ctx)
}

func (h *Holder[C]) initializeLocked(ctx context.Context) error {
	if h.ready {
		return nil
	}

	client, err := h.factory(ctx)
	if err != nil {
		message := fmt.Sprintf("Failed to create %s client", h.name)
		h.logger.Error().Err(err).Msg(message)
		return apperror.Internal(message, err)
	}

	h.client = client
	h.ready = true
	h.logger.Info().Msgf("%s client initialized", h.name)
	return nil
}

// Client retorna o cliente ativo, inicializando sob demanda. Nunca retorna
// um handle vazio: ou o cliente é válido ou o erro é não-nulo.
func (h *Holder[C]) Client(ctx context.Context) (C, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.initializeLocked(ctx); err != nil {
		var zero C
		return zero, err
	}
	return h.client, nil
}

// Close descarta a referência ao cliente. Idempotente.
func (h *Holder[C]) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.ready {
		return
	}
	var zero C
	h.client = zero
	h.ready = false
	h.logger.Info().Msgf("%s client connection closed", h.name)
}

// Reset fecha e reinicializa o cliente (ex: após rotação de credenciais).
func (h *Holder[C]) Reset(ctx context.Context) error {
	h.Close()
	return h.Initialize(ctx)
}

// Initialized indica se existe um cliente ativo.
func (h *Holder[C]) Initialized() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.ready
}
