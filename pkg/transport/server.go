package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/raywall/template-service/pkg/config"
)

// Server é o listener HTTP usado no runtime local.
type Server struct {
	httpServer      *http.Server
	shutdownTimeout time.Duration
	logger          zerolog.Logger
}

// NewServer cria o servidor sobre o handler já montado.
func NewServer(settings *config.Settings, handler http.Handler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              settings.Server.Addr(),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		shutdownTimeout: settings.Server.ShutdownTimeout,
		logger:          log.With().Str("component", "http_server").Logger(),
	}
}

// Run escuta em Addr até ctx ser cancelado e então faz shutdown gracioso.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("falha ao abrir %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve usa um listener já aberto (útil em testes com porta 0).
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Msgf("Servidor HTTP ouvindo em %s", ln.Addr())
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info().Msg("Encerrando servidor HTTP")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown do servidor: %w", err)
	}
	return nil
}
