package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rs/zerolog/log"

	"github.com/raywall/template-service/pkg/app"
	"github.com/raywall/template-service/pkg/config"
	"github.com/raywall/template-service/pkg/logger"
	"github.com/raywall/template-service/pkg/transport"
)

var (
	// Variáveis injetáveis para mocking
	loadSettings  = config.Load
	serverStarter = func(ctx context.Context, srv *transport.Server) error { return srv.Run(ctx) }
	lambdaStarter = lambda.Start
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatal().Err(err).Msg("FATAL")
	}
}

// run contém a lógica principal testável
func run(ctx context.Context) error {
	settings, err := loadSettings(ctx)
	if err != nil {
		return fmt.Errorf("falha ao carregar configurações: %w", err)
	}
	logger.Configure(settings)

	application, err := app.New(settings)
	if err != nil {
		return err
	}
	if err := application.Start(ctx); err != nil {
		return err
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), settings.Server.ShutdownTimeout)
		defer cancel()
		if err := application.Stop(stopCtx); err != nil {
			log.Error().Err(err).Msg("erro no shutdown")
		}
	}()

	switch settings.Server.Runtime {
	case config.RuntimeLocal:
		return serverStarter(ctx, transport.NewServer(settings, application.Handler))
	case config.RuntimeLambda:
		lambdaStarter(transport.NewLambdaHandler(application.Handler).Handle)
		return nil
	default:
		return fmt.Errorf("runtime desconhecido: %s", settings.Server.Runtime)
	}
}
