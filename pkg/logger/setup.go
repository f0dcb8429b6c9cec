package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/raywall/template-service/pkg/config"
)

// Name identifica o logger da aplicação em todas as linhas.
const Name = "app"

// Configure inicializa o logger global a partir das Settings.
// DEBUG habilita o nível debug; fora disso apenas warn ou acima é emitido.
func Configure(settings *config.Settings) zerolog.Logger {
	return ConfigureTo(os.Stdout, settings)
}

// ConfigureTo funciona como Configure, mas escreve em out (útil em testes).
func ConfigureTo(out io.Writer, settings *config.Settings) zerolog.Logger {
	level := zerolog.WarnLevel
	if settings.Debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	// JSON para produção, Console "bonito" para local se solicitado
	output := out
	if !settings.Logging.Enabled {
		output = io.Discard
	} else if settings.Logging.Format == "console" {
		output = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	logger := zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Str("name", Name).
		Logger()

	log.Logger = logger
	return logger
}
