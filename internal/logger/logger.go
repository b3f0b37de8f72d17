package logger

import (
	"os"
	"strings"
	"time"

	"github.com/maximiza-sistemas/backend-gestao-sub001/config"

	"github.com/rs/zerolog"
)

var log zerolog.Logger

func init() {
	log = zerolog.New(os.Stdout).With().Timestamp().Logger()
}

// Init configura o logger global a partir da configuração da aplicação.
// Em desenvolvimento usa saída legível no console; em produção, JSON puro.
func Init(cfg *config.Config) {
	level := parseLevel(cfg.App.LogLevel)
	zerolog.SetGlobalLevel(level)

	if cfg.App.Environment == "development" {
		output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		log = zerolog.New(output).With().Timestamp().Str("app", cfg.App.Name).Logger()
		return
	}

	log = zerolog.New(os.Stdout).With().Timestamp().Str("app", cfg.App.Name).Logger()
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func Debug() *zerolog.Event {
	return log.Debug()
}

func Info() *zerolog.Event {
	return log.Info()
}

func Warn() *zerolog.Event {
	return log.Warn()
}

func Error() *zerolog.Event {
	return log.Error()
}

func Fatal() *zerolog.Event {
	return log.Fatal()
}
