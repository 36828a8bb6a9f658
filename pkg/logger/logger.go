package logger

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog"
	slogmulti "github.com/samber/slog-multi"
	slogsentry "github.com/samber/slog-sentry/v2"
	slogzerolog "github.com/samber/slog-zerolog/v2"
)

// Logger is the structured logging facade used across the service.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	WithComponent(name string) Logger
}

type Opts struct {
	Env       string
	SentryURL string
}

type Impl struct {
	slog *slog.Logger
}

var _ Logger = (*Impl)(nil)

// New builds the logger. Development logs pretty console output via
// zerolog; production adds a Sentry sink for warn and above when a DSN
// is configured.
func New(opts Opts) *Impl {
	var zl zerolog.Logger
	if opts.Env == "production" {
		zl = zerolog.New(os.Stdout).With().Timestamp().Logger()
	} else {
		zl = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
			With().Timestamp().Logger().Level(zerolog.DebugLevel)
	}

	handlers := []slog.Handler{
		slogzerolog.Option{Level: slog.LevelDebug, Logger: &zl}.NewZerologHandler(),
	}

	if opts.Env == "production" && opts.SentryURL != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: opts.SentryURL}); err == nil {
			handlers = append(handlers,
				slogsentry.Option{Level: slog.LevelWarn}.NewSentryHandler())
		} else {
			zl.Warn().Err(err).Msg("sentry init failed, logging to stdout only")
		}
	}

	return &Impl{slog: slog.New(slogmulti.Fanout(handlers...))}
}

// Printf satisfies fx's printer, routing fx lifecycle output through
// the structured logger.
func (l *Impl) Printf(format string, args ...any) {
	l.slog.Info(fmt.Sprintf(format, args...))
}

func (l *Impl) Debug(msg string, args ...any) { l.slog.Debug(msg, args...) }
func (l *Impl) Info(msg string, args ...any)  { l.slog.Info(msg, args...) }
func (l *Impl) Warn(msg string, args ...any)  { l.slog.Warn(msg, args...) }
func (l *Impl) Error(msg string, args ...any) { l.slog.Error(msg, args...) }

func (l *Impl) WithComponent(name string) Logger {
	return &Impl{slog: l.slog.With("component", name)}
}
