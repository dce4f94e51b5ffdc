package database

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"

	"github.com/octobees/stays/api/internal/config"
)

func TestConnect_Validation(t *testing.T) {
	logger := zerolog.Nop()

	if _, err := Connect(context.Background(), config.DatabaseConfig{}, logger); err == nil {
		t.Fatalf("expected error for empty url")
	}

	if _, err := Connect(context.Background(), config.DatabaseConfig{URL: "invalid-dsn"}, logger); err == nil {
		t.Fatalf("expected error for invalid dsn")
	}
}

func TestTraceLogLevel(t *testing.T) {
	cases := map[zerolog.Level]tracelog.LogLevel{
		zerolog.TraceLevel: tracelog.LogLevelTrace,
		zerolog.DebugLevel: tracelog.LogLevelDebug,
		zerolog.InfoLevel:  tracelog.LogLevelInfo,
		zerolog.WarnLevel:  tracelog.LogLevelWarn,
		zerolog.ErrorLevel: tracelog.LogLevelError,
		zerolog.Disabled:   tracelog.LogLevelNone,
	}
	for in, want := range cases {
		if got := traceLogLevel(in); got != want {
			t.Fatalf("traceLogLevel(%v) = %v, want %v", in, got, want)
		}
	}
}
