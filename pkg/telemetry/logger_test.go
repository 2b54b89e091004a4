package telemetry

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
)

func TestContextRoundTrip(t *testing.T) {
	logger := NewLogger(DefaultLoggingConfig())
	ctx := logger.WithContext(context.Background())

	if got := FromContext(ctx); got != logger {
		t.Error("FromContext should return the logger stored in the context")
	}
}

func TestFromContext_FallsBackToDefault(t *testing.T) {
	if FromContext(context.Background()) == nil {
		t.Error("FromContext without a stored logger should build a default")
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"garbage", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		if got := parseLogLevel(tt.in); got != tt.want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDerivedLoggersAreIndependent(t *testing.T) {
	base := NewLogger(DefaultLoggingConfig())
	child := base.NewComponentLogger("parser").WithRunID("run-1")
	if child == base {
		t.Error("Derived loggers must be new instances")
	}
	// The base logger keeps working after deriving children.
	base.Debug("still alive")
}
