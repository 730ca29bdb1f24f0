package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewLevels(t *testing.T) {
	t.Parallel()
	buf := &bytes.Buffer{}
	logger := New(buf, "debug")
	if logger.GetLevel() != zerolog.DebugLevel {
		t.Fatalf("expected debug level, got %s", logger.GetLevel())
	}
	logger.Debug().Str("op", "schedule").Msg("fetched")
	if !strings.Contains(buf.String(), "fetched") || !strings.Contains(buf.String(), "schedule") {
		t.Fatalf("expected debug line, got %q", buf.String())
	}

	if got := New(buf, "nonsense").GetLevel(); got != zerolog.WarnLevel {
		t.Fatalf("expected warn fallback, got %s", got)
	}
	if got := New(buf, "").GetLevel(); got != zerolog.WarnLevel {
		t.Fatalf("expected warn for empty level, got %s", got)
	}
}
