package logx

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestInitAddsCallerAndStack(t *testing.T) {
	prevLogger := log.Logger
	prevMarshaler := zerolog.ErrorStackMarshaler
	t.Cleanup(func() {
		log.Logger = prevLogger
		zerolog.ErrorStackMarshaler = prevMarshaler
	})
	zerolog.ErrorStackMarshaler = func(err error) interface{} { return "stack-trace" }

	var buf bytes.Buffer
	initWith(&buf, &Config{})
	log.Logger.Error().Err(errors.New("boom")).Msg("failed")

	out := buf.String()
	for _, want := range []string{`"stack":"stack-trace"`, `"caller":`, `"error":"boom"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("log line %q does not contain %s", out, want)
		}
	}
}

func TestInitLevel(t *testing.T) {
	prevLogger := log.Logger
	t.Cleanup(func() { log.Logger = prevLogger })

	var buf bytes.Buffer
	initWith(&buf, &Config{})
	log.Logger.Debug().Msg("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug line written at info level: %q", buf.String())
	}

	initWith(&buf, &Config{Debug: true})
	log.Logger.Debug().Msg("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Fatalf("debug line missing at debug level: %q", buf.String())
	}
}

func TestFromContextFallsBackToGlobal(t *testing.T) {
	if got := FromContext(context.Background()); got != &log.Logger {
		t.Fatal("expected the global logger when ctx carries none")
	}

	var buf bytes.Buffer
	l := zerolog.New(&buf)
	ctx := WithFields(l.WithContext(context.Background()), map[string]any{"request_id": "r1"})
	FromContext(ctx).Info().Msg("hello")
	if !strings.Contains(buf.String(), `"request_id":"r1"`) {
		t.Fatalf("expected context fields, got %q", buf.String())
	}
}
