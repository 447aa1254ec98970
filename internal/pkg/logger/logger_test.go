package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestFromContextFallsBackToGlobal(t *testing.T) {
	if got := FromContext(context.Background()); got != &log.Logger {
		t.Fatalf("expected global logger")
	}
}

func TestWithContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	l := zerolog.New(&buf).With().Str("request_id", "abc").Logger()

	ctx := WithContext(context.Background(), &l)
	FromContext(ctx).Info().Msg("hello")

	if !bytes.Contains(buf.Bytes(), []byte(`"request_id":"abc"`)) {
		t.Fatalf("expected request_id in output, got %s", buf.String())
	}
}
