package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestFromContextWithoutLogger(t *testing.T) {
	logger := FromContext(context.Background())
	assert.Equal(t, zerolog.Disabled, logger.GetLevel())
}

func TestIntoContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).With().Str("request_id", "abc").Logger()

	ctx := IntoContext(context.Background(), logger)
	l := FromContext(ctx)
	l.Info().Msg("hello")

	assert.Contains(t, buf.String(), `"request_id":"abc"`)
	assert.Contains(t, buf.String(), `"message":"hello"`)
}

func TestNewParsesLevel(t *testing.T) {
	assert.Equal(t, zerolog.WarnLevel, New("app", "production", "warn").GetLevel())
	assert.Equal(t, zerolog.InfoLevel, New("app", "development", "bogus").GetLevel())
	assert.Equal(t, zerolog.InfoLevel, New("app", "development", "").GetLevel())
}
