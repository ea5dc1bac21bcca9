package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/schemadeck/core/logger"
)

type reqKey struct{}

func extractRequestID(ctx context.Context) (slog.Attr, bool) {
	id, ok := ctx.Value(reqKey{}).(string)
	if !ok {
		return slog.Attr{}, false
	}
	return logger.RequestID(id), true
}

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	return out
}

func TestNewProductionJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithProduction("schemadeck"),
		logger.WithOutput(&buf),
		logger.WithContextExtractors(extractRequestID),
	)

	ctx := context.WithValue(context.Background(), reqKey{}, "req-1")
	log.With(logger.Component("registration")).InfoContext(ctx, "form submitted",
		logger.Kind("schema"),
		logger.Error(nil),
	)

	rec := decode(t, &buf)
	assert.Equal(t, "form submitted", rec["msg"])
	assert.Equal(t, "schemadeck", rec["service"])
	assert.Equal(t, "registration", rec["component"])
	assert.Equal(t, "schema", rec["kind"])
	assert.Equal(t, "req-1", rec["request_id"])
	assert.NotContains(t, rec, "error")

	buf.Reset()
	log.Debug("hidden")
	assert.Zero(t, buf.Len())
}

func TestWithLevelAndAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithJSONFormatter(),
		logger.WithLevel(slog.LevelWarn),
		logger.WithOutput(&buf),
		logger.WithAttr(slog.String("env", "test")),
	)

	log.Info("dropped")
	assert.Zero(t, buf.Len())

	log.Warn("kept", logger.Error(errors.New("boom")))
	rec := decode(t, &buf)
	assert.Equal(t, "test", rec["env"])
	assert.Equal(t, "boom", rec["error"])
}

func TestDevelopmentText(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithDevelopment("schemadeck"), logger.WithOutput(&buf))
	log.Debug("rendering slide", logger.Field("email"))
	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), "field=email")
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.LevelDebug, logger.ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, logger.ParseLevel("WARN"))
	assert.Equal(t, slog.LevelInfo, logger.ParseLevel("verbose"))
}

func TestAttrHelpersSkipEmpty(t *testing.T) {
	t.Parallel()

	assert.True(t, logger.RequestID("").Equal(slog.Attr{}))
	assert.True(t, logger.ID("x", nil).Equal(slog.Attr{}))
	assert.Equal(t, "user_id", logger.UserID("abc").Key)
	assert.Equal(t, "status_code", logger.StatusCode(200).Key)
	assert.Contains(t, logger.Caller().Value.String(), "logger_test.go")
}
