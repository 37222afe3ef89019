package logger_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"khata/internal/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNew_Levels(t *testing.T) {
	l := logger.New(&logger.Config{Level: "warn", Format: "json", Output: "stderr"})
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))

	l = logger.New(&logger.Config{Level: "bogus", Format: "console"})
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
}

func TestFromContext(t *testing.T) {
	fallback := zap.NewExample()
	assert.Same(t, fallback, logger.FromContext(context.Background(), fallback))
	assert.NotNil(t, logger.FromContext(context.Background(), nil))

	attached := zap.NewNop()
	ctx := logger.WithContext(context.Background(), attached)
	assert.Same(t, attached, logger.FromContext(ctx, fallback))
}

func TestGinMiddleware_LogsByStatus(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("request_id", "req-1"); c.Next() })
	r.Use(logger.GinMiddleware(zap.New(core)))
	r.GET("/ok", func(c *gin.Context) {
		assert.NotNil(t, logger.FromContext(c.Request.Context(), nil))
		c.Status(http.StatusOK)
	})
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	for _, path := range []string{"/ok", "/missing"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	}

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "req-1", entries[0].ContextMap()["request_id"])
}

func TestRecovery(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	r := gin.New()
	r.Use(logger.Recovery(zap.New(core)))
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
	assert.Equal(t, 1, logs.Len())
}
