package logger

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"forum_server/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInit_WritesFile(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.LogConfig{LogPath: dir, Level: "debug"}
	require.NoError(t, Init(cfg, "release"))
	assert.Equal(t, filepath.Join(dir, "app.log"), cfg.FileName)
	assert.Equal(t, 100, cfg.MaxSize)

	zap.L().Info("hello")
	_ = zap.L().Sync()
	data, err := os.ReadFile(cfg.FileName)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
}

func TestInit_BadLevel(t *testing.T) {
	assert.Error(t, Init(&config.LogConfig{LogPath: t.TempDir(), Level: "loud"}, "release"))
	assert.Error(t, Init(nil, "dev"))
}

func TestGinRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(GinLogger(), GinRecovery(true))
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestIsBrokenPipeError(t *testing.T) {
	assert.True(t, isBrokenPipeError(os.NewSyscallError("write", syscall.EPIPE)))
	assert.True(t, isBrokenPipeError(errors.New("read: connection reset by peer")))
	assert.False(t, isBrokenPipeError(errors.New("timeout")))
	assert.False(t, isBrokenPipeError(nil))
}
