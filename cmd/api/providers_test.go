package main

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xiebiao/todo/internal/infrastructure/config"
)

func sqliteConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Server: config.ServerConfig{Mode: gin.TestMode},
		Database: config.DatabaseConfig{
			Driver:       config.DriverSQLite,
			SQLitePath:   filepath.Join(t.TempDir(), "todo.db"),
			MaxOpenConns: 1,
			MaxIdleConns: 1,
			AutoMigrate:  true,
		},
		Metrics: config.MetricsConfig{Path: "/metrics"},
	}
}

func TestProvideServiceOptions(t *testing.T) {
	t.Run("缓存和消息队列均关闭", func(t *testing.T) {
		opts, cleanup, err := provideServiceOptions(sqliteConfig(t), zap.NewNop())
		require.NoError(t, err)
		defer cleanup()
		assert.Len(t, opts, 1)
	})

	t.Run("开启缓存", func(t *testing.T) {
		mr := miniredis.RunT(t)
		cfg := sqliteConfig(t)
		cfg.Cache = config.CacheConfig{Enabled: true, KeyPrefix: "todo:item:"}
		cfg.Redis.Host = mr.Host()
		port, err := strconv.Atoi(mr.Port())
		require.NoError(t, err)
		cfg.Redis.Port = port

		opts, cleanup, err := provideServiceOptions(cfg, zap.NewNop())
		require.NoError(t, err)
		defer cleanup()
		assert.Len(t, opts, 2)
	})

	t.Run("Redis不可达返回错误", func(t *testing.T) {
		cfg := sqliteConfig(t)
		cfg.Cache.Enabled = true
		cfg.Redis.Host = "127.0.0.1"
		cfg.Redis.Port = 1

		_, _, err := provideServiceOptions(cfg, zap.NewNop())
		assert.Error(t, err)
	})
}

func TestInitializeApp(t *testing.T) {
	engine, cleanup, err := InitializeApp(sqliteConfig(t), zap.NewNop())
	require.NoError(t, err)
	defer cleanup()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/todoitems", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())

	// metrics未开启时不注册
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
