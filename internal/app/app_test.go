package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"skill-tracker/internal/config"
	"skill-tracker/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryConfig() config.Config {
	return config.Config{
		App:     config.AppConfig{AppName: "skill-tracker", HTTPPort: "0"},
		Storage: config.StorageConfig{Backend: storage.BackendMemory, Key: storage.DefaultKey, WriteTTL: time.Second},
	}
}

func TestListenAddr(t *testing.T) {
	addr, err := ListenAddr("8080")
	require.NoError(t, err)
	assert.Equal(t, ":8080", addr)

	addr, err = ListenAddr(":9090")
	require.NoError(t, err)
	assert.Equal(t, ":9090", addr)

	_, err = ListenAddr(" ")
	require.Error(t, err)
}

func TestBootstrap_MemoryBackend(t *testing.T) {
	a, cleanup, err := Bootstrap(context.Background(), memoryConfig(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cleanup() })

	resp, err := a.Fiber.Test(httptest.NewRequest("GET", "/api/v1/skills", nil))
	require.NoError(t, err)
	assert.Equal(t, 503, resp.StatusCode)

	a.Container.Store.Load(context.Background())

	resp, err = a.Fiber.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)

	var env struct {
		Data struct {
			Loaded  bool   `json:"loaded"`
			Backend string `json:"backend"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &env))
	assert.True(t, env.Data.Loaded)
	assert.Equal(t, storage.BackendMemory, env.Data.Backend)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestNewContainer_UnknownBackend(t *testing.T) {
	cfg := memoryConfig()
	cfg.Storage.Backend = "localstorage"
	_, err := NewContainer(context.Background(), cfg, nil)
	require.Error(t, err)
}

func TestNewContainer_LogsConfiguredModel(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	cfg := memoryConfig()
	cfg.AI.Model = "gemini-test"
	c, err := NewContainer(context.Background(), cfg, log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	assert.Contains(t, buf.String(), "ai api key not set")
	assert.Contains(t, buf.String(), "model=gemini-test")
}
