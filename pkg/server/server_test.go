package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/avforge/configurator/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	cfg := config.Load()
	cfg.Store.DataDir = t.TempDir()
	cfg.Telemetry.Enabled = false
	return cfg
}

func TestNewWithConfig_Builtin(t *testing.T) {
	srv, err := NewWithConfig(context.Background(), testConfig(t))
	require.NoError(t, err)
	t.Cleanup(func() { srv.Store.Close() })

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNewWithConfig_CatalogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`components: [`), 0644))

	cfg := testConfig(t)
	cfg.Catalog.Path = path
	_, err := NewWithConfig(context.Background(), cfg)
	assert.Error(t, err)

	cfg.Catalog.Path = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = NewWithConfig(context.Background(), cfg)
	assert.Error(t, err)
}
