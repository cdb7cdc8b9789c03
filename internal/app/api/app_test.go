package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fbraem/kwai/internal/platform/observability"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Database.SQLitePath = filepath.Join(dir, "kwai.db")
	cfg.Files.UploadDir = filepath.Join(dir, "upload")
	cfg.Security.JWTSecret = "access-secret"
	cfg.Security.JWTRefreshSecret = "refresh-secret"
	cfg.Temporal.Events = "inline"
	cfg.HTTP.GinMode = "test"

	instruments, shutdown, err := observability.Init(context.Background(), observability.Config{ServiceName: "kwai-test", LogLevel: "error"})
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = shutdown(ctx)
	})

	app, err := NewApp(context.Background(), cfg, instruments)
	require.NoError(t, err)
	t.Cleanup(app.Close)
	return app
}

func TestAppServesPublicResources(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/health", APIPrefix + "/news", APIPrefix + "/portal/applications"} {
		rec := httptest.NewRecorder()
		app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestAppProtectsMembers(t *testing.T) {
	app := newTestApp(t)

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, APIPrefix+"/club/members", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAppRejectsUnknownLogin(t *testing.T) {
	app := newTestApp(t)

	body := strings.NewReader("username=nobody%40kwai.test&password=secret")
	req := httptest.NewRequest(http.MethodPost, APIPrefix+"/auth/login", body)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var problem map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	require.Contains(t, problem, "status")
}
