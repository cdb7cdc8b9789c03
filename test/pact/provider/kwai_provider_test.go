//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/stretchr/testify/require"

	"github.com/fbraem/kwai/internal/app/api"
	"github.com/fbraem/kwai/internal/domains/portal/portaltest"
	"github.com/fbraem/kwai/internal/platform/database"
	"github.com/fbraem/kwai/internal/platform/observability"
	pacttest "github.com/fbraem/kwai/test/pact"
)

func TestKwaiProviderPact(t *testing.T) {
	gin.SetMode(gin.TestMode)

	provider := newContractProvider(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	stateHandlers := models.StateHandlers{
		pacttest.StateApplicationsExist: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			provider.reset(t)
			if setup {
				portaltest.CreateApplication(t, provider.db, pacttest.ApplicationName)
			}
			return nil, nil
		},
		pacttest.StateNoNewsItems: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			provider.reset(t)
			return nil, nil
		},
	}

	err := pactprovider.NewVerifier().VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: provider.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
	})
	require.NoError(t, err)
}

type contractProvider struct {
	db     *database.Database
	server *httptest.Server
}

func newContractProvider(t *testing.T) *contractProvider {
	t.Helper()
	dir := t.TempDir()
	cfg := api.DefaultConfig()
	cfg.Database.SQLitePath = filepath.Join(dir, "kwai.db")
	cfg.Files.UploadDir = filepath.Join(dir, "upload")
	cfg.Security.JWTSecret = "pact-access"
	cfg.Security.JWTRefreshSecret = "pact-refresh"
	cfg.Temporal.Events = "inline"

	ctx := context.Background()
	instruments, shutdown, err := observability.Init(ctx, observability.Config{ServiceName: "kwai-pact", LogLevel: "error"})
	require.NoError(t, err)
	t.Cleanup(func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = shutdown(shutdownCtx)
	})

	app, err := api.NewApp(ctx, cfg, instruments)
	require.NoError(t, err)
	t.Cleanup(app.Close)

	db, closeDB, err := api.OpenDatabase(ctx, cfg.Database, instruments.Logger)
	require.NoError(t, err)
	t.Cleanup(closeDB)

	server := httptest.NewServer(app.Router)
	t.Cleanup(server.Close)
	return &contractProvider{db: db, server: server}
}

func (p *contractProvider) reset(t testing.TB) {
	t.Helper()
	for _, table := range []string{"news_contents", "news_stories", "page_contents", "pages", "applications"} {
		require.NoError(t, p.db.Gorm().Exec("DELETE FROM "+table).Error)
	}
}
