package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/fbraem/kwai/internal/domains/club/clubtest"
	"github.com/fbraem/kwai/internal/domains/teams/adapters/http/handlers"
	"github.com/fbraem/kwai/internal/domains/teams/adapters/persistence/sqlstore"
	"github.com/fbraem/kwai/internal/domains/teams/application"
	"github.com/fbraem/kwai/internal/platform/database"
	"github.com/fbraem/kwai/internal/platform/database/databasetest"
	"github.com/fbraem/kwai/internal/shared/jsonapi"
	"github.com/fbraem/kwai/internal/shared/kernel"
)

func newRouter(t *testing.T) (*gin.Engine, *database.Database) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := databasetest.NewSQLite(t)
	service := application.NewService(sqlstore.NewTeamRepository(db), sqlstore.NewMemberRepository(db), database.NewUnitOfWork(db))
	router := gin.New()
	requireLogin := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Next()
	}
	handlers.NewTeamsHandler(service).Register(router.Group("/api/v1"), requireLogin)
	return router, db
}

func do(router *gin.Engine, method, path, body string, loggedIn bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", jsonapi.MediaType)
	if loggedIn {
		req.Header.Set("Authorization", "Bearer test")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

type document struct {
	Meta map[string]any `json:"meta"`
	Data json.RawMessage `json:"data"`
}

func TestTeamsLifecycle(t *testing.T) {
	router, db := newRouter(t)

	rec := do(router, http.MethodPost, "/api/v1/teams", `{"data":{"type":"teams","attributes":{"name":"U11","active":true,"remark":""}}}`, false)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(router, http.MethodPost, "/api/v1/teams", `{"data":{"type":"teams","attributes":{"name":"U11","active":true,"remark":""}}}`, true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = do(router, http.MethodPost, "/api/v1/teams", `{"data":{"type":"teams","attributes":{"name":"U11"}}}`, true)
	require.Equal(t, http.StatusConflict, rec.Code)

	member := clubtest.CreateMember(t, db, "123", kernel.Name{FirstName: "Jigoro", LastName: "Kano"}, time.Date(2014, 1, 1, 0, 0, 0, 0, time.UTC))
	body := `{"data":{"type":"team_members","id":"` + member.UUID.String() + `","attributes":{}}}`
	rec = do(router, http.MethodPost, "/api/v1/teams/"+created.Data.ID+"/members", body, true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	rec = do(router, http.MethodPost, "/api/v1/teams/"+created.Data.ID+"/members", body, true)
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = do(router, http.MethodGet, "/api/v1/teams", "", false)
	require.Equal(t, http.StatusOK, rec.Code)
	var list document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.EqualValues(t, 1, list.Meta["count"])

	rec = do(router, http.MethodGet, "/api/v1/teams/members?filter[team]="+created.Data.ID+"&filter[in_team]=false", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.EqualValues(t, 0, list.Meta["count"])

	rec = do(router, http.MethodGet, "/api/v1/teams/"+created.Data.ID+"/members", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.EqualValues(t, 1, list.Meta["count"])

	rec = do(router, http.MethodPatch, "/api/v1/teams/"+created.Data.ID, `{"data":{"type":"teams","attributes":{"name":"U13","active":false}}}`, true)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(router, http.MethodDelete, "/api/v1/teams/"+created.Data.ID, "", true)
	require.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(router, http.MethodGet, "/api/v1/teams/"+created.Data.ID, "", false)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetTeamInvalidID(t *testing.T) {
	router, _ := newRouter(t)
	rec := do(router, http.MethodGet, "/api/v1/teams/abc", "", false)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
