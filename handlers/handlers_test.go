package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/padraicbc/scorecard/charts"
	bundb "github.com/padraicbc/scorecard/db"
	"github.com/padraicbc/scorecard/metrics"
	"github.com/padraicbc/scorecard/scorecard"
)

func newTestServer(t *testing.T) (*echo.Echo, *scorecard.Store) {
	t.Helper()
	bdb, created, err := bundb.Open(filepath.Join(t.TempDir(), "scorecard.db"), false)
	require.NoError(t, err)
	t.Cleanup(func() { bdb.Close() })

	seeded, err := bundb.Bootstrap(context.Background(), bdb, created)
	require.NoError(t, err)

	h := New(bdb, metrics.New(), zap.NewNop(), charts.Options{Width: 400}, seeded)
	e := echo.New()
	h.Register(e)
	return e, scorecard.NewStore(bdb)
}

func do(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func commitBody(t *testing.T, snap scorecard.Snapshot, batch string) string {
	t.Helper()
	raw, err := json.Marshal(snap)
	require.NoError(t, err)
	return `{"snapshot": ` + string(raw) + `, ` + batch + `}`
}

func TestPage_ShowsSeedNoticeOnce(t *testing.T) {
	e, _ := newTestServer(t)

	rec := do(e, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Liga Kampung Score Card")
	assert.Contains(t, rec.Body.String(), "Azrai")
	assert.Contains(t, rec.Body.String(), seededNotice)

	rec = do(e, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), seededNotice)
}

func TestContestants(t *testing.T) {
	e, _ := newTestServer(t)

	rec := do(e, http.MethodGet, "/api/contestants", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var snap scorecard.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	require.Len(t, snap, 14)
	assert.Equal(t, "Oliver", snap[13].Name())
}

func TestCommit_AppliesBatch(t *testing.T) {
	e, store := newTestServer(t)
	snap, err := store.Load(context.Background())
	require.NoError(t, err)

	body := commitBody(t, snap, `
		"edited_rows": {"0": {"total_tops": "4"}},
		"added_rows": [{"contestant_name": "New"}],
		"deleted_rows": [13]`)
	rec := do(e, http.MethodPost, "/api/commit", body)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	after, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, after, 14)
	assert.Equal(t, int64(4), after[0].Tops())
	assert.Equal(t, "New", after[13].Name())
	assert.Equal(t, snap[13].ID+1, after[13].ID)
}

func TestCommit_StaleReference(t *testing.T) {
	e, store := newTestServer(t)
	snap, err := store.Load(context.Background())
	require.NoError(t, err)

	require.Equal(t, http.StatusNoContent, do(e, http.MethodPost, "/api/commit", commitBody(t, snap, `"deleted_rows": [2]`)).Code)

	rec := do(e, http.MethodPost, "/api/commit", commitBody(t, snap, `"edited_rows": {"2": {"description": "late"}}`))
	require.Equal(t, http.StatusConflict, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "stale_reference", resp.Code)
}

func TestCommit_BadRequest(t *testing.T) {
	e, _ := newTestServer(t)

	rec := do(e, http.MethodPost, "/api/commit", `{"edited_rows": {"0": {"total_tops": "many"}}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCharts(t *testing.T) {
	e, _ := newTestServer(t)

	for _, path := range []string{"/charts/tops.png", "/charts/penalty.png"} {
		rec := do(e, http.MethodGet, path, "")
		require.Equal(t, http.StatusOK, rec.Code, path)
		assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
		assert.True(t, strings.HasPrefix(rec.Body.String(), "\x89PNG"))
	}
}

func TestExport(t *testing.T) {
	e, _ := newTestServer(t)

	rec := do(e, http.MethodGet, "/export.xlsx", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get(echo.HeaderContentType))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "PK"))
}

func TestHealthAndMetrics(t *testing.T) {
	e, _ := newTestServer(t)

	assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/healthz", "").Code)

	rec := do(e, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "scorecard_commit_duration_seconds")
}
