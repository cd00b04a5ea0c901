package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waelttf/UniqueRequest/internal/adapters/storage/memory"
	"github.com/waelttf/UniqueRequest/internal/domain"
	"github.com/waelttf/UniqueRequest/internal/infrastructure/config"
	obs "github.com/waelttf/UniqueRequest/internal/infrastructure/observability"
	"github.com/waelttf/UniqueRequest/internal/usecase"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := config.Config{Addr: ":0", LogLevel: "error", CORSAllowOrigin: "*", MaxExchanges: 1000}
	logger := obs.NewLogger(cfg.LogLevel)
	store := memory.NewStore(cfg.MaxExchanges)
	svc := usecase.NewAnalyzerService(store)
	d := &Deps{Cfg: cfg, Logger: logger, Metrics: obs.NewMetrics(), Svc: svc, Monitor: NewMonitorHub()}
	return NewRouterWithDeps(d)
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func ingest(t *testing.T, h http.Handler, ex domain.Exchange) {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/api/exchanges", ex)
	require.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())
}

type resultsPage struct {
	Items []map[string]any `json:"items"`
	Total int              `json:"total"`
}

func decodePage(t *testing.T, rec *httptest.ResponseRecorder) resultsPage {
	t.Helper()
	var page resultsPage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	return page
}

func TestIngestRunResultsFlow(t *testing.T) {
	h := newTestRouter(t)
	ingest(t, h, domain.Exchange{Method: "GET", URL: "https://a.com/users/1"})
	ingest(t, h, domain.Exchange{Method: "GET", URL: "https://a.com/users/2"})
	ingest(t, h, domain.Exchange{Method: "POST", URL: "https://a.com/orders"})

	rec := doJSON(t, h, http.MethodPost, "/api/analysis/normal/run", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var stats map[string]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 2, stats["retained"])
	assert.Equal(t, 1, stats["duplicates"])

	page := decodePage(t, doJSON(t, h, http.MethodGet, "/api/analysis/normal/results", nil))
	require.Equal(t, 2, page.Total)
	assert.Equal(t, "/users/{id}", page.Items[0]["normalized"])
	assert.Equal(t, float64(1), page.Items[0]["id"])
}

func TestRunFiltersFromBody(t *testing.T) {
	h := newTestRouter(t)
	ingest(t, h, domain.Exchange{Method: "GET", URL: "https://a.com/users/1"})
	ingest(t, h, domain.Exchange{Method: "POST", URL: "https://a.com/orders"})

	rec := doJSON(t, h, http.MethodPost, "/api/analysis/normal/run", map[string]bool{"postOnly": true})
	require.Equal(t, http.StatusOK, rec.Code)
	page := decodePage(t, doJSON(t, h, http.MethodGet, "/api/analysis/normal/results", nil))
	require.Equal(t, 1, page.Total)
	assert.Equal(t, "POST", page.Items[0]["method"])
}

func TestGraphQLFlow(t *testing.T) {
	h := newTestRouter(t)
	raw := []byte("POST /graphql HTTP/1.1\r\nHost: a.com\r\n\r\n{\"query\":\"query{me}\",\"operationName\":\"Me\"}")
	ingest(t, h, domain.Exchange{Method: "POST", URL: "https://a.com/graphql", RawRequest: raw})
	ingest(t, h, domain.Exchange{Method: "POST", URL: "https://a.com/graphql", RawRequest: raw})
	ingest(t, h, domain.Exchange{Method: "POST", URL: "https://a.com/graphql",
		RawRequest: []byte("POST /graphql HTTP/1.1\r\nHost: a.com\r\n\r\nnot json")})

	rec := doJSON(t, h, http.MethodPost, "/api/analysis/graphql/run", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	page := decodePage(t, doJSON(t, h, http.MethodGet, "/api/analysis/graphql/results", nil))
	require.Equal(t, 1, page.Total)
	assert.Equal(t, "Me", page.Items[0]["operation"])
}

func TestResultsSearchQuery(t *testing.T) {
	h := newTestRouter(t)
	ingest(t, h, domain.Exchange{Method: "GET", URL: "https://a.com/users/1"})
	ingest(t, h, domain.Exchange{Method: "GET", URL: "https://a.com/orders"})
	doJSON(t, h, http.MethodPost, "/api/analysis/normal/run", nil)

	page := decodePage(t, doJSON(t, h, http.MethodGet, "/api/analysis/normal/results?q=USERS", nil))
	require.Equal(t, 1, page.Total)
	assert.Equal(t, "/users/{id}", page.Items[0]["normalized"])
}

func TestEntryEndpoints(t *testing.T) {
	h := newTestRouter(t)
	ingest(t, h, domain.Exchange{
		Method:     "GET",
		URL:        "https://a.com/users/1",
		RawRequest: []byte("GET /users/1 HTTP/1.1\r\nHost: a.com\r\n\r\n"),
		Service:    domain.TransportService{Host: "a.com", Port: 443, Scheme: "https"},
	})
	doJSON(t, h, http.MethodPost, "/api/analysis/normal/run", nil)

	rec := doJSON(t, h, http.MethodGet, "/api/analysis/normal/results/1/exchange", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var ex domain.Exchange
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ex))
	assert.Equal(t, "/users/1", ex.Path)

	rec = doJSON(t, h, http.MethodGet, "/api/analysis/normal/results/1/replay", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var target domain.ReplayTarget
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &target))
	assert.Equal(t, "a.com", target.Host)
	assert.Equal(t, 443, target.Port)
	assert.True(t, target.UseTLS)
	assert.NotEmpty(t, target.RawRequest)

	rec = doJSON(t, h, http.MethodDelete, "/api/analysis/normal/results/1", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	page := decodePage(t, doJSON(t, h, http.MethodGet, "/api/analysis/normal/results", nil))
	assert.Zero(t, page.Total)
}

func TestEntryErrors(t *testing.T) {
	h := newTestRouter(t)
	rec := doJSON(t, h, http.MethodGet, "/api/analysis/normal/results/7/exchange", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "ENTRY_NOT_FOUND")

	rec = doJSON(t, h, http.MethodGet, "/api/analysis/bogus/results", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "MODE_UNKNOWN")

	rec = doJSON(t, h, http.MethodGet, "/api/analysis/normal/results/zero/exchange", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "SEQ_INVALID")
}

func TestIngestValidation(t *testing.T) {
	h := newTestRouter(t)
	rec := doJSON(t, h, http.MethodPost, "/api/exchanges", map[string]string{"method": "GET"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "EXCHANGE_INVALID")
}

func TestClearEndpoints(t *testing.T) {
	h := newTestRouter(t)
	ingest(t, h, domain.Exchange{Method: "GET", URL: "https://a.com/users/1"})
	doJSON(t, h, http.MethodPost, "/api/analysis/normal/run", nil)

	rec := doJSON(t, h, http.MethodDelete, "/api/analysis/normal/results", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	page := decodePage(t, doJSON(t, h, http.MethodGet, "/api/analysis/normal/results", nil))
	assert.Zero(t, page.Total)

	rec = doJSON(t, h, http.MethodDelete, "/api/exchanges", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	page = decodePage(t, doJSON(t, h, http.MethodGet, "/api/exchanges", nil))
	assert.Zero(t, page.Total)
}
