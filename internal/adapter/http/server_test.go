package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpadapter "github.com/geoin-git/kiln-monitor/internal/adapter/http"
	"github.com/geoin-git/kiln-monitor/internal/domain"
)

// mockDashboard implements httpadapter.Dashboard with canned state.
type mockDashboard struct {
	records    []domain.KilnRecord
	filtered   []domain.KilnRecord
	summary    domain.Summary
	criteria   domain.FilterCriteria
	table      [][]string
	refreshErr error
	readyErr   error
}

func (m *mockDashboard) Records() []domain.KilnRecord           { return m.records }
func (m *mockDashboard) Filtered() []domain.KilnRecord          { return m.filtered }
func (m *mockDashboard) Summary() domain.Summary                { return m.summary }
func (m *mockDashboard) Criteria() domain.FilterCriteria        { return m.criteria }
func (m *mockDashboard) SetCriteria(c domain.FilterCriteria)    { m.criteria = c }
func (m *mockDashboard) ExportTable() [][]string                { return m.table }
func (m *mockDashboard) Refresh(_ context.Context) error        { return m.refreshErr }
func (m *mockDashboard) CheckReadiness(_ context.Context) error { return m.readyErr }

func newTestServer(dash *mockDashboard) *httpadapter.Server {
	return httpadapter.NewServer(":0", dash, slog.Default())
}

func doRequest(srv *httpadapter.Server, method, path string, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	srv.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	rec := doRequest(newTestServer(&mockDashboard{}), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestReadyz(t *testing.T) {
	rec := doRequest(newTestServer(&mockDashboard{}), http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(newTestServer(&mockDashboard{readyErr: fmt.Errorf("no dataset loaded yet")}),
		http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "no dataset loaded yet", body["error"])
}

func TestMetricsEndpoint(t *testing.T) {
	rec := doRequest(newTestServer(&mockDashboard{}), http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestGetRecords(t *testing.T) {
	dash := &mockDashboard{
		records: []domain.KilnRecord{
			{Name: "Kiln A", Lat: 33.8, Lng: 74.8, Validity: "Valid"},
			{Name: "Kiln B", Lat: 34.1, Lng: 74.2, Validity: "not valid"},
		},
	}
	rec := doRequest(newTestServer(dash), http.MethodGet, "/api/records", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Count   int                 `json:"count"`
		Records []domain.KilnRecord `json:"records"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Count)
	assert.Equal(t, "Kiln A", body.Records[0].Name)
}

func TestGetSummary(t *testing.T) {
	dash := &mockDashboard{summary: domain.Summary{
		Total:       10,
		Displayed:   4,
		Excluded:    2,
		Counts:      domain.StatusCounts{Valid: 4, Expired: 3, Processing: 1},
		LastUpdated: time.Date(2025, 12, 1, 12, 0, 0, 0, time.UTC),
	}}
	rec := doRequest(newTestServer(dash), http.MethodGet, "/api/summary", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var got domain.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, dash.summary, got)
}

func TestPutFilters(t *testing.T) {
	dash := &mockDashboard{summary: domain.Summary{Displayed: 3}}
	srv := newTestServer(dash)

	rec := doRequest(srv, http.MethodPut, "/api/filters",
		`{"status":"valid","search":"kiln","dateFrom":"2024-01-01","dateTo":""}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.StatusValid, dash.criteria.Status)
	assert.Equal(t, "kiln", dash.criteria.Search)
	assert.Equal(t, "2024-01-01", dash.criteria.DateFrom)
}

func TestPutFilters_BadStatus(t *testing.T) {
	rec := doRequest(newTestServer(&mockDashboard{}), http.MethodPut, "/api/filters",
		`{"status":"bogus"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPutFilters_BadBody(t *testing.T) {
	rec := doRequest(newTestServer(&mockDashboard{}), http.MethodPut, "/api/filters", "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPostRefresh_Error(t *testing.T) {
	dash := &mockDashboard{refreshErr: fmt.Errorf("refresh dataset: %w", domain.ErrFormat)}
	rec := doRequest(newTestServer(dash), http.MethodPost, "/api/refresh", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "format", body["kind"])
	assert.NotEmpty(t, body["message"])
}

func TestPostRefresh_TransportError(t *testing.T) {
	dash := &mockDashboard{refreshErr: fmt.Errorf("refresh dataset: %w", domain.ErrTransport)}
	rec := doRequest(newTestServer(dash), http.MethodPost, "/api/refresh", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "transport", body["kind"])
}

func TestGetExport(t *testing.T) {
	dash := &mockDashboard{table: [][]string{
		{"Name", "Latitude", "Longitude", "Date of CTO", "Valid Till", "Status"},
		{"Kiln A", "33.80000", "74.80000", "05-01-2024", "Valid", "Valid"},
	}}
	rec := doRequest(newTestServer(dash), http.MethodGet, "/api/export", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "Name,Latitude,Longitude,Date of CTO,Valid Till,Status")
	assert.Contains(t, rec.Body.String(), "Kiln A,33.80000,74.80000,05-01-2024,Valid,Valid")
}
