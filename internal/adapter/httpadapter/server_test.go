package httpadapter_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/storm-impact-summary/internal/adapter/httpadapter"
	"github.com/couchcryptid/storm-impact-summary/internal/aggregate"
	"github.com/couchcryptid/storm-impact-summary/internal/domain"
)

type mockReadiness struct {
	err error
}

func (m *mockReadiness) CheckReadiness(_ context.Context) error { return m.err }

type mockSnapshots struct {
	snap aggregate.Snapshot
}

func (m *mockSnapshots) CurrentSnapshot() aggregate.Snapshot { return m.snap }

func testSnapshot() aggregate.Snapshot {
	return aggregate.Snapshot{
		GeneratedAt: time.Date(2026, 2, 11, 18, 0, 0, 0, time.UTC),
		Records:     2,
		Rows: []aggregate.SummaryRow{
			{Category: domain.CategoryFlood, Fatalities: 2, Injuries: 3, PropDamage: 5e-3, CropDamage: 1e-6},
			{Category: domain.CategoryThunderLightning, Fatalities: 1, PropDamage: 1e-5},
		},
	}
}

func newTestServer(readyErr error) *httpadapter.Server {
	return httpadapter.NewServer(":0", &mockReadiness{err: readyErr}, &mockSnapshots{snap: testSnapshot()}, slog.Default())
}

func TestHealthzReturns200(t *testing.T) {
	srv := newTestServer(nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestReadyzReturns200WhenReady(t *testing.T) {
	srv := newTestServer(nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ready", body["status"])
}

func TestReadyzReturns503WhenNotReady(t *testing.T) {
	srv := newTestServer(fmt.Errorf("not ready yet"))
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not ready", body["status"])
	assert.Equal(t, "not ready yet", body["error"])
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestSummaryEndpoint(t *testing.T) {
	srv := newTestServer(nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/summary", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var snap aggregate.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, int64(2), snap.Records)
	require.Len(t, snap.Rows, 2)
	assert.Equal(t, domain.CategoryFlood, snap.Rows[0].Category)
	assert.Equal(t, int64(3), snap.Rows[0].Injuries)
}

func TestSummaryLongEndpoint(t *testing.T) {
	srv := newTestServer(nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/summary/long", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Records  int64                   `json:"records"`
		Health   []aggregate.HealthRow   `json:"health"`
		Economic []aggregate.EconomicRow `json:"economic"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(2), body.Records)

	// Two metrics per populated category, health and economic alike.
	require.Len(t, body.Health, 4)
	require.Len(t, body.Economic, 4)
	assert.Equal(t, aggregate.MetricFatalities, body.Health[0].Metric)
	assert.Equal(t, int64(2), body.Health[0].Count)
	assert.Equal(t, aggregate.MetricPropDamage, body.Economic[0].Metric)
	assert.InDelta(t, 5e-3, body.Economic[0].Amount, 1e-12)
}
