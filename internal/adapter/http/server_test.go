package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rumixist/erken-deprem-ikazi/internal/analysis"
)

type stubReadiness struct {
	err error
}

func (s *stubReadiness) CheckReadiness(context.Context) error { return s.err }

func newTestServer(ready ReadinessChecker, refresher Refresher) *Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(":0", ready, refresher, logger)
}

func do(t *testing.T, srv *Server, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(&stubReadiness{}, nil)

	rec := do(t, srv, http.MethodGet, "/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "healthy", decodeBody(t, rec)["status"])
}

func TestReadyz(t *testing.T) {
	t.Run("not ready", func(t *testing.T) {
		srv := newTestServer(&stubReadiness{err: errors.New("no fetch yet")}, nil)

		rec := do(t, srv, http.MethodGet, "/readyz")

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, "not ready", decodeBody(t, rec)["status"])
	})

	t.Run("ready", func(t *testing.T) {
		srv := newTestServer(&stubReadiness{}, nil)

		rec := do(t, srv, http.MethodGet, "/readyz")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ready", decodeBody(t, rec)["status"])
	})
}

func TestAnalysisEndpoint(t *testing.T) {
	srv := newTestServer(&stubReadiness{}, nil)

	rec := do(t, srv, http.MethodGet, "/api/v1/analysis")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	srv.SetAnalysis(analysis.Result{
		SeismicRate: analysis.RateSummary{Count24h: 7, Classification: analysis.ClassificationNormal},
		LastUpdated: "2025-05-10T12:00:00Z",
	})

	rec = do(t, srv, http.MethodGet, "/api/v1/analysis")
	assert.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "2025-05-10T12:00:00Z", body["last_updated"])
	rate, ok := body["seismic_rate"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(7), rate["count_24h"])
}

func TestRefreshEndpoint(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		srv := newTestServer(&stubReadiness{}, nil)

		rec := do(t, srv, http.MethodPost, "/api/v1/refresh")
		assert.Equal(t, http.StatusNotImplemented, rec.Code)
	})

	t.Run("success", func(t *testing.T) {
		called := false
		srv := newTestServer(&stubReadiness{}, RefreshFunc(func(context.Context) error {
			called = true
			return nil
		}))

		rec := do(t, srv, http.MethodPost, "/api/v1/refresh")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, called)
	})

	t.Run("upstream failure", func(t *testing.T) {
		srv := newTestServer(&stubReadiness{}, RefreshFunc(func(context.Context) error {
			return errors.New("catalog unreachable")
		}))

		rec := do(t, srv, http.MethodPost, "/api/v1/refresh")
		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Equal(t, "catalog unreachable", decodeBody(t, rec)["error"])
	})
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(&stubReadiness{}, nil)

	rec := do(t, srv, http.MethodGet, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(&stubReadiness{}, nil)

	rec := do(t, srv, http.MethodPost, "/healthz")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
