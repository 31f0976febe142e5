package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

type stubQueue struct{ healthy bool }

func (s stubQueue) Healthy() bool { return s.healthy }

func getHealth(t *testing.T, h *HealthHandler) (int, HealthResponse) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec.Code, resp
}

func TestHealthAllHealthy(t *testing.T) {
	s := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer rdb.Close()

	code, resp := getHealth(t, NewHealthHandler(stubPinger{}, stubQueue{healthy: true}, rdb, "test"))

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, map[string]string{"database": "healthy", "rabbitmq": "healthy", "redis": "healthy"}, resp.Dependencies)
}

func TestHealthNotConfiguredIsStillHealthy(t *testing.T) {
	code, resp := getHealth(t, NewHealthHandler(nil, nil, nil, "test"))

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "not configured", resp.Dependencies["redis"])
}

func TestHealthDegraded(t *testing.T) {
	code, resp := getHealth(t, NewHealthHandler(stubPinger{err: errors.New("conn refused")}, stubQueue{healthy: false}, nil, "test"))

	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "degraded", resp.Status)
	assert.True(t, strings.HasPrefix(resp.Dependencies["database"], "unhealthy"))
	assert.True(t, strings.HasPrefix(resp.Dependencies["rabbitmq"], "unhealthy"))
}

func TestPaymentPages(t *testing.T) {
	rec := httptest.NewRecorder()
	PaymentSuccess(rec, httptest.NewRequest(http.MethodGet, "/payment-success", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Payment Successful!")

	rec = httptest.NewRecorder()
	PaymentCancelled(rec, httptest.NewRequest(http.MethodGet, "/payment-cancelled", nil))
	assert.Contains(t, rec.Body.String(), "No charges were made.")
}
