package liveness

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics(t *testing.T) {
	var (
		require  = require.New(t)
		registry = prometheus.NewPedanticRegistry()
		m        = NewMetrics(registry)
	)

	require.NotNil(m)
	require.NotNil(m.RequestsTotal)
	require.NotNil(m.InFlightRequests)
	require.NotNil(m.RequestDuration)
}

func TestInstrument(t *testing.T) {
	var (
		assert   = assert.New(t)
		require  = require.New(t)
		registry = prometheus.NewPedanticRegistry()

		decorated = NewMetrics(registry).Instrument()(Handler{})
		response  = httptest.NewRecorder()
	)

	decorated.ServeHTTP(response, httptest.NewRequest("GET", "/", nil))
	assert.Equal(200, response.Code)

	families, err := registry.Gather()
	require.NoError(err)

	var sawCounter bool
	for _, family := range families {
		if family.GetName() == "api_requests_total" {
			sawCounter = true
			require.Len(family.GetMetric(), 1)
			assert.Equal(float64(1), family.GetMetric()[0].GetCounter().GetValue())
		}
	}

	assert.True(sawCounter, "api_requests_total was not gathered")

	var _ http.Handler = decorated
}
