package vitals

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xmidt-org/vigil/concurrent"
	"github.com/xmidt-org/vigil/logging"
)

// setupVitals supplies a Vitals object with useful test configuration
func setupVitals(t *testing.T) *Vitals {
	return New(
		time.Duration(69)*time.Second,
		logging.NewTestLogger(nil, t),
	)
}

func TestLifecycle(t *testing.T) {
	var (
		assert = assert.New(t)
		v      = setupVitals(t)

		waitGroup = &sync.WaitGroup{}
		shutdown  = make(chan struct{})
	)

	assert.NoError(v.Run(waitGroup, shutdown))

	// Run must be idempotent
	assert.NoError(v.Run(waitGroup, shutdown))

	applied := make(chan struct{})
	v.SendEvent(func(stats Stats) {
		defer close(applied)
		assert.Equal(NewStats(nil), stats)
	})

	select {
	case <-applied:
		// passed
	case <-time.After(10 * time.Second):
		assert.Fail("the event was not applied within the timeout")
	}

	close(shutdown)
	assert.True(concurrent.WaitTimeout(waitGroup, 10*time.Second))
}

func TestAddListener(t *testing.T) {
	var (
		assert = assert.New(t)
		v      = New(10*time.Millisecond, logging.NewTestLogger(nil, t))

		waitGroup = &sync.WaitGroup{}
		shutdown  = make(chan struct{})
		received  = make(chan Stats, 1)
	)

	defer waitGroup.Wait()
	defer close(shutdown)
	assert.NoError(v.Run(waitGroup, shutdown))

	v.AddListener(ListenerFunc(func(stats Stats) {
		select {
		case received <- stats:
		default:
		}
	}))

	select {
	case stats := <-received:
		assert.NotEmpty(stats)
	case <-time.After(10 * time.Second):
		assert.Fail("the listener did not receive stats within the timeout")
	}
}

func TestServeHTTP(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		v       = setupVitals(t)

		waitGroup = &sync.WaitGroup{}
		shutdown  = make(chan struct{})

		request  = httptest.NewRequest("GET", "/stats", nil)
		response = httptest.NewRecorder()
	)

	defer waitGroup.Wait()
	defer close(shutdown)
	require.NoError(v.Run(waitGroup, shutdown))

	v.ServeHTTP(response, request)
	assert.Equal(200, response.Code)
	assert.Equal("application/json", response.Header().Get("Content-Type"))

	var payload map[string]int
	require.NoError(json.Unmarshal(response.Body.Bytes(), &payload))
	_, ok := payload[string(TotalRequestsReceived)]
	assert.True(ok)
}

func TestServeHTTPAfterShutdown(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		v       = setupVitals(t)

		waitGroup = &sync.WaitGroup{}
		shutdown  = make(chan struct{})
	)

	require.NoError(v.Run(waitGroup, shutdown))
	close(shutdown)
	require.True(concurrent.WaitTimeout(waitGroup, 10*time.Second))

	// a request arriving after the event loop has exited must not hang
	response := httptest.NewRecorder()
	v.ServeHTTP(response, httptest.NewRequest("GET", "/stats", nil))
	assert.Equal(503, response.Code)
}

func TestCountRequests(t *testing.T) {
	var (
		assert = assert.New(t)
		v      = setupVitals(t)

		waitGroup = &sync.WaitGroup{}
		shutdown  = make(chan struct{})

		decorated = CountRequests(v)(http.HandlerFunc(func(response http.ResponseWriter, _ *http.Request) {
			response.WriteHeader(200)
		}))
	)

	defer waitGroup.Wait()
	defer close(shutdown)
	assert.NoError(v.Run(waitGroup, shutdown))

	for i := 0; i < 3; i++ {
		response := httptest.NewRecorder()
		decorated.ServeHTTP(response, httptest.NewRequest("GET", "/", nil))
		assert.Equal(200, response.Code)
	}

	counted := make(chan int, 1)
	v.SendEvent(func(stats Stats) {
		counted <- stats[TotalRequestsReceived]
	})

	select {
	case count := <-counted:
		assert.Equal(3, count)
	case <-time.After(10 * time.Second):
		assert.Fail("the count was not observed within the timeout")
	}
}
