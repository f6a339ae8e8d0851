package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckSuccess(t *testing.T) {
	var (
		assert = assert.New(t)
		server = httptest.NewServer(http.HandlerFunc(func(response http.ResponseWriter, _ *http.Request) {
			response.Write([]byte("Hello from vigil!"))
		}))
	)

	defer server.Close()

	checker := NewChecker(nil, &Options{URL: server.URL, Timeout: 5 * time.Second})
	assert.Equal(server.URL, checker.URL())

	result := checker.Check(context.Background())
	assert.Equal(OutcomeSuccess, result.Outcome)
	assert.Equal(200, result.StatusCode)
	assert.NoError(result.Err)
}

func TestCheckNon2xxIsFailure(t *testing.T) {
	var testData = []int{301, 404, 500, 503}

	for _, statusCode := range testData {
		t.Logf("status code %d", statusCode)
		var (
			assert     = assert.New(t)
			statusCode = statusCode
			server     = httptest.NewServer(http.HandlerFunc(func(response http.ResponseWriter, _ *http.Request) {
				response.WriteHeader(statusCode)
			}))
		)

		checker := NewChecker(
			&http.Client{
				CheckRedirect: func(*http.Request, []*http.Request) error {
					return http.ErrUseLastResponse
				},
			},
			&Options{URL: server.URL, Timeout: 5 * time.Second},
		)

		// a response was received, but it is still a failure
		result := checker.Check(context.Background())
		assert.Equal(OutcomeFailure, result.Outcome)
		assert.Equal(statusCode, result.StatusCode)
		assert.NoError(result.Err)

		server.Close()
	}
}

func TestCheckConnectionRefused(t *testing.T) {
	var (
		assert = assert.New(t)
		server = httptest.NewServer(http.NotFoundHandler())
	)

	// closing the server guarantees nothing is listening at its address
	url := server.URL
	server.Close()

	checker := NewChecker(nil, &Options{URL: url, Timeout: 5 * time.Second})
	result := checker.Check(context.Background())
	assert.Equal(OutcomeFailure, result.Outcome)
	assert.Zero(result.StatusCode)
	assert.Error(result.Err)
}

func TestCheckTimeout(t *testing.T) {
	var (
		assert  = assert.New(t)
		release = make(chan struct{})
		server  = httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			<-release
		}))
	)

	defer server.Close()
	defer close(release)

	checker := NewChecker(nil, &Options{URL: server.URL, Timeout: 100 * time.Millisecond})
	result := checker.Check(context.Background())
	assert.Equal(OutcomeTimeout, result.Outcome)
	assert.Error(result.Err)
}

func TestCheckInvalidURL(t *testing.T) {
	var (
		require = require.New(t)
		checker = NewChecker(nil, &Options{URL: "://not-a-url"})
	)

	result := checker.Check(context.Background())
	require.Equal(OutcomeFailure, result.Outcome)
	require.Error(result.Err)
}
