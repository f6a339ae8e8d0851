package probe

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/xmidt-org/vigil/clock"
)

// Client is the interface implemented by net/http.Client
type Client interface {
	Do(*http.Request) (*http.Response, error)
}

var _ Client = (*http.Client)(nil)

// Result carries everything observed during a single probe attempt.
type Result struct {
	// Outcome is the classification of this attempt.
	Outcome Outcome

	// StatusCode is the HTTP status of the response, or zero when no
	// response was received.
	StatusCode int

	// Latency is the time the attempt took, whether or not it succeeded.
	Latency time.Duration

	// Err is the transport error, if any.  A non-2xx response is a failure
	// with a nil Err.
	Err error
}

// Checker issues individual probe requests and classifies the outcomes.
// It holds no health state; folding outcomes into state is the Prober's job.
type Checker struct {
	client  Client
	url     string
	timeout time.Duration
	clock   clock.Interface
}

// NewChecker constructs a Checker from a set of options.  The client may be
// nil, in which case a plain http.Client is used.  The options object may be
// nil, in which case all defaults apply.
func NewChecker(client Client, o *Options) *Checker {
	if client == nil {
		client = new(http.Client)
	}

	return &Checker{
		client:  client,
		url:     o.url(),
		timeout: o.timeout(),
		clock:   clock.System(),
	}
}

// URL returns the probe target of this Checker
func (c *Checker) URL() string {
	return c.url
}

// Check issues exactly one GET to the configured URL, enforcing the probe
// timeout through the request context.  Any response with a 2xx status is a
// success.  A response with any other status is a failure, even though a
// response was received.  Transport errors are failures, except timeouts,
// which are classified separately.
func (c *Checker) Check(ctx context.Context) Result {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := c.clock.Now()
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return Result{Outcome: OutcomeFailure, Err: err}
	}

	response, err := c.client.Do(request)
	latency := c.clock.Now().Sub(start)

	if err != nil {
		outcome := OutcomeFailure
		if isTimeout(err) {
			outcome = OutcomeTimeout
		}

		return Result{Outcome: outcome, Latency: latency, Err: err}
	}

	// drain a bounded amount so the connection can be reused
	io.Copy(io.Discard, io.LimitReader(response.Body, 4096))
	response.Body.Close()

	outcome := OutcomeFailure
	if response.StatusCode >= 200 && response.StatusCode < 300 {
		outcome = OutcomeSuccess
	}

	return Result{Outcome: outcome, StatusCode: response.StatusCode, Latency: latency}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
