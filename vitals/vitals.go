package vitals

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/xmidt-org/vigil/logging"
)

// Listener receives Stats on regular intervals.
type Listener interface {
	// OnStats is called with a copy of the stats map at regular intervals.
	OnStats(Stats)
}

// ListenerFunc is a function type that implements Listener.
type ListenerFunc func(Stats)

func (f ListenerFunc) OnStats(stats Stats) {
	f(stats)
}

// Vitals is the central type of this package.  It tracks process statistics
// on a dedicated event loop, serves them over HTTP, and dispatches them to
// zero or more Listeners at regular intervals.
type Vitals struct {
	stats         Stats
	dumpInterval  time.Duration
	logger        log.Logger
	event         chan Mutator
	quit          chan struct{}
	listeners     []Listener
	memInfoReader *MemInfoReader
	once          sync.Once
}

// New creates a Vitals object seeded with the given statistics.  The logger
// may be nil, in which case the default NOP logger is used.
func New(dumpInterval time.Duration, logger log.Logger, options ...Option) *Vitals {
	if logger == nil {
		logger = logging.DefaultLogger()
	}

	return &Vitals{
		event:         make(chan Mutator, 100),
		quit:          make(chan struct{}),
		stats:         NewStats(options),
		dumpInterval:  dumpInterval,
		logger:        logger,
		memInfoReader: &MemInfoReader{},
	}
}

// AddListener adds a new listener to this Vitals.  This method is asynchronous.
// The listener will eventually receive events, but callers should not assume
// events will be dispatched immediately after this method call.
func (v *Vitals) AddListener(listener Listener) {
	v.SendEvent(func(Stats) {
		v.listeners = append(v.listeners, listener)
	})
}

// SendEvent dispatches a Mutator to the internal event queue
func (v *Vitals) SendEvent(mutator Mutator) {
	v.event <- mutator
}

// Run starts the event loop.  This method is idempotent:  once a Vitals
// object is Run, it cannot be Run again.  Closing the shutdown channel
// stops the event loop.
func (v *Vitals) Run(waitGroup *sync.WaitGroup, shutdown <-chan struct{}) error {
	v.once.Do(func() {
		v.logger.Log(level.Key(), level.DebugValue(), logging.MessageKey(), "vitals monitor started")

		waitGroup.Add(1)
		go func() {
			ticker := time.NewTicker(v.dumpInterval)

			defer ticker.Stop()
			defer v.logger.Log(level.Key(), level.DebugValue(), logging.MessageKey(), "vitals monitor stopped")
			defer waitGroup.Done()
			defer close(v.quit)

			for {
				select {
				case <-shutdown:
					return

				case mutator := <-v.event:
					mutator(v.stats)

				case <-ticker.C:
					v.stats.UpdateMemory(v.memInfoReader)
					dispatch := v.stats.Clone()
					for _, listener := range v.listeners {
						listener.OnStats(dispatch)
					}
				}
			}
		}()
	})

	return nil
}

// ServeHTTP writes the current statistics as a JSON document.  The event loop
// must have been started, or this method will block until it is.  Once the
// event loop has stopped, this method responds with a 503 instead.
func (v *Vitals) ServeHTTP(response http.ResponseWriter, request *http.Request) {
	done := make(chan struct{})
	mutator := Mutator(func(stats Stats) {
		defer close(done)
		stats.UpdateMemory(v.memInfoReader)

		data, err := json.Marshal(stats)
		if err != nil {
			v.logger.Log(level.Key(), level.ErrorValue(), logging.MessageKey(), "could not marshal stats", logging.ErrorKey(), err)
			response.Header().Set("Content-Type", "application/json")
			response.WriteHeader(http.StatusInternalServerError)
			response.Write([]byte(`{"message": "could not marshal stats"}`))
			return
		}

		response.Header().Set("Content-Type", "application/json")
		response.Write(data)
	})

	select {
	case v.event <- mutator:
	case <-v.quit:
		response.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	select {
	case <-done:
	case <-v.quit:
		// the loop ran the mutator before exiting in the case where both
		// channels are ready, so check done again before giving up
		select {
		case <-done:
		default:
			response.WriteHeader(http.StatusServiceUnavailable)
		}
	}
}

// CountRequests returns an Alice-style constructor that increments the
// TotalRequestsReceived stat for every request passing through it.
func CountRequests(v *Vitals) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(response http.ResponseWriter, request *http.Request) {
			v.SendEvent(Inc(TotalRequestsReceived, 1))
			next.ServeHTTP(response, request)
		})
	}
}
