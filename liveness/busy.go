package liveness

import (
	"net/http"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/xmidt-org/vigil/logging"
	"github.com/xmidt-org/vigil/semaphore"
)

// Busy creates an Alice-style constructor that limits the number of HTTP transactions handled
// by decorated handlers.  The decorated handler blocks waiting on a semaphore until the
// request's context is canceled.  If a transaction is not allowed to proceed,
// http.StatusServiceUnavailable is written.
//
// If maxTransactions is nonpositive, the returned constructor is a noop.
func Busy(logger log.Logger, maxTransactions int) func(http.Handler) http.Handler {
	if maxTransactions < 1 {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	if logger == nil {
		logger = logging.DefaultLogger()
	}

	s := semaphore.New(maxTransactions)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(response http.ResponseWriter, request *http.Request) {
			if err := s.AcquireCtx(request.Context()); err != nil {
				logger.Log(level.Key(), level.ErrorValue(), logging.MessageKey(), "server busy", logging.ErrorKey(), err)
				response.WriteHeader(http.StatusServiceUnavailable)
				return
			}

			defer s.Release()
			next.ServeHTTP(response, request)
		})
	}
}
