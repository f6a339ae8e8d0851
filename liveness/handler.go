package liveness

import (
	"io"
	"net/http"
)

const (
	// DefaultGreeting is the response body written when no greeting is configured.
	// Probers only care about the status code, so the exact text is cosmetic.
	DefaultGreeting = "Hello from vigil!"
)

// Handler is the stateless proof-of-life responder.  Every request routed to it
// receives a 200 with a fixed textual body.  It holds no mutable state, takes
// everything it needs from its receiver and the request, and is safe for
// concurrent use by any number of goroutines.
type Handler struct {
	// Greeting is the fixed response body.  If unset, DefaultGreeting is used.
	Greeting string
}

func (h Handler) ServeHTTP(response http.ResponseWriter, request *http.Request) {
	greeting := h.Greeting
	if len(greeting) == 0 {
		greeting = DefaultGreeting
	}

	response.Header().Set("Content-Type", "text/plain; charset=utf-8")
	response.WriteHeader(http.StatusOK)
	io.WriteString(response, greeting)
}
