package probe

// Status represents the externally visible health of a monitored process.
// The zero value is StatusStarting, which is the state of every process
// before its first successful probe.
type Status int

const (
	// StatusStarting indicates that the monitored process is within its start
	// period and has not yet been probed successfully.
	StatusStarting Status = iota

	// StatusHealthy indicates that the most recent probe succeeded.
	StatusHealthy

	// StatusUnhealthy indicates that the failing streak reached the retries
	// threshold after the start period elapsed.
	StatusUnhealthy
)

func (s Status) String() string {
	switch s {
	case StatusStarting:
		return "starting"
	case StatusHealthy:
		return "healthy"
	case StatusUnhealthy:
		return "unhealthy"
	default:
		return "unknown"
	}
}

// Outcome classifies the result of a single probe attempt.
type Outcome int

const (
	// OutcomeUnknown is the zero value, used before any probe has completed.
	OutcomeUnknown Outcome = iota

	// OutcomeSuccess indicates a response with a 2xx status code.
	OutcomeSuccess

	// OutcomeFailure indicates a non-2xx response or a transport error,
	// e.g. connection refused, DNS failure, or a reset.
	OutcomeFailure

	// OutcomeTimeout indicates that no response arrived within the probe timeout.
	OutcomeTimeout
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailure:
		return "failure"
	case OutcomeTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}
