package clock

import "time"

// Interface is the time source used by components that schedule periodic
// work.  Only the operations this module needs are exposed, so that tests
// can substitute a mock.
type Interface interface {
	Now() time.Time
	NewTicker(time.Duration) Ticker
}

type systemClock struct{}

func (sc systemClock) Now() time.Time {
	return time.Now()
}

func (sc systemClock) NewTicker(d time.Duration) Ticker {
	return systemTicker{time.NewTicker(d)}
}

// System returns a clock backed by the time package
func System() Interface {
	return systemClock{}
}

// Ticker is the analog of time.Ticker, with the channel exposed through a method
// so that alternate implementations can be supplied.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type systemTicker struct {
	*time.Ticker
}

func (st systemTicker) C() <-chan time.Time {
	return st.Ticker.C
}

// WrapTicker wraps a time.Ticker in a clock.Ticker.
func WrapTicker(t *time.Ticker) Ticker {
	return systemTicker{t}
}
