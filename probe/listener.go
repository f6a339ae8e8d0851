package probe

// StatusListener receives notification of health status transitions.
// Listeners are invoked synchronously from the prober's loop, so they
// must not block for long.
type StatusListener interface {
	// OnTransition is called whenever the externally visible status changes.
	// The state argument is the state after the transition.
	OnTransition(from, to Status, state HealthState)
}

// StatusListenerFunc is a function type that implements StatusListener.
type StatusListenerFunc func(from, to Status, state HealthState)

func (f StatusListenerFunc) OnTransition(from, to Status, state HealthState) {
	f(from, to, state)
}
