package probe

// HealthState is the health record maintained by the prober for a single
// monitored process.  The zero value is the correct initial state:  starting,
// with no failing streak and no recorded outcome.
type HealthState struct {
	// Status is the current externally visible state.
	Status Status

	// FailingStreak is the count of consecutive failed probes since the
	// last success.  Failures of a process that is still starting and
	// still inside its start period do not count toward the streak.
	FailingStreak int

	// LastOutcome is the classification of the most recent probe.
	LastOutcome Outcome
}

// Observe folds a single probe outcome into the state, returning the next
// state.  The receiver is not modified.
//
// graceElapsed reports whether the start period had already elapsed at the
// instant the probe was issued.  The boundary is inclusive:  a probe issued
// at exactly elapsed == startPeriod is subject to the retries threshold.
//
// A success resets the failing streak and moves to healthy unconditionally,
// with no hysteresis on recovery.  A failure or timeout of a starting process
// still inside its start period is informational only:  LastOutcome records
// it, but the streak and status are untouched.  Otherwise a failure or
// timeout increments the streak, and the status becomes unhealthy once the
// streak reaches the retries threshold and the start period has elapsed.
func (hs HealthState) Observe(outcome Outcome, graceElapsed bool, retries int) HealthState {
	next := hs
	next.LastOutcome = outcome

	if outcome == OutcomeSuccess {
		next.FailingStreak = 0
		next.Status = StatusHealthy
		return next
	}

	if hs.Status == StatusStarting && !graceElapsed {
		return next
	}

	next.FailingStreak++
	if graceElapsed && next.FailingStreak >= retries {
		next.Status = StatusUnhealthy
	}

	return next
}
