package breaker

import "time"

// Stats is a point-in-time, read-only snapshot of a circuit's counters
// and timestamps.
type Stats struct {
	// State is the state at the moment of the snapshot.
	State State

	// Failures is the classified-failure count. Cumulative while
	// closed; reset when the circuit closes again or on manual reset.
	Failures int

	// Successes is the success count while half-open.
	Successes int

	// TotalRequests counts calls that were admitted and executed.
	// Rejected calls are excluded, even though the attempted-call
	// metric includes them.
	TotalRequests int64

	// LastFailureTime is when the last classified failure was recorded.
	// Zero if no failure has occurred.
	LastFailureTime time.Time

	// StateChangedTime is when the circuit last changed state.
	StateChangedTime time.Time

	// NextAttemptTime is when an open circuit will admit a recovery
	// probe: StateChangedTime plus the recovery timeout. Zero unless
	// the circuit is open.
	NextAttemptTime time.Time
}

// Stats returns a snapshot of the circuit.
func (c *Circuit) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.statsLocked()
}

// statsLocked builds a snapshot. Callers must hold c.mu.
func (c *Circuit) statsLocked() Stats {
	s := Stats{
		State:            c.state,
		Failures:         c.failures,
		Successes:        c.successes,
		TotalRequests:    c.total,
		LastFailureTime:  c.lastFailure,
		StateChangedTime: c.stateChanged,
	}
	if c.state == Open {
		s.NextAttemptTime = c.stateChanged.Add(c.cfg.recoveryTimeout)
	}
	return s
}
