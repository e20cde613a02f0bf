package breaker

import (
	"errors"
	"fmt"
	"time"
)

// ErrOpen is the sentinel matched by every rejection due to an open
// circuit. Use errors.Is(err, ErrOpen) or IsOpen.
var ErrOpen = errors.New("circuit open")

// ErrTimeout is the sentinel matched by every call-timeout failure on
// the async path. Use errors.Is(err, ErrTimeout) or IsTimeout.
var ErrTimeout = errors.New("circuit call timed out")

// OpenError is returned when a call is rejected because the circuit is
// open. It carries the circuit name and a stats snapshot taken at the
// moment of rejection, so callers can inspect failure counts and the
// next attempt time. It never wraps an underlying cause: the dependency
// was not attempted.
type OpenError struct {
	Name  string
	Stats Stats
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("circuit %q is open", e.Name)
}

// Is reports a match against the ErrOpen sentinel.
func (e *OpenError) Is(target error) bool {
	return target == ErrOpen
}

// TimeoutError is returned when an async call exceeds the configured
// call timeout. Timeouts are always recorded as failures, regardless of
// the failure condition.
type TimeoutError struct {
	Name    string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("circuit %q: call timed out after %s", e.Name, e.Timeout)
}

// Is reports a match against the ErrTimeout sentinel.
func (e *TimeoutError) Is(target error) bool {
	return target == ErrTimeout
}

// IsOpen reports whether err is because the circuit is open.
func IsOpen(err error) bool {
	return errors.Is(err, ErrOpen)
}

// IsTimeout reports whether err is a circuit call timeout.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}
