package breaker

import "time"

// Clock abstracts time for recovery-window checks. Inject a fake clock
// in tests to step through state transitions deterministically.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}
