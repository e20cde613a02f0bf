package breaker

import "time"

// Profile bundles the tuning parameters for one class of protected
// dependency. Apply it with WithProfile, optionally followed by
// fine-grained options.
type Profile struct {
	FailureThreshold int
	RecoveryTimeout  time.Duration
	SuccessThreshold int
	CallTimeout      time.Duration
}

// Predefined profiles for common dependency classes. These are
// convenience presets, not engine behavior.
var (
	// DatabaseProfile suits relational databases: trip fast, probe
	// after a short window.
	DatabaseProfile = Profile{
		FailureThreshold: 5,
		RecoveryTimeout:  30 * time.Second,
		SuccessThreshold: 3,
		CallTimeout:      10 * time.Second,
	}

	// CacheProfile suits caches: a cache outage is cheap to detect and
	// cheap to retry.
	CacheProfile = Profile{
		FailureThreshold: 3,
		RecoveryTimeout:  20 * time.Second,
		SuccessThreshold: 2,
		CallTimeout:      5 * time.Second,
	}

	// ExternalAPIProfile suits slow third-party APIs: tolerate long
	// calls, back off for longer once tripped.
	ExternalAPIProfile = Profile{
		FailureThreshold: 5,
		RecoveryTimeout:  60 * time.Second,
		SuccessThreshold: 3,
		CallTimeout:      30 * time.Second,
	}
)

// WithProfile applies all four tuning parameters of p.
func WithProfile(p Profile) Option {
	return func(c *config) {
		c.failureThreshold = p.FailureThreshold
		c.recoveryTimeout = p.RecoveryTimeout
		c.successThreshold = p.SuccessThreshold
		c.callTimeout = p.CallTimeout
	}
}

// Options returns p expressed as individual options.
func (p Profile) Options() []Option {
	return []Option{WithProfile(p)}
}
