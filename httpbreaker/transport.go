// Package httpbreaker protects outbound HTTP requests with a circuit
// breaker at the http.RoundTripper layer.
package httpbreaker

import (
	"fmt"
	"net/http"

	"github.com/quantrail/breaker"
)

// StatusError marks a response whose status code counted as a failure.
// The response itself is still returned to the caller.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned status %d", e.Code)
}

// Transport is an http.RoundTripper that records request outcomes on a
// circuit and rejects requests while it is open. Transport errors and,
// by default, 5xx responses count as failures; a 5xx response is still
// delivered to the caller.
type Transport struct {
	// Circuit protects every request through this transport. Required.
	Circuit *breaker.Circuit

	// Base performs the requests. Defaults to http.DefaultTransport.
	Base http.RoundTripper

	// FailureStatus reports whether a status code counts as a failure.
	// Defaults to code >= 500.
	FailureStatus func(code int) bool
}

// RoundTrip implements http.RoundTripper. Rejections surface as an
// *breaker.OpenError with a nil response.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	done, err := t.Circuit.Protect(req.Context())
	if err != nil {
		return nil, err
	}

	resp, err := t.base().RoundTrip(req)
	switch {
	case err != nil:
		done(err)
	case t.failureStatus(resp.StatusCode):
		done(&StatusError{Code: resp.StatusCode})
	default:
		done(nil)
	}
	return resp, err
}

func (t *Transport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}

func (t *Transport) failureStatus(code int) bool {
	if t.FailureStatus != nil {
		return t.FailureStatus(code)
	}
	return code >= http.StatusInternalServerError
}
