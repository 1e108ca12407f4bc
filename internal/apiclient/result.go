package apiclient

import (
	"errors"
	"fmt"
)

// DefaultFailureMessage replaces an empty envelope message on failure.
const DefaultFailureMessage = "request failed"

// Result is the outcome of one upstream call: either a value or an error,
// never both.
type Result[T any] struct {
	value T
	err   error
}

func Ok[T any](v T) Result[T] {
	return Result[T]{value: v}
}

func Fail[T any](err error) Result[T] {
	if err == nil {
		err = errors.New(DefaultFailureMessage)
	}
	return Result[T]{err: err}
}

func (r Result[T]) IsOk() bool { return r.err == nil }

// Value is the zero value on failure.
func (r Result[T]) Value() T { return r.value }

func (r Result[T]) Err() error { return r.err }

// Get unpacks the result into the usual Go pair.
func (r Result[T]) Get() (T, error) { return r.value, r.err }

// Empty is the payload of endpoints that return no data.
type Empty struct{}

// APIError is an application-level failure: the envelope carried a non-zero code.
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Code, e.Message)
}

// AuthError means the upstream rejected the session (401 or 403). The
// session has already been cleared when callers see it.
type AuthError struct {
	Status int
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("unauthorized (http %d)", e.Status)
}

// StatusError is an HTTP failure that did not carry an envelope.
type StatusError struct {
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream http %d", e.Status)
}

func IsUnauthorized(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}
