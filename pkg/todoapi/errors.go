package todoapi

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is checks against the typed errors below.
var (
	ErrValidation         = errors.New("validation failed")
	ErrTransport          = errors.New("transport failed")
	ErrMalformedErrorBody = errors.New("malformed error body")
)

// ValidationError is returned before any network I/O when input does not
// satisfy an operation's schema.
type ValidationError struct {
	Schema     string
	Violations []Violation
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%d validation error(s) for %s: %s", len(e.Violations), e.Schema, joinViolations(e.Violations))
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// HasField reports whether a violation names field.
func (e *ValidationError) HasField(field string) bool {
	for _, v := range e.Violations {
		if v.Field == field {
			return true
		}
	}
	return false
}

// TransportError is returned when a request could not be sent, or its
// response could not be read or decoded. It is never retried.
type TransportError struct {
	Op     string // encode, request, read or decode
	Method Method
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %s: %v", e.Method, e.URL, e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// MalformedErrorBodyError is returned when a non-2xx response does not carry
// a string "detail" field.
type MalformedErrorBodyError struct {
	Status int
	Method Method
	Body   []byte
}

func (e *MalformedErrorBodyError) Error() string {
	return fmt.Sprintf("malformed error body: status %d for %s: missing string \"detail\" field", e.Status, e.Method)
}

func (e *MalformedErrorBodyError) Is(target error) bool { return target == ErrMalformedErrorBody }

// APIError is a server-reported failure converted to an error by
// APIResult.Err.
type APIError struct {
	Status int
	Method Method
	Detail string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d for %s: %s", e.Status, e.Method, e.Detail)
}
