package api

import "fmt"

// TransportError covers failures before a response body was obtained:
// dial errors, timeouts, cancelled contexts, unreadable bodies.
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// APIError is a failure the server reported itself, either through a
// non-2xx status or a success:false body.
type APIError struct {
	Endpoint string
	Status   int
	Message  string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Endpoint, e.Message)
	}
	return fmt.Sprintf("%s: server error (HTTP %d)", e.Endpoint, e.Status)
}

// DecodeError marks a response whose shape did not match the contract,
// caught at the client boundary instead of faulting downstream.
type DecodeError struct {
	Endpoint string
	Field    string
	Err      error
}

func (e *DecodeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: malformed response: missing %q", e.Endpoint, e.Field)
	}
	return fmt.Sprintf("%s: malformed response: %v", e.Endpoint, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
