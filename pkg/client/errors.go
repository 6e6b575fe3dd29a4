package client

import (
	"errors"
	"fmt"
)

// Common errors returned by the session.
var (
	// ErrRetryExhausted is returned when all retry attempts are exhausted.
	ErrRetryExhausted = errors.New("retry attempts exhausted")

	// ErrContextCancelled is returned when the context is cancelled during
	// a limiter wait or retry backoff.
	ErrContextCancelled = errors.New("context cancelled")

	// ErrNotInitialized is returned when a request is issued outside an
	// open session (before New or after Close). This is a programmer
	// error; it is never retried.
	ErrNotInitialized = errors.New("session not initialized")
)

// ErrorClass represents a classification of request failures.
type ErrorClass string

const (
	// ErrorClassClient represents 4xx client errors. Not retryable.
	ErrorClassClient ErrorClass = "client"

	// ErrorClassServer represents 5xx server errors.
	ErrorClassServer ErrorClass = "server"

	// ErrorClassNetwork represents connection and timeout errors.
	ErrorClassNetwork ErrorClass = "network"
)

// RequestError is a typed request failure carrying the HTTP status (zero for
// network errors) and the classification used by the retry policy.
type RequestError struct {
	StatusCode int
	ErrorClass ErrorClass
	Message    string
	Err        error
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s error (status %d): %s: %v",
			e.ErrorClass, e.StatusCode, e.Message, e.Err)
	}
	return fmt.Sprintf("%s error (status %d): %s",
		e.ErrorClass, e.StatusCode, e.Message)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *RequestError) Unwrap() error {
	return e.Err
}

// Transient reports whether the failure is worth retrying.
func (e *RequestError) Transient() bool {
	return shouldRetry(e.ErrorClass)
}

// shouldRetry determines if an error class should be retried. Server and
// network failures are transient; client errors are terminal.
func shouldRetry(errorClass ErrorClass) bool {
	switch errorClass {
	case ErrorClassServer, ErrorClassNetwork:
		return true
	default:
		return false
	}
}

// classifyStatus maps a non-success HTTP status to an error class.
func classifyStatus(statusCode int) ErrorClass {
	if statusCode >= 500 {
		return ErrorClassServer
	}
	return ErrorClassClient
}

// classify maps an error returned by a request attempt to its class.
// Anything that is not a RequestError (programmer errors, cancelled
// contexts) is treated as terminal.
func classify(err error) ErrorClass {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.ErrorClass
	}
	return ErrorClassClient
}
