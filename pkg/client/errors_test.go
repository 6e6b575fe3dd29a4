package client

import (
	"errors"
	"testing"
)

func TestRequestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *RequestError
		expected string
	}{
		{
			name: "status error without cause",
			err: &RequestError{
				StatusCode: 503,
				ErrorClass: ErrorClassServer,
				Message:    "503 Service Unavailable",
			},
			expected: "server error (status 503): 503 Service Unavailable",
		},
		{
			name: "network error with cause",
			err: &RequestError{
				ErrorClass: ErrorClassNetwork,
				Message:    "request failed",
				Err:        errors.New("connection refused"),
			},
			expected: "network error (status 0): request failed: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestRequestError_Unwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := &RequestError{ErrorClass: ErrorClassNetwork, Message: "request failed", Err: cause}

	if !errors.Is(err, cause) {
		t.Error("errors.Is() did not find wrapped cause")
	}

	var reqErr *RequestError
	if !errors.As(error(err), &reqErr) {
		t.Error("errors.As() did not match RequestError")
	}
}

func TestShouldRetry(t *testing.T) {
	tests := []struct {
		name       string
		errorClass ErrorClass
		expected   bool
	}{
		{name: "client errors are terminal", errorClass: ErrorClassClient, expected: false},
		{name: "server errors are transient", errorClass: ErrorClassServer, expected: true},
		{name: "network errors are transient", errorClass: ErrorClassNetwork, expected: true},
		{name: "unknown class is terminal", errorClass: "", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shouldRetry(tt.errorClass); got != tt.expected {
				t.Errorf("shouldRetry(%q) = %v, want %v", tt.errorClass, got, tt.expected)
			}
		})
	}
}

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		expected ErrorClass
	}{
		{name: "404 is client", status: 404, expected: ErrorClassClient},
		{name: "429 is client", status: 429, expected: ErrorClassClient},
		{name: "500 is server", status: 500, expected: ErrorClassServer},
		{name: "503 is server", status: 503, expected: ErrorClassServer},
		{name: "redirect not followed is client", status: 302, expected: ErrorClassClient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyStatus(tt.status); got != tt.expected {
				t.Errorf("classifyStatus(%d) = %q, want %q", tt.status, got, tt.expected)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected ErrorClass
	}{
		{
			name:     "request error keeps its class",
			err:      &RequestError{ErrorClass: ErrorClassServer},
			expected: ErrorClassServer,
		},
		{
			name:     "wrapped request error keeps its class",
			err:      wrapErr(&RequestError{ErrorClass: ErrorClassNetwork}),
			expected: ErrorClassNetwork,
		},
		{
			name:     "not-initialized is terminal",
			err:      ErrNotInitialized,
			expected: ErrorClassClient,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classify(tt.err); got != tt.expected {
				t.Errorf("classify() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func wrapErr(err error) error {
	return &wrapped{err: err}
}

type wrapped struct{ err error }

func (w *wrapped) Error() string { return "wrapped: " + w.err.Error() }
func (w *wrapped) Unwrap() error { return w.err }
