package apiclient

import (
	"fmt"
	"time"
)

// Method is one of the HTTP methods the harness issues against the backend.
type Method string

const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
	MethodPatch  Method = "PATCH"
	MethodDelete Method = "DELETE"
)

// Outcome is the normalized record of a single HTTP call attempt.
//
// StatusCode is zero if no response was received at all (connection refused, timeout, malformed
// response); such an outcome is always a failure regardless of ExpectedSuccess. Otherwise Success
// is always the result of Classify and is never set independently.
type Outcome struct {
	Endpoint        string        `json:"endpoint"`
	Method          Method        `json:"method"`
	ExpectedSuccess bool          `json:"expectedSuccess"`
	StatusCode      int           `json:"statusCode"`
	Success         bool          `json:"success"`
	Payload         Payload       `json:"payload"`
	ErrorMessage    string        `json:"errorMessage,omitempty"`
	Latency         time.Duration `json:"latency"`
}

// Classify compares a response status against the caller's expectation. A status of zero means
// there was no response, which can never satisfy any expectation.
func Classify(statusCode int, expectSuccess bool) bool {
	if statusCode == 0 {
		return false
	}
	return (statusCode < 400) == expectSuccess
}

// Transport returns true if the call failed before any response status was received.
func (o Outcome) Transport() bool {
	return o.StatusCode == 0
}

// ClientError returns true if the backend answered with a 4xx status.
func (o Outcome) ClientError() bool {
	return o.StatusCode >= 400 && o.StatusCode < 500
}

func (o Outcome) String() string {
	status := "PASS"
	if !o.Success {
		status = "FAIL"
	}
	s := fmt.Sprintf("%s %s %s (%d) - %.3fs", status, o.Method, o.Endpoint, o.StatusCode, o.Latency.Seconds())
	if o.ErrorMessage != "" {
		s += ": " + o.ErrorMessage
	}
	return s
}
