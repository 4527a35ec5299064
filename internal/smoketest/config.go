// Package smoketest drives a running signup service over HTTP with generated
// submissions and checks each response against the expected outcome.
package smoketest

import "time"

// Config holds configuration for a smoke run.
type Config struct {
	BaseURL      string        // Base URL of the service
	Submissions  int           // Number of submissions to send
	InvalidEvery int           // Every Nth submission is malformed; 0 sends only valid ones
	Workers      int           // Number of concurrent workers
	Timeout      time.Duration // HTTP request timeout
	Verbose      bool          // Log every response
}

// Submission is one generated form payload and what the service should do with it.
type Submission struct {
	Name        string `json:"name"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Position    string `json:"position"`
	Description string `json:"description"`

	expectInvalid bool
}

// Response mirrors the body of POST /api/submissions.
type Response struct {
	SessionID string            `json:"session_id"`
	Status    *string           `json:"status"`
	Message   *string           `json:"message"`
	Errors    map[string]string `json:"errors"`
}

// Stats holds run statistics.
type Stats struct {
	Generated  int
	Submitted  int
	Accepted   int // 200 with a success banner
	APIErrors  int // 200 with an error banner
	Rejected   int // 422
	Conflicts  int // 409
	Failed     int // transport errors and unexpected codes
	Mismatched int // outcome differs from the generated expectation
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
}
