package smoketest

import (
	"io"
	"os"
)

// ShowHelp prints usage information for the smoke tool.
func ShowHelp(w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	_, _ = io.WriteString(w, `Frontend Fusion Signup Smoke Tool
=================================

Sends generated signup submissions to a running service and checks that
valid ones reach the users API and malformed ones are rejected.

Usage:
  go run ./cmd/signup-smoke [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -n int
        Number of submissions (default 100)
  -invalid-every int
        Make every Nth submission malformed, 0 to disable (default 5)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 15s)
  -json
        Log as JSON lines
  -verbose
        Log every response
  -help
        Show this help message
`)
}
