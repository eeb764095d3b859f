// Package transport provides HTTP round-trip instrumentation for outbound
// provider calls.
package transport

import (
	"log"
	"net/http"
	"time"
)

// LoggingTransport logs one line per outbound request with its status and
// latency. It never retries; a failed call surfaces to the caller as-is.
type LoggingTransport struct {
	base http.RoundTripper
}

func WithRequestLogging(base http.RoundTripper) *LoggingTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &LoggingTransport{base: base}
}

func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.base.RoundTrip(req)
	elapsed := time.Since(start)
	if err != nil {
		log.Printf("%s %s failed after %s: %v", req.Method, req.URL.Path, elapsed, err)
		return resp, err
	}
	log.Printf("%s %s -> %d (%s)", req.Method, req.URL.Path, resp.StatusCode, elapsed)
	return resp, err
}
