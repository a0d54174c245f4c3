package domain

import (
	"fmt"
	"time"
)

// PingResult represents the result of a ping operation.
type PingResult struct {
	Message string
	Latency time.Duration
}

// NewPingResult creates a PingResult for the given gateway latency.
func NewPingResult(latency time.Duration) *PingResult {
	return &PingResult{
		Message: fmt.Sprintf("**Pong:** %d ms", latency.Milliseconds()),
		Latency: latency,
	}
}
