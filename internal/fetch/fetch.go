// Package fetch retrieves raw upstream markup, directly when the
// network allows it and through a race of forwarding proxies when the
// execution environment is expected to block direct requests.
package fetch

import (
	"context"
	"errors"
	"fmt"
)

// Fetcher fetches a URL and returns the raw response body.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Environment reports whether direct upstream requests are expected to
// fail in the current execution context. It is injected rather than
// probed at runtime so the fallback policy is testable.
type Environment interface {
	DirectBlocked() bool
}

// StaticEnvironment is an Environment fixed at construction time.
type StaticEnvironment bool

// DirectBlocked reports the configured value.
func (e StaticEnvironment) DirectBlocked() bool {
	return bool(e)
}

// Error kinds surfaced by fetchers and the racer.
var (
	// ErrNetwork marks transport-level failures of a single request.
	ErrNetwork = errors.New("network failure")
	// ErrAllRoutesFailed means every racing route failed before any succeeded.
	ErrAllRoutesFailed = errors.New("all retrieval routes failed")
	// ErrRaceTimeout means the shared race deadline elapsed with no success.
	ErrRaceTimeout = errors.New("retrieval race timed out")
)

// StatusError reports a non-2xx upstream response.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.Code)
}
