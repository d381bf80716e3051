package ports

import (
	"context"
	"net/http"

	"github.com/notyesbut/NitroGen/internal/domain"
)

// PolicyClient is a stateless request/response wrapper around the inference
// endpoint: it sends a frame and returns a structured action.
type PolicyClient interface {
	// Infer submits the frame and returns the policy's action. Failures
	// are reported as wrapped domain.ErrServiceUnavailable (dial or
	// timeout) or domain.ErrMalformedResponse (response shape). The loop
	// treats a failed tick as a no-action tick; Infer is never retried
	// within a tick.
	Infer(ctx context.Context, frame domain.Frame) (domain.SourceAction, error)

	// Ping checks endpoint reachability. An unreachable endpoint is
	// startup-fatal for live-control mode.
	Ping(ctx context.Context) error
}

// HTTPClient abstracts HTTP operations for dependency injection.
// The standard *http.Client satisfies this interface.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
