package domain

import "errors"

// Domain errors represent error conditions in the nitrogen domain.
// These errors are returned by the public API and can be checked with errors.Is.
var (
	// ErrAlreadyRunning is returned when Start() is called on a running agent.
	ErrAlreadyRunning = errors.New("nitrogen: already running")

	// ErrNotRunning is returned when Stop() is called on a stopped agent.
	ErrNotRunning = errors.New("nitrogen: not running")

	// ErrShutdownTimeout is returned when graceful shutdown times out.
	ErrShutdownTimeout = errors.New("nitrogen: shutdown timeout")

	// ErrInvalidConfig is returned when configuration validation fails.
	// Configuration errors are startup-fatal; the loop never starts.
	ErrInvalidConfig = errors.New("nitrogen: invalid configuration")

	// ErrServiceUnavailable is returned by the policy client when the
	// inference endpoint cannot be reached within the request timeout.
	ErrServiceUnavailable = errors.New("nitrogen: inference service unavailable")

	// ErrMalformedResponse is returned by the policy client when the
	// response does not parse into the expected action shape.
	ErrMalformedResponse = errors.New("nitrogen: malformed inference response")

	// ErrWriteFailure is returned by the recorder when durable storage
	// cannot accept an entry. It is escalated to the loop, which decides
	// to abort the run or continue without persistence.
	ErrWriteFailure = errors.New("nitrogen: record write failure")

	// ErrOutOfOrder is returned by the recorder when an append would
	// violate the strict frame-id ordering of the run.
	ErrOutOfOrder = errors.New("nitrogen: out-of-order append")

	// ErrRunClosed is returned when appending to a closed run.
	ErrRunClosed = errors.New("nitrogen: run closed")

	// ErrRunComplete is reported by the recorder once a configured
	// max-frame-count or max-duration bound is reached. It signals the
	// loop to stop; it is not a failure.
	ErrRunComplete = errors.New("nitrogen: run complete")

	// ErrUnsupported is returned by platform adapters (input injection,
	// raw input sampling, process targeting) on platforms without an
	// implementation.
	ErrUnsupported = errors.New("nitrogen: not supported on this platform")
)
