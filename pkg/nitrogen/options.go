package nitrogen

import (
	"net/http"

	"github.com/notyesbut/NitroGen/internal/adapters/speed"
	"github.com/notyesbut/NitroGen/internal/app"
	"github.com/notyesbut/NitroGen/internal/cliconfig"
	"github.com/notyesbut/NitroGen/internal/ports"
)

// Config holds the configuration for the agent.
// Use DefaultConfig() to get a Config with sensible defaults.
type Config = cliconfig.Config

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return cliconfig.DefaultConfig()
}

// Mode selects what drives the loop's actions.
type Mode = app.Mode

const (
	// ModeLive queries the policy endpoint and injects its actions.
	ModeLive = app.ModeLive
	// ModeRecord samples the operator's input and persists frame/action
	// pairs.
	ModeRecord = app.ModeRecord
)

// State is the lifecycle state reported by Status().
type State int

const (
	StateStopped State = iota
	StateStarting
	StateRunning
	StateStopping
	StateCrashed
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateStopped:
		return "Stopped"
	case StateStarting:
		return "Starting"
	case StateRunning:
		return "Running"
	case StateStopping:
		return "Stopping"
	case StateCrashed:
		return "Crashed"
	default:
		return "Unknown"
	}
}

// Stats is a snapshot of loop counters.
type Stats = app.Stats

// HTTPClient is the interface for making HTTP requests.
// *http.Client satisfies this interface.
type HTTPClient = ports.HTTPClient

// Logger is the interface for structured logging.
type Logger = ports.Logger

// LogField represents a structured log field.
type LogField = ports.Field

// SpeedHook is the external mechanism behind the opt-in speed capability.
type SpeedHook = speed.Hook

// Option configures optional behavior of Nitrogen.
type Option func(*options)

// options holds the optional configuration for a Nitrogen instance.
type options struct {
	httpClient   ports.HTTPClient
	logger       ports.Logger
	policyClient ports.PolicyClient
	frameSource  ports.FrameSource
	injector     ports.Injector
	recorder     ports.Recorder
	speedHook    speed.Hook
}

// defaultOptions returns options with sensible defaults.
func defaultOptions(client *http.Client) options {
	return options{
		httpClient: client,
	}
}

// WithHTTPClient sets a custom HTTP client for policy requests.
// If not provided, a default client with the configured timeout is used.
func WithHTTPClient(client HTTPClient) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithLogger sets a custom logger for structured logging.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithPolicyClient replaces the HTTP policy client entirely. Useful for
// embedding a local policy in-process.
func WithPolicyClient(client ports.PolicyClient) Option {
	return func(o *options) {
		o.policyClient = client
	}
}

// WithFrameSource replaces the screen-capture frame source.
func WithFrameSource(source ports.FrameSource) Option {
	return func(o *options) {
		o.frameSource = source
	}
}

// WithInjector replaces the OS input injector.
func WithInjector(injector ports.Injector) Option {
	return func(o *options) {
		o.injector = injector
	}
}

// WithRecorder sets a recorder. In live mode this turns recording on as an
// optional tap: write failures drop the recorder, not the run.
func WithRecorder(recorder ports.Recorder) Option {
	return func(o *options) {
		o.recorder = recorder
	}
}

// WithSpeedHook supplies the external speed mechanism used when
// EnableUnsafeSpeed is set. Without a hook, enabling the capability is a
// startup failure.
func WithSpeedHook(hook SpeedHook) Option {
	return func(o *options) {
		o.speedHook = hook
	}
}
