// Package ports defines the interfaces (ports) that connect the loop in
// internal/app to infrastructure adapters.
//
// Ports are the boundaries between the application core and the outside
// world. They define what the loop needs from external systems (frames,
// policy actions, input injection, raw input sampling, durable recording)
// without specifying how those needs are fulfilled.
//
// # Port Interfaces
//
//   - [FrameSource]: Produces timestamped frames on demand
//   - [PolicyClient]: Sends a frame to the inference service, returns an action
//   - [ControllerAdapter]: Maps a source action vector to a target vector
//   - [Injector]: Applies a target action transition to the OS
//   - [PadInjector]: Applies a source action to a virtual gamepad
//   - [RawSampler]: Accumulates raw mouse deltas between ticks
//   - [KeyStateSampler]: Samples held keys and mouse buttons from hardware
//   - [Recorder]: Persists aligned frame/action pairs for a run
//   - [StopSignal]: Cooperative termination, polled once per tick
//   - [SpeedController]: Opaque opt-in process speed capability
//   - [Logger]: Structured logging abstraction
//   - [HTTPClient]: HTTP request abstraction for dependency injection
//
// The application layer (internal/app) depends only on these interfaces.
// Infrastructure adapters (internal/adapters) implement them, which keeps
// the loop testable with fakes and the platform-specific code swappable.
package ports
