// Package nitrogen provides an embeddable real-time perception-action
// agent: it captures screen frames at a fixed cadence, queries a remote
// policy service for gamepad-shaped actions, maps them to keyboard and
// mouse input and injects them into the OS. A recording mode persists
// time-aligned frame/action pairs of the operator's own play for training
// data collection. It can be used as a standalone CLI application or
// embedded as a library in other Go programs.
//
// # Basic Usage
//
// To embed the agent in your application:
//
//	cfg := nitrogen.DefaultConfig()
//	cfg.Process = "game"
//	cfg.ServiceURL = "http://127.0.0.1:5000"
//
//	agent, err := nitrogen.New(nitrogen.ModeLive, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ctx := context.Background()
//	if err := agent.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	// ... run until shutdown signal ...
//
//	if err := agent.Stop(); err != nil {
//	    log.Printf("shutdown error: %v", err)
//	}
//
// # Modes
//
// [ModeLive] drives the target with actions from the policy endpoint.
// [ModeRecord] leaves the operator in control and records what they do,
// one frame/action pair per tick, under the configured output directory.
//
// # Configuration
//
// Create a [Config] with [DefaultConfig] and adjust what you need. The
// adapter parameters (deadzone, mouse sensitivity, delta cap, trigger
// threshold) are validated at New; malformed values are rejected before
// anything starts.
//
// # Dependency Injection
//
// For testing, you can inject custom implementations of external
// dependencies:
//
//	agent, err := nitrogen.New(nitrogen.ModeLive, cfg,
//	    nitrogen.WithHTTPClient(mockClient),
//	    nitrogen.WithFrameSource(fakeSource),
//	    nitrogen.WithLogger(customLogger),
//	)
//
// # Lifecycle States
//
// A Nitrogen instance can be in one of five states: [StateStopped],
// [StateStarting], [StateRunning], [StateStopping], or [StateCrashed].
// Use [Nitrogen.Status] to query the current state; [Nitrogen.WaitUntilDone]
// blocks until a terminal state.
package nitrogen
