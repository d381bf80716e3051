package nitrogen

import (
	"context"
	"fmt"
	"image"
	"net/http"
	"sync"
	"time"

	"github.com/notyesbut/NitroGen/internal/adapters/capture"
	fsAdapter "github.com/notyesbut/NitroGen/internal/adapters/fs"
	"github.com/notyesbut/NitroGen/internal/adapters/inference"
	inputAdapter "github.com/notyesbut/NitroGen/internal/adapters/input"
	logAdapter "github.com/notyesbut/NitroGen/internal/adapters/log"
	"github.com/notyesbut/NitroGen/internal/adapters/rawinput"
	"github.com/notyesbut/NitroGen/internal/adapters/speed"
	"github.com/notyesbut/NitroGen/internal/adapters/vpad"
	"github.com/notyesbut/NitroGen/internal/app"
	"github.com/notyesbut/NitroGen/internal/cliconfig"
	"github.com/notyesbut/NitroGen/internal/domain"
	"github.com/notyesbut/NitroGen/internal/gamepad"
	"github.com/notyesbut/NitroGen/internal/ports"
)

// Nitrogen is the embeddable perception-action agent. Use New() to create
// an instance, then Start() to begin the loop.
type Nitrogen struct {
	mode      Mode
	config    Config
	opts      options
	lifecycle *app.Lifecycle
	logger    ports.Logger

	loop      *app.Loop
	recorder  ports.Recorder
	stop      ports.StopSignal
	speedCtl  ports.SpeedController
	retention *fsAdapter.Retention
	run       domain.Run

	mu     sync.RWMutex
	tdMu   sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a new Nitrogen instance with the given mode and
// configuration. The instance is created in StateStopped; call Start() to
// begin the loop. Returns an error if configuration is invalid.
func New(mode Mode, cfg Config, opts ...Option) (*Nitrogen, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	runCfg := cfg.RunConfig()
	if err := runCfg.Validate(); err != nil {
		return nil, err
	}

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	o := defaultOptions(httpClient)
	for _, opt := range opts {
		opt(&o)
	}

	logger := o.logger
	if logger == nil {
		logger = logAdapter.NewNoopLogger()
	}

	return &Nitrogen{
		mode:      mode,
		config:    cfg,
		opts:      o,
		lifecycle: app.NewLifecycle(logger),
		logger:    logger,
	}, nil
}

// Start resolves the capture target, verifies the policy endpoint (live
// mode), begins the run when recording and launches the loop goroutine.
// Startup failures leave the instance in StateCrashed and are returned
// synchronously; Start itself returns as soon as the loop is running.
func (n *Nitrogen) Start(ctx context.Context) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if !n.lifecycle.CanStart() {
		return domain.ErrAlreadyRunning
	}
	if err := n.lifecycle.TransitionTo(app.StateStarting, "Start() called"); err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	n.ctx = runCtx
	n.cancel = cancel
	n.lifecycle.SetCancel(cancel)

	deps, err := n.buildDeps(runCtx)
	if err != nil {
		cancel()
		_ = n.lifecycle.TransitionTo(app.StateCrashed, err.Error())
		return err
	}

	policy := app.AbortOnWriteFailure
	if n.mode == ModeLive {
		policy = app.ContinueWithoutRecording
	}
	loop, err := app.NewLoop(n.mode, n.config.RunConfig(), policy, deps)
	if err != nil {
		n.teardown()
		cancel()
		_ = n.lifecycle.TransitionTo(app.StateCrashed, err.Error())
		return err
	}
	n.loop = loop

	if n.retention != nil {
		n.lifecycle.AddWorker()
		go func() {
			defer n.lifecycle.WorkerDone()
			n.retention.Loop(runCtx, n.run.ID)
		}()
	}

	n.lifecycle.AddWorker()
	go func() {
		defer n.lifecycle.WorkerDone()

		if err := n.lifecycle.TransitionTo(app.StateRunning, "loop starting"); err != nil {
			n.logger.Error("failed to transition to running", ports.Err(err))
			return
		}

		err := loop.Run(runCtx)

		if err != nil && err != context.Canceled {
			n.logger.Error("loop error", ports.Err(err))
			_ = n.lifecycle.TransitionTo(app.StateCrashed, err.Error())
			return
		}
		// The loop can end on its own (stop file, run bound). Close the
		// run and reflect completion so callers polling Status see it.
		if n.lifecycle.State() == app.StateRunning {
			_ = n.lifecycle.TransitionTo(app.StateStopping, "loop finished")
			n.teardown()
			_ = n.lifecycle.TransitionTo(app.StateStopped, "loop finished")
		}
	}()

	return nil
}

// buildDeps wires the adapters for the configured mode. Everything in here
// is startup-fatal: an unresolvable target process, an unreachable policy
// endpoint in live mode, an unwritable run directory.
func (n *Nitrogen) buildDeps(ctx context.Context) (app.LoopDeps, error) {
	cfg := n.config
	runCfg := cfg.RunConfig()
	deps := app.LoopDeps{Logger: n.logger}

	// Frame source: explicit option, else resolved from the config.
	if n.opts.frameSource != nil {
		deps.Source = n.opts.frameSource
	} else {
		region, err := n.resolveRegion()
		if err != nil {
			return deps, fmt.Errorf("resolve capture target: %w", err)
		}
		deps.Source = capture.NewSource(region)
	}

	switch n.mode {
	case ModeLive:
		client := n.opts.policyClient
		if client == nil {
			client = inference.NewClient(cfg.ServiceURL, n.opts.httpClient, n.logger)
		}
		if err := client.Ping(ctx); err != nil {
			return deps, fmt.Errorf("policy endpoint unreachable: %w", err)
		}
		deps.Client = client

		if cfg.Adapter == cliconfig.AdapterPad {
			deps.Pad = vpad.New(cfg.DisableInput, n.logger)
		} else {
			deps.Adapter = gamepad.NewKM(runCfg)
			if n.opts.injector != nil {
				deps.Injector = n.opts.injector
			} else {
				deps.Injector = inputAdapter.New(cfg.DisableInput)
			}
		}

	case ModeRecord:
		sampler := rawinput.NewSampler()
		keys, err := rawinput.NewKeyState(runCfg.TrackedKeys, runCfg.TrackedMouseButtons)
		if err != nil {
			return deps, fmt.Errorf("key state sampler: %w", err)
		}
		deps.Sampler = sampler
		deps.Keys = keys
	}

	// Recorder: mandatory in record mode, optional tap in live mode.
	if n.mode == ModeRecord || n.opts.recorder != nil {
		recorder := n.opts.recorder
		if recorder == nil {
			recorder = fsAdapter.NewRecorder(cfg.OutDir, uint64(cfg.MaxFrames), cfg.MaxDuration, n.logger)
		}
		run, err := recorder.Begin(ctx, runCfg)
		if err != nil {
			return deps, fmt.Errorf("begin run: %w", err)
		}
		n.run = run
		n.recorder = recorder
		deps.Recorder = recorder

		if cfg.RetentionHighMB > 0 {
			n.retention = fsAdapter.NewRetention(cfg.OutDir,
				int64(cfg.RetentionHighMB)<<20, int64(cfg.RetentionLowMB)<<20, n.logger)
		}
	}

	if cfg.StopFile != "" {
		stop, err := fsAdapter.NewStopFile(cfg.StopFile, n.logger)
		if err != nil {
			n.teardown()
			return deps, fmt.Errorf("stop file watcher: %w", err)
		}
		n.stop = stop
		deps.Stop = stop
	}

	if cfg.EnableUnsafeSpeed {
		ctl := speed.New(true, n.opts.speedHook, n.logger)
		if err := ctl.Apply(cfg.SpeedFactor); err != nil {
			n.teardown()
			return deps, fmt.Errorf("apply speed factor: %w", err)
		}
		n.speedCtl = ctl
	}

	return deps, nil
}

// resolveRegion picks the capture rectangle: the target process window when
// one is configured, otherwise the requested size at the display origin.
func (n *Nitrogen) resolveRegion() (image.Rectangle, error) {
	if n.config.Process != "" {
		return capture.ResolveProcessRegion(n.config.Process, n.config.Width, n.config.Height)
	}
	return image.Rect(0, 0, n.config.Width, n.config.Height), nil
}

// Stop gracefully shuts down the loop: releases held inputs, closes the
// run and restores process speed. Returns nil on graceful shutdown,
// ErrShutdownTimeout if forced.
func (n *Nitrogen) Stop() error {
	n.mu.Lock()

	if !n.lifecycle.CanStop() {
		n.mu.Unlock()
		return domain.ErrNotRunning
	}
	if err := n.lifecycle.TransitionTo(app.StateStopping, "Stop() called"); err != nil {
		n.mu.Unlock()
		return err
	}
	if n.cancel != nil {
		n.cancel()
	}
	n.mu.Unlock()

	err := n.lifecycle.WaitWithTimeout(app.ShutdownTimeout)

	n.teardown()

	if err != nil {
		_ = n.lifecycle.TransitionTo(app.StateCrashed, "shutdown timeout")
	} else {
		_ = n.lifecycle.TransitionTo(app.StateStopped, "graceful shutdown")
	}
	return err
}

// teardown closes run resources. Safe to call more than once.
func (n *Nitrogen) teardown() {
	n.tdMu.Lock()
	defer n.tdMu.Unlock()
	if n.recorder != nil {
		if err := n.recorder.Close(); err != nil {
			n.logger.Error("close recorder", ports.Err(err))
		}
		n.recorder = nil
	}
	if n.stop != nil {
		if err := n.stop.Close(); err != nil {
			n.logger.Error("close stop watcher", ports.Err(err))
		}
		n.stop = nil
	}
	if n.speedCtl != nil {
		if err := n.speedCtl.Restore(); err != nil {
			n.logger.Error("restore speed", ports.Err(err))
		}
		n.speedCtl = nil
	}
}

// Status returns the current lifecycle state.
// Safe to call concurrently from any goroutine.
func (n *Nitrogen) Status() State {
	return convertState(n.lifecycle.State())
}

// Run returns the active run metadata. Zero value when not recording.
func (n *Nitrogen) Run() domain.Run {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.run
}

// Stats returns a snapshot of loop counters. Zero value before Start.
func (n *Nitrogen) Stats() Stats {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.loop == nil {
		return Stats{}
	}
	return n.loop.Stats()
}

// WaitUntilDone polls Status until the loop reaches a terminal state or
// the context ends. Convenience for CLIs that start then block.
func (n *Nitrogen) WaitUntilDone(ctx context.Context) State {
	t := time.NewTicker(100 * time.Millisecond)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return n.Status()
		case <-t.C:
			s := n.Status()
			if s == StateStopped || s == StateCrashed {
				return s
			}
		}
	}
}

func convertState(s app.State) State {
	switch s {
	case app.StateStopped:
		return StateStopped
	case app.StateStarting:
		return StateStarting
	case app.StateRunning:
		return StateRunning
	case app.StateStopping:
		return StateStopping
	case app.StateCrashed:
		return StateCrashed
	default:
		return StateStopped
	}
}
