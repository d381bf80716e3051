package app

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/notyesbut/NitroGen/internal/domain"
	"github.com/notyesbut/NitroGen/internal/ports"
)

// Mode selects what drives the loop's actions.
type Mode int

const (
	// ModeLive captures frames, queries the policy endpoint and injects
	// the mapped actions.
	ModeLive Mode = iota
	// ModeRecord captures frames and samples the operator's own input,
	// persisting time-aligned frame/action pairs.
	ModeRecord
)

// String returns the mode name used in logs and CLI flags.
func (m Mode) String() string {
	switch m {
	case ModeLive:
		return "live"
	case ModeRecord:
		return "record"
	default:
		return "unknown"
	}
}

// WriteFailurePolicy decides what a recorder write failure does to the
// loop. Never silent either way.
type WriteFailurePolicy int

const (
	// AbortOnWriteFailure stops the run. The default in record mode,
	// where losing entries defeats the point of running.
	AbortOnWriteFailure WriteFailurePolicy = iota
	// ContinueWithoutRecording drops the recorder and keeps acting.
	// Used when recording is an optional tap on a live run.
	ContinueWithoutRecording
)

// Stats is a snapshot of loop counters.
type Stats struct {
	Ticks           uint64
	DegradedTicks   uint64
	SkippedTicks    uint64
	RecordedEntries uint64
	Overruns        uint64
}

// Loop drives the fixed-cadence perception-action cycle. Exactly one
// goroutine runs Run; collaborators are owned by the loop for its
// duration.
type Loop struct {
	mode   Mode
	cfg    domain.RunConfig
	policy WriteFailurePolicy

	source   ports.FrameSource
	client   ports.PolicyClient
	adapter  ports.ControllerAdapter
	injector ports.Injector
	pad      ports.PadInjector
	sampler  ports.RawSampler
	keys     ports.KeyStateSampler
	recorder ports.Recorder
	stop     ports.StopSignal
	pacer    *Pacer
	logger   ports.Logger

	ticks     atomic.Uint64
	degraded  atomic.Uint64
	skipped   atomic.Uint64
	recorded  atomic.Uint64
	recording bool
}

// LoopDeps carries the collaborators a Loop needs. Mode decides which are
// required: live mode needs Client plus either Adapter+Injector or Pad;
// record mode needs Sampler, Keys and Recorder.
type LoopDeps struct {
	Source   ports.FrameSource
	Client   ports.PolicyClient
	Adapter  ports.ControllerAdapter
	Injector ports.Injector
	Pad      ports.PadInjector
	Sampler  ports.RawSampler
	Keys     ports.KeyStateSampler
	Recorder ports.Recorder
	Stop     ports.StopSignal
	Logger   ports.Logger
}

// NewLoop validates the dependency set for the mode and builds the loop.
func NewLoop(mode Mode, cfg domain.RunConfig, policy WriteFailurePolicy, deps LoopDeps) (*Loop, error) {
	if deps.Source == nil {
		return nil, fmt.Errorf("%w: frame source required", domain.ErrInvalidConfig)
	}
	if deps.Logger == nil {
		return nil, fmt.Errorf("%w: logger required", domain.ErrInvalidConfig)
	}
	switch mode {
	case ModeLive:
		if deps.Client == nil {
			return nil, fmt.Errorf("%w: policy client required in live mode", domain.ErrInvalidConfig)
		}
		if deps.Pad == nil && (deps.Adapter == nil || deps.Injector == nil) {
			return nil, fmt.Errorf("%w: live mode needs an adapter and injector, or a pad injector", domain.ErrInvalidConfig)
		}
		if deps.Pad != nil && deps.Recorder != nil {
			return nil, fmt.Errorf("%w: recording requires the keyboard-mouse adapter", domain.ErrInvalidConfig)
		}
	case ModeRecord:
		if deps.Sampler == nil || deps.Keys == nil {
			return nil, fmt.Errorf("%w: record mode needs input samplers", domain.ErrInvalidConfig)
		}
		if deps.Recorder == nil {
			return nil, fmt.Errorf("%w: record mode needs a recorder", domain.ErrInvalidConfig)
		}
	default:
		return nil, fmt.Errorf("%w: unknown mode %d", domain.ErrInvalidConfig, mode)
	}

	return &Loop{
		mode:      mode,
		cfg:       cfg,
		policy:    policy,
		source:    deps.Source,
		client:    deps.Client,
		adapter:   deps.Adapter,
		injector:  deps.Injector,
		pad:       deps.Pad,
		sampler:   deps.Sampler,
		keys:      deps.Keys,
		recorder:  deps.Recorder,
		stop:      deps.Stop,
		pacer:     NewPacer(cfg.Period()),
		logger:    deps.Logger,
		recording: deps.Recorder != nil,
	}, nil
}

// Stats returns a snapshot of the loop counters.
func (lp *Loop) Stats() Stats {
	return Stats{
		Ticks:           lp.ticks.Load(),
		DegradedTicks:   lp.degraded.Load(),
		SkippedTicks:    lp.skipped.Load(),
		RecordedEntries: lp.recorded.Load(),
		Overruns:        lp.pacer.Overruns(),
	}
}

// Run executes ticks until the context is cancelled, the stop signal
// fires, the recorder reaches its bounds or a write failure forces an
// abort. On exit all held inputs are released.
func (lp *Loop) Run(ctx context.Context) error {
	if lp.sampler != nil {
		if err := lp.sampler.Start(); err != nil {
			return fmt.Errorf("start raw input sampler: %w", err)
		}
		defer lp.sampler.Stop()
	}

	var (
		prevTarget = domain.NeutralTargetAction()
		prevSource = domain.NeutralSourceAction()
		runErr     error
	)

	for {
		if err := ctx.Err(); err != nil {
			break
		}
		if lp.stop != nil && lp.stop.Triggered() {
			lp.logger.Info("stop signal triggered")
			break
		}

		lp.pacer.Begin()
		done, err := lp.tick(ctx, &prevTarget, &prevSource)
		if err != nil {
			runErr = err
			break
		}
		if done {
			break
		}

		if err := lp.pacer.Wait(ctx); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			runErr = err
			break
		}
	}

	lp.release(prevTarget, prevSource)
	return runErr
}

// tick runs one cycle. done reports a graceful end of the run; err aborts
// it.
func (lp *Loop) tick(ctx context.Context, prevTarget *domain.TargetAction, prevSource *domain.SourceAction) (done bool, err error) {
	lp.ticks.Add(1)

	frame, err := lp.source.Grab(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return true, nil
		}
		lp.skipped.Add(1)
		lp.logger.Warn("capture failed, tick skipped", ports.Err(err))
		return false, nil
	}

	switch lp.mode {
	case ModeLive:
		return lp.liveTick(ctx, frame, prevTarget, prevSource)
	default:
		return lp.recordTick(frame, prevTarget)
	}
}

func (lp *Loop) liveTick(ctx context.Context, frame domain.Frame, prevTarget *domain.TargetAction, prevSource *domain.SourceAction) (bool, error) {
	src, err := lp.client.Infer(ctx, frame)
	if err != nil {
		if ctx.Err() != nil {
			return true, nil
		}
		lp.degraded.Add(1)
		lp.logger.Warn("inference failed, acting neutral",
			ports.Uint64("frame_id", frame.ID), ports.Err(err))
		src = domain.NeutralSourceAction()
	}

	if lp.pad != nil {
		// Injected policy clients may return out-of-range values; pad
		// actions keep the gamepad shape, so clamp here.
		src = src.Clamped()
		if err := lp.pad.Apply(*prevSource, src); err != nil {
			lp.degraded.Add(1)
			lp.logger.Warn("pad injection failed, tick input dropped", ports.Err(err))
			return false, nil
		}
		*prevSource = src
		return false, nil
	}

	target := lp.adapter.Map(src)
	if err := lp.injector.Apply(*prevTarget, target); err != nil {
		lp.degraded.Add(1)
		lp.logger.Warn("injection failed, tick input dropped", ports.Err(err))
		// Held state on the OS side is unknown; keep prev so the next
		// transition re-derives from the last acknowledged action.
		return false, nil
	}
	*prevTarget = target

	if lp.recording {
		return lp.persist(frame, target)
	}
	return false, nil
}

func (lp *Loop) recordTick(frame domain.Frame, prevTarget *domain.TargetAction) (bool, error) {
	keys, buttons := lp.keys.Sample()
	dx, dy, wheel := lp.sampler.Drain()

	target := domain.TargetAction{
		Keys:         keys,
		MouseButtons: buttons,
		MouseDX:      dx,
		MouseDY:      dy,
		Wheel:        wheel,
	}.Normalized()
	*prevTarget = target

	return lp.persist(frame, target)
}

// persist appends one pair. A reached bound ends the run gracefully; a
// write failure is escalated per the configured policy.
func (lp *Loop) persist(frame domain.Frame, target domain.TargetAction) (bool, error) {
	err := lp.recorder.Append(frame, target)
	switch {
	case err == nil:
		lp.recorded.Add(1)
		return false, nil
	case errors.Is(err, domain.ErrRunComplete):
		lp.recorded.Add(1)
		lp.logger.Info("run bound reached",
			ports.Uint64("entries", lp.recorded.Load()))
		return true, nil
	default:
		if lp.policy == ContinueWithoutRecording {
			lp.logger.Error("recorder write failed, continuing without recording", ports.Err(err))
			lp.recording = false
			lp.recorder = nil
			return false, nil
		}
		lp.logger.Error("recorder write failed, aborting run", ports.Err(err))
		return false, err
	}
}

// release returns all held inputs to neutral on loop exit.
func (lp *Loop) release(prevTarget domain.TargetAction, prevSource domain.SourceAction) {
	if lp.pad != nil {
		if err := lp.pad.Apply(prevSource, domain.NeutralSourceAction()); err != nil {
			lp.logger.Error("failed to release pad inputs", ports.Err(err))
		}
	}
	if lp.injector != nil {
		if err := lp.injector.Apply(prevTarget, domain.NeutralTargetAction()); err != nil {
			lp.logger.Error("failed to release held inputs", ports.Err(err))
		}
	}
}
