package nitrogen

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"testing"
	"time"

	fsAdapter "github.com/notyesbut/NitroGen/internal/adapters/fs"
	logAdapter "github.com/notyesbut/NitroGen/internal/adapters/log"
	"github.com/notyesbut/NitroGen/internal/domain"
)

type stubSource struct {
	nextID uint64
}

func (s *stubSource) Grab(ctx context.Context) (domain.Frame, error) {
	if err := ctx.Err(); err != nil {
		return domain.Frame{}, err
	}
	s.nextID++
	return domain.Frame{
		ID:        s.nextID,
		Timestamp: time.Now(),
		Width:     4,
		Height:    4,
		Image:     image.NewRGBA(image.Rect(0, 0, 4, 4)),
	}, nil
}

func (s *stubSource) Close() error { return nil }

type stubPolicy struct {
	pingErr error
	action  domain.SourceAction
}

func (p *stubPolicy) Infer(ctx context.Context, frame domain.Frame) (domain.SourceAction, error) {
	return p.action, nil
}

func (p *stubPolicy) Ping(ctx context.Context) error { return p.pingErr }

type stubInjector struct {
	applies int
}

func (i *stubInjector) Apply(prev, next domain.TargetAction) error {
	i.applies++
	return nil
}

func (i *stubInjector) Emitted() uint64 { return 0 }

func fastTestConfig() Config {
	cfg := DefaultConfig()
	cfg.Width = 4
	cfg.Height = 4
	cfg.FPS = 500
	return cfg
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := fastTestConfig()
	cfg.Adapter = "joystick"

	if _, err := New(ModeLive, cfg); !errors.Is(err, domain.ErrInvalidConfig) {
		t.Fatalf("New err = %v, want ErrInvalidConfig", err)
	}
}

func TestStartFailsWhenPolicyUnreachable(t *testing.T) {
	agent, err := New(ModeLive, fastTestConfig(),
		WithFrameSource(&stubSource{}),
		WithPolicyClient(&stubPolicy{pingErr: fmt.Errorf("%w: refused", domain.ErrServiceUnavailable)}),
		WithInjector(&stubInjector{}),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	err = agent.Start(context.Background())
	if !errors.Is(err, domain.ErrServiceUnavailable) {
		t.Fatalf("Start err = %v, want ErrServiceUnavailable", err)
	}
	if agent.Status() != StateCrashed {
		t.Errorf("Status = %v, want StateCrashed", agent.Status())
	}
}

func TestLiveRunRecordsAlignedPairs(t *testing.T) {
	root := t.TempDir()
	recorder := fsAdapter.NewRecorder(root, 3, 0, logAdapter.NewNoopLogger())
	inj := &stubInjector{}

	agent, err := New(ModeLive, fastTestConfig(),
		WithFrameSource(&stubSource{}),
		WithPolicyClient(&stubPolicy{action: domain.SourceAction{Buttons: []string{"a"}}}),
		WithInjector(inj),
		WithRecorder(recorder),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := agent.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if s := agent.WaitUntilDone(ctx); s != StateStopped {
		t.Fatalf("terminal state = %v, want StateStopped", s)
	}

	run := agent.Run()
	if run.ID == "" {
		t.Fatal("no run recorded")
	}
	if err := recorder.Close(); err != nil {
		t.Fatalf("close recorder: %v", err)
	}

	frames, err := os.ReadDir(filepath.Join(root, run.ID, "frames"))
	if err != nil {
		t.Fatalf("read frames dir: %v", err)
	}
	if len(frames) != 3 {
		t.Errorf("frame files = %d, want 3", len(frames))
	}
	if got := agent.Stats().RecordedEntries; got != 3 {
		t.Errorf("recorded entries = %d, want 3", got)
	}
	if inj.applies == 0 {
		t.Error("injector never applied an action")
	}
}

func TestStartTwiceRejected(t *testing.T) {
	agent, err := New(ModeLive, fastTestConfig(),
		WithFrameSource(&stubSource{}),
		WithPolicyClient(&stubPolicy{}),
		WithInjector(&stubInjector{}),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := agent.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer agent.Stop()

	if err := agent.Start(context.Background()); !errors.Is(err, domain.ErrAlreadyRunning) {
		t.Fatalf("second Start err = %v, want ErrAlreadyRunning", err)
	}
}

func TestStopWithoutStart(t *testing.T) {
	agent, err := New(ModeLive, fastTestConfig(),
		WithFrameSource(&stubSource{}),
		WithPolicyClient(&stubPolicy{}),
		WithInjector(&stubInjector{}),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := agent.Stop(); !errors.Is(err, domain.ErrNotRunning) {
		t.Fatalf("Stop err = %v, want ErrNotRunning", err)
	}
}

func TestStopFileEndsRun(t *testing.T) {
	stopPath := filepath.Join(t.TempDir(), "stop")
	cfg := fastTestConfig()
	cfg.StopFile = stopPath

	agent, err := New(ModeLive, cfg,
		WithFrameSource(&stubSource{}),
		WithPolicyClient(&stubPolicy{}),
		WithInjector(&stubInjector{}),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := agent.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}

	if err := os.WriteFile(stopPath, nil, 0o644); err != nil {
		t.Fatalf("write stop file: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if s := agent.WaitUntilDone(ctx); s != StateStopped {
		t.Fatalf("terminal state = %v, want StateStopped after stop file", s)
	}
}
