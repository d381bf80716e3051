package speed

import (
	"errors"
	"testing"

	"github.com/notyesbut/NitroGen/internal/adapters/log"
	"github.com/notyesbut/NitroGen/internal/domain"
)

type fakeHook struct {
	setCalls   int
	resetCalls int
	lastFactor float64
	setErr     error
}

func (h *fakeHook) Set(factor float64) error {
	h.setCalls++
	h.lastFactor = factor
	return h.setErr
}

func (h *fakeHook) Reset() error {
	h.resetCalls++
	return nil
}

func TestApplyRequiresOptIn(t *testing.T) {
	c := New(false, &fakeHook{}, log.NewNoopLogger())
	if err := c.Apply(2.0); !errors.Is(err, domain.ErrUnsupported) {
		t.Fatalf("Apply without opt-in err = %v, want ErrUnsupported", err)
	}
}

func TestApplyValidatesFactor(t *testing.T) {
	c := New(true, &fakeHook{}, log.NewNoopLogger())
	for _, factor := range []float64{0, -1} {
		if err := c.Apply(factor); !errors.Is(err, domain.ErrInvalidConfig) {
			t.Errorf("Apply(%v) err = %v, want ErrInvalidConfig", factor, err)
		}
	}
}

func TestApplyAndRestore(t *testing.T) {
	hook := &fakeHook{}
	c := New(true, hook, log.NewNoopLogger())

	if err := c.Apply(3.5); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if hook.setCalls != 1 || hook.lastFactor != 3.5 {
		t.Fatalf("hook set calls = %d factor = %v", hook.setCalls, hook.lastFactor)
	}
	if err := c.Restore(); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if hook.resetCalls != 1 {
		t.Fatalf("hook reset calls = %d, want 1", hook.resetCalls)
	}
}

func TestApplyFailureIsNotRetried(t *testing.T) {
	hook := &fakeHook{setErr: errors.New("device busy")}
	c := New(true, hook, log.NewNoopLogger())

	if err := c.Apply(2.0); err == nil {
		t.Fatal("Apply should surface hook failure")
	}
	if hook.setCalls != 1 {
		t.Fatalf("hook set calls = %d, want exactly 1", hook.setCalls)
	}
	// Nothing was applied, so Restore must not touch the hook.
	if err := c.Restore(); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if hook.resetCalls != 0 {
		t.Fatalf("hook reset calls = %d, want 0", hook.resetCalls)
	}
}
