package observability

import (
	"context"
	"testing"
	"time"
)

type recordingHooks struct {
	NoopLayoutHooks
	phases   []string
	warnings []string
}

func (r *recordingHooks) OnPhaseStart(_ context.Context, phase string) {
	r.phases = append(r.phases, phase)
}

func (r *recordingHooks) OnWarning(_ context.Context, w string) {
	r.warnings = append(r.warnings, w)
}

func TestDefaultHooksAreNoop(t *testing.T) {
	Reset()
	h := Layout()
	if h == nil {
		t.Fatal("Layout() returned nil")
	}
	// Must not panic.
	h.OnLayoutStart(context.Background(), 10, 12)
	h.OnPhaseStart(context.Background(), "ranking")
	h.OnPhaseComplete(context.Background(), "ranking", time.Millisecond, nil)
	h.OnLayoutComplete(context.Background(), time.Millisecond, nil)
	h.OnWarning(context.Background(), "w")
}

func TestSetLayoutHooks(t *testing.T) {
	defer Reset()

	rec := &recordingHooks{}
	SetLayoutHooks(rec)

	Layout().OnPhaseStart(context.Background(), "ordering")
	Layout().OnWarning(context.Background(), "edge a->b unrouted")

	if len(rec.phases) != 1 || rec.phases[0] != "ordering" {
		t.Errorf("phases = %v, want [ordering]", rec.phases)
	}
	if len(rec.warnings) != 1 {
		t.Errorf("warnings = %v, want one entry", rec.warnings)
	}
}

func TestSetLayoutHooks_NilIgnored(t *testing.T) {
	defer Reset()
	SetLayoutHooks(nil)
	if Layout() == nil {
		t.Error("nil registration should keep the previous hooks")
	}
}

func TestReset(t *testing.T) {
	SetLayoutHooks(&recordingHooks{})
	Reset()
	if _, ok := Layout().(NoopLayoutHooks); !ok {
		t.Error("Reset() should restore the no-op hooks")
	}
}
