package executor

import (
	"context"
	"errors"
	"slices"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/spachava753/lint-recently/internal/messages"
	"github.com/spachava753/lint-recently/internal/models"
)

// recorder builds leaf steps that log their titles in completion order.
type recorder struct {
	mu   sync.Mutex
	ran  []string
	live atomic.Int32
	peak atomic.Int32
}

func (r *recorder) step(title string, fail bool, delay time.Duration) *Step {
	return &Step{
		Title: title,
		Run: func(ctx context.Context, rc *models.RunContext) error {
			n := r.live.Add(1)
			for {
				p := r.peak.Load()
				if n <= p || r.peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(delay)
			r.live.Add(-1)

			r.mu.Lock()
			r.ran = append(r.ran, title)
			r.mu.Unlock()
			if fail {
				rc.AddError(models.ErrTask)
				return &TaskError{Command: title, Tag: "1"}
			}
			return nil
		},
	}
}

func (r *recorder) titles() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.ran)
}

func TestRunnerSerialExitOnError(t *testing.T) {
	rec := &recorder{}
	rc := models.NewRunContext(true)

	err := NewRunner(rc, nil, 0).Run(context.Background(), []*Step{
		rec.step("lint", false, 0),
		rec.step("format", true, 0),
		rec.step("never", false, 0),
	}, Policy{Concurrency: 1, ExitOnError: true})

	if !errors.Is(err, ErrTask) {
		t.Fatalf("expected ErrTask, got %v", err)
	}
	if got := rec.titles(); !slices.Equal(got, []string{"lint", "format"}) {
		t.Errorf("ran %q, want lint then format", got)
	}
}

func TestRunnerIsolatesFailures(t *testing.T) {
	rec := &recorder{}
	rc := models.NewRunContext(true)

	err := NewRunner(rc, nil, 0).Run(context.Background(), []*Step{
		rec.step("a", true, 0),
		rec.step("b", false, 0),
		rec.step("c", true, 0),
	}, Policy{Concurrency: 1})

	if err == nil {
		t.Fatal("expected joined error")
	}
	if got := rec.titles(); !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Errorf("ran %q, want all steps", got)
	}
	if !rc.HasError(models.ErrTask) {
		t.Error("expected TaskError in context")
	}
}

func TestRunnerConcurrencyLimit(t *testing.T) {
	tests := []struct {
		name     string
		limit    int
		maxProcs int
		wantPeak int32
	}{
		{name: "serial", limit: 1, wantPeak: 1},
		{name: "capped", limit: 2, wantPeak: 2},
		{name: "process cap", limit: 0, maxProcs: 2, wantPeak: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			var steps []*Step
			for _, title := range []string{"a", "b", "c", "d", "e", "f"} {
				steps = append(steps, rec.step(title, false, 20*time.Millisecond))
			}

			rc := models.NewRunContext(true)
			if err := NewRunner(rc, nil, tt.maxProcs).Run(context.Background(), steps, Policy{Concurrency: tt.limit}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(rec.titles()) != len(steps) {
				t.Errorf("ran %d steps, want %d", len(rec.titles()), len(steps))
			}
			if peak := rec.peak.Load(); peak > tt.wantPeak {
				t.Errorf("peak concurrency %d exceeds %d", peak, tt.wantPeak)
			}
		})
	}
}

func TestRunnerNestedGroups(t *testing.T) {
	rec := &recorder{}
	rc := models.NewRunContext(false)
	logger := &recordingLogger{}

	plan := []*Step{
		{
			Title:  "Running tasks...",
			Policy: Policy{Concurrency: 1},
			Children: []*Step{
				{
					Title:    "Running tasks for *.js",
					Policy:   Policy{Concurrency: 1, ExitOnError: true},
					Children: []*Step{rec.step("eslint", false, 0)},
				},
				{
					Title:    "Running tasks for *.md",
					Skip:     func() string { return "No recent files match *.md" },
					Children: []*Step{rec.step("prettier", false, 0)},
				},
			},
		},
	}

	if err := NewRunner(rc, logger, 0).Run(context.Background(), plan, Policy{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := rec.titles(); !slices.Equal(got, []string{"eslint"}) {
		t.Errorf("ran %q, want only eslint", got)
	}

	want := []string{
		"[STARTED] Running tasks...",
		"[STARTED] Running tasks for *.js",
		"[STARTED] eslint",
		"[SUCCESS] eslint",
		"[SUCCESS] Running tasks for *.js",
		"[SKIPPED] No recent files match *.md",
		"[SUCCESS] Running tasks...",
	}
	if got := logger.lines(); !slices.Equal(got, want) {
		t.Errorf("progress lines:\n got %q\nwant %q", got, want)
	}
}

func TestRunnerQuietSuppressesProgress(t *testing.T) {
	rec := &recorder{}
	logger := &recordingLogger{}

	NewRunner(models.NewRunContext(true), logger, 0).Run(context.Background(), []*Step{
		rec.step("a", true, 0),
	}, Policy{})

	if lines := logger.lines(); len(lines) != 0 {
		t.Errorf("expected no progress when quiet, got %q", lines)
	}
}

func TestRunnerCancelledBeforeProcessSlot(t *testing.T) {
	rec := &recorder{}
	rc := models.NewRunContext(false)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewRunner(rc, &recordingLogger{}, 1).Run(ctx, []*Step{
		rec.step("eslint a.js", false, 0),
	}, Policy{})

	if !errors.Is(err, ErrTask) {
		t.Fatalf("expected task error, got %v", err)
	}
	var taskErr *TaskError
	if !errors.As(err, &taskErr) || taskErr.Tag != "KILLED" {
		t.Errorf("expected KILLED tag, got %v", err)
	}
	if !rc.HasError(models.ErrTask) {
		t.Error("expected run context to record the task error")
	}
	if ran := rec.titles(); len(ran) != 0 {
		t.Errorf("expected no step to run, got %q", ran)
	}
	want := messages.TaskFailedWithoutOutput("eslint a.js", "KILLED")
	if out := rc.Output(); !slices.Contains(out, want) {
		t.Errorf("expected %q in output, got %q", want, out)
	}
}
