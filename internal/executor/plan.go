package executor

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/spachava753/lint-recently/internal/messages"
	"github.com/spachava753/lint-recently/internal/models"
)

// Policy controls how the children of a group run.
type Policy struct {
	// Concurrency caps how many children run at once. 0 means no limit.
	Concurrency int
	// ExitOnError stops starting further children after the first failure.
	ExitOnError bool
}

// Step is a node in an execution plan. A step either runs Run or runs its
// Children under Policy.
type Step struct {
	Title string
	// Skip returns a non-empty reason when the step should not run.
	Skip     func() string
	Run      TaskFunc
	Children []*Step
	Policy   Policy
}

// SkipReason reports why s would be skipped, or "".
func (s *Step) SkipReason() string {
	if s.Skip == nil {
		return ""
	}
	return s.Skip()
}

// Runner executes plans against a shared RunContext. Progress lines go to the
// logger unless the context is quiet.
type Runner struct {
	rc     *models.RunContext
	logger models.Logger
	procs  *semaphore.Weighted
}

// NewRunner creates a runner. maxProcs bounds the number of leaf steps running
// at once across the whole plan; 0 means no bound.
func NewRunner(rc *models.RunContext, logger models.Logger, maxProcs int) *Runner {
	r := &Runner{rc: rc, logger: logger}
	if maxProcs > 0 {
		r.procs = semaphore.NewWeighted(int64(maxProcs))
	}
	return r
}

// Run executes steps under policy and returns the joined errors of the steps
// that failed. Failures are also recorded in the RunContext by the leaves.
func (r *Runner) Run(ctx context.Context, steps []*Step, policy Policy) error {
	return r.runGroup(ctx, steps, policy)
}

func (r *Runner) runGroup(ctx context.Context, steps []*Step, policy Policy) error {
	var (
		g      errgroup.Group
		mu     sync.Mutex
		errs   []error
		failed atomic.Bool
	)
	if policy.Concurrency > 0 {
		g.SetLimit(policy.Concurrency)
	}

	for _, step := range steps {
		g.Go(func() error {
			if policy.ExitOnError && failed.Load() {
				return nil
			}
			if err := r.runStep(ctx, step); err != nil {
				failed.Store(true)
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
			return nil
		})
	}
	g.Wait()

	return errors.Join(errs...)
}

func (r *Runner) runStep(ctx context.Context, step *Step) error {
	if reason := step.SkipReason(); reason != "" {
		r.progress("[SKIPPED] " + reason)
		return nil
	}

	r.progress("[STARTED] " + step.Title)
	var err error
	if step.Run != nil {
		err = r.runLeaf(ctx, step)
	} else {
		err = r.runGroup(ctx, step.Children, step.Policy)
	}
	if err != nil {
		r.progress("[FAILED] " + step.Title)
		return err
	}
	r.progress("[SUCCESS] " + step.Title)
	return nil
}

func (r *Runner) runLeaf(ctx context.Context, step *Step) error {
	if r.procs != nil {
		if err := r.procs.Acquire(ctx, 1); err != nil {
			// Cancelled before a process slot was free.
			r.rc.AddError(models.ErrTask)
			r.rc.Inform(messages.TaskFailedWithoutOutput(step.Title, "KILLED"))
			return &TaskError{Command: step.Title, Tag: "KILLED"}
		}
		defer r.procs.Release(1)
	}
	slog.Debug("running step", "title", step.Title)
	return step.Run(ctx, r.rc)
}

func (r *Runner) progress(line string) {
	if r.rc.Quiet() || r.logger == nil {
		return
	}
	r.logger.Log(line)
}
