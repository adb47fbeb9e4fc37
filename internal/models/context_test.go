package models

import (
	"fmt"
	"slices"
	"sync"
	"testing"
)

func TestRunContextConcurrentAppend(t *testing.T) {
	rc := NewRunContext(false)

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Go(func() {
			rc.Append(fmt.Sprintf("line %d", i))
			rc.AddError(ErrTask)
		})
	}
	wg.Wait()

	if got := len(rc.Output()); got != 50 {
		t.Errorf("expected 50 output entries, got %d", got)
	}
	if got := rc.Errors(); !slices.Equal(got, []ErrorTag{ErrTask}) {
		t.Errorf("errors = %v, want a single TaskError", got)
	}
}

func TestRunContextQuiet(t *testing.T) {
	rc := NewRunContext(true)
	rc.Inform("status")
	rc.Append("task output")

	if got := rc.Output(); !slices.Equal(got, []string{"task output"}) {
		t.Errorf("output = %q", got)
	}
	if rc.HasErrors() {
		t.Error("new context should have no errors")
	}

	rc.AddError(ErrGitRepo)
	rc.AddError(ErrGetRecentFiles)
	if !rc.HasError(ErrGitRepo) || rc.HasError(ErrTask) {
		t.Errorf("unexpected error set %v", rc.Errors())
	}
	if got := rc.Errors(); !slices.Equal(got, []ErrorTag{ErrGetRecentFiles, ErrGitRepo}) {
		t.Errorf("errors should be sorted, got %v", got)
	}
}

func TestRunContextOutputIsCopy(t *testing.T) {
	rc := NewRunContext(false)
	rc.Append("a")
	out := rc.Output()
	out[0] = "changed"
	if rc.Output()[0] != "a" {
		t.Error("Output must return a copy")
	}
}
