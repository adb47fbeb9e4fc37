package models

import (
	"slices"
	"sync"
)

// RunContext accumulates the results of a single run. It is created once,
// shared by pointer with every task, and read at the end to decide the outcome.
// Only the error set and output list change after creation.
type RunContext struct {
	quiet bool

	mu     sync.Mutex
	errors map[ErrorTag]struct{}
	output []string
}

// NewRunContext creates an empty context. quiet is fixed for the lifetime of the run.
func NewRunContext(quiet bool) *RunContext {
	return &RunContext{
		quiet:  quiet,
		errors: make(map[ErrorTag]struct{}),
	}
}

// Quiet reports whether informational output is suppressed.
func (c *RunContext) Quiet() bool {
	return c.quiet
}

// AddError records a failure tag. Adding the same tag twice has no effect.
func (c *RunContext) AddError(tag ErrorTag) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errors[tag] = struct{}{}
}

// HasError reports whether tag was recorded.
func (c *RunContext) HasError(tag ErrorTag) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.errors[tag]
	return ok
}

// HasErrors reports whether any failure was recorded.
func (c *RunContext) HasErrors() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.errors) > 0
}

// Errors returns the recorded tags in sorted order.
func (c *RunContext) Errors() []ErrorTag {
	c.mu.Lock()
	defer c.mu.Unlock()
	tags := make([]ErrorTag, 0, len(c.errors))
	for tag := range c.errors {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	return tags
}

// Append adds an entry to the output list, in completion order.
func (c *RunContext) Append(entry string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.output = append(c.output, entry)
}

// Inform appends entry unless the context is quiet.
func (c *RunContext) Inform(entry string) {
	if c.quiet {
		return
	}
	c.Append(entry)
}

// Output returns a copy of the output list.
func (c *RunContext) Output() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.output)
}
