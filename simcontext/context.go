// Package simcontext implements the simulation context: the process-local
// configuration object carrying path/step counts, the master seed and
// RNG state, thread count, antithetic flag, and the last-error slot.
//
// Every reader tolerates a nil *Context by returning its zero-valued
// default without error; every writer on a nil *Context is a no-op.
// This null tolerance is a deliberate API contract carried over from the
// engine's C-heritage design, not a Go idiosyncrasy.
package simcontext

import (
	"github.com/bcdannyboy/mcengine/mcerrors"
	"github.com/bcdannyboy/mcengine/rng"
)

const (
	DefaultPathCount = 100_000
	DefaultStepCount = 252
	DefaultThreads   = 1
)

// Context is a process-local simulation configuration. The zero value is
// not usable directly; construct with New.
type Context struct {
	pathCount  int
	stepCount  int
	seed       uint64
	threads    int
	antithetic bool

	masterRNG rng.State
	lastError mcerrors.Code
}

// New constructs a Context with the given seed and the documented
// defaults for every other field.
func New(seed uint64) *Context {
	return &Context{
		pathCount: DefaultPathCount,
		stepCount: DefaultStepCount,
		seed:      seed,
		threads:   DefaultThreads,
		masterRNG: rng.Seed(seed),
	}
}

// PathCount returns the configured path count, or 0 for a nil Context.
func (c *Context) PathCount() int {
	if c == nil {
		return 0
	}
	return c.pathCount
}

// SetPathCount sets the path count. A zero or negative value is
// rejected silently, keeping the prior value. A no-op on a nil Context.
func (c *Context) SetPathCount(n int) {
	if c == nil || n <= 0 {
		return
	}
	c.pathCount = n
}

// StepCount returns the configured step count, or 0 for a nil Context.
func (c *Context) StepCount() int {
	if c == nil {
		return 0
	}
	return c.stepCount
}

// SetStepCount sets the step count. A zero or negative value is
// rejected silently. A no-op on a nil Context.
func (c *Context) SetStepCount(n int) {
	if c == nil || n <= 0 {
		return
	}
	c.stepCount = n
}

// Seed returns the master seed, or 0 for a nil Context.
func (c *Context) Seed() uint64 {
	if c == nil {
		return 0
	}
	return c.seed
}

// Threads returns the configured thread count (>=1), or 0 for a nil
// Context.
func (c *Context) Threads() int {
	if c == nil {
		return 0
	}
	return c.threads
}

// SetThreads sets the thread count. Values below 1 are rejected
// silently. A no-op on a nil Context.
func (c *Context) SetThreads(n int) {
	if c == nil || n < 1 {
		return
	}
	c.threads = n
}

// Antithetic reports whether antithetic variance reduction is enabled,
// or false for a nil Context.
func (c *Context) Antithetic() bool {
	if c == nil {
		return false
	}
	return c.antithetic
}

// SetAntithetic toggles antithetic variance reduction. A no-op on a nil
// Context.
func (c *Context) SetAntithetic(v bool) {
	if c == nil {
		return
	}
	c.antithetic = v
}

// MasterRNG returns a copy of the master RNG state. Callers must not
// mutate the context's own state through it; per-thread substreams are
// derived via State.JumpN on this copy.
func (c *Context) MasterRNG() rng.State {
	if c == nil {
		return rng.Seed(0)
	}
	return c.masterRNG
}

// LastError returns the last-error slot's code, or CodeSuccess for a
// nil Context.
func (c *Context) LastError() mcerrors.Code {
	if c == nil {
		return mcerrors.CodeSuccess
	}
	return c.lastError
}

// setError records err's code into the last-error slot. A no-op on a
// nil Context, matching the contract that pricers with a nil context
// return zero without touching any error slot.
func (c *Context) setError(err error) {
	if c == nil {
		return
	}
	c.lastError = mcerrors.CodeFor(err)
}

// Fail records err into the last-error slot (no-op if c is nil) and
// returns err unchanged, for use as `return 0, ctx.Fail(err)` at pricer
// call sites.
func (c *Context) Fail(err error) error {
	c.setError(err)
	return err
}

// ClearError resets the last-error slot to CodeSuccess. A no-op on a
// nil Context.
func (c *Context) ClearError() {
	if c == nil {
		return
	}
	c.lastError = mcerrors.CodeSuccess
}
