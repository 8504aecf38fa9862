/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package pipeline

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/friendsincode/skald/mode"
)

// Context is the patch-scoped shared state handed to every element's Read.
// It is created once per patch run and torn down with it; it is never shared
// across unrelated runs. Execution is single-threaded, so no locking is done.
type Context struct {
	// Ctx carries cancellation and tracing for blocking calls made inside
	// element Reads.
	Ctx context.Context

	Logger zerolog.Logger

	// Mode is the run-wide difficulty knob; per-term options may override it
	// locally without touching this field.
	Mode mode.Mode

	// RNG is the run's randomness source. Callers wanting reproducible output
	// seed it explicitly; it is never the process-global generator.
	RNG *rand.Rand

	explanations []string
	feedback     []string
}

// NewContext builds the shared state for one patch run.
func NewContext(ctx context.Context, logger zerolog.Logger, m mode.Mode, rng *rand.Rand) *Context {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &Context{
		Ctx:    ctx,
		Logger: logger,
		Mode:   m,
		RNG:    rng,
	}
}

// AddExplanation records a short description of what a stage selected. The
// orchestrator reads the accumulated list once at the end to build the
// playlist description.
func (c *Context) AddExplanation(format string, args ...any) {
	c.explanations = append(c.explanations, fmt.Sprintf(format, args...))
}

// Explanations returns the per-stage descriptions in append order.
func (c *Context) Explanations() []string { return c.explanations }

// AddFeedback records a user-facing caveat, e.g. an artist with very few
// similar artists available.
func (c *Context) AddFeedback(format string, args ...any) {
	c.feedback = append(c.feedback, fmt.Sprintf(format, args...))
}

// Feedback returns the accumulated caveats in append order.
func (c *Context) Feedback() []string { return c.feedback }
