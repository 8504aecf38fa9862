/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package patch defines the playlist recipe interface and the runner that
// executes a recipe's element graph into a finished playlist.
package patch

import (
	"fmt"

	"github.com/friendsincode/skald/pipeline"
)

// Patch is a playlist recipe. Create builds the element graph for one run and
// returns its terminal node; the runner takes it from there. Patches carry
// their own inputs (prompt text, options) set at construction time, so Create
// needs nothing beyond the run context.
type Patch interface {
	Slug() string
	Description() string
	Create(pctx *pipeline.Context) (*pipeline.Node, error)
}

// Registry maps slugs to patches. Registering a slug twice replaces the
// earlier patch (last registered wins). Registration happens during setup,
// before any runs, so there is no locking.
type Registry struct {
	patches map[string]Patch
}

// NewRegistry returns an empty patch registry.
func NewRegistry() *Registry {
	return &Registry{patches: map[string]Patch{}}
}

// Register installs a patch under its slug.
func (r *Registry) Register(p Patch) {
	r.patches[p.Slug()] = p
}

// Get returns the patch registered under slug.
func (r *Registry) Get(slug string) (Patch, error) {
	p, ok := r.patches[slug]
	if !ok {
		return nil, fmt.Errorf("patch: no patch registered for slug %q", slug)
	}
	return p, nil
}

// Slugs returns the registered slugs in unspecified order.
func (r *Registry) Slugs() []string {
	out := make([]string, 0, len(r.patches))
	for slug := range r.patches {
		out = append(out, slug)
	}
	return out
}
