/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package lbradio is the LB-Radio patch: it turns a radio prompt into an
// element graph with one candidate-gathering chain per term, feeding the
// weighted blend stage.
package lbradio

import (
	"fmt"

	"github.com/friendsincode/skald/blend"
	"github.com/friendsincode/skald/entities"
	"github.com/friendsincode/skald/mode"
	"github.com/friendsincode/skald/pipeline"
	"github.com/friendsincode/skald/prompt"
	"github.com/friendsincode/skald/search"
)

// Defaults for unset Options fields.
const (
	DefaultMaxRecordings       = 50
	DefaultMaxArtistOccurrence = 2
	DefaultMaxSimilarArtists   = 8
	DefaultCandidatesPerTerm   = 100
)

// FilterFunc decides whether a candidate recording may appear on the
// playlist. Returning false drops it. Host applications use this to wire
// user-level exclusions (hated recordings, skipped artists).
type FilterFunc func(*entities.Recording) bool

// Options tune one patch instance.
type Options struct {
	// MaxRecordings caps the playlist length.
	MaxRecordings int

	// MaxArtistOccurrence caps how often one artist credit may appear.
	MaxArtistOccurrence int

	// MaxSimilarArtists bounds similar-artist expansion per seed artist.
	MaxSimilarArtists int

	// CandidatesPerTerm bounds how many candidates each term gathers before
	// blending.
	CandidatesPerTerm int

	// KeepUnresolved passes recording stubs the resolver could not fill in
	// through to the blend instead of dropping them.
	KeepUnresolved bool

	// Filter, when set, is applied to every term's candidates after
	// resolution.
	Filter FilterFunc
}

func (o Options) withDefaults() Options {
	if o.MaxRecordings <= 0 {
		o.MaxRecordings = DefaultMaxRecordings
	}
	if o.MaxArtistOccurrence <= 0 {
		o.MaxArtistOccurrence = DefaultMaxArtistOccurrence
	}
	if o.MaxSimilarArtists <= 0 {
		o.MaxSimilarArtists = DefaultMaxSimilarArtists
	}
	if o.CandidatesPerTerm <= 0 {
		o.CandidatesPerTerm = DefaultCandidatesPerTerm
	}
	return o
}

// Patch builds LB-Radio element graphs for one prompt.
type Patch struct {
	reg    *search.Registry
	prompt string
	opts   Options
}

// New returns a patch for the given prompt, gathering candidates through the
// registry's capabilities.
func New(reg *search.Registry, promptText string, opts Options) *Patch {
	return &Patch{reg: reg, prompt: promptText, opts: opts.withDefaults()}
}

// Slug implements patch.Patch.
func (p *Patch) Slug() string { return "lb-radio" }

// Description implements patch.Patch.
func (p *Patch) Description() string { return "ListenBrainz Radio" }

// Create parses the prompt and wires one chain per term: candidate gathering,
// metadata resolution, the optional host filter, then the shared blend stage.
// Prompt errors come back as *prompt.ParseError.
func (p *Patch) Create(pctx *pipeline.Context) (*pipeline.Node, error) {
	terms, err := prompt.Parse(p.prompt)
	if err != nil {
		return nil, err
	}

	labels := make([]string, 0, len(terms))
	weights := make([]int, 0, len(terms))
	chains := make([]*pipeline.Node, 0, len(terms))

	for _, term := range terms {
		gen, err := p.termElement(term)
		if err != nil {
			return nil, err
		}

		cur := pipeline.NewNode(gen)

		resolve := pipeline.NewNode(&resolveElement{
			reg:         p.reg,
			dropMissing: !p.opts.KeepUnresolved,
		})
		if err := resolve.Connect(cur); err != nil {
			return nil, err
		}
		cur = resolve

		if p.opts.Filter != nil {
			filter := pipeline.NewNode(&filterElement{fn: p.opts.Filter})
			if err := filter.Connect(cur); err != nil {
				return nil, err
			}
			cur = filter
		}

		chains = append(chains, cur)
		labels = append(labels, term.String())
		weights = append(weights, term.Weight)
	}

	blendNode := pipeline.NewNode(blend.NewElement(labels, weights, blend.Options{
		MaxRecordings:       p.opts.MaxRecordings,
		MaxArtistOccurrence: p.opts.MaxArtistOccurrence,
	}))
	if err := blendNode.Connect(chains...); err != nil {
		return nil, err
	}
	return blendNode, nil
}

func (p *Patch) termElement(term prompt.Term) (pipeline.Element, error) {
	switch term.Entity {
	case prompt.EntityArtist:
		return &artistElement{
			reg:        p.reg,
			term:       term,
			maxSimilar: p.opts.MaxSimilarArtists,
			candidates: p.opts.CandidatesPerTerm,
		}, nil
	case prompt.EntityTag:
		return &tagElement{
			reg:        p.reg,
			term:       term,
			candidates: p.opts.CandidatesPerTerm,
		}, nil
	case prompt.EntityCollection:
		return newFeedElement(p.reg, search.FeedCollection, term, p.opts.CandidatesPerTerm), nil
	case prompt.EntityPlaylist:
		return newFeedElement(p.reg, search.FeedPlaylist, term, p.opts.CandidatesPerTerm), nil
	case prompt.EntityStats:
		return newFeedElement(p.reg, search.FeedStats, term, p.opts.CandidatesPerTerm), nil
	case prompt.EntityRecs:
		return newFeedElement(p.reg, search.FeedRecs, term, p.opts.CandidatesPerTerm), nil
	case prompt.EntityCountry:
		return newFeedElement(p.reg, search.FeedCountry, term, p.opts.CandidatesPerTerm), nil
	}
	return nil, fmt.Errorf("lbradio: no element for entity %q", term.Entity)
}

// termMode returns the run mode unless the term carries a difficulty
// override option.
func termMode(pctx *pipeline.Context, term prompt.Term) mode.Mode {
	for _, opt := range term.Opts {
		if m, err := mode.Parse(opt); err == nil {
			return m
		}
	}
	return pctx.Mode
}

func hasOpt(term prompt.Term, name string) bool {
	for _, opt := range term.Opts {
		if opt == name {
			return true
		}
	}
	return false
}

// timeRanges is the subset of term options naming a stats/feed time range.
var timeRanges = map[string]struct{}{
	"week":       {},
	"month":      {},
	"quarter":    {},
	"half":       {},
	"year":       {},
	"all_time":   {},
	"this_week":  {},
	"this_month": {},
	"this_year":  {},
}

// timeRangeOpt returns the term's time-range option, or "" when the feed
// should apply its own default.
func timeRangeOpt(term prompt.Term) string {
	for _, opt := range term.Opts {
		if _, ok := timeRanges[opt]; ok {
			return opt
		}
	}
	return ""
}
