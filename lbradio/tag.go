/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package lbradio

import (
	"strings"

	"github.com/friendsincode/skald/entities"
	"github.com/friendsincode/skald/pipeline"
	"github.com/friendsincode/skald/plist"
	"github.com/friendsincode/skald/prompt"
	"github.com/friendsincode/skald/search"
)

// Multi-tag terms start with the stricter AND query; below this many results
// the element falls back to OR and says so in the feedback.
const minTagResults = 20

// tagElement gathers candidates for one tag term within the mode's
// popularity band.
type tagElement struct {
	reg        *search.Registry
	term       prompt.Term
	candidates int
}

func (e *tagElement) Name() string { return "lb-radio-tag" }

func (e *tagElement) Inputs() []entities.Kind { return nil }

func (e *tagElement) Outputs() []entities.Kind { return []entities.Kind{entities.KindRecording} }

func (e *tagElement) Read(pctx *pipeline.Context, inputs [][]entities.Item) ([]entities.Item, error) {
	impl, err := e.reg.TagSearch()
	if err != nil {
		return nil, err
	}

	m := termMode(pctx, e.term)
	window := search.WindowFor(m, impl.Direction())
	tags := e.term.Values

	// Over-fetch so the band can be sampled down rather than always keeping
	// its most popular end.
	fetchLimit := e.candidates * 2

	op := search.OperatorAnd
	recs, err := impl.RecordingsByTag(pctx.Ctx, tags, op, window, fetchLimit)
	if err != nil {
		return nil, err
	}

	if len(tags) > 1 && len(recs) < minTagResults {
		recs, err = impl.RecordingsByTag(pctx.Ctx, tags, search.OperatorOr, window, fetchLimit)
		if err != nil {
			return nil, err
		}
		if len(recs) > 0 {
			pctx.AddFeedback("too few recordings are tagged with all of %s; using recordings matching any of them.",
				strings.Join(tags, ", "))
		}
	}

	if len(recs) == 0 {
		return nil, pipeline.ErrNoData
	}

	if len(recs) > e.candidates {
		recs, err = plist.New(recs).RandomSample(pctx.RNG, 0, 100, e.candidates)
		if err != nil {
			return nil, err
		}
	}

	pctx.AddExplanation("tag term %s contributed %d recordings.", e.term.String(), len(recs))
	return pipeline.RecordingItems(recs), nil
}
