/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package lbradio

import (
	"github.com/friendsincode/skald/entities"
	"github.com/friendsincode/skald/pipeline"
	"github.com/friendsincode/skald/prompt"
	"github.com/friendsincode/skald/search"
)

// feedElement gathers candidates from a registered recording feed: a
// collection, a stored playlist, a user's stats or recommendations, or a
// country chart. One feed call per term value; multiple values concatenate in
// value order.
type feedElement struct {
	reg        *search.Registry
	kind       search.FeedKind
	term       prompt.Term
	candidates int
}

func newFeedElement(reg *search.Registry, kind search.FeedKind, term prompt.Term, candidates int) *feedElement {
	return &feedElement{reg: reg, kind: kind, term: term, candidates: candidates}
}

func (e *feedElement) Name() string { return "lb-radio-" + string(e.kind) }

func (e *feedElement) Inputs() []entities.Kind { return nil }

func (e *feedElement) Outputs() []entities.Kind { return []entities.Kind{entities.KindRecording} }

func (e *feedElement) Read(pctx *pipeline.Context, inputs [][]entities.Item) ([]entities.Item, error) {
	feed, err := e.reg.Feed(e.kind)
	if err != nil {
		return nil, err
	}

	timeRange := timeRangeOpt(e.term)

	out := make([]*entities.Recording, 0, e.candidates)
	for _, value := range e.term.Values {
		if len(out) >= e.candidates {
			break
		}
		recs, err := feed.Recordings(pctx.Ctx, value, timeRange, e.candidates-len(out))
		if err != nil {
			return nil, err
		}
		if len(recs) == 0 {
			pctx.AddFeedback("%s %q yielded no recordings.", e.kind, value)
			continue
		}
		out = append(out, recs...)
	}

	if len(out) == 0 {
		return nil, pipeline.ErrNoData
	}

	pctx.AddExplanation("%s term %s contributed %d recordings.", e.kind, e.term.String(), len(out))
	return pipeline.RecordingItems(out), nil
}
