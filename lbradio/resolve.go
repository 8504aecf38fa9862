/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package lbradio

import (
	"github.com/friendsincode/skald/entities"
	"github.com/friendsincode/skald/pipeline"
	"github.com/friendsincode/skald/search"
)

// resolveElement fills in metadata for the candidate stubs a term gathered,
// through the registered recording resolver.
type resolveElement struct {
	reg         *search.Registry
	dropMissing bool
}

func (e *resolveElement) Name() string { return "recording-resolve" }

func (e *resolveElement) Inputs() []entities.Kind { return []entities.Kind{entities.KindRecording} }

func (e *resolveElement) Outputs() []entities.Kind { return []entities.Kind{entities.KindRecording} }

func (e *resolveElement) Read(pctx *pipeline.Context, inputs [][]entities.Item) ([]entities.Item, error) {
	recs := pipeline.Recordings(flatten(inputs))
	if len(recs) == 0 {
		return nil, pipeline.ErrNoData
	}

	resolver, err := e.reg.Resolver()
	if err != nil {
		return nil, err
	}

	resolved, err := resolver.ResolveRecordings(pctx.Ctx, recs, e.dropMissing)
	if err != nil {
		return nil, pipeline.Failf(e.Name(), "resolve recordings: %v", err)
	}
	if dropped := len(recs) - len(resolved); dropped > 0 {
		pctx.Logger.Debug().Int("dropped", dropped).Msg("unresolvable recordings dropped")
	}
	if len(resolved) == 0 {
		return nil, pipeline.ErrNoData
	}
	return pipeline.RecordingItems(resolved), nil
}

// filterElement applies the host application's exclusion filter.
type filterElement struct {
	fn FilterFunc
}

func (e *filterElement) Name() string { return "recording-filter" }

func (e *filterElement) Inputs() []entities.Kind { return []entities.Kind{entities.KindRecording} }

func (e *filterElement) Outputs() []entities.Kind { return []entities.Kind{entities.KindRecording} }

func (e *filterElement) Read(pctx *pipeline.Context, inputs [][]entities.Item) ([]entities.Item, error) {
	recs := pipeline.Recordings(flatten(inputs))
	kept := make([]*entities.Recording, 0, len(recs))
	for _, rec := range recs {
		if e.fn(rec) {
			kept = append(kept, rec)
		}
	}
	if removed := len(recs) - len(kept); removed > 0 {
		pctx.Logger.Debug().Int("removed", removed).Msg("recordings removed by filter")
	}
	if len(kept) == 0 {
		return nil, pipeline.ErrNoData
	}
	return pipeline.RecordingItems(kept), nil
}

func flatten(inputs [][]entities.Item) []entities.Item {
	if len(inputs) == 1 {
		return inputs[0]
	}
	var out []entities.Item
	for _, items := range inputs {
		out = append(out, items...)
	}
	return out
}
