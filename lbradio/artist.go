/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package lbradio

import (
	"sort"

	"github.com/friendsincode/skald/blend"
	"github.com/friendsincode/skald/entities"
	"github.com/friendsincode/skald/pipeline"
	"github.com/friendsincode/skald/prompt"
	"github.com/friendsincode/skald/search"
)

// artistElement gathers candidates for one artist term: the seed artists'
// own recordings plus recordings from similar artists, all constrained to the
// mode's popularity band. The nosim option disables similar-artist expansion.
type artistElement struct {
	reg        *search.Registry
	term       prompt.Term
	maxSimilar int
	candidates int
}

func (e *artistElement) Name() string { return "lb-radio-artist" }

func (e *artistElement) Inputs() []entities.Kind { return nil }

func (e *artistElement) Outputs() []entities.Kind { return []entities.Kind{entities.KindRecording} }

func (e *artistElement) Read(pctx *pipeline.Context, inputs [][]entities.Item) ([]entities.Item, error) {
	impl, err := e.reg.ArtistSearch()
	if err != nil {
		return nil, err
	}

	mbids, err := e.resolveValues(pctx)
	if err != nil {
		return nil, err
	}
	if len(mbids) == 0 {
		return nil, pipeline.ErrNoData
	}

	maxSimilar := e.maxSimilar
	if hasOpt(e.term, "nosim") {
		maxSimilar = 0
	}

	m := termMode(pctx, e.term)
	window := search.WindowFor(m, impl.Direction())

	// Split the candidate budget across the artists we expect back so one
	// prolific artist cannot crowd out the rest before blending.
	perArtist := e.candidates / (len(mbids) * (1 + maxSimilar))
	if perArtist < 5 {
		perArtist = 5
	}

	byArtist, err := impl.RecordingsByArtist(pctx.Ctx, mbids, window, perArtist, maxSimilar)
	if err != nil {
		return nil, err
	}

	// Interleave artists round-robin so the stream front carries variety.
	// Map order is randomized, so sort for reproducible runs under a seed.
	artists := make([]string, 0, len(byArtist))
	for mbid := range byArtist {
		artists = append(artists, mbid)
	}
	sort.Strings(artists)

	streams := make([]blend.Stream, 0, len(artists))
	for _, mbid := range artists {
		streams = append(streams, blend.Stream{
			Source:     mbid,
			Weight:     1,
			Recordings: byArtist[mbid],
		})
	}
	out := blend.RoundRobin(streams, blend.Options{MaxRecordings: e.candidates})
	if len(out) == 0 {
		return nil, pipeline.ErrNoData
	}

	similarFound := len(byArtist) - len(mbids)
	if similarFound < 0 {
		similarFound = 0
	}
	pctx.AddExplanation("artist term %s contributed %d recordings from %d artists.",
		e.term.String(), len(out), len(artists))
	if maxSimilar > 0 && similarFound < 3 {
		pctx.AddFeedback("only %d similar artists were found for %s; the playlist may lack variety.",
			similarFound, e.term.String())
	}

	return pipeline.RecordingItems(out), nil
}

// resolveValues maps the term's values to artist mbids, resolving free-text
// names through the registered artist resolver. Names with no match produce
// feedback, not an error.
func (e *artistElement) resolveValues(pctx *pipeline.Context) ([]string, error) {
	mbids := make([]string, 0, len(e.term.Values))
	for _, value := range e.term.Values {
		if prompt.IsMBID(value) {
			mbids = append(mbids, value)
			continue
		}

		resolver, err := e.reg.ArtistResolver()
		if err != nil {
			return nil, pipeline.Failf(e.Name(), "artist %q is not an mbid and no artist resolver is registered", value)
		}
		mbid, ok, err := resolver.ResolveArtistName(pctx.Ctx, value)
		if err != nil {
			return nil, pipeline.Failf(e.Name(), "resolve artist %q: %v", value, err)
		}
		if !ok {
			pctx.AddFeedback("no artist matching %q was found.", value)
			continue
		}
		mbids = append(mbids, mbid)
	}
	return mbids, nil
}
