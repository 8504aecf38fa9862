/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package blend combines N weighted candidate recording streams into one
// bounded, deduplicated, artist-diversity-constrained output list.
package blend

import (
	"math/rand"

	"github.com/friendsincode/skald/entities"
)

// Stream is one term's candidate recordings, front = most preferred.
type Stream struct {
	// Source labels the stream in logs and explanations.
	Source string

	// Weight is the term's integer weight. Weight 0 is legal: the stream
	// still contributes its seed-phase pick but is never drawn afterwards.
	Weight int

	Recordings []*entities.Recording
}

// Options bound the blended output.
type Options struct {
	// MaxRecordings caps the output length.
	MaxRecordings int

	// MaxArtistOccurrence caps how often one artist credit may appear.
	MaxArtistOccurrence int
}

// tracker enforces the dedupe and per-artist rules.
type tracker struct {
	seen         map[string]struct{}
	artistCounts map[int64]int
	maxPerArtist int
}

func newTracker(maxPerArtist int) *tracker {
	return &tracker{
		seen:         make(map[string]struct{}),
		artistCounts: make(map[int64]int),
		maxPerArtist: maxPerArtist,
	}
}

// admit reports whether the recording may join the output, and records it when
// it may. Recordings without an mbid are never treated as duplicates of each
// other; artist caps apply only when a credit id is attached.
func (t *tracker) admit(rec *entities.Recording) bool {
	if rec.MBID != "" {
		if _, dup := t.seen[rec.MBID]; dup {
			return false
		}
	}
	creditID := rec.ArtistCreditID()
	if creditID != 0 && t.maxPerArtist > 0 && t.artistCounts[creditID] >= t.maxPerArtist {
		return false
	}

	if rec.MBID != "" {
		t.seen[rec.MBID] = struct{}{}
	}
	if creditID != 0 {
		t.artistCounts[creditID]++
	}
	return true
}

// WeighAndBlend interleaves the streams into one bounded list. The seed phase
// pops one recording off the front of every non-empty stream in term order so
// that every term contributes an anchor before randomized blending begins.
// The random phase draws terms proportionally to their weights from a
// cumulative table built once; a stream that runs dry keeps its table slot
// and simply stops contributing. Popped recordings rejected by the dedupe or
// artist-cap rules are discarded, never requeued.
func WeighAndBlend(rng *rand.Rand, streams []Stream, opts Options) []*entities.Recording {
	remaining := make([][]*entities.Recording, len(streams))
	for i, s := range streams {
		remaining[i] = s.Recordings
	}

	tr := newTracker(opts.MaxArtistOccurrence)
	out := make([]*entities.Recording, 0, opts.MaxRecordings)

	// Seed phase.
	for i := range remaining {
		if len(out) >= opts.MaxRecordings {
			return out
		}
		if len(remaining[i]) == 0 {
			continue
		}
		rec := remaining[i][0]
		remaining[i] = remaining[i][1:]
		if tr.admit(rec) {
			out = append(out, rec)
		}
	}

	cumulative, total := buildCumulative(streams)
	if total == 0 {
		return out
	}

	// Random phase. A draw landing on an empty stream is wasted and redrawn;
	// after too many consecutive wasted draws the next available weighted
	// stream is taken in order, so exhaustion near the end cannot spin.
	misses := 0
	maxMisses := 16 * len(streams)
	for len(out) < opts.MaxRecordings && hasWeightedRemaining(streams, remaining) {
		idx := -1
		if misses < maxMisses {
			idx = drawStream(rng, streams, cumulative, total)
		} else {
			idx = firstWeightedRemaining(streams, remaining)
		}
		if idx < 0 || len(remaining[idx]) == 0 {
			misses++
			continue
		}
		misses = 0

		rec := remaining[idx][0]
		remaining[idx] = remaining[idx][1:]
		if tr.admit(rec) {
			out = append(out, rec)
		}
	}

	return out
}

// RoundRobin is the simpler unweighted variant: no seed phase, plain rotation
// over the streams, with the same dedupe and artist-cap rules.
func RoundRobin(streams []Stream, opts Options) []*entities.Recording {
	remaining := make([][]*entities.Recording, len(streams))
	for i, s := range streams {
		remaining[i] = s.Recordings
	}

	tr := newTracker(opts.MaxArtistOccurrence)
	out := make([]*entities.Recording, 0, opts.MaxRecordings)

	for len(out) < opts.MaxRecordings {
		progressed := false
		for i := range remaining {
			if len(out) >= opts.MaxRecordings {
				break
			}
			if len(remaining[i]) == 0 {
				continue
			}
			rec := remaining[i][0]
			remaining[i] = remaining[i][1:]
			progressed = true
			if tr.admit(rec) {
				out = append(out, rec)
			}
		}
		if !progressed {
			break
		}
	}

	return out
}

// buildCumulative returns the running-total weight table. Entries carry the
// cumulative weight after each stream; weight-0 streams share the previous
// boundary and are skipped during draws.
func buildCumulative(streams []Stream) ([]int, int) {
	cumulative := make([]int, len(streams))
	total := 0
	for i, s := range streams {
		if s.Weight > 0 {
			total += s.Weight
		}
		cumulative[i] = total
	}
	return cumulative, total
}

// drawStream maps a uniform draw in [0, total] to a stream index: the first
// table entry >= the draw wins, skipping weight-0 streams.
func drawStream(rng *rand.Rand, streams []Stream, cumulative []int, total int) int {
	draw := rng.Intn(total + 1)
	for i, c := range cumulative {
		if c >= draw && streams[i].Weight > 0 {
			return i
		}
	}
	return -1
}

func hasWeightedRemaining(streams []Stream, remaining [][]*entities.Recording) bool {
	return firstWeightedRemaining(streams, remaining) >= 0
}

func firstWeightedRemaining(streams []Stream, remaining [][]*entities.Recording) int {
	for i := range streams {
		if streams[i].Weight > 0 && len(remaining[i]) > 0 {
			return i
		}
	}
	return -1
}
