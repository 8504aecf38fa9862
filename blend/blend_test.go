/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package blend

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/friendsincode/skald/entities"
)

// rec builds a recording with the given mbid and artist credit id.
func rec(mbid string, creditID int64) *entities.Recording {
	r := &entities.Recording{Entity: entities.NewEntity(mbid, mbid)}
	if creditID != 0 {
		r.ArtistCredit = &entities.ArtistCredit{ArtistCreditID: creditID}
	}
	return r
}

// stream builds n recordings with distinct mbids and per-recording credits.
func stream(prefix string, n int, weight int) Stream {
	recs := make([]*entities.Recording, 0, n)
	for i := 0; i < n; i++ {
		recs = append(recs, rec(fmt.Sprintf("%s-%03d", prefix, i), int64(i+1)))
	}
	return Stream{Source: prefix, Weight: weight, Recordings: recs}
}

func TestWeighAndBlendBoundsOutput(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	streams := []Stream{stream("a", 30, 2), stream("b", 30, 1)}

	out := WeighAndBlend(rng, streams, Options{MaxRecordings: 25, MaxArtistOccurrence: 100})
	if len(out) != 25 {
		t.Fatalf("output length = %d, want 25", len(out))
	}
}

func TestWeighAndBlendExhaustsShortStreams(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	streams := []Stream{stream("a", 3, 1), stream("b", 2, 1)}

	out := WeighAndBlend(rng, streams, Options{MaxRecordings: 50, MaxArtistOccurrence: 100})
	if len(out) != 5 {
		t.Fatalf("output length = %d, want all 5 available", len(out))
	}
}

func TestWeighAndBlendNoDuplicateIdentifiers(t *testing.T) {
	rng := rand.New(rand.NewSource(23))

	// Both streams share the same five recordings.
	shared := stream("x", 5, 1).Recordings
	streams := []Stream{
		{Source: "a", Weight: 1, Recordings: shared},
		{Source: "b", Weight: 1, Recordings: shared},
	}

	out := WeighAndBlend(rng, streams, Options{MaxRecordings: 20, MaxArtistOccurrence: 100})
	if len(out) != 5 {
		t.Fatalf("output length = %d, want 5 after dedup", len(out))
	}
	seen := map[string]struct{}{}
	for _, r := range out {
		if _, dup := seen[r.MBID]; dup {
			t.Fatalf("recording %s emitted twice", r.MBID)
		}
		seen[r.MBID] = struct{}{}
	}
}

func TestWeighAndBlendArtistCap(t *testing.T) {
	rng := rand.New(rand.NewSource(9))

	// Ten recordings, all by the same artist credit.
	recs := make([]*entities.Recording, 10)
	for i := range recs {
		recs[i] = rec(fmt.Sprintf("one-artist-%d", i), 77)
	}
	streams := []Stream{{Source: "a", Weight: 1, Recordings: recs}}

	out := WeighAndBlend(rng, streams, Options{MaxRecordings: 10, MaxArtistOccurrence: 2})
	if len(out) != 2 {
		t.Fatalf("output length = %d, want 2 (artist cap)", len(out))
	}
}

func TestWeighAndBlendSeedPhaseOrder(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		rng := rand.New(rand.NewSource(seed))
		streams := []Stream{stream("a", 10, 3), stream("b", 10, 1), stream("c", 10, 1)}

		out := WeighAndBlend(rng, streams, Options{MaxRecordings: 20, MaxArtistOccurrence: 100})
		if len(out) < 3 {
			t.Fatalf("seed %d: output too short: %d", seed, len(out))
		}
		for i, prefix := range []string{"a", "b", "c"} {
			if out[i].MBID != prefix+"-000" {
				t.Fatalf("seed %d: anchor %d = %s, want %s-000 regardless of weighting", seed, i, out[i].MBID, prefix)
			}
		}
	}
}

func TestWeighAndBlendWeightZeroSeedOnly(t *testing.T) {
	rng := rand.New(rand.NewSource(31))
	streams := []Stream{stream("a", 20, 1), stream("z", 20, 0)}

	out := WeighAndBlend(rng, streams, Options{MaxRecordings: 15, MaxArtistOccurrence: 100})

	zCount := 0
	for _, r := range out {
		if r.MBID[0] == 'z' {
			zCount++
		}
	}
	if zCount != 1 {
		t.Fatalf("weight-0 stream contributed %d recordings, want exactly its seed pick", zCount)
	}
	if out[1].MBID != "z-000" {
		t.Fatalf("weight-0 stream still gets its seed-phase anchor, got %s", out[1].MBID)
	}
}

func TestWeighAndBlendAllWeightsZero(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	streams := []Stream{stream("a", 5, 0), stream("b", 5, 0)}

	out := WeighAndBlend(rng, streams, Options{MaxRecordings: 10, MaxArtistOccurrence: 100})
	if len(out) != 2 {
		t.Fatalf("output length = %d, want the two seed picks only", len(out))
	}
}

func TestWeighAndBlendWeightBias(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	streams := []Stream{stream("heavy", 400, 9), stream("light", 400, 1)}

	out := WeighAndBlend(rng, streams, Options{MaxRecordings: 200, MaxArtistOccurrence: 1000})

	heavy := 0
	for _, r := range out {
		if r.MBID[0] == 'h' {
			heavy++
		}
	}
	// With 9:1 weights the heavy stream should clearly dominate.
	if heavy < 140 {
		t.Fatalf("heavy stream contributed %d of %d, expected strong majority", heavy, len(out))
	}
}

func TestRoundRobin(t *testing.T) {
	streams := []Stream{stream("a", 3, 0), stream("b", 3, 0)}

	out := RoundRobin(streams, Options{MaxRecordings: 10, MaxArtistOccurrence: 100})
	if len(out) != 6 {
		t.Fatalf("output length = %d, want 6", len(out))
	}
	wantOrder := []string{"a-000", "b-000", "a-001", "b-001", "a-002", "b-002"}
	for i, want := range wantOrder {
		if out[i].MBID != want {
			t.Fatalf("position %d = %s, want %s (plain rotation)", i, out[i].MBID, want)
		}
	}
}

func TestRoundRobinRespectsCap(t *testing.T) {
	streams := []Stream{stream("a", 8, 0)}
	out := RoundRobin(streams, Options{MaxRecordings: 4, MaxArtistOccurrence: 100})
	if len(out) != 4 {
		t.Fatalf("output length = %d, want 4", len(out))
	}
}
