/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package localindex

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/friendsincode/skald/mode"
	"github.com/friendsincode/skald/search"
)

func testIndex(t *testing.T) *Index {
	t.Helper()
	ix, err := Open(":memory:", zerolog.Nop())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	return ix
}

func seedTagged(t *testing.T, ix *Index, prefix string, n int, tags ...string) {
	t.Helper()
	ctx := context.Background()
	for i := 0; i < n; i++ {
		tagRows := make([]TagRow, 0, len(tags))
		for _, tag := range tags {
			tagRows = append(tagRows, TagRow{Name: tag})
		}
		row := &RecordingRow{
			MBID:             fmt.Sprintf("%s-%03d", prefix, i),
			Name:             fmt.Sprintf("%s song %d", prefix, i),
			ArtistMBID:       prefix + "-artist",
			ArtistCreditID:   int64(len(prefix)),
			ArtistCreditName: prefix,
			Popularity:       float64(n - i),
			Tags:             tagRows,
		}
		if err := ix.AddRecordings(ctx, row); err != nil {
			t.Fatalf("AddRecordings() error = %v", err)
		}
	}
}

func fullWindow() mode.Window { return mode.Window{Start: 0, Stop: 100} }

func TestRecordingsByTagOr(t *testing.T) {
	ix := testIndex(t)
	seedTagged(t, ix, "rock", 5, "rock")
	seedTagged(t, ix, "pop", 5, "pop")

	recs, err := ix.RecordingsByTag(context.Background(), []string{"rock", "pop"}, search.OperatorOr, fullWindow(), 20)
	if err != nil {
		t.Fatalf("RecordingsByTag() error = %v", err)
	}
	if len(recs) != 10 {
		t.Fatalf("or search returned %d recordings, want 10", len(recs))
	}
}

func TestRecordingsByTagAnd(t *testing.T) {
	ix := testIndex(t)
	seedTagged(t, ix, "both", 4, "rock", "pop")
	seedTagged(t, ix, "only", 6, "rock")

	recs, err := ix.RecordingsByTag(context.Background(), []string{"rock", "pop"}, search.OperatorAnd, fullWindow(), 20)
	if err != nil {
		t.Fatalf("RecordingsByTag() error = %v", err)
	}
	if len(recs) != 4 {
		t.Fatalf("and search returned %d recordings, want 4", len(recs))
	}
	for _, rec := range recs {
		if rec.MBID[:4] != "both" {
			t.Errorf("and search leaked recording %s", rec.MBID)
		}
	}
}

func TestRecordingsByTagRankedByPopularity(t *testing.T) {
	ix := testIndex(t)
	seedTagged(t, ix, "rock", 10, "rock")

	recs, err := ix.RecordingsByTag(context.Background(), []string{"rock"}, search.OperatorOr, fullWindow(), 10)
	if err != nil {
		t.Fatalf("RecordingsByTag() error = %v", err)
	}
	for i := 1; i < len(recs); i++ {
		if recs[i].Ranking > recs[i-1].Ranking {
			t.Fatalf("recordings not ranked by descending popularity at %d", i)
		}
	}
}

func TestRecordingsByTagWidensNarrowBand(t *testing.T) {
	ix := testIndex(t)
	seedTagged(t, ix, "rock", 10, "rock")

	// The [0,10) band holds a single match; asking for five must widen with
	// the closest recordings outside the band instead of returning one.
	recs, err := ix.RecordingsByTag(context.Background(), []string{"rock"}, search.OperatorOr, mode.Window{Start: 0, Stop: 10}, 5)
	if err != nil {
		t.Fatalf("RecordingsByTag() error = %v", err)
	}
	if len(recs) != 5 {
		t.Fatalf("widened search returned %d recordings, want 5", len(recs))
	}
}

func TestRecordingsByArtistIncludesSimilar(t *testing.T) {
	ix := testIndex(t)
	ctx := context.Background()
	seedTagged(t, ix, "seed", 6, "rock")
	seedTagged(t, ix, "kin", 6, "rock")
	seedTagged(t, ix, "far", 6, "rock")

	err := ix.AddSimilarArtists(ctx,
		&SimilarArtistRow{ArtistMBID: "seed-artist", SimilarMBID: "kin-artist", Score: 90},
		&SimilarArtistRow{ArtistMBID: "seed-artist", SimilarMBID: "far-artist", Score: 40},
	)
	if err != nil {
		t.Fatalf("AddSimilarArtists() error = %v", err)
	}

	got, err := ix.RecordingsByArtist(ctx, []string{"seed-artist"}, fullWindow(), 3, 1)
	if err != nil {
		t.Fatalf("RecordingsByArtist() error = %v", err)
	}

	if len(got["seed-artist"]) != 3 {
		t.Errorf("seed artist returned %d recordings, want 3", len(got["seed-artist"]))
	}
	if len(got["kin-artist"]) != 3 {
		t.Errorf("best similar artist returned %d recordings, want 3", len(got["kin-artist"]))
	}
	if _, ok := got["far-artist"]; ok {
		t.Error("maxSimilarArtists=1 should exclude the weaker similar artist")
	}
}

func TestRecordingsByArtistUnknown(t *testing.T) {
	ix := testIndex(t)
	got, err := ix.RecordingsByArtist(context.Background(), []string{"nobody"}, fullWindow(), 5, 5)
	if err != nil {
		t.Fatalf("RecordingsByArtist() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("unknown artist returned %d entries, want 0", len(got))
	}
}

func TestDirection(t *testing.T) {
	if testIndex(t).Direction() != search.PopularityDescending {
		t.Error("index ranks most popular first and must say so")
	}
}
