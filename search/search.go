/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package search declares the swappable capability interfaces that supply
// candidate pools and lookups to the per-term pipeline elements. Concrete
// implementations (a remote metadata API, a local collection index) register
// themselves; per-term element code never names an implementation.
package search

import (
	"context"

	"github.com/friendsincode/skald/entities"
	"github.com/friendsincode/skald/mode"
)

// Operator combines multiple tags in a tag search.
type Operator string

const (
	OperatorAnd Operator = "and"
	OperatorOr  Operator = "or"
)

// Direction is the ranking sense of a capability's candidate pools. It is a
// declared property of each implementation so call sites never have to
// remember whether a percent band needs inverting.
type Direction int

const (
	// PopularityAscending ranks the least popular material first. This is the
	// canonical sense of the mode windows: easy's [66,100) band lands on the
	// mainstream end of the list.
	PopularityAscending Direction = iota

	// PopularityDescending ranks the most popular material first; mode
	// windows are inverted before use.
	PopularityDescending
)

// WindowFor returns the percentile band for the mode in the capability's own
// ranking sense. This is the only place window inversion happens.
func WindowFor(m mode.Mode, d Direction) mode.Window {
	w := m.Window()
	if d == PopularityDescending {
		return w.Invert()
	}
	return w
}

// TagSearch supplies popularity-ranked candidate recordings matching tag
// criteria within a popularity-percentile band. When too few matches fall
// strictly inside the band, implementations widen by returning the closest
// matches outside it rather than returning nothing.
type TagSearch interface {
	Direction() Direction
	RecordingsByTag(ctx context.Context, tags []string, op Operator, window mode.Window, maxResults int) ([]*entities.Recording, error)
}

// ArtistSearch supplies band-constrained candidate recordings for a seed
// artist and for similar artists discovered through the implementation's
// similarity source. The result maps artist mbid to its candidates.
type ArtistSearch interface {
	Direction() Direction
	RecordingsByArtist(ctx context.Context, artistMBIDs []string, window mode.Window, maxPerArtist, maxSimilarArtists int) (map[string][]*entities.Recording, error)
}

// RecordingResolver fills in name, duration, year, artist credit and release
// for recording stubs carrying at least an mbid. Unresolvable entries are
// dropped when dropMissing is set, passed through unresolved otherwise.
type RecordingResolver interface {
	ResolveRecordings(ctx context.Context, recs []*entities.Recording, dropMissing bool) ([]*entities.Recording, error)
}

// ArtistResolver turns a free-text artist name into the mbid of the best
// match. A name with no acceptable match returns ok=false, not an error.
type ArtistResolver interface {
	ResolveArtistName(ctx context.Context, name string) (mbid string, ok bool, err error)
}

// RecordingFeed returns the ordered recordings behind a named source: a
// collection, a stored playlist, a user's listening stats or recommendations,
// or a country's popular recordings. The meaning of id and timeRange depends
// on the feed.
type RecordingFeed interface {
	Recordings(ctx context.Context, id string, timeRange string, maxResults int) ([]*entities.Recording, error)
}
