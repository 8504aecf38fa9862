/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package entities holds the value types passed between pipeline stages:
// artists, artist credits, releases, recordings and playlists. Instances are
// constructed once and progressively enriched as they move through a pipeline.
package entities

import "fmt"

// Kind identifies an entity type flowing through a pipeline. It is a closed
// set; element input/output contracts are declared in terms of it.
type Kind int

const (
	KindArtist Kind = iota
	KindArtistCredit
	KindRelease
	KindRecording
	KindPlaylist
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindArtist:
		return "artist"
	case KindArtistCredit:
		return "artist-credit"
	case KindRelease:
		return "release"
	case KindRecording:
		return "recording"
	case KindPlaylist:
		return "playlist"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// MetadataMap carries free-form metadata from one originating subsystem.
type MetadataMap map[string]any

// Entity is the shared base of all pipeline value types. The three metadata
// maps are independent side channels keyed by originating subsystem and are
// never nil on an Entity built with NewEntity.
type Entity struct {
	MBID    string
	Name    string
	Ranking float64

	Musicbrainz    MetadataMap
	Listenbrainz   MetadataMap
	Acousticbrainz MetadataMap

	notes []string
}

// NewEntity returns an Entity with all metadata maps allocated.
func NewEntity(mbid, name string) Entity {
	return Entity{
		MBID:           mbid,
		Name:           name,
		Musicbrainz:    MetadataMap{},
		Listenbrainz:   MetadataMap{},
		Acousticbrainz: MetadataMap{},
	}
}

// EnsureMaps allocates any metadata map that is still nil. Stages call this
// before writing to entities they did not construct themselves.
func (e *Entity) EnsureMaps() {
	if e.Musicbrainz == nil {
		e.Musicbrainz = MetadataMap{}
	}
	if e.Listenbrainz == nil {
		e.Listenbrainz = MetadataMap{}
	}
	if e.Acousticbrainz == nil {
		e.Acousticbrainz = MetadataMap{}
	}
}

// AddNote appends a human-readable annotation. Notes keep append order and are
// never reordered.
func (e *Entity) AddNote(note string) {
	e.notes = append(e.notes, note)
}

// Notes returns the annotations in append order.
func (e *Entity) Notes() []string {
	return e.notes
}

// SetMBID assigns the identity of the entity. Overwriting an already-set,
// different MBID is a reconciliation event and is recorded as a note rather
// than happening silently.
func (e *Entity) SetMBID(mbid string) {
	if e.MBID != "" && e.MBID != mbid {
		e.AddNote(fmt.Sprintf("mbid reconciled from %s to %s", e.MBID, mbid))
	}
	e.MBID = mbid
}
