/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package entities

import "time"

// Item is implemented by every entity type that can flow through a pipeline.
type Item interface {
	Kind() Kind
}

// Artist is a single performing artist.
type Artist struct {
	Entity

	// ArtistID is the internal numeric id, 0 when unknown.
	ArtistID int64

	// JoinPhrase is used when concatenating artists into a credit display name.
	JoinPhrase string
}

// Kind implements Item.
func (a *Artist) Kind() Kind { return KindArtist }

// ArtistCredit is the officially credited performer sequence for a recording.
// Artist order matters for display. ArtistCreditID is a surrogate key distinct
// from any individual artist's id; it is the identity used when grouping or
// capping by performer.
type ArtistCredit struct {
	Entity

	Artists        []Artist
	ArtistCreditID int64
}

// Kind implements Item.
func (ac *ArtistCredit) Kind() Kind { return KindArtistCredit }

// DisplayName concatenates the credited artists with their join phrases.
func (ac *ArtistCredit) DisplayName() string {
	if ac.Name != "" {
		return ac.Name
	}
	var name string
	for _, artist := range ac.Artists {
		name += artist.Name + artist.JoinPhrase
	}
	return name
}

// Release is a released grouping of recordings. The artist credit is shared,
// not owned.
type Release struct {
	Entity

	ArtistCredit   *ArtistCredit
	CAAID          int64
	CAAReleaseMBID string
	Year           int
}

// Kind implements Item.
func (r *Release) Kind() Kind { return KindRelease }

// Recording is a single music recording. ArtistCredit and Release references
// are shared, not owned. Identity for deduplication is the MBID when present.
type Recording struct {
	Entity

	Duration     time.Duration
	ArtistCredit *ArtistCredit
	Release      *Release
	Year         int

	SpotifyID    string
	SoundcloudID string
	AppleMusicID string
}

// Kind implements Item.
func (r *Recording) Kind() Kind { return KindRecording }

// ArtistCreditID returns the credit surrogate key, 0 when no credit is
// attached yet.
func (r *Recording) ArtistCreditID() int64 {
	if r.ArtistCredit == nil {
		return 0
	}
	return r.ArtistCredit.ArtistCreditID
}
