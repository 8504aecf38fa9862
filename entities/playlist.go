/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package entities

// Playlist is the generated artifact: an ordered list of recordings plus the
// metadata a packaging collaborator needs to serialize or submit it.
// Recording order is the playback order.
type Playlist struct {
	Entity

	Recordings  []*Recording
	Description string
	Filename    string
	PatchSlug   string
	UserName    string

	AdditionalMetadata MetadataMap
}

// Kind implements Item.
func (p *Playlist) Kind() Kind { return KindPlaylist }

// MergeMetadata merges the given keys into the additional metadata map.
// Existing keys not named in meta are kept; updates never replace the map
// wholesale.
func (p *Playlist) MergeMetadata(meta MetadataMap) {
	if p.AdditionalMetadata == nil {
		p.AdditionalMetadata = MetadataMap{}
	}
	for key, value := range meta {
		p.AdditionalMetadata[key] = value
	}
}
