/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package search

import "fmt"

// FeedKind names the registered recording feeds.
type FeedKind string

const (
	FeedCollection FeedKind = "collection"
	FeedPlaylist   FeedKind = "playlist"
	FeedStats      FeedKind = "stats"
	FeedRecs       FeedKind = "recs"
	FeedCountry    FeedKind = "country"
)

// Registry holds the active capability implementations. Only one
// implementation of each capability is active at a time; registering another
// replaces it (last registered wins). A Registry belongs to one wiring of the
// library, so there is no locking: registration happens during setup, before
// any pipeline runs.
type Registry struct {
	tag       TagSearch
	artist    ArtistSearch
	resolver  RecordingResolver
	artistRes ArtistResolver
	feeds     map[FeedKind]RecordingFeed
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{feeds: map[FeedKind]RecordingFeed{}}
}

// RegisterTagSearch installs the active tag search implementation.
func (r *Registry) RegisterTagSearch(s TagSearch) { r.tag = s }

// RegisterArtistSearch installs the active artist search implementation.
func (r *Registry) RegisterArtistSearch(s ArtistSearch) { r.artist = s }

// RegisterResolver installs the active recording resolver.
func (r *Registry) RegisterResolver(s RecordingResolver) { r.resolver = s }

// RegisterArtistResolver installs the active artist name resolver.
func (r *Registry) RegisterArtistResolver(s ArtistResolver) { r.artistRes = s }

// RegisterFeed installs the active feed for the given kind.
func (r *Registry) RegisterFeed(kind FeedKind, f RecordingFeed) { r.feeds[kind] = f }

// TagSearch returns the active tag search implementation.
func (r *Registry) TagSearch() (TagSearch, error) {
	if r.tag == nil {
		return nil, fmt.Errorf("search: no tag search registered")
	}
	return r.tag, nil
}

// ArtistSearch returns the active artist search implementation.
func (r *Registry) ArtistSearch() (ArtistSearch, error) {
	if r.artist == nil {
		return nil, fmt.Errorf("search: no artist search registered")
	}
	return r.artist, nil
}

// Resolver returns the active recording resolver.
func (r *Registry) Resolver() (RecordingResolver, error) {
	if r.resolver == nil {
		return nil, fmt.Errorf("search: no recording resolver registered")
	}
	return r.resolver, nil
}

// ArtistResolver returns the active artist name resolver.
func (r *Registry) ArtistResolver() (ArtistResolver, error) {
	if r.artistRes == nil {
		return nil, fmt.Errorf("search: no artist resolver registered")
	}
	return r.artistRes, nil
}

// Feed returns the active feed of the given kind.
func (r *Registry) Feed(kind FeedKind) (RecordingFeed, error) {
	f, ok := r.feeds[kind]
	if !ok {
		return nil, fmt.Errorf("search: no %s feed registered", kind)
	}
	return f, nil
}
