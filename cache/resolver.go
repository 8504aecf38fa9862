/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package cache

import (
	"context"
	"time"

	"github.com/friendsincode/skald/entities"
	"github.com/friendsincode/skald/search"
)

var _ search.RecordingResolver = (*CachedResolver)(nil)

// cachedRecording is the serialized form of a resolved recording. NotFound
// marks negative results so unresolvable mbids are not re-fetched every run.
type cachedRecording struct {
	MBID       string        `json:"mbid"`
	Name       string        `json:"name"`
	Duration   time.Duration `json:"duration"`
	Year       int           `json:"year"`
	CreditID   int64         `json:"credit_id"`
	CreditName string        `json:"credit_name"`
	NotFound   bool          `json:"not_found"`
}

// CachedResolver decorates a recording resolver with the Redis cache.
type CachedResolver struct {
	inner search.RecordingResolver
	cache *Cache
}

// NewCachedResolver wraps inner with caching.
func NewCachedResolver(inner search.RecordingResolver, cache *Cache) *CachedResolver {
	return &CachedResolver{inner: inner, cache: cache}
}

// ResolveRecordings implements search.RecordingResolver. Recordings resolved
// from cache skip the inner resolver entirely; the rest are resolved in one
// batch and written back.
func (r *CachedResolver) ResolveRecordings(ctx context.Context, recs []*entities.Recording, dropMissing bool) ([]*entities.Recording, error) {
	resolved := make([]*entities.Recording, 0, len(recs))
	var misses []*entities.Recording

	for _, rec := range recs {
		if rec.MBID == "" {
			misses = append(misses, rec)
			continue
		}

		var cached cachedRecording
		found, err := r.cache.Get(ctx, KeyRecording+rec.MBID, &cached)
		if err != nil || !found {
			misses = append(misses, rec)
			continue
		}
		if cached.NotFound {
			if !dropMissing {
				resolved = append(resolved, rec)
			}
			continue
		}

		applyCached(rec, cached)
		resolved = append(resolved, rec)
	}

	if len(misses) == 0 {
		return resolved, nil
	}

	fetched, err := r.inner.ResolveRecordings(ctx, misses, dropMissing)
	if err != nil {
		return nil, err
	}

	fetchedByMBID := make(map[string]struct{}, len(fetched))
	for _, rec := range fetched {
		fetchedByMBID[rec.MBID] = struct{}{}
		if rec.MBID != "" && rec.Name != "" {
			_ = r.cache.Set(ctx, KeyRecording+rec.MBID, toCached(rec), r.cache.config.RecordingTTL)
		}
	}
	// Negative results: misses the inner resolver dropped.
	for _, rec := range misses {
		if rec.MBID == "" {
			continue
		}
		if _, ok := fetchedByMBID[rec.MBID]; !ok {
			_ = r.cache.Set(ctx, KeyRecording+rec.MBID, cachedRecording{MBID: rec.MBID, NotFound: true}, r.cache.config.RecordingTTL)
		}
	}

	return append(resolved, fetched...), nil
}

func toCached(rec *entities.Recording) cachedRecording {
	cached := cachedRecording{
		MBID:     rec.MBID,
		Name:     rec.Name,
		Duration: rec.Duration,
		Year:     rec.Year,
	}
	if rec.ArtistCredit != nil {
		cached.CreditID = rec.ArtistCredit.ArtistCreditID
		cached.CreditName = rec.ArtistCredit.Name
	}
	return cached
}

func applyCached(rec *entities.Recording, cached cachedRecording) {
	rec.EnsureMaps()
	rec.Name = cached.Name
	rec.Duration = cached.Duration
	rec.Year = cached.Year
	if cached.CreditID != 0 && rec.ArtistCredit == nil {
		rec.ArtistCredit = &entities.ArtistCredit{
			Entity:         entities.NewEntity("", cached.CreditName),
			ArtistCreditID: cached.CreditID,
		}
	}
}
