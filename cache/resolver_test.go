/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package cache

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/friendsincode/skald/entities"
)

type stubResolver struct {
	calls int
}

func (s *stubResolver) ResolveRecordings(ctx context.Context, recs []*entities.Recording, dropMissing bool) ([]*entities.Recording, error) {
	s.calls++
	out := make([]*entities.Recording, 0, len(recs))
	for _, rec := range recs {
		if rec.MBID == "missing" {
			if !dropMissing {
				out = append(out, rec)
			}
			continue
		}
		rec.Name = "resolved " + rec.MBID
		out = append(out, rec)
	}
	return out, nil
}

// disabledCache builds a cache whose Redis backend is unreachable; every
// lookup is a miss and every write a no-op.
func disabledCache(t *testing.T) *Cache {
	t.Helper()
	cfg := DefaultConfig()
	cfg.RedisAddr = "127.0.0.1:1"
	c, err := New(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if c.IsAvailable() {
		t.Skip("local redis answered on port 1, cannot test fallback")
	}
	return c
}

func TestCachedResolverFallsThroughWithoutRedis(t *testing.T) {
	inner := &stubResolver{}
	resolver := NewCachedResolver(inner, disabledCache(t))

	recs := []*entities.Recording{
		{Entity: entities.NewEntity("aaa", "")},
		{Entity: entities.NewEntity("bbb", "")},
	}

	out, err := resolver.ResolveRecordings(context.Background(), recs, true)
	if err != nil {
		t.Fatalf("ResolveRecordings() error = %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("resolved %d recordings, want 2", len(out))
	}
	if out[0].Name != "resolved aaa" {
		t.Errorf("recording not enriched: %q", out[0].Name)
	}
	if inner.calls != 1 {
		t.Errorf("inner resolver called %d times, want 1", inner.calls)
	}
}

func TestCachedResolverDropMissing(t *testing.T) {
	resolver := NewCachedResolver(&stubResolver{}, disabledCache(t))

	recs := []*entities.Recording{
		{Entity: entities.NewEntity("aaa", "")},
		{Entity: entities.NewEntity("missing", "")},
	}

	dropped, err := resolver.ResolveRecordings(context.Background(), recs, true)
	if err != nil {
		t.Fatalf("ResolveRecordings() error = %v", err)
	}
	if len(dropped) != 1 {
		t.Errorf("with dropMissing resolved %d, want 1", len(dropped))
	}

	kept, err := resolver.ResolveRecordings(context.Background(), recs, false)
	if err != nil {
		t.Fatalf("ResolveRecordings() error = %v", err)
	}
	if len(kept) != 2 {
		t.Errorf("without dropMissing resolved %d, want 2", len(kept))
	}
}
