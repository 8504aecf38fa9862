/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package entities

import "testing"

func TestNewEntityMapsAllocated(t *testing.T) {
	e := NewEntity("", "")
	if e.Musicbrainz == nil || e.Listenbrainz == nil || e.Acousticbrainz == nil {
		t.Fatal("NewEntity() left a metadata map nil")
	}
}

func TestEnsureMaps(t *testing.T) {
	var e Entity
	e.EnsureMaps()
	if e.Musicbrainz == nil || e.Listenbrainz == nil || e.Acousticbrainz == nil {
		t.Fatal("EnsureMaps() left a metadata map nil")
	}

	e.Musicbrainz["tags"] = []string{"rock"}
	e.EnsureMaps()
	if _, ok := e.Musicbrainz["tags"]; !ok {
		t.Fatal("EnsureMaps() dropped existing metadata")
	}
}

func TestNotesKeepAppendOrder(t *testing.T) {
	e := NewEntity("", "")
	e.AddNote("first")
	e.AddNote("second")
	e.AddNote("third")

	notes := e.Notes()
	if len(notes) != 3 {
		t.Fatalf("Notes() length = %d, want 3", len(notes))
	}
	for i, want := range []string{"first", "second", "third"} {
		if notes[i] != want {
			t.Errorf("Notes()[%d] = %q, want %q", i, notes[i], want)
		}
	}
}

func TestSetMBIDRecordsReconciliation(t *testing.T) {
	e := NewEntity("aaaa", "")

	e.SetMBID("aaaa")
	if len(e.Notes()) != 0 {
		t.Fatal("re-setting the same mbid should not add a note")
	}

	e.SetMBID("bbbb")
	if e.MBID != "bbbb" {
		t.Fatalf("MBID = %q, want %q", e.MBID, "bbbb")
	}
	if len(e.Notes()) != 1 {
		t.Fatalf("expected one reconciliation note, got %d", len(e.Notes()))
	}
}

func TestArtistCreditDisplayName(t *testing.T) {
	ac := &ArtistCredit{
		Artists: []Artist{
			{Entity: NewEntity("", "Run The Jewels"), JoinPhrase: " feat. "},
			{Entity: NewEntity("", "Zack de la Rocha")},
		},
	}
	if got := ac.DisplayName(); got != "Run The Jewels feat. Zack de la Rocha" {
		t.Errorf("DisplayName() = %q", got)
	}

	ac.Name = "RTJ"
	if got := ac.DisplayName(); got != "RTJ" {
		t.Errorf("DisplayName() with explicit name = %q", got)
	}
}

func TestPlaylistMergeMetadata(t *testing.T) {
	p := &Playlist{}
	p.MergeMetadata(MetadataMap{"a": 1, "b": 2})
	p.MergeMetadata(MetadataMap{"b": 3, "c": 4})

	if p.AdditionalMetadata["a"] != 1 {
		t.Error("merge dropped key a")
	}
	if p.AdditionalMetadata["b"] != 3 {
		t.Error("merge should overwrite key b")
	}
	if p.AdditionalMetadata["c"] != 4 {
		t.Error("merge missed key c")
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindArtist, "artist"},
		{KindArtistCredit, "artist-credit"},
		{KindRelease, "release"},
		{KindRecording, "recording"},
		{KindPlaylist, "playlist"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind.String() = %q, want %q", got, tt.want)
		}
	}
}
