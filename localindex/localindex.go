/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package localindex implements the search capabilities over a local sqlite
// recording index, for generating playlists from a local collection instead
// of a remote metadata service.
package localindex

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/friendsincode/skald/entities"
	"github.com/friendsincode/skald/mode"
	"github.com/friendsincode/skald/plist"
	"github.com/friendsincode/skald/search"
)

// RecordingRow is an indexed recording.
type RecordingRow struct {
	ID               uint   `gorm:"primaryKey"`
	MBID             string `gorm:"uniqueIndex"`
	Name             string
	ArtistMBID       string `gorm:"index"`
	ArtistCreditID   int64  `gorm:"index"`
	ArtistCreditName string
	Popularity       float64 `gorm:"index"`
	Year             int
	DurationMS       int64
	Tags             []TagRow `gorm:"many2many:recording_tags"`
}

// TagRow is a known tag.
type TagRow struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex"`
}

// SimilarArtistRow links a seed artist to a similar artist with a raw
// similarity score.
type SimilarArtistRow struct {
	ID          uint   `gorm:"primaryKey"`
	ArtistMBID  string `gorm:"index"`
	SimilarMBID string
	Score       float64
}

// Index is a local sqlite-backed implementation of the tag and artist search
// capabilities.
type Index struct {
	db     *gorm.DB
	logger zerolog.Logger
}

var _ search.TagSearch = (*Index)(nil)
var _ search.ArtistSearch = (*Index)(nil)

// Open opens or creates the index database at path. Use ":memory:" for an
// ephemeral index.
func Open(path string, logger zerolog.Logger) (*Index, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open index %s: %w", path, err)
	}

	if err := db.AutoMigrate(&RecordingRow{}, &TagRow{}, &SimilarArtistRow{}); err != nil {
		return nil, fmt.Errorf("migrate index: %w", err)
	}

	return &Index{
		db:     db,
		logger: logger.With().Str("component", "localindex").Logger(),
	}, nil
}

// AddRecordings inserts recordings with their tags.
func (ix *Index) AddRecordings(ctx context.Context, rows ...*RecordingRow) error {
	for _, row := range rows {
		for i, tag := range row.Tags {
			// Reuse existing tag rows so the unique index holds.
			var existing TagRow
			err := ix.db.WithContext(ctx).Where("name = ?", tag.Name).First(&existing).Error
			if err == nil {
				row.Tags[i] = existing
			}
		}
		if err := ix.db.WithContext(ctx).Create(row).Error; err != nil {
			return fmt.Errorf("insert recording %s: %w", row.MBID, err)
		}
	}
	return nil
}

// AddSimilarArtists inserts similarity edges.
func (ix *Index) AddSimilarArtists(ctx context.Context, rows ...*SimilarArtistRow) error {
	for _, row := range rows {
		if err := ix.db.WithContext(ctx).Create(row).Error; err != nil {
			return fmt.Errorf("insert similarity %s->%s: %w", row.ArtistMBID, row.SimilarMBID, err)
		}
	}
	return nil
}

// Direction implements search.TagSearch and search.ArtistSearch: the index
// ranks the most popular recordings first.
func (ix *Index) Direction() search.Direction {
	return search.PopularityDescending
}

// RecordingsByTag implements search.TagSearch. Matches are ranked by
// popularity; when the percentile band holds fewer than maxResults matches it
// is widened with the closest recordings outside the band.
func (ix *Index) RecordingsByTag(ctx context.Context, tags []string, op search.Operator, window mode.Window, maxResults int) ([]*entities.Recording, error) {
	if len(tags) == 0 {
		return nil, fmt.Errorf("localindex: no tags given")
	}

	query := ix.db.WithContext(ctx).
		Model(&RecordingRow{}).
		Joins("JOIN recording_tags ON recording_tags.recording_row_id = recording_rows.id").
		Joins("JOIN tag_rows ON tag_rows.id = recording_tags.tag_row_id").
		Where("tag_rows.name IN ?", tags).
		Group("recording_rows.id").
		Order("recording_rows.popularity DESC")

	if op == search.OperatorAnd {
		query = query.Having("COUNT(DISTINCT tag_rows.id) = ?", len(tags))
	}

	var rows []RecordingRow
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("tag search: %w", err)
	}

	picked := widenWindow(rows, window, maxResults)
	ix.logger.Debug().
		Strs("tags", tags).
		Str("operator", string(op)).
		Int("matched", len(rows)).
		Int("returned", len(picked)).
		Msg("tag search")

	return toRecordings(picked), nil
}

// RecordingsByArtist implements search.ArtistSearch. For each seed artist it
// collects similar artists from the index's similarity edges (overhyped acts
// down-weighted), then returns band-constrained recordings per artist.
func (ix *Index) RecordingsByArtist(ctx context.Context, artistMBIDs []string, window mode.Window, maxPerArtist, maxSimilarArtists int) (map[string][]*entities.Recording, error) {
	out := make(map[string][]*entities.Recording)

	for _, seed := range artistMBIDs {
		artists := append([]string{seed}, ix.similarArtists(ctx, seed, maxSimilarArtists)...)
		for _, artistMBID := range artists {
			if _, done := out[artistMBID]; done {
				continue
			}

			var rows []RecordingRow
			err := ix.db.WithContext(ctx).
				Where("artist_mb_id = ?", artistMBID).
				Order("popularity DESC").
				Find(&rows).Error
			if err != nil {
				return nil, fmt.Errorf("artist search %s: %w", artistMBID, err)
			}
			if len(rows) == 0 {
				continue
			}

			picked := widenWindow(rows, window, maxPerArtist)
			out[artistMBID] = toRecordings(picked)
		}
	}

	return out, nil
}

// similarArtists returns up to max similar artist mbids ordered by weighted
// similarity.
func (ix *Index) similarArtists(ctx context.Context, seed string, max int) []string {
	if max <= 0 {
		return nil
	}

	var edges []SimilarArtistRow
	if err := ix.db.WithContext(ctx).Where("artist_mb_id = ?", seed).Find(&edges).Error; err != nil {
		ix.logger.Debug().Err(err).Str("artist", seed).Msg("similarity lookup failed")
		return nil
	}

	sort.SliceStable(edges, func(i, j int) bool {
		return search.WeightSimilarity(edges[i].SimilarMBID, edges[i].Score) >
			search.WeightSimilarity(edges[j].SimilarMBID, edges[j].Score)
	})

	if len(edges) > max {
		edges = edges[:max]
	}
	out := make([]string, 0, len(edges))
	for _, edge := range edges {
		out = append(out, edge.SimilarMBID)
	}
	return out
}

// widenWindow slices the percentile band out of the ranked rows and, when it
// holds fewer than max rows, grows it with the closest rows outside the band
// rather than returning too little.
func widenWindow(ranked []RecordingRow, window mode.Window, max int) []RecordingRow {
	if max <= 0 || len(ranked) == 0 {
		return nil
	}

	list := plist.New(ranked)
	head, err := list.SliceByPercent(0, window.Start)
	if err != nil {
		return nil
	}
	band, err := list.SliceByPercent(window.Start, window.Stop)
	if err != nil {
		return nil
	}

	picked := make([]RecordingRow, 0, max)
	picked = append(picked, band...)

	lo, hi := len(head), len(head)+len(band)
	for len(picked) < max && (lo > 0 || hi < len(ranked)) {
		if lo > 0 {
			lo--
			picked = append(picked, ranked[lo])
		}
		if len(picked) < max && hi < len(ranked) {
			picked = append(picked, ranked[hi])
			hi++
		}
	}

	if len(picked) > max {
		picked = picked[:max]
	}
	return picked
}

func toRecordings(rows []RecordingRow) []*entities.Recording {
	out := make([]*entities.Recording, 0, len(rows))
	for _, row := range rows {
		rec := &entities.Recording{
			Entity:   entities.NewEntity(row.MBID, row.Name),
			Duration: time.Duration(row.DurationMS) * time.Millisecond,
			Year:     row.Year,
		}
		rec.Ranking = row.Popularity
		if row.ArtistCreditID != 0 {
			rec.ArtistCredit = &entities.ArtistCredit{
				Entity:         entities.NewEntity("", row.ArtistCreditName),
				ArtistCreditID: row.ArtistCreditID,
			}
		}
		out = append(out, rec)
	}
	return out
}
