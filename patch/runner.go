/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package patch

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/friendsincode/skald/entities"
	"github.com/friendsincode/skald/mode"
	"github.com/friendsincode/skald/pipeline"
	"github.com/friendsincode/skald/telemetry"
)

// RunOptions carries per-run inputs to the runner.
type RunOptions struct {
	Mode mode.Mode

	// Seed seeds the run's RNG for reproducible output. Zero means a random
	// seed.
	Seed int64

	// UserName is recorded on the generated playlist, when known.
	UserName string
}

// Runner executes a patch's element graph and packages the result.
type Runner struct {
	logger zerolog.Logger
}

// NewRunner returns a runner logging through the given logger.
func NewRunner(logger zerolog.Logger) *Runner {
	return &Runner{logger: logger.With().Str("component", "patch").Logger()}
}

// Generate runs the patch once. A run that yields no candidates at all
// returns an error satisfying errors.Is(err, pipeline.ErrNoData); callers
// present that as "no matching recordings", not as a failure.
func (r *Runner) Generate(ctx context.Context, p Patch, opts RunOptions) (playlist *entities.Playlist, err error) {
	if opts.Mode == "" {
		opts.Mode = mode.Easy
	}

	ctx, span := telemetry.StartPatchSpan(ctx, p.Slug(), string(opts.Mode))
	defer func() {
		emitted := 0
		if playlist != nil {
			emitted = len(playlist.Recordings)
		}
		telemetry.EndPatchSpan(span, emitted, err)
	}()

	start := time.Now()
	logger := r.logger.With().Str("patch", p.Slug()).Logger()

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	pctx := pipeline.NewContext(ctx, logger, opts.Mode, rng)

	root, err := p.Create(pctx)
	if err != nil {
		telemetry.PatchRuns.WithLabelValues(p.Slug(), "error").Inc()
		return nil, err
	}
	if err = root.Check(); err != nil {
		telemetry.PatchRuns.WithLabelValues(p.Slug(), "error").Inc()
		return nil, err
	}

	items, err := root.Generate(pctx)
	if err != nil {
		if errors.Is(err, pipeline.ErrNoData) {
			logger.Info().Msg("patch produced no recordings")
			telemetry.PatchRuns.WithLabelValues(p.Slug(), "empty").Inc()
			return nil, err
		}
		logger.Error().Err(err).Msg("patch run failed")
		telemetry.PatchRuns.WithLabelValues(p.Slug(), "error").Inc()
		return nil, err
	}

	recs := pipeline.Recordings(items)
	playlist = r.buildPlaylist(p, pctx, recs, opts)

	elapsed := time.Since(start)
	telemetry.PatchRuns.WithLabelValues(p.Slug(), "ok").Inc()
	telemetry.PatchDuration.WithLabelValues(p.Slug()).Observe(elapsed.Seconds())
	telemetry.RecordingsEmitted.WithLabelValues(p.Slug()).Add(float64(len(recs)))

	logger.Info().
		Int("recordings", len(recs)).
		Dur("elapsed", elapsed).
		Msg("patch run complete")
	return playlist, nil
}

func (r *Runner) buildPlaylist(p Patch, pctx *pipeline.Context, recs []*entities.Recording, opts RunOptions) *entities.Playlist {
	playlist := &entities.Playlist{
		Entity:     entities.NewEntity("", p.Description()),
		Recordings: recs,
		PatchSlug:  p.Slug(),
		UserName:   opts.UserName,
	}
	if expl := pctx.Explanations(); len(expl) > 0 {
		playlist.Description = strings.Join(expl, " ")
	}
	if fb := pctx.Feedback(); len(fb) > 0 {
		playlist.MergeMetadata(entities.MetadataMap{"feedback": fb})
	}
	return playlist
}
