/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package blend

import (
	"fmt"

	"github.com/friendsincode/skald/entities"
	"github.com/friendsincode/skald/pipeline"
)

// Element is the terminal pipeline stage that blends one recording stream per
// connected source. Sources are wired in term order; weights are parallel to
// them.
type Element struct {
	labels  []string
	weights []int
	opts    Options
}

// NewElement builds the blend stage. labels and weights must stay parallel to
// the sources connected afterwards.
func NewElement(labels []string, weights []int, opts Options) *Element {
	return &Element{labels: labels, weights: weights, opts: opts}
}

// Name implements pipeline.Element.
func (e *Element) Name() string { return "weigh-and-blend" }

// Inputs implements pipeline.Element.
func (e *Element) Inputs() []entities.Kind { return []entities.Kind{entities.KindRecording} }

// Outputs implements pipeline.Element.
func (e *Element) Outputs() []entities.Kind { return []entities.Kind{entities.KindRecording} }

// Read implements pipeline.Element.
func (e *Element) Read(pctx *pipeline.Context, inputs [][]entities.Item) ([]entities.Item, error) {
	if len(inputs) != len(e.weights) {
		return nil, fmt.Errorf("blend: %d sources connected but %d weights given", len(inputs), len(e.weights))
	}

	streams := make([]Stream, len(inputs))
	for i, items := range inputs {
		label := fmt.Sprintf("term %d", i)
		if i < len(e.labels) {
			label = e.labels[i]
		}
		streams[i] = Stream{
			Source:     label,
			Weight:     e.weights[i],
			Recordings: pipeline.Recordings(items),
		}
	}

	blended := WeighAndBlend(pctx.RNG, streams, e.opts)
	if len(blended) == 0 {
		return nil, pipeline.ErrNoData
	}

	pctx.Logger.Debug().
		Int("streams", len(streams)).
		Int("recordings", len(blended)).
		Msg("blended recording streams")
	return pipeline.RecordingItems(blended), nil
}
