/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package search

// OverhypedFactor scales the similarity score of globally famous acts so that
// every similar-artist expansion does not collapse onto the same handful of
// names.
const OverhypedFactor = 0.3

// overhypedArtists lists artist mbids whose similarity scores are
// down-weighted by OverhypedFactor.
var overhypedArtists = map[string]struct{}{
	"b10bbbfc-cf9e-42e0-be17-e2c3e1d2600d": {}, // The Beatles
	"83d91898-7763-47d7-b03b-b92132375c47": {}, // Pink Floyd
	"a74b1b7f-71a5-4011-9441-d0b5e4122711": {}, // Radiohead
	"8bfac288-ccc5-448d-9573-c33ea2aa5c30": {}, // Red Hot Chili Peppers
	"9c9f1380-2516-4fc9-a3e6-f9f61941d090": {}, // Muse
	"cc197bad-dc9c-440d-a5b5-d52ba2e14234": {}, // Coldplay
	"65f4f0c5-ef9e-490c-aee3-909e7ae6b2ab": {}, // Metallica
	"5b11f4ce-a62d-471e-81fc-a69a8278c7da": {}, // Nirvana
	"f59c5520-5f46-4d2c-b2c4-822eb7db3c9a": {}, // Linkin Park
	"cc0b7089-c08d-4c10-b6b0-873582c17fd6": {}, // System of a Down
}

// IsOverhyped reports whether the artist mbid is on the down-weight list.
func IsOverhyped(artistMBID string) bool {
	_, ok := overhypedArtists[artistMBID]
	return ok
}

// WeightSimilarity applies the overhyped down-weighting to a raw similarity
// score.
func WeightSimilarity(artistMBID string, score float64) float64 {
	if IsOverhyped(artistMBID) {
		return score * OverhypedFactor
	}
	return score
}
