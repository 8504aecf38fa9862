/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package mode maps the coarse easy/medium/hard difficulty knob onto
// percentile windows over ranked candidate pools.
package mode

import "fmt"

// Mode is the difficulty/popularity knob.
type Mode string

const (
	Easy   Mode = "easy"
	Medium Mode = "medium"
	Hard   Mode = "hard"
)

// Parse returns the mode named by s.
func Parse(s string) (Mode, error) {
	switch Mode(s) {
	case Easy, Medium, Hard:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown mode %q", s)
}

// Window is a [Start%, Stop%) band over a ranked candidate list.
type Window struct {
	Start int
	Stop  int
}

// Window returns the percentile band for the mode. Larger window indices mean
// less popular material: easy covers the mainstream end, hard the deep cuts.
func (m Mode) Window() Window {
	switch m {
	case Easy:
		return Window{Start: 66, Stop: 100}
	case Hard:
		return Window{Start: 0, Stop: 33}
	default:
		return Window{Start: 33, Stop: 66}
	}
}

// Invert flips the window for pools ranked in the opposite sense (lower
// percent = more popular). The inversion is always an explicit step at the
// call site consuming such a pool, never implicit in the mode mapping.
func (w Window) Invert() Window {
	return Window{Start: 100 - w.Stop, Stop: 100 - w.Start}
}
