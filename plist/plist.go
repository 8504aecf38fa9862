/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package plist provides percentile-window slicing and weighted random
// sampling over ranked candidate lists. Callers are responsible for
// pre-sorting; a List never reorders its elements.
package plist

import (
	"errors"
	"math/rand"
)

// ErrInvalidRange reports a percent argument outside [0,100] or a window where
// start exceeds stop.
var ErrInvalidRange = errors.New("plist: percent range must satisfy 0 <= start <= stop <= 100")

// List wraps an ordered slice, typically ranked by descending relevance.
type List[T any] struct {
	items []T
}

// New wraps items without copying.
func New[T any](items []T) List[T] {
	return List[T]{items: items}
}

// Len returns the number of elements.
func (l List[T]) Len() int { return len(l.items) }

// All returns the underlying slice.
func (l List[T]) All() []T { return l.items }

// SliceByPercent returns the sub-sequence covering the [startPct, stopPct)
// percentile window. Indices are computed as pct*len/100. An empty list yields
// an empty result for any valid range.
func (l List[T]) SliceByPercent(startPct, stopPct int) ([]T, error) {
	if err := checkRange(startPct, stopPct); err != nil {
		return nil, err
	}
	start := startPct * len(l.items) / 100
	stop := stopPct * len(l.items) / 100
	return l.items[start:stop], nil
}

// RandomSample draws up to count distinct elements uniformly at random,
// without replacement, from the percentile window. A window smaller than count
// yields every element of the window.
func (l List[T]) RandomSample(rng *rand.Rand, startPct, stopPct, count int) ([]T, error) {
	window, err := l.SliceByPercent(startPct, stopPct)
	if err != nil {
		return nil, err
	}
	if count >= len(window) {
		out := make([]T, len(window))
		copy(out, window)
		return out, nil
	}

	perm := rng.Perm(len(window))
	out := make([]T, 0, count)
	for _, idx := range perm[:count] {
		out = append(out, window[idx])
	}
	return out, nil
}

// Pick draws a single random element from the percentile window. The second
// return is false when the window is empty.
func (l List[T]) Pick(rng *rand.Rand, startPct, stopPct int) (T, bool, error) {
	var zero T
	window, err := l.SliceByPercent(startPct, stopPct)
	if err != nil {
		return zero, false, err
	}
	if len(window) == 0 {
		return zero, false, nil
	}
	return window[rng.Intn(len(window))], true, nil
}

func checkRange(startPct, stopPct int) error {
	if startPct < 0 || stopPct > 100 || startPct > stopPct {
		return ErrInvalidRange
	}
	return nil
}
