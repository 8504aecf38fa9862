/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package pipeline

import (
	"errors"
	"fmt"
)

// ErrTypeMismatch reports wiring an element to a source whose outputs share no
// entity kind with the element's declared inputs. It is raised at connect
// time, before any Generate call.
var ErrTypeMismatch = errors.New("pipeline: source outputs do not match element inputs")

// ErrNotConnected reports an element with a non-empty inputs contract that has
// no sources wired. Check surfaces it before the first Generate.
var ErrNotConnected = errors.New("pipeline: element has no sources connected")

// ErrNoData is the insufficient-data sentinel: an upstream stage legitimately
// produced nothing, so the whole run yields no playlist. It is distinct from a
// hard failure and from an empty result list.
var ErrNoData = errors.New("pipeline: no data available")

// Error is the distinguished hard-failure kind for remote fetch and data
// problems during Generate. The orchestrator catches it once at the top level
// and turns it into user feedback.
type Error struct {
	Element string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("pipeline: element %s failed: %v", e.Element, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Failf builds a pipeline failure attributed to the named element.
func Failf(element, format string, args ...any) error {
	return &Error{Element: element, Err: fmt.Errorf(format, args...)}
}
