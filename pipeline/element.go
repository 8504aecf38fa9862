/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package pipeline implements the element graph and its pull-based execution
// protocol. Elements declare the entity kinds they accept and produce, are
// wired into a DAG with connect-time type checking, and are evaluated
// depth-first from the terminal node.
package pipeline

import (
	"errors"
	"fmt"
	"time"

	"github.com/friendsincode/skald/entities"
	"github.com/friendsincode/skald/telemetry"
)

// Element is a pipeline stage. Read is the only place business logic lives:
// it receives one result list per connected source, in source order.
type Element interface {
	Name() string
	Inputs() []entities.Kind
	Outputs() []entities.Kind
	Read(pctx *Context, inputs [][]entities.Item) ([]entities.Item, error)
}

// Node wires an element into a graph.
type Node struct {
	element Element
	sources []*Node
}

// NewNode wraps an element with no sources connected yet.
func NewNode(e Element) *Node {
	return &Node{element: e}
}

// Element returns the wrapped element.
func (n *Node) Element() Element { return n.element }

// Sources returns the upstream nodes in connection order.
func (n *Node) Sources() []*Node { return n.sources }

// Connect wires upstream nodes. An element with an empty inputs contract is a
// generator and accepts no sources. Every source must produce at least one
// entity kind the element accepts; a mismatch fails here, not during Generate.
func (n *Node) Connect(sources ...*Node) error {
	accepted := n.element.Inputs()
	if len(accepted) == 0 && len(sources) > 0 {
		return fmt.Errorf("pipeline: element %s is a generator and accepts no sources", n.element.Name())
	}

	for _, src := range sources {
		if !kindsIntersect(src.element.Outputs(), accepted) {
			return fmt.Errorf("%w: %s produces %v, %s accepts %v",
				ErrTypeMismatch, src.element.Name(), src.element.Outputs(),
				n.element.Name(), accepted)
		}
	}

	n.sources = append(n.sources, sources...)
	return nil
}

// Check recursively verifies every node with a non-empty inputs contract has
// sources connected. It exists to catch wiring mistakes with a descriptive
// error before the first Generate.
func (n *Node) Check() error {
	if len(n.element.Inputs()) > 0 && len(n.sources) == 0 {
		return fmt.Errorf("%w: %s", ErrNotConnected, n.element.Name())
	}
	for _, src := range n.sources {
		if err := src.Check(); err != nil {
			return err
		}
	}
	return nil
}

// Generate evaluates the subtree rooted at this node: sources first, strictly
// left to right, then the element's own Read. ErrNoData from any source stops
// propagation immediately and the whole pipeline yields it.
func (n *Node) Generate(pctx *Context) ([]entities.Item, error) {
	inputs := make([][]entities.Item, 0, len(n.sources))
	for _, src := range n.sources {
		items, err := src.Generate(pctx)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, items)
	}

	start := time.Now()
	items, err := n.element.Read(pctx, inputs)
	telemetry.ElementDuration.WithLabelValues(n.element.Name()).Observe(time.Since(start).Seconds())
	if err != nil {
		if errors.Is(err, ErrNoData) {
			pctx.Logger.Debug().Str("element", n.element.Name()).Msg("element produced no data")
			return nil, err
		}
		var perr *Error
		if errors.As(err, &perr) {
			return nil, err
		}
		return nil, &Error{Element: n.element.Name(), Err: err}
	}

	pctx.Logger.Debug().
		Str("element", n.element.Name()).
		Int("items", len(items)).
		Msg("element generated")
	return items, nil
}

func kindsIntersect(a, b []entities.Kind) bool {
	for _, ka := range a {
		for _, kb := range b {
			if ka == kb {
				return true
			}
		}
	}
	return false
}

// Recordings filters the recordings out of a mixed item list, preserving
// order.
func Recordings(items []entities.Item) []*entities.Recording {
	out := make([]*entities.Recording, 0, len(items))
	for _, item := range items {
		if rec, ok := item.(*entities.Recording); ok {
			out = append(out, rec)
		}
	}
	return out
}

// RecordingItems wraps recordings back into the item form elements exchange.
func RecordingItems(recs []*entities.Recording) []entities.Item {
	out := make([]entities.Item, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec)
	}
	return out
}
