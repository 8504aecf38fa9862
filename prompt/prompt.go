/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package prompt parses the free-text radio prompt language into structured
// query terms. A prompt is one or more whitespace-separated terms of the form
//
//	entity:value[:weight[:opt1,opt2,...]]
//
// where values may be parenthesized or quoted to contain spaces and commas.
// All parse failures are reported as *ParseError with a description suitable
// for showing to the user who typed the prompt.
package prompt

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Entity is the kind of a prompt term.
type Entity string

const (
	EntityArtist     Entity = "artist"
	EntityTag        Entity = "tag"
	EntityCollection Entity = "collection"
	EntityPlaylist   Entity = "playlist"
	EntityStats      Entity = "stats"
	EntityRecs       Entity = "recs"
	EntityCountry    Entity = "country"
)

// entityAliases maps every accepted entity prefix to its canonical form.
var entityAliases = map[string]Entity{
	"artist":     EntityArtist,
	"a":          EntityArtist,
	"tag":        EntityTag,
	"t":          EntityTag,
	"collection": EntityCollection,
	"playlist":   EntityPlaylist,
	"p":          EntityPlaylist,
	"stats":      EntityStats,
	"s":          EntityStats,
	"recs":       EntityRecs,
	"r":          EntityRecs,
	"country":    EntityCountry,
}

// options is the fixed vocabulary of per-term options: difficulty overrides,
// boolean toggles and stats time ranges.
var options = map[string]struct{}{
	"easy":       {},
	"medium":     {},
	"hard":       {},
	"nosim":      {},
	"week":       {},
	"month":      {},
	"quarter":    {},
	"half":       {},
	"year":       {},
	"all_time":   {},
	"this_week":  {},
	"this_month": {},
	"this_year":  {},
}

// ParseError describes why a prompt could not be parsed. It carries the
// offending fragment and never propagates as any other error type.
type ParseError struct {
	Msg      string
	Fragment string
}

func (e *ParseError) Error() string {
	if e.Fragment == "" {
		return "prompt: " + e.Msg
	}
	return fmt.Sprintf("prompt: %s in %q", e.Msg, e.Fragment)
}

func parseErrorf(fragment, format string, args ...any) error {
	return &ParseError{Msg: fmt.Sprintf(format, args...), Fragment: fragment}
}

// Term is one parsed unit of a radio prompt.
type Term struct {
	Entity Entity
	Values []string
	Weight int
	Opts   []string
}

// String re-serializes the term to canonical prompt syntax. Parsing the
// result yields an identical term.
func (t Term) String() string {
	var sb strings.Builder
	sb.WriteString(string(t.Entity))
	sb.WriteString(":(")
	sb.WriteString(strings.Join(t.Values, ","))
	sb.WriteString(")")
	if t.Weight != 1 || len(t.Opts) > 0 {
		sb.WriteString(":")
		sb.WriteString(strconv.Itoa(t.Weight))
	}
	if len(t.Opts) > 0 {
		sb.WriteString(":")
		sb.WriteString(strings.Join(t.Opts, ","))
	}
	return sb.String()
}

// Parse turns a prompt line into its ordered list of terms.
func Parse(text string) ([]Term, error) {
	fields, err := splitFields(text)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, &ParseError{Msg: "empty prompt"}
	}

	terms := make([]Term, 0, len(fields))
	var bare []string
	flushBare := func() {
		if len(bare) == 0 {
			return
		}
		// Unprefixed text is sugar for artist:(the whole bare text).
		value := strings.Trim(strings.Join(bare, " "), `"`)
		terms = append(terms, Term{Entity: EntityArtist, Values: []string{value}, Weight: 1})
		bare = nil
	}

	for _, field := range fields {
		if isBare(field) {
			bare = append(bare, field)
			continue
		}
		flushBare()
		term, err := parseTerm(field)
		if err != nil {
			return nil, err
		}
		terms = append(terms, term)
	}
	flushBare()
	return terms, nil
}

// isBare reports whether the field carries no entity prefix at all. A field
// with a colon-delimited prefix is never bare; a typo'd prefix stays a hard
// error rather than degrading to free text.
func isBare(field string) bool {
	if strings.HasPrefix(field, "#") {
		return false
	}
	_, _, found := cutEntityPrefix(field)
	return !found
}

// splitFields splits the prompt on whitespace, keeping parenthesized and
// quoted spans intact. Unbalanced delimiters fail here with a description of
// which side is missing.
func splitFields(text string) ([]string, error) {
	var fields []string
	var current strings.Builder
	depth := 0
	inQuote := false

	flush := func() {
		if current.Len() > 0 {
			fields = append(fields, current.String())
			current.Reset()
		}
	}

	for _, r := range text {
		switch {
		case r == '"':
			inQuote = !inQuote
			current.WriteRune(r)
		case r == '(' && !inQuote:
			depth++
			current.WriteRune(r)
		case r == ')' && !inQuote:
			depth--
			if depth < 0 {
				return nil, parseErrorf(text, "closing parenthesis with no opening parenthesis")
			}
			current.WriteRune(r)
		case (r == ' ' || r == '\t') && depth == 0 && !inQuote:
			flush()
		default:
			current.WriteRune(r)
		}
	}

	if inQuote {
		return nil, parseErrorf(text, "unbalanced quotes: closing quote is missing")
	}
	if depth > 0 {
		return nil, parseErrorf(text, "unbalanced parentheses: closing parenthesis is missing")
	}
	flush()
	return fields, nil
}

func parseTerm(field string) (Term, error) {
	// #word and #(word list) are sugar for tag terms.
	if strings.HasPrefix(field, "#") {
		field = "tag:" + field[1:]
	}

	prefix, rest, found := cutEntityPrefix(field)
	if !found {
		// No recognizable entity prefix: the whole bare text is an artist name.
		return Term{Entity: EntityArtist, Values: []string{strings.TrimSpace(field)}, Weight: 1}, nil
	}

	entity, ok := entityAliases[prefix]
	if !ok {
		return Term{}, parseErrorf(field, "unrecognized entity %q", prefix)
	}

	value, rest, err := cutValue(rest, field)
	if err != nil {
		return Term{}, err
	}

	term := Term{Entity: entity, Values: splitValues(value), Weight: 1}
	if len(term.Values) == 0 {
		return Term{}, parseErrorf(field, "term has no value")
	}

	if rest == "" {
		return term, nil
	}

	weightStr, optsStr, hasOpts := strings.Cut(rest, ":")
	// An empty weight field ("artist:(x)::easy") keeps the default of 1.
	if weightStr != "" {
		weight, err := strconv.Atoi(weightStr)
		if err != nil || weight < 0 {
			return Term{}, parseErrorf(field, "weight must be a positive integer, got %q", weightStr)
		}
		term.Weight = weight
	}

	if hasOpts {
		opts, err := parseOpts(optsStr, field)
		if err != nil {
			return Term{}, err
		}
		term.Opts = opts
	}
	return term, nil
}

// cutEntityPrefix splits off the text before the first colon, if any. The
// prefix is only treated as an entity name when it looks like one: UUIDs and
// multi-word text fall through to the bare-artist rule.
func cutEntityPrefix(field string) (prefix, rest string, found bool) {
	idx := strings.IndexByte(field, ':')
	if idx < 0 {
		return "", field, false
	}
	prefix = field[:idx]
	if strings.ContainsAny(prefix, " ()\"") {
		return "", field, false
	}
	return prefix, field[idx+1:], true
}

// cutValue consumes the value portion: a parenthesized group, a quoted
// string, or bare text up to the next colon. It returns what follows the
// value's separating colon, if anything.
func cutValue(s, field string) (value, rest string, err error) {
	switch {
	case strings.HasPrefix(s, "("):
		end := strings.IndexByte(s, ')')
		if end < 0 {
			return "", "", parseErrorf(field, "unbalanced parentheses: closing parenthesis is missing")
		}
		value = s[1:end]
		rest = s[end+1:]
	case strings.HasPrefix(s, `"`):
		end := strings.IndexByte(s[1:], '"')
		if end < 0 {
			return "", "", parseErrorf(field, "unbalanced quotes: closing quote is missing")
		}
		value = s[1 : end+1]
		rest = s[end+2:]
	default:
		var found bool
		value, rest, found = strings.Cut(s, ":")
		if !found {
			return value, "", nil
		}
		return value, rest, nil
	}

	if rest == "" {
		return value, "", nil
	}
	if !strings.HasPrefix(rest, ":") {
		return "", "", parseErrorf(field, "unexpected text %q after value", rest)
	}
	return value, rest[1:], nil
}

func splitValues(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseOpts(s, field string) ([]string, error) {
	if s == "" {
		return nil, parseErrorf(field, "trailing colon with no options")
	}
	parts := strings.Split(s, ",")
	opts := make([]string, 0, len(parts))
	for _, part := range parts {
		opt := strings.TrimSpace(part)
		if opt == "" {
			return nil, parseErrorf(field, "trailing comma in options")
		}
		if _, ok := options[opt]; !ok {
			return nil, parseErrorf(field, "unknown option %q", opt)
		}
		opts = append(opts, opt)
	}
	return opts, nil
}

// IsMBID reports whether the value is a UUID literal naming an entity
// directly rather than a free-text name.
func IsMBID(value string) bool {
	_, err := uuid.Parse(value)
	return err == nil && len(value) == 36
}

// AsParseError unwraps err as a *ParseError, if it is one.
func AsParseError(err error) (*ParseError, bool) {
	var perr *ParseError
	ok := errors.As(err, &perr)
	return perr, ok
}
