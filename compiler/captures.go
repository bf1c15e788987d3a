// Copyright 2025 The Waymount Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package compiler

import (
	"regexp"
	"strings"
)

// Index canonicalizes a compiled pattern plus an arbitrary names declaration
// into a single mapping: logical name to ordered capture positions.
//
// Names declarations come in several shapes (an ordered sequence with gaps,
// a name-to-position mapping, inline textual markers, or native named-group
// syntax); all of them normalize to the same triple of matcher, flat name
// sequence, and grouped positions. Positions are 1-based, following regex
// engine convention.
type Index struct {
	re       *regexp.Regexp
	names    []string
	captures map[string][]int
}

// newIndex groups the capture-order names into the canonical positions map.
// A nil names slice means "read the pattern's own named groups". Equal
// non-empty names share an entry with their positions in ascending order;
// this is how a name declared in mutually exclusive optional branches maps
// to several positions, of which at most one is non-empty per match.
func newIndex(re *regexp.Regexp, names []string) *Index {
	if names == nil {
		sub := re.SubexpNames()
		if len(sub) > 1 {
			names = sub[1:]
		}
	}
	// Pad to the full capture count so positions always line up.
	if n := re.NumSubexp(); len(names) < n {
		padded := make([]string, n)
		copy(padded, names)
		names = padded
	} else if len(names) > n {
		names = names[:n]
	}

	captures := make(map[string][]int, len(names))
	for i, name := range names {
		if name == "" {
			continue
		}
		captures[name] = append(captures[name], i+1)
	}
	return &Index{re: re, names: names, captures: captures}
}

// IndexRegexp builds an Index with no names declaration. Native named
// captures, if any, are read back from the engine; a pattern with no names
// at all yields an empty sequence and mapping, which is the valid, common
// case for fully static routes.
func IndexRegexp(re *regexp.Regexp) *Index {
	return newIndex(re, nil)
}

// IndexNames builds an Index from an ordered names sequence. Empty-string
// entries are gaps for unnamed captures; positions are assigned 1..k in
// source order. A sequence shorter than the capture count is padded with
// gaps, a longer one is truncated.
func IndexNames(re *regexp.Regexp, names []string) *Index {
	if names == nil {
		names = []string{}
	}
	return newIndex(re, names)
}

// IndexPositions builds an Index from a name-to-position mapping.
func IndexPositions(re *regexp.Regexp, positions map[string]int) *Index {
	names := make([]string, re.NumSubexp())
	for name, pos := range positions {
		if pos >= 1 && pos <= len(names) {
			names[pos-1] = name
		}
	}
	return newIndex(re, names)
}

// Parse recognizes the textual capture encodings in a raw regex source,
// normalizes them into true captures, compiles the result, and returns the
// canonical Index.
//
// Two encodings are recognized at every parenthesis depth: the inline
// marker form "(?:<name>...)", rewritten to a plain capturing group with
// the name recorded separately, and the native form "(?P<name>...)", whose
// names are read back from the engine after compilation.
//
// An explicit names declaration, when supplied, wins over both textual
// encodings position by position.
func Parse(source string, names []string) (*Index, error) {
	normalized, markers := normalizeMarkers(source)
	re, err := regexp.Compile(normalized)
	if err != nil {
		return nil, err
	}

	native := re.SubexpNames()[1:]
	merged := make([]string, re.NumSubexp())
	for i := range merged {
		switch {
		case i < len(names) && names[i] != "":
			merged[i] = names[i]
		case i < len(markers) && markers[i] != "":
			merged[i] = markers[i]
		case native[i] != "":
			merged[i] = native[i]
		}
	}
	return newIndex(re, merged), nil
}

// Regexp returns the compiled matcher.
func (ix *Index) Regexp() *regexp.Regexp {
	return ix.re
}

// Names returns the flat capture-order name sequence, empty strings marking
// anonymous positions.
func (ix *Index) Names() []string {
	return ix.names
}

// Captures returns the mapping from logical name to ordered capture
// positions. Callers must not mutate the returned map.
func (ix *Index) Captures() map[string][]int {
	return ix.captures
}

// Positions returns the capture positions for one name, or nil.
func (ix *Index) Positions(name string) []int {
	return ix.captures[name]
}

// Extract maps a submatch slice (as returned by FindStringSubmatch) to
// parameter values. For a name with several mutually exclusive positions,
// the first non-empty position wins.
func (ix *Index) Extract(submatches []string) map[string]string {
	params := make(map[string]string, len(ix.captures))
	for name, positions := range ix.captures {
		for _, pos := range positions {
			if pos < len(submatches) && submatches[pos] != "" {
				params[name] = submatches[pos]
				break
			}
		}
	}
	return params
}

// normalizeMarkers rewrites every "(?:<name>" marker group in source into a
// plain capturing group and records the marker names by capture position.
// Character classes and escapes are honored so a parenthesis inside them is
// never treated as a group boundary.
func normalizeMarkers(source string) (string, []string) {
	var out strings.Builder
	var markers []string
	inClass := false

	for i := 0; i < len(source); i++ {
		c := source[i]
		switch {
		case c == '\\' && i+1 < len(source):
			out.WriteByte(c)
			out.WriteByte(source[i+1])
			i++
			continue
		case inClass:
			if c == ']' {
				inClass = false
			}
			out.WriteByte(c)
			continue
		case c == '[':
			inClass = true
			out.WriteByte(c)
			continue
		case c != '(':
			out.WriteByte(c)
			continue
		}

		// At an unescaped group opener.
		rest := source[i:]
		if strings.HasPrefix(rest, "(?:<") {
			if end := strings.IndexByte(rest, '>'); end > 4 {
				markers = append(markers, rest[4:end])
				out.WriteByte('(')
				i += end // skip past "(?:<name>"
				continue
			}
		}
		if strings.HasPrefix(rest, "(?") && !strings.HasPrefix(rest, "(?P<") {
			// Non-capturing group or flags: no capture position.
			out.WriteByte(c)
			continue
		}
		// Plain or natively named capture.
		markers = append(markers, "")
		out.WriteByte(c)
	}
	return out.String(), markers
}
