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

// StaticSegments returns the leading run of literal path segments that
// every match of the pattern must contain, for use by dispatch-index
// construction. The walk is textual over the pattern source: anchors are
// stripped, the source is split on "/", and the run stops at the first
// segment containing a capture boundary, alternation, or quantifier.
//
// This is a prefix, not a full decomposition: "^/foo/(bar|baz)/x" yields
// only ["foo"], and a pattern whose very first segment is dynamic yields
// an empty result.
func StaticSegments(re *regexp.Regexp) []string {
	src := re.String()
	for _, prefix := range []string{`\A`, "^"} {
		src = strings.TrimPrefix(src, prefix)
	}
	for _, suffix := range []string{`\z`, `\Z`, "$"} {
		src = strings.TrimSuffix(src, suffix)
	}

	var out []string
	for _, seg := range strings.Split(src, "/") {
		if seg == "" {
			continue
		}
		lit, ok := literalSegment(seg)
		if !ok {
			break
		}
		out = append(out, lit)
	}
	return out
}

// literalSegment unescapes a single path segment of regex source, reporting
// ok=false if the segment contains any dynamic construct.
func literalSegment(seg string) (string, bool) {
	var b strings.Builder
	for i := 0; i < len(seg); i++ {
		c := seg[i]
		if c == '\\' {
			if i+1 >= len(seg) {
				return "", false
			}
			b.WriteByte(seg[i+1])
			i++
			continue
		}
		switch c {
		case '(', ')', '[', ']', '{', '}', '*', '+', '?', '|', '.', '^', '$':
			return "", false
		}
		b.WriteByte(c)
	}
	return b.String(), true
}
