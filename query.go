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

package waymount

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Escaper encodes a single path or query component.
type Escaper func(component string) string

func defaultPathEscaper(s string) string { return url.PathEscape(s) }

// QueryBuilder renders leftover parameters into a query string, without
// the leading "?". An empty result suppresses the query string entirely.
type QueryBuilder func(params map[string]string) string

// buildNestedQuery is the default QueryBuilder. Keys containing bracket
// markers (written as "a.b" in the flat map) are emitted with Rails-style
// nesting, e.g. {"page.size": "10"} becomes "page%5Bsize%5D=10". Keys are
// sorted for deterministic output.
func buildNestedQuery(params map[string]string) string {
	if len(params) == 0 {
		return ""
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(nestKey(k)))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(params[k]))
	}
	return b.String()
}

// nestKey rewrites "a.b.c" into "a[b][c]".
func nestKey(k string) string {
	parts := strings.Split(k, ".")
	if len(parts) == 1 {
		return k
	}
	var b strings.Builder
	b.WriteString(parts[0])
	for _, p := range parts[1:] {
		fmt.Fprintf(&b, "[%s]", p)
	}
	return b.String()
}
