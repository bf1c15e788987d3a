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

package route

import (
	"strings"

	"github.com/waymount/waymount/compiler"
)

// Generate reconstructs the path text for this route from explicit params,
// recall values and the route's own defaults. Values are resolved in that
// order, re-validated against the requirement regexes, and percent-escaped.
//
// An optional group renders only when every dynamic token inside it
// resolves and at least one resolved value differs from that token's
// default; a group whose tokens merely restate their defaults is omitted,
// which is what keeps default format suffixes out of generated URLs.
// Groups without dynamic tokens are omitted.
//
// The returned set holds the parameter names consumed by path substitution.
// ok=false means the route cannot express the supplied parameters (a value
// is missing, fails its requirement, or contradicts a fixed default).
func (r *Route) Generate(method string, params, recall map[string]string) (string, map[string]bool, bool) {
	if r.method != "" && method != "" && r.method != method {
		return "", nil, false
	}

	// A fixed default that is not a dynamic parameter is a hard
	// constraint: explicit params must agree with it.
	for k, v := range r.defaults {
		if r.paramSet[k] {
			continue
		}
		if pv, ok := params[k]; ok && pv != v {
			return "", nil, false
		}
	}

	used := make(map[string]bool)
	var b strings.Builder
	ok := r.generateTokens(r.pattern.Tokens(), &b, params, recall, used, nil)
	if !ok {
		return "", nil, false
	}
	path := b.String()
	if path == "" {
		path = "/"
	}
	return path, used, true
}

// generateTokens walks a token sequence, appending substituted text to b.
// varies, when non-nil, is set to true if any dynamic token resolved to a
// value other than its default (the signal that an optional group must
// render).
func (r *Route) generateTokens(tokens []compiler.Token, b *strings.Builder, params, recall map[string]string, used map[string]bool, varies *bool) bool {
	for _, tok := range tokens {
		switch tok.Kind {
		case compiler.TokenLiteral:
			b.WriteString(tok.Value)

		case compiler.TokenParam, compiler.TokenGlob:
			value, ok := r.resolve(tok.Value, params, recall)
			if !ok {
				return false
			}
			if req := r.pattern.Requirement(tok.Value); req != nil && !req.MatchString(value) {
				return false
			}
			if tok.Kind == compiler.TokenGlob {
				b.WriteString(r.escapeGlob(value))
			} else {
				b.WriteString(r.escape(value))
			}
			used[tok.Value] = true
			if varies != nil {
				if def, has := r.defaults[tok.Value]; !has || def != value {
					*varies = true
				}
			}

		case compiler.TokenGroup:
			var sub strings.Builder
			subUsed := make(map[string]bool)
			subVaries := false
			if !r.generateTokens(tok.Children, &sub, params, recall, subUsed, &subVaries) {
				continue // group cannot resolve: omit it
			}
			if !subVaries {
				continue // nothing beyond defaults: omit it
			}
			b.WriteString(sub.String())
			for k := range subUsed {
				used[k] = true
			}
			if varies != nil {
				*varies = true
			}
		}
	}
	return true
}

// resolve looks a parameter value up in params, then recall, then the
// route's defaults. Empty values count as absent.
func (r *Route) resolve(name string, params, recall map[string]string) (string, bool) {
	if v, present := params[name]; present && v != "" {
		return v, true
	}
	if v, present := recall[name]; present && v != "" {
		return v, true
	}
	if v, present := r.defaults[name]; present && v != "" {
		return v, true
	}
	return "", false
}

// escapeGlob percent-escapes a glob value one path component at a time so
// the separators survive.
func (r *Route) escapeGlob(value string) string {
	parts := strings.Split(value, "/")
	for i, p := range parts {
		parts[i] = r.escape(p)
	}
	return strings.Join(parts, "/")
}
