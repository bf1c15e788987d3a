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
	"maps"
	"net/url"
	"sort"
	"strings"

	"github.com/waymount/waymount/compiler"
)

// Route is one compiled pattern plus defaults, requirements and an optional
// name: the unit of both recognition and generation.
//
// Routes are immutable once created and safe for concurrent use. They are
// built by the route set at registration time and never mutated afterwards.
type Route struct {
	name     string
	method   string
	pattern  *compiler.Pattern
	defaults map[string]string

	paramSet     map[string]bool
	keys         []string
	significant  bool
	staticPrefix string
	escape       func(string) string
}

// Option customizes a Route at construction time.
type Option func(*Route)

// WithEscape overrides the per-component percent-escaper applied to
// substituted parameter values during generation.
func WithEscape(escape func(string) string) Option {
	return func(r *Route) {
		if escape != nil {
			r.escape = escape
		}
	}
}

// New creates an immutable Route. The method is an optional HTTP method
// filter (empty matches any method); defaults are the values used when
// generating and recalling.
func New(method string, pattern *compiler.Pattern, defaults map[string]string, name string, opts ...Option) *Route {
	d := make(map[string]string, len(defaults))
	maps.Copy(d, defaults)

	params := pattern.ParamNames()
	paramSet := make(map[string]bool, len(params))
	for _, p := range params {
		paramSet[p] = true
	}

	// Keys: pattern parameters in occurrence order, then default-only keys
	// in sorted order so the sequence is deterministic.
	keys := append([]string(nil), params...)
	extra := make([]string, 0, len(d))
	for k := range d {
		if !paramSet[k] {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	keys = append(keys, extra...)

	prefix := ""
	if segs := compiler.StaticSegments(pattern.Regexp()); len(segs) > 0 {
		prefix = "/" + strings.Join(segs, "/")
	}

	r := &Route{
		name:         name,
		method:       method,
		pattern:      pattern,
		defaults:     d,
		paramSet:     paramSet,
		keys:         keys,
		significant:  len(params) > 0 || len(d) > 0,
		staticPrefix: prefix,
		escape:       url.PathEscape,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Name returns the route name (empty if not named).
func (r *Route) Name() string {
	return r.name
}

// Method returns the HTTP method filter for this route (empty = any).
func (r *Route) Method() string {
	return r.method
}

// Pattern returns the compiled pattern.
func (r *Route) Pattern() *compiler.Pattern {
	return r.pattern
}

// Defaults returns a copy of the route's default parameter values.
func (r *Route) Defaults() map[string]string {
	out := make(map[string]string, len(r.defaults))
	maps.Copy(out, r.defaults)
	return out
}

// Default returns the default value for one key.
func (r *Route) Default(key string) (string, bool) {
	v, ok := r.defaults[key]
	return v, ok
}

// Significant reports whether the route carries any parameter that can
// vary independently. Routes without significant parameters do not
// participate in key-based generation search; they are reached exclusively
// by name.
func (r *Route) Significant() bool {
	return r.significant
}

// Keys returns every parameter key this route constrains: pattern
// parameters in occurrence order followed by default-only keys in sorted
// order. The order is deterministic across runs.
func (r *Route) Keys() []string {
	return r.keys
}

// StaticValue returns the statically known value for a key, when the key
// is constrained by a fixed default. Pattern parameters without a default
// have no static value; their runtime value is only known at generation
// time.
func (r *Route) StaticValue(key string) (string, bool) {
	v, ok := r.defaults[key]
	return v, ok
}

// HasParam reports whether key is a dynamic parameter of the pattern.
func (r *Route) HasParam(key string) bool {
	return r.paramSet[key]
}

// StaticPrefix returns the leading run of literal path segments, used as a
// cheap reject before the pattern regexp runs.
func (r *Route) StaticPrefix() string {
	return r.staticPrefix
}

// Match tests an incoming method and path against the route, returning the
// extracted parameters merged over the route's defaults. For a name with
// several mutually exclusive capture positions, the first non-empty
// position wins.
func (r *Route) Match(method, path string) (map[string]string, bool) {
	if r.method != "" && method != "" && r.method != method {
		return nil, false
	}
	if !strings.HasPrefix(path, r.staticPrefix) {
		return nil, false
	}
	extracted, ok := r.pattern.Match(path)
	if !ok {
		return nil, false
	}
	params := make(map[string]string, len(r.defaults)+len(extracted))
	maps.Copy(params, r.defaults)
	for k, v := range extracted {
		if v != "" {
			params[k] = v
		}
	}
	return params, true
}
