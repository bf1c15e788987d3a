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
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/waymount/waymount/compiler"
	"github.com/waymount/waymount/route"
)

// Definition describes one route before compilation. Build one with
// Define and the fluent helpers, then hand it to RouteSet.AddRoute.
type Definition struct {
	Name         string
	Method       string
	Pattern      string
	Requirements route.Requirements
	Defaults     map[string]string
}

// Define starts a route definition for the given method filter (empty
// matches any method) and pattern.
func Define(method, pattern string) Definition {
	return Definition{Method: method, Pattern: pattern}
}

// Named sets the route name used for direct lookup during generation.
func (d Definition) Named(name string) Definition {
	d.Name = name
	return d
}

// Where adds a requirement regex for one parameter.
func (d Definition) Where(param, pattern string) Definition {
	if d.Requirements == nil {
		d.Requirements = route.Requirements{}
	}
	d.Requirements.Where(param, pattern)
	return d
}

// Default sets a default value for one parameter.
func (d Definition) Default(param, value string) Definition {
	if d.Defaults == nil {
		d.Defaults = map[string]string{}
	}
	d.Defaults[param] = value
	return d
}

// RouteSet is the generation façade: it holds the compiled route
// catalogue, the named-route table and the generation graph, and turns
// parameter sets back into URL strings.
//
// Registration and Rehash are expected from a single setup goroutine;
// once rehashed, Generate and URL are safe for concurrent use. Adding a
// route marks the set stale until the next Rehash.
type RouteSet struct {
	mu       sync.RWMutex
	routes   []*route.Route
	named    map[string]*route.Route
	analyzer *keyAnalyzer
	keys     []string
	graph    *graphNode
	built    bool

	diagnostics DiagnosticHandler
	logger      *slog.Logger
	escape      Escaper
	buildQuery  QueryBuilder
	recorder    *Recorder
}

// NewRouteSet creates an empty route set.
func NewRouteSet(opts ...Option) *RouteSet {
	rs := &RouteSet{
		named:      make(map[string]*route.Route),
		analyzer:   newKeyAnalyzer(),
		logger:     slog.New(slog.DiscardHandler),
		escape:     defaultPathEscaper,
		buildQuery: buildNestedQuery,
	}
	for _, opt := range opts {
		opt(rs)
	}
	return rs
}

// AddRoute compiles and registers one route. Named routes must be unique;
// a duplicate name fails with ErrDuplicateRouteName. The set becomes
// stale until the next Rehash.
func (rs *RouteSet) AddRoute(def Definition) (*route.Route, error) {
	if err := def.Requirements.Validate(); err != nil {
		return nil, err
	}
	pattern, err := compiler.Compile(def.Pattern, def.Requirements)
	if err != nil {
		return nil, err
	}

	rs.mu.Lock()
	defer rs.mu.Unlock()

	if def.Name != "" {
		if _, exists := rs.named[def.Name]; exists {
			rs.emit(DiagnosticEvent{
				Kind:    DiagDuplicateName,
				Message: "route name already registered",
				Fields:  map[string]any{"name": def.Name},
			})
			return nil, fmt.Errorf("route %q: %w", def.Name, ErrDuplicateRouteName)
		}
	}

	r := route.New(def.Method, pattern, def.Defaults, def.Name,
		route.WithEscape(rs.escape))
	rs.routes = append(rs.routes, r)
	if def.Name != "" {
		rs.named[def.Name] = r
	}
	rs.observe(r)
	rs.built = false

	if !r.Significant() && def.Name == "" {
		rs.emit(DiagnosticEvent{
			Kind:    DiagRouteInert,
			Message: "unnamed route without significant params is unreachable by generation",
			Fields:  map[string]any{"pattern": def.Pattern},
		})
	}
	rs.emit(DiagnosticEvent{
		Kind:    DiagRouteRegistered,
		Message: "route registered",
		Fields:  map[string]any{"name": def.Name, "pattern": def.Pattern},
	})
	rs.logger.Debug("route registered",
		"name", def.Name, "method", def.Method, "pattern", def.Pattern)
	if rs.recorder != nil {
		rs.recorder.recordRouteAdded(context.Background())
	}
	return r, nil
}

// MustAddRoute is AddRoute that panics on error, for static route tables.
func (rs *RouteSet) MustAddRoute(def Definition) *route.Route {
	r, err := rs.AddRoute(def)
	if err != nil {
		panic(err)
	}
	return r
}

// Len returns the number of registered routes.
func (rs *RouteSet) Len() int {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	return len(rs.routes)
}

// NamedRoute returns the route registered under name, if any.
func (rs *RouteSet) NamedRoute(name string) (*route.Route, bool) {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	r, ok := rs.named[name]
	return r, ok
}

// Recognize matches an incoming method and path against the catalogue in
// registration order, returning the first route that accepts it along
// with the extracted parameters.
func (rs *RouteSet) Recognize(method, path string) (*route.Route, map[string]string, bool) {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	for _, r := range rs.routes {
		if params, ok := r.Match(method, path); ok {
			return r, params, true
		}
	}
	return nil, nil, false
}

// Rehash rebuilds the generation index: the frequency analyzer re-observes
// every route from scratch, its report fixes the discriminating key order,
// and the generation graph is rebuilt over it. Must be called after the
// last AddRoute and before the first Generate; generations keep serving
// the old index until the swap.
func (rs *RouteSet) Rehash() {
	start := time.Now()

	rs.mu.Lock()
	defer rs.mu.Unlock()

	rs.analyzer.expire()
	for _, r := range rs.routes {
		rs.observe(r)
	}

	keys := rs.analyzer.report()
	values := make([]map[string]string, len(rs.routes))
	for i, r := range rs.routes {
		values[i] = staticValues(r)
	}
	rs.keys = keys
	rs.graph = buildGraph(rs.routes, values, keys)
	rs.built = true

	// Per-route value tables are no longer needed once the graph exists.
	rs.analyzer.expire()

	elapsed := time.Since(start)
	rs.emit(DiagnosticEvent{
		Kind:    DiagRehash,
		Message: "generation index rebuilt",
		Fields: map[string]any{
			"routes": len(rs.routes),
			"keys":   len(keys),
			"height": rs.graph.height(),
		},
	})
	rs.logger.Debug("generation index rebuilt",
		"routes", len(rs.routes), "keys", keys, "duration", elapsed)
	if rs.recorder != nil {
		rs.recorder.recordRehash(context.Background(), elapsed, len(rs.routes))
	}
}

// observe registers one route's key constraints with the analyzer.
// Routes without significant params constrain nothing.
func (rs *RouteSet) observe(r *route.Route) {
	if !r.Significant() {
		rs.analyzer.observe(nil, nil)
		return
	}
	rs.analyzer.observe(r.Keys(), staticValues(r))
}

func staticValues(r *route.Route) map[string]string {
	if !r.Significant() {
		return nil
	}
	values := make(map[string]string)
	for _, k := range r.Keys() {
		if v, ok := r.StaticValue(k); ok {
			values[k] = v
		}
	}
	return values
}

// Generate produces the path text for a route. A non-empty name selects
// that route directly; an empty name searches the generation graph using
// params merged over recall. The returned map holds the leftover explicit
// params that were neither substituted into the path nor restatements of
// the winning route's defaults; callers render them as a query string.
//
// Generate panics when called before the first Rehash: that is a setup
// ordering fault, not a runtime condition.
func (rs *RouteSet) Generate(method, name string, params, recall map[string]string) (string, map[string]string, error) {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	if !rs.built {
		panic("waymount: Generate called before Rehash")
	}

	if name != "" {
		r, ok := rs.named[name]
		if !ok {
			rs.generateMiss(name, params)
			return "", nil, &RoutingError{Name: name, Params: params}
		}
		// Route defaults backfill recall where the caller was silent.
		merged := mergeUnder(recall, r.Defaults())
		path, used, ok := r.Generate(method, params, merged)
		if !ok {
			rs.generateMiss(name, params)
			return "", nil, &RoutingError{Name: name, Params: params}
		}
		if rs.recorder != nil {
			rs.recorder.recordGenerate(context.Background(), "named")
		}
		return path, leftover(params, used, r), nil
	}

	merged := mergeUnder(params, recall)
	candidates := rs.graph.lookup(func(key string) (string, bool) {
		v, ok := merged[key]
		return v, ok
	})
	for _, r := range candidates {
		if !r.Significant() {
			continue
		}
		path, used, ok := r.Generate(method, params, recall)
		if !ok {
			continue
		}
		if rs.recorder != nil {
			rs.recorder.recordGenerate(context.Background(), "search")
		}
		return path, leftover(params, used, r), nil
	}
	rs.generateMiss("", params)
	return "", nil, &RoutingError{Params: params}
}

func (rs *RouteSet) generateMiss(name string, params map[string]string) {
	rs.emit(DiagnosticEvent{
		Kind:    DiagGenerateMiss,
		Message: "no route generates the supplied parameters",
		Fields:  map[string]any{"name": name, "params": params},
	})
	if rs.recorder != nil {
		rs.recorder.recordGenerate(context.Background(), "miss")
	}
}

// mergeUnder returns primary with fallback filling the silent keys.
func mergeUnder(primary, fallback map[string]string) map[string]string {
	out := make(map[string]string, len(primary)+len(fallback))
	for k, v := range fallback {
		out[k] = v
	}
	for k, v := range primary {
		out[k] = v
	}
	return out
}

// leftover extracts the explicit params that did not land in the path and
// are not restatements of the winning route's defaults. Empty values are
// dropped.
func leftover(params map[string]string, used map[string]bool, r *route.Route) map[string]string {
	out := make(map[string]string)
	for k, v := range params {
		if v == "" || used[k] {
			continue
		}
		if def, ok := r.Default(k); ok && def == v {
			continue
		}
		out[k] = v
	}
	return out
}

// URLOptions controls URL string reconstruction.
type URLOptions struct {
	// OnlyPath selects a path-only URL (the default). Set FullURL to
	// reconstruct scheme://host[:port] as well.
	FullURL bool
	// Method filters candidate routes during generation.
	Method string
	// Recall carries parameter values from the current request, used as
	// fallbacks when the explicit params are silent.
	Recall map[string]string
}

// URL generates the route's path and reconstructs the final URL string
// against the request context: script-name prefix, leftover-params query
// string, and, for full URLs, scheme://host with the port suppressed when
// it is the scheme's conventional default (80 for http, 443 for https).
func (rs *RouteSet) URL(req RequestContext, name string, params map[string]string, opts URLOptions) (string, error) {
	if req == nil {
		return "", ErrNilRequestContext
	}
	path, extra, err := rs.Generate(opts.Method, name, params, opts.Recall)
	if err != nil {
		return "", err
	}

	proxy := NewRequestProxy(req).
		SetPathInfo(path).
		SetQueryString(rs.buildQuery(extra))

	var b strings.Builder
	if opts.FullURL {
		b.WriteString(proxy.Scheme())
		b.WriteString("://")
		b.WriteString(proxy.Host())
		if p := proxy.Port(); p != 0 && !defaultPort(proxy.Scheme(), p) {
			fmt.Fprintf(&b, ":%d", p)
		}
	}
	b.WriteString(proxy.ScriptName())
	b.WriteString(proxy.PathInfo())
	if q := proxy.QueryString(); q != "" {
		b.WriteByte('?')
		b.WriteString(q)
	}
	return b.String(), nil
}

func defaultPort(scheme string, port int) bool {
	switch scheme {
	case "http":
		return port == 80
	case "https":
		return port == 443
	}
	return false
}

func (rs *RouteSet) emit(e DiagnosticEvent) {
	if rs.diagnostics != nil {
		rs.diagnostics.OnDiagnostic(e)
	}
}
