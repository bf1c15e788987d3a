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

import "log/slog"

// Option configures a RouteSet.
type Option func(*RouteSet)

// WithDiagnostics sets a diagnostic handler for the route set.
//
// Diagnostic events are optional informational events that may indicate
// configuration issues. The route set functions correctly whether
// diagnostics are collected or not.
func WithDiagnostics(handler DiagnosticHandler) Option {
	return func(rs *RouteSet) {
		rs.diagnostics = handler
	}
}

// WithLogger sets a structured logger for route-set lifecycle events.
// Without one, events are discarded.
func WithLogger(logger *slog.Logger) Option {
	return func(rs *RouteSet) {
		if logger != nil {
			rs.logger = logger
		}
	}
}

// WithEscaper overrides the path-component escaper used during URL
// generation. The default percent-encodes per RFC 3986 path semantics.
func WithEscaper(escape Escaper) Option {
	return func(rs *RouteSet) {
		if escape != nil {
			rs.escape = escape
		}
	}
}

// WithQueryBuilder overrides how leftover parameters are rendered into a
// query string. The default produces sorted, bracket-nested pairs.
func WithQueryBuilder(build QueryBuilder) Option {
	return func(rs *RouteSet) {
		if build != nil {
			rs.buildQuery = build
		}
	}
}

// WithRecorder attaches an OpenTelemetry metrics recorder to the route
// set. Without one, no metric work is performed.
func WithRecorder(rec *Recorder) Option {
	return func(rs *RouteSet) {
		rs.recorder = rec
	}
}
