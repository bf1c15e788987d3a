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

// DiagnosticEvent represents a route-set diagnostic or anomaly.
// These are informational events that may indicate configuration issues.
//
// Diagnostic events are optional - the route set functions correctly
// whether they are collected or not. They provide visibility into edge
// cases for observability systems.
type DiagnosticEvent struct {
	Kind    DiagnosticKind
	Message string
	Fields  map[string]any // Structured context
}

// DiagnosticKind categorizes diagnostic events.
type DiagnosticKind string

const (
	// Registration diagnostics
	DiagRouteRegistered DiagnosticKind = "route_registered"
	DiagRouteInert      DiagnosticKind = "route_inert"
	DiagDuplicateName   DiagnosticKind = "route_name_duplicate"

	// Rebuild diagnostics
	DiagRehash DiagnosticKind = "route_set_rehashed"

	// Generation diagnostics
	DiagGenerateMiss DiagnosticKind = "generate_miss"
)

// DiagnosticHandler receives diagnostic events from the route set.
// Implementations may log, emit metrics, or ignore them.
//
// This interface is optional - if not provided, diagnostics are silently
// dropped. The route set's behavior is unchanged whether diagnostics are
// collected or not.
//
// Example with logging:
//
//	import "log/slog"
//
//	handler := waymount.DiagnosticHandlerFunc(func(e waymount.DiagnosticEvent) {
//	    slog.Warn(e.Message, "kind", e.Kind, "fields", e.Fields)
//	})
//	rs := waymount.NewRouteSet(waymount.WithDiagnostics(handler))
type DiagnosticHandler interface {
	OnDiagnostic(DiagnosticEvent)
}

// DiagnosticHandlerFunc is a function adapter for DiagnosticHandler.
type DiagnosticHandlerFunc func(DiagnosticEvent)

func (f DiagnosticHandlerFunc) OnDiagnostic(e DiagnosticEvent) {
	f(e)
}
