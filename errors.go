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
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrRouteNotFound indicates that no route matched the supplied name
	// or parameter set.
	ErrRouteNotFound = errors.New("route not found")

	// ErrDuplicateRouteName indicates that a route name is already taken.
	ErrDuplicateRouteName = errors.New("route name already registered")

	// ErrNilRequestContext indicates that URL reconstruction was attempted
	// without a request context.
	ErrNilRequestContext = errors.New("request context is nil")
)

// RoutingError reports a failed generation attempt: either a named route
// lookup that found nothing, or an exhausted parameter search. It always
// identifies the attempted route name (when any) and the offending
// parameter set, and is recoverable by the caller.
type RoutingError struct {
	Name   string            // requested route name, empty for parameter search
	Params map[string]string // the parameter set that failed to generate
}

func (e *RoutingError) Error() string {
	var b strings.Builder
	b.WriteString("waymount: no route matches")
	if e.Name != "" {
		fmt.Fprintf(&b, " name %q", e.Name)
	}
	if len(e.Params) > 0 {
		keys := make([]string, 0, len(e.Params))
		for k := range e.Params {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString(" {")
		for i, k := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s:%q", k, e.Params[k])
		}
		b.WriteString("}")
	}
	return b.String()
}

// Unwrap lets callers test with errors.Is(err, ErrRouteNotFound).
func (e *RoutingError) Unwrap() error {
	return ErrRouteNotFound
}
