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

// Package waymount is a bidirectional URL routing engine. It compiles
// symbolic route patterns into anchored matchers that both recognize
// incoming paths and regenerate concrete URLs from a route name or a raw
// parameter set.
//
// Routes are declared with the pattern grammar of package compiler
// (":name" dynamic segments, "*name" globs, "(...)" optional groups) and
// registered into a RouteSet:
//
//	rs := waymount.NewRouteSet()
//	rs.MustAddRoute(waymount.Define("GET", "/people/:id(.:format)").
//	    Named("person").
//	    Where("id", `\d+`).
//	    Default("format", "html"))
//	rs.Rehash()
//
// Rehash freezes the catalogue into a generation index: a frequency
// analyzer orders the parameter keys by how sharply they discriminate
// between routes, and a nested lookup graph over those keys turns
// unnamed generation into a graph descent instead of a linear scan.
//
// Generation works by name or by parameters:
//
//	path, _, err := rs.Generate("GET", "person", map[string]string{"id": "7"}, nil)
//	// path == "/people/7"
//
// URL reconstructs the final string against a request context, appending
// leftover parameters as a query string and, for full URLs, suppressing
// the port when it is the scheme's conventional default.
package waymount
