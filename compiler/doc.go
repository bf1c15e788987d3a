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

// Package compiler translates symbolic route-definition strings into
// anchored matchers with a canonical, engine-independent record of which
// capture positions correspond to which logical parameter names.
//
// A route definition mixes literal text with dynamic tokens:
//
//	/people/:id(.:format)
//	/files/*path
//	/:controller(/:action(/:id))
//
// Compile parses that grammar and produces a Pattern: the anchored regular
// expression, the parsed token tree (consumed by route generators for URL
// reconstruction), and an Index mapping each parameter name to its capture
// positions. Names may legitimately map to several positions when they
// recur across mutually exclusive optional branches; at match time exactly
// one of those positions is non-empty.
//
// StaticSegments extracts the invariant literal path prefix of a compiled
// matcher, which dispatch layers use to index routes for fast static
// lookup before falling back to full regex matching.
package compiler
