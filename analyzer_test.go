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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzerOrdersByRouteCount(t *testing.T) {
	t.Parallel()

	a := newKeyAnalyzer()
	a.observe([]string{"controller", "action", "id"}, map[string]string{"controller": "people", "action": "show"})
	a.observe([]string{"controller", "action"}, map[string]string{"controller": "people", "action": "index"})
	a.observe([]string{"controller"}, map[string]string{"controller": "sessions"})

	// controller constrains 3 routes, action 2, id 1.
	assert.Equal(t, []string{"controller", "action", "id"}, a.report())
}

func TestAnalyzerDistinctValuesBreakCountTies(t *testing.T) {
	t.Parallel()

	a := newKeyAnalyzer()
	a.observe([]string{"action", "format"}, map[string]string{"action": "show", "format": "html"})
	a.observe([]string{"action", "format"}, map[string]string{"action": "edit", "format": "html"})

	// Equal route counts; action takes two distinct values, format one.
	assert.Equal(t, []string{"action", "format"}, a.report())
}

func TestAnalyzerTiesFallBackToObservationOrder(t *testing.T) {
	t.Parallel()

	a := newKeyAnalyzer()
	a.observe([]string{"b", "a"}, map[string]string{"b": "1", "a": "1"})
	a.observe([]string{"b", "a"}, map[string]string{"b": "2", "a": "2"})

	// Identical counts and distinct-value cardinality: first observed wins.
	assert.Equal(t, []string{"b", "a"}, a.report())
}

func TestAnalyzerDeterministicAcrossRuns(t *testing.T) {
	t.Parallel()

	build := func() []string {
		a := newKeyAnalyzer()
		a.observe([]string{"controller", "action"}, map[string]string{"controller": "people"})
		a.observe([]string{"controller", "id"}, map[string]string{"controller": "posts"})
		a.observe([]string{"action"}, map[string]string{"action": "index"})
		return a.report()
	}
	first := build()
	for range 10 {
		assert.Equal(t, first, build())
	}
}

func TestAnalyzerExpireClearsState(t *testing.T) {
	t.Parallel()

	a := newKeyAnalyzer()
	a.observe([]string{"controller"}, map[string]string{"controller": "people"})
	a.expire()
	assert.Empty(t, a.report())

	a.observe([]string{"action"}, map[string]string{"action": "show"})
	assert.Equal(t, []string{"action"}, a.report())
}
