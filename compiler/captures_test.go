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

package compiler

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexRegexp_NativeNamedCaptures(t *testing.T) {
	t.Parallel()

	re := regexp.MustCompile(`^/people/(?P<id>\d+)\.(?P<format>\w+)$`)
	ix := IndexRegexp(re)

	assert.Equal(t, []string{"id", "format"}, ix.Names())
	assert.Equal(t, map[string][]int{"id": {1}, "format": {2}}, ix.Captures())
}

func TestIndexRegexp_PurelyPositional(t *testing.T) {
	t.Parallel()

	// No names anywhere: valid and common for fully static routes.
	re := regexp.MustCompile(`^/dashboard$`)
	ix := IndexRegexp(re)

	assert.Empty(t, ix.Names())
	assert.Empty(t, ix.Captures())
}

func TestIndexNames_OrderedSequenceWithGaps(t *testing.T) {
	t.Parallel()

	re := regexp.MustCompile(`^/(\w+)/(\d{4})-(\d{2})$`)
	ix := IndexNames(re, []string{"title", "year", ""})

	assert.Equal(t, []string{"title", "year", ""}, ix.Names())
	assert.Equal(t, map[string][]int{"title": {1}, "year": {2}}, ix.Captures())
	assert.Nil(t, ix.Positions("month"))
}

func TestIndexNames_ShortSequenceIsPadded(t *testing.T) {
	t.Parallel()

	re := regexp.MustCompile(`^/(\w+)/(\w+)/(\w+)$`)
	ix := IndexNames(re, []string{"a"})

	assert.Equal(t, []string{"a", "", ""}, ix.Names())
	assert.Equal(t, map[string][]int{"a": {1}}, ix.Captures())
}

func TestIndexNames_RepeatedNameCollectsAllPositions(t *testing.T) {
	t.Parallel()

	re := regexp.MustCompile(`^(?:/people/(\d+)|/groups/([a-z]+))$`)
	ix := IndexNames(re, []string{"id", "id"})

	require.Equal(t, map[string][]int{"id": {1, 2}}, ix.Captures())

	// Exactly one of the positions is non-empty for any single match.
	m := re.FindStringSubmatch("/groups/admins")
	require.NotNil(t, m)
	assert.Equal(t, map[string]string{"id": "admins"}, ix.Extract(m))

	m = re.FindStringSubmatch("/people/8")
	require.NotNil(t, m)
	assert.Equal(t, map[string]string{"id": "8"}, ix.Extract(m))
}

func TestIndexPositions_Mapping(t *testing.T) {
	t.Parallel()

	re := regexp.MustCompile(`^/(\w+)/(\w+)$`)
	ix := IndexPositions(re, map[string]int{"action": 2, "controller": 1})

	assert.Equal(t, []string{"controller", "action"}, ix.Names())
	assert.Equal(t, map[string][]int{"controller": {1}, "action": {2}}, ix.Captures())
}

func TestParse_InlineMarkerEncoding(t *testing.T) {
	t.Parallel()

	ix, err := Parse(`^/people/(?:<id>[0-9]+)$`, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"id"}, ix.Names())
	assert.Equal(t, map[string][]int{"id": {1}}, ix.Captures())

	m := ix.Regexp().FindStringSubmatch("/people/12")
	require.NotNil(t, m)
	assert.Equal(t, "12", m[1])
}

func TestParse_MarkersAtNestedDepth(t *testing.T) {
	t.Parallel()

	ix, err := Parse(`^/(?:foo/(?:<id>[0-9]+)|bar/(?:<id>[a-z]+))$`, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "id"}, ix.Names())
	require.Equal(t, map[string][]int{"id": {1, 2}}, ix.Captures())

	m := ix.Regexp().FindStringSubmatch("/bar/x")
	require.NotNil(t, m)
	assert.Equal(t, map[string]string{"id": "x"}, ix.Extract(m))
}

func TestParse_NativeNamedGroups(t *testing.T) {
	t.Parallel()

	ix, err := Parse(`^/people/(?P<id>\d+)$`, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"id"}, ix.Names())
	assert.Equal(t, map[string][]int{"id": {1}}, ix.Captures())
}

func TestParse_ExplicitNamesWinOverTextual(t *testing.T) {
	t.Parallel()

	ix, err := Parse(`^/(?:<orig>\w+)/(\d+)$`, []string{"renamed", "num"})
	require.NoError(t, err)

	assert.Equal(t, []string{"renamed", "num"}, ix.Names())
}

func TestParse_ClassParenthesesAreNotGroups(t *testing.T) {
	t.Parallel()

	// "(" inside a character class and escaped "\(" must not shift
	// capture numbering.
	ix, err := Parse(`^/([(a-z)]+)/\((?:<id>\d+)\)$`, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"", "id"}, ix.Names())
	assert.Equal(t, map[string][]int{"id": {2}}, ix.Captures())
}

func TestParse_InvalidSource(t *testing.T) {
	t.Parallel()

	_, err := Parse(`^/people/([0-9]+$`, nil)
	assert.Error(t, err)
}
