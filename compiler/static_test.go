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

func TestStaticSegments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		want   []string
	}{
		{
			name:   "stops at alternation",
			source: `^/foo/(bar|baz)/([a-z0-9]+)$`,
			want:   []string{"foo"},
		},
		{
			name:   "dynamic first segment",
			source: `^/([^/.?]+)/people$`,
			want:   nil,
		},
		{
			name:   "fully static",
			source: `^/admin/users/new$`,
			want:   []string{"admin", "users", "new"},
		},
		{
			name:   "escaped period is literal",
			source: `^/feeds/atom\.xml$`,
			want:   []string{"feeds", "atom.xml"},
		},
		{
			name:   "stops at quantifier",
			source: `^/a/b?/c$`,
			want:   []string{"a"},
		},
		{
			name:   "stops at class",
			source: `^/api/v[12]/users$`,
			want:   []string{"api"},
		},
		{
			name:   "root only",
			source: `^/$`,
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			re := regexp.MustCompile(tt.source)
			assert.Equal(t, tt.want, StaticSegments(re))
		})
	}
}

func TestStaticSegments_FromCompiledPattern(t *testing.T) {
	t.Parallel()

	p, err := Compile("/admin/people/:id", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"admin", "people"}, StaticSegments(p.Regexp()))

	p, err = Compile("/:controller/:action", nil)
	require.NoError(t, err)
	assert.Empty(t, StaticSegments(p.Regexp()))
}
