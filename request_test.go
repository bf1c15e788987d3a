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
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestProxyReadsThroughToBase(t *testing.T) {
	t.Parallel()

	base := Request{
		RequestScheme: "https",
		RequestHost:   "example.com",
		RequestPort:   443,
		Script:        "/app",
		Path:          "/people/1",
		Query:         "page=2",
	}
	p := NewRequestProxy(base)

	assert.Equal(t, "https", p.Scheme())
	assert.Equal(t, "example.com", p.Host())
	assert.Equal(t, 443, p.Port())
	assert.Equal(t, "/app", p.ScriptName())
	assert.Equal(t, "/people/1", p.PathInfo())
	assert.Equal(t, "page=2", p.QueryString())
}

func TestRequestProxyOverridesShadowBase(t *testing.T) {
	t.Parallel()

	base := Request{RequestScheme: "http", RequestHost: "example.com", RequestPort: 80, Path: "/old"}
	p := NewRequestProxy(base).
		SetPathInfo("/new").
		SetQueryString("a=1").
		SetPort(8080)

	assert.Equal(t, "/new", p.PathInfo())
	assert.Equal(t, "a=1", p.QueryString())
	assert.Equal(t, 8080, p.Port())
	// Untouched fields still read through.
	assert.Equal(t, "http", p.Scheme())
	assert.Equal(t, "example.com", p.Host())
	// The base is never mutated.
	assert.Equal(t, "/old", base.PathInfo())
	assert.Equal(t, 80, base.Port())
}

func TestRequestProxyOverrideWithZeroValue(t *testing.T) {
	t.Parallel()

	base := Request{Query: "keep=1"}
	p := NewRequestProxy(base).SetQueryString("")

	// An explicit empty override wins over the base value.
	assert.Equal(t, "", p.QueryString())
}

func TestWrapHTTP(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest("GET", "http://example.com:8080/people/1?page=2", nil)
	ctx := WrapHTTP(req)

	assert.Equal(t, "http", ctx.Scheme())
	assert.Equal(t, "example.com", ctx.Host())
	assert.Equal(t, 8080, ctx.Port())
	assert.Equal(t, "/people/1", ctx.PathInfo())
	assert.Equal(t, "page=2", ctx.QueryString())
}

func TestWrapHTTPDefaultPort(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest("GET", "http://example.com/", nil)
	ctx := WrapHTTP(req)

	assert.Equal(t, "example.com", ctx.Host())
	assert.Equal(t, 80, ctx.Port())
}
