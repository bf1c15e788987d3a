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
	"net/http"
	"strconv"
	"strings"
)

// RequestContext supplies the ambient request attributes consulted when a
// generated path is expanded into a full URL: scheme, host, port and the
// script-name prefix mounted ahead of the routed path.
type RequestContext interface {
	Scheme() string
	Host() string
	Port() int
	ScriptName() string
	PathInfo() string
	QueryString() string
}

// Request is a plain value implementation of RequestContext.
type Request struct {
	RequestScheme string
	RequestHost   string
	RequestPort   int
	Script        string
	Path          string
	Query         string
}

func (r Request) Scheme() string      { return r.RequestScheme }
func (r Request) Host() string        { return r.RequestHost }
func (r Request) Port() int           { return r.RequestPort }
func (r Request) ScriptName() string  { return r.Script }
func (r Request) PathInfo() string    { return r.Path }
func (r Request) QueryString() string { return r.Query }

// WrapHTTP adapts a *http.Request into a RequestContext. The port is taken
// from the Host header when present, otherwise defaulted from the scheme.
func WrapHTTP(req *http.Request) RequestContext {
	scheme := "http"
	if req.TLS != nil {
		scheme = "https"
	}
	host := req.Host
	port := 80
	if scheme == "https" {
		port = 443
	}
	if h, p, ok := strings.Cut(req.Host, ":"); ok {
		host = h
		if n, err := strconv.Atoi(p); err == nil {
			port = n
		}
	}
	return Request{
		RequestScheme: scheme,
		RequestHost:   host,
		RequestPort:   port,
		Path:          req.URL.Path,
		Query:         req.URL.RawQuery,
	}
}

// RequestProxy overlays per-call attribute overrides on a base
// RequestContext without mutating it. Unset fields read through to the
// base.
type RequestProxy struct {
	base   RequestContext
	scheme *string
	host   *string
	port   *int
	script *string
	path   *string
	query  *string
}

// NewRequestProxy wraps base with no overrides set.
func NewRequestProxy(base RequestContext) *RequestProxy {
	return &RequestProxy{base: base}
}

func (p *RequestProxy) SetScheme(v string) *RequestProxy     { p.scheme = &v; return p }
func (p *RequestProxy) SetHost(v string) *RequestProxy       { p.host = &v; return p }
func (p *RequestProxy) SetPort(v int) *RequestProxy          { p.port = &v; return p }
func (p *RequestProxy) SetScriptName(v string) *RequestProxy { p.script = &v; return p }
func (p *RequestProxy) SetPathInfo(v string) *RequestProxy   { p.path = &v; return p }
func (p *RequestProxy) SetQueryString(v string) *RequestProxy {
	p.query = &v
	return p
}

func (p *RequestProxy) Scheme() string {
	if p.scheme != nil {
		return *p.scheme
	}
	return p.base.Scheme()
}

func (p *RequestProxy) Host() string {
	if p.host != nil {
		return *p.host
	}
	return p.base.Host()
}

func (p *RequestProxy) Port() int {
	if p.port != nil {
		return *p.port
	}
	return p.base.Port()
}

func (p *RequestProxy) ScriptName() string {
	if p.script != nil {
		return *p.script
	}
	return p.base.ScriptName()
}

func (p *RequestProxy) PathInfo() string {
	if p.path != nil {
		return *p.path
	}
	return p.base.PathInfo()
}

func (p *RequestProxy) QueryString() string {
	if p.query != nil {
		return *p.query
	}
	return p.base.QueryString()
}
