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
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// DefaultRequirement is the pattern used for dynamic segments that carry no
// caller-supplied requirement: one or more characters excluding the segment
// separator, the format separator, and the query delimiter.
const DefaultRequirement = `[^/.?]+`

// TokenKind identifies the kind of a parsed route-definition token.
type TokenKind uint8

const (
	// TokenLiteral is verbatim text, matched exactly.
	TokenLiteral TokenKind = iota
	// TokenParam is a dynamic segment introduced by ":name".
	TokenParam
	// TokenGlob is a greedy segment introduced by "*name". It crosses
	// segment boundaries.
	TokenGlob
	// TokenGroup is a parenthesized optional group. Children holds the
	// tokens inside the parentheses.
	TokenGroup
)

// Token is one element of a parsed route-definition string.
// Route definitions parse into a flat token list; optional groups nest
// arbitrarily deep through Children.
type Token struct {
	Kind     TokenKind
	Value    string // literal text or parameter name
	Children []Token
}

// SyntaxError describes a malformed route-definition string.
// It is returned by Compile; compilation errors never reach generation time.
type SyntaxError struct {
	Pattern string // the offending route-definition string
	Pos     int    // byte offset of the error
	Reason  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("compiler: invalid pattern %q at offset %d: %s", e.Pattern, e.Pos, e.Reason)
}

// Pattern is the compiled form of a route-definition string: an anchored
// matcher plus the canonical record of which capture positions correspond
// to which logical parameter names.
//
// A Pattern is immutable once compiled and safe for concurrent use.
type Pattern struct {
	source       string
	index        *Index
	tokens       []Token
	requirements map[string]*regexp.Regexp // anchored, for generation-time re-validation
}

// Compile translates a route-definition string into an anchored Pattern.
//
// Grammar, left to right:
//   - literal text matches verbatim (regex metacharacters escaped)
//   - ":name" introduces a dynamic segment matching the requirement for
//     "name", or DefaultRequirement when none is supplied
//   - "*name" introduces a glob segment matching ".*" greedily
//   - "( ... )" denotes an optional sub-pattern, nesting arbitrarily
//   - "\" escapes the next character into the literal text
//
// The compiled matcher is anchored at both ends so partial-path matches are
// never accepted. A requirement regex that contains its own capturing groups
// is accepted as-is; those groups become anonymous positions and are never
// aliased to the parameter name.
func Compile(pattern string, requirements map[string]string) (*Pattern, error) {
	p := &parser{src: pattern}
	tokens, err := p.parse(0)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	var names []string
	b.WriteByte('^')
	if err := writeRegexp(&b, tokens, requirements, &names); err != nil {
		return nil, &SyntaxError{Pattern: pattern, Reason: err.Error()}
	}
	b.WriteByte('$')

	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil, &SyntaxError{Pattern: pattern, Reason: err.Error()}
	}

	anchored := make(map[string]*regexp.Regexp, len(requirements))
	for name, req := range requirements {
		rx, err := regexp.Compile("^(?:" + req + ")$")
		if err != nil {
			return nil, &SyntaxError{Pattern: pattern, Reason: fmt.Sprintf("requirement for %q: %v", name, err)}
		}
		anchored[name] = rx
	}

	return &Pattern{
		source:       pattern,
		index:        newIndex(re, names),
		tokens:       tokens,
		requirements: anchored,
	}, nil
}

// MustCompile is like Compile but panics on error.
// Intended for patterns known at program start.
func MustCompile(pattern string, requirements map[string]string) *Pattern {
	p, err := Compile(pattern, requirements)
	if err != nil {
		panic(err.Error())
	}
	return p
}

// Source returns the original route-definition string.
func (p *Pattern) Source() string {
	return p.source
}

// Regexp returns the compiled anchored matcher.
func (p *Pattern) Regexp() *regexp.Regexp {
	return p.index.Regexp()
}

// Names returns the flat capture-order name sequence. Anonymous capture
// positions (introduced by requirement regexes that contain their own
// groups) appear as empty strings so that position-to-name correspondence
// survives.
func (p *Pattern) Names() []string {
	return p.index.Names()
}

// Captures returns the canonical mapping from logical parameter name to its
// ordered capture positions. A name maps to more than one position only
// when it recurs across mutually exclusive optional branches.
func (p *Pattern) Captures() map[string][]int {
	return p.index.Captures()
}

// Tokens returns the parsed token tree, used by route generators for
// token substitution.
func (p *Pattern) Tokens() []Token {
	return p.tokens
}

// Requirement returns the anchored requirement matcher for a parameter
// name, or nil when the parameter carries no requirement.
func (p *Pattern) Requirement(name string) *regexp.Regexp {
	return p.requirements[name]
}

// ParamNames returns the declared parameter names in first-occurrence
// order, without duplicates.
func (p *Pattern) ParamNames() []string {
	seen := make(map[string]bool, len(p.index.Names()))
	var out []string
	for _, name := range p.index.Names() {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

// Match tests path against the compiled matcher and extracts parameter
// values. For a name mapping to multiple mutually exclusive positions, the
// first non-empty position wins. Returns ok=false when the path does not
// match.
func (p *Pattern) Match(path string) (map[string]string, bool) {
	m := p.index.Regexp().FindStringSubmatch(path)
	if m == nil {
		return nil, false
	}
	return p.index.Extract(m), true
}

// parser walks a route-definition string left to right.
type parser struct {
	src string
	pos int
}

// parse consumes tokens until the end of input (depth 0) or a closing
// parenthesis (depth > 0).
func (p *parser) parse(depth int) ([]Token, error) {
	var tokens []Token
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			tokens = append(tokens, Token{Kind: TokenLiteral, Value: lit.String()})
			lit.Reset()
		}
	}

	for p.pos < len(p.src) {
		switch c := p.src[p.pos]; c {
		case '\\':
			if p.pos+1 >= len(p.src) {
				return nil, &SyntaxError{Pattern: p.src, Pos: p.pos, Reason: "trailing escape"}
			}
			r, size := utf8.DecodeRuneInString(p.src[p.pos+1:])
			lit.WriteRune(r)
			p.pos += 1 + size
		case ':', '*':
			start := p.pos
			name := p.ident(p.pos + 1)
			if name == "" {
				return nil, &SyntaxError{Pattern: p.src, Pos: start, Reason: "missing parameter name"}
			}
			flush()
			kind := TokenParam
			if c == '*' {
				kind = TokenGlob
			}
			tokens = append(tokens, Token{Kind: kind, Value: name})
			p.pos += 1 + len(name)
		case '(':
			flush()
			p.pos++
			children, err := p.parse(depth + 1)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, Token{Kind: TokenGroup, Children: children})
		case ')':
			if depth == 0 {
				return nil, &SyntaxError{Pattern: p.src, Pos: p.pos, Reason: "unbalanced closing parenthesis"}
			}
			flush()
			p.pos++
			return tokens, nil
		default:
			r, size := utf8.DecodeRuneInString(p.src[p.pos:])
			lit.WriteRune(r)
			p.pos += size
		}
	}

	if depth > 0 {
		return nil, &SyntaxError{Pattern: p.src, Pos: len(p.src), Reason: "unterminated optional group"}
	}
	flush()
	return tokens, nil
}

// ident reads a parameter identifier starting at offset i.
func (p *parser) ident(i int) string {
	j := i
	for j < len(p.src) {
		c := p.src[j]
		if c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || j > i && c >= '0' && c <= '9' {
			j++
			continue
		}
		break
	}
	return p.src[i:j]
}

// writeRegexp assembles the raw regex text for a token sequence, collecting
// the capture-order names (with empty-string placeholders for anonymous
// groups contributed by requirement regexes).
func writeRegexp(b *strings.Builder, tokens []Token, requirements map[string]string, names *[]string) error {
	for _, tok := range tokens {
		switch tok.Kind {
		case TokenLiteral:
			b.WriteString(regexp.QuoteMeta(tok.Value))
		case TokenParam:
			req, ok := requirements[tok.Value]
			if !ok {
				req = DefaultRequirement
			}
			inner, err := regexp.Compile(req)
			if err != nil {
				return fmt.Errorf("requirement for %q: %w", tok.Value, err)
			}
			b.WriteByte('(')
			b.WriteString(req)
			b.WriteByte(')')
			*names = append(*names, tok.Value)
			// Capturing groups inside the requirement take the
			// positions immediately after the outer group.
			for range inner.NumSubexp() {
				*names = append(*names, "")
			}
		case TokenGlob:
			b.WriteString("(.*)")
			*names = append(*names, tok.Value)
		case TokenGroup:
			b.WriteString("(?:")
			if err := writeRegexp(b, tok.Children, requirements, names); err != nil {
				return err
			}
			b.WriteString(")?")
		}
	}
	return nil
}
