// This file is part of rasm - https://github.com/rasm-lang/rasm
//
// Copyright 2019 The rasm Authors
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

// Package scan provides the longest-match pattern lexer and the token
// stream shared by the surface-language and rasm parsers.
package scan

import (
	"regexp"

	"github.com/pkg/errors"
)

// ErrInvalidToken is the lex-error sentinel: no pattern matches a prefix
// of the remaining input.
var ErrInvalidToken = errors.New("unrecognized input")

// A Token is a lexed unit of input. Kind values are defined by each
// client package; Num carries the parsed value of numeric tokens.
type Token struct {
	Kind   int
	Lexeme string
	Num    float64
}

// A Pattern pairs a regular expression with a token constructor. The
// constructor may decline to emit a token (whitespace, comments).
type Pattern struct {
	re   *regexp.Regexp
	emit func(lexeme string) (Token, bool)
}

// NewPattern compiles expr, anchored at the start of input, into a
// Pattern. The expression must not match the empty string.
func NewPattern(expr string, emit func(lexeme string) (Token, bool)) Pattern {
	return Pattern{regexp.MustCompile(`\A(?:` + expr + `)`), emit}
}

// Emit builds a Pattern that produces a token of the given kind.
func Emit(expr string, kind int) Pattern {
	return NewPattern(expr, func(lexeme string) (Token, bool) {
		return Token{Kind: kind, Lexeme: lexeme}, true
	})
}

// Skip builds a Pattern whose matches produce no token.
func Skip(expr string) Pattern {
	return NewPattern(expr, func(string) (Token, bool) { return Token{}, false })
}

// Lex splits src into tokens. At each position the longest match wins;
// ties go to the earliest-declared pattern. Input that matches no
// pattern fails with ErrInvalidToken.
func Lex(src string, patterns []Pattern) ([]Token, error) {
	var toks []Token
	for len(src) > 0 {
		best := -1
		bestLen := 0
		for n := range patterns {
			loc := patterns[n].re.FindStringIndex(src)
			if loc == nil {
				continue
			}
			if loc[1] > bestLen {
				best = n
				bestLen = loc[1]
			}
		}
		if best < 0 {
			near := src
			if len(near) > 20 {
				near = near[:20]
			}
			return nil, errors.Wrapf(ErrInvalidToken, "near %q", near)
		}
		if tok, ok := patterns[best].emit(src[:bestLen]); ok {
			toks = append(toks, tok)
		}
		src = src[bestLen:]
	}
	return toks, nil
}

// A Stream is a cursor over a token slice with the lookahead operations
// a recursive-descent parser needs. The display function renders a token
// kind for error messages.
type Stream struct {
	toks    []Token
	pos     int
	display func(kind int) string
}

// NewStream creates a Stream over toks.
func NewStream(toks []Token, display func(kind int) string) *Stream {
	return &Stream{toks: toks, display: display}
}

// Empty reports whether all tokens have been consumed.
func (s *Stream) Empty() bool {
	return s.pos >= len(s.toks)
}

// Peek returns the current token without consuming it.
func (s *Stream) Peek() (Token, error) {
	if s.Empty() {
		return Token{}, errors.New("unexpected end of input")
	}
	return s.toks[s.pos], nil
}

// Next consumes and returns the current token.
func (s *Stream) Next() (Token, error) {
	tok, err := s.Peek()
	if err != nil {
		return Token{}, err
	}
	s.pos++
	return tok, nil
}

// Eat consumes the current token, erroring unless it has the expected
// kind.
func (s *Stream) Eat(kind int) error {
	if s.Empty() {
		return errors.Errorf("unexpected end of input, wanted %s", s.display(kind))
	}
	if got := s.toks[s.pos].Kind; got != kind {
		return errors.Errorf("expected token %s, got %s", s.display(kind), s.display(got))
	}
	s.pos++
	return nil
}

// Matches reports whether the current token has the given kind.
func (s *Stream) Matches(kind int) bool {
	return !s.Empty() && s.toks[s.pos].Kind == kind
}

// MatchesPrefix reports whether the upcoming tokens have the given kinds
// in order.
func (s *Stream) MatchesPrefix(kinds ...int) bool {
	if len(s.toks)-s.pos < len(kinds) {
		return false
	}
	for n, kind := range kinds {
		if s.toks[s.pos+n].Kind != kind {
			return false
		}
	}
	return true
}
