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

// Package lang defines the surface language: its abstract syntax tree
// and its s-expression parser.
//
// Programs are a sequence of function definitions followed by an
// optional body expression. Line comments start with '#'. The grammar:
//
//	program  ::= defn* expr?
//	defn     ::= '(' 'def' '(' SYM SYM* ')' expr ')'
//	expr     ::= NUM
//	           | SYM
//	           | '(' 'add1' expr ')'
//	           | '(' 'sub1' expr ')'
//	           | '(' '+'    expr expr ')'
//	           | '(' '-'    expr expr ')'
//	           | '(' '*'    expr expr ')'
//	           | '(' '='    expr expr ')'
//	           | '(' 'if'   expr expr expr ')'
//	           | '(' 'let' '(' SYM expr ')' expr ')'
//	           | '(' SYM expr* ')'
//
// Numbers match -?[0-9]+(\.[0-9]+)?, symbols [A-Za-z][A-Za-z0-9?!-]*.
// Lexing is longest-match with declaration-order tie-break, so "deffy"
// is a symbol while "def" alone is the keyword.
package lang

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/rasm-lang/rasm/internal/scan"
)

const (
	tokLParen = iota
	tokRParen
	tokDef
	tokAdd1
	tokSub1
	tokPlus
	tokMinus
	tokTimes
	tokEquals
	tokIf
	tokLet
	tokNum
	tokSym
)

var tokenNames = map[int]string{
	tokLParen: "'('",
	tokRParen: "')'",
	tokDef:    "def",
	tokAdd1:   "add1",
	tokSub1:   "sub1",
	tokPlus:   "+",
	tokMinus:  "-",
	tokTimes:  "*",
	tokEquals: "=",
	tokIf:     "'if'",
	tokLet:    "'let'",
	tokNum:    "number",
	tokSym:    "symbol",
}

func displayToken(kind int) string {
	return tokenNames[kind]
}

// patterns for the surface-language lexer. Keywords are declared before
// the general symbol pattern; the number pattern outranks the bare minus
// by length on negative literals.
var patterns = []scan.Pattern{
	scan.Emit(`\(`, tokLParen),
	scan.Emit(`\)`, tokRParen),
	scan.Skip(`\s+`),
	scan.Skip(`#[^\n]*\n?`),
	scan.Emit(`def`, tokDef),
	scan.Emit(`add1`, tokAdd1),
	scan.Emit(`sub1`, tokSub1),
	scan.Emit(`\+`, tokPlus),
	scan.Emit(`-`, tokMinus),
	scan.Emit(`\*`, tokTimes),
	scan.Emit(`=`, tokEquals),
	scan.Emit(`if`, tokIf),
	scan.Emit(`let`, tokLet),
	scan.NewPattern(`-?[0-9]+(\.[0-9]+)?`, func(lexeme string) (scan.Token, bool) {
		v, _ := strconv.ParseFloat(lexeme, 64)
		return scan.Token{Kind: tokNum, Lexeme: lexeme, Num: v}, true
	}),
	scan.NewPattern(`[A-Za-z][A-Za-z0-9?!-]*`, func(lexeme string) (scan.Token, bool) {
		return scan.Token{Kind: tokSym, Lexeme: lexeme}, true
	}),
}

// Parse parses a whole program. Empty input is accepted and produces
// the empty program.
func Parse(src string) (Program, error) {
	toks, err := scan.Lex(src, patterns)
	if err != nil {
		return Program{}, err
	}
	p := &parser{s: scan.NewStream(toks, displayToken)}
	return p.parseProgram()
}

type parser struct {
	s *scan.Stream
}

func (p *parser) parseProgram() (Program, error) {
	var prog Program

	for p.s.MatchesPrefix(tokLParen, tokDef) {
		d, err := p.parseDefn()
		if err != nil {
			return Program{}, err
		}
		prog.Defns = append(prog.Defns, d)
	}

	if !p.s.Empty() {
		body, err := p.parseExpr()
		if err != nil {
			return Program{}, err
		}
		prog.Body = body
	}

	if !p.s.Empty() {
		return Program{}, errors.New("body must be last expression in program")
	}

	seen := make(map[string]bool)
	for _, d := range prog.Defns {
		if seen[d.Name] {
			return Program{}, errors.Errorf("function %s defined more than once", d.Name)
		}
		seen[d.Name] = true
	}

	return prog, nil
}

func (p *parser) parseDefn() (Defn, error) {
	for _, kind := range []int{tokLParen, tokDef, tokLParen} {
		if err := p.s.Eat(kind); err != nil {
			return Defn{}, err
		}
	}

	if !p.s.Matches(tokSym) {
		tok, err := p.s.Peek()
		if err != nil {
			return Defn{}, errors.New("unexpected end of program: expected a defn")
		}
		return Defn{}, errors.Errorf("invalid function name: %s", displayToken(tok.Kind))
	}
	fname, _ := p.s.Next()

	var params []string
	seen := make(map[string]bool)
	for p.s.Matches(tokSym) {
		tok, _ := p.s.Next()
		if seen[tok.Lexeme] {
			return Defn{}, errors.Errorf("duplicate parameter %s in definition of %s", tok.Lexeme, fname.Lexeme)
		}
		seen[tok.Lexeme] = true
		params = append(params, tok.Lexeme)
	}
	if err := p.s.Eat(tokRParen); err != nil {
		if p.s.Matches(tokNum) {
			return Defn{}, errors.Errorf("invalid parameter name in definition of %s: %s",
				fname.Lexeme, displayToken(tokNum))
		}
		return Defn{}, err
	}

	body, err := p.parseExpr()
	if err != nil {
		return Defn{}, err
	}
	if err := p.s.Eat(tokRParen); err != nil {
		return Defn{}, err
	}

	return Defn{Name: fname.Lexeme, Params: params, Body: body}, nil
}

func (p *parser) parseExpr() (Expr, error) {
	if p.s.Empty() {
		return nil, errors.New("unexpected end of program: expected expression")
	}

	switch {
	case p.s.Matches(tokNum):
		tok, _ := p.s.Next()
		return Num{Value: tok.Num}, nil

	case p.s.Matches(tokSym):
		tok, _ := p.s.Next()
		return Name{Name: tok.Lexeme}, nil

	case p.s.Matches(tokLParen):
		p.s.Eat(tokLParen)
		return p.parseForm()
	}

	tok, _ := p.s.Peek()
	return nil, errors.Errorf("invalid expression near %s", displayToken(tok.Kind))
}

// parseForm parses the parenthesized forms; the opening paren has been
// consumed.
func (p *parser) parseForm() (Expr, error) {
	switch {
	case p.s.Matches(tokAdd1):
		p.s.Eat(tokAdd1)
		operand, err := p.parseClosedUnary()
		if err != nil {
			return nil, err
		}
		return Add1{Operand: operand}, nil

	case p.s.Matches(tokSub1):
		p.s.Eat(tokSub1)
		operand, err := p.parseClosedUnary()
		if err != nil {
			return nil, err
		}
		return Sub1{Operand: operand}, nil

	case p.s.Matches(tokPlus):
		p.s.Eat(tokPlus)
		l, r, err := p.parseClosedPair()
		if err != nil {
			return nil, err
		}
		return Plus{Left: l, Right: r}, nil

	case p.s.Matches(tokMinus):
		p.s.Eat(tokMinus)
		l, r, err := p.parseClosedPair()
		if err != nil {
			return nil, err
		}
		return Minus{Left: l, Right: r}, nil

	case p.s.Matches(tokTimes):
		p.s.Eat(tokTimes)
		l, r, err := p.parseClosedPair()
		if err != nil {
			return nil, err
		}
		return Times{Left: l, Right: r}, nil

	case p.s.Matches(tokEquals):
		p.s.Eat(tokEquals)
		l, r, err := p.parseClosedPair()
		if err != nil {
			return nil, err
		}
		return Equals{Left: l, Right: r}, nil

	case p.s.Matches(tokIf):
		p.s.Eat(tokIf)
		cond, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		thn, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		els, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.s.Eat(tokRParen); err != nil {
			return nil, err
		}
		return If{Cond: cond, Then: thn, Else: els}, nil

	case p.s.Matches(tokLet):
		p.s.Eat(tokLet)
		if err := p.s.Eat(tokLParen); err != nil {
			return nil, err
		}
		if !p.s.Matches(tokSym) {
			tok, err := p.s.Peek()
			if err != nil {
				return nil, err
			}
			return nil, errors.Errorf("invalid identifier name: %s", displayToken(tok.Kind))
		}
		name, _ := p.s.Next()
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.s.Eat(tokRParen); err != nil {
			return nil, err
		}
		body, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.s.Eat(tokRParen); err != nil {
			return nil, err
		}
		return Let{Name: name.Lexeme, Value: value, Body: body}, nil
	}

	// application
	if !p.s.Matches(tokSym) {
		tok, err := p.s.Peek()
		if err != nil {
			return nil, err
		}
		return nil, errors.Errorf("invalid function in application: %s", displayToken(tok.Kind))
	}
	fname, _ := p.s.Next()

	args := []Expr{}
	for !p.s.Matches(tokRParen) {
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	p.s.Eat(tokRParen)
	return App{FName: fname.Lexeme, Args: args}, nil
}

// parseClosedUnary parses "expr )".
func (p *parser) parseClosedUnary() (Expr, error) {
	operand, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.s.Eat(tokRParen); err != nil {
		return nil, err
	}
	return operand, nil
}

// parseClosedPair parses "expr expr )".
func (p *parser) parseClosedPair() (Expr, Expr, error) {
	l, err := p.parseExpr()
	if err != nil {
		return nil, nil, err
	}
	r, err := p.parseExpr()
	if err != nil {
		return nil, nil, err
	}
	if err := p.s.Eat(tokRParen); err != nil {
		return nil, nil, err
	}
	return l, r, nil
}
