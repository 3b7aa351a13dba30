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

package asm

import (
	"math"
	"strconv"

	"github.com/pkg/errors"

	"github.com/rasm-lang/rasm/internal/scan"
	"github.com/rasm-lang/rasm/vm"
)

const (
	tokComma = iota
	tokColon
	tokLBracket
	tokRBracket
	tokPlus
	tokMov
	tokAdd
	tokSub
	tokMul
	tokCmp
	tokJmp
	tokJe
	tokJne
	tokCall
	tokRet
	tokRans
	tokRsp
	tokLabel
	tokNum
)

var tokenNames = map[int]string{
	tokComma:    "','",
	tokColon:    "':'",
	tokLBracket: "'['",
	tokRBracket: "']'",
	tokPlus:     "+",
	tokMov:      "mov",
	tokAdd:      "add",
	tokSub:      "sub",
	tokMul:      "mul",
	tokCmp:      "cmp",
	tokJmp:      "jmp",
	tokJe:       "je",
	tokJne:      "jne",
	tokCall:     "call",
	tokRet:      "ret",
	tokRans:     "rans",
	tokRsp:      "rsp",
	tokLabel:    "label",
	tokNum:      "number",
}

func displayToken(kind int) string {
	return tokenNames[kind]
}

func num(kind int) func(string) (scan.Token, bool) {
	return func(lexeme string) (scan.Token, bool) {
		v, _ := strconv.ParseFloat(lexeme, 64)
		return scan.Token{Kind: kind, Lexeme: lexeme, Num: v}, true
	}
}

// patterns for the rasm lexer. Mnemonics and registers come before the
// general label pattern so declaration order breaks exact-length ties;
// a longer identifier such as "movx" still lexes as a label.
var patterns = []scan.Pattern{
	scan.Skip(`\s+`),
	scan.Emit(`,`, tokComma),
	scan.Emit(`:`, tokColon),
	scan.Emit(`\[`, tokLBracket),
	scan.Emit(`\]`, tokRBracket),
	scan.Emit(`\+`, tokPlus),
	scan.Emit(`mov`, tokMov),
	scan.Emit(`add`, tokAdd),
	scan.Emit(`sub`, tokSub),
	scan.Emit(`mul`, tokMul),
	scan.Emit(`cmp`, tokCmp),
	scan.Emit(`jmp`, tokJmp),
	scan.Emit(`je`, tokJe),
	scan.Emit(`jne`, tokJne),
	scan.Emit(`call`, tokCall),
	scan.Emit(`ret`, tokRet),
	scan.Emit(`rans`, tokRans),
	scan.Emit(`rsp`, tokRsp),
	scan.NewPattern(`[A-Za-z][A-Za-z0-9_]*`, func(lexeme string) (scan.Token, bool) {
		return scan.Token{Kind: tokLabel, Lexeme: lexeme}, true
	}),
	scan.NewPattern(`-?[0-9]+(\.[0-9]+)?`, num(tokNum)),
}

type parser struct {
	s      *scan.Stream
	instrs []vm.Instr
}

func parse(src string) ([]vm.Instr, error) {
	toks, err := scan.Lex(src, patterns)
	if err != nil {
		return nil, err
	}
	p := &parser{s: scan.NewStream(toks, displayToken)}
	if err := p.parse(); err != nil {
		return nil, err
	}
	return p.instrs, nil
}

func (p *parser) parse() error {
	for !p.s.Empty() {
		var err error
		switch {
		case p.s.Matches(tokLabel):
			err = p.parseLabel()
		case p.s.Matches(tokMov):
			err = p.parseBinOp(tokMov, func(src, dst vm.Operand) vm.Instr { return vm.Mov{Src: src, Dst: dst} })
		case p.s.Matches(tokAdd):
			err = p.parseBinOp(tokAdd, func(src, dst vm.Operand) vm.Instr { return vm.Add{Src: src, Dst: dst} })
		case p.s.Matches(tokSub):
			err = p.parseBinOp(tokSub, func(src, dst vm.Operand) vm.Instr { return vm.Sub{Src: src, Dst: dst} })
		case p.s.Matches(tokMul):
			err = p.parseBinOp(tokMul, func(src, dst vm.Operand) vm.Instr { return vm.Mul{Src: src, Dst: dst} })
		case p.s.Matches(tokCmp):
			err = p.parseBinOp(tokCmp, func(l, r vm.Operand) vm.Instr { return vm.Cmp{Left: l, Right: r} })
		case p.s.Matches(tokJmp):
			err = p.parseJump(tokJmp, func(t string) vm.Instr { return vm.Jmp{Target: t} })
		case p.s.Matches(tokJe):
			err = p.parseJump(tokJe, func(t string) vm.Instr { return vm.Je{Target: t} })
		case p.s.Matches(tokJne):
			err = p.parseJump(tokJne, func(t string) vm.Instr { return vm.Jne{Target: t} })
		case p.s.Matches(tokCall):
			err = p.parseJump(tokCall, func(t string) vm.Instr { return vm.Call{Target: t} })
		case p.s.Matches(tokRet):
			p.s.Eat(tokRet)
			p.instrs = append(p.instrs, vm.Ret{})
		default:
			tok, _ := p.s.Peek()
			return errors.Errorf("expected instruction, got %s", displayToken(tok.Kind))
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (p *parser) parseLabel() error {
	tok, err := p.s.Next()
	if err != nil {
		return err
	}
	if err := p.s.Eat(tokColon); err != nil {
		return err
	}
	p.instrs = append(p.instrs, vm.Label{Name: tok.Lexeme})
	return nil
}

func (p *parser) parseBinOp(kind int, make func(a, b vm.Operand) vm.Instr) error {
	if err := p.s.Eat(kind); err != nil {
		return err
	}
	src, err := p.parseOperand()
	if err != nil {
		return err
	}
	if err := p.s.Eat(tokComma); err != nil {
		return err
	}
	dst, err := p.parseOperand()
	if err != nil {
		return err
	}
	p.instrs = append(p.instrs, make(src, dst))
	return nil
}

func (p *parser) parseJump(kind int, make func(target string) vm.Instr) error {
	if err := p.s.Eat(kind); err != nil {
		return err
	}
	target, err := p.s.Next()
	if err != nil {
		return err
	}
	if target.Kind != tokLabel {
		return errors.Errorf("expected label target for %s, got %s",
			displayToken(kind), displayToken(target.Kind))
	}
	p.instrs = append(p.instrs, make(target.Lexeme))
	return nil
}

func (p *parser) parseOperand() (vm.Operand, error) {
	if p.s.Empty() {
		return nil, errors.New("unexpected end of input: expected operand")
	}
	switch {
	case p.s.Matches(tokNum):
		tok, _ := p.s.Next()
		return vm.Imm{Value: vm.Cell(tok.Num)}, nil

	case p.s.Matches(tokRans):
		p.s.Eat(tokRans)
		return vm.Rans{}, nil

	case p.s.Matches(tokRsp):
		p.s.Eat(tokRsp)
		return vm.Rsp{}, nil

	case p.s.Matches(tokLBracket):
		p.s.Eat(tokLBracket)
		if err := p.s.Eat(tokRsp); err != nil {
			return nil, err
		}
		if err := p.s.Eat(tokPlus); err != nil {
			return nil, err
		}
		off, err := p.s.Next()
		if err != nil {
			return nil, err
		}
		if off.Kind != tokNum {
			return nil, errors.Errorf("expected offset from rsp, got %s", displayToken(off.Kind))
		}
		if off.Num != math.Trunc(off.Num) || off.Num < 0 {
			return nil, errors.Errorf("expected non-negative integer stack offset, got %s", off.Lexeme)
		}
		if err := p.s.Eat(tokRBracket); err != nil {
			return nil, err
		}
		return vm.StackOff{Off: int(off.Num)}, nil
	}

	tok, _ := p.s.Peek()
	return nil, errors.Errorf("expected operand, got %s", displayToken(tok.Kind))
}
