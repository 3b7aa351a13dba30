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

// Package asm reads and writes textual rasm.
//
// Tokens are ',', ':', '[', ']', '+', numeric literals, the mnemonics
// mov, add, sub, mul, cmp, jmp, je, jne, call and ret, the register
// names rans and rsp, and labels matching [A-Za-z][A-Za-z0-9_]*.
// Whitespace is insignificant; lexing is longest-match with ties broken
// by declaration order, so mnemonics and register names win over the
// label pattern only when nothing longer matches.
//
// Grammar, one instruction per logical unit:
//
//	instr    ::= LABEL ':'
//	           | ('mov'|'add'|'sub'|'mul'|'cmp') operand ',' operand
//	           | ('jmp'|'je'|'jne'|'call') LABEL
//	           | 'ret'
//	operand  ::= NUM
//	           | 'rans'
//	           | 'rsp'
//	           | '[' 'rsp' '+' NUM ']'
//
// The offset in a stack operand must be a non-negative integer. Two-
// operand instructions read source first, destination second:
//
//	mov 5, rans		( rans := 5 )
//	add [rsp + 2], rans	( rans := rans + stack[rsp+2] )
//
// Labels are defined by suffixing them with a colon and referenced bare
// in jump and call instructions:
//
//	entry:
//		mov 21, rans
//		add rans, rans
package asm

import (
	"io"

	"github.com/pkg/errors"

	"github.com/rasm-lang/rasm/internal/ri"
	"github.com/rasm-lang/rasm/vm"
)

// Parse reads rasm source from r and returns the instruction list.
//
// The name parameter is used only to prefix error messages with the
// source of the error. If r is a file, name should be the file name.
func Parse(name string, r io.Reader) ([]vm.Instr, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", name)
	}
	instrs, err := parse(string(src))
	if err != nil {
		return nil, errors.Wrapf(err, "%s", name)
	}
	return instrs, nil
}

// Write emits instrs as rasm text to w, one instruction per line with
// labels flush-left and everything else tab-indented.
func Write(w io.Writer, instrs []vm.Instr) error {
	ew := ri.NewErrWriter(w)
	for _, ins := range instrs {
		io.WriteString(ew, ins.String())
		io.WriteString(ew, "\n")
	}
	return ew.Err
}
