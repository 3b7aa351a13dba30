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

// Package compiler translates surface-language programs into rasm.
//
// The code generator never emits explicit pushes. It tracks a next-free
// stack index si statically and stores intermediates at [rsp + si];
// on entry to an expression, slots below si belong to enclosing scopes
// or the return address, and anything at si or above is scratch. Slot 0
// of a function frame holds the return address and parameters occupy
// slots 1..len(params); a program body compiles at si = 1 with slot 0
// unused, since the machine halts instead of returning.
//
// Calls shift rsp up by the caller's highest in-use slot so that the
// callee's return-address slot lands one above it, then shift back down
// after the call:
//
//	add base, rsp
//	call function_f_...
//	sub base, rsp
//
// Argument values are staged at [rsp + base+2+i] before the shift, which
// places them at the callee's slots 1..n.
package compiler

import (
	"github.com/pkg/errors"

	"github.com/rasm-lang/rasm/lang"
	"github.com/rasm-lang/rasm/vm"
)

// Compile-time error sentinels; wrapped errors carry the offending
// name, use errors.Cause to discriminate.
var (
	ErrUndefinedFun  = errors.New("undefined function")
	ErrArityMismatch = errors.New("arity mismatch")
	ErrUnboundName   = errors.New("unbound name")
)

// Compile translates a program (function definitions and an optional
// body) into an equivalent flat instruction sequence. A nil body yields
// only the definitions and the entry label; executing that program
// halts immediately with answer 0.
func Compile(defns []lang.Defn, body lang.Expr) ([]vm.Instr, error) {
	var instrs []vm.Instr
	for _, d := range defns {
		di, err := compileDefn(defns, d)
		if err != nil {
			return nil, err
		}
		instrs = append(instrs, di...)
	}

	instrs = append(instrs, vm.Label{Name: vm.EntryLabel})

	if body != nil {
		bi, err := compileExpr(defns, body, 1, nil)
		if err != nil {
			return nil, err
		}
		instrs = append(instrs, bi...)
	}
	return instrs, nil
}

// compileDefn generates the code for one function definition: its entry
// label, its body compiled with parameters bound to slots 1..n, and a
// return.
func compileDefn(defns []lang.Defn, d lang.Defn) ([]vm.Instr, error) {
	var env *Env
	for n, param := range d.Params {
		env = env.Extend(param, n+1)
	}

	body, err := compileExpr(defns, d.Body, len(d.Params)+1, env)
	if err != nil {
		return nil, err
	}

	instrs := []vm.Instr{vm.Label{Name: FunctionLabel(d.Name)}}
	instrs = append(instrs, body...)
	return append(instrs, vm.Ret{}), nil
}

// compileExpr generates code that leaves the value of e in rans, using
// stack slots si and above as scratch.
func compileExpr(defns []lang.Defn, e lang.Expr, si int, env *Env) ([]vm.Instr, error) {
	switch e := e.(type) {
	case lang.Num:
		return []vm.Instr{vm.Mov{Src: vm.Imm{Value: vm.Cell(e.Value)}, Dst: vm.Rans{}}}, nil

	case lang.Add1:
		instrs, err := compileExpr(defns, e.Operand, si, env)
		if err != nil {
			return nil, err
		}
		return append(instrs, vm.Add{Src: vm.Imm{Value: 1}, Dst: vm.Rans{}}), nil

	case lang.Sub1:
		instrs, err := compileExpr(defns, e.Operand, si, env)
		if err != nil {
			return nil, err
		}
		return append(instrs, vm.Sub{Src: vm.Imm{Value: 1}, Dst: vm.Rans{}}), nil

	case lang.Plus:
		return compileBinary(defns, e.Left, e.Right, si, env,
			vm.Add{Src: vm.StackOff{Off: si}, Dst: vm.Rans{}})

	case lang.Times:
		return compileBinary(defns, e.Left, e.Right, si, env,
			vm.Mul{Src: vm.StackOff{Off: si}, Dst: vm.Rans{}})

	case lang.Minus:
		// sub computes dst := dst - src, so the saved left operand is
		// the destination and the difference is moved back into rans.
		return compileBinary(defns, e.Left, e.Right, si, env,
			vm.Sub{Src: vm.Rans{}, Dst: vm.StackOff{Off: si}},
			vm.Mov{Src: vm.StackOff{Off: si}, Dst: vm.Rans{}})

	case lang.Equals:
		notEqual := gensym("not_equal")
		cont := gensym("continue")
		return compileBinary(defns, e.Left, e.Right, si, env,
			vm.Cmp{Left: vm.StackOff{Off: si}, Right: vm.Rans{}},
			vm.Jne{Target: notEqual},
			vm.Mov{Src: vm.Imm{Value: 1}, Dst: vm.Rans{}},
			vm.Jmp{Target: cont},
			vm.Label{Name: notEqual},
			vm.Mov{Src: vm.Imm{Value: 0}, Dst: vm.Rans{}},
			vm.Label{Name: cont})

	case lang.If:
		elseLbl := gensym("else")
		cont := gensym("continue")

		cond, err := compileExpr(defns, e.Cond, si, env)
		if err != nil {
			return nil, err
		}
		thn, err := compileExpr(defns, e.Then, si, env)
		if err != nil {
			return nil, err
		}
		els, err := compileExpr(defns, e.Else, si, env)
		if err != nil {
			return nil, err
		}

		instrs := append(cond,
			vm.Cmp{Left: vm.Imm{Value: 0}, Right: vm.Rans{}},
			vm.Je{Target: elseLbl})
		instrs = append(instrs, thn...)
		instrs = append(instrs,
			vm.Jmp{Target: cont},
			vm.Label{Name: elseLbl})
		instrs = append(instrs, els...)
		return append(instrs, vm.Label{Name: cont}), nil

	case lang.Let:
		value, err := compileExpr(defns, e.Value, si, env)
		if err != nil {
			return nil, err
		}
		body, err := compileExpr(defns, e.Body, si+1, env.Extend(e.Name, si))
		if err != nil {
			return nil, err
		}
		instrs := append(value, vm.Mov{Src: vm.Rans{}, Dst: vm.StackOff{Off: si}})
		return append(instrs, body...), nil

	case lang.App:
		return compileApp(defns, e, si, env)

	case lang.Name:
		slot, ok := env.Lookup(e.Name)
		if !ok {
			return nil, errors.Wrapf(ErrUnboundName, "%s", e.Name)
		}
		return []vm.Instr{vm.Mov{Src: vm.StackOff{Off: slot}, Dst: vm.Rans{}}}, nil
	}

	return nil, errors.Errorf("unexpected expression %v", e)
}

// compileBinary compiles the shared two-operand pattern: left at si,
// save to [rsp + si], right at si+1, then the operator instructions.
func compileBinary(defns []lang.Defn, left, right lang.Expr, si int, env *Env, op ...vm.Instr) ([]vm.Instr, error) {
	l, err := compileExpr(defns, left, si, env)
	if err != nil {
		return nil, err
	}
	r, err := compileExpr(defns, right, si+1, env)
	if err != nil {
		return nil, err
	}

	instrs := append(l, vm.Mov{Src: vm.Rans{}, Dst: vm.StackOff{Off: si}})
	instrs = append(instrs, r...)
	return append(instrs, op...), nil
}

// compileApp compiles a call. Arguments are staged above the caller's
// frame, then rsp is shifted so the callee sees them as its parameters.
func compileApp(defns []lang.Defn, e lang.App, si int, env *Env) ([]vm.Instr, error) {
	defn, ok := lookupDefn(defns, e.FName)
	if !ok {
		return nil, errors.Wrapf(ErrUndefinedFun, "%s", e.FName)
	}
	if len(e.Args) != len(defn.Params) {
		return nil, errors.Wrapf(ErrArityMismatch, "%s wants %d arguments, got %d",
			e.FName, len(defn.Params), len(e.Args))
	}

	// highest in-use slot in the caller's frame; the return address goes
	// at base+1, arguments at base+2 onward
	base := si - 1

	var instrs []vm.Instr
	for n, arg := range e.Args {
		argSi := base + 2 + n
		ai, err := compileExpr(defns, arg, argSi, env)
		if err != nil {
			return nil, err
		}
		instrs = append(instrs, ai...)
		instrs = append(instrs, vm.Mov{Src: vm.Rans{}, Dst: vm.StackOff{Off: argSi}})
	}

	return append(instrs,
		vm.Add{Src: vm.Imm{Value: vm.Cell(base)}, Dst: vm.Rsp{}},
		vm.Call{Target: FunctionLabel(defn.Name)},
		vm.Sub{Src: vm.Imm{Value: vm.Cell(base)}, Dst: vm.Rsp{}}), nil
}

func lookupDefn(defns []lang.Defn, name string) (lang.Defn, bool) {
	for _, d := range defns {
		if d.Name == name {
			return d, true
		}
	}
	return lang.Defn{}, false
}
