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

package vm

import "strconv"

// Cell is the raw type of a runtime value. It may carry a fractional part;
// integer values stay exact well past anything a rasm program computes.
// Booleans are encoded as 0 (false) and 1 (true).
type Cell float64

// String formats a Cell without a decimal point when the value is integral.
func (c Cell) String() string {
	return strconv.FormatFloat(float64(c), 'f', -1, 64)
}

// An Operand is a location an instruction reads from or writes to. The
// concrete types are Imm, Rans, Rsp and StackOff. Operands are immutable
// values and compare with ==.
type Operand interface {
	operand()
	String() string
}

// Imm is an immediate constant. It can only be read; storing into an Imm
// is a runtime error.
type Imm struct{ Value Cell }

// Rans is the answer register.
type Rans struct{}

// Rsp is the stack pointer register, indexing the current frame base.
type Rsp struct{}

// StackOff is the memory cell at stack[rsp+Off]. Off is non-negative in
// any well-formed program.
type StackOff struct{ Off int }

func (Imm) operand() {}
func (Rans) operand() {}
func (Rsp) operand() {}
func (StackOff) operand() {}

func (o Imm) String() string { return o.Value.String() }
func (Rans) String() string { return "rans" }
func (Rsp) String() string { return "rsp" }

func (o StackOff) String() string {
	return "[rsp + " + strconv.Itoa(o.Off) + "]"
}

// An Instr is a single rasm instruction. The concrete types are Mov, Add,
// Sub, Mul, Cmp, Label, Jmp, Je, Jne, Call and Ret. Instructions are
// immutable values and compare with ==; String renders the textual rasm
// form, with labels flush-left and all other instructions tab-indented.
type Instr interface {
	instr()
	String() string
}

// Mov copies the value of Src into Dst.
type Mov struct{ Src, Dst Operand }

// Add computes Dst := Dst + Src.
type Add struct{ Src, Dst Operand }

// Sub computes Dst := Dst - Src.
type Sub struct{ Src, Dst Operand }

// Mul computes Dst := Dst * Src.
type Mul struct{ Src, Dst Operand }

// Cmp compares Left against Right, setting the equal and less flags.
type Cmp struct{ Left, Right Operand }

// Label names the position of the instruction that follows it. Executing
// a Label is a no-op.
type Label struct{ Name string }

// Jmp transfers control to Target unconditionally.
type Jmp struct{ Target string }

// Je transfers control to Target when the equal flag is set.
type Je struct{ Target string }

// Jne transfers control to Target when the equal flag is clear.
type Jne struct{ Target string }

// Call pushes the return address and transfers control to Target.
type Call struct{ Target string }

// Ret pops the return address and transfers control to it.
type Ret struct{}

func (Mov) instr() {}
func (Add) instr() {}
func (Sub) instr() {}
func (Mul) instr() {}
func (Cmp) instr() {}
func (Label) instr() {}
func (Jmp) instr() {}
func (Je) instr() {}
func (Jne) instr() {}
func (Call) instr() {}
func (Ret) instr() {}

func (i Mov) String() string { return "\tmov " + i.Src.String() + ", " + i.Dst.String() }
func (i Add) String() string { return "\tadd " + i.Src.String() + ", " + i.Dst.String() }
func (i Sub) String() string { return "\tsub " + i.Src.String() + ", " + i.Dst.String() }
func (i Mul) String() string { return "\tmul " + i.Src.String() + ", " + i.Dst.String() }
func (i Cmp) String() string { return "\tcmp " + i.Left.String() + ", " + i.Right.String() }

func (i Label) String() string { return i.Name + ":" }

func (i Jmp) String() string { return "\tjmp " + i.Target }

func (i Je) String() string { return "\tje " + i.Target }

func (i Jne) String() string { return "\tjne " + i.Target }

func (i Call) String() string { return "\tcall " + i.Target }

func (Ret) String() string { return "\tret" }
