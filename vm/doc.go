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

// Package vm implements the rasm virtual machine and its instruction
// model.
//
// The machine has three registers and two flags:
//
//	rans	the answer register, also used for scratch intermediates
//	rsp	the stack pointer, indexing the base of the current frame
//	rip	the instruction pointer (next instruction index)
//	fequal	set by cmp when its operands are equal
//	fless	set by cmp when the left operand is less than the right
//
// Memory is a single fixed-size stack buffer, addressed relative to rsp
// as [rsp + k]. There is no heap.
//
// Instructions:
//
//	mov src, dst	dst := src
//	add src, dst	dst := dst + src
//	sub src, dst	dst := dst - src
//	mul src, dst	dst := dst * src
//	cmp l, r	fequal := (l == r); fless := (l < r)
//	lbl:		define label lbl; executing it is a no-op
//	jmp lbl		jump to lbl
//	je lbl		jump to lbl if fequal
//	jne lbl		jump to lbl if not fequal
//	call lbl	rsp++; stack[rsp] := return address; jump to lbl
//	ret		rip := stack[rsp]; rsp--
//
// A program is a flat instruction slice. Execute builds a map from label
// name to the index of the following instruction, starts at the reserved
// "entry" label, and halts when rip runs past the last instruction. The
// calling convention cooperates with the compiler package: a caller
// shifts rsp up so that the slot just above its highest in-use slot is
// where call stores the return address (slot 0 of the callee's frame),
// calls, and shifts rsp back down on return.
//
// Errors carry a human-readable snapshot of the register, flag, stack
// and current-instruction state; use errors.Cause to recover the
// sentinel (ErrBadDest, ErrInvalidRsp, ...). Runaway recursion exhausts
// the stack and surfaces as ErrInvalidRsp.
package vm
