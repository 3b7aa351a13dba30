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

// mapLabels maps every label in the program to the index of the
// instruction that follows it.
func (i *Instance) mapLabels(pgrm []Instr) (map[string]int, error) {
	addrs := make(map[string]int)
	for addr, ins := range pgrm {
		l, ok := ins.(Label)
		if !ok {
			continue
		}
		if _, dup := addrs[l.Name]; dup {
			return nil, i.fail(ErrDuplicateLabel, "label %s defined more than once", l.Name)
		}
		addrs[l.Name] = addr + 1
	}
	return addrs, nil
}

// target resolves a label name to an instruction address.
func (i *Instance) target(label string) (int, error) {
	addr, ok := i.labelAddrs[label]
	if !ok {
		return 0, i.fail(ErrInvalidTarget, "no label %s in program", label)
	}
	return addr, nil
}

// load returns the current value of an operand.
func (i *Instance) load(op Operand) (Cell, error) {
	switch op := op.(type) {
	case Rans:
		return i.rans, nil
	case Rsp:
		return Cell(i.rsp), nil
	case Imm:
		return op.Value, nil
	case StackOff:
		idx := i.rsp + op.Off
		if idx < 0 || idx >= len(i.stack) {
			return 0, i.fail(ErrBadStackAccess, "read at [rsp + %d] with rsp=%d", op.Off, i.rsp)
		}
		return i.stack[idx], nil
	}
	return 0, i.fail(ErrInvalidInstr, "unknown operand %v", op)
}

// store writes a value through an operand. Immediates are not writable.
func (i *Instance) store(op Operand, v Cell) error {
	switch op := op.(type) {
	case Rans:
		i.rans = v
	case Rsp:
		i.rsp = int(v)
	case StackOff:
		idx := i.rsp + op.Off
		if idx < 0 || idx >= len(i.stack) {
			return i.fail(ErrBadStackAccess, "write at [rsp + %d] with rsp=%d", op.Off, i.rsp)
		}
		i.stack[idx] = v
	case Imm:
		return i.fail(ErrBadDest, "cannot store into immediate %s", op)
	default:
		return i.fail(ErrInvalidInstr, "unknown operand %v", op)
	}
	return nil
}

// Execute runs a program to completion from a freshly reset machine
// state, leaving the final answer in the answer register. Execution
// begins at the entry label and halts when the instruction pointer runs
// past the last instruction.
func (i *Instance) Execute(pgrm []Instr) error {
	i.reset()
	i.pgrm = pgrm

	addrs, err := i.mapLabels(pgrm)
	if err != nil {
		return err
	}
	i.labelAddrs = addrs

	entry, ok := addrs[EntryLabel]
	if !ok {
		return i.fail(ErrNoEntry, "program has no %s label", EntryLabel)
	}
	i.rip = entry

	for i.rip != len(pgrm) {
		if i.rip < 0 || i.rip > len(pgrm) {
			return i.fail(ErrInvalidRip, "rip outside program of %d instructions", len(pgrm))
		}
		if err := i.step(pgrm[i.rip]); err != nil {
			return err
		}
		i.insCount++
	}
	return nil
}

// arith applies a binary operator as dst := op(dst, src).
func (i *Instance) arith(src, dst Operand, op func(d, s Cell) Cell) error {
	s, err := i.load(src)
	if err != nil {
		return err
	}
	d, err := i.load(dst)
	if err != nil {
		return err
	}
	return i.store(dst, op(d, s))
}

// step executes a single instruction. Most instructions fall through to
// the next one; jumps, calls and returns set rip explicitly.
func (i *Instance) step(ins Instr) error {
	switch ins := ins.(type) {
	case Mov:
		v, err := i.load(ins.Src)
		if err != nil {
			return err
		}
		if err := i.store(ins.Dst, v); err != nil {
			return err
		}

	case Add:
		if err := i.arith(ins.Src, ins.Dst, func(d, s Cell) Cell { return d + s }); err != nil {
			return err
		}

	case Sub:
		if err := i.arith(ins.Src, ins.Dst, func(d, s Cell) Cell { return d - s }); err != nil {
			return err
		}

	case Mul:
		if err := i.arith(ins.Src, ins.Dst, func(d, s Cell) Cell { return d * s }); err != nil {
			return err
		}

	case Cmp:
		l, err := i.load(ins.Left)
		if err != nil {
			return err
		}
		r, err := i.load(ins.Right)
		if err != nil {
			return err
		}
		i.fequal = l == r
		i.fless = l < r

	case Label:
		// no-op

	case Jmp:
		t, err := i.target(ins.Target)
		if err != nil {
			return err
		}
		i.rip = t
		return nil

	case Je:
		t, err := i.target(ins.Target)
		if err != nil {
			return err
		}
		if i.fequal {
			i.rip = t
			return nil
		}

	case Jne:
		t, err := i.target(ins.Target)
		if err != nil {
			return err
		}
		if !i.fequal {
			i.rip = t
			return nil
		}

	case Call:
		t, err := i.target(ins.Target)
		if err != nil {
			return err
		}
		// the return address slot is one above the current frame base
		i.rsp++
		if i.rsp < 0 || i.rsp >= len(i.stack) {
			return i.fail(ErrInvalidRsp, "cannot push return address at rsp=%d", i.rsp)
		}
		i.stack[i.rsp] = Cell(i.rip + 1)
		i.rip = t
		return nil

	case Ret:
		if i.rsp < 0 || i.rsp >= len(i.stack) {
			return i.fail(ErrInvalidRsp, "cannot pop return address at rsp=%d", i.rsp)
		}
		addr := i.stack[i.rsp]
		i.rsp--
		i.rip = int(addr)
		return nil

	default:
		return i.fail(ErrInvalidInstr, "cannot execute %v", ins)
	}

	i.rip++
	return nil
}
