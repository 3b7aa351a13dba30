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

import "github.com/pkg/errors"

const (
	// DefaultStackSize is the number of cells in the stack buffer unless
	// overridden with the StackSize option.
	DefaultStackSize = 10000

	// EntryLabel is the reserved label where execution begins.
	EntryLabel = "entry"
)

// Option configures an Instance at construction time.
type Option func(*Instance) error

// StackSize sets the size of the stack buffer.
func StackSize(size int) Option {
	return func(i *Instance) error {
		if size < 1 {
			return errors.Errorf("invalid stack size %d", size)
		}
		i.stack = make([]Cell, size)
		return nil
	}
}

// Instance represents a rasm virtual machine. An Instance may be reused
// across successive Execute calls; each call starts from a fully reset
// machine state.
type Instance struct {
	rip    int
	rans   Cell
	rsp    int
	fequal bool
	fless  bool
	stack  []Cell

	pgrm       []Instr
	labelAddrs map[string]int
	insCount   int64
}

// New creates a new virtual machine instance.
func New(opts ...Option) (*Instance, error) {
	i := new(Instance)
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return nil, err
		}
	}
	if i.stack == nil {
		i.stack = make([]Cell, DefaultStackSize)
	}
	return i, nil
}

// Rans returns the value of the answer register. After a successful
// Execute this is the final answer of the program.
func (i *Instance) Rans() Cell {
	return i.rans
}

// InstructionCount returns the number of instructions executed by the
// last Execute call.
func (i *Instance) InstructionCount() int64 {
	return i.insCount
}

// reset restores the machine to its initial state: registers and flags
// cleared, stack zero-filled.
func (i *Instance) reset() {
	i.rip, i.rans, i.rsp = 0, 0, 0
	i.fequal, i.fless = false, false
	for n := range i.stack {
		i.stack[n] = 0
	}
	i.insCount = 0
}
