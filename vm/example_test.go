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

package vm_test

import (
	"fmt"

	"github.com/rasm-lang/rasm/vm"
)

func ExampleInstance_Execute() {
	prog := []vm.Instr{
		vm.Label{Name: vm.EntryLabel},
		vm.Mov{Src: vm.Imm{Value: 21}, Dst: vm.Rans{}},
		vm.Add{Src: vm.Rans{}, Dst: vm.Rans{}},
	}

	m, err := vm.New()
	if err != nil {
		fmt.Println(err)
		return
	}
	if err := m.Execute(prog); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(m.Rans())
	// Output: 42
}
