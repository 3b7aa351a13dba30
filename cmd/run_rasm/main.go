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

// Command run_rasm parses a rasm file, executes it on the virtual
// machine and prints the final answer.
//
//	run_rasm FILE [-stats]
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rasm-lang/rasm/asm"
	"github.com/rasm-lang/rasm/vm"
)

var (
	execStats bool
	debug     bool
)

func init() {
	flag.BoolVar(&execStats, "stats", false, "print performance statistics upon exit")
	flag.BoolVar(&debug, "debug", false, "enable debug diagnostics")
}

func fatal(err error) {
	if debug {
		fmt.Fprintf(os.Stderr, "%+v\n", err)
	} else {
		fmt.Fprintf(os.Stderr, "%v\n", err)
	}
	os.Exit(1)
}

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) > 0 {
		// flags may also follow the file name
		flag.CommandLine.Parse(args[1:])
	}
	if len(args) == 0 || flag.NArg() != 0 {
		fmt.Fprintf(os.Stderr, "Usage: run_rasm FILE [-stats]\n")
		os.Exit(2)
	}
	fileName := args[0]

	f, err := os.Open(fileName)
	if err != nil {
		fatal(err)
	}
	instrs, err := asm.Parse(fileName, f)
	f.Close()
	if err != nil {
		fatal(err)
	}

	m, err := vm.New()
	if err != nil {
		fatal(err)
	}
	start := time.Now()
	if err := m.Execute(instrs); err != nil {
		fatal(err)
	}
	fmt.Println(m.Rans())

	if execStats {
		delta := time.Since(start)
		fmt.Fprintf(os.Stderr, "Executed %d instructions in %v (%.3f MHz).\n",
			m.InstructionCount(), delta,
			float64(m.InstructionCount())/float64(delta)*float64(time.Second)/1e6)
	}
}
