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

// Command compile_file compiles a surface-language source file to rasm.
//
//	compile_file FILE [-r|--run] [-s|--rasm OUT]
//
// With --rasm the emitted instructions are written textually to OUT;
// with --run the program is executed and the final answer printed.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rasm-lang/rasm/asm"
	"github.com/rasm-lang/rasm/compiler"
	"github.com/rasm-lang/rasm/lang"
	"github.com/rasm-lang/rasm/vm"
)

var (
	run         bool
	rasmOutName string
	debug       bool
)

func init() {
	flag.BoolVar(&run, "r", false, "run the compiled program and print the answer")
	flag.BoolVar(&run, "run", false, "run the compiled program and print the answer")
	flag.StringVar(&rasmOutName, "s", "", "write the generated rasm to `filename`")
	flag.StringVar(&rasmOutName, "rasm", "", "write the generated rasm to `filename`")
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
		fmt.Fprintf(os.Stderr, "Usage: compile_file FILE [-r|--run] [-s|--rasm OUT]\n")
		os.Exit(2)
	}
	fileName := args[0]

	src, err := os.ReadFile(fileName)
	if err != nil {
		fatal(err)
	}

	prog, err := lang.Parse(string(src))
	if err != nil {
		fatal(err)
	}

	instrs, err := compiler.Compile(prog.Defns, prog.Body)
	if err != nil {
		fatal(err)
	}

	if rasmOutName != "" {
		f, err := os.Create(rasmOutName)
		if err != nil {
			fatal(err)
		}
		err = asm.Write(f, instrs)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			fatal(err)
		}
	}

	if run {
		m, err := vm.New()
		if err != nil {
			fatal(err)
		}
		if err := m.Execute(instrs); err != nil {
			fatal(err)
		}
		fmt.Println(m.Rans())
	}
}
