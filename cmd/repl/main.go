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

// Command repl reads surface-language fragments from standard input one
// line at a time. Definitions accumulate across lines; entering an
// expression compiles and runs it against the definitions seen so far
// and prints the answer. SIGINT exits cleanly.
package main

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rasm-lang/rasm/compiler"
	"github.com/rasm-lang/rasm/lang"
	"github.com/rasm-lang/rasm/vm"
)

func main() {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT)
	go func() {
		<-sig
		fmt.Println("\nExiting REPL")
		os.Exit(0)
	}()

	// only prompt when a human is typing at us
	interactive := isTerminal(os.Stdin.Fd())

	m, err := vm.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	var defns []lang.Defn
	in := bufio.NewScanner(os.Stdin)
	for {
		if interactive {
			fmt.Print("> ")
		}
		if !in.Scan() {
			break
		}

		prog, err := lang.Parse(in.Text())
		if err != nil {
			fmt.Println(err)
			continue
		}
		// the first definition of a name wins; later ones are ignored
	next:
		for _, d := range prog.Defns {
			for _, old := range defns {
				if old.Name == d.Name {
					continue next
				}
			}
			defns = append(defns, d)
		}
		if prog.Body == nil {
			continue
		}

		instrs, err := compiler.Compile(defns, prog.Body)
		if err != nil {
			fmt.Println(err)
			continue
		}
		// Execute resets machine state, so reusing m across fragments
		// cannot leak registers or stack contents between runs.
		if err := m.Execute(instrs); err != nil {
			fmt.Println(err)
			continue
		}
		fmt.Println(m.Rans())
	}
}
