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

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Sentinel errors raised during the load phase and the fetch/execute
// loop. Errors returned by Execute wrap one of these with a snapshot of
// the machine state; use errors.Cause to discriminate.
var (
	ErrBadDest        = errors.New("bad destination")
	ErrBadStackAccess = errors.New("bad stack access")
	ErrInvalidInstr   = errors.New("invalid instruction")
	ErrInvalidTarget  = errors.New("invalid target")
	ErrInvalidRip     = errors.New("invalid rip")
	ErrInvalidRsp     = errors.New("invalid rsp")
	ErrDuplicateLabel = errors.New("duplicate label")
	ErrNoEntry        = errors.New("no entry")
)

// snapshotStackCells bounds how much of the stack a snapshot shows.
const snapshotStackCells = 15

// fail wraps a sentinel with a message and the machine-state snapshot.
func (i *Instance) fail(sentinel error, format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	return errors.Wrapf(sentinel, "%s\n%s", msg, i.snapshot())
}

// snapshot renders the register, flag, stack and current-instruction
// state for inclusion in error messages.
func (i *Instance) snapshot() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Registers:\nrip=%d rans=%s rsp=%d\n", i.rip, i.rans, i.rsp)
	fmt.Fprintf(&b, "Flags:\nfequal=%t fless=%t\n", i.fequal, i.fless)

	n := snapshotStackCells
	if n > len(i.stack) {
		n = len(i.stack)
	}
	fmt.Fprintf(&b, "Stack (first %d):\n%v\n", n, i.stack[:n])

	b.WriteString("Current instruction:\n")
	if i.rip >= 0 && i.rip < len(i.pgrm) {
		b.WriteString(i.pgrm[i.rip].String())
	} else {
		fmt.Fprintf(&b, "no instruction at rip=%d", i.rip)
	}
	return b.String()
}
