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

package compiler

// Env maps identifier names to stack slot indices. It is persistent: a
// nil *Env is the empty environment, and Extend returns a new
// environment without touching the receiver. The latest binding of a
// name shadows earlier ones.
type Env struct {
	name string
	slot int
	next *Env
}

// Extend returns env extended with name bound to slot.
func (e *Env) Extend(name string, slot int) *Env {
	return &Env{name: name, slot: slot, next: e}
}

// Lookup returns the slot bound to name, honoring shadowing.
func (e *Env) Lookup(name string) (slot int, ok bool) {
	for ; e != nil; e = e.next {
		if e.name == name {
			return e.slot, true
		}
	}
	return 0, false
}
