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

import (
	"fmt"
	"hash/fnv"
	"strings"
)

// gensymCounter is process-wide; labels only need to be unique within
// one emitted program, so the counter is never reset. Compilation is
// single-threaded and the counter is not safe for concurrent use.
var gensymCounter uint64

// gensym returns a fresh label built from the given base.
func gensym(base string) string {
	n := gensymCounter
	gensymCounter++
	return fmt.Sprintf("%s__%d", base, n)
}

// FunctionLabel derives the entry label for a function from its source
// name. The derivation is stable across compilations: the name is
// normalized to label characters and suffixed with an FNV-1a hash of the
// original. Distinct names hashing to the same label are a known
// limitation.
func FunctionLabel(name string) string {
	var norm strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			norm.WriteRune(r)
		case r == '-':
			norm.WriteByte('_')
		}
	}
	h := fnv.New64a()
	h.Write([]byte(name))
	return fmt.Sprintf("function_%s_%d", norm.String(), h.Sum64())
}
