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
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGensym_unique(t *testing.T) {
	seen := make(map[string]bool)
	for n := 0; n < 100; n++ {
		l := gensym("else")
		assert.False(t, seen[l], "gensym returned %s twice", l)
		seen[l] = true
	}
}

func TestGensym_format(t *testing.T) {
	assert.Regexp(t, regexp.MustCompile(`^not_equal__[0-9]+$`), gensym("not_equal"))
}

func TestFunctionLabel_deterministic(t *testing.T) {
	assert.Equal(t, FunctionLabel("fact"), FunctionLabel("fact"))
	assert.NotEqual(t, FunctionLabel("odd"), FunctionLabel("even"))
}

func TestFunctionLabel_normalization(t *testing.T) {
	assert.True(t, strings.HasPrefix(FunctionLabel("my-fun"), "function_my_fun_"))
	assert.True(t, strings.HasPrefix(FunctionLabel("valid?!"), "function_valid_"))
	assert.Regexp(t, regexp.MustCompile(`^function_fact_[0-9]+$`), FunctionLabel("fact"))
}
