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

package lang_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rasm-lang/rasm/internal/scan"
	"github.com/rasm-lang/rasm/lang"
)

// body parses src and requires a body-only program.
func body(t *testing.T, src string) lang.Expr {
	t.Helper()
	prog, err := lang.Parse(src)
	require.NoError(t, err)
	require.Empty(t, prog.Defns)
	return prog.Body
}

func TestParse_numLiterals(t *testing.T) {
	assert.Equal(t, lang.Num{Value: 17}, body(t, "17"))
	assert.Equal(t, lang.Num{Value: -134.288}, body(t, "-134.288"))
	assert.Equal(t, lang.Num{Value: 0}, body(t, "0"))
}

func TestParse_add1(t *testing.T) {
	assert.Equal(t, lang.Add1{Operand: lang.Num{Value: 7}}, body(t, "(add1 7)"))
	assert.Equal(t, lang.Add1{Operand: lang.Num{Value: -40}}, body(t, "(add1 -40)"))
	assert.Equal(t,
		lang.Add1{Operand: lang.Add1{Operand: lang.Add1{Operand: lang.Num{Value: 301}}}},
		body(t, "(add1 (add1 (add1 301)))"))
}

func TestParse_sub1(t *testing.T) {
	assert.Equal(t, lang.Sub1{Operand: lang.Num{Value: 13}}, body(t, "(sub1 13)"))
	assert.Equal(t,
		lang.Sub1{Operand: lang.Sub1{Operand: lang.Num{Value: 16}}},
		body(t, "(sub1 (sub1 16))"))
}

func TestParse_arith(t *testing.T) {
	assert.Equal(t,
		lang.Plus{Left: lang.Num{Value: 2}, Right: lang.Num{Value: 3}},
		body(t, "(+ 2 3)"))
	assert.Equal(t,
		lang.Plus{
			Left:  lang.Plus{Left: lang.Num{Value: 4}, Right: lang.Num{Value: 4}},
			Right: lang.Plus{Left: lang.Num{Value: 17}, Right: lang.Num{Value: -3}},
		},
		body(t, "(+ (+ 4 4) (+ 17 -3))"))
	assert.Equal(t,
		lang.Minus{Left: lang.Num{Value: 17.3}, Right: lang.Num{Value: -2}},
		body(t, "(- 17.3 -2)"))
	assert.Equal(t,
		lang.Times{Left: lang.Num{Value: 3}, Right: lang.Num{Value: 18}},
		body(t, "(* 3 18)"))
	assert.Equal(t,
		lang.Equals{Left: lang.Num{Value: 300}, Right: lang.Num{Value: 200}},
		body(t, "(= 300 200)"))
}

func TestParse_if(t *testing.T) {
	assert.Equal(t,
		lang.If{Cond: lang.Num{Value: 4}, Then: lang.Num{Value: 3}, Else: lang.Num{Value: 2}},
		body(t, "(if 4 3 2)"))
	assert.Equal(t,
		lang.If{
			Cond: lang.Equals{Left: lang.Num{Value: 2}, Right: lang.Num{Value: 1}},
			Then: lang.Plus{Left: lang.Num{Value: 1}, Right: lang.Num{Value: 2}},
			Else: lang.Plus{Left: lang.Num{Value: 2}, Right: lang.Num{Value: 3}},
		},
		body(t, "(if (= 2 1) (+ 1 2) (+ 2 3))"))
}

func TestParse_let(t *testing.T) {
	assert.Equal(t,
		lang.Let{Name: "x", Value: lang.Num{Value: 2}, Body: lang.Name{Name: "x"}},
		body(t, "(let (x 2) x)"))
	assert.Equal(t,
		lang.Let{
			Name:  "var-name",
			Value: lang.Plus{Left: lang.Num{Value: 1}, Right: lang.Num{Value: 2}},
			Body:  lang.Sub1{Operand: lang.Name{Name: "var-name"}},
		},
		body(t, "(let (var-name (+ 1 2)) (sub1 var-name))"))
	assert.Equal(t,
		lang.Let{
			Name:  "y",
			Value: lang.Num{Value: 3},
			Body: lang.Let{
				Name:  "z",
				Value: lang.Num{Value: 4},
				Body:  lang.Plus{Left: lang.Name{Name: "z"}, Right: lang.Name{Name: "y"}},
			},
		},
		body(t, "(let (y 3) (let (z 4) (+ z y)))"))
}

func TestParse_app(t *testing.T) {
	assert.Equal(t,
		lang.App{FName: "fun", Args: []lang.Expr{lang.Num{Value: 3}, lang.Num{Value: 4}}},
		body(t, "(fun 3 4)"))
	assert.Equal(t,
		lang.App{FName: "no-args", Args: []lang.Expr{}},
		body(t, "(no-args)"))
	assert.Equal(t,
		lang.App{FName: "many-args", Args: []lang.Expr{
			lang.Plus{Left: lang.Num{Value: 1}, Right: lang.Num{Value: 2}},
			lang.Num{Value: 3}, lang.Num{Value: 4}, lang.Num{Value: 5}, lang.Num{Value: 6},
		}},
		body(t, "(many-args (+ 1 2) 3 4 5 6)"))
}

func TestParse_names(t *testing.T) {
	assert.Equal(t, lang.Name{Name: "x"}, body(t, "x"))
	assert.Equal(t, lang.Name{Name: "longer-name"}, body(t, "longer-name"))
	assert.Equal(t, lang.Name{Name: "name!?-with-more-chars"}, body(t, "name!?-with-more-chars"))
}

func TestParse_defns(t *testing.T) {
	prog, err := lang.Parse("(def (f x y) (+ x y)) 3")
	require.NoError(t, err)
	assert.Equal(t, []lang.Defn{
		{Name: "f", Params: []string{"x", "y"},
			Body: lang.Plus{Left: lang.Name{Name: "x"}, Right: lang.Name{Name: "y"}}},
	}, prog.Defns)
	assert.Equal(t, lang.Num{Value: 3}, prog.Body)

	prog, err = lang.Parse("(def (fun1 a) a)\n(def (fun2 a b) b)\n(fun1 (fun2 4 5))")
	require.NoError(t, err)
	assert.Equal(t, []lang.Defn{
		{Name: "fun1", Params: []string{"a"}, Body: lang.Name{Name: "a"}},
		{Name: "fun2", Params: []string{"a", "b"}, Body: lang.Name{Name: "b"}},
	}, prog.Defns)
	assert.Equal(t,
		lang.App{FName: "fun1", Args: []lang.Expr{
			lang.App{FName: "fun2", Args: []lang.Expr{lang.Num{Value: 4}, lang.Num{Value: 5}}},
		}},
		prog.Body)
}

// a program with definitions and no body is fine
func TestParse_noBody(t *testing.T) {
	prog, err := lang.Parse("(def (f x) x)")
	require.NoError(t, err)
	assert.Equal(t, []lang.Defn{{Name: "f", Params: []string{"x"}, Body: lang.Name{Name: "x"}}},
		prog.Defns)
	assert.Nil(t, prog.Body)
}

func TestParse_empty(t *testing.T) {
	prog, err := lang.Parse("")
	require.NoError(t, err)
	assert.Empty(t, prog.Defns)
	assert.Nil(t, prog.Body)

	prog, err = lang.Parse("# nothing but a comment\n")
	require.NoError(t, err)
	assert.Empty(t, prog.Defns)
	assert.Nil(t, prog.Body)
}

func TestParse_comments(t *testing.T) {
	assert.Equal(t,
		lang.Plus{Left: lang.Num{Value: 1}, Right: lang.Num{Value: 2}},
		body(t, "# adds two numbers\n(+ 1 # left\n2)"))
}

func TestParse_errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"body_not_last", "(+ 1 2) (def (g x) x)"},
		{"numeric_function_name", "(def (100 x) (+ x x))"},
		{"invalid_let_name", "(let ((+ 2 3) 0) 1)"},
		{"numeric_application_head", "(61 7 3 2)"},
		{"missing_lparen", "def (f x) x)"},
		{"duplicate_defn", "(def (f a) a) (def (g x) x) (def (f x) x) 10"},
		{"numeric_params", "(def (f 1 2 3) (+ 1 2))"},
		{"duplicate_params", "(def (f x x) x) 1"},
		{"unterminated", "(+ 1"},
		{"stray_rparen", ")"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := lang.Parse(tc.src)
			assert.Error(t, err)
		})
	}
}

func TestParse_lexErrors(t *testing.T) {
	for _, src := range []string{"@*#&^%", "~~_;;_*##(("} {
		_, err := lang.Parse(src)
		require.Error(t, err)
		assert.Equal(t, scan.ErrInvalidToken, errors.Cause(err))
	}
}

// parse → render → parse is identity up to whitespace
func TestParse_stringRoundTrip(t *testing.T) {
	sources := []string{
		"170",
		"-8.3342",
		"(add1 (add1 (add1 40)))",
		"(- (- 9 3) (- 3 2))",
		"(if (= 4 5) (+ 2 3) (+ 4 5))",
		"(let (x 5) (let (y 15) (let (z -1) (+ x (+ y z)))))",
		"(def (fact n) (if (= n 0) 1 (* n (fact (sub1 n))))) (fact 5)",
		"(def (odd n) (if (= n 0) 0 (even (sub1 n)))) (def (even n) (if (= n 0) 1 (odd (sub1 n)))) (even 16)",
	}
	for _, src := range sources {
		prog, err := lang.Parse(src)
		require.NoError(t, err)

		var rendered string
		for _, d := range prog.Defns {
			rendered += d.String() + " "
		}
		rendered += prog.Body.String()

		again, err := lang.Parse(rendered)
		require.NoError(t, err)
		assert.Equal(t, prog, again)
	}
}
