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

package lang

import (
	"strconv"
	"strings"
)

// An Expr is an expression of the surface language, evaluating to a
// number. The concrete types are Num, Add1, Sub1, Plus, Minus, Times,
// Equals, If, Let, App and Name. Expressions are immutable values;
// String renders the surface syntax back.
type Expr interface {
	expr()
	String() string
}

// Num is a numeric literal.
type Num struct{ Value float64 }

// Add1 increments its operand by 1.
type Add1 struct{ Operand Expr }

// Sub1 decrements its operand by 1.
type Sub1 struct{ Operand Expr }

// Plus is binary addition.
type Plus struct{ Left, Right Expr }

// Minus is binary subtraction.
type Minus struct{ Left, Right Expr }

// Times is binary multiplication.
type Times struct{ Left, Right Expr }

// Equals yields 1 when its operands are equal, 0 otherwise.
type Equals struct{ Left, Right Expr }

// If chooses Then when Cond evaluates to anything but 0.
type If struct{ Cond, Then, Else Expr }

// Let binds Name to the value of Value within Body.
type Let struct {
	Name  string
	Value Expr
	Body  Expr
}

// App calls a user-defined function by name.
type App struct {
	FName string
	Args  []Expr
}

// Name references a bound variable.
type Name struct{ Name string }

func (Num) expr() {}
func (Add1) expr() {}
func (Sub1) expr() {}
func (Plus) expr() {}
func (Minus) expr() {}
func (Times) expr() {}
func (Equals) expr() {}
func (If) expr() {}
func (Let) expr() {}
func (App) expr() {}
func (Name) expr() {}

func (e Num) String() string {
	return strconv.FormatFloat(e.Value, 'f', -1, 64)
}

func (e Add1) String() string { return "(add1 " + e.Operand.String() + ")" }
func (e Sub1) String() string { return "(sub1 " + e.Operand.String() + ")" }

func (e Plus) String() string   { return "(+ " + e.Left.String() + " " + e.Right.String() + ")" }
func (e Minus) String() string  { return "(- " + e.Left.String() + " " + e.Right.String() + ")" }
func (e Times) String() string  { return "(* " + e.Left.String() + " " + e.Right.String() + ")" }
func (e Equals) String() string { return "(= " + e.Left.String() + " " + e.Right.String() + ")" }

func (e If) String() string {
	return "(if " + e.Cond.String() + " " + e.Then.String() + " " + e.Else.String() + ")"
}

func (e Let) String() string {
	return "(let (" + e.Name + " " + e.Value.String() + ") " + e.Body.String() + ")"
}

func (e App) String() string {
	var b strings.Builder
	b.WriteString("(" + e.FName)
	for _, a := range e.Args {
		b.WriteString(" " + a.String())
	}
	b.WriteString(")")
	return b.String()
}

func (e Name) String() string { return e.Name }

// A Defn is a named function definition. Params are distinct identifiers
// and the set of Defns in a program has unique names.
type Defn struct {
	Name   string
	Params []string
	Body   Expr
}

func (d Defn) String() string {
	var b strings.Builder
	b.WriteString("(def (" + d.Name)
	for _, p := range d.Params {
		b.WriteString(" " + p)
	}
	b.WriteString(") " + d.Body.String() + ")")
	return b.String()
}

// A Program is a sequence of definitions followed by an optional body
// expression. Body is nil when the program has no body.
type Program struct {
	Defns []Defn
	Body  Expr
}
