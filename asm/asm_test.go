// This file is part of intcode - https://github.com/db47h/intcode
//
// Copyright 2019 Denis Bernard <db047h@gmail.com>
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

package asm_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/db47h/intcode/asm"
	"github.com/db47h/intcode/vm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type C []vm.Cell

func assemble(t *testing.T, code string) C {
	t.Helper()
	prog, err := asm.Assemble(t.Name(), strings.NewReader(code))
	require.NoError(t, err)
	return prog
}

func TestAssemble(t *testing.T) {
	tests := []struct {
		code string
		want C
	}{
		{"", nil},
		{"hlt", C{99}},
		{"add 100 #-1 @3", C{21001, 100, -1, 3}},
		{"mul #2 #3 0 out 0 hlt", C{1102, 2, 3, 0, 4, 0, 99}},
		{"arb #1 out @-1", C{109, 1, 204, -1}},
		{"in @0 jt #1 #0 jf 5 @6", C{203, 0, 1105, 1, 0, 2006, 5, 6}},
		{"lt #1 #2 3 eq 4 #5 @6", C{1107, 1, 2, 3, 21008, 4, 5, 6}},
		{"( comment ) hlt ( another\n one )", C{99}},
		{".dat 42 'A' '\\n' 0x10 -7", C{42, 65, 10, 16, -7}},
		{".equ X 12 add X #X X", C{1001, 12, 12, 12}},
		{"hlt .org 4 hlt", C{99, 0, 0, 0, 99}},
		{":start jt #1 #start", C{1105, 1, 0}},
		{"jt #1 #end hlt :end hlt", C{1105, 1, 4, 99, 99}},
		{"out buf :buf .dat 77", C{4, 2, 77}},
		{".dat end .org 3 :end", C{3}},
	}
	for _, test := range tests {
		prog, err := asm.Assemble("test", strings.NewReader(test.code))
		require.NoError(t, err, test.code)
		assert.Equal(t, test.want, C(prog), test.code)
	}
}

func TestAssemble_run(t *testing.T) {
	// echo input values until a 0 is read
	prog := assemble(t, `
	:loop	in val
		jf val #end
		out val
		jt #1 #loop
	:end	hlt
	:val	.dat 0
	`)
	out := vm.NewQueue()
	i, err := vm.New(prog, vm.Input(vm.NewQueue(1, 2, 3, 0)), vm.Output(out))
	require.NoError(t, err)
	st, err := i.Run()
	require.NoError(t, err)
	assert.Equal(t, vm.Halted, st)
	assert.Equal(t, []vm.Cell{1, 2, 3}, out.Values())
}

// check some errors. We're not checking the full messages, rather that they
// point at the correct place.
func TestAssemble_errors(t *testing.T) {
	type loc struct {
		line, col int // col 0 matches any column
		msg       string
	}
	tests := []struct {
		code string
		want []loc
	}{
		{"add 1 2", []loc{{1, 0, "missing operand for add"}}},
		{"add 1 2 #3", []loc{{1, 9, "immediate destination"}}},
		{"in #3", []loc{{1, 4, "immediate destination"}}},
		{"foo", []loc{{1, 1, "undefined label foo"}}},
		{"out foo\nout bar", []loc{{1, 5, "undefined label foo"}, {2, 5, "undefined label bar"}}},
		{":a hlt :a hlt", []loc{{1, 8, "label redefinition"}}},
		{":", []loc{{1, 1, "empty label name"}}},
		{"hlt .bogus", []loc{{1, 5, "unknown directive .bogus"}}},
		{".org -1", []loc{{1, 6, "negative origin"}}},
		{".org foo", []loc{{1, 6, "expected integer or constant"}}},
		{".dat", []loc{{1, 0, "missing directive argument"}}},
		{"hlt ( unterminated", []loc{{1, 5, "unterminated comment"}}},
		{"'ab'", []loc{{1, 1, "invalid character literal"}}},
		{"99999999999999999999", []loc{{1, 1, "integer out of range"}}},
		{".equ X 1 :X", []loc{{1, 10, "previously defined as a constant"}}},
		{"out x :x .equ x 1", []loc{{1, 15, "previously defined or used as a label"}}},
		{"#5", []loc{{1, 1, "unexpected operand"}}},
		{"out #", []loc{{1, 5, "empty operand"}}},
		{"hlt \x01", []loc{{1, 5, "unexpected character"}}},
	}
	for _, test := range tests {
		_, err := asm.Assemble("test", strings.NewReader(test.code))
		require.Error(t, err, test.code)
		errs, ok := err.(asm.ErrAsm)
		require.True(t, ok, test.code)
		require.Len(t, errs, len(test.want), "%q: %v", test.code, err)
		for k, e := range errs {
			assert.Equal(t, test.want[k].line, e.Pos.Line, test.code)
			if test.want[k].col != 0 {
				assert.Equal(t, test.want[k].col, e.Pos.Column, test.code)
			}
			assert.Contains(t, e.Msg, test.want[k].msg, test.code)
		}
	}
}

func TestAssemble_maxErrors(t *testing.T) {
	_, err := asm.Assemble("test", strings.NewReader(strings.Repeat("#1 ", 20)))
	require.Error(t, err)
	assert.Len(t, err.(asm.ErrAsm), 10)
	assert.True(t, strings.HasPrefix(err.Error(), "test:1:1: unexpected operand #1\ntest:1:4: "))
}

func TestDisassemble(t *testing.T) {
	tests := []struct {
		mem  C
		pc   int
		want string
		next int
	}{
		{C{99}, 0, "hlt", 1},
		{C{21001, 100, -1, 3}, 0, "add 100 #-1 @3", 4},
		{C{0, 109, 1}, 1, "arb #1", 3},
		{C{42}, 0, ".dat 42", 1},
		{C{-1}, 0, ".dat -1", 1},
		{C{30001, 1, 2, 3}, 0, ".dat 30001", 1},
		{C{1107, 3}, 0, "lt #3 ???", 2},
		{C{4}, 0, "out ???", 1},
	}
	for _, test := range tests {
		var b bytes.Buffer
		next, err := asm.Disassemble(test.mem, test.pc, &b)
		require.NoError(t, err)
		assert.Equal(t, test.want, b.String())
		assert.Equal(t, test.next, next, test.want)
	}
}

func TestDisassemble_roundTrip(t *testing.T) {
	progs := []C{
		// quine
		{109, 1, 204, -1, 1001, 100, 1, 100, 1008, 100, 16, 101, 1006, 101, 0, 99},
		{1002, 4, 3, 4, 33},
		{1102, 34915192, 34915192, 7, 4, 7, 99, 0},
	}
	for _, prog := range progs {
		var b bytes.Buffer
		for pc := 0; pc < len(prog); {
			var err error
			pc, err = asm.Disassemble(prog, pc, &b)
			require.NoError(t, err)
			b.WriteByte('\n')
		}
		got, err := asm.Assemble("roundtrip", &b)
		require.NoError(t, err)
		assert.Equal(t, prog, C(got))
	}
}

func TestDisassembleAll_error(t *testing.T) {
	w := errWriter{}
	err := asm.DisassembleAll(C{99, 99}, 0, w)
	assert.Error(t, err)
}

type errWriter struct{}

func (errWriter) Write(p []byte) (int, error) {
	return 0, assert.AnError
}
