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

// Package asm provides utility functions to assemble and disassemble Intcode
// programs.
//
// Supported assembler mnemonics:
//
//	Operands are written in the order they appear in memory. dst is always the
//	last operand of the instructions that write to memory.
//
//	opcode	asm	operands	description
//	------	---	--------	-------------------------------------------------
//	1	add	a b dst		store a + b in dst
//	2	mul	a b dst		store a * b in dst
//	3	in	dst		read a value from input and store it in dst
//	4	out	a		write a to output
//	5	jt	a b		jump to b if a != 0
//	6	jf	a b		jump to b if a == 0
//	7	lt	a b dst		store 1 in dst if a < b, 0 otherwise
//	8	eq	a b dst		store 1 in dst if a == b, 0 otherwise
//	9	arb	a		add a to the relative base
//	99	hlt			halt
//
// Operands:
//
// The addressing mode of an operand is selected by a prefix:
//
//	42	position mode: the value at address 42
//	#42	immediate mode: the value 42 itself
//	@42	relative mode: the value at address relative base + 42
//
// The assembler computes the instruction word from the opcode and the modes of
// its operands, so that:
//
//	add 100 #-1 @3
//
// compiles as 21001, 100, -1, 3. Immediate mode is not allowed for a dst
// operand.
//
// Comments:
//
// Comments are placed between parentheses, i.e. '(' and ')'. The body of the
// comment must be separated from the enclosing parentheses by a space:
//
//	( this is a valid comment )
//	( this is a
//	  multiline comment )
//
// Literals and label/const identifiers:
//
// Input is split at white space (space, tab or new line) into tokens. Operand
// values are:
//
//	- integer literals, as accepted by strconv.ParseInt with base 0.
//	- Go character literals between single quotes, converted to the
//	  corresponding integer value ('A' is 65, '\n' is 10).
//	- names of constants defined with .equ.
//	- anything else is a label name and is replaced by the label's address.
//
// Where the parser is expecting an instruction, tokens that are not mnemonics,
// label definitions or directives are compiled as data, just like with .dat.
//
// Labels:
//
// Labels are defined by prefixing them with a colon (:) and can be used as
// operands in any addressing mode, without the ':' prefix. Forward references
// are ok:
//
//	:loop	add sum n sum
//		add n #-1 n
//		jt n #loop	( jump to the address of loop )
//		out sum
//		hlt
//	:n	.dat 0
//	:sum	.dat 0
//
// Here n and sum are used in position mode, which reads and writes the cells
// they label, while #loop is the address of loop itself.
//
// Assembler directives:
//
//	.equ <IDENTIFIER> <value>
//
// defines a constant value. The value must be an integer value, named constant
// or character literal.
//
//	.org <value>
//
// Will place the next instruction at the address specified by the given integer
// literal or named constant. Skipped cells are set to 0.
//
//	.dat <value>
//
// Will compile the specified integer value, named constant, character literal
// or label address as-is.
//
// Disassembly:
//
// The output of Disassemble uses the same syntax, with addresses instead of
// labels, and can be fed back to Assemble. Cells that do not decode to a valid
// instruction are shown as .dat directives.
package asm
