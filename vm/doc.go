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

// Package vm implements an Intcode virtual machine.
//
// An Intcode program is a linear memory of signed integers. The VM fetches the
// word at the program counter, splits it into an opcode (the two low decimal
// digits) and up to three addressing modes (the remaining digits, least
// significant first), resolves the operands that follow and executes the
// instruction. Memory grows on demand: reading or writing past the end of the
// loaded program zero-fills up to the accessed address.
//
// Communication with Go programs goes through two small interfaces: a Reader
// consulted by the input instruction and a Writer fed by the output
// instruction. A Reader may report that no value is currently available. In
// that case the VM rewinds to the start of the input instruction and Run
// returns with a Blocked status. Calling Run again once input is available
// resumes execution exactly where it stopped. This is what allows several
// instances to be wired together into pipelines and feedback loops (see
// package github.com/db47h/intcode/network).
//
// Supported instructions:
//
//	opcode	asm	args	description
//	------	---	----	-----------------------------------------------
//	1	add	a b d	store a+b at d
//	2	mul	a b d	store a*b at d
//	3	in	d	read one value from the input channel and store it at d
//	4	out	a	write a to the output channel
//	5	jt	t j	jump to j if t != 0
//	6	jf	t j	jump to j if t == 0
//	7	lt	a b d	store 1 at d if a < b, 0 otherwise
//	8	eq	a b d	store 1 at d if a == b, 0 otherwise
//	9	arb	a	add a to the relative base
//	99	hlt		halt
//
// Addressing modes are 0 (position: the operand is an address), 1 (immediate:
// the operand is the value) and 2 (relative: the operand is an offset from the
// relative base). Destination operands never use immediate mode.
//
// All errors returned by the VM are fatal. Use errors.Cause from
// github.com/pkg/errors to compare them against the exported sentinel values.
package vm
