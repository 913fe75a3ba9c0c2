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

package vm

import "strconv"

// Opcode is an instruction selector, the two low decimal digits of an
// instruction word.
type Opcode Cell

// Intcode opcodes.
const (
	OpAdd        Opcode = 1
	OpMul        Opcode = 2
	OpIn         Opcode = 3
	OpOut        Opcode = 4
	OpJumpTrue   Opcode = 5
	OpJumpFalse  Opcode = 6
	OpLess       Opcode = 7
	OpEqual      Opcode = 8
	OpAdjustBase Opcode = 9
	OpHalt       Opcode = 99
)

type opInfo struct {
	name  string
	arity int
	dst   int // index of the destination operand, -1 if none
}

var opcodes = map[Opcode]opInfo{
	OpAdd:        {"add", 3, 2},
	OpMul:        {"mul", 3, 2},
	OpIn:         {"in", 1, 0},
	OpOut:        {"out", 1, -1},
	OpJumpTrue:   {"jt", 2, -1},
	OpJumpFalse:  {"jf", 2, -1},
	OpLess:       {"lt", 3, 2},
	OpEqual:      {"eq", 3, 2},
	OpAdjustBase: {"arb", 1, -1},
	OpHalt:       {"hlt", 0, -1},
}

// Valid reports whether op is a known opcode.
func (op Opcode) Valid() bool {
	_, ok := opcodes[op]
	return ok
}

// Arity returns the number of operands of op.
func (op Opcode) Arity() int {
	return opcodes[op].arity
}

// Dest returns the index of the destination operand of op, or -1 if op does
// not write to memory.
func (op Opcode) Dest() int {
	if info, ok := opcodes[op]; ok {
		return info.dst
	}
	return -1
}

func (op Opcode) String() string {
	if info, ok := opcodes[op]; ok {
		return info.name
	}
	return "op(" + strconv.FormatInt(int64(op), 10) + ")"
}

// LookupOpcode returns the opcode for the given mnemonic.
func LookupOpcode(name string) (Opcode, bool) {
	for op, info := range opcodes {
		if info.name == name {
			return op, true
		}
	}
	return 0, false
}

// Mode is an operand addressing mode.
type Mode Cell

// Addressing modes.
const (
	Position  Mode = 0
	Immediate Mode = 1
	Relative  Mode = 2
)

func (m Mode) String() string {
	switch m {
	case Position:
		return "position"
	case Immediate:
		return "immediate"
	case Relative:
		return "relative"
	}
	return "mode(" + strconv.FormatInt(int64(m), 10) + ")"
}
