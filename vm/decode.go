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

import (
	"fmt"

	"github.com/pkg/errors"
)

// Instruction is a decoded instruction with resolved operands. Args holds, in
// operand order, the value of each read operand and the address of the
// destination operand if any. Len is the instruction length in cells.
type Instruction struct {
	Op   Opcode
	Args [3]Cell
	Len  int
}

func (in Instruction) String() string {
	switch in.Op.Arity() {
	case 0:
		return in.Op.String()
	case 1:
		return fmt.Sprintf("%v %d", in.Op, in.Args[0])
	case 2:
		return fmt.Sprintf("%v %d %d", in.Op, in.Args[0], in.Args[1])
	}
	return fmt.Sprintf("%v %d %d %d", in.Op, in.Args[0], in.Args[1], in.Args[2])
}

// Decode splits an instruction word into its opcode and the addressing modes
// of its three operand slots. Missing mode digits default to Position.
func Decode(word Cell) (op Opcode, modes [3]Mode, err error) {
	if word < 0 {
		return 0, modes, errors.Wrapf(ErrInvalidOpcode, "%d", word)
	}
	op = Opcode(word % 100)
	if !op.Valid() {
		return op, modes, errors.Wrapf(ErrInvalidOpcode, "%d", word)
	}
	m := word / 100
	for k := range modes {
		modes[k] = Mode(m % 10)
		switch modes[k] {
		case Position, Immediate, Relative:
		default:
			return op, modes, errors.Wrapf(ErrInvalidMode, "%d in %d", modes[k], word)
		}
		m /= 10
	}
	if m != 0 {
		return op, modes, errors.Wrapf(ErrInvalidMode, "extra mode digits in %d", word)
	}
	return op, modes, nil
}

// operand reads the raw operand at the PC, resolves it according to mode and
// advances the PC. For destination operands, the address is returned instead
// of the value stored there.
func (i *Instance) operand(mode Mode, dst bool) (Cell, error) {
	raw, err := i.Mem.Load(i.PC)
	if err != nil {
		return 0, err
	}
	i.PC++
	var addr Cell
	switch mode {
	case Immediate:
		if dst {
			return 0, errors.Wrap(ErrInvalidMode, "immediate destination")
		}
		return raw, nil
	case Position:
		addr = raw
	case Relative:
		addr = i.RelBase + raw
	default:
		return 0, errors.Wrapf(ErrInvalidMode, "%d", mode)
	}
	if addr < 0 || addr > MaxAddress {
		if dst {
			return 0, errors.Wrapf(ErrInvalidAddress, "destination %d", addr)
		}
		return 0, errors.Wrapf(ErrInvalidAddress, "read at %d", addr)
	}
	if dst {
		return addr, nil
	}
	return i.Mem.Load(int(addr))
}

// decode fetches the instruction at the PC and resolves its operands. On
// return, the PC points to the next instruction.
func (i *Instance) decode() (in Instruction, err error) {
	start := i.PC
	word, err := i.Mem.Load(i.PC)
	if err != nil {
		return in, err
	}
	op, modes, err := Decode(word)
	if err != nil {
		return in, err
	}
	i.PC++
	in.Op = op
	dst := op.Dest()
	for k := 0; k < op.Arity(); k++ {
		if in.Args[k], err = i.operand(modes[k], k == dst); err != nil {
			return in, err
		}
	}
	in.Len = i.PC - start
	return in, nil
}
