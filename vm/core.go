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
	"context"

	"github.com/pkg/errors"
)

const checkInterval = 1024

// Run executes instructions until the program halts, an error occurs or an
// input instruction finds no available input.
//
// It returns Halted once the halt instruction has been executed. Further calls
// return immediately.
//
// It returns Blocked if the input Reader had nothing to offer. In this case
// the instance is rewound to the start of the input instruction, which will be
// retried on the next call to Run. Memory is left untouched.
//
// If an error occurs, the instance state is restored to the start of the
// instruction that triggered the error. All errors are fatal.
func (i *Instance) Run() (Status, error) {
	return i.RunContext(context.Background())
}

// RunContext is like Run but also returns when ctx is done. Cancellation is
// checked every checkInterval instructions. The instance is then left Ready at
// an instruction boundary and the returned error wraps ctx.Err().
func (i *Instance) RunContext(ctx context.Context) (Status, error) {
	if i.Halted {
		return Halted, nil
	}
	for n := 0; ; n++ {
		if n%checkInterval == 0 {
			if err := ctx.Err(); err != nil {
				i.status = Ready
				return i.status, errors.Wrapf(err, "@pc=%d", i.PC)
			}
		}
		st, err := i.step()
		if err != nil {
			i.status = Ready
			return i.status, err
		}
		if st != Running {
			return st, nil
		}
	}
}

// Step executes a single instruction and returns the resulting status:
// Running if execution can continue, Blocked or Halted with the same meaning
// as for Run.
func (i *Instance) Step() (Status, error) {
	if i.Halted {
		return Halted, nil
	}
	st, err := i.step()
	if err != nil {
		i.status = Ready
		return i.status, err
	}
	return st, nil
}

func (i *Instance) step() (st Status, err error) {
	saved, size := i.State, i.Mem.Len()
	defer func() {
		if e := recover(); e != nil {
			re, ok := e.(error)
			if !ok {
				panic(e)
			}
			err = errors.Wrapf(re, "recovered error @pc=%d", saved.PC)
		}
		if err != nil {
			i.State = saved
		}
	}()

	i.status = Running
	in, err := i.decode()
	if err != nil {
		return i.status, errors.Wrapf(err, "@pc=%d", saved.PC)
	}
	if i.trace {
		i.log.Debug("exec", "pc", saved.PC, "rb", saved.RelBase, "ins", in)
	}
	if err = i.exec(in); err != nil {
		return i.status, errors.Wrapf(err, "%v @pc=%d", in.Op, saved.PC)
	}
	switch {
	case i.status == Blocked:
		// decoding may have grown memory, nothing else was committed
		i.State = saved
		i.Mem.truncate(size)
		i.log.Debug("blocked on input", "pc", saved.PC)
	case i.Halted:
		i.status = Halted
		i.log.Debug("halted", "pc", saved.PC, "count", i.insCount)
	default:
		i.status = Running
	}
	return i.status, nil
}

// exec applies the semantics of an instruction. in.Args holds values for read
// operands and addresses for destination operands.
func (i *Instance) exec(in Instruction) (err error) {
	a, b, c := in.Args[0], in.Args[1], in.Args[2]
	switch in.Op {
	case OpAdd:
		err = i.Mem.Store(int(c), a+b)
	case OpMul:
		err = i.Mem.Store(int(c), a*b)
	case OpIn:
		var (
			v  Cell
			ok bool
		)
		if i.input != nil {
			v, ok, err = i.input.ReadCell()
			if err != nil {
				return errors.Wrap(err, "input")
			}
		}
		if !ok {
			i.status = Blocked
			return nil
		}
		err = i.Mem.Store(int(a), v)
	case OpOut:
		if i.output != nil {
			if err = i.output.WriteCell(a); err != nil {
				return errors.Wrap(err, "output")
			}
		}
	case OpJumpTrue:
		if a != 0 {
			err = i.jump(b)
		}
	case OpJumpFalse:
		if a == 0 {
			err = i.jump(b)
		}
	case OpLess:
		var v Cell
		if a < b {
			v = 1
		}
		err = i.Mem.Store(int(c), v)
	case OpEqual:
		var v Cell
		if a == b {
			v = 1
		}
		err = i.Mem.Store(int(c), v)
	case OpAdjustBase:
		i.RelBase += a
	case OpHalt:
		i.Halted = true
	default:
		return errors.Wrapf(ErrInvalidOpcode, "%d", in.Op)
	}
	if err == nil {
		i.insCount++
	}
	return err
}

func (i *Instance) jump(target Cell) error {
	if target < 0 || target > MaxAddress {
		return errors.Wrapf(ErrInvalidAddress, "jump to %d", target)
	}
	i.PC = int(target)
	return nil
}
