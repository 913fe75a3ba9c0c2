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
	"io"

	"github.com/inconshreveable/log15"
)

// Cell is the raw type stored in a memory location.
type Cell int64

// State is the execution state of an instance. It is a plain value so that it
// can be saved and restored as a whole.
type State struct {
	PC      int  // Program Counter
	RelBase Cell // Relative base
	Halted  bool
}

// Status describes where an instance stands in its life cycle.
type Status int

// Instance statuses. Ready and Blocked instances can be (re)started by calling
// Run. Halted is terminal.
const (
	Ready Status = iota
	Running
	Blocked
	Halted
)

var statusNames = [...]string{"ready", "running", "blocked", "halted"}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return "unknown"
	}
	return statusNames[s]
}

// Instance represents an Intcode VM instance.
type Instance struct {
	State
	Mem      *Memory
	status   Status
	input    Reader
	output   Writer
	insCount int64
	log      log15.Logger
	trace    bool
}

// Option interface
type Option func(*Instance) error

// Input sets the Reader used by the input instruction. Without one, every
// input instruction blocks.
func Input(r Reader) Option {
	return func(i *Instance) error { i.input = r; return nil }
}

// Output sets the Writer used by the output instruction. Without one, output
// values are discarded.
func Output(w Writer) Option {
	return func(i *Instance) error { i.output = w; return nil }
}

// Logger sets the logger used for diagnostics. The default logger discards
// everything.
func Logger(l log15.Logger) Option {
	return func(i *Instance) error { i.log = l; return nil }
}

// Trace enables logging of every executed instruction at debug level.
func Trace(enable bool) Option {
	return func(i *Instance) error { i.trace = enable; return nil }
}

// SetOptions sets the provided options.
func (i *Instance) SetOptions(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return err
		}
	}
	return nil
}

// New creates a new Intcode VM instance running the given program. The program
// is copied: instances never share memory.
func New(prog []Cell, opts ...Option) (*Instance, error) {
	l := log15.New()
	l.SetHandler(log15.DiscardHandler())
	i := &Instance{
		Mem: NewMemory(prog),
		log: l,
	}
	if err := i.SetOptions(opts...); err != nil {
		return nil, err
	}
	return i, nil
}

// Status returns the current status of the instance.
func (i *Instance) Status() Status {
	return i.status
}

// InstructionCount returns the number of instructions executed so far.
func (i *Instance) InstructionCount() int64 {
	return i.insCount
}

// Dump writes the memory contents to w in program text format.
func (i *Instance) Dump(w io.Writer) error {
	return Write(w, i.Mem.Cells())
}
