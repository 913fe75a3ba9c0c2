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
	"math"

	"github.com/pkg/errors"
)

// MaxAddress is the highest addressable memory location.
const MaxAddress = math.MaxInt32 - 1

// Memory is the growable memory of a VM instance. The address space is
// conceptually infinite: any access beyond the current length zero-extends the
// underlying buffer first.
//
// The zero value is an empty memory ready to use.
type Memory struct {
	cells []Cell
}

// NewMemory returns a Memory initialized with a copy of prog.
func NewMemory(prog []Cell) *Memory {
	m := &Memory{cells: make([]Cell, len(prog))}
	copy(m.cells, prog)
	return m
}

// Ensure grows the memory so that addr is a valid index. Growth is amortized
// by append. Addresses outside [0, MaxAddress] are rejected.
func (m *Memory) Ensure(addr int) error {
	if addr < 0 || addr > MaxAddress {
		return errors.Wrapf(ErrInvalidAddress, "address %d", addr)
	}
	if n := addr + 1 - len(m.cells); n > 0 {
		m.cells = append(m.cells, make([]Cell, n)...)
	}
	return nil
}

// Load returns the value stored at addr. Untouched addresses read 0.
func (m *Memory) Load(addr int) (Cell, error) {
	if addr < 0 || addr > MaxAddress {
		return 0, errors.Wrapf(ErrInvalidAddress, "read at %d", addr)
	}
	if addr >= len(m.cells) {
		// reads extend memory just like writes do.
		if err := m.Ensure(addr); err != nil {
			return 0, err
		}
	}
	return m.cells[addr], nil
}

// Store writes v at addr.
func (m *Memory) Store(addr int, v Cell) error {
	if err := m.Ensure(addr); err != nil {
		return errors.Wrap(err, "write")
	}
	m.cells[addr] = v
	return nil
}

// Len returns the current size of the memory in cells.
func (m *Memory) Len() int {
	return len(m.cells)
}

// truncate shrinks the memory back to n cells.
func (m *Memory) truncate(n int) {
	if n < len(m.cells) {
		m.cells = m.cells[:n]
	}
}

// Cells returns the memory contents. Changes to the returned slice are
// reflected in the memory until the next access that grows it.
func (m *Memory) Cells() []Cell {
	return m.cells
}
