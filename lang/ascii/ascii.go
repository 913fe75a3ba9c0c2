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

// Package ascii provides utility functions and types for Intcode programs that
// communicate in ASCII.
//
// Such programs read and write text one character per cell, with lines
// terminated by a newline (10). Values outside of the ASCII range are not
// characters and are usually the program's actual answer.
package ascii

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/db47h/intcode/internal/errw"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

// IsASCII reports whether v is in the range 0-127.
func IsASCII(v vm.Cell) bool {
	return v >= 0 && v < 128
}

// Encode returns the given lines encoded as cells, one character per cell,
// each line terminated by a newline.
func Encode(lines ...string) []vm.Cell {
	var n int
	for _, l := range lines {
		n += len(l) + 1
	}
	cells := make([]vm.Cell, 0, n)
	for _, l := range lines {
		for k := 0; k < len(l); k++ {
			cells = append(cells, vm.Cell(l[k]))
		}
		cells = append(cells, '\n')
	}
	return cells
}

// Input returns a queue holding the encoded lines, ready to be used as input
// for an instance.
func Input(lines ...string) *vm.Queue {
	return vm.NewQueue(Encode(lines...)...)
}

// Decode splits cells into text, made of the ASCII values, and the remaining
// non-ASCII values, in order.
func Decode(cells []vm.Cell) (text string, values []vm.Cell) {
	var b strings.Builder
	for _, c := range cells {
		if IsASCII(c) {
			b.WriteByte(byte(c))
			continue
		}
		values = append(values, c)
	}
	return b.String(), values
}

type reader struct {
	r *bufio.Reader
}

// NewReader returns a vm.Reader that reads text from r one byte per cell. Once
// r is exhausted, the Reader reports that no input is available.
func NewReader(r io.Reader) vm.Reader {
	return reader{bufio.NewReader(r)}
}

func (r reader) ReadCell() (vm.Cell, bool, error) {
	c, err := r.r.ReadByte()
	if err != nil {
		if err == io.EOF {
			return 0, false, nil
		}
		return 0, false, errors.Wrap(err, "read input")
	}
	return vm.Cell(c), true, nil
}

type writer struct {
	w   *errw.Writer
	bol bool
	b   []byte
}

// NewWriter returns a vm.Writer that writes ASCII values to w as characters.
// Any other value is written as a decimal number on its own line.
func NewWriter(w io.Writer) vm.Writer {
	return &writer{w: errw.New(w), bol: true}
}

func (w *writer) WriteCell(v vm.Cell) error {
	w.b = w.b[:0]
	if IsASCII(v) {
		w.b = append(w.b, byte(v))
		w.bol = v == '\n'
	} else {
		if !w.bol {
			w.b = append(w.b, '\n')
		}
		w.b = strconv.AppendInt(w.b, int64(v), 10)
		w.b = append(w.b, '\n')
		w.bol = true
	}
	w.w.Write(w.b)
	return w.w.Err
}
