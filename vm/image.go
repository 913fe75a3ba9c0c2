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
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/db47h/intcode/internal/errw"
	"github.com/pkg/errors"
)

// Parse reads a program in text form: integers separated by commas. White
// space, including new lines, is ignored. A single trailing comma is accepted.
func Parse(r io.Reader) ([]Cell, error) {
	br := bufio.NewReader(r)
	var (
		prog []Cell
		tok  strings.Builder
	)
	flush := func(last bool) error {
		s := tok.String()
		tok.Reset()
		if s == "" {
			if last {
				return nil
			}
			return errors.Wrapf(ErrMalformedProgram, "empty value at index %d", len(prog))
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return errors.Wrapf(ErrMalformedProgram, "value %q at index %d", s, len(prog))
		}
		prog = append(prog, Cell(n))
		return nil
	}
	for {
		c, _, err := br.ReadRune()
		if err != nil {
			if err != io.EOF {
				return nil, errors.Wrap(err, "read program")
			}
			break
		}
		switch {
		case c == ',':
			if err = flush(false); err != nil {
				return nil, err
			}
		case unicode.IsSpace(c):
		default:
			tok.WriteRune(c)
		}
	}
	if err := flush(true); err != nil {
		return nil, err
	}
	return prog, nil
}

// ParseString parses a program from a string.
func ParseString(s string) ([]Cell, error) {
	return Parse(strings.NewReader(s))
}

// Load loads a program from file fileName.
func Load(fileName string) ([]Cell, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "Load")
	}
	defer f.Close()
	prog, err := Parse(f)
	if err != nil {
		return nil, errors.Wrapf(err, "Load %s", fileName)
	}
	return prog, nil
}

// Save writes prog to file fileName in text form.
func Save(fileName string, prog []Cell) (err error) {
	f, err := os.Create(fileName)
	if err != nil {
		return errors.Wrap(err, "create failed")
	}
	w := bufio.NewWriter(f)
	defer func() {
		if e := w.Flush(); err == nil {
			err = e
		}
		f.Close()
		// delete file on error
		if err != nil {
			os.Remove(fileName)
		}
	}()
	ew := errw.New(w)
	writeProgram(ew, prog)
	return errors.Wrap(ew.Err, "save failed")
}

// Write writes prog to w in text form, followed by a new line.
func Write(w io.Writer, prog []Cell) error {
	ew := errw.New(w)
	writeProgram(ew, prog)
	return ew.Err
}

func writeProgram(w *errw.Writer, prog []Cell) {
	b := make([]byte, 0, 24)
	for k, v := range prog {
		b = b[:0]
		if k > 0 {
			b = append(b, ',')
		}
		b = strconv.AppendInt(b, int64(v), 10)
		if _, err := w.Write(b); err != nil {
			return
		}
	}
	w.Write([]byte{'\n'})
}
