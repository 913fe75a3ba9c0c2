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
	"strconv"
	"strings"

	"github.com/db47h/intcode/internal/errw"
	"github.com/pkg/errors"
)

type lineReader struct {
	s    *bufio.Scanner
	line int
}

// NewLineReader returns a Reader that reads one integer per line from r. Blank
// lines are skipped. Once r is exhausted, the Reader reports that no input is
// available. A line that does not parse as an integer yields an error wrapping
// ErrInputParse.
func NewLineReader(r io.Reader) Reader {
	return &lineReader{s: bufio.NewScanner(r)}
}

func (r *lineReader) ReadCell() (Cell, bool, error) {
	for r.s.Scan() {
		r.line++
		t := strings.TrimSpace(r.s.Text())
		if t == "" {
			continue
		}
		return ParseCell(t, r.line)
	}
	if err := r.s.Err(); err != nil {
		return 0, false, errors.Wrap(err, "read input")
	}
	return 0, false, nil
}

// ParseCell parses s as a decimal integer. The line argument is only used in
// error messages.
func ParseCell(s string, line int) (Cell, bool, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false, errors.Wrapf(ErrInputParse, "line %d: %q", line, s)
	}
	return Cell(n), true, nil
}

// StringReader adapts a function returning optional strings, like a line
// editor or a command generator, into a Reader. A nil string pointer means
// that no input is currently available.
func StringReader(next func() *string) Reader {
	var line int
	return ReaderFunc(func() (Cell, bool, error) {
		s := next()
		if s == nil {
			return 0, false, nil
		}
		line++
		return ParseCell(strings.TrimSpace(*s), line)
	})
}

type textWriter struct {
	w *errw.Writer
	b []byte
}

// NewTextWriter returns a Writer that writes each value as a decimal number
// on its own line.
func NewTextWriter(w io.Writer) Writer {
	return &textWriter{w: errw.New(w)}
}

func (t *textWriter) WriteCell(v Cell) error {
	t.b = strconv.AppendInt(t.b[:0], int64(v), 10)
	t.b = append(t.b, '\n')
	t.w.Write(t.b)
	return t.w.Err
}
