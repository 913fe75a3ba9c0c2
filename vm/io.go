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

// Reader is the interface that wraps the ReadCell method used by the input
// instruction.
//
// ReadCell returns the next input value with ok set to true, or ok set to false
// and a nil error if no value is currently available, in which case the VM
// suspends itself. Any non-nil error is fatal to the VM.
type Reader interface {
	ReadCell() (v Cell, ok bool, err error)
}

// Writer is the interface that wraps the WriteCell method used by the output
// instruction. A non-nil error is fatal to the VM.
type Writer interface {
	WriteCell(v Cell) error
}

// ReaderFunc is an adapter to allow the use of ordinary functions as Readers.
type ReaderFunc func() (Cell, bool, error)

// ReadCell returns f().
func (f ReaderFunc) ReadCell() (Cell, bool, error) { return f() }

// WriterFunc is an adapter to allow the use of ordinary functions as Writers.
type WriterFunc func(v Cell) error

// WriteCell returns f(v).
func (f WriterFunc) WriteCell(v Cell) error { return f(v) }

// Queue is a FIFO of cells. It implements both Reader and Writer and is the
// building block used to connect instances together: the output of one
// instance writes to the queue that another instance reads from.
//
// A Queue is not safe for concurrent use.
type Queue struct {
	cells []Cell
	head  int
}

// NewQueue returns a new queue holding the given values.
func NewQueue(values ...Cell) *Queue {
	q := new(Queue)
	q.Push(values...)
	return q
}

// Push appends values to the tail of the queue.
func (q *Queue) Push(values ...Cell) {
	q.cells = append(q.cells, values...)
}

// Pop removes and returns the value at the head of the queue.
func (q *Queue) Pop() (Cell, bool) {
	if q.head >= len(q.cells) {
		return 0, false
	}
	v := q.cells[q.head]
	q.head++
	if q.head == len(q.cells) {
		q.cells, q.head = q.cells[:0], 0
	}
	return v, true
}

// Peek returns the value at the head of the queue without removing it.
func (q *Queue) Peek() (Cell, bool) {
	if q.head >= len(q.cells) {
		return 0, false
	}
	return q.cells[q.head], true
}

// Len returns the number of values in the queue.
func (q *Queue) Len() int {
	return len(q.cells) - q.head
}

// Values returns a copy of the queued values, head first.
func (q *Queue) Values() []Cell {
	v := make([]Cell, q.Len())
	copy(v, q.cells[q.head:])
	return v
}

// ReadCell implements Reader. It never returns an error.
func (q *Queue) ReadCell() (Cell, bool, error) {
	v, ok := q.Pop()
	return v, ok, nil
}

// WriteCell implements Writer. It never returns an error.
func (q *Queue) WriteCell(v Cell) error {
	q.Push(v)
	return nil
}
