// This file is part of intcode - https://github.com/db47h/intcode
//
// Copyright 2016 Denis Bernard <db047h@gmail.com>
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

// queue is a FIFO of input values.
type queue struct {
	buf  []Cell
	head int
}

func (q *queue) push(v ...Cell) {
	// reclaim consumed space before growing
	if q.head > 0 && len(q.buf)+len(v) > cap(q.buf) {
		n := copy(q.buf, q.buf[q.head:])
		q.buf = q.buf[:n]
		q.head = 0
	}
	q.buf = append(q.buf, v...)
}

func (q *queue) pop() (Cell, bool) {
	if q.head >= len(q.buf) {
		return 0, false
	}
	v := q.buf[q.head]
	q.head++
	return v, true
}

func (q *queue) len() int {
	return len(q.buf) - q.head
}

// AddInput appends values to the input queue. It may be called before Run or
// between two calls to Run.
func (i *Instance) AddInput(v ...Cell) {
	i.input.push(v...)
}

// PendingInput returns the number of queued input values not yet consumed.
func (i *Instance) PendingInput() int {
	return i.input.len()
}

// Output returns every value produced by the program so far. The returned
// slice must not be modified.
func (i *Instance) Output() []Cell {
	return i.output
}

// LastOutput returns the most recent output value and false if the program
// has not produced any output yet.
func (i *Instance) LastOutput() (Cell, bool) {
	if len(i.output) == 0 {
		return 0, false
	}
	return i.output[len(i.output)-1], true
}
