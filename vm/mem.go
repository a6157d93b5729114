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

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Memory is a sparse address to value store. Addresses that have never been
// written read as 0.
//
// Memory is not safe for concurrent use.
type Memory struct {
	cells map[Cell]Cell
}

// NewMemory returns a Memory with the program loaded at addresses
// 0..len(program)-1.
func NewMemory(program Image) *Memory {
	m := &Memory{cells: make(map[Cell]Cell, len(program))}
	for addr, v := range program {
		m.cells[Cell(addr)] = v
	}
	return m
}

// Read returns the value at addr. An unmapped address reads as 0 and becomes
// mapped.
func (m *Memory) Read(addr Cell) Cell {
	v, ok := m.cells[addr]
	if !ok {
		m.cells[addr] = 0
	}
	return v
}

// Write sets the value at addr.
func (m *Memory) Write(addr, v Cell) {
	m.cells[addr] = v
}

// Peek returns the value at addr and whether addr is mapped. Unlike Read, it
// never maps addr.
func (m *Memory) Peek(addr Cell) (Cell, bool) {
	v, ok := m.cells[addr]
	return v, ok
}

// Len returns the number of mapped addresses.
func (m *Memory) Len() int {
	return len(m.cells)
}

// Addresses returns the mapped addresses in ascending order.
func (m *Memory) Addresses() []Cell {
	addrs := maps.Keys(m.cells)
	slices.Sort(addrs)
	return addrs
}

// Image returns the values at addresses 0..n-1. Unmapped addresses are
// returned as 0 and are left unmapped.
func (m *Memory) Image(n int) Image {
	img := make(Image, n)
	for addr := range img {
		img[addr] = m.cells[Cell(addr)]
	}
	return img
}

// Clone returns a deep copy of m.
func (m *Memory) Clone() *Memory {
	return &Memory{cells: maps.Clone(m.cells)}
}
