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

import "strconv"

// Opcode identifies an operation. It is the value of the two low order
// decimal digits of an instruction.
type Opcode Cell

// Intcode Virtual Machine Opcodes.
const (
	OpAdd         Opcode = 1
	OpMul         Opcode = 2
	OpIn          Opcode = 3
	OpOut         Opcode = 4
	OpJumpIfTrue  Opcode = 5
	OpJumpIfFalse Opcode = 6
	OpLessThan    Opcode = 7
	OpEquals      Opcode = 8
	OpAdjustBase  Opcode = 9
	OpHalt        Opcode = 99
)

// noDest marks operations that do not write to memory.
const noDest = -1

type operation struct {
	name   string
	params int
	dest   int // index of the destination parameter or noDest
}

// operations is indexed by opcode. A nil entry is an invalid opcode.
var operations = [100]*operation{
	OpAdd:         {"add", 3, 2},
	OpMul:         {"mul", 3, 2},
	OpIn:          {"in", 1, 0},
	OpOut:         {"out", 1, noDest},
	OpJumpIfTrue:  {"jnz", 2, noDest},
	OpJumpIfFalse: {"jz", 2, noDest},
	OpLessThan:    {"lt", 3, 2},
	OpEquals:      {"eq", 3, 2},
	OpAdjustBase:  {"arb", 1, noDest},
	OpHalt:        {"hlt", 0, noDest},
}

var opcodeIndex = make(map[string]Opcode)

func init() {
	for op, o := range operations {
		if o != nil {
			opcodeIndex[o.name] = Opcode(op)
		}
	}
}

func (op Opcode) def() *operation {
	if op < 0 || int(op) >= len(operations) {
		return nil
	}
	return operations[op]
}

// Valid reports whether op is a known opcode.
func (op Opcode) Valid() bool { return op.def() != nil }

// Params returns the number of parameters taken by op.
func (op Opcode) Params() int {
	if d := op.def(); d != nil {
		return d.params
	}
	return 0
}

// Size returns the number of cells occupied by an instruction with opcode op,
// that is the amount by which the PC moves when no jump is taken.
func (op Opcode) Size() int {
	return op.Params() + 1
}

// Dest returns the index of the parameter op writes its result to, and false
// if op does not write to memory.
func (op Opcode) Dest() (int, bool) {
	d := op.def()
	if d == nil || d.dest == noDest {
		return 0, false
	}
	return d.dest, true
}

// String returns the assembler mnemonic for op.
func (op Opcode) String() string {
	if d := op.def(); d != nil {
		return d.name
	}
	return "op(" + strconv.FormatInt(int64(op), 10) + ")"
}

// LookupOpcode returns the opcode for the given mnemonic.
func LookupOpcode(name string) (Opcode, bool) {
	op, ok := opcodeIndex[name]
	return op, ok
}

// Opcodes returns all valid opcodes in ascending order.
func Opcodes() []Opcode {
	var ops []Opcode
	for op, o := range operations {
		if o != nil {
			ops = append(ops, Opcode(op))
		}
	}
	return ops
}
