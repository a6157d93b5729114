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
	"strconv"

	"github.com/pkg/errors"
)

// Mode is a parameter addressing mode.
type Mode uint8

// Addressing modes.
const (
	Positional Mode = iota // parameter is an address
	Immediate              // parameter is the value itself
	Relative               // parameter is an offset from the relative base
)

func (m Mode) String() string {
	switch m {
	case Positional:
		return "positional"
	case Immediate:
		return "immediate"
	case Relative:
		return "relative"
	}
	return "mode(" + strconv.Itoa(int(m)) + ")"
}

// MaxParams is the largest number of parameters taken by any instruction.
const MaxParams = 3

// maxRaw is the first value that does not fit in an opcode and three mode
// digits.
const maxRaw = 100000

// Instruction is a decoded instruction word.
type Instruction struct {
	Op    Opcode
	Modes [MaxParams]Mode
}

// Decode decodes a raw instruction word. Negative words decode from their
// absolute value.
//
// The returned error is ErrDecode for unknown opcodes, invalid mode digits
// and words that do not fit in five digits, and ErrInvalidDestination if the
// mode of a destination parameter is Immediate.
func Decode(raw Cell) (Instruction, error) {
	var ins Instruction
	v := raw
	if v < 0 {
		v = -v
	}
	// -v overflows for the smallest int64 and stays negative.
	if v < 0 || v >= maxRaw {
		return ins, errors.Wrapf(ErrDecode, "instruction %d out of range", raw)
	}
	ins.Op = Opcode(v % 100)
	if !ins.Op.Valid() {
		return ins, errors.Wrapf(ErrDecode, "invalid opcode %d", ins.Op)
	}
	v /= 100
	for k := range ins.Modes {
		m := Mode(v % 10)
		if m > Relative {
			return ins, errors.Wrapf(ErrDecode, "invalid mode %d for parameter %d", m, k+1)
		}
		ins.Modes[k] = m
		v /= 10
	}
	if d, ok := ins.Op.Dest(); ok && ins.Modes[d] == Immediate {
		return ins, errors.Wrapf(ErrInvalidDestination, "%v parameter %d", ins.Op, d+1)
	}
	return ins, nil
}

// Encode returns the raw instruction word for ins.
func (ins Instruction) Encode() Cell {
	v := Cell(0)
	for k := len(ins.Modes) - 1; k >= 0; k-- {
		v = v*10 + Cell(ins.Modes[k])
	}
	return v*100 + Cell(ins.Op)
}

func (ins Instruction) String() string {
	return ins.Op.String() + "/" + strconv.FormatInt(int64(ins.Encode()), 10)
}
