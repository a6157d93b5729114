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
	"context"

	"github.com/pkg/errors"
)

func bool2Cell(b bool) Cell {
	if b {
		return 1
	}
	return 0
}

// operands resolves the parameters of ins, located right after the
// instruction word at PC. Destination parameters resolve to an address, all
// others to a value.
func (i *Instance) operands(ins Instruction) (ops [MaxParams]Cell, err error) {
	dest, hasDest := ins.Op.Dest()
	for k := 0; k < ins.Op.Params(); k++ {
		p := i.mem.Read(i.PC + 1 + Cell(k))
		switch ins.Modes[k] {
		case Immediate:
			ops[k] = p
			continue
		case Relative:
			p += i.base
		}
		if p < 0 {
			return ops, errors.Wrapf(ErrAddress, "parameter %d: address %d", k+1, p)
		}
		if hasDest && k == dest {
			ops[k] = p
		} else {
			ops[k] = i.mem.Read(p)
		}
	}
	return ops, nil
}

func (i *Instance) fault(pc, raw Cell, err error) error {
	f := &Fault{PC: pc, Raw: raw, Err: err}
	i.state = Stopped
	i.err = f
	i.log.Debug("fault", "pc", pc, "raw", raw, "err", err)
	return f
}

// Run starts or resumes execution of the VM. It returns when the program
// halts or, if the instance pauses on output, right after an output
// instruction. In the latter case the PC points to the next instruction and
// calling Run again resumes execution from there.
//
// The returned Snapshot holds a copy of memory and of all the values output
// since the instance was created, not only during this call.
//
// If an error occurs, it is a *Fault and the instance is stopped. The PC
// then points to the instruction that triggered the error and memory is left
// as it was before that instruction. Calling Run on a stopped instance returns
// the fault that stopped it, or ErrStopped if it halted normally.
func (i *Instance) Run() (snap *Snapshot, err error) {
	if i.state == Stopped {
		if i.err != nil {
			return nil, i.err
		}
		return nil, errors.WithStack(ErrStopped)
	}
	defer func() {
		if e := recover(); e != nil {
			switch e := e.(type) {
			case error:
				raw, _ := i.mem.Peek(i.PC)
				snap, err = nil, i.fault(i.PC, raw, errors.Wrap(e, "recovered"))
			default:
				panic(e)
			}
		}
	}()
	i.state = Started
	for {
		pc := i.PC
		if pc < 0 {
			return nil, i.fault(pc, 0, errors.Wrapf(ErrAddress, "pc %d", pc))
		}
		raw := i.mem.Read(pc)
		ins, err := Decode(raw)
		if err != nil {
			return nil, i.fault(pc, raw, err)
		}
		if i.trace {
			i.log.Log(context.Background(), LevelTrace, "exec", "pc", pc, "op", ins.Op.String(), "raw", raw, "base", i.base)
		}
		ops, err := i.operands(ins)
		if err != nil {
			return nil, i.fault(pc, raw, err)
		}
		next := pc + Cell(ins.Op.Size())
		switch ins.Op {
		case OpAdd:
			i.mem.Write(ops[2], ops[0]+ops[1])
		case OpMul:
			i.mem.Write(ops[2], ops[0]*ops[1])
		case OpIn:
			v, ok := i.input.pop()
			if !ok {
				return nil, i.fault(pc, raw, errors.WithStack(ErrInputExhausted))
			}
			i.mem.Write(ops[0], v)
		case OpOut:
			i.output = append(i.output, ops[0])
		case OpJumpIfTrue:
			if ops[0] != 0 {
				next = ops[1]
			}
		case OpJumpIfFalse:
			if ops[0] == 0 {
				next = ops[1]
			}
		case OpLessThan:
			i.mem.Write(ops[2], bool2Cell(ops[0] < ops[1]))
		case OpEquals:
			i.mem.Write(ops[2], bool2Cell(ops[0] == ops[1]))
		case OpAdjustBase:
			i.base += ops[0]
		case OpHalt:
		}
		i.PC = next
		i.insCount++

		switch {
		case ins.Op == OpHalt:
			i.state = Stopped
			i.log.Debug("halted", "pc", pc, "instructions", i.insCount, "outputs", len(i.output))
			return i.snapshot(), nil
		case ins.Op == OpOut && i.pause:
			i.state = Paused
			i.log.Debug("paused", "pc", i.PC, "value", ops[0])
			return i.snapshot(), nil
		}
	}
}
