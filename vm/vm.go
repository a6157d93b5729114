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
	"log/slog"

	"github.com/db47h/intcode/internal/ici"
)

// Cell is the raw type stored in a memory location.
type Cell int64

// State is the run state of an Instance.
type State int

// Run states.
const (
	Started State = iota // running or ready to run
	Paused               // suspended right after an output
	Stopped              // halted or faulted, terminal
)

func (s State) String() string {
	switch s {
	case Started:
		return "started"
	case Paused:
		return "paused"
	case Stopped:
		return "stopped"
	}
	return "unknown"
}

// LevelTrace is the log level used by the Trace option, one step below
// slog.LevelDebug.
const LevelTrace = ici.LevelTrace

// Instance represents an Intcode VM instance.
type Instance struct {
	PC       Cell // Program Counter (aka. Instruction Pointer)
	mem      *Memory
	base     Cell
	input    queue
	output   []Cell
	pause    bool
	state    State
	insCount int64
	err      error
	log      *slog.Logger
	trace    bool
}

// Option interface
type Option func(*Instance) error

// Input queues the given values as input.
func Input(v ...Cell) Option {
	return func(i *Instance) error { i.AddInput(v...); return nil }
}

// PauseOnOutput enables or disables pausing after each output. When enabled,
// Run returns right after the program outputs a value and the next call to Run
// resumes at the following instruction. The default is false.
func PauseOnOutput(enable bool) Option {
	return func(i *Instance) error { i.pause = enable; return nil }
}

// Logger sets the logger used to report pauses, halts and faults. The
// default discards everything.
func Logger(l *slog.Logger) Option {
	return func(i *Instance) error {
		if l == nil {
			l = ici.Discard
		}
		i.log = l
		return nil
	}
}

// Trace enables logging of every decoded instruction at LevelTrace.
func Trace(enable bool) Option {
	return func(i *Instance) error { i.trace = enable; return nil }
}

// SetOptions sets the provided options.
func (i *Instance) SetOptions(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return err
		}
	}
	return nil
}

// New creates a new Intcode Virtual Machine instance with the program loaded
// at address 0. The program slice is copied into the instance memory and can
// be reused by the caller.
//
// The instance runs to completion on each call to Run unless the
// PauseOnOutput option is set.
func New(program Image, opts ...Option) (*Instance, error) {
	i := &Instance{
		mem: NewMemory(program),
		log: ici.Discard,
	}
	if err := i.SetOptions(opts...); err != nil {
		return nil, err
	}
	return i, nil
}

// NewResumable is like New but the instance pauses after each output.
// Options are applied after pausing is enabled.
func NewResumable(program Image, opts ...Option) (*Instance, error) {
	return New(program, append([]Option{PauseOnOutput(true)}, opts...)...)
}

// SetPauseOnOutput enables or disables pausing after each output. It takes
// effect on the next call to Run.
func (i *Instance) SetPauseOnOutput(enable bool) {
	i.pause = enable
}

// PausesOnOutput reports whether the instance pauses after each output.
func (i *Instance) PausesOnOutput() bool {
	return i.pause
}

// State returns the current run state.
func (i *Instance) State() State {
	return i.state
}

// Memory returns the instance memory. Changes made through the returned value
// are visible to the running program.
func (i *Instance) Memory() *Memory {
	return i.mem
}

// RelativeBase returns the current value of the relative base register.
func (i *Instance) RelativeBase() Cell {
	return i.base
}

// InstructionCount returns the number of instructions executed so far.
func (i *Instance) InstructionCount() int64 {
	return i.insCount
}

// Err returns the fault that stopped the instance, if any.
func (i *Instance) Err() error {
	return i.err
}

// Snapshot is the result of a call to Run.
type Snapshot struct {
	Memory *Memory // copy of the instance memory
	Output []Cell  // copy of every value output so far
}

func (i *Instance) snapshot() *Snapshot {
	return &Snapshot{
		Memory: i.mem.Clone(),
		Output: append([]Cell(nil), i.output...),
	}
}
