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

package vm_test

import (
	"strconv"
	"testing"

	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type C = vm.Image

func setup(t *testing.T, code C, opts ...vm.Option) *vm.Instance {
	t.Helper()
	i, err := vm.New(code, opts...)
	require.NoError(t, err)
	return i
}

func runAll(t *testing.T, code C, input ...vm.Cell) *vm.Snapshot {
	t.Helper()
	snap, err := setup(t, code, vm.Input(input...)).Run()
	require.NoError(t, err)
	return snap
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		name string
		code C
		mem  C
	}{
		{"add", C{1, 0, 0, 0, 99}, C{2, 0, 0, 0, 99}},
		{"mul", C{2, 3, 0, 3, 99}, C{2, 3, 0, 6, 99}},
		{"mul store", C{2, 4, 4, 5, 99, 0}, C{2, 4, 4, 5, 99, 9801}},
		{"self modifying", C{1, 1, 1, 4, 99, 5, 6, 0, 99}, C{30, 1, 1, 4, 2, 5, 6, 0, 99}},
		{"immediate", C{1101, 100, -1, 4, 0}, C{1101, 100, -1, 4, 99}},
		{"mixed modes", C{1002, 4, 3, 4, 33}, C{1002, 4, 3, 4, 99}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			snap := runAll(t, test.code)
			assert.Equal(t, test.mem, snap.Memory.Image(len(test.code)))
			assert.Empty(t, snap.Output)
		})
	}
}

const (
	eqPos = "3,9,8,9,10,9,4,9,99,-1,8"
	ltPos = "3,9,7,9,10,9,4,9,99,-1,8"
	eqImm = "3,3,1108,-1,8,3,4,3,99"
	ltImm = "3,3,1107,-1,8,3,4,3,99"
	jmPos = "3,12,6,12,15,1,13,14,13,4,13,99,-1,0,1,9"
	jmImm = "3,3,1105,-1,9,1101,0,0,12,4,12,99,1"
	cmp8  = "3,21,1008,21,8,20,1005,20,22,107,8,21,20,1006,20,31,1106,0,36,98,0,0,1002,21,125,20,4,20,1105,1,46,104,999,1105,1,46,1101,1000,1,20,4,20,1105,1,46,98,99"
)

func parse(t *testing.T, s string) C {
	t.Helper()
	img, err := vm.ParseString(s)
	require.NoError(t, err)
	return img
}

func TestCompareAndJump(t *testing.T) {
	tests := []struct {
		code  string
		input vm.Cell
		want  vm.Cell
	}{
		{eqPos, 8, 1}, {eqPos, 7, 0},
		{ltPos, 7, 1}, {ltPos, 8, 0},
		{eqImm, 8, 1}, {eqImm, 9, 0},
		{ltImm, -3, 1}, {ltImm, 8, 0},
		{jmPos, 0, 0}, {jmPos, 5, 1},
		{jmImm, 0, 0}, {jmImm, -5, 1},
		{cmp8, 7, 999}, {cmp8, 8, 1000}, {cmp8, 9, 1001},
	}
	for _, test := range tests {
		t.Run(strconv.Itoa(int(test.input)), func(t *testing.T) {
			snap := runAll(t, parse(t, test.code), test.input)
			assert.Equal(t, []vm.Cell{test.want}, snap.Output)
		})
	}
}

var quine = C{109, 1, 204, -1, 1001, 100, 1, 100, 1008, 100, 16, 101, 1006, 101, 0, 99}

func TestQuine(t *testing.T) {
	snap := runAll(t, quine)
	assert.Equal(t, []vm.Cell(quine), snap.Output)
}

func TestLargeNumbers(t *testing.T) {
	snap := runAll(t, C{1102, 34915192, 34915192, 7, 4, 7, 99, 0})
	require.Len(t, snap.Output, 1)
	assert.Len(t, strconv.FormatInt(int64(snap.Output[0]), 10), 16)

	snap = runAll(t, C{104, 1125899906842624, 99})
	assert.Equal(t, []vm.Cell{1125899906842624}, snap.Output)
}

func TestRelativeBase(t *testing.T) {
	i := setup(t, C{109, 2000, 109, 19, 204, -34, 99})
	i.Memory().Write(1985, 77)
	snap, err := i.Run()
	require.NoError(t, err)
	assert.Equal(t, []vm.Cell{77}, snap.Output)
	assert.Equal(t, vm.Cell(2019), i.RelativeBase())

	// relative destination
	snap = runAll(t, C{109, 10, 203, 0, 204, 0, 99}, 5)
	assert.Equal(t, []vm.Cell{5}, snap.Output)
	v, ok := snap.Memory.Peek(10)
	assert.True(t, ok)
	assert.Equal(t, vm.Cell(5), v)
}

func TestSparseMemory(t *testing.T) {
	const far = 100000000000000
	i := setup(t, C{3, far, 99}, vm.Input(42))
	snap, err := i.Run()
	require.NoError(t, err)

	v, ok := snap.Memory.Peek(far)
	assert.True(t, ok)
	assert.Equal(t, vm.Cell(42), v)
	for _, addr := range []vm.Cell{3, 1000, far - 1, far + 1} {
		_, ok := snap.Memory.Peek(addr)
		assert.False(t, ok, "address %d", addr)
	}
	assert.Equal(t, []vm.Cell{0, 1, 2, far}, snap.Memory.Addresses())

	// reading an unmapped address maps it as zero
	snap = runAll(t, C{4, 50, 99})
	assert.Equal(t, []vm.Cell{0}, snap.Output)
	v, ok = snap.Memory.Peek(50)
	assert.True(t, ok)
	assert.Zero(t, v)
}

func TestPauseResume(t *testing.T) {
	i, err := vm.NewResumable(C{3, 0, 4, 0, 3, 0, 4, 0, 99}, vm.Input(5))
	require.NoError(t, err)
	assert.True(t, i.PausesOnOutput())
	assert.Equal(t, vm.Started, i.State())

	snap, err := i.Run()
	require.NoError(t, err)
	assert.Equal(t, vm.Paused, i.State())
	assert.Equal(t, []vm.Cell{5}, snap.Output)
	assert.Equal(t, vm.Cell(4), i.PC)

	i.AddInput(6)
	snap, err = i.Run()
	require.NoError(t, err)
	assert.Equal(t, vm.Paused, i.State())
	assert.Equal(t, []vm.Cell{5, 6}, snap.Output)

	snap, err = i.Run()
	require.NoError(t, err)
	assert.Equal(t, vm.Stopped, i.State())
	assert.Equal(t, []vm.Cell{5, 6}, snap.Output)
	assert.Equal(t, vm.Cell(9), i.PC)
	assert.Equal(t, int64(5), i.InstructionCount())

	_, err = i.Run()
	assert.True(t, errors.Is(err, vm.ErrStopped))
}

func TestSetPauseOnOutput(t *testing.T) {
	i := setup(t, quine)
	i.SetPauseOnOutput(true)
	snap, err := i.Run()
	require.NoError(t, err)
	assert.Equal(t, vm.Paused, i.State())
	assert.Equal(t, []vm.Cell{109}, snap.Output)

	i.SetPauseOnOutput(false)
	snap, err = i.Run()
	require.NoError(t, err)
	assert.Equal(t, vm.Stopped, i.State())
	assert.Equal(t, []vm.Cell(quine), snap.Output)
}

func TestSnapshotIsACopy(t *testing.T) {
	i := setup(t, C{1101, 1, 2, 5, 99, 0})
	snap, err := i.Run()
	require.NoError(t, err)
	snap.Memory.Write(5, 1000)
	v, _ := i.Memory().Peek(5)
	assert.Equal(t, vm.Cell(3), v)
}

func TestFaults(t *testing.T) {
	tests := []struct {
		name  string
		code  C
		input []vm.Cell
		cause error
		pc    vm.Cell
	}{
		{"unknown opcode", C{1101, 1, 1, 5, 98}, nil, vm.ErrDecode, 4},
		{"zero opcode", C{0}, nil, vm.ErrDecode, 0},
		{"bad mode", C{301, 0, 0, 0, 99}, nil, vm.ErrDecode, 0},
		{"too many digits", C{100001, 0, 0, 0, 99}, nil, vm.ErrDecode, 0},
		{"run off the end", C{1101, 1, 1, 5}, nil, vm.ErrDecode, 4},
		{"no input", C{3, 0, 3, 0, 99}, []vm.Cell{1}, vm.ErrInputExhausted, 2},
		{"immediate destination", C{11101, 1, 1, 0, 99}, nil, vm.ErrInvalidDestination, 0},
		{"immediate input destination", C{103, 0, 99}, []vm.Cell{1}, vm.ErrInvalidDestination, 0},
		{"negative relative", C{204, -5, 99}, nil, vm.ErrAddress, 0},
		{"negative positional", C{4, -1, 99}, nil, vm.ErrAddress, 0},
		{"negative destination", C{1101, 1, 1, -1, 99}, nil, vm.ErrAddress, 0},
		{"negative jump", C{1105, 1, -3}, nil, vm.ErrAddress, -3},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			i := setup(t, test.code, vm.Input(test.input...))
			_, err := i.Run()
			require.Error(t, err)
			assert.True(t, errors.Is(err, test.cause), "got %v", err)
			assert.Equal(t, test.cause, errors.Cause(err))

			var f *vm.Fault
			require.True(t, errors.As(err, &f))
			assert.Equal(t, test.pc, f.PC)
			assert.Equal(t, test.pc, i.PC)
			assert.Equal(t, vm.Stopped, i.State())
			assert.Equal(t, err, i.Err())

			// the fault sticks
			_, err2 := i.Run()
			assert.Equal(t, err, err2)
		})
	}
}

func TestFaultLeavesMemory(t *testing.T) {
	i := setup(t, C{1101, 2, 3, 7, 3, 8, 99, 0, 0})
	_, err := i.Run()
	require.True(t, errors.Is(err, vm.ErrInputExhausted))
	assert.Equal(t, C{1101, 2, 3, 7, 3, 8, 99, 5, 0}, i.Memory().Image(9))
}

func TestOptions(t *testing.T) {
	i, err := vm.New(C{99}, vm.PauseOnOutput(true), vm.Input(1, 2, 3), vm.Logger(nil), vm.Trace(true))
	require.NoError(t, err)
	assert.True(t, i.PausesOnOutput())
	assert.Equal(t, 3, i.PendingInput())
	_, ok := i.LastOutput()
	assert.False(t, ok)

	bad := func(*vm.Instance) error { return errors.New("bad option") }
	_, err = vm.New(C{99}, bad)
	assert.EqualError(t, err, "bad option")
}
