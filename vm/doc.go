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

// Package vm implements the Intcode VM.
//
// An Intcode program is a sequence of signed integers loaded at address 0 of
// an unbounded, sparse memory. Each instruction word encodes an opcode in its
// two low order decimal digits and the addressing mode of each parameter in
// the digits above, the hundreds digit being the mode of the first parameter:
//
//	opcode	asm	params	effect
//	------	---	------	-------------------------------------
//	1	add	a b d	d = a + b
//	2	mul	a b d	d = a * b
//	3	in	d	d = next queued input
//	4	out	a	append a to the output
//	5	jnz	a t	jump to t if a != 0
//	6	jz	a t	jump to t if a == 0
//	7	lt	a b d	d = 1 if a < b else 0
//	8	eq	a b d	d = 1 if a == b else 0
//	9	arb	a	relative base += a
//	99	hlt		stop
//
// Mode 0 (positional) parameters are addresses, mode 1 (immediate) parameters
// are values and mode 2 (relative) parameters are offsets from the relative
// base. Destination parameters (d above) cannot be immediate.
//
// An Instance never blocks: input values must be queued with AddInput before
// the program reads them, and running out of input is a fault. Instances
// created with NewResumable, or with the PauseOnOutput option, return from Run
// after each output so that several instances can be chained, each one feeding
// the next:
//
//	a, _ := vm.NewResumable(prog, vm.Input(setting, 0))
//	b, _ := vm.NewResumable(prog, vm.Input(setting))
//	a.Run()
//	v, _ := a.LastOutput()
//	b.AddInput(v)
//	b.Run()
//
// An Instance is not safe for concurrent use. Separate instances share
// nothing and may run on separate goroutines.
package vm
