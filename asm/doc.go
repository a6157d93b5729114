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


// Package asm provides utility functions to assemble and disassemble Intcode
// programs.
//
// Supported assembler mnemonics:
//
//	Operands marked with d are destinations and cannot be immediate.
//
//	opcode	asm	operands	description
//	------	---	--------	------------------------------------------
//	1	add	a b d		d = a + b
//	2	mul	a b d		d = a * b
//	3	in	d		d = next input value
//	4	out	a		output a
//	5	jnz	a t		jump to t if a is not 0
//	6	jz	a t		jump to t if a is 0
//	7	lt	a b d		d = 1 if a < b, 0 otherwise
//	8	eq	a b d		d = 1 if a == b, 0 otherwise
//	9	arb	a		add a to the relative base
//	99	hlt			halt
//
// Operands:
//
// Operands are separated by white space or commas. The addressing mode of an
// operand is given by its prefix:
//
//	add 10, #3, ~-1	( positional, immediate and relative )
//
// compiles as 21001,10,3,-1. An operand value is an integer literal in any
// form accepted by strconv.ParseInt with base 0, a Go character literal
// between single quotes, a named constant or a label.
//
// Comments:
//
// Comments are placed between parentheses, i.e. '(' and ')'. The body of the
// comment must be separated from the enclosing parentheses by a space:
//
//	( this is a valid comment )
//	(this is not )
//
// Labels:
//
// Labels are defined by prefixing them with a colon (:) and evaluate to the
// address of the next cell. Forward references are ok:
//
//	:loop	in ~0
//		jnz ~0, #loop
//		hlt
//
// Local labels work like in the GNU assembler. They are defined as a colon
// followed by a sequence of digits (i.e. :1, :42) and can be defined multiple
// times. References to such labels must be suffixed with either a '-'
// (backward reference to the last definition) or a '+' (forward reference to
// the next definition):
//
//	:1	jz #0, #1+
//	:1	jnz #1, #1-
//
// Integer literals:
//
// Where an instruction is expected, integer literals, character literals and
// constants are written as-is.
//
// Assembler directives:
//
//	.equ <IDENTIFIER> <value>
//
// defines a constant value. The value must be an integer literal, named
// constant or character literal.
//
//	.org <value>
//
// places the next instruction at the given address. Skipped cells are zero.
//
//	.dat <value>...
//
// writes one or more values as-is. Unlike a bare literal, values may be
// labels:
//
//	:table	.dat 1 'B' SOMECONST table
package asm
