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


package asm

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/scanner"
	"unicode"

	"github.com/db47h/intcode/vm"
)

const maxErrors = 10

// ErrAsmEntry is a single assembler error.
type ErrAsmEntry struct {
	Pos scanner.Position
	Msg string
}

func (e *ErrAsmEntry) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

// ErrAsm is the error type returned by Assemble. It holds up to 10 entries.
type ErrAsm []ErrAsmEntry

func (e ErrAsm) Error() string {
	var sb strings.Builder
	for k := range e {
		if k > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(e[k].Error())
	}
	return sb.String()
}

func isIdentRune(ch rune, i int) bool {
	return ch != ',' && (unicode.IsLetter(ch) || unicode.IsSymbol(ch) || unicode.IsPunct(ch) || unicode.IsDigit(ch))
}

type labelSite struct {
	pos     scanner.Position
	address int
}

// use of a label as operand or data.
type labelUse struct {
	labelSite
	name string
}

type parser struct {
	img    vm.Image
	pc     int
	s      scanner.Scanner
	labels map[string]labelSite
	consts map[string]labelSite
	uses   []labelUse
	locals map[string]int // local label name -> count of definitions so far
	errs   ErrAsm
}

func newParser() *parser {
	return &parser{
		labels: make(map[string]labelSite),
		consts: make(map[string]labelSite),
		locals: make(map[string]int),
	}
}

func (p *parser) write(v vm.Cell) {
	for p.pc >= len(p.img) {
		p.img = append(p.img, make(vm.Image, p.pc-len(p.img)+1)...)
	}
	p.img[p.pc] = v
	p.pc++
}

func (p *parser) error(pos scanner.Position, format string, args ...interface{}) {
	if len(p.errs) < maxErrors {
		p.errs = append(p.errs, ErrAsmEntry{pos, fmt.Sprintf(format, args...)})
	}
}

func (p *parser) pos() scanner.Position {
	pos := p.s.Position
	if !pos.IsValid() {
		pos = p.s.Pos()
	}
	return pos
}

func isLocal(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func localName(name string, n int) string {
	return name + "·" + strconv.Itoa(n)
}

// define defines label name at the current address.
func (p *parser) define(name string) {
	pos := p.pos()
	switch {
	case name == "":
		p.error(pos, "empty label name")
		return
	case isLocal(name):
		p.locals[name]++
		name = localName(name, p.locals[name])
	}
	if c, ok := p.consts[name]; ok {
		p.error(pos, "label redefinition, previously defined as a constant here: %s: %s", c.pos, name)
		return
	}
	if l, ok := p.labels[name]; ok {
		p.error(pos, "label redefinition, previous definition here: %s: %s", l.pos, name)
		return
	}
	p.labels[name] = labelSite{pos, p.pc}
}

// value converts s to a value: an integer or character literal or a named
// constant. Anything else is a label reference and is recorded for later
// resolution at the current address.
func (p *parser) value(s string) vm.Cell {
	if n, err := strconv.ParseInt(s, 0, 64); err == nil {
		return vm.Cell(n)
	}
	if len(s) > 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		r, _, _, err := strconv.UnquoteChar(s[1:len(s)-1], '\'')
		if err != nil {
			p.error(p.pos(), "%v: %s", err, s)
			return 0
		}
		return vm.Cell(r)
	}
	if c, ok := p.consts[s]; ok {
		return vm.Cell(c.address)
	}
	if l := len(s); l > 1 && isLocal(s[:l-1]) {
		n := p.locals[s[:l-1]]
		switch s[l-1] {
		case '-':
			s = localName(s[:l-1], n)
		case '+':
			s = localName(s[:l-1], n+1)
		}
	}
	p.uses = append(p.uses, labelUse{labelSite{p.pos(), p.pc}, s})
	return 0
}

// integer is like value but does not accept label references.
func (p *parser) integer(s string) (vm.Cell, bool) {
	if c, ok := p.consts[s]; ok {
		return vm.Cell(c.address), true
	}
	if n, err := strconv.ParseInt(s, 0, 64); err == nil {
		return vm.Cell(n), true
	}
	if len(s) > 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		return p.value(s), true
	}
	return 0, false
}

// operand parses an instruction parameter and writes it.
func (p *parser) operand(s string) vm.Mode {
	m := vm.Positional
	switch s[0] {
	case '#':
		m, s = vm.Immediate, s[1:]
	case '~':
		m, s = vm.Relative, s[1:]
	}
	if s == "" {
		p.error(p.pos(), "missing operand value")
		p.write(0)
		return m
	}
	p.write(p.value(s))
	return m
}

func (p *parser) next() (rune, string) {
	tok := p.s.Scan()
	for tok == scanner.Ident && p.s.TokenText() == "(" {
		// skip comments
		for tok = p.s.Scan(); tok != scanner.EOF && (tok != scanner.Ident || p.s.TokenText() != ")"); tok = p.s.Scan() {
		}
		if tok == scanner.EOF {
			p.error(p.pos(), "unterminated comment")
			return tok, ""
		}
		tok = p.s.Scan()
	}
	return tok, p.s.TokenText()
}

// startsStatement reports whether s cannot be a .dat argument.
func startsStatement(s string) bool {
	if s[0] == ':' || s[0] == '.' {
		return true
	}
	_, ok := vm.LookupOpcode(s)
	return ok
}

func (p *parser) instruction(op vm.Opcode) {
	at := p.pc
	p.write(vm.Cell(op))
	ins := vm.Instruction{Op: op}
	for k := 0; k < op.Params(); k++ {
		tok, s := p.next()
		if tok != scanner.Ident || startsStatement(s) {
			p.error(p.pos(), "%s: expected %d operands, got %d", op, op.Params(), k)
			return
		}
		ins.Modes[k] = p.operand(s)
	}
	if d, ok := op.Dest(); ok && ins.Modes[d] == vm.Immediate {
		p.error(p.pos(), "%s: immediate destination operand", op)
		return
	}
	p.img[at] = ins.Encode()
}

// Parse does the parsing and compiling.
func (p *parser) Parse(name string, r io.Reader) (vm.Image, error) {
	p.s.Init(r)
	p.s.Error = func(s *scanner.Scanner, msg string) {
		p.error(p.pos(), "%s", msg)
	}
	p.s.IsIdentRune = isIdentRune
	p.s.Mode = scanner.ScanIdents
	p.s.Whitespace = scanner.GoWhitespace | 1<<','
	p.s.Filename = name

	tok, s := p.next()
	for tok != scanner.EOF && len(p.errs) < maxErrors {
		if tok != scanner.Ident {
			p.error(p.pos(), "unexpected character %s", strconv.QuoteRune(tok))
			tok, s = p.next()
			continue
		}
		switch {
		case s[0] == ':':
			p.define(s[1:])
		case s == ".dat":
			n := 0
			for tok, s = p.next(); tok == scanner.Ident && !startsStatement(s); tok, s = p.next() {
				p.write(p.value(s))
				n++
			}
			if n == 0 {
				p.error(p.pos(), ".dat: missing value")
			}
			continue
		case s == ".org":
			tok, s = p.next()
			if v, ok := p.integer(s); tok == scanner.Ident && ok && v >= 0 {
				p.pc = int(v)
			} else {
				p.error(p.pos(), ".org: expected address, got %s", s)
			}
		case s == ".equ":
			tok, s = p.next()
			if tok != scanner.Ident || startsStatement(s) {
				p.error(p.pos(), ".equ: expected identifier, got %s", s)
				break
			}
			cst, pos := s, p.pos()
			if l, ok := p.labels[cst]; ok {
				p.error(pos, ".equ: redefinition, previously defined as a label here: %s: %s", l.pos, cst)
			}
			tok, s = p.next()
			v, ok := p.integer(s)
			if tok != scanner.Ident || !ok {
				p.error(p.pos(), ".equ: expected value, got %s", s)
				break
			}
			p.consts[cst] = labelSite{pos, int(v)}
		case s[0] == '.':
			p.error(p.pos(), "unknown directive %s", s)
		default:
			if op, ok := vm.LookupOpcode(s); ok {
				p.instruction(op)
			} else if v, ok := p.integer(s); ok {
				p.write(v)
			} else {
				p.error(p.pos(), "unknown instruction %s", s)
			}
		}
		tok, s = p.next()
	}

	for _, u := range p.uses {
		l, ok := p.labels[u.name]
		if !ok {
			p.error(u.pos, "undefined label %s", u.name)
			continue
		}
		p.img[u.address] = vm.Cell(l.address)
	}

	if len(p.errs) > 0 {
		return nil, p.errs
	}
	if len(p.img) == 0 {
		return nil, ErrAsm{{p.s.Pos(), "empty program"}}
	}
	return p.img, nil
}
