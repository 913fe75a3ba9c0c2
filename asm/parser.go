// This file is part of intcode - https://github.com/db47h/intcode
//
// Copyright 2019 Denis Bernard <db047h@gmail.com>
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
	"io"
	"sort"
	"strconv"
	"text/scanner"
	"unicode"

	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

const maxErrors = 10

// mode digit multipliers for each operand slot
var modeScale = [...]vm.Cell{100, 1000, 10000}

func isIdentRune(ch rune, i int) bool {
	return unicode.IsLetter(ch) || unicode.IsSymbol(ch) || unicode.IsPunct(ch) || unicode.IsDigit(ch)
}

type labelSite struct {
	pos     scanner.Position
	address int
}

type label struct {
	labelSite
	uses []labelSite
}

type constant struct {
	pos   scanner.Position
	value vm.Cell
}

// parser states
const (
	stInstr = iota // instruction, label definition, directive or data
	stArg          // instruction operand
	stDat          // .dat argument
	stOrg          // .org argument
	stEqu          // .equ value
)

type parser struct {
	out    []vm.Cell
	pc     int
	end    int
	s      scanner.Scanner
	labels map[string]*label
	consts map[string]constant
	errs   ErrAsm

	state   int
	op      vm.Opcode
	ins     int // address of the instruction being assembled
	arg     int // operand index in the current instruction
	cstName string
	cstPos  scanner.Position
}

func newParser() *parser {
	return &parser{
		labels: make(map[string]*label),
		consts: make(map[string]constant),
	}
}

func (p *parser) write(v vm.Cell) {
	if p.pc >= len(p.out) {
		p.out = append(p.out, make([]vm.Cell, p.pc+1-len(p.out))...)
	}
	p.out[p.pc] = v
	p.pc++
	if p.pc > p.end {
		p.end = p.pc
	}
}

func (p *parser) error(pos scanner.Position, msg string) {
	if len(p.errs) < maxErrors {
		p.errs = append(p.errs, Error{pos, msg})
	}
}

// Parse does the parsing and compiling.
func (p *parser) Parse(name string, r io.Reader) ([]vm.Cell, error) {
	p.s.Init(r)
	p.s.Error = func(s *scanner.Scanner, msg string) {
		pos := s.Position
		if !pos.IsValid() {
			pos = s.Pos()
		}
		p.error(pos, msg)
	}
	p.s.IsIdentRune = isIdentRune
	p.s.Mode = scanner.ScanIdents
	p.s.Filename = name

	for tok := p.s.Scan(); tok != scanner.EOF && len(p.errs) < maxErrors; tok = p.s.Scan() {
		if tok != scanner.Ident {
			p.error(p.s.Position, "unexpected character "+strconv.QuoteRune(tok))
			continue
		}
		p.token(p.s.TokenText())
	}

	switch p.state {
	case stArg:
		p.error(p.s.Pos(), "missing operand for "+p.op.String())
	case stDat, stOrg, stEqu:
		p.error(p.s.Pos(), "missing directive argument")
	}

	p.resolve()

	if len(p.errs) > 0 {
		sort.SliceStable(p.errs, func(i, j int) bool {
			return p.errs[i].Pos.Offset < p.errs[j].Pos.Offset
		})
		return nil, p.errs
	}
	return p.out[:p.end], nil
}

func (p *parser) token(s string) {
	if s == "(" {
		p.comment()
		return
	}
	switch p.state {
	case stArg:
		p.operand(s)
		return
	case stDat, stOrg, stEqu:
		p.directiveArg(s)
		return
	}

	switch s[0] {
	case ':':
		p.defineLabel(s[1:])
	case '.':
		p.directive(s)
	case '#', '@':
		p.error(p.s.Position, "unexpected operand "+s)
	default:
		if op, ok := vm.LookupOpcode(s); ok {
			p.op, p.ins, p.arg = op, p.pc, 0
			p.write(vm.Cell(op))
			if op.Arity() > 0 {
				p.state = stArg
			}
			return
		}
		// implicit .dat
		p.value(s, p.s.Position)
	}
}

// comment skips tokens up to and including the closing parenthesis.
func (p *parser) comment() {
	pos := p.s.Position
	for tok := p.s.Scan(); tok != scanner.EOF; tok = p.s.Scan() {
		if tok == scanner.Ident && p.s.TokenText() == ")" {
			return
		}
	}
	p.error(pos, "unterminated comment")
}

func (p *parser) operand(s string) {
	pos := p.s.Position
	mode := vm.Position
	switch s[0] {
	case '#':
		mode, s = vm.Immediate, s[1:]
	case '@':
		mode, s = vm.Relative, s[1:]
	case ':', '.':
		p.error(pos, "unexpected "+s+" as operand of "+p.op.String())
	}
	if mode == vm.Immediate && p.arg == p.op.Dest() {
		p.error(pos, "immediate destination operand #"+s)
	}
	p.value(s, pos)
	p.out[p.ins] += vm.Cell(mode) * modeScale[p.arg]
	p.arg++
	if p.arg == p.op.Arity() {
		p.state = stInstr
	}
}

// literal converts integer literals, character literals and constant names to
// their value. It returns false if s is none of these.
func (p *parser) literal(s string) (vm.Cell, bool, error) {
	n, err := strconv.ParseInt(s, 0, 64)
	if err == nil {
		return vm.Cell(n), true, nil
	}
	if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
		return 0, false, errors.New("integer out of range " + s)
	}
	if len(s) > 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		r, _, tail, err := strconv.UnquoteChar(s[1:len(s)-1], '\'')
		if err != nil || tail != "" {
			return 0, false, errors.New("invalid character literal " + s)
		}
		return vm.Cell(r), true, nil
	}
	if c, ok := p.consts[s]; ok {
		return c.value, true, nil
	}
	return 0, false, nil
}

// value writes a literal or the address of a label at pc.
func (p *parser) value(s string, pos scanner.Position) {
	if s == "" {
		p.error(pos, "empty operand")
		p.write(0)
		return
	}
	v, ok, err := p.literal(s)
	if err != nil {
		p.error(pos, err.Error())
	} else if !ok {
		p.useLabel(s, pos)
	}
	p.write(v)
}

func (p *parser) useLabel(name string, pos scanner.Position) {
	lbl := p.labels[name]
	if lbl == nil {
		lbl = &label{labelSite{pos, -1}, nil}
		p.labels[name] = lbl
	}
	lbl.uses = append(lbl.uses, labelSite{pos, p.pc})
}

func (p *parser) defineLabel(name string) {
	pos := p.s.Position
	if name == "" {
		p.error(pos, "empty label name")
		return
	}
	if c, ok := p.consts[name]; ok {
		p.error(pos, "label redefinition, previously defined as a constant here: "+c.pos.String()+": "+name)
		return
	}
	if l, ok := p.labels[name]; ok {
		if l.address != -1 {
			p.error(pos, "label redefinition, previous definition here: "+l.pos.String()+": "+name)
			return
		}
		l.labelSite = labelSite{pos, p.pc}
		return
	}
	p.labels[name] = &label{labelSite{pos, p.pc}, nil}
}

func (p *parser) directive(s string) {
	switch s {
	case ".dat":
		p.state = stDat
	case ".org":
		p.state = stOrg
	case ".equ":
		if p.s.Scan() != scanner.Ident {
			p.error(p.s.Position, ".equ: expected identifier")
			return
		}
		name := p.s.TokenText()
		if l, ok := p.labels[name]; ok {
			p.error(p.s.Position, ".equ: previously defined or used as a label here: "+l.pos.String()+": "+name)
			return
		}
		p.cstName, p.cstPos = name, p.s.Position
		p.state = stEqu
	default:
		p.error(p.s.Position, "unknown directive "+s)
	}
}

func (p *parser) directiveArg(s string) {
	pos := p.s.Position
	state := p.state
	p.state = stInstr
	if state == stDat {
		p.value(s, pos)
		return
	}
	v, ok, err := p.literal(s)
	if err != nil {
		p.error(pos, err.Error())
		return
	}
	if !ok {
		p.error(pos, "expected integer or constant, got "+s)
		return
	}
	switch state {
	case stOrg:
		if v < 0 {
			p.error(pos, "negative origin "+s)
			return
		}
		p.pc = int(v)
	case stEqu:
		p.consts[p.cstName] = constant{p.cstPos, v}
	}
}

func (p *parser) resolve() {
	for n, l := range p.labels {
		if l.address == -1 {
			p.error(l.uses[0].pos, "undefined label "+n)
			continue
		}
		for _, u := range l.uses {
			p.out[u.address] = vm.Cell(l.address)
		}
	}
}
