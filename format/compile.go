/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package format

import (
	"fmt"
	"slices"
	"strconv"
	"unicode/utf8"
)

// MaxInstructions is the default capacity of a compiled program.
const MaxInstructions = 32

// Verb is the kind of a compiled instruction.
type Verb uint8

const (
	// VerbLiteral appends a run of template text verbatim.
	VerbLiteral Verb = iota
	// VerbChar is %c.
	VerbChar
	// VerbInt is %d.
	VerbInt
	// VerbFloat is %f.
	VerbFloat
	// VerbString is %s.
	VerbString
	// VerbAny is %v and {n}; the argument's kind decides the formatting.
	VerbAny
)

var verbNames = [...]string{
	VerbLiteral: "literal",
	VerbChar:    "char",
	VerbInt:     "int",
	VerbFloat:   "float",
	VerbString:  "string",
	VerbAny:     "any",
}

func (v Verb) String() string {
	if int(v) < len(verbNames) {
		return verbNames[v]
	}
	return "verb(" + strconv.Itoa(int(v)) + ")"
}

// Accepts reports whether an argument of kind k may be bound to v.
// Float accepts both floating kinds and String accepts both text kinds;
// there are no other conversions.
func (v Verb) Accepts(k Kind) bool {
	switch v {
	case VerbAny, VerbLiteral:
		return true
	case VerbChar:
		return k == KindChar
	case VerbInt:
		return k == KindInt
	case VerbFloat:
		return k == KindFloat || k == KindDouble
	case VerbString:
		return k == KindString || k == KindWideString
	}
	return false
}

func verbForLetter(c byte) (Verb, bool) {
	switch c {
	case 'c':
		return VerbChar, true
	case 'd':
		return VerbInt, true
	case 'f':
		return VerbFloat, true
	case 's':
		return VerbString, true
	case 'v':
		return VerbAny, true
	}
	return VerbLiteral, false
}

// Inst is one step of a compiled program.
type Inst struct {
	Verb Verb
	// ArgNo is the argument consumed by the instruction, or -1 for literals.
	ArgNo int
	// Text is the literal run for VerbLiteral. It is a substring of the
	// template and shares its storage.
	Text string
	// Offset is the byte offset in the template the instruction came from.
	Offset int
}

// CompileOption configures Compile.
type CompileOption func(*compileOptions)

type compileOptions struct {
	maxInstructions int
}

// WithMaxInstructions sets the program capacity. Values below 1 select
// MaxInstructions.
func WithMaxInstructions(n int) CompileOption {
	return func(o *compileOptions) {
		o.maxInstructions = n
	}
}

// Program is a compiled template. It is immutable once Compile returns and
// may be evaluated concurrently.
type Program struct {
	template  string
	insts     []Inst
	limit     int
	percArgNo int
	numArgs   int
	err       error
}

// Compile scans template once and returns its program.
//
// The returned Program is never nil. When err is not nil the program is
// marked unusable: OK reports false and Eval returns err without doing
// any work.
func Compile(template string, opts ...CompileOption) (*Program, error) {
	o := compileOptions{maxInstructions: MaxInstructions}
	for _, opt := range opts {
		opt(&o)
	}
	if o.maxInstructions < 1 {
		o.maxInstructions = MaxInstructions
	}

	p := &Program{
		template: template,
		limit:    o.maxInstructions,
		insts:    make([]Inst, 0, min(o.maxInstructions, 8)),
	}
	p.err = p.parse()
	if p.err == nil {
		p.err = p.checkCoverage()
	}
	return p, p.err
}

// parse walks the template left to right. start is the beginning of the
// pending literal run, which is flushed whenever a directive or an escape
// is found.
func (p *Program) parse() error {
	s := p.template
	start := 0
	for i := 0; i < len(s); {
		switch s[i] {
		case '\\':
			// Only \{ is an escape. Any other backslash is plain text.
			if i+1 < len(s) && s[i+1] == '{' {
				if err := p.literal(start, i); err != nil {
					return err
				}
				start = i + 1
				i += 2
				continue
			}
			i++

		case '{':
			if err := p.literal(start, i); err != nil {
				return err
			}
			end, err := p.positional(i)
			if err != nil {
				return err
			}
			i, start = end, end

		case '%':
			if err := p.literal(start, i); err != nil {
				return err
			}
			if i+1 < len(s) && s[i+1] == '%' {
				start = i + 1
				i += 2
				continue
			}
			end, err := p.percent(i)
			if err != nil {
				return err
			}
			i, start = end, end

		default:
			i++
		}
	}
	return p.literal(start, len(s))
}

// literal emits template[start:end], if it is not empty.
func (p *Program) literal(start, end int) error {
	if end <= start {
		return nil
	}
	return p.emit(Inst{Verb: VerbLiteral, ArgNo: -1, Text: p.template[start:end], Offset: start})
}

func (p *Program) emit(in Inst) error {
	if len(p.insts) >= p.limit {
		return &LimitExceededError{Template: p.template, Limit: p.limit, Offset: in.Offset}
	}
	p.insts = append(p.insts, in)
	return nil
}

// positional parses {digits} at offset i and returns the offset after the
// closing brace.
func (p *Program) positional(i int) (int, error) {
	s := p.template
	j := i + 1
	for ; j < len(s) && s[j] != '}'; j++ {
		if s[j] < '0' || s[j] > '9' {
			r, _ := utf8.DecodeRuneInString(s[j:])
			return 0, p.syntaxError(j, "unexpected %q in positional directive", r)
		}
	}
	switch {
	case j == len(s):
		return 0, p.syntaxError(i, "unterminated positional directive")
	case j == i+1:
		return 0, p.syntaxError(i, "empty positional directive")
	}
	n, err := strconv.Atoi(s[i+1 : j])
	if err != nil {
		return 0, p.syntaxError(i+1, "argument index %s out of range", s[i+1:j])
	}
	if err := p.emit(Inst{Verb: VerbAny, ArgNo: n, Offset: i}); err != nil {
		return 0, err
	}
	return j + 1, nil
}

// percent parses %x at offset i and returns the offset after the letter.
// Percent directives take arguments in the order they appear.
func (p *Program) percent(i int) (int, error) {
	s := p.template
	if i+1 >= len(s) {
		return 0, p.syntaxError(i, "trailing %%")
	}
	v, ok := verbForLetter(s[i+1])
	if !ok {
		r, _ := utf8.DecodeRuneInString(s[i+1:])
		return 0, p.syntaxError(i, "unknown directive %%%c", r)
	}
	if err := p.emit(Inst{Verb: v, ArgNo: p.percArgNo, Offset: i}); err != nil {
		return 0, err
	}
	p.percArgNo++
	return i + 2, nil
}

// checkCoverage requires every argument index from 0 to the highest one
// referenced to be used by at least one instruction. Indices may repeat.
func (p *Program) checkCoverage() error {
	highest := -1
	var at int
	for _, in := range p.insts {
		if in.Verb != VerbLiteral && in.ArgNo > highest {
			highest, at = in.ArgNo, in.Offset
		}
	}
	// The first gap cannot be past the number of instructions, so this
	// loop stays bounded even for a huge index.
	for n := 0; n <= highest; n++ {
		if !p.references(n) {
			return &CompileError{
				Template: p.template,
				Offset:   at,
				Msg:      fmt.Sprintf("argument %d is never referenced (highest index is %d)", n, highest),
				Err:      ErrCoverage,
			}
		}
	}
	p.numArgs = highest + 1
	return nil
}

func (p *Program) references(argNo int) bool {
	for _, in := range p.insts {
		if in.Verb != VerbLiteral && in.ArgNo == argNo {
			return true
		}
	}
	return false
}

func (p *Program) syntaxError(offset int, format string, a ...any) error {
	return &CompileError{
		Template: p.template,
		Offset:   offset,
		Msg:      fmt.Sprintf(format, a...),
		Err:      ErrSyntax,
	}
}

// Template returns the source the program was compiled from.
func (p *Program) Template() string { return p.template }

// Insts returns a copy of the instruction list.
func (p *Program) Insts() []Inst { return slices.Clone(p.insts) }

// Len returns the number of instructions.
func (p *Program) Len() int { return len(p.insts) }

// Cap returns the instruction capacity the program was compiled with.
func (p *Program) Cap() int { return p.limit }

// NumArgs returns the number of arguments the program reads, that is one
// more than the highest referenced index.
func (p *Program) NumArgs() int { return p.numArgs }

// PercentDirectives returns the number of %-style directives.
func (p *Program) PercentDirectives() int { return p.percArgNo }

// Err returns the compile error, if any.
func (p *Program) Err() error { return p.err }

// OK reports whether the program compiled successfully.
func (p *Program) OK() bool { return p.err == nil }
