/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package format

import (
	"slices"
	"strconv"
	"unicode/utf16"
	"unicode/utf8"
)

// Kind is the dynamic type tag carried by an Arg.
type Kind uint8

const (
	// KindNone marks an absent argument. It is the zero Kind.
	KindNone Kind = iota
	KindChar
	KindInt
	KindFloat
	KindDouble
	KindString
	KindWideString
)

var kindNames = [...]string{
	KindNone:       "none",
	KindChar:       "char",
	KindInt:        "int",
	KindFloat:      "float",
	KindDouble:     "double",
	KindString:     "string",
	KindWideString: "wstring",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// ParseKind returns the Kind named by s, as printed by Kind.String.
// "str" and "wstr" are accepted as short forms.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "str":
		return KindString, true
	case "wstr":
		return KindWideString, true
	}
	for k, name := range kindNames {
		if name == s {
			return Kind(k), true
		}
	}
	return KindNone, false
}

// Arg is an immutable argument value holding exactly one typed payload.
// The zero Arg is None.
type Arg struct {
	kind Kind
	i    int64
	f    float64
	s    string
	ws   []uint16
}

// None is the absent-argument sentinel.
var None = Arg{}

// Char returns a character argument.
func Char(c rune) Arg { return Arg{kind: KindChar, i: int64(c)} }

// Int returns an integer argument.
func Int(i int64) Arg { return Arg{kind: KindInt, i: i} }

// Float returns a single precision floating point argument.
func Float(f float32) Arg { return Arg{kind: KindFloat, f: float64(f)} }

// Double returns a double precision floating point argument.
func Double(d float64) Arg { return Arg{kind: KindDouble, f: d} }

// String returns a text argument.
func String(s string) Arg { return Arg{kind: KindString, s: s} }

// WideString returns a text argument made of UTF-16 code units.
// The slice is copied so later changes by the caller are not observed.
func WideString(ws []uint16) Arg { return Arg{kind: KindWideString, ws: slices.Clone(ws)} }

// WideStringFrom encodes s as UTF-16 and returns it as a WideString argument.
func WideStringFrom(s string) Arg {
	return Arg{kind: KindWideString, ws: utf16.Encode([]rune(s))}
}

// Kind returns the dynamic type of the argument.
func (a Arg) Kind() Kind { return a.kind }

// IsNone reports whether a is the absent-argument sentinel.
func (a Arg) IsNone() bool { return a.kind == KindNone }

// String renders the argument the same way Eval does.
func (a Arg) String() string {
	return string(a.appendTo(nil))
}

// appendTo appends the textual form of a to dst, chosen by its dynamic kind.
func (a Arg) appendTo(dst []byte) []byte {
	switch a.kind {
	case KindChar:
		return utf8.AppendRune(dst, rune(a.i))
	case KindInt:
		return strconv.AppendInt(dst, a.i, 10)
	case KindFloat:
		return strconv.AppendFloat(dst, a.f, 'g', -1, 32)
	case KindDouble:
		return strconv.AppendFloat(dst, a.f, 'g', -1, 64)
	case KindString:
		return append(dst, a.s...)
	case KindWideString:
		for _, r := range utf16.Decode(a.ws) {
			dst = utf8.AppendRune(dst, r)
		}
		return dst
	}
	return dst
}

// TrimArgs drops trailing None arguments. Fixed-arity call sites pass
// unused slots as None, so only the prefix up to the last real argument
// counts.
func TrimArgs(args []Arg) []Arg {
	n := len(args)
	for n > 0 && args[n-1].kind == KindNone {
		n--
	}
	return args[:n]
}
