/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package format

import (
	"fmt"
	"strings"
)

// MaxArgs is the number of argument slots Format and FormatBorrowed accept.
const MaxArgs = 6

// Format compiles template and evaluates it against args.
//
// Trailing None arguments are ignored, so a caller may always pass MaxArgs
// slots. When no argument remains the template is returned as is, without
// being compiled; directives in it are not checked in that case.
func Format(template string, args ...Arg) (string, error) {
	args, err := TrimSlots(args)
	if err != nil {
		return "", err
	}
	if len(args) == 0 {
		return strings.Clone(template), nil
	}
	p, err := Compile(template)
	if err != nil {
		return "", err
	}
	return p.Eval(args...)
}

// FormatBorrowed is like Format, but when no argument remains it returns
// template itself instead of a copy, and short results are evaluated into
// a buffer local to the call. It suits hot paths that format short-lived
// messages.
func FormatBorrowed(template string, args ...Arg) (string, error) {
	args, err := TrimSlots(args)
	if err != nil {
		return "", err
	}
	if len(args) == 0 {
		return template, nil
	}
	p, err := Compile(template)
	if err != nil {
		return "", err
	}

	var local [256]byte
	buf, err := p.AppendEval(local[:0], args...)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

// TrimSlots is TrimArgs for fixed-arity callers: it fails with
// ErrTooManyArgs when more than MaxArgs slots are passed, None or not.
func TrimSlots(args []Arg) ([]Arg, error) {
	if len(args) > MaxArgs {
		return nil, fmt.Errorf("%w: got %d, at most %d", ErrTooManyArgs, len(args), MaxArgs)
	}
	return TrimArgs(args), nil
}
