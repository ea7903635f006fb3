/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package format

import (
	"errors"
	"fmt"
)

var (
	// ErrSyntax is matched by compile errors caused by a malformed directive.
	ErrSyntax = errors.New("malformed directive")
	// ErrCoverage is matched by compile errors caused by an argument index
	// that no directive references.
	ErrCoverage = errors.New("unreferenced argument index")
	// ErrLimitExceeded is matched by LimitExceededError.
	ErrLimitExceeded = errors.New("instruction limit exceeded")
	// ErrArgRange is matched by evaluation errors where a directive refers
	// past the end of the argument list.
	ErrArgRange = errors.New("argument index out of range")
	// ErrArgType is matched by evaluation errors where the argument kind does
	// not satisfy the directive.
	ErrArgType = errors.New("argument type mismatch")
	// ErrTooManyArgs is returned by Format and FormatBorrowed when more than
	// MaxArgs arguments are given.
	ErrTooManyArgs = errors.New("too many arguments")
)

// CompileError reports a template that cannot be compiled.
type CompileError struct {
	// Template is the source being compiled.
	Template string
	// Offset is the byte offset in Template where the problem was found.
	Offset int
	// Msg describes the problem. It does not include the offset.
	Msg string
	// Err is ErrSyntax or ErrCoverage.
	Err error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compile %q at offset %d: %s", e.Template, e.Offset, e.Msg)
}

func (e *CompileError) Unwrap() error { return e.Err }

// LimitExceededError is returned when a template needs more instructions
// than the program capacity allows.
type LimitExceededError struct {
	Template string
	// Limit is the capacity that was exceeded.
	Limit int
	// Offset is the byte offset of the instruction that did not fit.
	Offset int
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("compile %q at offset %d: more than %d instructions", e.Template, e.Offset, e.Limit)
}

func (e *LimitExceededError) Unwrap() error { return ErrLimitExceeded }

// EvalError reports an argument list that does not fit a compiled program.
type EvalError struct {
	// Inst is the index of the failing instruction.
	Inst int
	// ArgNo is the argument index the instruction refers to.
	ArgNo int
	Verb  Verb
	// Kind is the kind of the supplied argument. It is KindNone when ArgNo
	// is out of range.
	Kind Kind
	// Err is ErrArgRange or ErrArgType.
	Err error
}

func (e *EvalError) Error() string {
	if errors.Is(e.Err, ErrArgRange) {
		return fmt.Sprintf("instruction %d (%s): argument %d not supplied", e.Inst, e.Verb, e.ArgNo)
	}
	return fmt.Sprintf("instruction %d (%s): argument %d has kind %s", e.Inst, e.Verb, e.ArgNo, e.Kind)
}

func (e *EvalError) Unwrap() error { return e.Err }
