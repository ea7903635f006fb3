/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package format

// This file contains helpers that panic on error, for package-level
// variables and templates known to be valid when the program is written.

// Must wraps a call returning (string, error) and panics if the error is
// non-nil:
//
//	var title = format.Must(format.Format("%s v%d", format.String(name), format.Int(2)))
func Must(s string, err error) string {
	if err != nil {
		panic(err)
	}
	return s
}

// MustCompile is like Compile but panics on error.
func MustCompile(template string, opts ...CompileOption) *Program {
	p, err := Compile(template, opts...)
	if err != nil {
		panic(err)
	}
	return p
}

// MustFormat is like Format but panics on error.
func MustFormat(template string, args ...Arg) string {
	return Must(Format(template, args...))
}
