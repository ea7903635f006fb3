/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

/*
Package format implements a small format-string engine. A template is
compiled once into a bounded list of instructions and then evaluated
against a list of typed arguments.

# Template Syntax

Two directive styles may be mixed in one template:

	%c  character        (Char)
	%d  decimal integer  (Int)
	%f  floating point   (Float or Double)
	%s  text             (String or WideString)
	%v  any argument, formatted by its own kind
	{n} argument n, formatted by its own kind

Percent directives consume arguments in the order they appear, whatever
the letter: in "%d %s" the %d reads argument 0 and the %s reads argument 1.
Positional directives name their argument and may repeat.

Two escapes exist:

	%%  a literal '%'
	\{  a literal '{'

A backslash that is not followed by '{' is ordinary text.

# Basic Usage

	s, err := format.Format("Page {0} of {1}", format.Int(3), format.Int(10))
	// s == "Page 3 of 10"

	s, err = format.Format("%s: %d%%", format.String("disk"), format.Int(87))
	// s == "disk: 87%"

A template that is used many times can be compiled once:

	p, err := format.Compile("%s has %d items")
	if err != nil {
		// Handle malformed template
	}
	s, err := p.Eval(format.String("cart"), format.Int(2))

# Arguments

Arguments are immutable tagged values built with Char, Int, Float, Double,
String and WideString. The zero Arg, also available as None, marks an
absent argument. Format ignores trailing None arguments, so wrappers with
a fixed number of slots can pass None for the unused ones.

Directives check the kind of the argument they read. There is no
conversion between kinds except that %f accepts Float and Double and %s
accepts String and WideString. Values are rendered by their dynamic kind:
integers in base 10, floating point numbers in the shortest form that
round-trips without trailing zeros (3.0 renders as "3"), WideString
transcoded to UTF-8.

# Compile Checks

Compile reports:
  - malformed positional directives ({}, {x}, unterminated {)
  - unknown percent letters and a trailing %
  - argument indices between 0 and the highest one that no directive uses,
    as in "{0}{2}"
  - templates that need more than MaxInstructions instructions

# Error Handling

Compile errors are *CompileError (matching ErrSyntax or ErrCoverage) or
*LimitExceededError (matching ErrLimitExceeded). Evaluation errors are
*EvalError matching ErrArgRange or ErrArgType. A failed call never
returns partial output.

When Format receives no arguments after trimming it returns the template
unchanged without compiling it, so directives in it are not reported.

# Thread Safety

Compile and Eval share no state between calls. A Program is immutable
after Compile returns and may be evaluated from many goroutines.
*/
package format
