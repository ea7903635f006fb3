/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package format_test

import (
	"errors"
	"fmt"

	"chainguard.dev/strfmt/format"
)

// ExampleFormat shows both directive styles.
func ExampleFormat() {
	s, err := format.Format("Page {0} of {1}", format.Int(3), format.Int(10))
	if err != nil {
		panic(err)
	}
	fmt.Println(s)

	s, err = format.Format("%s: %d%%", format.String("disk"), format.Int(87))
	if err != nil {
		panic(err)
	}
	fmt.Println(s)

	// Output:
	// Page 3 of 10
	// disk: 87%
}

// ExampleCompile evaluates one program against several argument lists.
func ExampleCompile() {
	p, err := format.Compile(`%s \{%d} = %f`)
	if err != nil {
		panic(err)
	}
	for _, v := range []float64{3, 3.14, 0.5} {
		s, err := p.Eval(format.String("x"), format.Int(1), format.Double(v))
		if err != nil {
			panic(err)
		}
		fmt.Println(s)
	}

	// Output:
	// x {1} = 3
	// x {1} = 3.14
	// x {1} = 0.5
}

// ExampleCompile_coverage shows that every index up to the highest one
// must be used.
func ExampleCompile_coverage() {
	_, err := format.Compile("{0} and {2}")
	fmt.Println(errors.Is(err, format.ErrCoverage))

	// Output:
	// true
}
