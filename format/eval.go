/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package format

// Eval runs the program against args and returns the formatted text.
// Nothing is returned on failure: either the whole output or an error.
// Evaluation failures are not recorded on the program; OK and Err only
// report the outcome of Compile.
func (p *Program) Eval(args ...Arg) (string, error) {
	buf, err := p.AppendEval(make([]byte, 0, p.sizeHint()), args...)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

// AppendEval is like Eval but appends the output to dst and returns the
// extended buffer. On failure dst is returned with its original length.
func (p *Program) AppendEval(dst []byte, args ...Arg) ([]byte, error) {
	if p.err != nil {
		return dst, p.err
	}
	out := dst
	for n, in := range p.insts {
		if in.Verb == VerbLiteral {
			out = append(out, in.Text...)
			continue
		}
		if in.ArgNo >= len(args) {
			return dst, &EvalError{Inst: n, ArgNo: in.ArgNo, Verb: in.Verb, Err: ErrArgRange}
		}
		arg := args[in.ArgNo]
		if !in.Verb.Accepts(arg.kind) {
			return dst, &EvalError{Inst: n, ArgNo: in.ArgNo, Verb: in.Verb, Kind: arg.kind, Err: ErrArgType}
		}
		out = arg.appendTo(out)
	}
	return out, nil
}

// sizeHint is the literal length plus a guess for each directive.
func (p *Program) sizeHint() int {
	n := 0
	for _, in := range p.insts {
		if in.Verb == VerbLiteral {
			n += len(in.Text)
		} else {
			n += 8
		}
	}
	return n
}
