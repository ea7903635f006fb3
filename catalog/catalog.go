/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package catalog

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"

	"chainguard.dev/strfmt/format"
	"github.com/chainguard-dev/clog"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrUnknownMessage is returned for names the catalog does not define.
	ErrUnknownMessage = errors.New("unknown message")
	// ErrArgMismatch is matched by load errors where the declared argument
	// kinds do not fit the template.
	ErrArgMismatch = errors.New("declared arguments do not match template")
)

// Catalog is a set of named, compiled templates. It is immutable and safe
// for concurrent use.
type Catalog struct {
	name     string
	entries  map[string]*entry
	counters counters
}

type entry struct {
	msg     Message
	kinds   []format.Kind
	program *format.Program
}

// New compiles every message of f in parallel. Failures do not stop the
// other messages from compiling; they are all reported together.
func New(ctx context.Context, f *File) (*Catalog, error) {
	names := slices.Sorted(maps.Keys(f.Messages))
	entries := make([]*entry, len(names))
	errs := make([]error, len(names))

	var opts []format.CompileOption
	if f.MaxInstructions > 0 {
		opts = append(opts, format.WithMaxInstructions(f.MaxInstructions))
	}

	g := new(errgroup.Group)
	for i, name := range names {
		g.Go(func() error {
			e, err := compileMessage(f.Messages[name], opts)
			if err != nil {
				errs[i] = fmt.Errorf("message %q: %w", name, err)
				return nil
			}
			entries[i] = e
			return nil
		})
	}
	// Errors are collected per message above.
	_ = g.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	c := &Catalog{
		name:     f.Name,
		entries:  make(map[string]*entry, len(names)),
		counters: newCounters(f.Name),
	}
	for i, name := range names {
		c.entries[name] = entries[i]
	}
	clog.FromContext(ctx).With("catalog", f.Name, "messages", len(names)).Info("Loaded catalog")
	return c, nil
}

// Load reads, decodes and compiles the catalog at path.
func Load(ctx context.Context, path string) (*Catalog, error) {
	f, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return New(ctx, f)
}

func compileMessage(msg Message, opts []format.CompileOption) (*entry, error) {
	p, err := format.Compile(msg.Template, opts...)
	if err != nil {
		return nil, err
	}
	e := &entry{msg: msg, program: p}
	if msg.Args == nil {
		return e, nil
	}
	e.kinds = make([]format.Kind, len(msg.Args))
	for i, a := range msg.Args {
		k, ok := format.ParseKind(a)
		if !ok || k == format.KindNone {
			return nil, fmt.Errorf("%w: argument %d has unknown kind %q", ErrArgMismatch, i, a)
		}
		e.kinds[i] = k
	}
	if err := checkKinds(p, e.kinds); err != nil {
		return nil, err
	}
	return e, nil
}

// checkKinds requires one declared kind per argument read by p, each
// accepted by every directive reading that argument.
func checkKinds(p *format.Program, kinds []format.Kind) error {
	if len(kinds) != p.NumArgs() {
		return fmt.Errorf("%w: %d declared, template reads %d", ErrArgMismatch, len(kinds), p.NumArgs())
	}
	for _, in := range p.Insts() {
		if in.Verb == format.VerbLiteral {
			continue
		}
		if k := kinds[in.ArgNo]; !in.Verb.Accepts(k) {
			return fmt.Errorf("%w: argument %d is declared %s but the directive at offset %d takes %s",
				ErrArgMismatch, in.ArgNo, k, in.Offset, in.Verb)
		}
	}
	return nil
}

// Name returns the catalog name.
func (c *Catalog) Name() string { return c.name }

// Names returns the message names in sorted order.
func (c *Catalog) Names() []string {
	return slices.Sorted(maps.Keys(c.entries))
}

// Lookup returns the compiled program of a message.
func (c *Catalog) Lookup(name string) (*format.Program, bool) {
	c.counters.lookups.Inc()
	e, ok := c.entries[name]
	if !ok {
		c.counters.misses.Inc()
		return nil, false
	}
	return e.program, true
}

// Message returns the definition of a message.
func (c *Catalog) Message(name string) (Message, bool) {
	e, ok := c.entries[name]
	if !ok {
		return Message{}, false
	}
	return e.msg, true
}

// Kinds returns the declared argument kinds of a message, or nil when the
// message declares none.
func (c *Catalog) Kinds(name string) []format.Kind {
	if e, ok := c.entries[name]; ok {
		return slices.Clone(e.kinds)
	}
	return nil
}

// Format evaluates the named message against args. Trailing None arguments
// are ignored and at most format.MaxArgs slots are accepted. When the
// message declares its argument kinds, every supplied argument must match
// its declaration, so a positional directive does not take any kind.
// Unlike format.Format, the program is always evaluated, so a message with
// directives needs its arguments.
func (c *Catalog) Format(name string, args ...format.Arg) (string, error) {
	e, ok := c.entries[name]
	c.counters.lookups.Inc()
	if !ok {
		c.counters.misses.Inc()
		return "", fmt.Errorf("%w: %q", ErrUnknownMessage, name)
	}
	s, err := e.format(args)
	if err != nil {
		c.counters.failures.Inc()
		return "", fmt.Errorf("message %q: %w", name, err)
	}
	return s, nil
}

func (e *entry) format(args []format.Arg) (string, error) {
	args, err := format.TrimSlots(args)
	if err != nil {
		return "", err
	}
	for i, a := range args[:min(len(args), len(e.kinds))] {
		if k := e.kinds[i]; !declaredVerb[k].Accepts(a.Kind()) {
			return "", fmt.Errorf("%w: argument %d is %s but is declared %s", format.ErrArgType, i, a.Kind(), k)
		}
	}
	return e.program.Eval(args...)
}

// declaredVerb maps a declared kind to the verb whose conversions it
// allows: float and double are interchangeable, as are string and wstring.
var declaredVerb = map[format.Kind]format.Verb{
	format.KindChar:       format.VerbChar,
	format.KindInt:        format.VerbInt,
	format.KindFloat:      format.VerbFloat,
	format.KindDouble:     format.VerbFloat,
	format.KindString:     format.VerbString,
	format.KindWideString: format.VerbString,
}
