/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"chainguard.dev/strfmt/format"
	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

const sampleYAML = `
name: sample
messages:
  page_of:
    template: "Page {0} of {1}"
    args: [int, int]
  disk_usage:
    template: "%s: %d%%"
    args: [str, int]
    description: Disk usage line
  greeting:
    template: "Hello, {0}!"
`

func mustNew(t *testing.T, data string, enc Encoding) *Catalog {
	t.Helper()
	f, err := Parse([]byte(data), enc)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	c, err := New(context.Background(), f)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

func TestCatalog_Format(t *testing.T) {
	c := mustNew(t, sampleYAML, YAML)

	tests := []struct {
		name string
		args []format.Arg
		want string
	}{
		{name: "page_of", args: []format.Arg{format.Int(3), format.Int(10)}, want: "Page 3 of 10"},
		{name: "disk_usage", args: []format.Arg{format.String("disk"), format.Int(87)}, want: "disk: 87%"},
		{name: "greeting", args: []format.Arg{format.WideStringFrom("Ana"), format.None}, want: "Hello, Ana!"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := c.Format(tc.name, tc.args...)
			if err != nil {
				t.Fatalf("Format() error = %v", err)
			}
			if got != tc.want {
				t.Errorf("Format(): got = %q, wanted = %q", got, tc.want)
			}
		})
	}
}

func TestCatalog_Accessors(t *testing.T) {
	c := mustNew(t, sampleYAML, YAML)

	if got := c.Name(); got != "sample" {
		t.Errorf("Name(): got = %q, wanted = %q", got, "sample")
	}
	if diff := cmp.Diff([]string{"disk_usage", "greeting", "page_of"}, c.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]format.Kind{format.KindString, format.KindInt}, c.Kinds("disk_usage")); diff != "" {
		t.Errorf("Kinds() mismatch (-want +got):\n%s", diff)
	}
	if got := c.Kinds("greeting"); got != nil {
		t.Errorf("Kinds(greeting): got = %v, wanted = nil", got)
	}
	msg, ok := c.Message("disk_usage")
	if !ok || msg.Description != "Disk usage line" {
		t.Errorf("Message(disk_usage): got = %+v/%v, wanted description %q", msg, ok, "Disk usage line")
	}
	p, ok := c.Lookup("page_of")
	if !ok || p.NumArgs() != 2 {
		t.Errorf("Lookup(page_of): got = %v, wanted a program reading 2 arguments", ok)
	}
}

func TestCatalog_FormatErrors(t *testing.T) {
	c := mustNew(t, sampleYAML, YAML)

	if _, err := c.Format("missing"); !errors.Is(err, ErrUnknownMessage) {
		t.Errorf("Format(missing) error: got = %v, wanted %v", err, ErrUnknownMessage)
	}
	if _, err := c.Format("page_of", format.Int(1), format.String("2")); !errors.Is(err, format.ErrArgType) {
		t.Errorf("Format(page_of) error: got = %v, wanted %v", err, format.ErrArgType)
	}
	if _, err := c.Format("page_of"); !errors.Is(err, format.ErrArgRange) {
		t.Errorf("Format(page_of) without arguments: got = %v, wanted %v", err, format.ErrArgRange)
	}
}

func TestCatalog_DeclaredKinds(t *testing.T) {
	c, err := New(context.Background(), &File{Name: "declared", Messages: map[string]Message{
		"page_of": {Template: "Page {0} of {1}", Args: []string{"int", "int"}},
		"ratio":   {Template: "{0}", Args: []string{"float"}},
		"label":   {Template: "[{0}]", Args: []string{"string"}},
		"initial": {Template: "{0}.", Args: []string{"char"}},
		"any":     {Template: "<{0}>"},
	}})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	tests := []struct {
		name    string
		message string
		args    []format.Arg
		want    string
		wantErr error
	}{
		{name: "declared kinds", message: "page_of", args: []format.Arg{format.Int(3), format.Int(10)}, want: "Page 3 of 10"},
		{name: "string for int", message: "page_of", args: []format.Arg{format.Int(3), format.String("10")}, wantErr: format.ErrArgType},
		{name: "double for float", message: "ratio", args: []format.Arg{format.Double(0.25)}, want: "0.25"},
		{name: "int for float", message: "ratio", args: []format.Arg{format.Int(1)}, wantErr: format.ErrArgType},
		{name: "wstring for string", message: "label", args: []format.Arg{format.WideStringFrom("ok")}, want: "[ok]"},
		{name: "int for char", message: "initial", args: []format.Arg{format.Int(65)}, wantErr: format.ErrArgType},
		{name: "interior none", message: "page_of", args: []format.Arg{format.None, format.Int(10)}, wantErr: format.ErrArgType},
		{name: "missing argument", message: "page_of", args: []format.Arg{format.Int(3)}, wantErr: format.ErrArgRange},
		{name: "undeclared takes any kind", message: "any", args: []format.Arg{format.String("x")}, want: "<x>"},
		{
			name:    "too many slots",
			message: "any",
			args:    []format.Arg{format.Int(1), format.None, format.None, format.None, format.None, format.None, format.None},
			wantErr: format.ErrTooManyArgs,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := c.Format(tc.message, tc.args...)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("Format() error: got = %v, wanted %v", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Format() error = %v", err)
			}
			if got != tc.want {
				t.Errorf("Format(): got = %q, wanted = %q", got, tc.want)
			}
		})
	}

	if got := testutil.ToFloat64(failureCounter.WithLabelValues("declared")); got != 6 {
		t.Errorf("failures: got = %v, wanted = 6", got)
	}
}

func TestCatalog_Metrics(t *testing.T) {
	c := mustNew(t, strings.Replace(sampleYAML, "name: sample", "name: metrics-test", 1), YAML)
	labels := []string{"metrics-test"}

	_, _ = c.Format("page_of", format.Int(1), format.Int(2))
	_, _ = c.Format("page_of", format.String("x"), format.Int(2))
	_, _ = c.Format("nope")

	if got := testutil.ToFloat64(lookupCounter.WithLabelValues(labels...)); got != 3 {
		t.Errorf("lookups: got = %v, wanted = 3", got)
	}
	if got := testutil.ToFloat64(missCounter.WithLabelValues(labels...)); got != 1 {
		t.Errorf("misses: got = %v, wanted = 1", got)
	}
	if got := testutil.ToFloat64(failureCounter.WithLabelValues(labels...)); got != 1 {
		t.Errorf("failures: got = %v, wanted = 1", got)
	}
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name     string
		messages map[string]Message
		want     []error
		contains []string
	}{{
		name:     "bad template",
		messages: map[string]Message{"bad": {Template: "%q"}},
		want:     []error{format.ErrSyntax},
		contains: []string{`message "bad"`},
	}, {
		name: "every failure is reported",
		messages: map[string]Message{
			"gap":  {Template: "{0}{2}"},
			"good": {Template: "{0}"},
			"tail": {Template: "50%"},
		},
		want:     []error{format.ErrCoverage, format.ErrSyntax},
		contains: []string{`message "gap"`, `message "tail"`},
	}, {
		name:     "too few declared",
		messages: map[string]Message{"m": {Template: "{0} {1}", Args: []string{"int"}}},
		want:     []error{ErrArgMismatch},
		contains: []string{"1 declared, template reads 2"},
	}, {
		name:     "declared kind rejected by directive",
		messages: map[string]Message{"m": {Template: "%d", Args: []string{"string"}}},
		want:     []error{ErrArgMismatch},
		contains: []string{"argument 0 is declared string"},
	}, {
		name:     "unknown kind",
		messages: map[string]Message{"m": {Template: "{0}", Args: []string{"bignum"}}},
		want:     []error{ErrArgMismatch},
	}, {
		name:     "none is not a kind",
		messages: map[string]Message{"m": {Template: "{0}", Args: []string{"none"}}},
		want:     []error{ErrArgMismatch},
	}}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(context.Background(), &File{Name: "errors", Messages: tc.messages})
			if err == nil {
				t.Fatal("New(): got = nil error, wanted error")
			}
			for _, want := range tc.want {
				if !errors.Is(err, want) {
					t.Errorf("error: got = %v, wanted match for %v", err, want)
				}
			}
			for _, s := range tc.contains {
				if !strings.Contains(err.Error(), s) {
					t.Errorf("error %q does not mention %q", err, s)
				}
			}
		})
	}
}

func TestNew_DeclaredWidening(t *testing.T) {
	// Float and String directives accept both of their kinds.
	_, err := New(context.Background(), &File{Name: "widening", Messages: map[string]Message{
		"m": {Template: "%f %s {0}", Args: []string{"double", "wstring"}},
	}})
	if err != nil {
		t.Errorf("New() error = %v", err)
	}
}

func TestNew_MaxInstructions(t *testing.T) {
	_, err := New(context.Background(), &File{
		Name:            "small",
		MaxInstructions: 2,
		Messages:        map[string]Message{"m": {Template: "a%db"}},
	})
	if !errors.Is(err, format.ErrLimitExceeded) {
		t.Errorf("New() error: got = %v, wanted %v", err, format.ErrLimitExceeded)
	}
}

func TestParse(t *testing.T) {
	const sampleJSON = `{
  "name": "json",
  "messages": {
    "count": {"template": "%d files", "args": ["int"]}
  }
}`
	c := mustNew(t, sampleJSON, JSON)
	got, err := c.Format("count", format.Int(4))
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if got != "4 files" {
		t.Errorf("Format(): got = %q, wanted = %q", got, "4 files")
	}

	if _, err := Parse([]byte("name: empty\n"), YAML); err == nil {
		t.Error("Parse() without messages: got = nil error, wanted error")
	}
	if _, err := Parse([]byte("{"), JSON); err == nil {
		t.Error("Parse() of broken JSON: got = nil error, wanted error")
	}
	if _, err := Parse([]byte("messages: [\n"), YAML); err == nil {
		t.Error("Parse() of broken YAML: got = nil error, wanted error")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ui.yml")
	if err := os.WriteFile(path, []byte(strings.Replace(sampleYAML, "name: sample\n", "", 1)), 0o600); err != nil {
		t.Fatal(err)
	}

	c, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := c.Name(); got != "ui" {
		t.Errorf("Name(): got = %q, wanted = %q", got, "ui")
	}

	if _, err := Load(context.Background(), filepath.Join(dir, "ui.toml")); err == nil {
		t.Error("Load() with unsupported extension: got = nil error, wanted error")
	}
	if _, err := Load(context.Background(), filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load() of a missing file: got = nil error, wanted error")
	}
}

func TestEncodingFor(t *testing.T) {
	tests := []struct {
		path    string
		want    Encoding
		wantErr bool
	}{
		{path: "a.yaml", want: YAML},
		{path: "a.YML", want: YAML},
		{path: "dir/a.json", want: JSON},
		{path: "a.txt", wantErr: true},
		{path: "noext", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			got, err := EncodingFor(tc.path)
			if (err != nil) != tc.wantErr {
				t.Fatalf("EncodingFor() error = %v, wantErr %v", err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("EncodingFor(): got = %v, wanted = %v", got, tc.want)
			}
		})
	}
}
