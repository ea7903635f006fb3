/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package report renders compiled format programs as markdown tables, one
// row per instruction, to help debug templates.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"chainguard.dev/strfmt/format"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

var headers = []string{"#", "Offset", "Verb", "Arg", "Text"}

// Numbers are right aligned so offsets line up; the text column keeps its
// spaces since literal runs are shown quoted.
var alignments = []tw.Align{tw.AlignRight, tw.AlignRight, tw.AlignLeft, tw.AlignRight, tw.AlignLeft}

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Header: tw.CellConfig{
				Alignment:  tw.CellAlignment{PerColumn: alignments},
				Formatting: tw.CellFormatting{AutoFormat: tw.Off},
			},
			Row: tw.CellConfig{
				Alignment: tw.CellAlignment{PerColumn: alignments},
			},
			Behavior: tw.Behavior{TrimSpace: tw.Off},
		}),
		tablewriter.WithHeader(headers),
		tablewriter.WithRenderer(renderer.NewBlueprint()),
		tablewriter.WithRendition(tw.Rendition{
			Symbols: tw.NewSymbols(tw.StyleMarkdown),
			Borders: tw.Border{Left: tw.On, Right: tw.On, Top: tw.Off, Bottom: tw.Off},
		}),
		tablewriter.WithRowAutoWrap(tw.WrapNone),
	)
}

// Write renders p to w: the instruction table followed by a summary line.
// Programs that failed to compile render the instructions emitted before
// the failure and the error in the summary.
func Write(w io.Writer, p *format.Program) error {
	table := newTable(w)
	for n, in := range p.Insts() {
		arg, text := "-", "-"
		if in.Verb == format.VerbLiteral {
			text = strconv.Quote(in.Text)
		} else {
			arg = strconv.Itoa(in.ArgNo)
		}
		if err := table.Append([]string{
			strconv.Itoa(n),
			strconv.Itoa(in.Offset),
			in.Verb.String(),
			arg,
			text,
		}); err != nil {
			return fmt.Errorf("appending instruction %d: %w", n, err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("rendering table: %w", err)
	}
	_, err := fmt.Fprintf(w, "\n%s\n", Summary(p))
	return err
}

// String is like Write but returns the report.
func String(p *format.Program) string {
	var sb strings.Builder
	if err := Write(&sb, p); err != nil {
		return fmt.Sprintf("report failed: %v", err)
	}
	return sb.String()
}

// Summary describes capacity use, argument count and status in one line.
func Summary(p *format.Program) string {
	status := "ok"
	if err := p.Err(); err != nil {
		status = "error: " + err.Error()
	}
	return fmt.Sprintf("%d/%d instructions, %d arguments, %s", p.Len(), p.Cap(), p.NumArgs(), status)
}
