package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/conduit-lang/tdexplorer/internal/explorer/report"
)

// Table renders aligned columns. Cells may span several lines.
type Table struct {
	writer  io.Writer
	headers []string
	rows    [][]string
	noColor bool
}

// TableOptions configures table behavior
type TableOptions struct {
	NoColor bool
}

// NewTable creates a new table with the given headers
func NewTable(w io.Writer, headers []string, opts *TableOptions) *Table {
	t := &Table{writer: w, headers: headers}
	if opts != nil {
		t.noColor = opts.NoColor
	}
	return t
}

// AddRow adds a row to the table
func (t *Table) AddRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

// Render renders the table to the writer
func (t *Table) Render() {
	if len(t.headers) == 0 {
		return
	}

	widths := make([]int, len(t.headers))
	for i, header := range t.headers {
		widths[i] = runewidth.StringWidth(header)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			for _, line := range strings.Split(cell, "\n") {
				widths[i] = max(widths[i], runewidth.StringWidth(line))
			}
		}
	}

	bold := t.color(color.Bold, color.FgCyan)
	gray := t.color(color.FgHiBlack)

	t.line(widths, t.headers, bold)
	separators := make([]string, len(widths))
	for i, width := range widths {
		separators[i] = strings.Repeat("─", width)
	}
	t.line(widths, separators, gray)

	for _, row := range t.rows {
		lines := make([][]string, len(widths))
		height := 1
		for i := range widths {
			if i < len(row) {
				lines[i] = strings.Split(row[i], "\n")
			}
			height = max(height, len(lines[i]))
		}
		for n := 0; n < height; n++ {
			cells := make([]string, len(widths))
			for i := range widths {
				if n < len(lines[i]) {
					cells[i] = lines[i][n]
				}
			}
			t.line(widths, cells, nil)
		}
	}
}

func (t *Table) line(widths []int, cells []string, c *color.Color) {
	last := len(cells) - 1
	for last > 0 && cells[last] == "" {
		last--
	}
	for i := 0; i <= last; i++ {
		cell := cells[i]
		if i < last {
			cell = runewidth.FillRight(cell, widths[i]) + "  "
		}
		if c != nil {
			c.Fprint(t.writer, cell)
		} else {
			fmt.Fprint(t.writer, cell)
		}
	}
	fmt.Fprintln(t.writer)
}

func (t *Table) color(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if t.noColor {
		c.DisableColor()
	}
	return c
}

// ReportOptions configures RenderReport.
type ReportOptions struct {
	NoColor bool
	// ShowLinks appends the target of every link cell.
	ShowLinks bool
}

// RenderReport writes a report as a titled table preceded by its preamble.
func RenderReport(w io.Writer, rep *report.Report, opts ReportOptions) {
	Header(w, rep.Title, opts.NoColor)
	for _, row := range rep.Preamble {
		var b strings.Builder
		for _, cell := range row {
			b.WriteString(cellText(cell, opts))
		}
		fmt.Fprintln(w, b.String())
	}
	if len(rep.Preamble) > 0 {
		fmt.Fprintln(w)
	}

	if len(rep.Rows) == 0 {
		fmt.Fprintln(w, "Nothing to show.")
		return
	}
	table := NewTable(w, rep.Headers, &TableOptions{NoColor: opts.NoColor})
	for _, row := range rep.Rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = cellText(cell, opts)
		}
		table.AddRow(cells...)
	}
	table.Render()
}

func cellText(c report.Cell, opts ReportOptions) string {
	if c.Kind == report.Link && opts.ShowLinks && c.URL != "" {
		return c.Text + " <" + c.URL + ">"
	}
	return c.Text
}

// Header renders a styled header
func Header(w io.Writer, title string, noColor bool) {
	bold := color.New(color.Bold, color.FgCyan)
	gray := color.New(color.FgHiBlack)
	if noColor {
		bold.DisableColor()
		gray.DisableColor()
	}
	bold.Fprintln(w, title)
	gray.Fprintln(w, strings.Repeat("─", runewidth.StringWidth(title)))
}
