// Package report holds the render-target-agnostic output of the explorer:
// ordered rows of cells plus header labels and an optional preamble.
package report

import (
	"fmt"
	"strings"
)

// CellKind tells a renderer how to present a cell.
type CellKind int

const (
	// Text is plain text.
	Text CellKind = iota
	// Link is a label pointing at a URL.
	Link
	// Dump is a multi-line serialized structure.
	Dump
)

var cellKindNames = [...]string{Text: "text", Link: "link", Dump: "dump"}

// String returns the kind name.
func (k CellKind) String() string {
	if int(k) < len(cellKindNames) {
		return cellKindNames[k]
	}
	return "unknown"
}

// MarshalText encodes the kind by name.
func (k CellKind) MarshalText() ([]byte, error) {
	if int(k) >= len(cellKindNames) {
		return nil, fmt.Errorf("unknown cell kind %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name.
func (k *CellKind) UnmarshalText(b []byte) error {
	for i, name := range cellKindNames {
		if name == string(b) {
			*k = CellKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown cell kind %q", b)
}

// Cell is one unit of output.
type Cell struct {
	Kind CellKind `json:"kind"`
	Text string   `json:"text"`
	URL  string   `json:"url,omitempty"`
	// Title carries the full class name behind a shortened class link.
	Title string `json:"title,omitempty"`
}

// TextCell creates a plain text cell.
func TextCell(text string) Cell { return Cell{Kind: Text, Text: text} }

// LinkCell creates a link cell.
func LinkCell(text, url string) Cell { return Cell{Kind: Link, Text: text, URL: url} }

// DumpCell creates a serialized-structure cell.
func DumpCell(text string) Cell { return Cell{Kind: Dump, Text: text} }

// String returns the cell's text.
func (c Cell) String() string { return c.Text }

// Row is an ordered sequence of cells.
type Row []Cell

// String joins the row's cells into one line of text.
func (r Row) String() string {
	var b strings.Builder
	for _, c := range r {
		b.WriteString(c.Text)
	}
	return b.String()
}

// Report is a complete exploration result.
type Report struct {
	Title    string   `json:"title"`
	Preamble []Row    `json:"preamble,omitempty"`
	Headers  []string `json:"headers"`
	Rows     []Row    `json:"rows"`
}
