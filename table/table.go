// Package table renders column aligned text tables for terminal output.
package table

import (
	"fmt"
	"io"
	"strings"
)

// FormatFunc colorizes a cell after its width has been measured
type FormatFunc func(value string) string

// Column describes one table column
type Column struct {
	Header     string
	BlankValue string     // shown for empty cells (default "-")
	AlignRight bool       // right align, for numeric columns
	FormatFunc FormatFunc // optional colorizer
	MinWidth   int
}

type row struct {
	cells     []string
	separator bool
}

// Table collects rows and writes them with padded columns
type Table struct {
	columns []Column
	rows    []row
	widths  []int
}

// New creates a table with the given columns
func New(cols ...Column) *Table {
	t := &Table{
		columns: cols,
		widths:  make([]int, len(cols)),
	}

	for i := range t.columns {
		if t.columns[i].BlankValue == "" {
			t.columns[i].BlankValue = "-"
		}
		t.widths[i] = max(t.columns[i].MinWidth, VisibleLength(t.columns[i].Header))
	}

	return t
}

// AddRow appends a row. Missing and empty cells get the column's blank
// value; cells beyond the last column are dropped.
func (t *Table) AddRow(data ...string) {
	cells := make([]string, len(t.columns))
	for i := range cells {
		if i < len(data) && data[i] != "" {
			cells[i] = data[i]
		} else {
			cells[i] = t.columns[i].BlankValue
		}
		t.widths[i] = max(t.widths[i], VisibleLength(cells[i]))
	}
	t.rows = append(t.rows, row{cells: cells})
}

// AddSeparator appends a dashed line spanning every column
func (t *Table) AddSeparator() {
	t.rows = append(t.rows, row{separator: true})
}

// Len returns the number of data rows
func (t *Table) Len() int {
	n := 0
	for _, r := range t.rows {
		if !r.separator {
			n++
		}
	}
	return n
}

// Render writes the header, a separator and every row to w
func (t *Table) Render(w io.Writer) error {
	headers := make([]string, len(t.columns))
	for i, col := range t.columns {
		headers[i] = t.pad(i, col.Header, false)
	}
	if err := t.writeLine(w, headers); err != nil {
		return err
	}
	if err := t.writeLine(w, t.separatorCells()); err != nil {
		return err
	}

	for _, r := range t.rows {
		if r.separator {
			if err := t.writeLine(w, t.separatorCells()); err != nil {
				return err
			}
			continue
		}

		formatted := make([]string, len(r.cells))
		for i, val := range r.cells {
			display := t.pad(i, val, t.columns[i].AlignRight)
			if t.columns[i].FormatFunc != nil {
				// Pad first so colors do not disturb alignment
				display = strings.Replace(display, val, t.columns[i].FormatFunc(val), 1)
			}
			formatted[i] = display
		}
		if err := t.writeLine(w, formatted); err != nil {
			return err
		}
	}

	return nil
}

func (t *Table) separatorCells() []string {
	sep := make([]string, len(t.columns))
	for i := range sep {
		sep[i] = strings.Repeat("-", t.widths[i])
	}
	return sep
}

func (t *Table) writeLine(w io.Writer, cells []string) error {
	_, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(cells, " "), " "))
	return err
}

func (t *Table) pad(col int, s string, right bool) string {
	n := t.widths[col] - VisibleLength(s)
	if n <= 0 {
		return s
	}
	if right {
		return strings.Repeat(" ", n) + s
	}
	return s + strings.Repeat(" ", n)
}

// VisibleLength counts the runes of s that are not part of an ANSI SGR sequence
func VisibleLength(s string) int {
	length := 0
	inEscape := false
	for _, r := range s {
		switch {
		case r == '\033':
			inEscape = true
		case inEscape:
			if r == 'm' {
				inEscape = false
			}
		default:
			length++
		}
	}
	return length
}
