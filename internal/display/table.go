package display

import (
	"strings"
	"unicode/utf8"
)

// Table renders an aligned text table. One row may be marked as the next
// prayer and another as the current window.
type Table struct {
	headers []string
	rows    [][]string
	next    int
	current int
}

// NewTable creates a new table with the given column headers.
func NewTable(headers []string) *Table {
	return &Table{headers: headers, next: -1, current: -1}
}

// AddRow appends a row of values.
func (t *Table) AddRow(values []string) {
	t.rows = append(t.rows, values)
}

// MarkNext highlights row idx (0-based) as the upcoming prayer. -1 clears it.
func (t *Table) MarkNext(idx int) { t.next = idx }

// MarkCurrent highlights row idx (0-based) as the active window. -1 clears it.
func (t *Table) MarkCurrent(idx int) { t.current = idx }

// Render produces the formatted table string with leading indent.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	// Widths are in runes so Arabic labels align.
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if n := utf8.RuneCountInString(cell); i < len(widths) && n > widths[i] {
				widths[i] = n
			}
		}
	}

	var sb strings.Builder
	sb.WriteString("  " + Bold(formatRow(t.headers, widths)) + "\n")

	sep := make([]string, len(widths))
	for i, w := range widths {
		sep[i] = strings.Repeat("─", w)
	}
	sb.WriteString(Dim("  "+strings.Join(sep, "  ")) + "\n")

	for i, row := range t.rows {
		line := formatRow(row, widths)
		switch i {
		case t.next:
			line = Accent(line)
		case t.current:
			line = Current(line)
		}
		sb.WriteString("  " + line + "\n")
	}

	return sb.String()
}

func formatRow(cells []string, widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		parts[i] = pad(cell, w)
	}
	return strings.Join(parts, "  ")
}

// pad right-pads s with spaces to w runes.
func pad(s string, w int) string {
	if n := utf8.RuneCountInString(s); n < w {
		return s + strings.Repeat(" ", w-n)
	}
	return s
}
