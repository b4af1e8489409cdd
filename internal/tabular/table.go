// Package tabular reads and writes the pipeline's input/output tables.
// CSV, TSV and XLSX are supported, decided by file extension. Columns
// are addressed by header name or a 1-based #N index; the required
// column being absent is a schema error that names the column.
package tabular

import (
	"fmt"
	"strconv"
	"strings"
)

// Table is a fully loaded spreadsheet: a header row plus data rows.
// Ragged rows are allowed; missing trailing cells read as empty.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Clone deep-copies the table so output assembly never mutates the
// loaded input.
func (t *Table) Clone() *Table {
	out := &Table{
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([][]string, len(t.Rows)),
	}
	for i, row := range t.Rows {
		out.Rows[i] = append([]string(nil), row...)
	}
	return out
}

// Cell returns the trimmed value at the given column index, or the
// empty string when the row is shorter.
func (t *Table) Cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return cleanCell(row[idx])
}

// Resolve maps a column selector to an index. Selectors are either a
// header name (case-insensitive) or "#N" with 1-based N.
func (t *Table) Resolve(selector string) (int, error) {
	trimmed := strings.TrimSpace(selector)
	if trimmed == "" {
		return -1, fmt.Errorf("column selector is required")
	}
	for i, col := range t.Columns {
		if strings.EqualFold(cleanCell(col), trimmed) {
			return i, nil
		}
	}
	if strings.HasPrefix(trimmed, "#") {
		idx, err := parseColumnIndex(trimmed)
		if err != nil {
			return -1, err
		}
		if idx >= len(t.Columns) {
			return -1, fmt.Errorf("column index %s is out of range (%d columns)", trimmed, len(t.Columns))
		}
		return idx, nil
	}
	return -1, fmt.Errorf("column %q not found (available: %s)", selector, strings.Join(t.Columns, ", "))
}

// AppendColumn adds a derived column. Values must align with Rows;
// shorter rows are padded so the new cell lands in the right place.
func (t *Table) AppendColumn(name string, values []string) {
	t.Columns = append(t.Columns, name)
	width := len(t.Columns) - 1
	for i := range t.Rows {
		for len(t.Rows[i]) < width {
			t.Rows[i] = append(t.Rows[i], "")
		}
		value := ""
		if i < len(values) {
			value = values[i]
		}
		t.Rows[i] = append(t.Rows[i], value)
	}
}

func parseColumnIndex(token string) (int, error) {
	trimmed := strings.TrimSpace(strings.TrimPrefix(token, "#"))
	idx, err := strconv.Atoi(trimmed)
	if err != nil {
		return -1, fmt.Errorf("invalid column index %q", token)
	}
	if idx <= 0 {
		return -1, fmt.Errorf("column indices are 1-based: %q", token)
	}
	return idx - 1, nil
}

func cleanCell(v string) string {
	v = strings.TrimSpace(v)
	v = strings.TrimPrefix(v, "\ufeff")
	return v
}
