package rawdata

import "strings"

// Row maps a header to its raw cell text.
type Row map[string]string

// Value returns the trimmed cell, with ok=false for absent or blank cells.
func (r Row) Value(col string) (string, bool) {
	v := strings.TrimSpace(r[col])
	return v, v != ""
}

// Get returns the trimmed cell or "".
func (r Row) Get(col string) string {
	v, _ := r.Value(col)
	return v
}

// Table is a scraped source as read from disk: an ordered header plus rows.
// Blank cells are missing values.
type Table struct {
	Columns []string
	Rows    []Row
}

func (t Table) Has(col string) bool {
	for _, c := range t.Columns {
		if c == col {
			return true
		}
	}
	return false
}

func (t Table) Len() int {
	return len(t.Rows)
}

// LowerHeaders returns a copy whose column names are trimmed and lowercased.
func (t Table) LowerHeaders() Table {
	rename := make(map[string]string, len(t.Columns))
	out := Table{Columns: make([]string, 0, len(t.Columns)), Rows: make([]Row, 0, len(t.Rows))}
	for _, c := range t.Columns {
		lc := strings.ToLower(strings.TrimSpace(c))
		rename[c] = lc
		out.Columns = append(out.Columns, lc)
	}
	for _, row := range t.Rows {
		next := make(Row, len(row))
		for k, v := range row {
			if lc, ok := rename[k]; ok {
				next[lc] = v
				continue
			}
			next[strings.ToLower(strings.TrimSpace(k))] = v
		}
		out.Rows = append(out.Rows, next)
	}
	return out
}
