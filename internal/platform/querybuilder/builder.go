// Package querybuilder renders the few Postgres statements the archive
// mirror issues, with positional $n placeholders.
package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxParams is the Postgres limit on bind parameters per statement.
const MaxParams = 65535

// Condition is one ANDed term of a WHERE clause.
type Condition struct {
	column string
	value  any
}

func Eq(column string, value any) Condition {
	return Condition{column: column, value: value}
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("select columns are required")
	}
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("select table is required")
	}

	var buf strings.Builder
	buf.WriteString("SELECT ")
	buf.WriteString(strings.Join(b.columns, ", "))
	buf.WriteString(" FROM ")
	buf.WriteString(b.table)

	args := make([]any, 0, len(b.where))
	for i, c := range b.where {
		if strings.TrimSpace(c.column) == "" {
			return "", nil, fmt.Errorf("where condition %d has no column", i)
		}
		if i == 0 {
			buf.WriteString(" WHERE ")
		} else {
			buf.WriteString(" AND ")
		}
		args = append(args, c.value)
		buf.WriteString(c.column)
		buf.WriteString(" = ")
		buf.WriteString(placeholder(len(args)))
	}
	return buf.String(), args, nil
}

// InsertModels builds one multi-row INSERT from db-tagged structs. suffix is
// appended verbatim, e.g. an ON CONFLICT clause.
func InsertModels[T any](table string, models []T, suffix string) (string, []any, error) {
	if strings.TrimSpace(table) == "" {
		return "", nil, fmt.Errorf("insert table is required")
	}
	if len(models) == 0 {
		return "", nil, fmt.Errorf("insert models are required")
	}
	p, err := planFor[T]()
	if err != nil {
		return "", nil, err
	}
	if n := len(models) * len(p.columns); n > MaxParams {
		return "", nil, fmt.Errorf("insert into %s needs %d parameters, limit is %d", table, n, MaxParams)
	}

	var buf strings.Builder
	buf.WriteString("INSERT INTO ")
	buf.WriteString(table)
	buf.WriteString(" (")
	buf.WriteString(strings.Join(p.columns, ", "))
	buf.WriteString(") VALUES ")

	args := make([]any, 0, len(models)*len(p.columns))
	for i := range models {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteByte('(')
		for j, v := range p.values(&models[i]) {
			if j > 0 {
				buf.WriteString(", ")
			}
			args = append(args, v)
			buf.WriteString(placeholder(len(args)))
		}
		buf.WriteByte(')')
	}
	if suffix = strings.TrimSpace(suffix); suffix != "" {
		buf.WriteByte(' ')
		buf.WriteString(suffix)
	}
	return buf.String(), args, nil
}

func placeholder(i int) string {
	return "$" + strconv.Itoa(i)
}
