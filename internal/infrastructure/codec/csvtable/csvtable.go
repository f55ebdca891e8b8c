// Package csvtable encodes typed rows as header-first CSV and decodes raw
// scraped CSV into rawdata tables.
//
// Columns come from `csv` struct tags in field order. A tag of the form
// `csv:"prefix,inline"` flattens a nested struct, prefixing its columns.
// Missing values are written as empty cells: nil pointers and empty strings.
package csvtable

import (
	"bytes"
	"encoding/csv"
	"io"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/matchedge/internal/domain/rawdata"
	"github.com/valyala/bytebufferpool"
)

// DateLayout is how dates are written. Decoding also accepts RFC 3339.
const DateLayout = "2006-01-02"

type column struct {
	name  string
	index []int
}

var (
	schemaMu    sync.RWMutex
	schemaCache = map[reflect.Type][]column{}
	timeType    = reflect.TypeOf(time.Time{})
)

// Header returns the column names of T in output order.
func Header[T any]() ([]string, error) {
	cols, err := schemaOf(reflect.TypeOf((*T)(nil)).Elem())
	if err != nil {
		return nil, err
	}
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.name
	}
	return out, nil
}

// Marshal writes a header row followed by one row per element.
func Marshal[T any](rows []T) ([]byte, error) {
	cols, err := schemaOf(reflect.TypeOf((*T)(nil)).Elem())
	if err != nil {
		return nil, err
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	w := csv.NewWriter(buf)
	record := make([]string, len(cols))
	for i, c := range cols {
		record[i] = c.name
	}
	if err := w.Write(record); err != nil {
		return nil, crerr.Wrap(err, "write csv header")
	}

	for i := range rows {
		v := reflect.ValueOf(&rows[i]).Elem()
		for j, c := range cols {
			record[j] = formatCell(v.FieldByIndex(c.index))
		}
		if err := w.Write(record); err != nil {
			return nil, crerr.Wrapf(err, "write csv row %d", i)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, crerr.Wrap(err, "flush csv")
	}
	return append([]byte(nil), buf.B...), nil
}

// Unmarshal reads rows written by Marshal. Columns are matched by name, so
// column order may differ and unknown columns are ignored.
func Unmarshal[T any](data []byte) ([]T, error) {
	cols, err := schemaOf(reflect.TypeOf((*T)(nil)).Elem())
	if err != nil {
		return nil, err
	}
	byName := make(map[string]column, len(cols))
	for _, c := range cols {
		byName[c.name] = c
	}

	r := newReader(data)
	header, err := r.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, crerr.Wrap(err, "read csv header")
	}
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	var out []T
	for line := 2; ; line++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, crerr.Wrapf(err, "read csv line %d", line)
		}

		var row T
		v := reflect.ValueOf(&row).Elem()
		for i, name := range header {
			c, ok := byName[name]
			if !ok || i >= len(record) {
				continue
			}
			if err := parseCell(v.FieldByIndex(c.index), record[i]); err != nil {
				return nil, crerr.Wrapf(err, "csv line %d column %s", line, name)
			}
		}
		out = append(out, row)
	}
	return out, nil
}

// DecodeTable reads scraped CSV as untyped rows. Short rows leave the
// trailing columns absent.
func DecodeTable(data []byte) (rawdata.Table, error) {
	r := newReader(data)
	header, err := r.Read()
	if err == io.EOF {
		return rawdata.Table{}, nil
	}
	if err != nil {
		return rawdata.Table{}, crerr.Wrap(err, "read csv header")
	}
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	table := rawdata.Table{Columns: append([]string(nil), header...)}
	for line := 2; ; line++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return rawdata.Table{}, crerr.Wrapf(err, "read csv line %d", line)
		}
		row := make(rawdata.Row, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

func newReader(data []byte) *csv.Reader {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	return r
}

func schemaOf(t reflect.Type) ([]column, error) {
	schemaMu.RLock()
	cols, ok := schemaCache[t]
	schemaMu.RUnlock()
	if ok {
		return cols, nil
	}

	if t.Kind() != reflect.Struct {
		return nil, crerr.Newf("csvtable: %s is not a struct", t)
	}
	cols, err := collectColumns(t, "", nil)
	if err != nil {
		return nil, err
	}

	schemaMu.Lock()
	schemaCache[t] = cols
	schemaMu.Unlock()
	return cols, nil
}

func collectColumns(t reflect.Type, prefix string, parent []int) ([]column, error) {
	var cols []column
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		tag, ok := field.Tag.Lookup("csv")
		if !ok || tag == "-" {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")
		index := append(append([]int(nil), parent...), i)

		if opts == "inline" {
			if field.Type.Kind() != reflect.Struct {
				return nil, crerr.Newf("csvtable: inline field %s is not a struct", field.Name)
			}
			nested, err := collectColumns(field.Type, prefix+name, index)
			if err != nil {
				return nil, err
			}
			cols = append(cols, nested...)
			continue
		}
		if !supported(field.Type) {
			return nil, crerr.Newf("csvtable: field %s has unsupported type %s", field.Name, field.Type)
		}
		cols = append(cols, column{name: prefix + name, index: index})
	}
	return cols, nil
}

func supported(t reflect.Type) bool {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == timeType {
		return true
	}
	switch t.Kind() {
	case reflect.String, reflect.Int, reflect.Int64, reflect.Float64, reflect.Bool:
		return true
	default:
		return false
	}
}

func formatCell(v reflect.Value) string {
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}
	if v.Type() == timeType {
		return v.Interface().(time.Time).Format(DateLayout)
	}
	switch v.Kind() {
	case reflect.String:
		return v.String()
	case reflect.Int, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64)
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	default:
		return ""
	}
}

func parseCell(dst reflect.Value, raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		dst.Set(reflect.Zero(dst.Type()))
		return nil
	}

	target := dst
	if dst.Kind() == reflect.Pointer {
		target = reflect.New(dst.Type().Elem()).Elem()
	}

	if target.Type() == timeType {
		t, err := time.Parse(DateLayout, raw)
		if err != nil {
			t, err = time.Parse(time.RFC3339, raw)
		}
		if err != nil {
			return crerr.Wrapf(err, "parse date %q", raw)
		}
		target.Set(reflect.ValueOf(t))
	} else {
		switch target.Kind() {
		case reflect.String:
			target.SetString(raw)
		case reflect.Int, reflect.Int64:
			n, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return crerr.Wrapf(err, "parse int %q", raw)
			}
			target.SetInt(n)
		case reflect.Float64:
			f, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return crerr.Wrapf(err, "parse float %q", raw)
			}
			target.SetFloat(f)
		case reflect.Bool:
			b, err := strconv.ParseBool(raw)
			if err != nil {
				return crerr.Wrapf(err, "parse bool %q", raw)
			}
			target.SetBool(b)
		}
	}

	if dst.Kind() == reflect.Pointer {
		ptr := reflect.New(dst.Type().Elem())
		ptr.Elem().Set(target)
		dst.Set(ptr)
	}
	return nil
}
