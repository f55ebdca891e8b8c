// Package parquettable encodes typed rows as Parquet using the `parquet`
// struct tags on the domain models.
package parquettable

import (
	"bytes"

	crerr "github.com/cockroachdb/errors"
	"github.com/parquet-go/parquet-go"
	"github.com/valyala/bytebufferpool"
)

// Marshal writes rows as a single Parquet file. An empty slice still yields
// a valid file carrying the schema of T.
func Marshal[T any](rows []T) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := parquet.Write(buf, rows); err != nil {
		return nil, crerr.Wrap(err, "write parquet")
	}
	return append([]byte(nil), buf.B...), nil
}

// Unmarshal reads every row of a Parquet file written by Marshal.
func Unmarshal[T any](data []byte) ([]T, error) {
	if len(data) == 0 {
		return nil, nil
	}
	rows, err := parquet.Read[T](bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, crerr.Wrap(err, "read parquet")
	}
	return rows, nil
}
