package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// plan holds the db-tagged fields of one struct type in declaration order.
type plan struct {
	columns []string
	fields  []int
}

var plans sync.Map // reflect.Type -> *plan

// Columns lists the db-tagged columns of a struct type in field order.
func Columns(model any) ([]string, error) {
	t := reflect.TypeOf(model)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	p, err := planOf(t)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), p.columns...), nil
}

func planFor[T any]() (*plan, error) {
	return planOf(reflect.TypeFor[T]())
}

func planOf(t reflect.Type) (*plan, error) {
	if t == nil || t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("model must be struct, got %v", t)
	}
	if cached, ok := plans.Load(t); ok {
		return cached.(*plan), nil
	}

	p := &plan{}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		col, _, _ := strings.Cut(field.Tag.Get("db"), ",")
		col = strings.TrimSpace(col)
		if col == "" || col == "-" {
			continue
		}
		p.columns = append(p.columns, col)
		p.fields = append(p.fields, i)
	}
	if len(p.columns) == 0 {
		return nil, fmt.Errorf("model %s has no db columns", t)
	}
	actual, _ := plans.LoadOrStore(t, p)
	return actual.(*plan), nil
}

func (p *plan) values(model any) []any {
	v := reflect.ValueOf(model).Elem()
	out := make([]any, len(p.fields))
	for i, idx := range p.fields {
		out[i] = v.Field(idx).Interface()
	}
	return out
}
