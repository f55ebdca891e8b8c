// Package category models ordered categorical values such as tournament
// levels and match rounds.
package category

import "strings"

// Order is an immutable ranking of allowed values, lowest first.
type Order struct {
	values []string
	index  map[string]int
}

func NewOrder(values ...string) Order {
	o := Order{
		values: append([]string(nil), values...),
		index:  make(map[string]int, len(values)),
	}
	for i, v := range o.values {
		if _, ok := o.index[v]; !ok {
			o.index[v] = i
		}
	}
	return o
}

// Values returns the categories lowest first.
func (o Order) Values() []string {
	return append([]string(nil), o.values...)
}

// Normalize maps v onto a known category. A category ending in "-" also
// accepts values that start with it, so "Round Robin - Group A" maps to
// "Round Robin -". Unknown values return ok=false.
func (o Order) Normalize(v string) (string, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", false
	}
	if _, ok := o.index[v]; ok {
		return v, true
	}
	for _, c := range o.values {
		if strings.HasSuffix(c, "-") && strings.HasPrefix(v, c) {
			return c, true
		}
	}
	return "", false
}

// Rank is the position of v, or -1 when v is not a category.
func (o Order) Rank(v string) int {
	if i, ok := o.index[v]; ok {
		return i
	}
	return -1
}

// Less orders a before b. Unknown values sort first, like missing values.
func (o Order) Less(a, b string) bool {
	return o.Rank(a) < o.Rank(b)
}
