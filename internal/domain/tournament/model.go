package tournament

import "time"

// Tournament is one event of a season. (ID, Year) is unique and is the join
// key into match results.
type Tournament struct {
	ID       *int64     `csv:"id" parquet:"id,optional"`
	Name     string     `csv:"name" parquet:"name"`
	Level    string     `csv:"level" parquet:"level"`
	Location string     `csv:"location" parquet:"location"`
	Surface  string     `csv:"surface" parquet:"surface"`
	EndDate  *time.Time `csv:"end_date" parquet:"end_date,optional"`
	URL      string     `csv:"url" parquet:"url"`
	Year     *int       `csv:"year" parquet:"year,optional"`
}

// Key identifies a tournament edition.
type Key struct {
	ID   int64
	Year int
}

// JoinKey returns the (id, year) key, or false when either part is missing.
func (t Tournament) JoinKey() (Key, bool) {
	if t.ID == nil || t.Year == nil {
		return Key{}, false
	}
	return Key{ID: *t.ID, Year: *t.Year}, true
}
