package rawdata

import "context"

// Source reads scraped tables by key, e.g. "raw/all_results_2025-01-05.csv".
// A missing key is reported with an error matching usecase.ErrSourceNotFound.
type Source interface {
	LoadTable(ctx context.Context, key string) (Table, error)
}
