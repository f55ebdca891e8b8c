package storage

import (
	"context"
	"fmt"

	"github.com/riskibarqy/matchedge/internal/domain/rawdata"
	"github.com/riskibarqy/matchedge/internal/infrastructure/codec/csvtable"
	"github.com/riskibarqy/matchedge/internal/platform/logging"
	"github.com/riskibarqy/matchedge/internal/usecase"
)

// TableSource reads scraped CSV tables out of a bucket.
type TableSource struct {
	bucket Bucket
	logger *logging.Logger
}

var _ rawdata.Source = (*TableSource)(nil)

func NewTableSource(bucket Bucket, logger *logging.Logger) *TableSource {
	if logger == nil {
		logger = logging.Default()
	}
	return &TableSource{bucket: bucket, logger: logger}
}

func (s *TableSource) LoadTable(ctx context.Context, key string) (rawdata.Table, error) {
	data, err := s.bucket.Get(ctx, key)
	if err != nil {
		if IsNotFound(err) {
			return rawdata.Table{}, fmt.Errorf("%w: %s", usecase.ErrSourceNotFound, key)
		}
		return rawdata.Table{}, fmt.Errorf("read %s: %w", key, err)
	}

	table, err := csvtable.DecodeTable(data)
	if err != nil {
		return rawdata.Table{}, fmt.Errorf("decode %s: %w", key, err)
	}
	s.logger.DebugContext(ctx, "raw table loaded", "key", key, "rows", table.Len(), "columns", len(table.Columns))
	return table, nil
}
