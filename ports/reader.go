package ports

import (
	"context"
)

// SampleReaderPort provides raw sample columns from an external data source
// (spreadsheet, CSV, fixtures). The engine never reads files itself.
type SampleReaderPort interface {
	// Columns lists the numeric column names the source exposes.
	Columns(ctx context.Context) ([]string, error)
	// ReadColumn returns the numeric values of one column, blanks and
	// non-numeric cells skipped.
	ReadColumn(ctx context.Context, name string) ([]float64, error)
}
