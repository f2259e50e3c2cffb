package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/xuri/excelize/v2"

	"inferkit/domain/core"
	"inferkit/internal"
)

// DataReader reads numeric sample columns from Excel and CSV files
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	logger   *internal.Logger

	loadOnce sync.Once
	loadErr  error
	headers  []string
	columns  map[string][]float64
}

// NewDataReader creates a new data reader that handles both Excel and CSV files
func NewDataReader(filePath string) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &DataReader{filePath: filePath, fileType: fileType, logger: internal.NewDefaultLogger()}
}

// Columns lists the column names found in the header row
func (r *DataReader) Columns(_ context.Context) ([]string, error) {
	if err := r.load(); err != nil {
		return nil, err
	}
	out := make([]string, len(r.headers))
	copy(out, r.headers)
	return out, nil
}

// ReadColumn returns the numeric values of one column. Blank and non-numeric
// cells are skipped, matching how the calculator treats pasted data.
func (r *DataReader) ReadColumn(_ context.Context, name string) ([]float64, error) {
	if err := r.load(); err != nil {
		return nil, err
	}
	values, ok := r.columns[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s in %s", core.ErrColumnNotFound, name, r.filePath)
	}
	out := make([]float64, len(values))
	copy(out, values)
	return out, nil
}

// load reads the file once and caches the parsed columns. Safe for
// concurrent readers; sweeps read many columns at once.
func (r *DataReader) load() error {
	r.loadOnce.Do(func() {
		r.loadErr = r.parse()
	})
	return r.loadErr
}

func (r *DataReader) parse() error {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	var rows [][]string
	var err error
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	default:
		rows, err = r.readExcelRows()
	}
	if err != nil {
		return err
	}
	if len(rows) < 1 {
		return fmt.Errorf("%s has no header row", r.filePath)
	}

	r.headers = nil
	r.columns = make(map[string][]float64)
	for _, header := range rows[0] {
		header = strings.TrimSpace(header)
		if header == "" {
			continue
		}
		r.headers = append(r.headers, header)
		r.columns[header] = nil
	}

	skipped := 0
	for _, row := range rows[1:] {
		for i, header := range r.headers {
			if i >= len(row) {
				continue
			}
			cell := strings.TrimSpace(row[i])
			if cell == "" {
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				skipped++
				continue
			}
			r.columns[header] = append(r.columns[header], v)
		}
	}
	if skipped > 0 {
		r.logger.Warn("[DataReader] Skipped %d non-numeric cells in %s", skipped, r.filePath)
	}
	return nil
}

// readExcelRows reads all rows from the first sheet
func (r *DataReader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("Excel file has no sheets: %s", r.filePath)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	return rows, nil
}

// readCSVRows reads all rows from a CSV file
func (r *DataReader) readCSVRows() ([][]string, error) {
	f, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV file: %w", err)
	}
	return rows, nil
}
