package collector

import (
	"context"
	"fmt"

	"BuyOrWait/internal/model"

	"github.com/xuri/excelize/v2"
)

// ExcelFetcher reads the price table from an .xlsx workbook.
type ExcelFetcher struct {
	Path  string
	Sheet string // first sheet when empty
}

// NewExcelFetcher creates a fetcher for one sheet of a workbook.
func NewExcelFetcher(path, sheet string) *ExcelFetcher {
	return &ExcelFetcher{Path: path, Sheet: sheet}
}

func (f *ExcelFetcher) Name() string { return "xlsx:" + f.Path }

func (f *ExcelFetcher) FetchObservations(_ context.Context) ([]model.PriceObservation, error) {
	wb, err := excelize.OpenFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer wb.Close()

	sheet := f.Sheet
	if sheet == "" {
		sheet = wb.GetSheetName(0)
	}
	// raw cell values so that dates come through as serials or their stored text
	rows, err := wb.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("read sheet %q: no rows", sheet)
	}
	return parseRecords(rows[0], rows[1:])
}
