package collector

import (
	"fmt"

	"BuyOrWait/internal/model"
)

// parseRecords converts a header row plus data rows into observations.
// Blank rows are skipped; any row with an unparseable date or price fails the load.
func parseRecords(header []string, rows [][]string) ([]model.PriceObservation, error) {
	idx, err := indexColumns(header)
	if err != nil {
		return nil, err
	}

	obs := make([]model.PriceObservation, 0, len(rows))
	for i, row := range rows {
		line := i + 2 // 1-based, after the header
		if isBlank(row) {
			continue
		}
		if len(row) <= idx.max() {
			return nil, fmt.Errorf("row %d: expected at least %d fields, got %d", line, idx.max()+1, len(row))
		}
		date, err := ParseDate(row[idx.date])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		price, err := parsePrice(row[idx.price])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		obs = append(obs, model.PriceObservation{
			Date:      date,
			Region:    row[idx.region],
			Commodity: row[idx.commodity],
			Price:     price,
		})
	}
	return obs, nil
}

func isBlank(row []string) bool {
	for _, f := range row {
		if f != "" {
			return false
		}
	}
	return true
}
