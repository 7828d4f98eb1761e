package collector

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"BuyOrWait/internal/model"
)

// CSVFetcher reads the price table from a delimited text file.
type CSVFetcher struct {
	Path string
}

// NewCSVFetcher creates a fetcher for a .csv or .tsv file.
func NewCSVFetcher(path string) *CSVFetcher {
	return &CSVFetcher{Path: path}
}

func (f *CSVFetcher) Name() string { return "csv:" + f.Path }

func (f *CSVFetcher) FetchObservations(_ context.Context) ([]model.PriceObservation, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	if strings.HasSuffix(strings.ToLower(f.Path), ".tsv") {
		reader.Comma = '\t'
	}
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("read csv: %s is empty", f.Path)
	}
	return parseRecords(records[0], records[1:])
}
