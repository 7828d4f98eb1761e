package collector

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Column names of the source table.
const (
	ColumnDate      = "Arrival_Date"
	ColumnRegion    = "State"
	ColumnCommodity = "Commodity"
	ColumnPrice     = "Modal_Price"
)

// dateLayouts are tried in order; month-first before day-first for slash dates.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"01-02-06",
	"1/2/06",
	"02-Jan-2006",
	"02 Jan 2006",
	"Jan 2, 2006",
}

type columnIndex struct {
	date, region, commodity, price int
}

func indexColumns(header []string) (columnIndex, error) {
	idx := columnIndex{-1, -1, -1, -1}
	for i, h := range header {
		switch strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")) {
		case ColumnDate:
			idx.date = i
		case ColumnRegion:
			idx.region = i
		case ColumnCommodity:
			idx.commodity = i
		case ColumnPrice:
			idx.price = i
		}
	}
	var missing []string
	if idx.date < 0 {
		missing = append(missing, ColumnDate)
	}
	if idx.region < 0 {
		missing = append(missing, ColumnRegion)
	}
	if idx.commodity < 0 {
		missing = append(missing, ColumnCommodity)
	}
	if idx.price < 0 {
		missing = append(missing, ColumnPrice)
	}
	if len(missing) > 0 {
		return idx, fmt.Errorf("missing columns: %s", strings.Join(missing, ", "))
	}
	return idx, nil
}

func (c columnIndex) max() int {
	m := c.date
	for _, v := range []int{c.region, c.commodity, c.price} {
		if v > m {
			m = v
		}
	}
	return m
}

// ParseDate parses a calendar date in any of the supported layouts, including
// Excel serial day numbers, and truncates it to midnight UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return truncateDay(t), nil
		}
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 0 {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err == nil {
			return truncateDay(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func parsePrice(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid price %q", s)
	}
	return v, nil
}
