package assistant

import (
	"fmt"
	"time"
)

// FormatPrice renders v as a whole number behind the currency symbol,
// truncating any fraction.
func FormatPrice(currency string, v float64) string {
	return fmt.Sprintf("%s%d", currency, int64(v))
}

// FormatPercent renders a percentage with two decimals.
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.2f%%", pct)
}

// FormatDate renders a calendar date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
