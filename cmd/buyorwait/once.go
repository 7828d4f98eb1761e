package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"BuyOrWait/internal/advisor"
	"BuyOrWait/internal/assistant"
	"BuyOrWait/internal/collector"
	"BuyOrWait/internal/forecast"
)

// runOnce prints the recommendation for one selection, and the answer to
// question when given. It returns the process exit code.
func runOnce(w io.Writer, table *collector.Table, currency, state, commodity, question string) int {
	if state == "" || commodity == "" {
		fmt.Fprintln(w, "both -state and -commodity are required")
		return 2
	}
	a, err := advisor.New(table).Analyze(state, commodity)
	if err != nil {
		if errors.Is(err, collector.ErrInsufficientData) {
			fmt.Fprintln(w, "Not enough historical data.")
		} else {
			fmt.Fprintln(w, err)
		}
		return 1
	}

	rec := a.Recommendation
	fmt.Fprintf(w, "%s | %s\n", a.Commodity, a.Region)
	fmt.Fprintf(w, "Current price: %s\n", assistant.FormatPrice(currency, rec.CurrentPrice))
	fmt.Fprintf(w, "Predicted price (%d days): %s\n", forecast.DefaultHorizon, assistant.FormatPrice(currency, rec.PredictedPrice))
	fmt.Fprintf(w, "Recommendation: %s\n", rec.Action.Label())
	fmt.Fprintf(w, "Expected price change: %s\n", assistant.FormatPercent(rec.PercentChange))
	fmt.Fprintf(w, "Lowest expected price: %s on %s (wait %d days)\n",
		assistant.FormatPrice(currency, rec.MinPredictedPrice), assistant.FormatDate(rec.BestDay), rec.WaitDays)

	if question != "" {
		reply := assistant.NewResponder(currency).Reply(question, assistant.Context{
			Recommendation: rec,
			Region:         a.Region,
			Commodity:      a.Commodity,
		})
		fmt.Fprintf(w, "\n%s\n", reply)
	}
	return 0
}

// importSQLite copies every observation from fetcher into a SQLite database.
func importSQLite(ctx context.Context, fetcher collector.Fetcher, path string) error {
	obs, err := fetcher.FetchObservations(ctx)
	if err != nil {
		return fmt.Errorf("fetch from %s: %w", fetcher.Name(), err)
	}
	db, err := collector.NewSQLiteFetcher(path)
	if err != nil {
		return err
	}
	defer db.Close()
	return db.Import(ctx, obs)
}
