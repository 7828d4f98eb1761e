package server

import (
	"BuyOrWait/internal/assistant"
	"BuyOrWait/internal/model"
)

type pricePoint struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

type analysisView struct {
	State             string       `json:"state"`
	Commodity         string       `json:"commodity"`
	CurrentPrice      float64      `json:"current_price"`
	PredictedPrice    float64      `json:"predicted_price"`
	PercentChange     float64      `json:"percent_change"`
	Action            model.Action `json:"action"`
	ActionLabel       string       `json:"action_label"`
	MinPredictedPrice float64      `json:"min_predicted_price"`
	BestDay           string       `json:"best_day"`
	WaitDays          int          `json:"wait_days"`
	Slope             float64      `json:"slope"`
	Intercept         float64      `json:"intercept"`
	History           []pricePoint `json:"history"`
	Forecast          []pricePoint `json:"forecast"`
}

func newAnalysisView(a *model.Analysis) *analysisView {
	rec := a.Recommendation
	v := &analysisView{
		State:             a.Region,
		Commodity:         a.Commodity,
		CurrentPrice:      rec.CurrentPrice,
		PredictedPrice:    rec.PredictedPrice,
		PercentChange:     rec.PercentChange,
		Action:            rec.Action,
		ActionLabel:       rec.Action.Label(),
		MinPredictedPrice: rec.MinPredictedPrice,
		BestDay:           assistant.FormatDate(rec.BestDay),
		WaitDays:          rec.WaitDays,
		Slope:             a.Forecast.Slope,
		Intercept:         a.Forecast.Intercept,
		History:           make([]pricePoint, 0, a.Series.Len()),
		Forecast:          make([]pricePoint, 0, a.Forecast.Horizon()),
	}
	for _, o := range a.Series.Observations {
		v.History = append(v.History, pricePoint{Date: assistant.FormatDate(o.Date), Price: o.Price})
	}
	for i, d := range a.Forecast.FutureDates {
		v.Forecast = append(v.Forecast, pricePoint{Date: assistant.FormatDate(d), Price: a.Forecast.PredictedPrices[i]})
	}
	return v
}

type messageView struct {
	Speaker model.Speaker `json:"speaker"`
	Text    string        `json:"text"`
}

func newHistoryView(msgs []model.Message) []messageView {
	out := make([]messageView, len(msgs))
	for i, m := range msgs {
		out[i] = messageView{Speaker: m.Speaker, Text: m.Text}
	}
	return out
}
