package chart

import (
	"errors"
	"fmt"
	"image/color"
	"io"

	"BuyOrWait/internal/model"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Default image size.
const (
	DefaultWidth  = 10 * vg.Inch
	DefaultHeight = 5 * vg.Inch
)

var (
	historicalColor = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	predictedColor  = color.RGBA{R: 220, G: 38, B: 38, A: 255}
)

// RenderTrend writes a PNG of the historical prices (solid) and the projected
// prices (dashed) against calendar dates.
func RenderTrend(w io.Writer, a *model.Analysis) error {
	return Render(w, a, DefaultWidth, DefaultHeight)
}

// Render is RenderTrend with an explicit image size.
func Render(w io.Writer, a *model.Analysis, width, height vg.Length) error {
	if a == nil || a.Forecast == nil || a.Series.Len() == 0 {
		return errors.New("nothing to plot")
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s price trend in %s", a.Commodity, a.Region)
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = "Date"
	p.Y.Label.Text = "Modal price"
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01-02"}
	p.Add(plotter.NewGrid())

	hist := make(plotter.XYs, a.Series.Len())
	for i, o := range a.Series.Observations {
		hist[i].X = float64(o.Date.Unix())
		hist[i].Y = o.Price
	}
	histLine, err := plotter.NewLine(hist)
	if err != nil {
		return fmt.Errorf("create historical line: %w", err)
	}
	histLine.Color = historicalColor
	histLine.Width = vg.Points(2)

	pred := make(plotter.XYs, a.Forecast.Horizon())
	for i, d := range a.Forecast.FutureDates {
		pred[i].X = float64(d.Unix())
		pred[i].Y = a.Forecast.PredictedPrices[i]
	}
	predLine, err := plotter.NewLine(pred)
	if err != nil {
		return fmt.Errorf("create predicted line: %w", err)
	}
	predLine.Color = predictedColor
	predLine.Width = vg.Points(2)
	predLine.Dashes = []vg.Length{vg.Points(5), vg.Points(5)}

	p.Add(histLine, predLine)
	p.Legend.Add("Historical", histLine)
	p.Legend.Add("Predicted", predLine)
	p.Legend.Top = true

	wt, err := p.WriterTo(width, height, "png")
	if err != nil {
		return fmt.Errorf("create png writer: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return nil
}
