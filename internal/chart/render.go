package chart

import (
	"fmt"
	"io"

	"PriceChart/internal/model"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

const areaColor = "#0171DC"

// RenderHTML writes a standalone step-area chart page for v. Only tick dates
// carry an x-axis label.
func RenderHTML(w io.Writer, v *View) error {
	labels := axisLabels(v.Series, v.Ticks)
	points := make([]opts.LineData, len(v.Series))
	for i, o := range v.Series {
		points[i] = opts.LineData{Name: o.Date.String(), Value: o.Price}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: fmt.Sprintf("%s price history", v.Symbol),
			Width:     "900px",
			Height:    "420px",
			Theme:     types.ThemeWesteros,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    v.Symbol,
			Subtitle: subtitle(v),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "item"}),
		charts.WithXAxisOpts(opts.XAxis{
			AxisLabel: &opts.AxisLabel{Interval: "0"},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Min: 0,
			Max: axisMax(v.PriceAxis),
		}),
	)

	line.SetXAxis(labels).
		AddSeries(v.Symbol, points,
			charts.WithLineChartOpts(opts.LineChart{Step: "end"}),
			charts.WithAreaStyleOpts(opts.AreaStyle{Color: areaColor}),
		)
	if len(v.MovingAverage) > 0 {
		line.AddSeries("moving average", alignMovingAverage(v.Series, v.MovingAverage))
	}

	return line.Render(w)
}

// axisLabels blanks every category except the tick dates.
func axisLabels(s []model.Observation, ticks []model.Tick) []string {
	byDate := make(map[model.Date]string, len(ticks))
	for _, t := range ticks {
		byDate[t.Date] = t.Label
	}
	labels := make([]string, len(s))
	for i, o := range s {
		labels[i] = byDate[o.Date]
	}
	return labels
}

// alignMovingAverage pads the head of the average with "-" so it lines up
// with the price categories.
func alignMovingAverage(s []model.Observation, avg []model.Observation) []opts.LineData {
	out := make([]opts.LineData, 0, len(s))
	pad := len(s) - len(avg)
	for i := 0; i < pad; i++ {
		out = append(out, opts.LineData{Value: "-"})
	}
	for _, o := range avg {
		out = append(out, opts.LineData{Name: o.Date.String(), Value: o.Price})
	}
	return out
}

func axisMax(axis []float64) interface{} {
	if len(axis) == 0 {
		return nil
	}
	return axis[len(axis)-1]
}

func subtitle(v *View) string {
	if len(v.Series) == 0 {
		return ""
	}
	return fmt.Sprintf("%s to %s (%s)", v.Series[0].Date, v.Series[len(v.Series)-1].Date, v.Window)
}
