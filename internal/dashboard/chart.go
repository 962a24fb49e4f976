package dashboard

import (
	"fmt"
	"math"
)

const (
	chartWidth   = 800
	chartHeight  = 320
	marginLeft   = 64.0
	marginRight  = 16.0
	marginTop    = 28.0
	marginBottom = 40.0

	barFill   = 0.6
	yPadding  = 0.1
	tickCount = 5
)

type Bar struct {
	Label      string
	ValueLabel string
	X          float64
	Y          float64
	Width      float64
	Height     float64
	CenterX    float64
	LabelY     float64
}

type Tick struct {
	Y     float64
	Label string
}

// BarChart is the geometry of one SVG bar chart. The y axis is zoomed to
// the series: it spans [min-0.1, max+0.1] and bars grow from its floor.
type BarChart struct {
	Title  string
	YLabel string
	Color  string
	Width  int
	Height int

	PlotLeft   float64
	PlotTop    float64
	PlotRight  float64
	PlotBottom float64

	YMin  float64
	YMax  float64
	Bars  []Bar
	Ticks []Tick
}

// NewBarChart lays out one bar per label. A nil value is drawn as an empty
// bar labelled n/a and does not affect the axis.
func NewBarChart(title, yLabel, color string, labels []string, values []*float64) BarChart {
	chart := BarChart{
		Title:      title,
		YLabel:     yLabel,
		Color:      color,
		Width:      chartWidth,
		Height:     chartHeight,
		PlotLeft:   marginLeft,
		PlotTop:    marginTop,
		PlotRight:  chartWidth - marginRight,
		PlotBottom: chartHeight - marginBottom,
	}
	chart.YMin, chart.YMax = axisBounds(values)

	plotWidth := chart.PlotRight - chart.PlotLeft
	plotHeight := chart.PlotBottom - chart.PlotTop
	span := chart.YMax - chart.YMin

	for i := 0; i < tickCount; i++ {
		value := chart.YMin + span*float64(i)/float64(tickCount-1)
		chart.Ticks = append(chart.Ticks, Tick{
			Y:     chart.PlotBottom - plotHeight*float64(i)/float64(tickCount-1),
			Label: fmt.Sprintf("%.2f", value),
		})
	}

	if len(labels) == 0 {
		return chart
	}

	slot := plotWidth / float64(len(labels))
	width := slot * barFill
	for i, label := range labels {
		x := chart.PlotLeft + slot*float64(i) + (slot-width)/2

		var value *float64
		if i < len(values) {
			value = values[i]
		}

		height := 0.0
		valueLabel := "n/a"
		if value != nil {
			height = clamp((*value-chart.YMin)/span, 0, 1) * plotHeight
			valueLabel = formatBarPercent(*value)
		}
		y := chart.PlotBottom - height

		chart.Bars = append(chart.Bars, Bar{
			Label:      label,
			ValueLabel: valueLabel,
			X:          x,
			Y:          y,
			Width:      width,
			Height:     height,
			CenterX:    x + width/2,
			LabelY:     y - 6,
		})
	}

	return chart
}

func axisBounds(values []*float64) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if v == nil {
			continue
		}
		lo = math.Min(lo, *v)
		hi = math.Max(hi, *v)
	}
	if math.IsInf(lo, 1) {
		return 0, 100
	}
	return lo - yPadding, hi + yPadding
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
