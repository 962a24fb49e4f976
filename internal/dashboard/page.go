// Package dashboard turns the data of one render pass into the SLA page.
// Build is pure; all store access happens before it is called.
package dashboard

import (
	"sla-dashboard/internal/model"
)

const (
	Title        = "SAT METERS SLA"
	Footer       = "SAT METERS SLA | Daily SLA Monitoring"
	NoDataNotice = "No data found for selected date"
	NoTrendNote  = "No SLA data in the selected trend range"
)

type Metric struct {
	Label  string
	Value  string
	Status model.SLAStatus
}

func (m Metric) Icon() string {
	if m.Status == "" {
		return ""
	}
	return m.Status.Icon()
}

type TrendSection struct {
	Notice string
	Charts []BarChart
}

type Page struct {
	Title  string
	Footer string

	SelectedDate string
	TrendStart   string
	TrendEnd     string
	Drill        model.DrillDown

	Notice string
	Error  string

	Executive      []Metric
	TargetVsActual []Metric
	SLAByTime      []Metric
	Trend          TrendSection

	ZeroBLP []model.ZeroBLPMeter
	ZeroDLP []model.ZeroDLPMeter
}

// HasData reports whether the sections after the date selector are shown.
func (p Page) HasData() bool {
	return p.Notice == "" && p.Error == ""
}

func (p Page) ShowZeroBLP() bool {
	return p.Drill == model.DrillBLP
}

func (p Page) ShowZeroDLP() bool {
	return p.Drill == model.DrillDLP
}

func Build(snapshot model.DashboardSnapshot) Page {
	page := newPage(snapshot.Query)

	summary := snapshot.Summary
	if summary == nil {
		page.Notice = NoDataNotice
		return page
	}

	page.Executive = []Metric{
		{Label: "TOTAL METERS", Value: formatCount(summary.MeterCount)},
		{Label: "BLP SLA (22 Hrs)", Value: formatPercent(summary.SLA22BLP), Status: model.StatusFor(summary.SLA22BLP)},
		{Label: "DLP SLA (22 Hrs)", Value: formatPercent(summary.SLA22DLP), Status: model.StatusFor(summary.SLA22DLP)},
		{Label: "ZERO BLP (22 Hrs)", Value: formatCount(summary.ZeroBLPMeters)},
		{Label: "ZERO DLP (22 Hrs)", Value: formatCount(summary.ZeroDLPMeters)},
	}

	page.TargetVsActual = []Metric{
		{Label: "EXPECTED BL BLOCKS", Value: formatCount(summary.TargetBLP)},
		{Label: "RECEIVED BL BLOCKS", Value: formatCount(summary.Block22Received)},
		{Label: "EXPECTED DL", Value: formatCount(summary.TargetDLP)},
		{Label: "RECEIVED DL", Value: formatCount(summary.Daily22Received)},
	}

	page.SLAByTime = []Metric{
		{Label: "BL 7 Hrs", Value: formatPercent(summary.SLA7BLP)},
		{Label: "BL 11 Hrs", Value: formatPercent(summary.SLA11BLP)},
		{Label: "BL 22 Hrs", Value: formatPercent(summary.SLA22BLP)},
		{Label: "DL 12 Hrs", Value: formatPercent(summary.SLA12DLP)},
		{Label: "DL 22 Hrs", Value: formatPercent(summary.SLA22DLP)},
	}

	page.Trend = buildTrend(snapshot.Trend)

	switch page.Drill {
	case model.DrillBLP:
		page.ZeroBLP = snapshot.ZeroBLP
	case model.DrillDLP:
		page.ZeroDLP = snapshot.ZeroDLP
	}

	return page
}

// ErrorPage renders the selectors of query with message in place of every
// data section.
func ErrorPage(query model.DashboardQuery, message string) Page {
	page := newPage(query)
	page.Error = message
	return page
}

func newPage(query model.DashboardQuery) Page {
	return Page{
		Title:        Title,
		Footer:       Footer,
		SelectedDate: formatDate(query.Date),
		TrendStart:   formatDate(query.Trend.From),
		TrendEnd:     formatDate(query.Trend.To),
		Drill:        query.Drill,
	}
}

func buildTrend(points []model.TrendPoint) TrendSection {
	if len(points) == 0 {
		return TrendSection{Notice: NoTrendNote}
	}

	labels := make([]string, 0, len(points))
	blp := make([]*float64, 0, len(points))
	dlp := make([]*float64, 0, len(points))
	for _, point := range points {
		labels = append(labels, formatAxisDate(point.ReportDate))
		blp = append(blp, point.SLA22BLP)
		dlp = append(dlp, point.SLA22DLP)
	}

	return TrendSection{
		Charts: []BarChart{
			NewBarChart("BLP SLA (22 Hrs)", "BLP SLA (%)", "#1f77b4", labels, blp),
			NewBarChart("DLP SLA (22 Hrs)", "DLP SLA (%)", "#7b3fa0", labels, dlp),
		},
	}
}
