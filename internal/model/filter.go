package model

import "time"

type DrillDown string

const (
	DrillNone DrillDown = ""
	DrillBLP  DrillDown = "blp"
	DrillDLP  DrillDown = "dlp"
)

func ParseDrillDown(raw string) DrillDown {
	switch DrillDown(raw) {
	case DrillBLP:
		return DrillBLP
	case DrillDLP:
		return DrillDLP
	default:
		return DrillNone
	}
}

// DateRange is an inclusive range of calendar dates.
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// TrendRange fills a missing bound relative to the report date (From
// defaults to date minus defaultDays, To to date) and shortens ranges wider
// than maxDays by moving From forward. A reversed range is kept as is and
// selects nothing.
func TrendRange(date time.Time, rng DateRange, defaultDays, maxDays int) DateRange {
	if rng.To.IsZero() {
		rng.To = date
	}
	if rng.From.IsZero() {
		rng.From = date.AddDate(0, 0, -defaultDays)
	}
	if maxDays > 0 && rng.To.Sub(rng.From) > time.Duration(maxDays)*24*time.Hour {
		rng.From = rng.To.AddDate(0, 0, -maxDays)
	}
	return rng
}

// DashboardQuery is what one render pass of the dashboard was asked for.
type DashboardQuery struct {
	Date  time.Time
	Trend DateRange
	Drill DrillDown
}

// DashboardSnapshot holds everything read from the store for one render
// pass. A nil Summary means the date has no records; nothing else is
// fetched in that case.
type DashboardSnapshot struct {
	Query   DashboardQuery
	Summary *DailySummary
	Trend   []TrendPoint
	ZeroBLP []ZeroBLPMeter
	ZeroDLP []ZeroDLPMeter
}

func (s DashboardSnapshot) HasData() bool {
	return s.Summary != nil
}
