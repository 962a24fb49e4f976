package service

import (
	"context"
	"errors"
	"time"

	"sla-dashboard/internal/model"
)

var ErrNoData = errors.New("no data found for selected date")

// Store is the read side of the upstream SLA table.
type Store interface {
	DailySummary(ctx context.Context, date time.Time) (*model.DailySummary, error)
	ZeroBLPMeters(ctx context.Context, date time.Time) ([]model.ZeroBLPMeter, error)
	ZeroDLPMeters(ctx context.Context, date time.Time) ([]model.ZeroDLPMeter, error)
	Trend(ctx context.Context, rng model.DateRange) ([]model.TrendPoint, error)
}

type SLAService struct {
	store     Store
	trendDays int
	maxRange  int
}

func NewSLAService(store Store, trendDays, maxRange int) *SLAService {
	return &SLAService{
		store:     store,
		trendDays: trendDays,
		maxRange:  maxRange,
	}
}

func (s *SLAService) GetDailySummary(ctx context.Context, date time.Time) (*model.DailySummary, error) {
	summary, err := s.store.DailySummary(ctx, date)
	if err != nil {
		return nil, err
	}
	if summary == nil {
		return nil, ErrNoData
	}
	return summary, nil
}

func (s *SLAService) GetZeroBLPMeters(ctx context.Context, date time.Time) ([]model.ZeroBLPMeter, error) {
	return s.store.ZeroBLPMeters(ctx, date)
}

func (s *SLAService) GetZeroDLPMeters(ctx context.Context, date time.Time) ([]model.ZeroDLPMeter, error) {
	return s.store.ZeroDLPMeters(ctx, date)
}

// GetTrend normalises rng around date before querying and returns the
// range actually used.
func (s *SLAService) GetTrend(ctx context.Context, date time.Time, rng model.DateRange) ([]model.TrendPoint, model.DateRange, error) {
	normalized := s.TrendRange(date, rng)
	points, err := s.store.Trend(ctx, normalized)
	if err != nil {
		return nil, normalized, err
	}
	return points, normalized, nil
}

func (s *SLAService) TrendRange(date time.Time, rng model.DateRange) model.DateRange {
	return model.TrendRange(date, rng, s.trendDays, s.maxRange)
}

// LoadDashboard performs the reads of one render pass. When the date has no
// summary nothing else is read. Only the requested drill-down is read.
func (s *SLAService) LoadDashboard(ctx context.Context, query model.DashboardQuery) (model.DashboardSnapshot, error) {
	query.Trend = s.TrendRange(query.Date, query.Trend)
	snapshot := model.DashboardSnapshot{Query: query}

	summary, err := s.store.DailySummary(ctx, query.Date)
	if err != nil {
		return snapshot, err
	}
	if summary == nil {
		return snapshot, nil
	}
	snapshot.Summary = summary

	snapshot.Trend, err = s.store.Trend(ctx, query.Trend)
	if err != nil {
		return snapshot, err
	}

	switch query.Drill {
	case model.DrillBLP:
		snapshot.ZeroBLP, err = s.store.ZeroBLPMeters(ctx, query.Date)
	case model.DrillDLP:
		snapshot.ZeroDLP, err = s.store.ZeroDLPMeters(ctx, query.Date)
	}
	if err != nil {
		return snapshot, err
	}

	return snapshot, nil
}
