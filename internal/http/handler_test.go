package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sla-dashboard/internal/dashboard"
	"sla-dashboard/internal/metrics"
	"sla-dashboard/internal/model"
	"sla-dashboard/internal/repository"
	"sla-dashboard/internal/service"
)

var today = time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

type stubStore struct {
	summaries map[string]*model.DailySummary
	zeroBLP   []model.ZeroBLPMeter
	zeroDLP   []model.ZeroDLPMeter
	trend     []model.TrendPoint
	err       error

	summaryDates []string
	trendRanges  []model.DateRange
}

func (s *stubStore) DailySummary(_ context.Context, date time.Time) (*model.DailySummary, error) {
	s.summaryDates = append(s.summaryDates, date.Format(model.DateLayout))
	if s.err != nil {
		return nil, s.err
	}
	return s.summaries[date.Format(model.DateLayout)], nil
}

func (s *stubStore) ZeroBLPMeters(context.Context, time.Time) ([]model.ZeroBLPMeter, error) {
	return s.zeroBLP, s.err
}

func (s *stubStore) ZeroDLPMeters(context.Context, time.Time) ([]model.ZeroDLPMeter, error) {
	return s.zeroDLP, s.err
}

func (s *stubStore) Trend(_ context.Context, rng model.DateRange) ([]model.TrendPoint, error) {
	s.trendRanges = append(s.trendRanges, rng)
	return s.trend, s.err
}

func pct(v float64) *float64 { return &v }

func newTestRouter(t *testing.T, store *stubStore) *gin.Engine {
	t.Helper()
	templates, err := dashboard.Templates()
	require.NoError(t, err)

	handler := NewHandler(service.NewSLAService(store, 3, 90), metrics.New(), zerolog.Nop())
	handler.now = func() time.Time { return today.Add(15 * time.Hour) }
	return NewRouter(handler, templates, zerolog.Nop(), "test")
}

func get(r *gin.Engine, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func populatedStore() *stubStore {
	return &stubStore{
		summaries: map[string]*model.DailySummary{
			"2026-10-19": {
				ReportDate:      today,
				MeterCount:      100,
				TargetBLP:       4800,
				TargetDLP:       100,
				Block22Received: 4700,
				Daily22Received: 100,
				SLA22BLP:        pct(97.92),
				SLA22DLP:        pct(100),
				ZeroBLPMeters:   1,
			},
		},
		zeroBLP: []model.ZeroBLPMeter{{MeterNo: "MTR-0042"}},
		trend: []model.TrendPoint{
			{ReportDate: today.AddDate(0, 0, -3), SLA22BLP: pct(98.1), SLA22DLP: pct(99.5)},
			{ReportDate: today, SLA22BLP: pct(97.92), SLA22DLP: pct(100)},
		},
	}
}

func TestDashboardDefaultsToToday(t *testing.T) {
	store := populatedStore()
	r := newTestRouter(t, store)

	rec := get(r, "/")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"2026-10-19"}, store.summaryDates)
	require.Len(t, store.trendRanges, 1)
	assert.Equal(t, today.AddDate(0, 0, -3), store.trendRanges[0].From)
	assert.Equal(t, today, store.trendRanges[0].To)

	body := rec.Body.String()
	assert.Contains(t, body, "97.92 %")
	assert.Contains(t, body, "🟡")
	assert.Contains(t, body, "16-Oct")
	assert.NotContains(t, body, "MTR-0042")
}

func TestDashboardNoDataHaltsRendering(t *testing.T) {
	store := &stubStore{}
	r := newTestRouter(t, store)

	rec := get(r, "/?date=2026-10-01&drill=blp")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), dashboard.NoDataNotice)
	assert.NotContains(t, rec.Body.String(), "Executive SLA Summary")
	assert.Empty(t, store.trendRanges)
}

func TestDashboardDrillDown(t *testing.T) {
	r := newTestRouter(t, populatedStore())

	rec := get(r, "/?date=2026-10-19&trend_start=2026-10-16&trend_end=2026-10-19&drill=blp")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `id="zero-blp"`)
	assert.Contains(t, rec.Body.String(), "MTR-0042")
}

func TestDashboardInvalidDate(t *testing.T) {
	r := newTestRouter(t, populatedStore())

	rec := get(r, "/?date=19-10-2026")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "expected YYYY-MM-DD")
}

func TestDashboardStoreErrors(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("%w: daily_summary: dial tcp: connection refused", repository.ErrConnection), http.StatusServiceUnavailable},
		{fmt.Errorf("%w: daily_summary: Error 1146", repository.ErrQuery), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		r := newTestRouter(t, &stubStore{err: tc.err})

		rec := get(r, "/?date=2026-10-19")

		assert.Equal(t, tc.status, rec.Code)
		assert.NotContains(t, rec.Body.String(), "Executive SLA Summary")
	}
}

func TestSummaryAPI(t *testing.T) {
	r := newTestRouter(t, populatedStore())

	rec := get(r, "/api/sla/summary?date=2026-10-19")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data model.DailySummary `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(100), body.Data.MeterCount)
	assert.Equal(t, body.Data.MeterCount*model.BlocksPerMeterDay, body.Data.TargetBLP)
	require.NotNil(t, body.Data.SLA22BLP)
	assert.InDelta(t, 97.92, *body.Data.SLA22BLP, 1e-9)

	rec = get(r, "/api/sla/summary?date=2026-10-01")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), service.ErrNoData.Error())
}

func TestZeroBLPAPI(t *testing.T) {
	r := newTestRouter(t, populatedStore())

	rec := get(r, "/api/sla/zero-blp?date=2026-10-19")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data []model.ZeroBLPMeter `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "MTR-0042", body.Data[0].MeterNo)
}

func TestTrendAPI(t *testing.T) {
	store := populatedStore()
	r := newTestRouter(t, store)

	rec := get(r, "/api/sla/trend?from=2026-10-10&to=2026-10-19")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data  []model.TrendPoint `json:"data"`
		Range model.DateRange    `json:"range"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Data, 2)
	assert.True(t, body.Range.From.Equal(time.Date(2026, 10, 10, 0, 0, 0, 0, time.UTC)))

	rec = get(r, "/api/sla/trend?from=bogus")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPIConnectionError(t *testing.T) {
	r := newTestRouter(t, &stubStore{err: fmt.Errorf("%w: zero_dlp: refused", repository.ErrConnection)})

	rec := get(r, "/api/sla/zero-dlp?date=2026-10-19")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), repository.ErrConnection.Error())
	assert.NotContains(t, rec.Body.String(), "refused")
}

func TestHealthAndMetrics(t *testing.T) {
	r := newTestRouter(t, &stubStore{})

	rec := get(r, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)

	get(r, "/")
	rec = get(r, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `sla_dashboard_renders_total{result="no_data"} 1`)
}
