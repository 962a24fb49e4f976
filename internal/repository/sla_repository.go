package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"sla-dashboard/internal/db"
	"sla-dashboard/internal/model"
)

var (
	// ErrConnection means the store could not be reached or the connection
	// was lost or abandoned before the query completed.
	ErrConnection = errors.New("sla store unreachable")
	// ErrQuery means the store rejected the query or its result could not be read.
	ErrQuery = errors.New("sla query failed")
)

const (
	OutcomeOK              = "ok"
	OutcomeConnectionError = "connection_error"
	OutcomeQueryError      = "query_error"
)

// QueryObserver receives the duration and outcome of every query.
type QueryObserver interface {
	ObserveQuery(query, outcome string, elapsed time.Duration)
}

type nopObserver struct{}

func (nopObserver) ObserveQuery(string, string, time.Duration) {}

// SLA percentages are rounded in SQL; NULLIF turns a zero target into NULL.
const (
	summaryQuery = `
		SELECT
			report_date,
			COUNT(DISTINCT meter_no) AS meter_count,
			COUNT(DISTINCT meter_no) * 48 AS target_blp,
			COUNT(DISTINCT meter_no) AS target_dlp,
			COALESCE(SUM(block_7_hrs), 0) AS block_7_received,
			COALESCE(SUM(block_11_hrs), 0) AS block_11_received,
			COALESCE(SUM(block_22_hrs), 0) AS block_22_received,
			COALESCE(SUM(daily_12_hrs), 0) AS daily_12_received,
			COALESCE(SUM(daily_22_hrs), 0) AS daily_22_received,
			ROUND(SUM(block_7_hrs) * 100.0 / NULLIF(COUNT(DISTINCT meter_no) * 48, 0), 2) AS sla_7_blp,
			ROUND(SUM(block_11_hrs) * 100.0 / NULLIF(COUNT(DISTINCT meter_no) * 48, 0), 2) AS sla_11_blp,
			ROUND(SUM(block_22_hrs) * 100.0 / NULLIF(COUNT(DISTINCT meter_no) * 48, 0), 2) AS sla_22_blp,
			ROUND(SUM(daily_12_hrs) * 100.0 / NULLIF(COUNT(DISTINCT meter_no), 0), 2) AS sla_12_dlp,
			ROUND(SUM(daily_22_hrs) * 100.0 / NULLIF(COUNT(DISTINCT meter_no), 0), 2) AS sla_22_dlp,
			SUM(CASE WHEN block_22_hrs = 0 THEN 1 ELSE 0 END) AS zero_blp_meters,
			SUM(CASE WHEN daily_22_hrs = 0 THEN 1 ELSE 0 END) AS zero_dlp_meters
		FROM ` + db.SLATable + `
		WHERE report_date = ?
		GROUP BY report_date`

	zeroBLPQuery = `
		SELECT
			meter_no,
			COALESCE(block_7_hrs, 0) AS block_7_hrs,
			COALESCE(block_11_hrs, 0) AS block_11_hrs,
			block_22_hrs
		FROM ` + db.SLATable + `
		WHERE report_date = ?
		  AND block_22_hrs = 0
		ORDER BY meter_no`

	zeroDLPQuery = `
		SELECT
			meter_no,
			COALESCE(daily_12_hrs, 0) AS daily_12_hrs,
			daily_22_hrs
		FROM ` + db.SLATable + `
		WHERE report_date = ?
		  AND daily_22_hrs = 0
		ORDER BY meter_no`

	trendQuery = `
		SELECT
			report_date,
			ROUND(SUM(block_22_hrs) * 100.0 / NULLIF(COUNT(DISTINCT meter_no) * 48, 0), 2) AS sla_22_blp,
			ROUND(SUM(daily_22_hrs) * 100.0 / NULLIF(COUNT(DISTINCT meter_no), 0), 2) AS sla_22_dlp
		FROM ` + db.SLATable + `
		WHERE report_date BETWEEN ? AND ?
		GROUP BY report_date
		ORDER BY report_date`
)

type SLARepository struct {
	db       *gorm.DB
	observer QueryObserver
}

func NewSLARepository(db *gorm.DB, observer QueryObserver) *SLARepository {
	if observer == nil {
		observer = nopObserver{}
	}
	return &SLARepository{db: db, observer: observer}
}

// DailySummary returns nil without error when the date has no records.
func (r *SLARepository) DailySummary(ctx context.Context, date time.Time) (*model.DailySummary, error) {
	var rows []model.DailySummary
	err := r.run(ctx, "daily_summary", func(tx *gorm.DB) error {
		return tx.Raw(summaryQuery, dateArg(date)).Scan(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (r *SLARepository) ZeroBLPMeters(ctx context.Context, date time.Time) ([]model.ZeroBLPMeter, error) {
	rows := make([]model.ZeroBLPMeter, 0)
	err := r.run(ctx, "zero_blp", func(tx *gorm.DB) error {
		return tx.Raw(zeroBLPQuery, dateArg(date)).Scan(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *SLARepository) ZeroDLPMeters(ctx context.Context, date time.Time) ([]model.ZeroDLPMeter, error) {
	rows := make([]model.ZeroDLPMeter, 0)
	err := r.run(ctx, "zero_dlp", func(tx *gorm.DB) error {
		return tx.Raw(zeroDLPQuery, dateArg(date)).Scan(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Trend returns one point per date that has records in the inclusive range,
// ascending. Dates without records are absent.
func (r *SLARepository) Trend(ctx context.Context, rng model.DateRange) ([]model.TrendPoint, error) {
	rows := make([]model.TrendPoint, 0)
	err := r.run(ctx, "trend", func(tx *gorm.DB) error {
		return tx.Raw(trendQuery, dateArg(rng.From), dateArg(rng.To)).Scan(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// run executes fn on a connection acquired for this call only. The
// connection is released before run returns, whatever fn does.
func (r *SLARepository) run(ctx context.Context, name string, fn func(tx *gorm.DB) error) error {
	started := time.Now()

	var queryErr error
	err := r.db.WithContext(ctx).Connection(func(tx *gorm.DB) error {
		queryErr = fn(tx)
		return queryErr
	})

	outcome := OutcomeOK
	switch {
	case err == nil:
	case queryErr != nil && !isConnectionFailure(queryErr):
		outcome = OutcomeQueryError
		err = fmt.Errorf("%w: %s: %w", ErrQuery, name, queryErr)
	default:
		outcome = OutcomeConnectionError
		err = fmt.Errorf("%w: %s: %w", ErrConnection, name, err)
	}

	r.observer.ObserveQuery(name, outcome, time.Since(started))
	return err
}

// isConnectionFailure reports errors caused by the link to the store rather
// than by the statement, whether they surface before or during the query.
func isConnectionFailure(err error) bool {
	return errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, mysql.ErrInvalidConn) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

func dateArg(date time.Time) string {
	return date.Format(model.DateLayout)
}
