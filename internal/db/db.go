package db

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"sla-dashboard/internal/config"
)

const slowQueryThreshold = 500 * time.Millisecond

// New opens the SLA store without dialing it. Connections are established
// per query and closed on release, so an unreachable store surfaces on the
// first query rather than at startup.
func New(cfg config.Config, log zerolog.Logger) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg.DB)
	if err != nil {
		return nil, err
	}
	database, err := Open(dialector, log, cfg.IsDevelopment())
	if err != nil {
		return nil, err
	}

	sqlDB, err := database.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(0)

	return database, nil
}

func Open(dialector gorm.Dialector, log zerolog.Logger, verbose bool) (*gorm.DB, error) {
	database, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 NewGormLogger(log, slowQueryThreshold, verbose),
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialector.Name(), err)
	}
	return database, nil
}

func dialectorFor(cfg config.DBConfig) (gorm.Dialector, error) {
	dsn := cfg.ConnectionString()
	switch cfg.Driver {
	case config.DriverMySQL:
		return mysql.New(mysql.Config{DSN: dsn, SkipInitializeWithVersion: true}), nil
	case config.DriverPostgres:
		return postgres.New(postgres.Config{DSN: dsn}), nil
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.Driver)
	}
}
