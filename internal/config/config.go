package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-sql-driver/mysql"
	"github.com/spf13/viper"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

type HTTPConfig struct {
	Host string
	Port int `validate:"min=1,max=65535"`
}

// DBConfig holds the connection parameters of the upstream SLA store.
// DSN, when set, takes precedence over the individual parts.
type DBConfig struct {
	Driver   string `validate:"oneof=mysql postgres"`
	Host     string `validate:"required"`
	User     string `validate:"required"`
	Password string
	Name     string `validate:"required"`
	Port     int    `validate:"min=1,max=65535"`
	DSN      string
}

type AnalyticsConfig struct {
	TrendDays    int `validate:"min=0"`
	MaxRangeDays int `validate:"min=1"`
}

type Config struct {
	Environment string
	HTTP        HTTPConfig
	DB          DBConfig
	Analytics   AnalyticsConfig
}

func Load() (Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("HTTP_HOST", "0.0.0.0")
	v.SetDefault("HTTP_PORT", 8501)
	v.SetDefault("DB_DRIVER", DriverMySQL)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_USER", "root")
	v.SetDefault("DB_PASSWORD", "123456")
	v.SetDefault("DB_NAME", "hes")
	v.SetDefault("DB_PORT", 3306)
	v.SetDefault("ANALYTICS_TREND_DAYS", 3)
	v.SetDefault("ANALYTICS_MAX_RANGE_DAYS", 90)

	v.AutomaticEnv()

	_ = v.ReadInConfig()

	cfg := Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
		DB: DBConfig{
			Driver:   strings.ToLower(strings.TrimSpace(v.GetString("DB_DRIVER"))),
			Host:     v.GetString("DB_HOST"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
			Port:     v.GetInt("DB_PORT"),
			DSN:      v.GetString("DB_DSN"),
		},
		Analytics: AnalyticsConfig{
			TrendDays:    v.GetInt("ANALYTICS_TREND_DAYS"),
			MaxRangeDays: v.GetInt("ANALYTICS_MAX_RANGE_DAYS"),
		},
	}

	if err := validate(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func validate(cfg Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if cfg.DB.Driver == DriverMySQL && cfg.DB.DSN != "" {
		if _, err := mysql.ParseDSN(cfg.DB.DSN); err != nil {
			return fmt.Errorf("invalid config: DB_DSN: %w", err)
		}
	}
	return nil
}

// ConnectionString returns DSN if set, otherwise builds one for the
// configured driver. MySQL DSNs always carry parseTime=true so DATE columns
// scan into time.Time.
func (c DBConfig) ConnectionString() string {
	switch c.Driver {
	case DriverPostgres:
		if c.DSN != "" {
			return c.DSN
		}
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(c.User, c.Password),
			Host:     net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
			Path:     "/" + c.Name,
			RawQuery: "sslmode=disable",
		}
		return u.String()
	default:
		return c.mysqlDSN()
	}
}

func (c DBConfig) mysqlDSN() string {
	cfg := mysql.NewConfig()
	if c.DSN != "" {
		parsed, err := mysql.ParseDSN(c.DSN)
		if err != nil {
			return c.DSN
		}
		cfg = parsed
	} else {
		cfg.User = c.User
		cfg.Passwd = c.Password
		cfg.Net = "tcp"
		cfg.Addr = net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
		cfg.DBName = c.Name
		cfg.Loc = time.Local
	}
	cfg.ParseTime = true
	return cfg.FormatDSN()
}

func (c Config) IsDevelopment() bool {
	return c.Environment == "development"
}
