package db

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// SLATable is the upstream table every dashboard query reads.
const SLATable = "sla"

var requiredColumns = []string{
	"report_date",
	"meter_no",
	"block_7_hrs",
	"block_11_hrs",
	"block_22_hrs",
	"daily_12_hrs",
	"daily_22_hrs",
}

// MissingColumns reports which of the columns the dashboard queries are
// absent from table. A missing table reports every column.
func MissingColumns(ctx context.Context, db *gorm.DB, table string) ([]string, error) {
	var columns []string
	err := db.WithContext(ctx).
		Raw(fmt.Sprintf(`SELECT LOWER(column_name) AS column_name
			FROM information_schema.columns
			WHERE table_name = ? AND table_schema = %s`, currentSchema(db)), table).
		Scan(&columns).Error
	if err != nil {
		return nil, fmt.Errorf("inspect %s columns: %w", table, err)
	}

	present := make(map[string]struct{}, len(columns))
	for _, column := range columns {
		present[strings.ToLower(column)] = struct{}{}
	}

	var missing []string
	for _, column := range requiredColumns {
		if _, ok := present[column]; !ok {
			missing = append(missing, column)
		}
	}
	return missing, nil
}

func currentSchema(db *gorm.DB) string {
	if db.Dialector.Name() == "postgres" {
		return "current_schema()"
	}
	return "DATABASE()"
}
