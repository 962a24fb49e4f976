package dashboard

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"sla-dashboard/internal/model"
)

func formatCount(n int64) string {
	return humanize.Comma(n)
}

func formatPercent(p *float64) string {
	if p == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f %%", *p)
}

func formatBarPercent(p float64) string {
	return fmt.Sprintf("%.2f%%", p)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(model.DateLayout)
}

func formatAxisDate(t time.Time) string {
	return t.Format("02-Jan")
}
