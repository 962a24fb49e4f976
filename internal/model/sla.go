package model

import "time"

const (
	// BlocksPerMeterDay is the number of 30-minute BLP blocks expected per meter per day.
	BlocksPerMeterDay = 48

	// DateLayout is the wire format of calendar dates in query parameters and SQL arguments.
	DateLayout = "2006-01-02"
)

// DailySummary aggregates every meter record of one report date.
// SLA percentages are nil when the target is zero.
type DailySummary struct {
	ReportDate time.Time `json:"report_date" gorm:"column:report_date"`
	MeterCount int64     `json:"meter_count" gorm:"column:meter_count"`

	TargetBLP int64 `json:"target_blp_received" gorm:"column:target_blp"`
	TargetDLP int64 `json:"target_dlp_received" gorm:"column:target_dlp"`

	Block7Received  int64 `json:"total_block_7hrs_received" gorm:"column:block_7_received"`
	Block11Received int64 `json:"total_block_11hrs_received" gorm:"column:block_11_received"`
	Block22Received int64 `json:"total_block_22hrs_received" gorm:"column:block_22_received"`
	Daily12Received int64 `json:"total_dlp_12hrs_received" gorm:"column:daily_12_received"`
	Daily22Received int64 `json:"total_dlp_22hrs_received" gorm:"column:daily_22_received"`

	SLA7BLP  *float64 `json:"sla_7hrs_blp" gorm:"column:sla_7_blp"`
	SLA11BLP *float64 `json:"sla_11hrs_blp" gorm:"column:sla_11_blp"`
	SLA22BLP *float64 `json:"sla_22hrs_blp" gorm:"column:sla_22_blp"`
	SLA12DLP *float64 `json:"sla_12hrs_dlp" gorm:"column:sla_12_dlp"`
	SLA22DLP *float64 `json:"sla_22hrs_dlp" gorm:"column:sla_22_dlp"`

	ZeroBLPMeters int64 `json:"zero_22hrs_blp_meter_count" gorm:"column:zero_blp_meters"`
	ZeroDLPMeters int64 `json:"zero_22hrs_dlp_meter_count" gorm:"column:zero_dlp_meters"`
}

// ZeroBLPMeter is a meter that delivered no BLP block within 22 hours.
type ZeroBLPMeter struct {
	MeterNo string `json:"meter_no" gorm:"column:meter_no"`
	Block7  int64  `json:"block_7_hrs" gorm:"column:block_7_hrs"`
	Block11 int64  `json:"block_11_hrs" gorm:"column:block_11_hrs"`
	Block22 int64  `json:"block_22_hrs" gorm:"column:block_22_hrs"`
}

// ZeroDLPMeter is a meter that delivered no DLP within 22 hours.
type ZeroDLPMeter struct {
	MeterNo string `json:"meter_no" gorm:"column:meter_no"`
	Daily12 int64  `json:"daily_12_hrs" gorm:"column:daily_12_hrs"`
	Daily22 int64  `json:"daily_22_hrs" gorm:"column:daily_22_hrs"`
}

type TrendPoint struct {
	ReportDate time.Time `json:"report_date" gorm:"column:report_date"`
	SLA22BLP   *float64  `json:"sla_22hrs_blp" gorm:"column:sla_22_blp"`
	SLA22DLP   *float64  `json:"sla_22hrs_dlp" gorm:"column:sla_22_dlp"`
}

type SLAStatus string

const (
	StatusGreen   SLAStatus = "green"
	StatusYellow  SLAStatus = "yellow"
	StatusRed     SLAStatus = "red"
	StatusUnknown SLAStatus = "unknown"
)

// StatusFor classifies an SLA percentage: green from 98, yellow from 95.
func StatusFor(percent *float64) SLAStatus {
	switch {
	case percent == nil:
		return StatusUnknown
	case *percent >= 98:
		return StatusGreen
	case *percent >= 95:
		return StatusYellow
	default:
		return StatusRed
	}
}

func (s SLAStatus) Icon() string {
	switch s {
	case StatusGreen:
		return "🟢"
	case StatusYellow:
		return "🟡"
	case StatusRed:
		return "🔴"
	default:
		return "⚪"
	}
}
