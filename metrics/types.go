/*
Package metrics is the aggregation engine of the fulfillment analytics
core.

PURPOSE:
  A family of pure reducer functions that roll a fact table (or a
  caller-filtered subset of it) up into derived metric records: overall,
  per-brand, per-store, per-method, per-day, week-over-week, and
  data-quality/reconciliation metrics.

CORRECTNESS CONTRACT:
  Every method of Engine is total over any fact subset, including the
  empty one. Ill-defined ratios resolve to zero, never NaN and never an
  error. Methods never mutate the facts or the dimensions, and calling
  them twice with the same inputs yields identical output, so results
  are safe to cache by input identity.

KEY CONCEPTS IN THIS FILE (types.go):
  - The derived metric record types, one per aggregation
  - Rounding conventions: rates carry one decimal, averages of minutes
    round to whole minutes, money carries two decimals

SEE ALSO:
  - rollup.go: the shared group-and-reduce primitive
  - engine.go: Overall / ByBrand / ByStore / ByMethod / DailyTrends
  - wow.go: week-over-week comparison
  - quality.go: reconciliation metrics and status classification
*/
package metrics

import (
	"github.com/shopspring/decimal"

	"github.com/meridian/fulfillment-analytics/star"
)

// OverallMetrics is the top-line KPI card set for a fact subset.
type OverallMetrics struct {
	TotalOrders        int             `json:"totalOrders"`
	OnTimeDeliveryRate float64         `json:"onTimeDeliveryRate"` // percent, 1 decimal
	AvgLeadTimeMinutes int             `json:"avgLeadTimeMinutes"`
	AvgFillRate        float64         `json:"avgFillRate"` // percent, 1 decimal
	TotalRevenue       decimal.Decimal `json:"totalRevenue"`
}

// BrandMetrics is the overall shape per brand, plus the complaint count.
type BrandMetrics struct {
	star.Brand
	TotalOrders        int             `json:"totalOrders"`
	OnTimeDeliveryRate float64         `json:"onTimeDeliveryRate"`
	AvgLeadTimeMinutes int             `json:"avgLeadTimeMinutes"`
	AvgFillRate        float64         `json:"avgFillRate"`
	TotalRevenue       decimal.Decimal `json:"totalRevenue"`
	ComplaintsCount    int             `json:"complaintsCount"`
}

// StoreMetrics is the per-store bottleneck view.
type StoreMetrics struct {
	star.StoreLocation
	BrandName              string        `json:"brand_name"`
	TotalOrders            int           `json:"totalOrders"`
	OnTimeDeliveryRate     float64       `json:"onTimeDeliveryRate"`
	AvgLeadTimeMinutes     int           `json:"avgLeadTimeMinutes"`
	AvgPickingDelayMins    int           `json:"avgPickingDelayMins"`
	AvgPickingDurationMins int           `json:"avgPickingDurationMins"`
	AvgFillRate            float64       `json:"avgFillRate"`
	OrdersExceeding2HrSLA  int           `json:"ordersExceeding2HrSLA"`
	SLAExceedanceRate      float64       `json:"slaExceedanceRate"`
	BottleneckSeverity     star.Severity `json:"bottleneckSeverity"`
}

// MethodMetrics is the per-fulfillment-method breakdown.
type MethodMetrics struct {
	star.FulfillmentMethod
	TotalOrders        int     `json:"totalOrders"`
	OnTimeDeliveryRate float64 `json:"onTimeDeliveryRate"`
	AvgLeadTimeMinutes int     `json:"avgLeadTimeMinutes"`
	OrderShare         float64 `json:"orderShare"` // percent of the whole subset, 1 decimal
}

// DailyTrend is one day of the trend chart series.
type DailyTrend struct {
	Date        star.DateKey    `json:"date"`
	DayOfWeek   string          `json:"dayOfWeek"`
	IsWeekend   bool            `json:"isWeekend"`
	TotalOrders int             `json:"totalOrders"`
	OnTimeRate  float64         `json:"onTimeRate"`
	AvgLeadTime int             `json:"avgLeadTime"`
	AvgFillRate float64         `json:"avgFillRate"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// WoWMetrics compares the trailing 7-day window against the 7 days
// immediately preceding it.
type WoWMetrics struct {
	CurrentWeekOrders  int     `json:"currentWeekOrders"`
	PrevWeekOrders     int     `json:"prevWeekOrders"`
	OrdersGrowth       float64 `json:"ordersGrowth"` // percent change, 1 decimal
	CurrentOnTimeRate  float64 `json:"currentOnTimeRate"`
	PrevOnTimeRate     float64 `json:"prevOnTimeRate"`
	OnTimeChange       float64 `json:"onTimeChange"` // percentage points, 1 decimal
	CurrentAvgLeadTime int     `json:"currentAvgLeadTime"`
	PrevAvgLeadTime    int     `json:"prevAvgLeadTime"`
	LeadTimeChange     int     `json:"leadTimeChange"` // minutes
}

// DailyQuality is one day of the reconciliation breakdown.
type DailyQuality struct {
	Date          star.DateKey         `json:"date"`
	Discrepancies int                  `json:"discrepancies"`
	Total         int                  `json:"total"`
	MatchRate     float64              `json:"matchRate"` // percent, 2 decimals
	Status        star.IntegrityStatus `json:"status"`
}

// DataQualityMetrics reconciles the relational source against the
// event-log stream.
type DataQualityMetrics struct {
	TotalRecords        int                  `json:"totalRecords"`
	RecordsWithEventLog int                  `json:"recordsWithEventLog"`
	MatchRate           float64              `json:"matchRate"` // percent, 2 decimals
	TotalDiscrepancies  int                  `json:"totalDiscrepancies"`
	DiscrepanciesByDate []DailyQuality       `json:"discrepanciesByDate"`
	DataIntegrityStatus star.IntegrityStatus `json:"dataIntegrityStatus"`
}
