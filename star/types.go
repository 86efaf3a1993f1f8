/*
Package star provides the star-schema core of the fulfillment analytics
engine.

PURPOSE:
  This package contains the dimension tables, the fact table, and the
  generators that produce both. Everything downstream (the metrics engine,
  the API) is a pure read over the data built here.

KEY CONCEPTS IN THIS FILE (types.go):
  - Brand / StoreLocation / FulfillmentMethod / TimeRecord: the four
    dimension tables of the schema
  - FulfillmentFact: one row per order-fulfillment event, the grain of
    every aggregation
  - Typed IDs: BrandID, StoreID, MethodID, OrderID prevent mixing keys
    across dimensions

DESIGN PRINCIPLES:
  1. Immutability: the fact table is append-only during generation and
     read-only forever after
  2. Precision: order values use decimal.Decimal so revenue sums never
     accumulate float error
  3. Type Safety: a StoreID can never be passed where a BrandID is wanted
  4. No hidden state: generators take their inputs (config, RNG) as
     explicit arguments

SEE ALSO:
  - catalog.go: built-in reference data and GenerateDimensions
  - facts.go: the fact-table generator
  - dataset.go: the context object owning one generated dataset
*/
package star

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type BrandID int
type StoreID int
type MethodID int

// OrderID is a monotonically assigned order identifier ("ORD-100001").
type OrderID string

// =============================================================================
// DIMENSION TABLES
// =============================================================================

// Brand is a retail banner operating a set of stores.
type Brand struct {
	BrandID      BrandID `json:"brand_id"`
	BrandName    string  `json:"brand_name"`
	BrandCode    string  `json:"brand_code"`
	Region       string  `json:"region"`
	Headquarters string  `json:"headquarters"`
}

// StoreLocation is a single physical store. BrandID must resolve to an
// existing Brand.
type StoreLocation struct {
	StoreID               StoreID `json:"store_id"`
	StoreName             string  `json:"store_name"`
	BrandID               BrandID `json:"brand_id"`
	City                  string  `json:"city"`
	State                 string  `json:"state"`
	Zip                   string  `json:"zip"`
	District              string  `json:"district"`
	CapacityOrdersPerHour int     `json:"capacity_orders_per_hour"`
}

// FulfillmentMethod describes how an order reaches the customer and the
// SLA it is held to.
type FulfillmentMethod struct {
	MethodID       MethodID `json:"method_id"`
	MethodName     string   `json:"method_name"`
	MethodCode     string   `json:"method_code"`
	SLAHours       float64  `json:"sla_hours"`
	RequiresDriver bool     `json:"requires_driver"`
}

// SLATargetMins is the method's SLA expressed in minutes.
func (m FulfillmentMethod) SLATargetMins() int {
	return int(m.SLAHours * 60)
}

// TimeRecord is one calendar day of the rolling analysis window.
// Records are generated in chronological order; consumers that slice
// "last K days" rely on that ordering.
type TimeRecord struct {
	DateKey    DateKey `json:"date_key"`
	DayOfWeek  string  `json:"day_of_week"`
	WeekNumber int     `json:"week_number"`
	Month      string  `json:"month"`
	Year       int     `json:"year"`
	IsWeekend  bool    `json:"is_weekend"`
	FiscalWeek string  `json:"fiscal_week"`
}

// =============================================================================
// FACT TABLE
// =============================================================================

// FulfillmentFact is one order-fulfillment event.
//
// Invariants (enforced by the generator, relied on by the metrics engine):
//   - TotalLeadTimeMins = PickingStartDelayMins + PickingDurationMins +
//     PackingDurationMins + DeliveryDurationMins
//   - DeliveryDurationMins = 0 when the method does not require a driver
//   - SLATargetMins = method.SLAHours * 60
//   - IsOnTime <=> TotalLeadTimeMins <= SLATargetMins
//   - SLAVarianceMins = SLATargetMins - TotalLeadTimeMins
//   - ItemsFulfilled = ItemsOrdered - ItemsOutOfStock
//   - FillRate = 100 * ItemsFulfilled / ItemsOrdered, 2 decimals, in [0,100]
//   - BrandID equals the owning store's BrandID
type FulfillmentFact struct {
	OrderID  OrderID  `json:"order_id"`
	DateKey  DateKey  `json:"date_key"`
	StoreID  StoreID  `json:"store_id"`
	BrandID  BrandID  `json:"brand_id"`
	MethodID MethodID `json:"method_id"`

	// Timing components (minutes from order placement)
	OrderPlacedHour       int `json:"order_placed_hour"`
	PickingStartDelayMins int `json:"picking_start_delay_mins"`
	PickingDurationMins   int `json:"picking_duration_mins"`
	PackingDurationMins   int `json:"packing_duration_mins"`
	DeliveryDurationMins  int `json:"delivery_duration_mins"`
	TotalLeadTimeMins     int `json:"total_lead_time_mins"`

	// SLA performance
	SLATargetMins   int  `json:"sla_target_mins"`
	IsOnTime        bool `json:"is_on_time"`
	SLAVarianceMins int  `json:"sla_variance_mins"`

	// Order accuracy
	ItemsOrdered     int     `json:"items_ordered"`
	ItemsFulfilled   int     `json:"items_fulfilled"`
	ItemsSubstituted int     `json:"items_substituted"`
	ItemsOutOfStock  int     `json:"items_out_of_stock"`
	FillRate         float64 `json:"fill_rate"`

	// Financial
	OrderValue decimal.Decimal `json:"order_value"`

	// Quality flags
	HasCustomerComplaint bool `json:"has_customer_complaint"`
	RequiresRedelivery   bool `json:"requires_redelivery"`

	// Source-system tracking: the relational system always records the
	// order; the event-log stream occasionally misses it. A false
	// EventLogReceived is a reconciliation discrepancy.
	RelationalTimestamp string `json:"relational_timestamp"`
	EventLogReceived    bool   `json:"event_log_received"`
}

// =============================================================================
// CLASSIFICATION ENUMS
// =============================================================================

// Severity is the three-tier store bottleneck classification derived from
// average lead time.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// IntegrityStatus is the three-tier data-quality classification derived
// from the relational/event-log match rate.
type IntegrityStatus string

const (
	IntegrityHealthy  IntegrityStatus = "healthy"
	IntegrityWarning  IntegrityStatus = "warning"
	IntegrityCritical IntegrityStatus = "critical"
)
