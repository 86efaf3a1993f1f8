/*
engine.go - The aggregation engine

PURPOSE:
  Engine holds the classification thresholds and exposes the per-entity
  aggregations: Overall, ByBrand, ByStore, ByMethod, and DailyTrends.
  Each takes the fact subset to aggregate plus the dimension slice that
  fixes the output order; entities with zero matching facts still appear
  with zero metrics.

PURITY:
  Methods read the inputs and build new records. Nothing is mutated,
  nothing is cached, nothing depends on the clock.

SEE ALSO:
  - wow.go: WeekOverWeek
  - quality.go: DataQuality and the classifiers
*/
package metrics

import (
	"github.com/meridian/fulfillment-analytics/star"
)

// Engine computes derived metrics over fact subsets. The zero value is
// not usable; construct with NewEngine.
type Engine struct {
	cfg star.Config
}

// NewEngine builds an engine carrying the config's classification
// thresholds. The config is copied; later changes to the caller's value
// do not affect the engine.
func NewEngine(cfg star.Config) *Engine {
	return &Engine{cfg: cfg}
}

// Overall computes the top-line KPI set for a fact subset. An empty
// subset yields all-zero metrics.
func (e *Engine) Overall(facts []star.FulfillmentFact) OverallMetrics {
	r := accumulate(facts, e.cfg.SLABreachThresholdMins)
	return OverallMetrics{
		TotalOrders:        r.orders,
		OnTimeDeliveryRate: round1(r.onTimeRate()),
		AvgLeadTimeMinutes: roundMins(r.avgLeadTime()),
		AvgFillRate:        round1(r.avgFillRate()),
		TotalRevenue:       r.totalRevenue(),
	}
}

// ByBrand computes the overall shape per brand plus the complaint count.
// Output follows the brand dimension order; brands with no matching
// facts appear with zero metrics.
func (e *Engine) ByBrand(facts []star.FulfillmentFact, brands []star.Brand) []BrandMetrics {
	groups := rollupBy(facts, e.cfg.SLABreachThresholdMins, func(f star.FulfillmentFact) star.BrandID {
		return f.BrandID
	})

	out := make([]BrandMetrics, 0, len(brands))
	for _, brand := range brands {
		r := groupOrEmpty(groups, brand.BrandID)
		out = append(out, BrandMetrics{
			Brand:              brand,
			TotalOrders:        r.orders,
			OnTimeDeliveryRate: round1(r.onTimeRate()),
			AvgLeadTimeMinutes: roundMins(r.avgLeadTime()),
			AvgFillRate:        round1(r.avgFillRate()),
			TotalRevenue:       r.totalRevenue(),
			ComplaintsCount:    r.complaints,
		})
	}
	return out
}

// ByStore computes the bottleneck view per store: picking-stage averages,
// SLA exceedances against the configured threshold, and the severity
// classification, with the owning brand's display name joined in.
func (e *Engine) ByStore(facts []star.FulfillmentFact, stores []star.StoreLocation, brands []star.Brand) []StoreMetrics {
	groups := rollupBy(facts, e.cfg.SLABreachThresholdMins, func(f star.FulfillmentFact) star.StoreID {
		return f.StoreID
	})

	brandNames := make(map[star.BrandID]string, len(brands))
	for _, b := range brands {
		brandNames[b.BrandID] = b.BrandName
	}

	out := make([]StoreMetrics, 0, len(stores))
	for _, store := range stores {
		r := groupOrEmpty(groups, store.StoreID)
		// Severity classifies the unrounded average so a store at 100.4
		// averaged minutes does not round its way into a lower tier.
		severity := e.ClassifySeverity(r.avgLeadTime())
		out = append(out, StoreMetrics{
			StoreLocation:          store,
			BrandName:              brandNames[store.BrandID],
			TotalOrders:            r.orders,
			OnTimeDeliveryRate:     round1(r.onTimeRate()),
			AvgLeadTimeMinutes:     roundMins(r.avgLeadTime()),
			AvgPickingDelayMins:    roundMins(r.avgPickingDelay()),
			AvgPickingDurationMins: roundMins(r.avgPickingDuration()),
			AvgFillRate:            round1(r.avgFillRate()),
			OrdersExceeding2HrSLA:  r.slaBreaches,
			SLAExceedanceRate:      round1(r.breachRate()),
			BottleneckSeverity:     severity,
		})
	}
	return out
}

// ByMethod computes the per-method breakdown. OrderShare is each
// method's share of the whole supplied subset.
func (e *Engine) ByMethod(facts []star.FulfillmentFact, methods []star.FulfillmentMethod) []MethodMetrics {
	groups := rollupBy(facts, e.cfg.SLABreachThresholdMins, func(f star.FulfillmentFact) star.MethodID {
		return f.MethodID
	})

	total := len(facts)
	out := make([]MethodMetrics, 0, len(methods))
	for _, method := range methods {
		r := groupOrEmpty(groups, method.MethodID)
		share := 0.0
		if total > 0 {
			share = float64(r.orders) / float64(total) * 100
		}
		out = append(out, MethodMetrics{
			FulfillmentMethod:  method,
			TotalOrders:        r.orders,
			OnTimeDeliveryRate: round1(r.onTimeRate()),
			AvgLeadTimeMinutes: roundMins(r.avgLeadTime()),
			OrderShare:         round1(share),
		})
	}
	return out
}

// DailyTrends computes the per-day series for every record of the time
// window, in window order. Days with zero orders report zero rates and
// averages.
func (e *Engine) DailyTrends(facts []star.FulfillmentFact, window []star.TimeRecord) []DailyTrend {
	groups := rollupBy(facts, e.cfg.SLABreachThresholdMins, func(f star.FulfillmentFact) star.DateKey {
		return f.DateKey
	})

	out := make([]DailyTrend, 0, len(window))
	for _, day := range window {
		r := groupOrEmpty(groups, day.DateKey)
		out = append(out, DailyTrend{
			Date:        day.DateKey,
			DayOfWeek:   day.DayOfWeek,
			IsWeekend:   day.IsWeekend,
			TotalOrders: r.orders,
			OnTimeRate:  round1(r.onTimeRate()),
			AvgLeadTime: roundMins(r.avgLeadTime()),
			AvgFillRate: round1(r.avgFillRate()),
			Revenue:     r.totalRevenue(),
		})
	}
	return out
}

// ClassifySeverity applies the three-tier bottleneck rule to an average
// lead time in minutes.
func (e *Engine) ClassifySeverity(avgLeadMins float64) star.Severity {
	switch {
	case avgLeadMins > e.cfg.SeverityHighMins:
		return star.SeverityHigh
	case avgLeadMins > e.cfg.SeverityMediumMins:
		return star.SeverityMedium
	default:
		return star.SeverityLow
	}
}

// groupOrEmpty fetches a partition's rollup, or an empty one for keys
// with no matching facts.
func groupOrEmpty[K comparable](groups map[K]*rollup, key K) *rollup {
	if r, ok := groups[key]; ok {
		return r
	}
	return &rollup{}
}
