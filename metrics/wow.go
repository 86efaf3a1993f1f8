/*
wow.go - Week-over-week comparison

PURPOSE:
  Compares the trailing 7-day window against the 7 days immediately
  before it and reports the deltas the scorecard renders: order growth,
  on-time change, lead-time change.

WINDOW BOUNDARIES:
  With anchor A, the current week is [A-6, A] and the previous week is
  [A-13, A-7], both inclusive in day terms: the two windows are disjoint,
  each covers exactly seven days, and together they cover [A-13, A]. A
  fact dated A-7 belongs to the previous week.

  Date keys are ISO dates, so the day arithmetic happens once on the
  anchor and membership is plain string comparison.
*/
package metrics

import (
	"github.com/meridian/fulfillment-analytics/star"
)

// WeekOverWeek computes the trailing-week comparison ending at anchor.
// Either window may be empty (short dataset, aggressive filter); its
// rates and the affected deltas then report zero.
func (e *Engine) WeekOverWeek(facts []star.FulfillmentFact, anchor star.DateKey) WoWMetrics {
	currentFrom := anchor.AddDays(-6)
	prevFrom := anchor.AddDays(-13)
	prevTo := anchor.AddDays(-7)

	var current, prev rollup
	for _, f := range facts {
		switch {
		case !f.DateKey.Before(currentFrom) && !f.DateKey.After(anchor):
			current.add(f, e.cfg.SLABreachThresholdMins)
		case !f.DateKey.Before(prevFrom) && !f.DateKey.After(prevTo):
			prev.add(f, e.cfg.SLABreachThresholdMins)
		}
	}

	growth := 0.0
	if prev.orders > 0 {
		growth = float64(current.orders-prev.orders) / float64(prev.orders) * 100
	}

	currentOnTime := current.onTimeRate()
	prevOnTime := prev.onTimeRate()
	currentLead := current.avgLeadTime()
	prevLead := prev.avgLeadTime()

	return WoWMetrics{
		CurrentWeekOrders:  current.orders,
		PrevWeekOrders:     prev.orders,
		OrdersGrowth:       round1(growth),
		CurrentOnTimeRate:  round1(currentOnTime),
		PrevOnTimeRate:     round1(prevOnTime),
		OnTimeChange:       round1(currentOnTime - prevOnTime),
		CurrentAvgLeadTime: roundMins(currentLead),
		PrevAvgLeadTime:    roundMins(prevLead),
		LeadTimeChange:     roundMins(currentLead - prevLead),
	}
}
