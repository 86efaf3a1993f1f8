/*
rollup.go - The shared group-and-reduce primitive

PURPOSE:
  Every per-entity aggregation (brand, store, method, day) is the same
  operation: partition the facts by a key and reduce each partition into
  sums and counts. This file implements that operation once, as a single
  pass parameterized by a key extractor, instead of four near-duplicate
  reducers.

ZERO-GUARD RULE:
  A rollup with zero orders answers every ratio and average with 0. The
  guard lives here, in one place, so no caller can divide by zero.
*/
package metrics

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/meridian/fulfillment-analytics/star"
)

// rollup accumulates the sums and counts every aggregation derives its
// metrics from.
type rollup struct {
	orders             int
	onTime             int
	leadTimeSum        int
	pickingDelaySum    int
	pickingDurationSum int
	fillRateSum        float64
	revenue            decimal.Decimal
	complaints         int
	slaBreaches        int
	eventLogMisses     int
}

// add folds one fact into the rollup. Lead times strictly above
// breachAfterMins count as SLA exceedances.
func (r *rollup) add(f star.FulfillmentFact, breachAfterMins int) {
	r.orders++
	if f.IsOnTime {
		r.onTime++
	}
	r.leadTimeSum += f.TotalLeadTimeMins
	r.pickingDelaySum += f.PickingStartDelayMins
	r.pickingDurationSum += f.PickingDurationMins
	r.fillRateSum += f.FillRate
	r.revenue = r.revenue.Add(f.OrderValue)
	if f.HasCustomerComplaint {
		r.complaints++
	}
	if f.TotalLeadTimeMins > breachAfterMins {
		r.slaBreaches++
	}
	if !f.EventLogReceived {
		r.eventLogMisses++
	}
}

// Derived values. All are zero for an empty rollup.

func (r *rollup) onTimeRate() float64 {
	if r.orders == 0 {
		return 0
	}
	return float64(r.onTime) / float64(r.orders) * 100
}

func (r *rollup) avgLeadTime() float64 {
	if r.orders == 0 {
		return 0
	}
	return float64(r.leadTimeSum) / float64(r.orders)
}

func (r *rollup) avgPickingDelay() float64 {
	if r.orders == 0 {
		return 0
	}
	return float64(r.pickingDelaySum) / float64(r.orders)
}

func (r *rollup) avgPickingDuration() float64 {
	if r.orders == 0 {
		return 0
	}
	return float64(r.pickingDurationSum) / float64(r.orders)
}

func (r *rollup) avgFillRate() float64 {
	if r.orders == 0 {
		return 0
	}
	return r.fillRateSum / float64(r.orders)
}

func (r *rollup) breachRate() float64 {
	if r.orders == 0 {
		return 0
	}
	return float64(r.slaBreaches) / float64(r.orders) * 100
}

func (r *rollup) totalRevenue() decimal.Decimal {
	return r.revenue.Round(2)
}

// accumulate reduces a whole subset into one rollup.
func accumulate(facts []star.FulfillmentFact, breachAfterMins int) rollup {
	var r rollup
	r.revenue = decimal.Zero
	for _, f := range facts {
		r.add(f, breachAfterMins)
	}
	return r
}

// rollupBy partitions the facts by key and reduces each partition.
// Keys absent from the facts are simply absent from the map; callers
// iterating a dimension table treat a missing key as an empty rollup.
func rollupBy[K comparable](facts []star.FulfillmentFact, breachAfterMins int, key func(star.FulfillmentFact) K) map[K]*rollup {
	groups := make(map[K]*rollup)
	for _, f := range facts {
		k := key(f)
		r, ok := groups[k]
		if !ok {
			r = &rollup{revenue: decimal.Zero}
			groups[k] = r
		}
		r.add(f, breachAfterMins)
	}
	return groups
}

// Rounding conventions shared by every aggregation.

// round1 rounds to one decimal (rates and percentage deltas).
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// round2 rounds to two decimals (match rates).
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// roundMins rounds an average to whole minutes.
func roundMins(x float64) int {
	return int(math.Round(x))
}
