/*
facts.go - Fact-table generator

PURPOSE:
  Synthesizes the fact table by iterating the cross product of time
  records and stores, and for each (day, store) pair emitting a random
  count of order events. This file is the sole producer of
  FulfillmentFact rows; everything downstream is a pure read.

RANDOMNESS:
  All randomness flows through an injected *rand.Rand. Two runs with the
  same dimensions, config, and seed produce identical fact tables, which
  is what makes the generator testable.

PER-RECORD ALGORITHM:
  1. Pick a fulfillment method uniformly at random
  2. Draw timing components from fixed ranges (placement hour 6-21,
     picking delay 5-45, picking 10-60, packing 5-20; delivery 15-90
     only when the method requires a driver)
  3. Derive lead time, SLA target, on-time flag, and variance
  4. Draw order size 8-45; substitutions 1-3 with p=0.15; out-of-stock
     1-2 with p=0.08; derive fulfilled items and fill rate
  5. Draw per-item value 3.50-12.50 and derive the order value
  6. Flag complaints (p=0.03), redeliveries (p=0.02), and event-log
     capture (p=0.998)
  7. Assign a monotonically increasing order id across the whole run

SEE ALSO:
  - catalog.go: the Dimensions consumed here
  - dataset.go: wraps generation into an owned context object
*/
package star

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/shopspring/decimal"
)

// Event probabilities of the synthetic order population.
const (
	substitutionProb = 0.15
	outOfStockProb   = 0.08
	complaintProb    = 0.03
	redeliveryProb   = 0.02
	eventLogCapture  = 0.998
)

// Timing and sizing ranges (inclusive bounds).
const (
	placedHourMin, placedHourMax             = 6, 21
	pickingDelayMin, pickingDelayMax         = 5, 45
	pickingDurationMin, pickingDurationMax   = 10, 60
	packingDurationMin, packingDurationMax   = 5, 20
	deliveryDurationMin, deliveryDurationMax = 15, 90
	itemsOrderedMin, itemsOrderedMax         = 8, 45
	itemValueMin, itemValueMax               = 3.50, 12.50
)

// firstOrderSeq is the sequence value preceding the first assigned order
// id, so generation starts at ORD-100001.
const firstOrderSeq = 100000

// GenerateFacts synthesizes the fact table for the given dimensions.
// The rand source must not be nil; pass rand.New(rand.NewSource(seed))
// for reproducible output.
func GenerateFacts(dims Dimensions, cfg Config, rng *rand.Rand) ([]FulfillmentFact, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := dims.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, &ConfigError{Field: "rng", Reason: "random source must not be nil"}
	}

	// Capacity estimate: mean daily volume per store across the window.
	meanPerDay := (cfg.MinOrdersPerStoreDay + cfg.MaxOrdersPerStoreDay) / 2
	facts := make([]FulfillmentFact, 0, len(dims.Time)*len(dims.Stores)*meanPerDay)

	seq := firstOrderSeq
	for _, day := range dims.Time {
		for _, store := range dims.Stores {
			ordersForDay := randBetween(rng, cfg.MinOrdersPerStoreDay, cfg.MaxOrdersPerStoreDay)
			for i := 0; i < ordersForDay; i++ {
				seq++
				method := dims.Methods[rng.Intn(len(dims.Methods))]
				facts = append(facts, synthesizeFact(rng, seq, day, store, method))
			}
		}
	}
	return facts, nil
}

// synthesizeFact builds one order event. All derived fields honor the
// fact-table invariants documented on FulfillmentFact.
func synthesizeFact(rng *rand.Rand, seq int, day TimeRecord, store StoreLocation, method FulfillmentMethod) FulfillmentFact {
	placedHour := randBetween(rng, placedHourMin, placedHourMax)
	pickingDelay := randBetween(rng, pickingDelayMin, pickingDelayMax)
	pickingDuration := randBetween(rng, pickingDurationMin, pickingDurationMax)
	packingDuration := randBetween(rng, packingDurationMin, packingDurationMax)

	deliveryDuration := 0
	if method.RequiresDriver {
		deliveryDuration = randBetween(rng, deliveryDurationMin, deliveryDurationMax)
	}

	totalLeadTime := pickingDelay + pickingDuration + packingDuration + deliveryDuration
	slaTarget := method.SLATargetMins()

	itemsOrdered := randBetween(rng, itemsOrderedMin, itemsOrderedMax)
	itemsSubstituted := 0
	if rng.Float64() < substitutionProb {
		itemsSubstituted = randBetween(rng, 1, 3)
	}
	itemsOutOfStock := 0
	if rng.Float64() < outOfStockProb {
		itemsOutOfStock = randBetween(rng, 1, 2)
	}
	itemsFulfilled := itemsOrdered - itemsOutOfStock
	fillRate := round2(float64(itemsFulfilled) / float64(itemsOrdered) * 100)

	avgItemValue := randDecimal(rng, itemValueMin, itemValueMax)
	orderValue := avgItemValue.Mul(decimal.NewFromInt(int64(itemsOrdered))).Round(2)

	return FulfillmentFact{
		OrderID:  OrderID(fmt.Sprintf("ORD-%d", seq)),
		DateKey:  day.DateKey,
		StoreID:  store.StoreID,
		BrandID:  store.BrandID,
		MethodID: method.MethodID,

		OrderPlacedHour:       placedHour,
		PickingStartDelayMins: pickingDelay,
		PickingDurationMins:   pickingDuration,
		PackingDurationMins:   packingDuration,
		DeliveryDurationMins:  deliveryDuration,
		TotalLeadTimeMins:     totalLeadTime,

		SLATargetMins:   slaTarget,
		IsOnTime:        totalLeadTime <= slaTarget,
		SLAVarianceMins: slaTarget - totalLeadTime,

		ItemsOrdered:     itemsOrdered,
		ItemsFulfilled:   itemsFulfilled,
		ItemsSubstituted: itemsSubstituted,
		ItemsOutOfStock:  itemsOutOfStock,
		FillRate:         fillRate,

		OrderValue: orderValue,

		HasCustomerComplaint: rng.Float64() < complaintProb,
		RequiresRedelivery:   rng.Float64() < redeliveryProb,

		RelationalTimestamp: fmt.Sprintf("%sT%02d:%02d:00", day.DateKey, placedHour, randBetween(rng, 0, 59)),
		EventLogReceived:    rng.Float64() < eventLogCapture,
	}
}

// randBetween draws an int in [min, max], both bounds inclusive.
func randBetween(rng *rand.Rand, min, max int) int {
	return rng.Intn(max-min+1) + min
}

// randDecimal draws a 2-decimal value in [min, max).
func randDecimal(rng *rand.Rand, min, max float64) decimal.Decimal {
	return decimal.NewFromFloat(min + rng.Float64()*(max-min)).Round(2)
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
