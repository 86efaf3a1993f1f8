package metrics_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/meridian/fulfillment-analytics/star"
)

// =============================================================================
// INTEGRITY CLASSIFICATION
// =============================================================================

func TestClassifyMatchRate_Tiers(t *testing.T) {
	eng := newEngine()

	require.Equal(t, star.IntegrityHealthy, eng.ClassifyMatchRate(99.95))
	require.Equal(t, star.IntegrityHealthy, eng.ClassifyMatchRate(99.9)) // inclusive lower edge
	require.Equal(t, star.IntegrityWarning, eng.ClassifyMatchRate(99.5))
	require.Equal(t, star.IntegrityWarning, eng.ClassifyMatchRate(99.0))
	require.Equal(t, star.IntegrityCritical, eng.ClassifyMatchRate(98.0))
}

// =============================================================================
// RECONCILIATION METRICS
// =============================================================================

func TestDataQuality_MatchRateAndDiscrepancies(t *testing.T) {
	// GIVEN: 1000 records, 2 missing from the event log
	window := star.GenerateTimeWindow(star.DateKey("2026-02-03").Time(), 10)
	var facts []star.FulfillmentFact
	for i := 0; i < 1000; i++ {
		missing := i < 2
		facts = append(facts, factWith(func(f *star.FulfillmentFact) {
			f.DateKey = "2026-02-03"
			f.EventLogReceived = !missing
		}))
	}

	// WHEN: reconciling the two sources
	dq := newEngine().DataQuality(facts, window)

	// THEN: 99.80 match rate => warning
	require.Equal(t, 1000, dq.TotalRecords)
	require.Equal(t, 998, dq.RecordsWithEventLog)
	require.Equal(t, 2, dq.TotalDiscrepancies)
	require.Equal(t, 99.8, dq.MatchRate)
	require.Equal(t, star.IntegrityWarning, dq.DataIntegrityStatus)
}

func TestDataQuality_PerDayBreakdownUsesSharedClassifier(t *testing.T) {
	eng := newEngine()
	window := star.GenerateTimeWindow(star.DateKey("2026-02-03").Time(), 10)

	var facts []star.FulfillmentFact
	// 2026-02-03: 100 records, 3 discrepancies => 97.00, critical.
	for i := 0; i < 100; i++ {
		missing := i < 3
		facts = append(facts, factWith(func(f *star.FulfillmentFact) {
			f.DateKey = "2026-02-03"
			f.EventLogReceived = !missing
		}))
	}
	// 2026-02-02: 200 records, 1 discrepancy => 99.50, warning.
	for i := 0; i < 200; i++ {
		missing := i < 1
		facts = append(facts, factWith(func(f *star.FulfillmentFact) {
			f.DateKey = "2026-02-02"
			f.EventLogReceived = !missing
		}))
	}
	// 2026-02-01: 50 records, all received => 100.00, healthy.
	for i := 0; i < 50; i++ {
		facts = append(facts, factWith(func(f *star.FulfillmentFact) {
			f.DateKey = "2026-02-01"
		}))
	}

	dq := eng.DataQuality(facts, window)

	// Breakdown covers the trailing 7 days of the 10-day window.
	require.Len(t, dq.DiscrepanciesByDate, 7)
	require.Equal(t, star.DateKey("2026-01-28"), dq.DiscrepanciesByDate[0].Date)
	require.Equal(t, star.DateKey("2026-02-03"), dq.DiscrepanciesByDate[6].Date)

	byDate := make(map[star.DateKey]int)
	for i, day := range dq.DiscrepanciesByDate {
		byDate[day.Date] = i
		// Every row's status agrees with the shared classifier.
		require.Equal(t, eng.ClassifyMatchRate(day.MatchRate), day.Status, "day %s", day.Date)
	}

	feb3 := dq.DiscrepanciesByDate[byDate["2026-02-03"]]
	require.Equal(t, 100, feb3.Total)
	require.Equal(t, 3, feb3.Discrepancies)
	require.Equal(t, 97.0, feb3.MatchRate)
	require.Equal(t, star.IntegrityCritical, feb3.Status)

	feb2 := dq.DiscrepanciesByDate[byDate["2026-02-02"]]
	require.Equal(t, 99.5, feb2.MatchRate)
	require.Equal(t, star.IntegrityWarning, feb2.Status)

	feb1 := dq.DiscrepanciesByDate[byDate["2026-02-01"]]
	require.Equal(t, 100.0, feb1.MatchRate)
	require.Equal(t, star.IntegrityHealthy, feb1.Status)

	// Days with zero orders report zero rates, not NaN.
	jan28 := dq.DiscrepanciesByDate[byDate["2026-01-28"]]
	require.Zero(t, jan28.Total)
	require.Equal(t, 0.0, jan28.MatchRate)
}

func TestDataQuality_ShortWindowUsesWholeWindow(t *testing.T) {
	window := star.GenerateTimeWindow(star.DateKey("2026-02-03").Time(), 3)
	dq := newEngine().DataQuality(nil, window)
	require.Len(t, dq.DiscrepanciesByDate, 3)
}

func TestDataQuality_EmptyInputYieldsZeros(t *testing.T) {
	window := star.GenerateTimeWindow(star.DateKey("2026-02-03").Time(), 10)
	dq := newEngine().DataQuality(nil, window)

	require.Zero(t, dq.TotalRecords)
	require.Zero(t, dq.RecordsWithEventLog)
	require.Zero(t, dq.TotalDiscrepancies)
	require.Equal(t, 0.0, dq.MatchRate)
	require.Equal(t, star.IntegrityCritical, dq.DataIntegrityStatus)
}
