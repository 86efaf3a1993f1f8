package metrics_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/meridian/fulfillment-analytics/metrics"
	"github.com/meridian/fulfillment-analytics/star"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func newEngine() *metrics.Engine {
	return metrics.NewEngine(star.DefaultConfig())
}

// baseFact is a plausible on-time order; tests override the fields they
// care about.
func baseFact() star.FulfillmentFact {
	return star.FulfillmentFact{
		OrderID:  "ORD-100001",
		DateKey:  "2026-02-03",
		StoreID:  101,
		BrandID:  1,
		MethodID: 1,

		PickingStartDelayMins: 10,
		PickingDurationMins:   30,
		PackingDurationMins:   10,
		DeliveryDurationMins:  0,
		TotalLeadTimeMins:     50,

		SLATargetMins:   120,
		IsOnTime:        true,
		SLAVarianceMins: 70,

		ItemsOrdered:   20,
		ItemsFulfilled: 20,
		FillRate:       100,

		OrderValue:       decimal.NewFromFloat(100.00),
		EventLogReceived: true,
	}
}

func factWith(mutate func(*star.FulfillmentFact)) star.FulfillmentFact {
	f := baseFact()
	mutate(&f)
	return f
}

// storeFacts builds n facts for one store with the given lead time.
func storeFacts(storeID star.StoreID, n, leadTime int) []star.FulfillmentFact {
	facts := make([]star.FulfillmentFact, 0, n)
	for i := 0; i < n; i++ {
		facts = append(facts, factWith(func(f *star.FulfillmentFact) {
			f.StoreID = storeID
			f.TotalLeadTimeMins = leadTime
		}))
	}
	return facts
}

func reference(t *testing.T) *star.Dataset {
	t.Helper()
	cfg := star.DefaultConfig()
	cfg.WindowDays = 14
	cfg.MinOrdersPerStoreDay = 5
	cfg.MaxOrdersPerStoreDay = 15
	ds, err := star.NewDataset(cfg, 42)
	require.NoError(t, err)
	return ds
}

// =============================================================================
// OVERALL METRICS
// =============================================================================

func TestOverall_EmptyInputYieldsZeros(t *testing.T) {
	// GIVEN: no facts at all
	// WHEN: computing overall metrics
	// THEN: every value is a defined zero, nothing divides by zero
	m := newEngine().Overall(nil)

	require.Equal(t, 0, m.TotalOrders)
	require.Equal(t, 0.0, m.OnTimeDeliveryRate)
	require.Equal(t, 0, m.AvgLeadTimeMinutes)
	require.Equal(t, 0.0, m.AvgFillRate)
	require.True(t, m.TotalRevenue.IsZero())
}

func TestOverall_KnownValues(t *testing.T) {
	facts := []star.FulfillmentFact{
		factWith(func(f *star.FulfillmentFact) {
			f.TotalLeadTimeMins = 60
			f.FillRate = 90
			f.OrderValue = decimal.NewFromFloat(100.50)
		}),
		factWith(func(f *star.FulfillmentFact) {
			f.TotalLeadTimeMins = 130
			f.IsOnTime = false
			f.FillRate = 95
			f.OrderValue = decimal.NewFromFloat(49.50)
		}),
		factWith(func(f *star.FulfillmentFact) {
			f.TotalLeadTimeMins = 80
			f.FillRate = 100
			f.OrderValue = decimal.NewFromFloat(25.25)
		}),
	}

	m := newEngine().Overall(facts)

	require.Equal(t, 3, m.TotalOrders)
	require.Equal(t, 66.7, m.OnTimeDeliveryRate) // 2/3
	require.Equal(t, 90, m.AvgLeadTimeMinutes)   // (60+130+80)/3
	require.Equal(t, 95.0, m.AvgFillRate)
	require.True(t, m.TotalRevenue.Equal(decimal.NewFromFloat(175.25)), "got %s", m.TotalRevenue)
}

// =============================================================================
// PER-BRAND METRICS
// =============================================================================

func TestByBrand_ZeroFactBrandsStillAppear(t *testing.T) {
	brands := star.DefaultBrands()
	facts := []star.FulfillmentFact{
		factWith(func(f *star.FulfillmentFact) { f.BrandID = 2; f.HasCustomerComplaint = true }),
	}

	out := newEngine().ByBrand(facts, brands)

	require.Len(t, out, len(brands))
	for i, bm := range out {
		// Output follows dimension order.
		require.Equal(t, brands[i].BrandID, bm.BrandID)
	}
	require.Equal(t, 1, out[1].TotalOrders)
	require.Equal(t, 1, out[1].ComplaintsCount)
	require.Equal(t, 0, out[0].TotalOrders)
	require.Equal(t, 0.0, out[0].OnTimeDeliveryRate)
	require.True(t, out[0].TotalRevenue.IsZero())
}

func TestByBrand_SumsBackToOverall(t *testing.T) {
	// GIVEN: a full generated dataset
	ds := reference(t)
	eng := metrics.NewEngine(ds.Config)

	// WHEN: aggregating overall and per-brand
	overall := eng.Overall(ds.Facts)
	byBrand := eng.ByBrand(ds.Facts, ds.Dimensions.Brands)

	// THEN: brand partitions sum back to the overall totals
	orders := 0
	revenue := decimal.Zero
	for _, bm := range byBrand {
		orders += bm.TotalOrders
		revenue = revenue.Add(bm.TotalRevenue)
	}
	require.Equal(t, overall.TotalOrders, orders)
	require.True(t, overall.TotalRevenue.Equal(revenue), "overall %s vs sum %s", overall.TotalRevenue, revenue)
}

func TestByStore_SumsBackToOverall(t *testing.T) {
	ds := reference(t)
	eng := metrics.NewEngine(ds.Config)

	overall := eng.Overall(ds.Facts)
	byStore := eng.ByStore(ds.Facts, ds.Dimensions.Stores, ds.Dimensions.Brands)

	orders := 0
	for _, sm := range byStore {
		orders += sm.TotalOrders
	}
	require.Equal(t, overall.TotalOrders, orders)
}

// =============================================================================
// PER-STORE BOTTLENECK VIEW
// =============================================================================

func TestByStore_SeverityClassificationMonotonic(t *testing.T) {
	// GIVEN: one store averaging 80 minutes, another averaging 120
	stores := []star.StoreLocation{
		{StoreID: 101, StoreName: "A", BrandID: 1},
		{StoreID: 102, StoreName: "B", BrandID: 1},
	}
	facts := append(storeFacts(101, 10, 80), storeFacts(102, 10, 120)...)

	// WHEN: computing the bottleneck view with the 75/100 tiers
	out := newEngine().ByStore(facts, stores, star.DefaultBrands())

	// THEN: 80 => medium, 120 => high
	require.Equal(t, star.SeverityMedium, out[0].BottleneckSeverity)
	require.Equal(t, star.SeverityHigh, out[1].BottleneckSeverity)
}

func TestByStore_LowSeverityAndThresholdEdges(t *testing.T) {
	stores := []star.StoreLocation{
		{StoreID: 101, BrandID: 1},
		{StoreID: 102, BrandID: 1},
		{StoreID: 103, BrandID: 1},
	}
	// Exactly at a tier boundary stays in the lower tier (strict >).
	facts := append(storeFacts(101, 4, 75), storeFacts(102, 4, 100)...)
	facts = append(facts, storeFacts(103, 4, 40)...)

	out := newEngine().ByStore(facts, stores, star.DefaultBrands())

	require.Equal(t, star.SeverityLow, out[0].BottleneckSeverity)
	require.Equal(t, star.SeverityMedium, out[1].BottleneckSeverity)
	require.Equal(t, star.SeverityLow, out[2].BottleneckSeverity)
}

func TestByStore_SLAExceedanceAndBrandJoin(t *testing.T) {
	stores := []star.StoreLocation{{StoreID: 201, StoreName: "Food Lion #2891", BrandID: 2}}
	facts := []star.FulfillmentFact{
		factWith(func(f *star.FulfillmentFact) { f.StoreID = 201; f.BrandID = 2; f.TotalLeadTimeMins = 130 }),
		factWith(func(f *star.FulfillmentFact) { f.StoreID = 201; f.BrandID = 2; f.TotalLeadTimeMins = 120 }), // at threshold: not exceeding
		factWith(func(f *star.FulfillmentFact) { f.StoreID = 201; f.BrandID = 2; f.TotalLeadTimeMins = 50 }),
		factWith(func(f *star.FulfillmentFact) { f.StoreID = 201; f.BrandID = 2; f.TotalLeadTimeMins = 200 }),
	}

	out := newEngine().ByStore(facts, stores, star.DefaultBrands())

	require.Len(t, out, 1)
	sm := out[0]
	require.Equal(t, "Food Lion", sm.BrandName)
	require.Equal(t, 2, sm.OrdersExceeding2HrSLA)
	require.Equal(t, 50.0, sm.SLAExceedanceRate)
	require.Equal(t, 125, sm.AvgLeadTimeMinutes)
}

func TestByStore_PickingAverages(t *testing.T) {
	stores := []star.StoreLocation{{StoreID: 101, BrandID: 1}}
	facts := []star.FulfillmentFact{
		factWith(func(f *star.FulfillmentFact) { f.PickingStartDelayMins = 10; f.PickingDurationMins = 20 }),
		factWith(func(f *star.FulfillmentFact) { f.PickingStartDelayMins = 21; f.PickingDurationMins = 41 }),
	}

	out := newEngine().ByStore(facts, stores, star.DefaultBrands())

	require.Equal(t, 16, out[0].AvgPickingDelayMins)    // 15.5 rounds up
	require.Equal(t, 31, out[0].AvgPickingDurationMins) // 30.5 rounds up
}

// =============================================================================
// PER-METHOD METRICS
// =============================================================================

func TestByMethod_OrderShare(t *testing.T) {
	methods := star.DefaultMethods()
	facts := []star.FulfillmentFact{
		factWith(func(f *star.FulfillmentFact) { f.MethodID = 1 }),
		factWith(func(f *star.FulfillmentFact) { f.MethodID = 1 }),
		factWith(func(f *star.FulfillmentFact) { f.MethodID = 1 }),
		factWith(func(f *star.FulfillmentFact) { f.MethodID = 2; f.IsOnTime = false }),
	}

	out := newEngine().ByMethod(facts, methods)

	require.Len(t, out, len(methods))
	require.Equal(t, 75.0, out[0].OrderShare)
	require.Equal(t, 25.0, out[1].OrderShare)
	require.Equal(t, 0.0, out[2].OrderShare)
	require.Equal(t, 100.0, out[0].OnTimeDeliveryRate)
	require.Equal(t, 0.0, out[1].OnTimeDeliveryRate)
}

func TestByMethod_EmptyInput(t *testing.T) {
	out := newEngine().ByMethod(nil, star.DefaultMethods())
	require.Len(t, out, 4)
	for _, mm := range out {
		require.Zero(t, mm.TotalOrders)
		require.Equal(t, 0.0, mm.OrderShare)
	}
}

// =============================================================================
// DAILY TRENDS
// =============================================================================

func TestDailyTrends_ZeroOrderDaysReportZeros(t *testing.T) {
	window := star.GenerateTimeWindow(star.DateKey("2026-02-03").Time(), 3)
	facts := []star.FulfillmentFact{
		factWith(func(f *star.FulfillmentFact) { f.DateKey = "2026-02-02"; f.OrderValue = decimal.NewFromFloat(40.00) }),
	}

	out := newEngine().DailyTrends(facts, window)

	require.Len(t, out, 3)
	require.Equal(t, star.DateKey("2026-02-01"), out[0].Date)
	require.Zero(t, out[0].TotalOrders)
	require.Equal(t, 0.0, out[0].OnTimeRate)
	require.Equal(t, 0, out[0].AvgLeadTime)
	require.True(t, out[0].Revenue.IsZero())

	require.Equal(t, 1, out[1].TotalOrders)
	require.Equal(t, 100.0, out[1].OnTimeRate)
	require.True(t, out[1].Revenue.Equal(decimal.NewFromFloat(40.00)))
}

func TestDailyTrends_CarriesCalendarFields(t *testing.T) {
	window := star.GenerateTimeWindow(star.DateKey("2026-02-01").Time(), 2)
	out := newEngine().DailyTrends(nil, window)

	require.Equal(t, "Saturday", out[0].DayOfWeek)
	require.True(t, out[0].IsWeekend)
	require.Equal(t, "Sunday", out[1].DayOfWeek)
}

// =============================================================================
// PURITY / IDEMPOTENCE
// =============================================================================

func TestAggregations_IdempotentOverSameFactTable(t *testing.T) {
	ds := reference(t)
	eng := metrics.NewEngine(ds.Config)

	require.Equal(t, eng.Overall(ds.Facts), eng.Overall(ds.Facts))
	require.Equal(t,
		eng.ByBrand(ds.Facts, ds.Dimensions.Brands),
		eng.ByBrand(ds.Facts, ds.Dimensions.Brands))
	require.Equal(t,
		eng.ByStore(ds.Facts, ds.Dimensions.Stores, ds.Dimensions.Brands),
		eng.ByStore(ds.Facts, ds.Dimensions.Stores, ds.Dimensions.Brands))
	require.Equal(t,
		eng.DailyTrends(ds.Facts, ds.Dimensions.Time),
		eng.DailyTrends(ds.Facts, ds.Dimensions.Time))
	require.Equal(t,
		eng.WeekOverWeek(ds.Facts, ds.Anchor()),
		eng.WeekOverWeek(ds.Facts, ds.Anchor()))
	require.Equal(t,
		eng.DataQuality(ds.Facts, ds.Dimensions.Time),
		eng.DataQuality(ds.Facts, ds.Dimensions.Time))
}

func TestAggregations_DoNotMutateFacts(t *testing.T) {
	ds := reference(t)
	eng := metrics.NewEngine(ds.Config)

	before := make([]star.FulfillmentFact, len(ds.Facts))
	copy(before, ds.Facts)

	eng.Overall(ds.Facts)
	eng.ByBrand(ds.Facts, ds.Dimensions.Brands)
	eng.ByStore(ds.Facts, ds.Dimensions.Stores, ds.Dimensions.Brands)
	eng.ByMethod(ds.Facts, ds.Dimensions.Methods)
	eng.DailyTrends(ds.Facts, ds.Dimensions.Time)
	eng.WeekOverWeek(ds.Facts, ds.Anchor())
	eng.DataQuality(ds.Facts, ds.Dimensions.Time)

	require.Equal(t, before, ds.Facts)
}
