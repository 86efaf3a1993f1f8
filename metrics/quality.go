/*
quality.go - Data-quality / reconciliation metrics

PURPOSE:
  The fact table simulates two source systems: the relational system
  records every order; the event-log stream occasionally misses one
  (EventLogReceived = false). This file computes the match rate between
  the two, the discrepancy counts, and a per-day breakdown over the
  trailing days of the window.

CLASSIFICATION:
  The three-tier integrity rule (healthy / warning / critical) lives in
  one method, ClassifyMatchRate, and is applied both to the overall rate
  and to every per-day row. Consumers must not restate the thresholds.
*/
package metrics

import (
	"github.com/meridian/fulfillment-analytics/star"
)

// DataQuality reconciles the two simulated sources over a fact subset.
// The per-day breakdown covers the trailing QualityBreakdownDays entries
// of the window (all of it when the window is shorter).
func (e *Engine) DataQuality(facts []star.FulfillmentFact, window []star.TimeRecord) DataQualityMetrics {
	total := len(facts)
	misses := 0
	missesByDay := make(map[star.DateKey]int)
	totalByDay := make(map[star.DateKey]int)
	for _, f := range facts {
		totalByDay[f.DateKey]++
		if !f.EventLogReceived {
			misses++
			missesByDay[f.DateKey]++
		}
	}

	matchRate := 0.0
	if total > 0 {
		matchRate = round2(float64(total-misses) / float64(total) * 100)
	}

	breakdown := window
	if len(breakdown) > e.cfg.QualityBreakdownDays {
		breakdown = breakdown[len(breakdown)-e.cfg.QualityBreakdownDays:]
	}

	byDate := make([]DailyQuality, 0, len(breakdown))
	for _, day := range breakdown {
		dayTotal := totalByDay[day.DateKey]
		dayMisses := missesByDay[day.DateKey]
		dayRate := 0.0
		if dayTotal > 0 {
			dayRate = float64(dayTotal-dayMisses) / float64(dayTotal) * 100
		}
		// Classify the rounded rate: the status must agree with the
		// value the consumer displays.
		dayRate = round2(dayRate)
		byDate = append(byDate, DailyQuality{
			Date:          day.DateKey,
			Discrepancies: dayMisses,
			Total:         dayTotal,
			MatchRate:     dayRate,
			Status:        e.ClassifyMatchRate(dayRate),
		})
	}

	return DataQualityMetrics{
		TotalRecords:        total,
		RecordsWithEventLog: total - misses,
		MatchRate:           matchRate,
		TotalDiscrepancies:  misses,
		DiscrepanciesByDate: byDate,
		DataIntegrityStatus: e.ClassifyMatchRate(matchRate),
	}
}

// ClassifyMatchRate applies the three-tier integrity rule to a match
// rate percentage.
func (e *Engine) ClassifyMatchRate(rate float64) star.IntegrityStatus {
	switch {
	case rate >= e.cfg.MatchRateHealthyPct:
		return star.IntegrityHealthy
	case rate >= e.cfg.MatchRateWarningPct:
		return star.IntegrityWarning
	default:
		return star.IntegrityCritical
	}
}
