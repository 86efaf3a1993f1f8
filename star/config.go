/*
config.go - Generation and classification parameters

PURPOSE:
  Every knob of the analytics core lives here instead of being scattered
  as hard-coded constants: the time window, the anchor date, the
  per-store-per-day order volume, the SLA breach threshold, and the
  classification tiers used by the metrics engine.

DEFAULTS:
  DefaultConfig mirrors the documented reference dataset: a 30-day window
  ending 2026-02-03, 15-60 orders per store per day, a 120-minute SLA
  breach threshold, bottleneck tiers at 75/100 average lead-time minutes,
  and match-rate tiers at 99.9/99.0 percent.

VALIDATION:
  Validate rejects malformed configuration synchronously, before any
  generation or aggregation runs. Errors unwrap to ErrInvalidConfig.
*/
package star

import (
	"time"
)

// Config carries every injectable parameter of the core.
type Config struct {
	// Generation
	WindowDays           int       // length of the time dimension, days
	AnchorDate           time.Time // last day of the window
	MinOrdersPerStoreDay int       // inclusive lower bound of daily volume
	MaxOrdersPerStoreDay int       // inclusive upper bound of daily volume

	// Classification thresholds used by the metrics engine
	SLABreachThresholdMins int     // lead times above this count as 2hr-SLA exceedances
	SeverityMediumMins     float64 // avg lead time above this => medium bottleneck
	SeverityHighMins       float64 // avg lead time above this => high bottleneck
	MatchRateHealthyPct    float64 // match rate at or above this => healthy
	MatchRateWarningPct    float64 // match rate at or above this => warning
	QualityBreakdownDays   int     // trailing days in the per-day quality breakdown
}

// DefaultConfig returns the documented reference configuration.
func DefaultConfig() Config {
	return Config{
		WindowDays:           30,
		AnchorDate:           time.Date(2026, time.February, 3, 0, 0, 0, 0, time.UTC),
		MinOrdersPerStoreDay: 15,
		MaxOrdersPerStoreDay: 60,

		SLABreachThresholdMins: 120,
		SeverityMediumMins:     75,
		SeverityHighMins:       100,
		MatchRateHealthyPct:    99.9,
		MatchRateWarningPct:    99.0,
		QualityBreakdownDays:   7,
	}
}

// Anchor returns the anchor date as a DateKey.
func (c Config) Anchor() DateKey {
	return NewDateKey(c.AnchorDate)
}

// Validate checks the configuration and returns a ConfigError for the
// first violation found.
func (c Config) Validate() error {
	if c.WindowDays < 1 {
		return &ConfigError{Field: "WindowDays", Reason: "must be at least 1"}
	}
	if c.AnchorDate.IsZero() {
		return &ConfigError{Field: "AnchorDate", Reason: "must be set"}
	}
	if c.MinOrdersPerStoreDay < 0 {
		return &ConfigError{Field: "MinOrdersPerStoreDay", Reason: "must not be negative"}
	}
	if c.MaxOrdersPerStoreDay < c.MinOrdersPerStoreDay {
		return &ConfigError{Field: "MaxOrdersPerStoreDay", Reason: "must be >= MinOrdersPerStoreDay"}
	}
	if c.SLABreachThresholdMins <= 0 {
		return &ConfigError{Field: "SLABreachThresholdMins", Reason: "must be positive"}
	}
	if c.SeverityHighMins < c.SeverityMediumMins {
		return &ConfigError{Field: "SeverityHighMins", Reason: "must be >= SeverityMediumMins"}
	}
	if c.MatchRateHealthyPct < c.MatchRateWarningPct {
		return &ConfigError{Field: "MatchRateHealthyPct", Reason: "must be >= MatchRateWarningPct"}
	}
	if c.QualityBreakdownDays < 1 {
		return &ConfigError{Field: "QualityBreakdownDays", Reason: "must be at least 1"}
	}
	return nil
}
