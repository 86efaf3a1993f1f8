/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON envelope types for API communication. The metric
  record types already carry their JSON contract (they are the engine's
  public output), so this file only adds the wrappers the dashboard
  needs around them: dimension payloads, dataset info, errors.

NAMING CONVENTION:
  - *Response: response wrappers returned to clients
  - *Request: request body types from clients

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data
  carriers.

SEE ALSO:
  - handlers.go: uses these types
  - metrics/types.go: the metric records serialized directly
*/
package api

import (
	"github.com/meridian/fulfillment-analytics/star"
)

// DimensionsResponse is the full reference-data payload the dashboard
// loads once to populate its filter dropdowns.
type DimensionsResponse struct {
	Brands  []star.Brand             `json:"brands"`
	Stores  []star.StoreLocation     `json:"stores"`
	Methods []star.FulfillmentMethod `json:"methods"`
	Time    []star.TimeRecord        `json:"time"`
}

// DatasetInfoResponse describes the currently loaded dataset.
type DatasetInfoResponse struct {
	Seed       int64  `json:"seed"`
	WindowDays int    `json:"window_days"`
	AnchorDate string `json:"anchor_date"`
	FactCount  int    `json:"fact_count"`
}

// ResetDatasetRequest regenerates the fact table. A nil seed means
// "pick one from the clock".
type ResetDatasetRequest struct {
	Seed *int64 `json:"seed"`
}

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
