/*
catalog.go - Built-in reference data and the dimension generator

PURPOSE:
  The dimension tables are static reference data: four grocery banners,
  ten stores, four fulfillment methods, and the rolling time window.
  Everything except the time window is a fixed catalog; the window is
  derived from Config (anchor date + length).

GENERATION CONTRACT:
  GenerateDimensions is deterministic and total over any valid config.
  It validates referential integrity (every store's brand must exist)
  before returning, so downstream code never sees a dangling key.

SEE ALSO:
  - time.go: GenerateTimeWindow
  - facts.go: consumes the Dimensions produced here
*/
package star

import "fmt"

// Dimensions bundles the four static reference sets of the schema.
type Dimensions struct {
	Brands  []Brand             `json:"brands"`
	Stores  []StoreLocation     `json:"stores"`
	Methods []FulfillmentMethod `json:"methods"`
	Time    []TimeRecord        `json:"time"`
}

// =============================================================================
// REFERENCE CATALOGS
// =============================================================================

// DefaultBrands returns the built-in brand dimension.
func DefaultBrands() []Brand {
	return []Brand{
		{BrandID: 1, BrandName: "Stop & Shop", BrandCode: "SS", Region: "Northeast", Headquarters: "Quincy, MA"},
		{BrandID: 2, BrandName: "Food Lion", BrandCode: "FL", Region: "Southeast", Headquarters: "Salisbury, NC"},
		{BrandID: 3, BrandName: "Giant Food", BrandCode: "GF", Region: "Mid-Atlantic", Headquarters: "Landover, MD"},
		{BrandID: 4, BrandName: "Hannaford", BrandCode: "HN", Region: "New England", Headquarters: "Scarborough, ME"},
	}
}

// DefaultStores returns the built-in store-location dimension.
func DefaultStores() []StoreLocation {
	return []StoreLocation{
		{StoreID: 101, StoreName: "Stop & Shop #1245", BrandID: 1, City: "Boston", State: "MA", Zip: "02101", District: "Metro Boston", CapacityOrdersPerHour: 45},
		{StoreID: 102, StoreName: "Stop & Shop #1387", BrandID: 1, City: "Hartford", State: "CT", Zip: "06103", District: "Hartford Metro", CapacityOrdersPerHour: 38},
		{StoreID: 103, StoreName: "Stop & Shop #1502", BrandID: 1, City: "Providence", State: "RI", Zip: "02903", District: "Providence", CapacityOrdersPerHour: 42},
		{StoreID: 201, StoreName: "Food Lion #2891", BrandID: 2, City: "Charlotte", State: "NC", Zip: "28202", District: "Charlotte Metro", CapacityOrdersPerHour: 50},
		{StoreID: 202, StoreName: "Food Lion #2456", BrandID: 2, City: "Raleigh", State: "NC", Zip: "27601", District: "Triangle", CapacityOrdersPerHour: 48},
		{StoreID: 203, StoreName: "Food Lion #2678", BrandID: 2, City: "Richmond", State: "VA", Zip: "23219", District: "Central VA", CapacityOrdersPerHour: 44},
		{StoreID: 301, StoreName: "Giant Food #3102", BrandID: 3, City: "Washington", State: "DC", Zip: "20001", District: "DC Metro", CapacityOrdersPerHour: 55},
		{StoreID: 302, StoreName: "Giant Food #3245", BrandID: 3, City: "Baltimore", State: "MD", Zip: "21201", District: "Baltimore Metro", CapacityOrdersPerHour: 52},
		{StoreID: 401, StoreName: "Hannaford #4012", BrandID: 4, City: "Portland", State: "ME", Zip: "04101", District: "Southern Maine", CapacityOrdersPerHour: 35},
		{StoreID: 402, StoreName: "Hannaford #4156", BrandID: 4, City: "Burlington", State: "VT", Zip: "05401", District: "Vermont", CapacityOrdersPerHour: 32},
	}
}

// DefaultMethods returns the built-in fulfillment-method dimension.
func DefaultMethods() []FulfillmentMethod {
	return []FulfillmentMethod{
		{MethodID: 1, MethodName: "Curbside Pickup", MethodCode: "CURB", SLAHours: 2, RequiresDriver: false},
		{MethodID: 2, MethodName: "Home Delivery", MethodCode: "DELV", SLAHours: 4, RequiresDriver: true},
		{MethodID: 3, MethodName: "In-Store Pickup", MethodCode: "ISPU", SLAHours: 1, RequiresDriver: false},
		{MethodID: 4, MethodName: "Same Day Express", MethodCode: "EXPR", SLAHours: 2, RequiresDriver: true},
	}
}

// =============================================================================
// DIMENSION GENERATOR
// =============================================================================

// GenerateDimensions builds the four reference sets: the built-in
// catalogs plus a time window derived from the config.
func GenerateDimensions(cfg Config) (Dimensions, error) {
	if err := cfg.Validate(); err != nil {
		return Dimensions{}, err
	}

	dims := Dimensions{
		Brands:  DefaultBrands(),
		Stores:  DefaultStores(),
		Methods: DefaultMethods(),
		Time:    GenerateTimeWindow(cfg.AnchorDate, cfg.WindowDays),
	}

	if err := dims.Validate(); err != nil {
		return Dimensions{}, err
	}
	return dims, nil
}

// Validate checks the dimension sets for emptiness and referential
// integrity. Generation fails fast here rather than emitting facts that
// point at dimension keys that do not exist.
func (d Dimensions) Validate() error {
	if len(d.Brands) == 0 {
		return fmt.Errorf("brands: %w", ErrEmptyDimension)
	}
	if len(d.Stores) == 0 {
		return fmt.Errorf("stores: %w", ErrEmptyDimension)
	}
	if len(d.Methods) == 0 {
		return fmt.Errorf("methods: %w", ErrEmptyDimension)
	}
	if len(d.Time) == 0 {
		return fmt.Errorf("time: %w", ErrEmptyDimension)
	}

	brandIDs := make(map[BrandID]bool, len(d.Brands))
	for _, b := range d.Brands {
		brandIDs[b.BrandID] = true
	}
	for _, s := range d.Stores {
		if !brandIDs[s.BrandID] {
			return &ReferentialIntegrityError{
				Dimension:    "brand",
				Key:          int(s.BrandID),
				ReferencedBy: fmt.Sprintf("store %d", s.StoreID),
			}
		}
	}

	for _, m := range d.Methods {
		if m.SLAHours <= 0 {
			return &ConfigError{
				Field:  fmt.Sprintf("method %d", m.MethodID),
				Reason: "sla_hours must be positive",
			}
		}
	}
	return nil
}
