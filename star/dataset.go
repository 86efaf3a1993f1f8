/*
dataset.go - Owned in-memory dataset context

PURPOSE:
  A Dataset owns one generated star schema: the dimensions, the fact
  table, and lookup indexes over the dimension keys. It replaces
  module-level globals with explicit state that is passed to consumers,
  so tests can build independent datasets in parallel and nothing hides
  behind package init.

IMMUTABILITY:
  A Dataset is read-only after construction. Concurrent readers need no
  locking; anything that wants different data builds a new Dataset.
*/
package star

import (
	"math/rand"
)

// Dataset is one generated star schema plus its lookup indexes.
type Dataset struct {
	Config     Config
	Seed       int64
	Dimensions Dimensions
	Facts      []FulfillmentFact

	brandsByID  map[BrandID]Brand
	storesByID  map[StoreID]StoreLocation
	methodsByID map[MethodID]FulfillmentMethod
}

// NewDataset generates dimensions and facts from the config and seed.
func NewDataset(cfg Config, seed int64) (*Dataset, error) {
	dims, err := GenerateDimensions(cfg)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(seed))
	facts, err := GenerateFacts(dims, cfg, rng)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{
		Config:      cfg,
		Seed:        seed,
		Dimensions:  dims,
		Facts:       facts,
		brandsByID:  make(map[BrandID]Brand, len(dims.Brands)),
		storesByID:  make(map[StoreID]StoreLocation, len(dims.Stores)),
		methodsByID: make(map[MethodID]FulfillmentMethod, len(dims.Methods)),
	}
	for _, b := range dims.Brands {
		ds.brandsByID[b.BrandID] = b
	}
	for _, s := range dims.Stores {
		ds.storesByID[s.StoreID] = s
	}
	for _, m := range dims.Methods {
		ds.methodsByID[m.MethodID] = m
	}
	return ds, nil
}

// Anchor returns the last day of the dataset's time window.
func (d *Dataset) Anchor() DateKey {
	return d.Config.Anchor()
}

// BrandByID looks up a brand by key.
func (d *Dataset) BrandByID(id BrandID) (Brand, bool) {
	b, ok := d.brandsByID[id]
	return b, ok
}

// StoreByID looks up a store by key.
func (d *Dataset) StoreByID(id StoreID) (StoreLocation, bool) {
	s, ok := d.storesByID[id]
	return s, ok
}

// MethodByID looks up a fulfillment method by key.
func (d *Dataset) MethodByID(id MethodID) (FulfillmentMethod, bool) {
	m, ok := d.methodsByID[id]
	return m, ok
}
