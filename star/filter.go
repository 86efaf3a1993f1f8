/*
filter.go - Fact-subset selection

PURPOSE:
  Interactive consumers (the dashboard's filter panel) narrow the fact
  table before re-running aggregations. FilterFacts is that narrowing:
  a single pass over the facts applying every constraint at once.

SEMANTICS:
  Constraints across dimensions are AND-combined; values within one
  dimension are OR-combined. An empty constraint list for a dimension
  means "no restriction". The date range is inclusive on both ends; a
  zero From or To leaves that end unbounded.

  Filtering never mutates the input slice; it returns a fresh slice of
  the matching facts.
*/
package star

// Filter selects a subset of the fact table.
type Filter struct {
	Brands  []BrandID
	Stores  []StoreID
	Methods []MethodID
	From    DateKey // inclusive; zero = unbounded
	To      DateKey // inclusive; zero = unbounded
}

// IsEmpty reports whether the filter imposes no constraint at all.
func (f Filter) IsEmpty() bool {
	return len(f.Brands) == 0 && len(f.Stores) == 0 && len(f.Methods) == 0 &&
		f.From.IsZero() && f.To.IsZero()
}

// FilterFacts returns the facts matching every constraint of the filter.
// The input is never mutated.
func FilterFacts(facts []FulfillmentFact, f Filter) []FulfillmentFact {
	if f.IsEmpty() {
		out := make([]FulfillmentFact, len(facts))
		copy(out, facts)
		return out
	}

	brandSet := toSet(f.Brands)
	storeSet := toSet(f.Stores)
	methodSet := toSet(f.Methods)

	out := make([]FulfillmentFact, 0, len(facts))
	for _, fact := range facts {
		if brandSet != nil && !brandSet[fact.BrandID] {
			continue
		}
		if storeSet != nil && !storeSet[fact.StoreID] {
			continue
		}
		if methodSet != nil && !methodSet[fact.MethodID] {
			continue
		}
		if !f.From.IsZero() && fact.DateKey.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && fact.DateKey.After(f.To) {
			continue
		}
		out = append(out, fact)
	}
	return out
}

// toSet builds a lookup set, or nil when the constraint list is empty.
func toSet[K comparable](keys []K) map[K]bool {
	if len(keys) == 0 {
		return nil
	}
	set := make(map[K]bool, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	return set
}
