package filter

import "github.com/valencia-move/listings-backend/internal/models"

// Predicate decides whether a listing is visible
type Predicate func(models.Listing) bool

// Build returns the single predicate for c. Each constrained axis adds one check.
func Build(c Criteria) Predicate {
	var checks []Predicate

	if c.Area != "" {
		area := c.Area
		checks = append(checks, func(l models.Listing) bool { return l.Area == area })
	}
	if c.Price != nil {
		band := *c.Price
		checks = append(checks, func(l models.Listing) bool { return band.Contains(l.Price) })
	}
	if c.Beds != nil {
		sel := *c.Beds
		checks = append(checks, func(l models.Listing) bool { return sel.Matches(l.Beds) })
	}
	if c.Feature != "" {
		tag := c.Feature
		checks = append(checks, func(l models.Listing) bool { return l.HasFeature(tag) })
	}

	return func(l models.Listing) bool {
		for _, check := range checks {
			if !check(l) {
				return false
			}
		}
		return true
	}
}

// Apply returns the listings matching c in their original order. The result is
// never nil, so an empty match encodes as an empty list.
func Apply(listings []models.Listing, c Criteria) []models.Listing {
	keep := Build(c)
	out := make([]models.Listing, 0, len(listings))
	for _, l := range listings {
		if keep(l) {
			out = append(out, l)
		}
	}
	return out
}
