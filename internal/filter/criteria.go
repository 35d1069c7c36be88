// Package filter turns filter control values into a single listing predicate.
//
// Area and feature match exactly and case-sensitively against the listing's
// categorical area slug and feature tags. Price bands are inclusive; a band of
// the form "1600+" has no upper bound. A bedroom value at or above the top band
// means "that many or more". Any value that cannot be parsed drops that
// constraint instead of failing the query.
package filter

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/valencia-move/listings-backend/internal/models"
)

// All is the control value meaning "no constraint"
const All = "all"

// DefaultTopBedroomBand is the bedroom value that matches "N or more"
const DefaultTopBedroomBand = 3

// PriceBand is an inclusive monthly price range; Max is +Inf for open bands
type PriceBand struct {
	Min float64
	Max float64
}

// Open reports whether the band has no upper bound
func (b PriceBand) Open() bool {
	return math.IsInf(b.Max, 1)
}

// Contains reports whether price falls inside the band
func (b PriceBand) Contains(price float64) bool {
	return price >= b.Min && price <= b.Max
}

func (b PriceBand) String() string {
	if b.Open() {
		return fmt.Sprintf("%s+", formatNumber(b.Min))
	}
	return fmt.Sprintf("%s-%s", formatNumber(b.Min), formatNumber(b.Max))
}

// BedroomSelector matches an exact bedroom count, or a minimum when AtLeast is set
type BedroomSelector struct {
	Count   int
	AtLeast bool
}

// Matches reports whether beds satisfies the selector
func (s BedroomSelector) Matches(beds int) bool {
	if s.AtLeast {
		return beds >= s.Count
	}
	return beds == s.Count
}

func (s BedroomSelector) String() string {
	if s.AtLeast {
		return fmt.Sprintf("%d+", s.Count)
	}
	return strconv.Itoa(s.Count)
}

// Criteria is the parsed form of the filter controls. Zero values mean no constraint.
type Criteria struct {
	Area    string
	Price   *PriceBand
	Beds    *BedroomSelector
	Feature string
}

// None reports whether no axis is constrained
func (c Criteria) None() bool {
	return c.Area == "" && c.Price == nil && c.Beds == nil && c.Feature == ""
}

// Issue records a control value that was ignored because it could not be parsed
type Issue struct {
	Field string
	Value string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s=%q", i.Field, i.Value)
}

// Parser converts raw control values into Criteria
type Parser struct {
	TopBedroomBand int
}

// NewParser returns a parser whose top bedroom band is topBand (3 when < 1)
func NewParser(topBand int) Parser {
	if topBand < 1 {
		topBand = DefaultTopBedroomBand
	}
	return Parser{TopBedroomBand: topBand}
}

// Parse reads every control. Unparseable values are reported as issues and
// leave their axis unconstrained.
func (p Parser) Parse(raw models.RawFilters) (Criteria, []Issue) {
	var c Criteria
	var issues []Issue

	if !isAll(raw.Area) {
		c.Area = strings.TrimSpace(raw.Area)
	}
	if !isAll(raw.Feature) {
		c.Feature = strings.TrimSpace(raw.Feature)
	}

	if !isAll(raw.Price) {
		if band, ok := ParsePriceBand(raw.Price); ok {
			c.Price = &band
		} else {
			issues = append(issues, Issue{Field: "price", Value: raw.Price})
		}
	}

	if !isAll(raw.Beds) {
		if sel, ok := p.ParseBedrooms(raw.Beds); ok {
			c.Beds = &sel
		} else {
			issues = append(issues, Issue{Field: "beds", Value: raw.Beds})
		}
	}

	return c, issues
}

var priceBandPattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*(?:-\s*(\d+(?:\.\d+)?)|(\+))$`)

// ParsePriceBand parses "min-max" or "min+". It returns false for anything
// else, including bands whose min exceeds their max.
func ParsePriceBand(s string) (PriceBand, bool) {
	m := priceBandPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return PriceBand{}, false
	}

	lo, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return PriceBand{}, false
	}
	if m[3] == "+" {
		return PriceBand{Min: lo, Max: math.Inf(1)}, true
	}

	hi, err := strconv.ParseFloat(m[2], 64)
	if err != nil || hi < lo {
		return PriceBand{}, false
	}
	return PriceBand{Min: lo, Max: hi}, true
}

// ParseBedrooms parses "N" or "N+". N at or above the top band means N or more.
func (p Parser) ParseBedrooms(s string) (BedroomSelector, bool) {
	s = strings.TrimSpace(s)
	atLeast := strings.HasSuffix(s, "+")
	digits := strings.TrimSuffix(s, "+")
	// Atoi accepts a sign; a bedroom count is bare digits
	if digits == "" || digits[0] == '+' || digits[0] == '-' {
		return BedroomSelector{}, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 0 {
		return BedroomSelector{}, false
	}
	top := p.TopBedroomBand
	if top < 1 {
		top = DefaultTopBedroomBand
	}
	return BedroomSelector{Count: n, AtLeast: atLeast || n >= top}, true
}

func isAll(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || strings.EqualFold(s, All)
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
