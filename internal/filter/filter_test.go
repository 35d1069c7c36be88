package filter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valencia-move/listings-backend/internal/models"
)

func valencia() []models.Listing {
	return []models.Listing{
		{ID: 1, Title: "Modern Apartment in Russafa", Area: "russafa", Price: 1200, Beds: 2, Features: []string{"Balcony", "AC", "Elevator"}},
		{ID: 2, Title: "Cozy Studio in Ciutat Vella", Area: "ciutat-vella", Price: 800, Beds: 1, Features: []string{"Furnished"}},
		{ID: 3, Title: "Beach View Apartment", Area: "cabanyal", Price: 1400, Beds: 2, Features: []string{"Sea View", "Balcony", "Parking"}},
		{ID: 4, Title: "Family Home in Benimaclet", Area: "benimaclet", Price: 1600, Beds: 3, Features: []string{"Garden", "Parking"}},
	}
}

func ids(listings []models.Listing) []int64 {
	out := make([]int64, 0, len(listings))
	for _, l := range listings {
		out = append(out, l.ID)
	}
	return out
}

func parse(t *testing.T, raw models.RawFilters) Criteria {
	t.Helper()
	c, issues := NewParser(DefaultTopBedroomBand).Parse(raw)
	require.Empty(t, issues)
	return c
}

func TestNoConstraintReturnsEverythingInOrder(t *testing.T) {
	for _, raw := range []models.RawFilters{
		{},
		{Area: "all", Price: "all", Beds: "all", Feature: "all"},
		{Area: " ALL ", Price: "", Beds: "All"},
	} {
		c := parse(t, raw)
		assert.True(t, c.None())
		assert.Equal(t, []int64{1, 2, 3, 4}, ids(Apply(valencia(), c)))
	}
}

func TestOpenPriceBand(t *testing.T) {
	collection := []models.Listing{
		{ID: 1, Area: "russafa", Price: 1200, Beds: 2},
		{ID: 2, Area: "cabanyal", Price: 1400, Beds: 2},
		{ID: 3, Area: "benimaclet", Price: 1600, Beds: 3},
	}
	c := parse(t, models.RawFilters{Area: "all", Price: "1600+", Beds: "all"})
	assert.Equal(t, []int64{3}, ids(Apply(collection, c)))
}

func TestTopBedroomBandMatchesThreeOrMore(t *testing.T) {
	collection := []models.Listing{{ID: 1, Beds: 1}, {ID: 2, Beds: 2}, {ID: 3, Beds: 3}, {ID: 4, Beds: 4}, {ID: 5, Beds: 5}}
	c := parse(t, models.RawFilters{Beds: "3"})
	assert.Equal(t, []int64{3, 4, 5}, ids(Apply(collection, c)))
}

func TestLowerBedroomBandsMatchExactly(t *testing.T) {
	collection := []models.Listing{{ID: 1, Beds: 1}, {ID: 2, Beds: 2}, {ID: 3, Beds: 3}}
	c := parse(t, models.RawFilters{Beds: "2"})
	assert.Equal(t, []int64{2}, ids(Apply(collection, c)))

	c = parse(t, models.RawFilters{Beds: "1+"})
	assert.Equal(t, []int64{1, 2, 3}, ids(Apply(collection, c)))
}

func TestClosedPriceBandIsInclusive(t *testing.T) {
	collection := []models.Listing{{ID: 1, Price: 799}, {ID: 2, Price: 800}, {ID: 3, Price: 1200}, {ID: 4, Price: 1201}}
	c := parse(t, models.RawFilters{Price: "800-1200"})
	require.NotNil(t, c.Price)
	assert.Equal(t, 800.0, c.Price.Min)
	assert.Equal(t, 1200.0, c.Price.Max)
	assert.Equal(t, []int64{2, 3}, ids(Apply(collection, c)))
}

func TestPriceExclusionRule(t *testing.T) {
	bands := []PriceBand{{Min: 800, Max: 1200}, {Min: 1000, Max: math.Inf(1)}, {Min: 0, Max: 0}}
	for _, band := range bands {
		for _, l := range valencia() {
			excluded := l.Price < band.Min || (!band.Open() && l.Price > band.Max)
			got := Apply([]models.Listing{l}, Criteria{Price: &band})
			assert.Equal(t, excluded, len(got) == 0, "band %s listing %d", band, l.ID)
		}
	}
}

func TestAreaIsExactAndCaseSensitive(t *testing.T) {
	assert.Equal(t, []int64{2}, ids(Apply(valencia(), parse(t, models.RawFilters{Area: "ciutat-vella"}))))
	assert.Empty(t, Apply(valencia(), parse(t, models.RawFilters{Area: "Russafa"})))
	assert.Empty(t, Apply(valencia(), parse(t, models.RawFilters{Area: "russ"})))
}

func TestFeatureFilter(t *testing.T) {
	c := parse(t, models.RawFilters{Feature: "Parking"})
	assert.Equal(t, []int64{3, 4}, ids(Apply(valencia(), c)))

	c = parse(t, models.RawFilters{Feature: "Balcony", Price: "1000-1300"})
	assert.Equal(t, []int64{1}, ids(Apply(valencia(), c)))
}

func TestEmptyResultIsNotNil(t *testing.T) {
	got := Apply(valencia(), parse(t, models.RawFilters{Area: "patraix"}))
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestMalformedValuesDropTheConstraint(t *testing.T) {
	c, issues := NewParser(3).Parse(models.RawFilters{Price: "cheap", Beds: "two", Area: "russafa"})
	require.Len(t, issues, 2)
	assert.Equal(t, Issue{Field: "price", Value: "cheap"}, issues[0])
	assert.Equal(t, "beds", issues[1].Field)
	assert.Nil(t, c.Price)
	assert.Nil(t, c.Beds)
	assert.Equal(t, []int64{1}, ids(Apply(valencia(), c)))
}

func TestParsePriceBand(t *testing.T) {
	cases := []struct {
		in   string
		ok   bool
		want PriceBand
	}{
		{"800-1200", true, PriceBand{Min: 800, Max: 1200}},
		{" 1000 - 1400 ", true, PriceBand{Min: 1000, Max: 1400}},
		{"1600+", true, PriceBand{Min: 1600, Max: math.Inf(1)}},
		{"999.5-1000", true, PriceBand{Min: 999.5, Max: 1000}},
		{"1200-800", false, PriceBand{}},
		{"-500", false, PriceBand{}},
		{"1600", false, PriceBand{}},
		{"abc-def", false, PriceBand{}},
		{"", false, PriceBand{}},
	}
	for _, tc := range cases {
		got, ok := ParsePriceBand(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestPriceBandString(t *testing.T) {
	assert.Equal(t, "1600+", PriceBand{Min: 1600, Max: math.Inf(1)}.String())
	assert.Equal(t, "800-1200", PriceBand{Min: 800, Max: 1200}.String())
}

func TestCustomTopBand(t *testing.T) {
	sel, ok := NewParser(4).ParseBedrooms("3")
	require.True(t, ok)
	assert.False(t, sel.AtLeast)

	sel, ok = NewParser(0).ParseBedrooms("3")
	require.True(t, ok)
	assert.True(t, sel.AtLeast)
	assert.Equal(t, "3+", sel.String())

	_, ok = NewParser(3).ParseBedrooms("-1")
	assert.False(t, ok)
}

func TestParseBedroomsRejectsSigns(t *testing.T) {
	p := NewParser(DefaultTopBedroomBand)
	for _, raw := range []string{"+1", "+3", "-0", "+", "-2+", "++"} {
		_, ok := p.ParseBedrooms(raw)
		assert.False(t, ok, raw)
	}

	c, issues := p.Parse(models.RawFilters{Beds: "+1"})
	assert.Nil(t, c.Beds)
	require.Len(t, issues, 1)
	assert.Equal(t, Issue{Field: "beds", Value: "+1"}, issues[0])
}
