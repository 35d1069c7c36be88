package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valencia-move/listings-backend/internal/filter"
	"github.com/valencia-move/listings-backend/internal/logger"
	"github.com/valencia-move/listings-backend/internal/models"
)

type memoryStore struct {
	listings []models.Listing
	replaced int
	err      error
}

func (m *memoryStore) GetAll(context.Context) ([]models.Listing, error) {
	return append([]models.Listing(nil), m.listings...), m.err
}

func (m *memoryStore) Count(context.Context) (int64, error) {
	return int64(len(m.listings)), m.err
}

func (m *memoryStore) ReplaceAll(_ context.Context, listings []models.Listing) error {
	if m.err != nil {
		return m.err
	}
	m.listings = append([]models.Listing(nil), listings...)
	m.replaced++
	return nil
}

func newTestService(t *testing.T, store *memoryStore, seedPath string) *ListingService {
	t.Helper()
	svc := NewListingService(store, ListingServiceConfig{
		SeedPath:   seedPath,
		PriceBands: []string{"0-1000", "1000-1400", "1400-1600", "1600+"},
		Parser:     filter.NewParser(3),
		Strict:     true,
		Logger:     logger.Discard(),
	})
	require.NoError(t, svc.Bootstrap(context.Background()))
	return svc
}

func TestBootstrapSeedsEmptyStore(t *testing.T) {
	store := &memoryStore{}
	svc := newTestService(t, store, "")

	assert.Equal(t, 1, store.replaced)
	assert.Len(t, svc.Listings(), 4)
}

func TestBootstrapKeepsExistingRows(t *testing.T) {
	store := &memoryStore{listings: []models.Listing{
		{ID: 42, Title: "Penthouse", Area: "russafa", Price: 2000, Coordinates: models.Coordinates{Lat: 39.46, Lon: -0.37}},
	}}
	svc := newTestService(t, store, "")

	assert.Zero(t, store.replaced)
	require.Len(t, svc.Listings(), 1)
	assert.Equal(t, int64(42), svc.Listings()[0].ID)
}

func TestBootstrapPropagatesStoreErrors(t *testing.T) {
	boom := errors.New("disk full")
	svc := NewListingService(&memoryStore{err: boom}, ListingServiceConfig{Logger: logger.Discard()})
	assert.ErrorIs(t, svc.Bootstrap(context.Background()), boom)
}

func TestReloadFromFileSwapsCollection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "listings.yaml")
	store := &memoryStore{}
	svc := newTestService(t, store, "")

	require.NoError(t, os.WriteFile(path, []byte(`
listings:
  - {id: 9, title: Loft, area: el-carmen, price: 950, beds: 1, baths: 1, size: 50, coordinates: {lat: 39.479, lon: -0.379}}
`), 0o644))
	svc.cfg.SeedPath = path
	require.NoError(t, svc.Reload(context.Background()))

	require.Len(t, svc.Listings(), 1)
	assert.Equal(t, "el-carmen", svc.Listings()[0].Area)
}

func TestSearch(t *testing.T) {
	svc := newTestService(t, &memoryStore{}, "")

	resp, err := svc.Search(models.RawFilters{Area: "all", Price: "1600+", Beds: "all"})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Count)
	assert.False(t, resp.Empty)
	assert.Equal(t, int64(4), resp.Data[0].ID)
	require.Len(t, resp.Markers, 1)
	assert.Equal(t, int64(4), resp.Markers[0].ListingID)
	require.NotNil(t, resp.Viewport)
	assert.Contains(t, resp.Cards, "Family Home in Benimaclet")
	assert.Equal(t, "1600+", resp.Criteria.Price)
	require.NotNil(t, resp.Prices)
	assert.Equal(t, 1600.0, resp.Prices.Median)

	resp, err = svc.Search(models.RawFilters{})
	require.NoError(t, err)
	assert.Equal(t, &models.PriceSummary{Count: 4, Min: 800, Q1: 1100, Median: 1300, Q3: 1450, Max: 1600, Mean: 1250}, resp.Prices)
}

func TestSearchEmpty(t *testing.T) {
	svc := newTestService(t, &memoryStore{}, "")

	resp, err := svc.Search(models.RawFilters{Area: "patraix"})
	require.NoError(t, err)
	assert.True(t, resp.Empty)
	assert.NotNil(t, resp.Data)
	assert.Empty(t, resp.Markers)
	assert.Nil(t, resp.Viewport)
	assert.Nil(t, resp.Prices)
	assert.Contains(t, resp.Cards, "No apartments found")
}

func TestWithin(t *testing.T) {
	svc := newTestService(t, &memoryStore{}, "")

	// Old town and Russafa, away from the beach
	resp, err := svc.Within(models.NewViewportFilter(models.RawFilters{}, 39.45, -0.38, 39.48, -0.37))
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, int64(1), resp.Data[0].ID)
	assert.Equal(t, int64(2), resp.Data[1].ID)

	resp, err = svc.Within(models.NewViewportFilter(models.RawFilters{Beds: "1"}, 39.45, -0.38, 39.48, -0.37))
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, int64(2), resp.Data[0].ID)

	_, err = svc.Within(models.NewViewportFilter(models.RawFilters{}, 40, 0, 39, 0))
	assert.ErrorIs(t, err, ErrInvalidViewport)

	_, err = svc.Within(models.ViewportFilter{})
	assert.ErrorIs(t, err, ErrInvalidViewport)
}

func TestGetByID(t *testing.T) {
	svc := newTestService(t, &memoryStore{}, "")

	d, err := svc.GetByID(2)
	require.NoError(t, err)
	assert.Equal(t, "Ciutat Vella", d.AreaLabel)
	assert.Contains(t, d.Details, "Price: €800/month")
	assert.Less(t, d.DistanceToCenterKm, 1.0)
	assert.Equal(t, 25.0, d.PricePercentile)

	_, err = svc.GetByID(99)
	assert.ErrorIs(t, err, ErrListingNotFound)
}

func TestOptions(t *testing.T) {
	svc := newTestService(t, &memoryStore{}, "")

	opts := svc.Options()
	assert.Equal(t, 4, opts.Total)
	assert.Equal(t, []string{"1", "2", "3+"}, opts.Beds)
	assert.Equal(t, 800.0, opts.MinPrice)
	assert.Equal(t, 1600.0, opts.MaxPrice)
	assert.Equal(t, 1300.0, opts.MedianPrice)
	require.Len(t, opts.Areas, 4)
	assert.Equal(t, models.AreaOption{Value: "russafa", Label: "Russafa", Count: 1}, opts.Areas[0])
	assert.Contains(t, opts.Features, "Parking")
	assert.IsIncreasing(t, opts.Features)
}
