package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync/atomic"

	"github.com/valencia-move/listings-backend/internal/filter"
	"github.com/valencia-move/listings-backend/internal/mapview"
	"github.com/valencia-move/listings-backend/internal/models"
	"github.com/valencia-move/listings-backend/internal/render"
	"github.com/valencia-move/listings-backend/internal/seed"
	"github.com/valencia-move/listings-backend/internal/spatial"
	"github.com/valencia-move/listings-backend/internal/stats"
)

// ErrListingNotFound is returned when no listing has the requested id
var ErrListingNotFound = errors.New("listing not found")

// ErrInvalidViewport is returned for a bounding box whose min corner is above its max corner
var ErrInvalidViewport = errors.New("invalid viewport")

// ListingStore persists the listing collection
type ListingStore interface {
	GetAll(ctx context.Context) ([]models.Listing, error)
	Count(ctx context.Context) (int64, error)
	ReplaceAll(ctx context.Context, listings []models.Listing) error
}

// ListingServiceConfig configures a ListingService
type ListingServiceConfig struct {
	SeedPath   string
	PriceBands []string
	Parser     filter.Parser
	Strict     bool
	Logger     *slog.Logger
}

// catalog is an immutable snapshot of the collection
type catalog struct {
	listings []models.Listing
	byID     map[int64]int
	index    *spatial.Index
	prices   []float64
}

func newCatalog(listings []models.Listing) *catalog {
	byID := make(map[int64]int, len(listings))
	for i, l := range listings {
		byID[l.ID] = i
	}
	return &catalog{listings: listings, byID: byID, index: spatial.NewIndex(listings), prices: prices(listings)}
}

// ListingService serves filtered views over the listing collection
type ListingService struct {
	store   ListingStore
	cfg     ListingServiceConfig
	log     *slog.Logger
	current atomic.Pointer[catalog]
}

// NewListingService creates a listing service with an empty collection; call Bootstrap to load it
func NewListingService(store ListingStore, cfg ListingServiceConfig) *ListingService {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Parser.TopBedroomBand < 1 {
		cfg.Parser = filter.NewParser(filter.DefaultTopBedroomBand)
	}
	s := &ListingService{
		store: store,
		cfg:   cfg,
		log:   cfg.Logger.With("component", "listing_service"),
	}
	s.current.Store(newCatalog(nil))
	return s
}

// Bootstrap seeds an empty store and loads the collection into memory
func (s *ListingService) Bootstrap(ctx context.Context) error {
	n, err := s.store.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count listings: %w", err)
	}
	if n == 0 {
		return s.Reload(ctx)
	}
	return s.load(ctx)
}

// Reload re-reads the seed into the store and swaps the in-memory collection
func (s *ListingService) Reload(ctx context.Context) error {
	listings, err := seed.Load(s.cfg.SeedPath)
	if err != nil {
		return fmt.Errorf("failed to load seed: %w", err)
	}
	if err := s.store.ReplaceAll(ctx, listings); err != nil {
		return fmt.Errorf("failed to store seed: %w", err)
	}
	s.log.Info("seeded listings", "count", len(listings), "source", seedSource(s.cfg.SeedPath))
	return s.load(ctx)
}

func (s *ListingService) load(ctx context.Context) error {
	listings, err := s.store.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load listings: %w", err)
	}
	if err := seed.Validate(listings); err != nil {
		return fmt.Errorf("stored listings are invalid: %w", err)
	}
	s.current.Store(newCatalog(listings))
	s.log.Info("listings loaded", "count", len(listings))
	return nil
}

// Listings returns the current collection
func (s *ListingService) Listings() []models.Listing {
	return s.current.Load().listings
}

// NewView creates a view over the current collection bound to container and surface
func (s *ListingService) NewView(container render.Container, surface mapview.Surface, observers ...Observer) *ListingView {
	return NewListingView(s.Listings(), ViewConfig{
		Container: container,
		Surface:   surface,
		Parser:    s.cfg.Parser,
		Strict:    s.cfg.Strict,
		Logger:    s.log,
		Observers: observers,
	})
}

// Search filters the collection and returns cards, markers and the fitted viewport
func (s *ListingService) Search(raw models.RawFilters) (*models.ListingsResponse, error) {
	return s.search(s.Listings(), raw)
}

// Within filters the listings inside a bounding box
func (s *ListingService) Within(f models.ViewportFilter) (*models.ListingsResponse, error) {
	box, ok := f.Box()
	if !ok {
		return nil, fmt.Errorf("%w: minLat, minLon, maxLat and maxLon are required", ErrInvalidViewport)
	}
	if box.MinLat > box.MaxLat || box.MinLon > box.MaxLon {
		return nil, fmt.Errorf("%w: min corner must be below and left of max corner", ErrInvalidViewport)
	}

	cat := s.current.Load()
	positions, err := cat.index.Search(box)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidViewport, err)
	}
	inside := make([]models.Listing, 0, len(positions))
	for _, pos := range positions {
		inside = append(inside, cat.listings[pos])
	}
	return s.search(inside, f.RawFilters)
}

func (s *ListingService) search(listings []models.Listing, raw models.RawFilters) (*models.ListingsResponse, error) {
	container := render.NewBuffer()
	layer := mapview.NewLayer()
	view := NewListingView(listings, ViewConfig{
		Container: container,
		Surface:   layer,
		Parser:    s.cfg.Parser,
		Strict:    s.cfg.Strict,
		Logger:    s.log,
		Observers: []Observer{s.logRefresh},
	})

	result, err := view.RefreshRaw(raw)
	if err != nil {
		return nil, err
	}

	return &models.ListingsResponse{
		Data:     result.Listings,
		Count:    len(result.Listings),
		Empty:    len(result.Listings) == 0,
		Cards:    string(container.HTML()),
		Markers:  layer.Markers(),
		Viewport: layer.Viewport(),
		Prices:   summarizePrices(result.Listings),
		Criteria: raw,
	}, nil
}

func prices(listings []models.Listing) []float64 {
	out := make([]float64, len(listings))
	for i, l := range listings {
		out[i] = l.Price
	}
	return out
}

// summarizePrices returns nil for an empty result
func summarizePrices(listings []models.Listing) *models.PriceSummary {
	if len(listings) == 0 {
		return nil
	}
	s := stats.Summarize(prices(listings))
	return &models.PriceSummary{
		Count:  s.Count,
		Min:    s.Min,
		Q1:     round2(s.Q1),
		Median: round2(s.Median),
		Q3:     round2(s.Q3),
		Max:    s.Max,
		Mean:   round2(s.Mean),
	}
}

func (s *ListingService) logRefresh(r RefreshResult) {
	s.log.Debug("listing view refreshed",
		"visible", len(r.Listings), "markers", len(r.Markers), "ignored_filters", len(r.Issues))
}

// GetByID returns one listing with its detail text
func (s *ListingService) GetByID(id int64) (*models.ListingDetail, error) {
	cat := s.current.Load()
	pos, ok := cat.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrListingNotFound, id)
	}
	l := cat.listings[pos]
	return &models.ListingDetail{
		Listing:            l,
		AreaLabel:          render.AreaLabel(l.Area),
		Details:            render.Details(l),
		DistanceToCenterKm: round2(spatial.DistanceKm(l.Coordinates, spatial.ValenciaCenter)),
		PricePercentile:    round2(stats.PercentileRank(cat.prices, l.Price)),
	}, nil
}

// Options describes the values the filter controls can take for the current collection
func (s *ListingService) Options() *models.FilterOptions {
	cat := s.current.Load()
	listings := cat.listings
	top := s.cfg.Parser.TopBedroomBand

	opts := &models.FilterOptions{
		PriceBands:  s.cfg.PriceBands,
		MedianPrice: stats.Quantile(cat.prices, 0.5),
		Total:       len(listings),
	}
	for n := 1; n < top; n++ {
		opts.Beds = append(opts.Beds, fmt.Sprint(n))
	}
	opts.Beds = append(opts.Beds, fmt.Sprintf("%d+", top))

	areaCount := make(map[string]int)
	var areaOrder []string
	features := make(map[string]bool)
	for i, l := range listings {
		if areaCount[l.Area] == 0 {
			areaOrder = append(areaOrder, l.Area)
		}
		areaCount[l.Area]++
		for _, f := range l.Features {
			features[f] = true
		}
		if i == 0 || l.Price < opts.MinPrice {
			opts.MinPrice = l.Price
		}
		if l.Price > opts.MaxPrice {
			opts.MaxPrice = l.Price
		}
	}

	for _, area := range areaOrder {
		opts.Areas = append(opts.Areas, models.AreaOption{Value: area, Label: render.AreaLabel(area), Count: areaCount[area]})
	}
	for f := range features {
		opts.Features = append(opts.Features, f)
	}
	sort.Strings(opts.Features)

	return opts
}

func seedSource(path string) string {
	if path == "" {
		return "embedded"
	}
	return path
}
