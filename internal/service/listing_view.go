package service

import (
	"fmt"
	"log/slog"

	"github.com/valencia-move/listings-backend/internal/filter"
	"github.com/valencia-move/listings-backend/internal/mapview"
	"github.com/valencia-move/listings-backend/internal/models"
	"github.com/valencia-move/listings-backend/internal/render"
)

// RefreshResult is what one refresh of the view produced
type RefreshResult struct {
	Criteria filter.Criteria
	Issues   []filter.Issue
	Listings []models.Listing
	Markers  []models.Marker
}

// Observer is notified after every refresh
type Observer func(RefreshResult)

// ViewConfig wires a ListingView to its outputs. Nil Container or Surface
// means that part is absent from the page and is skipped.
type ViewConfig struct {
	Container render.Container
	Surface   mapview.Surface
	Parser    filter.Parser
	Strict    bool
	Logger    *slog.Logger
	Observers []Observer
}

// ListingView keeps a card list and a map consistent with the active filters.
// Each refresh is synchronous: filter, render cards, sync markers, notify.
type ListingView struct {
	listings  []models.Listing
	container render.Container
	markers   *mapview.Sync
	parser    filter.Parser
	observers []Observer
	log       *slog.Logger
}

// NewListingView creates a view over a read-only listing collection
func NewListingView(listings []models.Listing, cfg ViewConfig) *ListingView {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	parser := cfg.Parser
	if parser.TopBedroomBand < 1 {
		parser = filter.NewParser(filter.DefaultTopBedroomBand)
	}
	return &ListingView{
		listings:  listings,
		container: cfg.Container,
		markers:   mapview.NewSync(cfg.Surface, mapview.Options{Strict: cfg.Strict, Logger: log}),
		parser:    parser,
		observers: cfg.Observers,
		log:       log,
	}
}

// RefreshRaw parses control values and refreshes. Values that cannot be
// parsed are logged and leave their filter unconstrained.
func (v *ListingView) RefreshRaw(raw models.RawFilters) (RefreshResult, error) {
	criteria, issues := v.parser.Parse(raw)
	for _, issue := range issues {
		v.log.Warn("ignoring malformed filter value", "field", issue.Field, "value", issue.Value)
	}
	return v.refresh(criteria, issues)
}

// Refresh applies criteria to the collection and re-renders cards and markers
func (v *ListingView) Refresh(criteria filter.Criteria) (RefreshResult, error) {
	return v.refresh(criteria, nil)
}

func (v *ListingView) refresh(criteria filter.Criteria, issues []filter.Issue) (RefreshResult, error) {
	visible := filter.Apply(v.listings, criteria)

	if err := render.Cards(v.container, visible); err != nil {
		return RefreshResult{}, fmt.Errorf("failed to render listing cards: %w", err)
	}
	markers := v.markers.Sync(visible)

	result := RefreshResult{
		Criteria: criteria,
		Issues:   issues,
		Listings: visible,
		Markers:  markers,
	}
	for _, notify := range v.observers {
		notify(result)
	}
	return result, nil
}

// MarkerCount returns the number of markers the view has on its surface
func (v *ListingView) MarkerCount() int {
	return v.markers.Count()
}
