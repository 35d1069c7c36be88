// Package seed reads the static listing collection the service starts from.
package seed

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/valencia-move/listings-backend/internal/models"
)

//go:embed listings.yaml
var defaultSeed []byte

type file struct {
	Listings []entry `yaml:"listings"`
}

type entry struct {
	ID          int64              `yaml:"id"`
	Title       string             `yaml:"title"`
	Area        string             `yaml:"area"`
	Price       float64            `yaml:"price"`
	Beds        int                `yaml:"beds"`
	Baths       int                `yaml:"baths"`
	Size        float64            `yaml:"size"`
	Image       string             `yaml:"image"`
	Features    []string           `yaml:"features"`
	Coordinates models.Coordinates `yaml:"coordinates"`
	Description string             `yaml:"description"`
}

// Default returns the embedded Valencia listings
func Default() ([]models.Listing, error) {
	return Decode(strings.NewReader(string(defaultSeed)))
}

// Load reads listings from a YAML file, or the embedded seed when path is empty
func Load(path string) ([]models.Listing, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode parses and validates a YAML listing collection
func Decode(r io.Reader) ([]models.Listing, error) {
	var doc file
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode seed: %w", err)
	}

	listings := make([]models.Listing, 0, len(doc.Listings))
	for _, e := range doc.Listings {
		listings = append(listings, models.Listing{
			ID:          e.ID,
			Title:       strings.TrimSpace(e.Title),
			Area:        strings.TrimSpace(e.Area),
			Price:       e.Price,
			Beds:        e.Beds,
			Baths:       e.Baths,
			Size:        e.Size,
			Features:    e.Features,
			Coordinates: e.Coordinates,
			Description: strings.TrimSpace(e.Description),
			ImageURL:    e.Image,
		})
	}

	if err := Validate(listings); err != nil {
		return nil, err
	}
	return listings, nil
}

// Validate checks the collection invariants: unique ids and feature tags,
// valid coordinates, non-negative counts and prices
func Validate(listings []models.Listing) error {
	seen := make(map[int64]bool, len(listings))
	var errs []error
	for i, l := range listings {
		if seen[l.ID] {
			errs = append(errs, fmt.Errorf("listing %d: duplicate id %d", i, l.ID))
		}
		seen[l.ID] = true

		if l.Title == "" {
			errs = append(errs, fmt.Errorf("listing %d: empty title", l.ID))
		}
		if l.Area == "" {
			errs = append(errs, fmt.Errorf("listing %d: empty area", l.ID))
		}
		if !l.Coordinates.Valid() {
			errs = append(errs, fmt.Errorf("listing %d: coordinates (%f, %f) out of range", l.ID, l.Coordinates.Lat, l.Coordinates.Lon))
		}
		if l.Price < 0 || l.Beds < 0 || l.Baths < 0 || l.Size < 0 {
			errs = append(errs, fmt.Errorf("listing %d: negative price, size or room count", l.ID))
		}
		tags := make(map[string]bool, len(l.Features))
		for _, f := range l.Features {
			if tags[f] {
				errs = append(errs, fmt.Errorf("listing %d: duplicate feature %q", l.ID, f))
			}
			tags[f] = true
		}
	}
	return errors.Join(errs...)
}
