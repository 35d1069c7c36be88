package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/valencia-move/listings-backend/internal/database"
	"github.com/valencia-move/listings-backend/internal/models"
)

// ListingRepository handles database operations for listings
type ListingRepository struct {
	db *sql.DB
}

// NewListingRepository creates a new listing repository
func NewListingRepository(db *sql.DB) *ListingRepository {
	return &ListingRepository{db: db}
}

// GetAll retrieves every listing in seed order, features included
func (r *ListingRepository) GetAll(ctx context.Context) ([]models.Listing, error) {
	query := `SELECT id, title, area, price, beds, baths, size, latitude, longitude, description, image_url
		FROM listings
		ORDER BY position ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query listings: %w", err)
	}
	defer rows.Close()

	var listings []models.Listing
	index := make(map[int64]int)
	for rows.Next() {
		var l models.Listing
		err := rows.Scan(
			&l.ID, &l.Title, &l.Area, &l.Price, &l.Beds, &l.Baths, &l.Size,
			&l.Coordinates.Lat, &l.Coordinates.Lon, &l.Description, &l.ImageURL,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan listing: %w", err)
		}
		index[l.ID] = len(listings)
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate listings: %w", err)
	}

	features, err := r.db.QueryContext(ctx, `SELECT listing_id, feature FROM listing_features ORDER BY listing_id, position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query listing features: %w", err)
	}
	defer features.Close()

	for features.Next() {
		var id int64
		var feature string
		if err := features.Scan(&id, &feature); err != nil {
			return nil, fmt.Errorf("failed to scan listing feature: %w", err)
		}
		if i, ok := index[id]; ok {
			listings[i].Features = append(listings[i].Features, feature)
		}
	}
	if err := features.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate listing features: %w", err)
	}

	return listings, nil
}

// Count returns the number of stored listings
func (r *ListingRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM listings").Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count listings: %w", err)
	}
	return total, nil
}

// ReplaceAll swaps the stored collection for listings in one transaction
func (r *ListingRepository) ReplaceAll(ctx context.Context, listings []models.Listing) error {
	return database.Transaction(r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM listing_features"); err != nil {
			return fmt.Errorf("failed to clear listing features: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM listings"); err != nil {
			return fmt.Errorf("failed to clear listings: %w", err)
		}

		listingStmt, err := tx.PrepareContext(ctx, `INSERT INTO listings
			(id, title, area, price, beds, baths, size, latitude, longitude, description, image_url, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare listing statement: %w", err)
		}
		defer listingStmt.Close()

		featureStmt, err := tx.PrepareContext(ctx, `INSERT INTO listing_features (listing_id, feature, position) VALUES (?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare feature statement: %w", err)
		}
		defer featureStmt.Close()

		for pos, l := range listings {
			_, err := listingStmt.ExecContext(ctx,
				l.ID, l.Title, l.Area, l.Price, l.Beds, l.Baths, l.Size,
				l.Coordinates.Lat, l.Coordinates.Lon, l.Description, l.ImageURL, pos,
			)
			if err != nil {
				return fmt.Errorf("failed to insert listing %d: %w", l.ID, err)
			}
			for fpos, feature := range l.Features {
				if _, err := featureStmt.ExecContext(ctx, l.ID, feature, fpos); err != nil {
					return fmt.Errorf("failed to insert feature %q of listing %d: %w", feature, l.ID, err)
				}
			}
		}
		return nil
	})
}
