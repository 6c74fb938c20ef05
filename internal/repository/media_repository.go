package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"product-admin/internal/domain"
)

var (
	ErrMediaNotFound = errors.New("media asset not found")
)

// MediaRepository resolves media library entries. Product serialization
// uses it to derive featured_image_url at read time.
type MediaRepository interface {
	FindByID(ctx context.Context, id int) (*domain.MediaAsset, error)
	List(ctx context.Context) ([]*domain.MediaAsset, error)
}

type mediaRepository struct {
	db *sql.DB
}

// NewMediaRepository creates a new instance of MediaRepository
func NewMediaRepository(db *sql.DB) MediaRepository {
	return &mediaRepository{db: db}
}

// FindByID retrieves a media asset by ID
func (r *mediaRepository) FindByID(ctx context.Context, id int) (*domain.MediaAsset, error) {
	query := `
		SELECT id, title, url, thumbnail_url, mime_type, created_at
		FROM media_assets
		WHERE id = $1
	`

	asset := &domain.MediaAsset{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&asset.ID,
		&asset.Title,
		&asset.URL,
		&asset.ThumbnailURL,
		&asset.MimeType,
		&asset.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrMediaNotFound
		}
		return nil, fmt.Errorf("failed to find media asset by ID: %w", err)
	}

	return asset, nil
}

// List retrieves all media assets, newest first
func (r *mediaRepository) List(ctx context.Context) ([]*domain.MediaAsset, error) {
	query := `
		SELECT id, title, url, thumbnail_url, mime_type, created_at
		FROM media_assets
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list media assets: %w", err)
	}
	defer rows.Close()

	assets := []*domain.MediaAsset{}
	for rows.Next() {
		asset := &domain.MediaAsset{}
		err := rows.Scan(
			&asset.ID,
			&asset.Title,
			&asset.URL,
			&asset.ThumbnailURL,
			&asset.MimeType,
			&asset.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan media asset: %w", err)
		}
		assets = append(assets, asset)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating media assets: %w", err)
	}

	return assets, nil
}
