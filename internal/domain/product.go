package domain

import (
	"time"
)

// ProductStatus is the lifecycle state of a product record. Everything this
// API creates is published immediately; there is no draft or trash stage.
const ProductStatusPublish = "publish"

// Product is a catalog entry stored as a generic content record plus
// attached meta fields and category associations.
type Product struct {
	ID              int       `json:"id" db:"id"`
	Title           string    `json:"title" db:"title"`
	Description     string    `json:"description" db:"description"`
	Price           float64   `json:"price" db:"price"`
	SalePrice       float64   `json:"sale_price" db:"sale_price"`
	IsOnSale        bool      `json:"is_on_sale" db:"is_on_sale"`
	YoutubeVideo    string    `json:"youtube_video" db:"youtube_video"`
	FeaturedImageID int       `json:"featured_image_id" db:"featured_image_id"`
	Status          string    `json:"status" db:"status"`
	CreatedAt       time.Time `json:"-" db:"created_at"`
}

// Category is a taxonomy term attached to products. Count is derived from
// the current associations and never stored.
type Category struct {
	ID    int    `json:"id" db:"id"`
	Name  string `json:"name" db:"name"`
	Slug  string `json:"slug" db:"slug"`
	Count int    `json:"count" db:"-"`
}

// MediaAsset is an entry in the media library. ThumbnailURL is what product
// serialization resolves featured_image_id against.
type MediaAsset struct {
	ID           int       `json:"id" db:"id"`
	Title        string    `json:"title" db:"title"`
	URL          string    `json:"url" db:"url"`
	ThumbnailURL string    `json:"thumbnail_url" db:"thumbnail_url"`
	MimeType     string    `json:"mime_type" db:"mime_type"`
	CreatedAt    time.Time `json:"-" db:"created_at"`
}
