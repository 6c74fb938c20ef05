package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"product-admin/internal/domain"
	"product-admin/internal/repository"
	"product-admin/internal/sanitize"
)

const (
	// DefaultPerPage mirrors the list route's default page size.
	DefaultPerPage = 20

	// MaxPerPage caps a single page so a client cannot request the whole
	// catalog in one query.
	MaxPerPage = 100

	// dateLayout is the format used for the read-only creation timestamp.
	dateLayout = "2006-01-02 15:04:05"
)

var (
	ErrDeleteFailed = errors.New("failed to delete product")
)

// ProductInput is a partial product payload. Nil fields were absent from
// the request body and must leave the stored value untouched.
type ProductInput struct {
	Title           *string  `json:"title"`
	Description     *string  `json:"description"`
	Price           *float64 `json:"price"`
	SalePrice       *float64 `json:"sale_price"`
	IsOnSale        *bool    `json:"is_on_sale"`
	YoutubeVideo    *string  `json:"youtube_video"`
	FeaturedImageID *int     `json:"featured_image_id"`
	Categories      *[]int   `json:"categories"`
}

// ProductView is the public JSON shape of a product. featured_image_url and
// categories are derived from the store's current state on every read.
type ProductView struct {
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	Description      string  `json:"description"`
	Price            float64 `json:"price"`
	SalePrice        float64 `json:"sale_price"`
	IsOnSale         bool    `json:"is_on_sale"`
	YoutubeVideo     string  `json:"youtube_video"`
	FeaturedImageID  int     `json:"featured_image_id"`
	FeaturedImageURL string  `json:"featured_image_url"`
	Categories       []int   `json:"categories"`
	Date             string  `json:"date"`
	Status           string  `json:"status"`
}

// ListOptions carries the list route's query parameters with named
// defaults applied at the boundary.
type ListOptions struct {
	Search  string
	Page    int
	PerPage int
}

// Normalize clamps the options into a valid range
func (o ListOptions) Normalize() ListOptions {
	if o.Page < 1 {
		o.Page = 1
	}
	if o.PerPage < 1 {
		o.PerPage = DefaultPerPage
	}
	if o.PerPage > MaxPerPage {
		o.PerPage = MaxPerPage
	}
	return o
}

// ProductService defines the business logic over the product catalog
type ProductService interface {
	List(ctx context.Context, opts ListOptions) (products []*ProductView, total, totalPages int, err error)
	Get(ctx context.Context, id int) (*ProductView, error)
	Create(ctx context.Context, input ProductInput) (*ProductView, error)
	Update(ctx context.Context, id int, input ProductInput) (*ProductView, error)
	Delete(ctx context.Context, id int) error
	Categories(ctx context.Context) ([]*domain.Category, error)
	Media(ctx context.Context) ([]*domain.MediaAsset, error)
}

type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	mediaRepo    repository.MediaRepository
}

// NewProductService creates a new instance of ProductService
func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	mediaRepo repository.MediaRepository,
) ProductService {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		mediaRepo:    mediaRepo,
	}
}

// List returns one page of products, newest first, plus pagination totals
func (s *productService) List(ctx context.Context, opts ListOptions) ([]*ProductView, int, int, error) {
	opts = opts.Normalize()

	products, total, err := s.productRepo.List(ctx, opts.Search, opts.Page, opts.PerPage)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to list products: %w", err)
	}

	views := make([]*ProductView, 0, len(products))
	for _, product := range products {
		view, err := s.serialize(ctx, product)
		if err != nil {
			return nil, 0, 0, err
		}
		views = append(views, view)
	}

	totalPages := (total + opts.PerPage - 1) / opts.PerPage

	return views, total, totalPages, nil
}

// Get returns a single serialized product
func (s *productService) Get(ctx context.Context, id int) (*ProductView, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.serialize(ctx, product)
}

// Create builds a new published product from the supplied fields. Absent
// fields fall back to their zero defaults.
func (s *productService) Create(ctx context.Context, input ProductInput) (*ProductView, error) {
	product := &domain.Product{
		Status:    domain.ProductStatusPublish,
		CreatedAt: time.Now(),
	}
	applyFields(product, input)

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	if input.Categories != nil {
		if err := s.productRepo.ReplaceCategories(ctx, product.ID, *input.Categories); err != nil {
			return nil, err
		}
	}

	return s.serialize(ctx, product)
}

// Update applies a partial payload to an existing product. Only fields
// present in the input are mutated; categories replace the whole set.
func (s *productService) Update(ctx context.Context, id int, input ProductInput) (*ProductView, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	applyFields(product, input)

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	if input.Categories != nil {
		if err := s.productRepo.ReplaceCategories(ctx, product.ID, *input.Categories); err != nil {
			return nil, err
		}
	}

	return s.serialize(ctx, product)
}

// Delete permanently removes a product. There is no trash stage to recover
// from.
func (s *productService) Delete(ctx context.Context, id int) error {
	if _, err := s.productRepo.FindByID(ctx, id); err != nil {
		return err
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrDeleteFailed, err)
	}

	return nil
}

// Categories lists every category with its derived product count
func (s *productService) Categories(ctx context.Context) ([]*domain.Category, error) {
	return s.categoryRepo.List(ctx)
}

// Media lists the media library for the image picker
func (s *productService) Media(ctx context.Context) ([]*domain.MediaAsset, error) {
	return s.mediaRepo.List(ctx)
}

// applyFields copies the present input fields onto the product, sanitizing
// text on the way in. A featured_image_id of 0 clears the image.
func applyFields(product *domain.Product, input ProductInput) {
	if input.Title != nil {
		product.Title = sanitize.PlainText(*input.Title)
	}
	if input.Description != nil {
		product.Description = sanitize.RichText(*input.Description)
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.SalePrice != nil {
		product.SalePrice = *input.SalePrice
	}
	if input.IsOnSale != nil {
		product.IsOnSale = *input.IsOnSale
	}
	if input.YoutubeVideo != nil {
		product.YoutubeVideo = sanitize.URL(*input.YoutubeVideo)
	}
	if input.FeaturedImageID != nil {
		product.FeaturedImageID = *input.FeaturedImageID
	}
}

// serialize recomputes the derived fields from the store's current state
func (s *productService) serialize(ctx context.Context, product *domain.Product) (*ProductView, error) {
	imageURL := ""
	if product.FeaturedImageID > 0 {
		asset, err := s.mediaRepo.FindByID(ctx, product.FeaturedImageID)
		switch {
		case err == nil:
			imageURL = asset.ThumbnailURL
			if imageURL == "" {
				imageURL = asset.URL
			}
		case errors.Is(err, repository.ErrMediaNotFound):
			// Dangling reference; render as "no image".
		default:
			return nil, err
		}
	}

	categoryIDs, err := s.productRepo.CategoryIDs(ctx, product.ID)
	if err != nil {
		return nil, err
	}

	return &ProductView{
		ID:               product.ID,
		Title:            product.Title,
		Description:      product.Description,
		Price:            product.Price,
		SalePrice:        product.SalePrice,
		IsOnSale:         product.IsOnSale,
		YoutubeVideo:     product.YoutubeVideo,
		FeaturedImageID:  product.FeaturedImageID,
		FeaturedImageURL: imageURL,
		Categories:       categoryIDs,
		Date:             product.CreatedAt.Format(dateLayout),
		Status:           product.Status,
	}, nil
}
