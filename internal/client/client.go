// Package client is a typed HTTP client for the jeec/v1 product API. It is
// what the admin tooling talks through; credentials are attached to every
// request from the injected configuration.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const apiNamespace = "/jeec/v1"

// ListPerPage is the page size the admin list view requests, deliberately
// larger than the server route's own default of 20.
const ListPerPage = 100

// Config is the page-load configuration the host environment injects:
// where the API lives, the credential to attach, and where the admin
// screens are served from.
type Config struct {
	BaseURL  string
	Token    string
	AdminURL string
}

// Client calls the jeec/v1 endpoints
type Client struct {
	cfg  Config
	http *http.Client
}

// New creates a Client from the injected configuration
func New(cfg Config) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

// AdminURL returns the configured admin base URL
func (c *Client) AdminURL() string {
	return c.cfg.AdminURL
}

// Product is the serialized product shape returned by the API
type Product struct {
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

// ProductPayload is a partial product body. Nil fields are omitted from
// the request and keep their stored values server-side.
type ProductPayload struct {
	Title           *string  `json:"title,omitempty"`
	Description     *string  `json:"description,omitempty"`
	Price           *float64 `json:"price,omitempty"`
	SalePrice       *float64 `json:"sale_price,omitempty"`
	IsOnSale        *bool    `json:"is_on_sale,omitempty"`
	YoutubeVideo    *string  `json:"youtube_video,omitempty"`
	FeaturedImageID *int     `json:"featured_image_id,omitempty"`
	Categories      *[]int   `json:"categories,omitempty"`
}

// Category is a taxonomy term with its derived product count
type Category struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Count int    `json:"count"`
}

// MediaAsset is a media library entry offered by the image picker
type MediaAsset struct {
	ID           int    `json:"id"`
	Title        string `json:"title"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url"`
	MimeType     string `json:"mime_type"`
}

// DeleteResult confirms a permanent delete
type DeleteResult struct {
	Deleted bool `json:"deleted"`
	ID      int  `json:"id"`
}

// ProductPage is one page of products plus the pagination totals read
// from the response headers.
type ProductPage struct {
	Products   []Product
	Total      int
	TotalPages int
}

// APIError is a structured error response from the server
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d (%s): %s", e.StatusCode, e.Code, e.Message)
}

// ListProducts fetches one page of products, requesting ListPerPage when
// perPage is zero.
func (c *Client) ListProducts(ctx context.Context, perPage, page int, search string) (*ProductPage, error) {
	if perPage <= 0 {
		perPage = ListPerPage
	}
	if page <= 0 {
		page = 1
	}

	query := url.Values{}
	query.Set("per_page", strconv.Itoa(perPage))
	query.Set("page", strconv.Itoa(page))
	if search != "" {
		query.Set("search", search)
	}

	var products []Product
	header, err := c.do(ctx, http.MethodGet, "/products?"+query.Encode(), nil, &products)
	if err != nil {
		return nil, err
	}

	total, _ := strconv.Atoi(header.Get("X-WP-Total"))
	totalPages, _ := strconv.Atoi(header.Get("X-WP-TotalPages"))

	return &ProductPage{
		Products:   products,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

// GetProduct fetches a single product by ID
func (c *Client) GetProduct(ctx context.Context, id int) (*Product, error) {
	var product Product
	if _, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateProduct creates a new product
func (c *Client) CreateProduct(ctx context.Context, payload ProductPayload) (*Product, error) {
	var product Product
	if _, err := c.do(ctx, http.MethodPost, "/products", payload, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct applies a partial update to an existing product
func (c *Client) UpdateProduct(ctx context.Context, id int, payload ProductPayload) (*Product, error) {
	var product Product
	if _, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/products/%d", id), payload, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct permanently deletes a product
func (c *Client) DeleteProduct(ctx context.Context, id int) (*DeleteResult, error) {
	var result DeleteResult
	if _, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/products/%d", id), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListCategories fetches all product categories, including empty ones
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if _, err := c.do(ctx, http.MethodGet, "/product-categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// ListMedia fetches the media library entries for the image picker
func (c *Client) ListMedia(ctx context.Context) ([]MediaAsset, error) {
	var assets []MediaAsset
	if _, err := c.do(ctx, http.MethodGet, "/media", nil, &assets); err != nil {
		return nil, err
	}
	return assets, nil
}

// errorEnvelope matches the server's structured error responses
type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// do issues one request with credentials attached and decodes the JSON
// response into out. The response header is returned so callers can read
// pagination metadata.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) (http.Header, error) {
	var reqBody *bytes.Buffer
	if body != nil {
		reqBody = &bytes.Buffer{}
		if err := json.NewEncoder(reqBody).Encode(body); err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	endpoint := c.cfg.BaseURL + apiNamespace + path

	var req *http.Request
	var err error
	if reqBody != nil {
		req, err = http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, endpoint, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{StatusCode: resp.StatusCode, Code: http.StatusText(resp.StatusCode)}
		var envelope errorEnvelope
		if decodeErr := json.NewDecoder(resp.Body).Decode(&envelope); decodeErr == nil {
			if envelope.Error.Code != "" {
				apiErr.Code = envelope.Error.Code
			}
			apiErr.Message = envelope.Error.Message
		}
		return nil, apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return resp.Header, nil
}
