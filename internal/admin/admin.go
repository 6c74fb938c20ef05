// Package admin holds the state and presentation layer of the product
// admin tool: data stores over the API client, the screen state machine,
// the product form, and the table renderers. Everything here is driven
// from a single goroutine; one request is in flight per user action.
package admin

import (
	"context"

	"product-admin/internal/client"
)

// API is the slice of the product client the admin screens consume
type API interface {
	ListProducts(ctx context.Context, perPage, page int, search string) (*client.ProductPage, error)
	GetProduct(ctx context.Context, id int) (*client.Product, error)
	CreateProduct(ctx context.Context, payload client.ProductPayload) (*client.Product, error)
	UpdateProduct(ctx context.Context, id int, payload client.ProductPayload) (*client.Product, error)
	DeleteProduct(ctx context.Context, id int) (*client.DeleteResult, error)
	ListCategories(ctx context.Context) ([]client.Category, error)
	ListMedia(ctx context.Context) ([]client.MediaAsset, error)
}

// Notice statuses
const (
	NoticeError   = "error"
	NoticeSuccess = "success"
)

// Notice is a dismissible status message shown above the active screen
type Notice struct {
	Status  string
	Message string
}

// NoticeFunc receives notices raised by stores and forms
type NoticeFunc func(Notice)
