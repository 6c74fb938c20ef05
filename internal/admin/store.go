package admin

import (
	"context"

	"product-admin/internal/client"
)

// ProductList holds the product list for the lifetime of the list screen:
// the items, a loading flag, and server-confirmed removal.
type ProductList struct {
	api      API
	notify   NoticeFunc
	products []client.Product
	loading  bool
	loaded   bool
}

// NewProductList creates the list store. Call Load before reading.
func NewProductList(api API, notify NoticeFunc) *ProductList {
	return &ProductList{
		api:     api,
		notify:  notify,
		loading: true,
	}
}

// Load fetches the product list, requesting up to client.ListPerPage
// entries. Failures surface as an error notice and leave the previous
// items in place.
func (l *ProductList) Load(ctx context.Context) {
	l.loading = true

	page, err := l.api.ListProducts(ctx, client.ListPerPage, 1, "")
	if err != nil {
		l.notify(Notice{Status: NoticeError, Message: "Failed to load products."})
	} else {
		l.products = page.Products
		l.loaded = true
	}

	l.loading = false
}

// Refresh re-issues the list request
func (l *ProductList) Refresh(ctx context.Context) {
	l.Load(ctx)
}

// Products returns the current items
func (l *ProductList) Products() []client.Product {
	return l.products
}

// Loading reports whether a list request is outstanding
func (l *ProductList) Loading() bool {
	return l.loading
}

// RemoveProduct deletes a product server-side and, only once the server
// confirms, removes it from local state. There is no optimistic removal.
func (l *ProductList) RemoveProduct(ctx context.Context, id int) error {
	if _, err := l.api.DeleteProduct(ctx, id); err != nil {
		return err
	}

	kept := l.products[:0]
	for _, p := range l.products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	l.products = kept

	return nil
}

// CategoryList fetches all categories once. Categories are non-critical:
// a failed load silently yields an empty list.
type CategoryList struct {
	api        API
	categories []client.Category
	loaded     bool
}

// NewCategoryList creates the category store
func NewCategoryList(api API) *CategoryList {
	return &CategoryList{api: api}
}

// Load fetches the categories on first call and is a no-op afterwards
func (c *CategoryList) Load(ctx context.Context) {
	if c.loaded {
		return
	}
	c.loaded = true

	categories, err := c.api.ListCategories(ctx)
	if err != nil {
		// Non-critical; the selector just renders nothing.
		return
	}
	c.categories = categories
}

// Categories returns the loaded categories
func (c *CategoryList) Categories() []client.Category {
	return c.categories
}
