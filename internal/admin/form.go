package admin

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"product-admin/internal/client"
)

// noticeTitleRequired is the display text shown when submission is
// blocked on a blank title.
const noticeTitleRequired = "Title is required."

// ErrTitleRequired is the one validation error that blocks submission
// locally; it never reaches the network.
var ErrTitleRequired = errors.New("title is required")

// Form is the dual-purpose create/edit product form. Price fields hold the
// raw text input; blank values coerce to 0 on submit.
type Form struct {
	api    API
	notify NoticeFunc

	// ProductID is 0 in create mode
	ProductID int

	Title            string
	Description      string
	Price            string
	SalePrice        string
	IsOnSale         bool
	YoutubeVideo     string
	FeaturedImageID  int
	FeaturedImageURL string
	// Categories keeps the ids in the order the user toggled them on.
	Categories []int

	loading bool
	saving  bool
}

// NewForm creates an empty form in create mode
func NewForm(api API, notify NoticeFunc) *Form {
	return &Form{api: api, notify: notify}
}

// NewEditForm creates a form in edit mode. Call Load to prefetch the
// product before rendering.
func NewEditForm(api API, notify NoticeFunc, productID int) *Form {
	return &Form{
		api:       api,
		notify:    notify,
		ProductID: productID,
		loading:   true,
	}
}

// Editing reports whether the form updates an existing product
func (f *Form) Editing() bool {
	return f.ProductID != 0
}

// Loading reports whether the edit prefetch is outstanding
func (f *Form) Loading() bool {
	return f.loading
}

// Saving reports whether a submit is in flight
func (f *Form) Saving() bool {
	return f.saving
}

// Load prefetches the product in edit mode and populates every field. On
// failure it raises an error notice but the (empty) form stays usable.
func (f *Form) Load(ctx context.Context) {
	if !f.Editing() {
		return
	}

	f.loading = true
	product, err := f.api.GetProduct(ctx, f.ProductID)
	f.loading = false

	if err != nil {
		f.notify(Notice{Status: NoticeError, Message: "Failed to load product."})
		return
	}

	f.Title = product.Title
	f.Description = product.Description
	f.Price = formatPrice(product.Price)
	f.SalePrice = formatPrice(product.SalePrice)
	f.IsOnSale = product.IsOnSale
	f.YoutubeVideo = product.YoutubeVideo
	f.FeaturedImageID = product.FeaturedImageID
	f.FeaturedImageURL = product.FeaturedImageURL
	f.Categories = product.Categories
}

// ToggleCategory adds or removes a category id. The list keeps toggle
// insertion order; no normalization.
func (f *Form) ToggleCategory(id int) {
	for i, existing := range f.Categories {
		if existing == id {
			f.Categories = append(f.Categories[:i], f.Categories[i+1:]...)
			return
		}
	}
	f.Categories = append(f.Categories, id)
}

// CategorySelected reports whether a category id is currently toggled on
func (f *Form) CategorySelected(id int) bool {
	for _, existing := range f.Categories {
		if existing == id {
			return true
		}
	}
	return false
}

// SelectImage sets the featured image from a picker selection
func (f *Form) SelectImage(id int, url string) {
	f.FeaturedImageID = id
	f.FeaturedImageURL = url
}

// ClearImage removes the featured image; submitting id 0 clears it
// server-side too.
func (f *Form) ClearImage() {
	f.FeaturedImageID = 0
	f.FeaturedImageURL = ""
}

// Submit validates locally, assembles the full field set, and calls create
// or update depending on mode. It returns the mode-specific success
// message. On failure the fields stay populated for retry.
func (f *Form) Submit(ctx context.Context) (string, error) {
	title := strings.TrimSpace(f.Title)
	if title == "" {
		f.notify(Notice{Status: NoticeError, Message: noticeTitleRequired})
		return "", ErrTitleRequired
	}

	categories := f.Categories
	if categories == nil {
		categories = []int{}
	}

	payload := client.ProductPayload{
		Title:           &title,
		Description:     &f.Description,
		Price:           floatPtr(parsePrice(f.Price)),
		SalePrice:       floatPtr(parsePrice(f.SalePrice)),
		IsOnSale:        &f.IsOnSale,
		YoutubeVideo:    &f.YoutubeVideo,
		FeaturedImageID: &f.FeaturedImageID,
		Categories:      &categories,
	}

	f.saving = true
	var err error
	if f.Editing() {
		_, err = f.api.UpdateProduct(ctx, f.ProductID, payload)
	} else {
		_, err = f.api.CreateProduct(ctx, payload)
	}
	f.saving = false

	if err != nil {
		f.notify(Notice{Status: NoticeError, Message: "Failed to save product."})
		return "", err
	}

	if f.Editing() {
		return "Product updated successfully.", nil
	}
	return "Product created successfully.", nil
}

// parsePrice coerces a raw text input to a number; blank or unparseable
// values become 0.
func parsePrice(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return value
}

// formatPrice renders a stored price back into the text field, leaving
// zero values blank like the form's initial state.
func formatPrice(value float64) string {
	if value == 0 {
		return ""
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func floatPtr(v float64) *float64 {
	return &v
}
