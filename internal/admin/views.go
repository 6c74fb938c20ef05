package admin

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"product-admin/internal/client"
)

// RenderNotice prints a status notice above the active screen
func RenderNotice(w io.Writer, n Notice) {
	label := "OK"
	if n.Status == NoticeError {
		label = "ERROR"
	}
	fmt.Fprintf(w, "[%s] %s\n", label, n.Message)
}

// RenderLoading prints the loading indicator
func RenderLoading(w io.Writer) {
	fmt.Fprintln(w, "Loading…")
}

// RenderEmptyState prints the call-to-action shown when no products exist
func RenderEmptyState(w io.Writer) {
	fmt.Fprintln(w, "No products yet. Add your first product to get started.")
}

// RenderProductTable prints the list screen table: image marker, name with
// sale badge, and price with the original struck through while on sale.
func RenderProductTable(w io.Writer, products []client.Product) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tIMAGE\tNAME\tPRICE")

	for _, p := range products {
		image := "-"
		if p.FeaturedImageURL != "" {
			image = p.FeaturedImageURL
		}

		name := p.Title
		if p.IsOnSale {
			name += " [Sale]"
		}

		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", p.ID, image, name, renderPrice(p))
	}

	tw.Flush()
}

// renderPrice shows the sale price next to the struck-through original
// when the product is on sale.
func renderPrice(p client.Product) string {
	if p.IsOnSale {
		return fmt.Sprintf("\x1b[9m%.2f\x1b[0m %.2f", p.Price, p.SalePrice)
	}
	return fmt.Sprintf("%.2f", p.Price)
}

// RenderCategoryChecklist prints one checkbox line per known category,
// marking the ids the form has toggled on.
func RenderCategoryChecklist(w io.Writer, categories []client.Category, form *Form) {
	for _, c := range categories {
		mark := " "
		if form.CategorySelected(c.ID) {
			mark = "x"
		}
		fmt.Fprintf(w, "  [%s] %d  %s (%d)\n", mark, c.ID, c.Name, c.Count)
	}
}

// RenderForm prints the current form field values
func RenderForm(w io.Writer, f *Form) {
	heading := "Add New Product"
	if f.Editing() {
		heading = fmt.Sprintf("Edit Product #%d", f.ProductID)
	}
	fmt.Fprintln(w, heading)
	fmt.Fprintln(w, strings.Repeat("-", len(heading)))

	image := "none"
	if f.FeaturedImageID != 0 {
		image = fmt.Sprintf("#%d %s", f.FeaturedImageID, f.FeaturedImageURL)
	}

	categories := "none"
	if len(f.Categories) > 0 {
		ids := make([]string, len(f.Categories))
		for i, id := range f.Categories {
			ids[i] = strconv.Itoa(id)
		}
		categories = strings.Join(ids, ", ")
	}

	fmt.Fprintf(w, "  Title:         %s\n", f.Title)
	fmt.Fprintf(w, "  Description:   %s\n", f.Description)
	fmt.Fprintf(w, "  Price:         %s\n", orBlank(f.Price))
	fmt.Fprintf(w, "  Sale price:    %s\n", orBlank(f.SalePrice))
	fmt.Fprintf(w, "  On sale:       %t\n", f.IsOnSale)
	fmt.Fprintf(w, "  YouTube video: %s\n", f.YoutubeVideo)
	fmt.Fprintf(w, "  Image:         %s\n", image)
	fmt.Fprintf(w, "  Categories:    %s\n", categories)
}

func orBlank(s string) string {
	if s == "" {
		return "0"
	}
	return s
}
