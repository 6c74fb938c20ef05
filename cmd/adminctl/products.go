package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"product-admin/internal/admin"
	"product-admin/internal/client"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"
)

// Product field flags shared by create and update
const (
	titleFlag       = "title"
	descriptionFlag = "description"
	priceFlag       = "price"
	salePriceFlag   = "sale-price"
	onSaleFlag      = "on-sale"
	youtubeFlag     = "youtube"
	imageFlag       = "image"
	categoriesFlag  = "categories"
)

// List command flags
const (
	searchFlag  = "search"
	pageFlag    = "page"
	perPageFlag = "per-page"
)

func productFlags() map[string]cobraflags.Flag {
	return map[string]cobraflags.Flag{
		titleFlag: &cobraflags.StringFlag{
			Name:  titleFlag,
			Value: "",
			Usage: "Product title",
		},
		descriptionFlag: &cobraflags.StringFlag{
			Name:  descriptionFlag,
			Value: "",
			Usage: "Product description (safe HTML subset)",
		},
		priceFlag: &cobraflags.StringFlag{
			Name:  priceFlag,
			Value: "",
			Usage: "Regular price (blank coerces to 0)",
		},
		salePriceFlag: &cobraflags.StringFlag{
			Name:  salePriceFlag,
			Value: "",
			Usage: "Sale price (blank coerces to 0)",
		},
		onSaleFlag: &cobraflags.StringFlag{
			Name:  onSaleFlag,
			Value: "false",
			Usage: "Mark the product as on sale (true or false)",
		},
		youtubeFlag: &cobraflags.StringFlag{
			Name:  youtubeFlag,
			Value: "",
			Usage: "YouTube video URL",
		},
		imageFlag: &cobraflags.StringFlag{
			Name:  imageFlag,
			Value: "0",
			Usage: "Featured image media id (0 clears the image)",
		},
		categoriesFlag: &cobraflags.StringFlag{
			Name:  categoriesFlag,
			Value: "",
			Usage: "Comma separated category ids; replaces the whole set",
		},
	}
}

// payloadFromFlags builds a partial payload from the flags the user
// actually set, so an update touches only those fields.
func payloadFromFlags(cmd *cobra.Command, flags map[string]cobraflags.Flag) client.ProductPayload {
	var payload client.ProductPayload

	if cmd.Flags().Changed(titleFlag) {
		v := flags[titleFlag].GetString()
		payload.Title = &v
	}
	if cmd.Flags().Changed(descriptionFlag) {
		v := flags[descriptionFlag].GetString()
		payload.Description = &v
	}
	if cmd.Flags().Changed(priceFlag) {
		v := parsePriceFlag(flags[priceFlag].GetString())
		payload.Price = &v
	}
	if cmd.Flags().Changed(salePriceFlag) {
		v := parsePriceFlag(flags[salePriceFlag].GetString())
		payload.SalePrice = &v
	}
	if cmd.Flags().Changed(onSaleFlag) {
		v, _ := strconv.ParseBool(flags[onSaleFlag].GetString())
		payload.IsOnSale = &v
	}
	if cmd.Flags().Changed(youtubeFlag) {
		v := flags[youtubeFlag].GetString()
		payload.YoutubeVideo = &v
	}
	if cmd.Flags().Changed(imageFlag) {
		v, err := strconv.Atoi(flags[imageFlag].GetString())
		if err == nil {
			payload.FeaturedImageID = &v
		}
	}
	if cmd.Flags().Changed(categoriesFlag) {
		ids := parseIDList(flags[categoriesFlag].GetString())
		payload.Categories = &ids
	}

	return payload
}

func newListCommand() *cobra.Command {
	flags := map[string]cobraflags.Flag{
		searchFlag: &cobraflags.StringFlag{
			Name:  searchFlag,
			Value: "",
			Usage: "Free-text search over title and description",
		},
		pageFlag: &cobraflags.StringFlag{
			Name:  pageFlag,
			Value: "1",
			Usage: "Page number",
		},
		perPageFlag: &cobraflags.StringFlag{
			Name:  perPageFlag,
			Value: strconv.Itoa(client.ListPerPage),
			Usage: "Page size",
		},
	}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			perPage, _ := strconv.Atoi(flags[perPageFlag].GetString())
			pageNum, _ := strconv.Atoi(flags[pageFlag].GetString())
			page, err := apiClient().ListProducts(
				cmd.Context(),
				perPage,
				pageNum,
				flags[searchFlag].GetString(),
			)
			if err != nil {
				return err
			}

			if len(page.Products) == 0 {
				admin.RenderEmptyState(os.Stdout)
				return nil
			}

			admin.RenderProductTable(os.Stdout, page.Products)
			fmt.Printf("\n%d products, %d pages\n", page.Total, page.TotalPages)
			return nil
		},
	}
	cobraflags.RegisterMap(cmd, flags)
	return cmd
}

func newShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a single product as JSON-ish detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid product id %q", args[0])
			}

			product, err := apiClient().GetProduct(cmd.Context(), id)
			if err != nil {
				return err
			}

			printProduct(product)
			return nil
		},
	}
}

func newCreateCommand() *cobra.Command {
	flags := productFlags()
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new published product",
		RunE: func(cmd *cobra.Command, args []string) error {
			product, err := apiClient().CreateProduct(cmd.Context(), payloadFromFlags(cmd, flags))
			if err != nil {
				return err
			}

			fmt.Printf("Product created successfully. (id %d)\n", product.ID)
			return nil
		},
	}
	cobraflags.RegisterMap(cmd, flags)
	return cmd
}

func newUpdateCommand() *cobra.Command {
	flags := productFlags()
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a product; only the flags you pass change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid product id %q", args[0])
			}

			product, err := apiClient().UpdateProduct(cmd.Context(), id, payloadFromFlags(cmd, flags))
			if err != nil {
				return err
			}

			fmt.Printf("Product updated successfully. (id %d)\n", product.ID)
			return nil
		},
	}
	cobraflags.RegisterMap(cmd, flags)
	return cmd
}

func newDeleteCommand() *cobra.Command {
	const yesFlag = "yes"
	flags := map[string]cobraflags.Flag{
		yesFlag: &cobraflags.StringFlag{
			Name:  yesFlag,
			Value: "false",
			Usage: "Skip the confirmation prompt (true or false)",
		},
	}

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Permanently delete a product (no trash stage)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid product id %q", args[0])
			}

			skip, _ := strconv.ParseBool(flags[yesFlag].GetString())
			if !skip {
				fmt.Printf("Delete product %d permanently? This cannot be undone. [y/N] ", id)
				var answer string
				fmt.Fscanln(cmd.InOrStdin(), &answer)
				if !strings.EqualFold(answer, "y") {
					fmt.Println("Aborted.")
					return nil
				}
			}

			result, err := apiClient().DeleteProduct(cmd.Context(), id)
			if err != nil {
				return err
			}

			fmt.Printf("Deleted product %d.\n", result.ID)
			return nil
		},
	}
	cobraflags.RegisterMap(cmd, flags)
	return cmd
}

func newCategoriesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List all product categories with their product counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			categories, err := apiClient().ListCategories(cmd.Context())
			if err != nil {
				return err
			}

			for _, c := range categories {
				fmt.Printf("%d\t%s (%s)\t%d products\n", c.ID, c.Name, c.Slug, c.Count)
			}
			return nil
		},
	}
}

func newUICommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Interactive admin: list, add, edit, and delete products",
		RunE: func(cmd *cobra.Command, args []string) error {
			api := apiClient()
			picker := admin.MediaLibraryPicker(api, chooseAsset)
			session := admin.NewSession(api, cmd.InOrStdin(), cmd.OutOrStdout(), picker)
			return session.Run(cmd.Context())
		},
	}
}

// chooseAsset is the terminal media chooser backing the image picker
func chooseAsset(assets []client.MediaAsset) *client.MediaAsset {
	if len(assets) == 0 {
		fmt.Println("Media library is empty.")
		return nil
	}

	for _, a := range assets {
		fmt.Printf("  %d\t%s\t%s\n", a.ID, a.Title, a.URL)
	}
	fmt.Print("Media id (blank to cancel): ")

	var raw string
	fmt.Scanln(&raw)
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil
	}

	for i := range assets {
		if assets[i].ID == id {
			return &assets[i]
		}
	}
	return nil
}

func printProduct(p *client.Product) {
	fmt.Printf("ID:             %d\n", p.ID)
	fmt.Printf("Title:          %s\n", p.Title)
	fmt.Printf("Description:    %s\n", p.Description)
	fmt.Printf("Price:          %.2f\n", p.Price)
	fmt.Printf("Sale price:     %.2f\n", p.SalePrice)
	fmt.Printf("On sale:        %t\n", p.IsOnSale)
	fmt.Printf("YouTube video:  %s\n", p.YoutubeVideo)
	fmt.Printf("Image:          %d %s\n", p.FeaturedImageID, p.FeaturedImageURL)
	fmt.Printf("Categories:     %v\n", p.Categories)
	fmt.Printf("Date:           %s\n", p.Date)
	fmt.Printf("Status:         %s\n", p.Status)
}

func parsePriceFlag(raw string) float64 {
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

func parseIDList(raw string) []int {
	ids := []int{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if id, err := strconv.Atoi(part); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}
