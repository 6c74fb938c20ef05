// adminctl is the terminal admin for the product catalog. It talks to the
// jeec/v1 API with the credentials passed on the command line and offers
// both one-shot CRUD commands and an interactive UI.
package main

import (
	"fmt"
	"os"

	"product-admin/internal/client"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"
)

const (
	apiURLFlag   = "api-url"
	tokenFlag    = "token"
	adminURLFlag = "admin-url"
)

var rootFlags = map[string]cobraflags.Flag{
	apiURLFlag: &cobraflags.StringFlag{
		Name:  apiURLFlag,
		Value: "http://localhost:8080",
		Usage: "Base URL of the product API",
	},
	tokenFlag: &cobraflags.StringFlag{
		Name:  tokenFlag,
		Value: "",
		Usage: "Access token attached to every request (see POST /api/users/login)",
	},
	adminURLFlag: &cobraflags.StringFlag{
		Name:  adminURLFlag,
		Value: "",
		Usage: "Base URL of the admin screens, used when printing links",
	},
}

var rootCmd = &cobra.Command{
	Use:   "adminctl",
	Short: "Manage the product catalog",
	Long: `Manage the product catalog over the jeec/v1 REST API.

Examples:
  adminctl --token $TOKEN list
  adminctl --token $TOKEN create --title "Phone" --price 49.99
  adminctl --token $TOKEN ui`,
	SilenceUsage: true,
}

// apiClient builds a client from the root flags
func apiClient() *client.Client {
	return client.New(client.Config{
		BaseURL:  rootFlags[apiURLFlag].GetString(),
		Token:    rootFlags[tokenFlag].GetString(),
		AdminURL: rootFlags[adminURLFlag].GetString(),
	})
}

func main() {
	cobraflags.RegisterMap(rootCmd, rootFlags)

	rootCmd.AddCommand(newListCommand())
	rootCmd.AddCommand(newShowCommand())
	rootCmd.AddCommand(newCreateCommand())
	rootCmd.AddCommand(newUpdateCommand())
	rootCmd.AddCommand(newDeleteCommand())
	rootCmd.AddCommand(newCategoriesCommand())
	rootCmd.AddCommand(newUICommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
