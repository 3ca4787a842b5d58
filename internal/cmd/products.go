package cmd

import (
	"strconv"

	"github.com/spf13/cobra"
	"github.com/tigreau/nto-music/pkg/api"
	"github.com/tigreau/nto-music/pkg/service"
)

var productFilters api.ProductFilters

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Catalog commands",
	Long:  "Browse the instrument catalog",
}

var productsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog products",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewCatalogService().List(cmd.Context(), productFilters)
	},
}

var productsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show full product details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return err
		}
		return service.NewCatalogService().Show(cmd.Context(), id)
	},
}

func init() {
	productsListCmd.Flags().StringVarP(&productFilters.Query, "query", "q", "", "Search term")
	productsListCmd.Flags().StringVar(&productFilters.Category, "category", "", "Filter by category slug")
	productsListCmd.Flags().StringVar(&productFilters.Brand, "brand", "", "Filter by brand")
	productsListCmd.Flags().StringVar(&productFilters.Condition, "condition", "", "Filter by condition (NEW, EXCELLENT, GOOD, FAIR)")
	productsListCmd.Flags().Float64Var(&productFilters.MinPrice, "min-price", 0, "Minimum price")
	productsListCmd.Flags().Float64Var(&productFilters.MaxPrice, "max-price", 0, "Maximum price")
	productsListCmd.Flags().StringVar(&productFilters.Sort, "sort", "", "Sort order (price_asc, price_desc, newest)")
	productsListCmd.Flags().IntVar(&productFilters.Page, "page", 0, "Page number")
	productsListCmd.Flags().IntVar(&productFilters.Size, "size", 20, "Page size")

	productsCmd.AddCommand(productsListCmd)
	productsCmd.AddCommand(productsShowCmd)
}
