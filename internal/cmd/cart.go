package cmd

import (
	"strconv"

	"github.com/spf13/cobra"
	"github.com/tigreau/nto-music/pkg/service"
)

var addQuantity int

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Cart commands",
	Long:  "Manage your shopping cart",
}

var cartShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the cart contents",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewCartService().Show(cmd.Context())
	},
}

var cartAddCmd = &cobra.Command{
	Use:   "add <product-id>",
	Short: "Add a product to the cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		productID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return err
		}
		return service.NewCartService().Add(cmd.Context(), productID, addQuantity)
	},
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove <item-id>",
	Short: "Remove a line from the cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		itemID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return err
		}
		return service.NewCartService().Remove(cmd.Context(), itemID)
	},
}

var cartClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the cart",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewCartService().Clear(cmd.Context())
	},
}

var checkoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Check out the cart and place an order",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewCartService().Checkout(cmd.Context())
	},
}

func init() {
	cartAddCmd.Flags().IntVarP(&addQuantity, "quantity", "n", 1, "Quantity to add")

	cartCmd.AddCommand(cartShowCmd)
	cartCmd.AddCommand(cartAddCmd)
	cartCmd.AddCommand(cartRemoveCmd)
	cartCmd.AddCommand(cartClearCmd)
}
