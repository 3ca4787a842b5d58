package service

import (
	"context"
	"fmt"

	"github.com/tigreau/nto-music/pkg/api"
	"github.com/tigreau/nto-music/pkg/output"
	"github.com/tigreau/nto-music/pkg/prompter"
)

// CartService drives the cart and checkout commands
type CartService struct{}

// NewCartService creates a new cart service
func NewCartService() *CartService {
	return &CartService{}
}

// Show lists the cart contents with a total
func (s *CartService) Show(ctx context.Context) error {
	items, err := api.GetCartItems(ctx)
	if err != nil {
		reportError(err)
		return err
	}

	if len(items) == 0 {
		output.PrintInfo("Your cart is empty")
		return nil
	}

	var total float64
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		total += item.SubTotal
		rows = append(rows, []string{
			fmt.Sprintf("%d", item.ID),
			item.Product.Name,
			fmt.Sprintf("%d", item.Quantity),
			fmt.Sprintf("€%.2f", item.Product.Price),
			fmt.Sprintf("€%.2f", item.SubTotal),
		})
	}

	if err := output.PrintTable([]string{"ID", "PRODUCT", "QTY", "PRICE", "SUBTOTAL"}, rows, items); err != nil {
		return err
	}

	fmt.Println()
	output.PrintInfo("Total: €%.2f", total)
	return nil
}

// Add puts a product in the cart
func (s *CartService) Add(ctx context.Context, productID int64, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("quantity must be at least 1")
	}

	if err := api.AddToCart(ctx, productID, quantity); err != nil {
		reportError(err)
		return err
	}

	output.PrintSuccess("✓ Added to cart")
	return nil
}

// Remove drops one line from the cart
func (s *CartService) Remove(ctx context.Context, detailID int64) error {
	if err := api.RemoveCartItem(ctx, detailID); err != nil {
		reportError(err)
		return err
	}

	output.PrintSuccess("✓ Removed from cart")
	return nil
}

// Clear empties the cart after confirmation
func (s *CartService) Clear(ctx context.Context) error {
	confirm, err := prompter.PromptConfirm("Empty the entire cart?")
	if err != nil {
		return err
	}
	if !confirm {
		return nil
	}

	if err := api.ClearCart(ctx); err != nil {
		reportError(err)
		return err
	}

	output.PrintSuccess("✓ Cart emptied")
	return nil
}

// Checkout walks through shipping details and submits the order
func (s *CartService) Checkout(ctx context.Context) error {
	items, err := api.GetCartItems(ctx)
	if err != nil {
		reportError(err)
		return err
	}
	if len(items) == 0 {
		output.PrintError("Your cart is empty")
		return fmt.Errorf("cart is empty")
	}

	var total float64
	for _, item := range items {
		total += item.SubTotal
	}
	output.PrintInfo("Checking out %d items, total €%.2f", len(items), total)

	req := api.CheckoutRequest{PaymentMethod: "CARD"}
	prompts := []struct {
		label string
		dest  *string
	}{
		{"Street: ", &req.Street},
		{"Number: ", &req.Number},
		{"Postal code: ", &req.PostalCode},
		{"City: ", &req.City},
		{"Country: ", &req.Country},
	}
	for _, p := range prompts {
		value, err := prompter.PromptString(p.label)
		if err != nil {
			return err
		}
		if value == "" {
			return fmt.Errorf("all shipping fields are required")
		}
		*p.dest = value
	}

	coupon, err := prompter.PromptString("Coupon code (optional): ")
	if err != nil {
		return err
	}
	req.CouponCode = coupon

	confirm, err := prompter.PromptConfirm("Place the order?")
	if err != nil {
		return err
	}
	if !confirm {
		return nil
	}

	result, err := api.SubmitCheckout(ctx, req)
	if err != nil {
		reportError(err)
		return err
	}

	output.PrintSuccess("✓ Order %d placed!", result.OrderID)
	fields := [][2]string{
		{"Order", fmt.Sprintf("%d", result.OrderID)},
		{"Total", fmt.Sprintf("€%.2f", result.TotalAmount)},
		{"Payment", result.PaymentStatus},
		{"Transaction", result.TransactionID},
	}
	return output.PrintRecord("Order confirmation", fields)
}
