package api

import (
	"context"
	"fmt"
	"strconv"

	json "github.com/json-iterator/go"
	"github.com/tigreau/nto-music/pkg/apierror"
	"github.com/tigreau/nto-music/pkg/client"
	"github.com/tigreau/nto-music/pkg/logger"
)

// GetCartItems retrieves the current user's cart lines
func GetCartItems(ctx context.Context) ([]CartItem, error) {
	logger.Debug("Fetching cart")

	resp, err := client.GetClient().
		R().
		SetContext(ctx).
		Get("/api/carts/my/details")

	if err := apierror.CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var items []CartItem
	if err := json.Unmarshal(resp.Body(), &items); err != nil {
		return nil, apierror.FromUnknown(err)
	}

	return items, nil
}

// AddToCart adds a product to the current user's cart
func AddToCart(ctx context.Context, productID int64, quantity int) error {
	logger.Debug("Adding to cart", "product_id", productID, "quantity", quantity)

	resp, err := client.GetClient().
		R().
		SetContext(ctx).
		SetQueryParam("quantity", strconv.Itoa(quantity)).
		Post(fmt.Sprintf("/api/carts/my/products/%d", productID))

	return apierror.CheckResponse(resp, err)
}

// RemoveCartItem removes one cart line
func RemoveCartItem(ctx context.Context, detailID int64) error {
	logger.Debug("Removing cart item", "detail_id", detailID)

	resp, err := client.GetClient().
		R().
		SetContext(ctx).
		Delete(fmt.Sprintf("/api/carts/details/%d", detailID))

	return apierror.CheckResponse(resp, err)
}

// ClearCart empties the current user's cart
func ClearCart(ctx context.Context) error {
	logger.Debug("Clearing cart")

	resp, err := client.GetClient().
		R().
		SetContext(ctx).
		Delete("/api/carts/my/clear")

	return apierror.CheckResponse(resp, err)
}
