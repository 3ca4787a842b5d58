package api

import (
	"context"

	json "github.com/json-iterator/go"
	"github.com/tigreau/nto-music/pkg/apierror"
	"github.com/tigreau/nto-music/pkg/client"
	"github.com/tigreau/nto-music/pkg/logger"
)

// SubmitCheckout places an order for the current cart
func SubmitCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutResponse, error) {
	logger.Debug("Submitting checkout", "payment_method", req.PaymentMethod)

	resp, err := client.GetClient().
		R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/api/orders/checkout")

	if err := apierror.CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var result CheckoutResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, apierror.FromUnknown(err)
	}

	logger.Debug("Checkout complete", "order_id", result.OrderID)
	return &result, nil
}
