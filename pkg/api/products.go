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

// ListProducts retrieves one page of the catalog
func ListProducts(ctx context.Context, filters ProductFilters) (*ProductPage, error) {
	logger.Debug("Fetching products", "page", filters.Page)

	size := filters.Size
	if size <= 0 {
		size = 20
	}

	params := map[string]string{
		"page": strconv.Itoa(filters.Page),
		"size": strconv.Itoa(size),
	}
	if filters.Query != "" {
		params["q"] = filters.Query
	}
	if filters.Category != "" {
		params["category"] = filters.Category
	}
	if filters.Brand != "" {
		params["brand"] = filters.Brand
	}
	if filters.MinPrice > 0 {
		params["minPrice"] = strconv.FormatFloat(filters.MinPrice, 'f', -1, 64)
	}
	if filters.MaxPrice > 0 {
		params["maxPrice"] = strconv.FormatFloat(filters.MaxPrice, 'f', -1, 64)
	}
	if filters.Condition != "" {
		params["condition"] = filters.Condition
	}
	if filters.Sort != "" {
		params["sort"] = filters.Sort
	}

	resp, err := client.GetClient().
		R().
		SetContext(ctx).
		SetQueryParams(params).
		Get("/api/products")

	if err := apierror.CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var page ProductPage
	if err := json.Unmarshal(resp.Body(), &page); err != nil {
		return nil, apierror.FromUnknown(err)
	}

	return &page, nil
}

// GetProduct retrieves one product with full detail
func GetProduct(ctx context.Context, id int64) (*DetailedProduct, error) {
	logger.Debug("Fetching product", "id", id)

	resp, err := client.GetClient().
		R().
		SetContext(ctx).
		Get(fmt.Sprintf("/api/products/%d", id))

	if err := apierror.CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var product DetailedProduct
	if err := json.Unmarshal(resp.Body(), &product); err != nil {
		return nil, apierror.FromUnknown(err)
	}

	return &product, nil
}
