package service

import (
	"context"
	"fmt"

	"github.com/tigreau/nto-music/pkg/api"
	"github.com/tigreau/nto-music/pkg/output"
)

// CatalogService drives the product browsing commands
type CatalogService struct{}

// NewCatalogService creates a new catalog service
func NewCatalogService() *CatalogService {
	return &CatalogService{}
}

// List shows one page of the catalog
func (s *CatalogService) List(ctx context.Context, filters api.ProductFilters) error {
	page, err := api.ListProducts(ctx, filters)
	if err != nil {
		reportError(err)
		return err
	}

	if len(page.Content) == 0 {
		output.PrintInfo("No products found")
		return nil
	}

	rows := make([][]string, 0, len(page.Content))
	for _, p := range page.Content {
		name := p.Name
		if p.IsPromoted {
			name = "★ " + name
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", p.ID),
			name,
			p.CategoryName,
			p.Condition,
			fmt.Sprintf("€%.2f", p.Price),
		})
	}

	if err := output.PrintTable([]string{"ID", "NAME", "CATEGORY", "CONDITION", "PRICE"}, rows, page.Content); err != nil {
		return err
	}

	fmt.Println()
	output.PrintInfo("Page %d/%d, %d products total", page.Number+1, page.TotalPages, page.TotalElements)
	return nil
}

// Show displays the full product view
func (s *CatalogService) Show(ctx context.Context, id int64) error {
	product, err := api.GetProduct(ctx, id)
	if err != nil {
		reportError(err)
		return err
	}

	stock := fmt.Sprintf("%d available", product.QuantityAvailable)
	if product.QuantityAvailable == 0 {
		stock = "out of stock"
	}

	fields := [][2]string{
		{"Name", product.Name},
		{"Category", product.CategoryName},
		{"Brand", product.BrandName},
		{"Condition", product.Condition},
		{"Price", fmt.Sprintf("€%.2f", product.Price)},
		{"Stock", stock},
		{"Description", product.Description},
	}
	if product.ConditionNotes != "" {
		fields = append(fields, [2]string{"Condition notes", product.ConditionNotes})
	}
	return output.PrintRecord(product.Name, fields)
}
