package app

import (
	"context"
	"fmt"

	"github.com/wishcrate/storefront/client"
)

// BrowseParams are the listing parameters of the products view. Any
// change re-fetches from the backend; listings are never filtered from
// a cached set.
type BrowseParams struct {
	Page       int
	Size       int
	SortBy     string
	SortDir    string
	CategoryID int64
	Keyword    string
}

// BrowseProducts fetches one listing page and replaces the catalog's
// product slot. Keyword takes precedence over category, matching the
// products view.
func (a *App) BrowseProducts(ctx context.Context, params BrowseParams) (*client.Page[client.Product], error) {
	opts := client.ListOptions{
		Page:    params.Page,
		Size:    params.Size,
		SortBy:  params.SortBy,
		SortDir: params.SortDir,
	}

	seq := a.catalog.BeginProducts()

	var (
		page *client.Page[client.Product]
		err  error
	)
	switch {
	case params.Keyword != "":
		page, err = a.api.Products().Search(ctx, params.Keyword, opts)
	case params.CategoryID != 0:
		page, err = a.api.Products().ByCategory(ctx, params.CategoryID, opts)
	default:
		page, err = a.api.Products().List(ctx, opts)
	}
	if err != nil {
		return nil, fmt.Errorf("browse products: %w", err)
	}

	a.catalog.ReplaceProducts(seq, page.Content)
	return page, nil
}

// LoadProduct fetches a product detail and sets it as current.
func (a *App) LoadProduct(ctx context.Context, id int64) (*client.Product, error) {
	seq := a.catalog.BeginCurrent()

	product, err := a.api.Products().Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load product: %w", err)
	}

	a.catalog.SetCurrent(seq, product)
	return product, nil
}

// LoadFeatured fetches the featured set and replaces the catalog slot.
func (a *App) LoadFeatured(ctx context.Context) ([]client.Product, error) {
	seq := a.catalog.BeginFeatured()

	products, err := a.api.Products().Featured(ctx)
	if err != nil {
		return nil, fmt.Errorf("load featured: %w", err)
	}

	a.catalog.ReplaceFeatured(seq, products)
	return products, nil
}

// LoadCategories returns the category list for filters and navigation.
func (a *App) LoadCategories(ctx context.Context) ([]client.Category, error) {
	categories, err := a.api.Categories().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	return categories, nil
}
