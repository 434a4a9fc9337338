package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/wishcrate/storefront/client"
)

// adminPageSize matches the admin table's one-shot fetch: the console
// loads up to this many products once and filters them client-side.
const adminPageSize = 100

// LoadAdminProducts fetches the admin product table. Unlike the
// customer listing views it does not re-fetch per keystroke; the slice
// is kept and filtered locally.
func (a *App) LoadAdminProducts(ctx context.Context) ([]client.Product, error) {
	page, err := a.api.Products().List(ctx, client.ListOptions{Size: adminPageSize})
	if err != nil {
		return nil, fmt.Errorf("load admin products: %w", err)
	}

	a.adminMu.Lock()
	a.adminProducts = page.Content
	a.adminMu.Unlock()

	return page.Content, nil
}

// AdminProducts returns the last loaded admin table.
func (a *App) AdminProducts() []client.Product {
	a.adminMu.Lock()
	defer a.adminMu.Unlock()
	return a.adminProducts
}

// FilterAdminProducts filters the loaded table by query.
func (a *App) FilterAdminProducts(query string) []client.Product {
	return FilterProducts(a.AdminProducts(), query)
}

// FilterProducts returns the products whose name or brand contains the
// query, case-insensitively. An empty query returns the input as-is.
func FilterProducts(products []client.Product, query string) []client.Product {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return products
	}

	var out []client.Product
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Brand), q) {
			out = append(out, p)
		}
	}
	return out
}

// SaveProduct creates or updates a product from the full form payload.
func (a *App) SaveProduct(ctx context.Context, p client.Product) (*client.Product, error) {
	var (
		saved *client.Product
		err   error
	)
	if p.ID == 0 {
		saved, err = a.api.Products().Create(ctx, p)
	} else {
		saved, err = a.api.Products().Update(ctx, p.ID, p)
	}
	if err != nil {
		return nil, fmt.Errorf("save product: %w", err)
	}
	return saved, nil
}

// DeleteProduct removes a product and refreshes the admin table.
func (a *App) DeleteProduct(ctx context.Context, id int64) error {
	if err := a.api.Products().Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	if _, err := a.LoadAdminProducts(ctx); err != nil {
		return err
	}
	return nil
}

// LoadStats returns the admin dashboard aggregates.
func (a *App) LoadStats(ctx context.Context) (*client.AdminStats, error) {
	stats, err := a.api.Admin().Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("load stats: %w", err)
	}
	return stats, nil
}
