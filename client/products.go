package client

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// ProductAPI covers catalog reads and the admin catalog writes.
type ProductAPI struct {
	client *Client
}

// List returns one page of the catalog.
func (p *ProductAPI) List(ctx context.Context, opts ListOptions) (*Page[Product], error) {
	var out Page[Product]
	if err := p.client.get(ctx, "/products", opts.values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Get returns a single product.
func (p *ProductAPI) Get(ctx context.Context, id int64) (*Product, error) {
	var out Product
	if err := p.client.get(ctx, fmt.Sprintf("/products/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Search returns products matching the keyword.
func (p *ProductAPI) Search(ctx context.Context, keyword string, opts ListOptions) (*Page[Product], error) {
	q := opts.values()
	q.Set("keyword", keyword)
	var out Page[Product]
	if err := p.client.get(ctx, "/products/search", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ByCategory returns products in the given category.
func (p *ProductAPI) ByCategory(ctx context.Context, categoryID int64, opts ListOptions) (*Page[Product], error) {
	var out Page[Product]
	path := fmt.Sprintf("/products/category/%d", categoryID)
	if err := p.client.get(ctx, path, opts.values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ByPriceRange returns products priced within [min, max].
func (p *ProductAPI) ByPriceRange(ctx context.Context, min, max decimal.Decimal, opts ListOptions) (*Page[Product], error) {
	q := opts.values()
	q.Set("minPrice", min.String())
	q.Set("maxPrice", max.String())
	var out Page[Product]
	if err := p.client.get(ctx, "/products/price-range", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Featured returns the featured products, unpaginated.
func (p *ProductAPI) Featured(ctx context.Context) ([]Product, error) {
	var out []Product
	if err := p.client.get(ctx, "/products/featured", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create adds a product. Admin only.
func (p *ProductAPI) Create(ctx context.Context, product Product) (*Product, error) {
	var out Product
	if err := p.client.post(ctx, "/products", nil, product, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update replaces a product with the full payload. Admin only.
func (p *ProductAPI) Update(ctx context.Context, id int64, product Product) (*Product, error) {
	var out Product
	if err := p.client.put(ctx, fmt.Sprintf("/products/%d", id), nil, product, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a product. Admin only.
func (p *ProductAPI) Delete(ctx context.Context, id int64) error {
	return p.client.delete(ctx, fmt.Sprintf("/products/%d", id), nil)
}
