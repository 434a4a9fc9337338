package client

import (
	"context"
	"fmt"
)

// CategoryAPI covers category reads and the admin category writes.
type CategoryAPI struct {
	client *Client
}

// List returns every category.
func (c *CategoryAPI) List(ctx context.Context) ([]Category, error) {
	var out []Category
	if err := c.client.get(ctx, "/categories", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns a single category.
func (c *CategoryAPI) Get(ctx context.Context, id int64) (*Category, error) {
	var out Category
	if err := c.client.get(ctx, fmt.Sprintf("/categories/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create adds a category. Admin only.
func (c *CategoryAPI) Create(ctx context.Context, category Category) (*Category, error) {
	var out Category
	if err := c.client.post(ctx, "/categories", nil, category, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update replaces a category. Admin only.
func (c *CategoryAPI) Update(ctx context.Context, id int64, category Category) (*Category, error) {
	var out Category
	if err := c.client.put(ctx, fmt.Sprintf("/categories/%d", id), nil, category, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a category. Admin only.
func (c *CategoryAPI) Delete(ctx context.Context, id int64) error {
	return c.client.delete(ctx, fmt.Sprintf("/categories/%d", id), nil)
}
