package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// CartAPI covers cart reads and writes. Every mutating call returns the
// backend's post-mutation snapshot; the client never predicts it.
type CartAPI struct {
	client *Client
}

// Get returns the current cart snapshot.
func (c *CartAPI) Get(ctx context.Context) (*Cart, error) {
	var out Cart
	if err := c.client.get(ctx, "/cart", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Add puts quantity units of a product into the cart.
func (c *CartAPI) Add(ctx context.Context, productID int64, quantity int) (*Cart, error) {
	q := url.Values{}
	q.Set("productId", strconv.FormatInt(productID, 10))
	q.Set("quantity", strconv.Itoa(quantity))

	var out Cart
	if err := c.client.post(ctx, "/cart/add", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update sets the quantity of an existing cart line.
func (c *CartAPI) Update(ctx context.Context, cartItemID int64, quantity int) (*Cart, error) {
	q := url.Values{}
	q.Set("quantity", strconv.Itoa(quantity))

	var out Cart
	path := fmt.Sprintf("/cart/update/%d", cartItemID)
	if err := c.client.put(ctx, path, q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Remove deletes a cart line.
func (c *CartAPI) Remove(ctx context.Context, cartItemID int64) error {
	return c.client.delete(ctx, fmt.Sprintf("/cart/remove/%d", cartItemID), nil)
}

// Clear empties the cart.
func (c *CartAPI) Clear(ctx context.Context) error {
	return c.client.delete(ctx, "/cart/clear", nil)
}
