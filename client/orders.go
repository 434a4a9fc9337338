package client

import (
	"context"
	"fmt"
	"net/url"
)

// OrderAPI covers the order lifecycle.
type OrderAPI struct {
	client *Client
}

// CreateOrderRequest is the checkout payload.
type CreateOrderRequest struct {
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod"`
}

// Create places an order from the current cart.
func (o *OrderAPI) Create(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	var out Order
	if err := o.client.post(ctx, "/orders/create", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// List returns one page of the user's orders.
func (o *OrderAPI) List(ctx context.Context, opts ListOptions) (*Page[Order], error) {
	var out Page[Order]
	if err := o.client.get(ctx, "/orders", opts.values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Get returns a single order.
func (o *OrderAPI) Get(ctx context.Context, orderID int64) (*Order, error) {
	var out Order
	if err := o.client.get(ctx, fmt.Sprintf("/orders/%d", orderID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Cancel cancels an order.
func (o *OrderAPI) Cancel(ctx context.Context, orderID int64) (*Order, error) {
	var out Order
	if err := o.client.put(ctx, fmt.Sprintf("/orders/%d/cancel", orderID), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateStatus moves an order to the given status. Admin only.
func (o *OrderAPI) UpdateStatus(ctx context.Context, orderID int64, status OrderStatus) (*Order, error) {
	q := url.Values{}
	q.Set("status", string(status))

	var out Order
	path := fmt.Sprintf("/orders/%d/status", orderID)
	if err := o.client.put(ctx, path, q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
