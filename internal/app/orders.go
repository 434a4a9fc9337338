package app

import (
	"context"
	"fmt"

	"github.com/wishcrate/storefront/client"
)

// PlaceOrder creates an order from the current cart and clears the
// local cart snapshot once the backend confirms.
func (a *App) PlaceOrder(ctx context.Context, addr client.ShippingAddress, method client.PaymentMethod) (*client.Order, error) {
	order, err := a.api.Orders().Create(ctx, client.CreateOrderRequest{
		ShippingAddress: addr,
		PaymentMethod:   method,
	})
	if err != nil {
		return nil, fmt.Errorf("place order: %w", err)
	}

	a.cart.Clear()
	return order, nil
}

// LoadOrders returns one page of the user's order history.
func (a *App) LoadOrders(ctx context.Context, page, size int) (*client.Page[client.Order], error) {
	orders, err := a.api.Orders().List(ctx, client.ListOptions{Page: page, Size: size})
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}
	return orders, nil
}

// LoadOrder returns a single order.
func (a *App) LoadOrder(ctx context.Context, orderID int64) (*client.Order, error) {
	order, err := a.api.Orders().Get(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("load order: %w", err)
	}
	return order, nil
}

// CancelOrder cancels an order and returns its new state.
func (a *App) CancelOrder(ctx context.Context, orderID int64) (*client.Order, error) {
	order, err := a.api.Orders().Cancel(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("cancel order: %w", err)
	}
	return order, nil
}

// LoadAddresses returns the saved address book.
func (a *App) LoadAddresses(ctx context.Context) ([]client.Address, error) {
	addrs, err := a.api.Addresses().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load addresses: %w", err)
	}
	return addrs, nil
}

// SaveAddress stores a new address.
func (a *App) SaveAddress(ctx context.Context, addr client.Address) (*client.Address, error) {
	saved, err := a.api.Addresses().Save(ctx, addr)
	if err != nil {
		return nil, fmt.Errorf("save address: %w", err)
	}
	return saved, nil
}

// DeleteAddress removes a saved address.
func (a *App) DeleteAddress(ctx context.Context, id int64) error {
	if err := a.api.Addresses().Delete(ctx, id); err != nil {
		return fmt.Errorf("delete address: %w", err)
	}
	return nil
}
