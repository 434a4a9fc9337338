package app

import (
	"context"
	"errors"
	"fmt"
)

// Advisory guards enforced at the view-action level. The cart container
// itself accepts whatever snapshot the backend returns.
var (
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
	ErrInsufficientStock = errors.New("requested quantity exceeds available stock")
)

// LoadCart fetches the cart and replaces the snapshot.
func (a *App) LoadCart(ctx context.Context) error {
	seq := a.cart.Begin()

	snap, err := a.api.Cart().Get(ctx)
	if err != nil {
		return fmt.Errorf("load cart: %w", err)
	}

	a.cart.Replace(seq, snap)
	return nil
}

// AddToCart adds a product. The stock guard is advisory and only
// applies when the viewed product is the one being added; the backend
// enforces the real limit.
func (a *App) AddToCart(ctx context.Context, productID int64, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	if cur := a.catalog.Current(); cur != nil && cur.ID == productID && quantity > cur.StockQuantity {
		return ErrInsufficientStock
	}

	seq := a.cart.Begin()

	snap, err := a.api.Cart().Add(ctx, productID, quantity)
	if err != nil {
		return fmt.Errorf("add to cart: %w", err)
	}

	a.cart.Replace(seq, snap)
	return nil
}

// ChangeQuantity sets a cart line's quantity.
func (a *App) ChangeQuantity(ctx context.Context, cartItemID int64, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	seq := a.cart.Begin()

	snap, err := a.api.Cart().Update(ctx, cartItemID, quantity)
	if err != nil {
		return fmt.Errorf("update cart line: %w", err)
	}

	a.cart.Replace(seq, snap)
	return nil
}

// RemoveLine deletes a cart line. The remove endpoint returns no body,
// so the post-mutation snapshot comes from a follow-up fetch.
func (a *App) RemoveLine(ctx context.Context, cartItemID int64) error {
	seq := a.cart.Begin()

	if err := a.api.Cart().Remove(ctx, cartItemID); err != nil {
		return fmt.Errorf("remove cart line: %w", err)
	}

	snap, err := a.api.Cart().Get(ctx)
	if err != nil {
		return fmt.Errorf("refresh cart: %w", err)
	}

	a.cart.Replace(seq, snap)
	return nil
}

// ClearCart empties the cart on the backend and resets local state.
func (a *App) ClearCart(ctx context.Context) error {
	if err := a.api.Cart().Clear(ctx); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}

	a.cart.Clear()
	return nil
}
