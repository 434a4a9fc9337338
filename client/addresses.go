package client

import (
	"context"
	"fmt"
)

// AddressAPI covers the signed-in user's address book.
type AddressAPI struct {
	client *Client
}

// List returns every saved address.
func (a *AddressAPI) List(ctx context.Context) ([]Address, error) {
	var out []Address
	if err := a.client.get(ctx, "/addresses", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Save stores a new address.
func (a *AddressAPI) Save(ctx context.Context, addr Address) (*Address, error) {
	var out Address
	if err := a.client.post(ctx, "/addresses", nil, addr, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a saved address.
func (a *AddressAPI) Delete(ctx context.Context, id int64) error {
	return a.client.delete(ctx, fmt.Sprintf("/addresses/%d", id), nil)
}
