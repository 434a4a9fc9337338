package client

import "context"

// AdminAPI covers the admin dashboard reads.
type AdminAPI struct {
	client *Client
}

// Stats returns the aggregate counts behind the dashboard tiles.
func (a *AdminAPI) Stats(ctx context.Context) (*AdminStats, error) {
	var out AdminStats
	if err := a.client.get(ctx, "/admin/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
