package client

import (
	"context"

	"pub-pocket/internal/model"
)

// ListDiscounts fetches the discount catalog. Called once after login; on
// failure the caller keeps whatever catalog it had.
func (c *Client) ListDiscounts(ctx context.Context) ([]model.Discount, error) {
	var payload struct {
		Discounts []model.Discount `json:"discounts"`
	}
	if err := c.get(ctx, "/discounts", c.tokenQuery(), &payload); err != nil {
		return nil, err
	}
	return payload.Discounts, nil
}
