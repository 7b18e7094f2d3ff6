package client

import (
	"context"
	"net/http"

	"pub-pocket/internal/model"
)

// favouritesListing is the wire shape of GET /favourite.
type favouritesListing struct {
	Dishes []model.Food `json:"dishes"`
}

// ListFavourites fetches the user's favourite dishes.
func (c *Client) ListFavourites(ctx context.Context) ([]model.Food, error) {
	var payload favouritesListing
	if err := c.get(ctx, "/favourite", c.tokenQuery(), &payload); err != nil {
		return nil, err
	}
	return payload.Dishes, nil
}

// AddFavourite marks a dish as favourite on the backend. The endpoint is
// keyed by dish title. A 409 comes back as a BackendError; the favourites
// service decides that it means "already favourited".
func (c *Client) AddFavourite(ctx context.Context, dishTitle string) error {
	query := c.tokenQuery()
	query.Set("dish_name", dishTitle)
	return c.do(ctx, http.MethodPost, "/favourite", query, nil, nil, "")
}

// RemoveFavourite unmarks a dish on the backend. A 404 comes back as a
// BackendError meaning "already removed".
func (c *Client) RemoveFavourite(ctx context.Context, dishTitle string) error {
	query := c.tokenQuery()
	query.Set("dish_name", dishTitle)
	return c.do(ctx, http.MethodDelete, "/favourite", query, nil, nil, "")
}
