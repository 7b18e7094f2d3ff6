package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"pub-pocket/internal/model"
)

// ListDishes searches the menu. Both phrase and category may be empty; an
// empty category is omitted from the query entirely.
func (c *Client) ListDishes(ctx context.Context, phrase, category string) ([]model.Food, error) {
	query := c.tokenQuery()
	query.Set("phrase", phrase)
	if category != "" {
		query.Set("category", category)
	}

	var payload struct {
		Dishes []model.Food `json:"dishes"`
	}
	if err := c.get(ctx, "/dish", query, &payload); err != nil {
		return nil, err
	}
	return payload.Dishes, nil
}

// FullDishInfo loads a single dish with its full description and picture.
func (c *Client) FullDishInfo(ctx context.Context, dishID string) (*model.Food, error) {
	query := c.tokenQuery()
	query.Set("dish_id", dishID)

	var dish model.Food
	if err := c.get(ctx, "/dish_full_info", query, &dish); err != nil {
		return nil, err
	}
	return &dish, nil
}

// TodaysSpecial returns the id of today's special dish, or "" when none is
// set.
func (c *Client) TodaysSpecial(ctx context.Context) (string, error) {
	var payload struct {
		DishID string `json:"dish_id"`
	}
	if err := c.get(ctx, "/todays_special", c.tokenQuery(), &payload); err != nil {
		return "", err
	}
	return payload.DishID, nil
}

// DishPicture fetches the raw image bytes for a dish. The picture endpoint
// is keyed by dish title, not id.
func (c *Client) DishPicture(ctx context.Context, dishTitle string) ([]byte, error) {
	query := url.Values{}
	query.Set("dish", dishTitle)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("/dish/picture", query), nil)
	if err != nil {
		return nil, fmt.Errorf("building picture request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET /dish/picture: %w", model.ErrNetworkFailure)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &model.BackendError{StatusCode: resp.StatusCode}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("GET /dish/picture: %w", model.ErrNetworkFailure)
	}
	return raw, nil
}
