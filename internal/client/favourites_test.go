package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pub-pocket/internal/model"
)

func TestClient_ListFavourites(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/favourite", r.URL.Path)
		assert.Equal(t, "tok-test", r.URL.Query().Get("token"))
		w.Write([]byte(`{"dishes": [{"id": "f1", "title": "Guláš"}]}`))
	}))

	dishes, err := c.ListFavourites(context.Background())
	require.NoError(t, err)
	require.Len(t, dishes, 1)
	assert.Equal(t, "Guláš", dishes[0].Title)
}

func TestClient_AddFavourite(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/favourite", r.URL.Path)
		assert.Equal(t, "Guláš", r.URL.Query().Get("dish_name"))
		w.Write([]byte(`{"message": "ok"}`))
	}))

	require.NoError(t, c.AddFavourite(context.Background(), "Guláš"))
}

func TestClient_FavouriteMutations_SurfaceStatusCodes(t *testing.T) {
	tests := []struct {
		name   string
		status int
		call   func(*Client) error
	}{
		{
			name:   "add conflict",
			status: http.StatusConflict,
			call: func(c *Client) error {
				return c.AddFavourite(context.Background(), "Guláš")
			},
		},
		{
			name:   "remove missing",
			status: http.StatusNotFound,
			call: func(c *Client) error {
				return c.RemoveFavourite(context.Background(), "Guláš")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(`{"message": "already so"}`))
			}))

			err := tt.call(c)
			var backendErr *model.BackendError
			require.ErrorAs(t, err, &backendErr)
			assert.Equal(t, tt.status, backendErr.StatusCode)
		})
	}
}

func TestClient_RemoveFavourite_UsesDelete(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.Write([]byte(`{"message": "ok"}`))
	}))

	require.NoError(t, c.RemoveFavourite(context.Background(), "Guláš"))
}
