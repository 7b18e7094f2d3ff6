package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pub-pocket/internal/cache"
	"pub-pocket/internal/client"
	"pub-pocket/internal/model"
)

func loginBackend(t *testing.T) http.Handler {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "jozef", r.URL.Query().Get("name"))
		require.Equal(t, "hunter2", r.URL.Query().Get("password"))
		w.Write([]byte(`{"token": "tok-abc", "user_type": "registered"}`))
	})
	mux.HandleFunc("/register", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token": "tok-new", "user_type": "registered"}`))
	})
	mux.HandleFunc("/anonymous", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token": "tok-guest", "user_type": "anonymous"}`))
	})
	mux.HandleFunc("/discounts", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"discounts": [{"id": "d-20", "effectivness": 0.2, "cost": 120}]}`))
	})
	return mux
}

func TestSession_Login(t *testing.T) {
	f := newFixture(t, loginBackend(t))

	err := f.sessions.Login(context.Background(), client.Credentials{Name: "jozef", Password: "hunter2"})
	require.NoError(t, err)

	assert.Equal(t, "tok-abc", f.session.Token())
	assert.Equal(t, model.RoleRegistered, f.session.Role())
	assert.False(t, f.session.Offline())

	// the discount catalog is pulled right after login
	catalog := f.discounts.Catalog()
	require.Len(t, catalog, 1)
	assert.Equal(t, "d-20", catalog[0].ID)

	// credentials survive for the next app start
	saved, err := f.sessions.SavedLogin()
	require.NoError(t, err)
	assert.Equal(t, "jozef", saved.Name)
	assert.Equal(t, "hunter2", saved.Password)
}

func TestSession_Login_UnreachableBackendGoesOffline(t *testing.T) {
	f := newFixture(t, rejectAll(t))
	require.NoError(t, f.cache.SaveFavourites([]model.Food{gulas(t)}))
	// nothing listens here
	f.session.SetBaseURL("127.0.0.1:1")

	err := f.sessions.Login(context.Background(), client.Credentials{Name: "jozef", Password: "hunter2"})
	require.ErrorIs(t, err, model.ErrNetworkFailure)

	assert.True(t, f.session.Offline())
	// favourites were hydrated from the cache so browsing still works
	assert.True(t, f.favourites.Contains("f1"))
}

func TestSession_Login_RejectionIsNotOffline(t *testing.T) {
	f := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message": "wrong password"}`))
	}))

	err := f.sessions.Login(context.Background(), client.Credentials{Name: "jozef", Password: "nope"})
	var backendErr *model.BackendError
	require.ErrorAs(t, err, &backendErr)
	assert.Equal(t, http.StatusUnauthorized, backendErr.StatusCode)
	assert.False(t, f.session.Offline())
}

func TestSession_Register(t *testing.T) {
	f := newFixture(t, loginBackend(t))

	err := f.sessions.Register(context.Background(), client.Credentials{Name: "nový", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "tok-new", f.session.Token())
	assert.Equal(t, model.RoleRegistered, f.session.Role())
}

func TestSession_Anonymous(t *testing.T) {
	f := newFixture(t, loginBackend(t))

	require.NoError(t, f.sessions.Anonymous(context.Background()))
	assert.Equal(t, "tok-guest", f.session.Token())
	assert.Equal(t, model.RoleAnonymous, f.session.Role())
}

func TestSession_Logout(t *testing.T) {
	f := newFixture(t, loginBackend(t))
	require.NoError(t, f.sessions.Login(context.Background(), client.Credentials{Name: "jozef", Password: "hunter2"}))

	require.NoError(t, f.checkout.AddToCart(gulas(t), model.SizeMedium, 2))
	f.discounts.Choose(&model.Discount{ID: "d-20"})

	f.sessions.Logout()

	assert.Empty(t, f.session.Token())
	assert.Empty(t, f.cart.Items())
	assert.Nil(t, f.discounts.Chosen())
	// saved credentials are kept so the login screen can be prefilled
	saved, err := f.sessions.SavedLogin()
	require.NoError(t, err)
	assert.Equal(t, "jozef", saved.Name)
}

func TestSession_SavedLogin_Empty(t *testing.T) {
	f := newFixture(t, rejectAll(t))

	_, err := f.sessions.SavedLogin()
	assert.ErrorIs(t, err, cache.ErrNotFound)
}
