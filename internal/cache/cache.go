// Package cache is the device-local persistence layer: an embedded SQLite
// file holding the saved server address, credentials and the last known
// favourites list. It is write-through — the services update it at each
// mutation point — and read back only for session restore and offline
// mode. Losing it costs nothing but convenience.
package cache

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"pub-pocket/internal/model"
)

// ErrNotFound is returned when the cache holds no value for a key.
var ErrNotFound = errors.New("not cached")

const schema = `
CREATE TABLE IF NOT EXISTS settings (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS favourites (
	dish_id TEXT PRIMARY KEY,
	payload TEXT NOT NULL
);
`

const (
	keyBaseURL  = "base_url"
	keyUser     = "user"
	keyPassword = "password"
)

// Cache is the local device cache handle.
type Cache struct {
	db     *sqlx.DB
	logger zerolog.Logger
}

// Open opens (creating if needed) the cache file and ensures the schema.
func Open(path string, logger zerolog.Logger) (*Cache, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialising cache schema: %w", err)
	}

	logger = logger.With().Str("component", "local-cache").Logger()
	logger.Debug().Str("path", path).Msg("local cache opened")

	return &Cache{db: db, logger: logger}, nil
}

// Close releases the underlying database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}

func (c *Cache) setSetting(key, value string) error {
	_, err := c.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("saving setting %s: %w", key, err)
	}
	return nil
}

func (c *Cache) setting(key string) (string, error) {
	var value string
	err := c.db.Get(&value, `SELECT value FROM settings WHERE key = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("reading setting %s: %w", key, err)
	}
	return value, nil
}

// SaveBaseURL persists the backend address.
func (c *Cache) SaveBaseURL(url string) error {
	return c.setSetting(keyBaseURL, url)
}

// BaseURL returns the saved backend address.
func (c *Cache) BaseURL() (string, error) {
	return c.setting(keyBaseURL)
}

// SaveCredentials persists the last successful login.
func (c *Cache) SaveCredentials(user, password string) error {
	if err := c.setSetting(keyUser, user); err != nil {
		return err
	}
	return c.setSetting(keyPassword, password)
}

// Credentials returns the saved login, or ErrNotFound when none is saved.
func (c *Cache) Credentials() (user, password string, err error) {
	user, err = c.setting(keyUser)
	if err != nil {
		return "", "", err
	}
	password, err = c.setting(keyPassword)
	if err != nil {
		return "", "", err
	}
	return user, password, nil
}

// SaveFavourites replaces the cached favourites snapshot.
func (c *Cache) SaveFavourites(dishes []model.Food) error {
	tx, err := c.db.Beginx()
	if err != nil {
		return fmt.Errorf("saving favourites: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM favourites`); err != nil {
		return fmt.Errorf("clearing favourites: %w", err)
	}
	for _, dish := range dishes {
		payload, err := json.Marshal(dish)
		if err != nil {
			return fmt.Errorf("encoding favourite %s: %w", dish.ID, err)
		}
		if _, err := tx.Exec(
			`INSERT INTO favourites (dish_id, payload) VALUES (?, ?)`,
			dish.ID, string(payload),
		); err != nil {
			return fmt.Errorf("saving favourite %s: %w", dish.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("saving favourites: %w", err)
	}
	c.logger.Debug().Int("count", len(dishes)).Msg("favourites cached")
	return nil
}

// Favourites returns the cached favourites snapshot. An empty cache yields
// an empty list, not an error.
func (c *Cache) Favourites() ([]model.Food, error) {
	var rows []string
	if err := c.db.Select(&rows, `SELECT payload FROM favourites`); err != nil {
		return nil, fmt.Errorf("reading favourites: %w", err)
	}

	dishes := make([]model.Food, 0, len(rows))
	for _, raw := range rows {
		var dish model.Food
		if err := json.Unmarshal([]byte(raw), &dish); err != nil {
			return nil, fmt.Errorf("decoding cached favourite: %w", err)
		}
		dishes = append(dishes, dish)
	}
	return dishes, nil
}

// Clear wipes everything, used on logout.
func (c *Cache) Clear() error {
	if _, err := c.db.Exec(`DELETE FROM settings`); err != nil {
		return fmt.Errorf("clearing cache: %w", err)
	}
	if _, err := c.db.Exec(`DELETE FROM favourites`); err != nil {
		return fmt.Errorf("clearing cache: %w", err)
	}
	return nil
}
