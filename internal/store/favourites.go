package store

import (
	"sync"

	"pub-pocket/internal/model"
)

// Favourites holds the user's favourite dishes, keyed by dish id. Local
// mutation happens only after the backend has been told (or has reported
// the state already matches); see the favourites service.
type Favourites struct {
	mu     sync.Mutex
	dishes []model.Food
}

// NewFavourites creates an empty favourites store.
func NewFavourites() *Favourites {
	return &Favourites{}
}

// Set replaces the favourite list, typically from the backend listing or
// the local cache in offline mode.
func (f *Favourites) Set(dishes []model.Food) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dishes = make([]model.Food, len(dishes))
	copy(f.dishes, dishes)
}

// List returns a snapshot copy of the favourite dishes.
func (f *Favourites) List() []model.Food {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Food, len(f.dishes))
	copy(out, f.dishes)
	return out
}

// Contains reports whether the dish with the given id is a favourite.
func (f *Favourites) Contains(dishID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, dish := range f.dishes {
		if dish.ID == dishID {
			return true
		}
	}
	return false
}

// Add records the dish as a favourite. Adding a dish that is already
// present is a no-op.
func (f *Favourites) Add(dish model.Food) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.dishes {
		if existing.ID == dish.ID {
			return
		}
	}
	f.dishes = append(f.dishes, dish)
}

// Remove drops the dish with the given id. Removing an absent dish is a
// no-op.
func (f *Favourites) Remove(dishID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.dishes[:0]
	for _, dish := range f.dishes {
		if dish.ID != dishID {
			kept = append(kept, dish)
		}
	}
	f.dishes = kept
}

// Len returns the number of favourites.
func (f *Favourites) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.dishes)
}
