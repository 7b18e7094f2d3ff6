package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"pub-pocket/internal/cache"
	"pub-pocket/internal/client"
	"pub-pocket/internal/model"
	"pub-pocket/internal/store"
)

// favAction is a favourites mutation direction.
type favAction int

const (
	favAdd favAction = iota
	favRemove
)

// reconcileKey pairs a mutation with the backend status it came back with.
type reconcileKey struct {
	action favAction
	status int
}

// reconcilable lists the rejection statuses after which local state is
// still moved to the intended outcome: a 409 on add means the backend
// already has the favourite, a 404 on remove means it is already gone.
// Every other rejection leaves local state untouched.
var reconcilable = map[reconcileKey]bool{
	{favAdd, http.StatusConflict}:    true,
	{favRemove, http.StatusNotFound}: true,
}

// favouritesService implements FavouritesService.
type favouritesService struct {
	session    *store.Session
	favourites *store.Favourites
	backend    *client.Client
	cache      *cache.Cache
	logger     zerolog.Logger
}

// NewFavouritesService creates a new favourites service.
func NewFavouritesService(
	session *store.Session,
	favourites *store.Favourites,
	backend *client.Client,
	localCache *cache.Cache,
	logger zerolog.Logger,
) FavouritesService {
	return &favouritesService{
		session:    session,
		favourites: favourites,
		backend:    backend,
		cache:      localCache,
		logger:     logger.With().Str("service", "favourites").Logger(),
	}
}

// PullOnce loads the favourites list the first time it is called in a
// session. Later calls are no-ops, whether or not the first fetch
// succeeded.
func (s *favouritesService) PullOnce(ctx context.Context) error {
	if s.session.CheckFavePulled() {
		return nil
	}

	if s.session.Offline() {
		dishes, err := s.cache.Favourites()
		if err != nil {
			s.logger.Warn().Err(err).Msg("offline favourites load failed")
			return err
		}
		s.favourites.Set(dishes)
		s.logger.Info().Int("count", len(dishes)).Msg("favourites loaded from cache")
		return nil
	}

	dishes, err := s.backend.ListFavourites(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("favourites pull failed")
		return err
	}
	s.favourites.Set(dishes)
	s.persist()

	s.logger.Info().Int("count", len(dishes)).Msg("favourites pulled")
	return nil
}

// Add favourites a dish.
func (s *favouritesService) Add(ctx context.Context, dish model.Food) error {
	err := s.backend.AddFavourite(ctx, dish.Title)
	if !s.shouldApply(favAdd, err) {
		return err
	}

	s.favourites.Add(dish)
	s.persist()
	return nil
}

// Remove unfavourites a dish.
func (s *favouritesService) Remove(ctx context.Context, dish model.Food) error {
	err := s.backend.RemoveFavourite(ctx, dish.Title)
	if !s.shouldApply(favRemove, err) {
		return err
	}

	s.favourites.Remove(dish.ID)
	s.persist()
	return nil
}

// shouldApply decides whether the backend outcome lets the local mutation
// go ahead.
func (s *favouritesService) shouldApply(action favAction, err error) bool {
	if err == nil {
		return true
	}
	var backendErr *model.BackendError
	if errors.As(err, &backendErr) && reconcilable[reconcileKey{action, backendErr.StatusCode}] {
		s.logger.Debug().
			Int("status", backendErr.StatusCode).
			Msg("favourite state reconciled with backend")
		return true
	}
	return false
}

// persist writes the current favourites through to the local cache. Cache
// failures are logged, not surfaced; the in-memory list stays the source
// of truth for the session.
func (s *favouritesService) persist() {
	if err := s.cache.SaveFavourites(s.favourites.List()); err != nil {
		s.logger.Warn().Err(err).Msg("caching favourites failed")
	}
}
