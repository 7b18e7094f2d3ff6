package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"pub-pocket/internal/cache"
	"pub-pocket/internal/client"
	"pub-pocket/internal/model"
	"pub-pocket/internal/store"
)

// sessionService implements SessionService.
type sessionService struct {
	session    *store.Session
	cart       *store.Cart
	discounts  *store.Discounts
	favourites *store.Favourites
	backend    *client.Client
	cache      *cache.Cache
	logger     zerolog.Logger
}

// NewSessionService creates a new session service.
func NewSessionService(
	session *store.Session,
	cart *store.Cart,
	discounts *store.Discounts,
	favourites *store.Favourites,
	backend *client.Client,
	localCache *cache.Cache,
	logger zerolog.Logger,
) SessionService {
	return &sessionService{
		session:    session,
		cart:       cart,
		discounts:  discounts,
		favourites: favourites,
		backend:    backend,
		cache:      localCache,
		logger:     logger.With().Str("service", "session").Logger(),
	}
}

// Login authenticates an existing account. An unreachable backend flips
// the session into offline mode and hydrates favourites from the local
// cache; the error is still returned so the screen can say so.
func (s *sessionService) Login(ctx context.Context, creds client.Credentials) error {
	result, err := s.backend.Login(ctx, creds)
	if err != nil {
		if errors.Is(err, model.ErrNetworkFailure) {
			s.enterOfflineMode()
			return err
		}
		return err
	}

	s.establish(result)

	if err := s.cache.SaveCredentials(creds.Name, creds.Password); err != nil {
		s.logger.Warn().Err(err).Msg("saving credentials failed")
	}

	s.pullDiscounts(ctx)
	s.logger.Info().Str("role", string(result.UserType)).Msg("logged in")
	return nil
}

// Register creates an account and logs it in. No offline fallback here;
// an account cannot be created without the backend.
func (s *sessionService) Register(ctx context.Context, creds client.Credentials) error {
	result, err := s.backend.Register(ctx, creds)
	if err != nil {
		return err
	}

	s.establish(result)

	if err := s.cache.SaveCredentials(creds.Name, creds.Password); err != nil {
		s.logger.Warn().Err(err).Msg("saving credentials failed")
	}

	s.pullDiscounts(ctx)
	s.logger.Info().Msg("registered")
	return nil
}

// Anonymous starts a guest session.
func (s *sessionService) Anonymous(ctx context.Context) error {
	result, err := s.backend.Anonymous(ctx)
	if err != nil {
		return err
	}

	s.establish(result)
	s.pullDiscounts(ctx)
	s.logger.Info().Msg("anonymous session started")
	return nil
}

// Logout drops the session and everything checkout-related. The local
// cache keeps credentials so the next login can be prefilled.
func (s *sessionService) Logout() {
	s.session.Reset()
	s.cart.ClearAll()
	s.discounts.Choose(nil)
	s.logger.Info().Msg("logged out")
}

// SavedLogin returns the credentials persisted by the last login.
func (s *sessionService) SavedLogin() (client.Credentials, error) {
	user, password, err := s.cache.Credentials()
	if err != nil {
		return client.Credentials{}, err
	}
	return client.Credentials{Name: user, Password: password}, nil
}

func (s *sessionService) establish(result *client.LoginResult) {
	s.session.SetToken(result.Token)
	s.session.SetRole(result.UserType)
	s.session.SetOffline(false)

	if err := s.cache.SaveBaseURL(s.session.BaseURL()); err != nil {
		s.logger.Warn().Err(err).Msg("saving server address failed")
	}
}

func (s *sessionService) enterOfflineMode() {
	s.session.SetOffline(true)
	dishes, err := s.cache.Favourites()
	if err != nil {
		s.logger.Warn().Err(err).Msg("offline favourites load failed")
		return
	}
	s.favourites.Set(dishes)
	s.logger.Info().Int("favourites", len(dishes)).Msg("entered offline mode")
}

// pullDiscounts refreshes the discount catalog after login. On failure the
// catalog keeps its previous value; there is no retry.
func (s *sessionService) pullDiscounts(ctx context.Context) {
	catalog, err := s.backend.ListDiscounts(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("discount pull failed")
		return
	}
	s.discounts.SetCatalog(catalog)
	s.logger.Debug().Int("count", len(catalog)).Msg("discount catalog refreshed")
}
