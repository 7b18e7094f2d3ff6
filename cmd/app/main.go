// Command app wires the client core together and runs a connectivity
// smoke pass against the configured backend: start a session, pull the
// menu, discounts and favourites, and report what came back. The real
// consumer of these packages is a UI layer; this binary exists to exercise
// the wiring end to end.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"pub-pocket/internal/cache"
	"pub-pocket/internal/client"
	"pub-pocket/internal/config"
	"pub-pocket/internal/service"
	"pub-pocket/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A .env file is optional; real configuration comes from the
	// environment.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)
	logger.Info().Str("backend", cfg.Backend.BaseURL).Msg("starting pub-pocket client")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Cancel on interrupt so an unreachable backend doesn't hold the
	// process until every timeout fires.
	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-interrupts
		logger.Info().Str("signal", sig.String()).Msg("interrupted")
		cancel()
	}()

	localCache, err := cache.Open(cfg.Cache.Path, logger)
	if err != nil {
		return fmt.Errorf("failed to open local cache: %w", err)
	}
	defer localCache.Close()

	// Stores
	session := store.NewSession(cfg.Backend.BaseURL)
	cart := store.NewCart()
	discounts := store.NewDiscounts()
	favourites := store.NewFavourites()

	// Backend client
	backend := client.New(session, time.Duration(cfg.Backend.RequestTimeout)*time.Millisecond, logger)

	// Services
	sessions := service.NewSessionService(session, cart, discounts, favourites, backend, localCache, logger)
	favs := service.NewFavouritesService(session, favourites, backend, localCache, logger)
	checkout := service.NewCheckoutService(cart, discounts, favourites, session, backend, logger)

	// Prefer a saved login, fall back to a guest session.
	if creds, err := sessions.SavedLogin(); err == nil {
		if err := sessions.Login(ctx, creds); err != nil {
			logger.Warn().Err(err).Msg("saved login failed")
		}
	} else if err := sessions.Anonymous(ctx); err != nil {
		return fmt.Errorf("could not start a session: %w", err)
	}

	if session.Offline() {
		logger.Warn().Msg("running in offline mode; showing cached data only")
	}

	if !session.Offline() {
		dishes, err := backend.ListDishes(ctx, "", "")
		if err != nil {
			logger.Warn().Err(err).Msg("menu listing failed")
		} else {
			logger.Info().Int("dishes", len(dishes)).Msg("menu loaded")
		}

		// Price a throwaway cart line to prove the checkout path works.
		if len(dishes) > 0 {
			if err := checkout.AddToCart(dishes[0], "medium", 1); err != nil {
				logger.Warn().Err(err).Msg("cart smoke check failed")
			} else {
				quote := checkout.Quote()
				logger.Info().
					Str("total", quote.DiscountedTotal.String()).
					Str("discount", quote.TotalDiscount.String()).
					Msg("cart quote priced")
				cart.ClearAll()
			}
		}
	}

	if err := favs.PullOnce(ctx); err != nil {
		logger.Warn().Err(err).Msg("favourites unavailable")
	}

	logger.Info().
		Int("favourites", favourites.Len()).
		Int("discounts", len(discounts.Catalog())).
		Str("role", string(session.Role())).
		Bool("offline", session.Offline()).
		Msg("session ready")

	return nil
}
