package store

import (
	"context"
	"log/slog"
	"time"

	"github.com/Thamizhjaisankar-git/amazon-clone/internal/storage"
)

// Hooks supplies per-profile observers. Any method may return nil.
type Hooks interface {
	CartObserver(profileID string) Observer[CartChange]
	WishlistObserver(profileID string) Observer[WishlistChange]
	SessionObserver(profileID string) Observer[SessionChange]
}

// Factory builds stores scoped to one storefront profile. Stores are
// cheap and meant to live for a single request.
type Factory struct {
	storage storage.Storage
	logger  *slog.Logger
	metrics *Metrics
	hooks   Hooks

	// Now overrides the clock in tests.
	Now func() time.Time
}

// NewFactory creates a Factory. metrics and hooks may be nil.
func NewFactory(s storage.Storage, logger *slog.Logger, metrics *Metrics, hooks Hooks) *Factory {
	return &Factory{storage: s, logger: logger, metrics: metrics, hooks: hooks}
}

func (f *Factory) deps(profileID string) Deps {
	return Deps{
		Storage: storage.ForProfile(f.storage, profileID),
		Logger:  f.logger.With(slog.String("profile_id", profileID)),
		Metrics: f.metrics,
		Now:     f.Now,
	}
}

// Cart restores the cart for profileID.
func (f *Factory) Cart(ctx context.Context, profileID string) (*CartStore, error) {
	s, err := NewCartStore(ctx, f.deps(profileID))
	if err != nil {
		return nil, err
	}
	if f.hooks != nil {
		s.Subscribe(f.hooks.CartObserver(profileID))
	}
	return s, nil
}

// Wishlist restores the wishlist for profileID.
func (f *Factory) Wishlist(ctx context.Context, profileID string) (*WishlistStore, error) {
	s, err := NewWishlistStore(ctx, f.deps(profileID))
	if err != nil {
		return nil, err
	}
	if f.hooks != nil {
		s.Subscribe(f.hooks.WishlistObserver(profileID))
	}
	return s, nil
}

// Session restores the session for profileID.
func (f *Factory) Session(ctx context.Context, profileID string) (*SessionStore, error) {
	s, err := NewSessionStore(ctx, f.deps(profileID))
	if err != nil {
		return nil, err
	}
	if f.hooks != nil {
		s.Subscribe(f.hooks.SessionObserver(profileID))
	}
	return s, nil
}
