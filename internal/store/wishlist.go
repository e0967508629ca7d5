package store

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/Thamizhjaisankar-git/amazon-clone/internal/domain"
	"github.com/Thamizhjaisankar-git/amazon-clone/internal/storage"
	apperrors "github.com/Thamizhjaisankar-git/amazon-clone/pkg/errors"
)

const wishlistStore = "wishlist"

// WishlistChange is delivered to wishlist observers after a toggle.
type WishlistChange struct {
	ProductID string
	Added     bool
	IDs       []string
}

// ProductLookup resolves product IDs.
type ProductLookup interface {
	Product(id string) (domain.Product, bool)
}

// WishlistStore is an insertion-ordered set of product IDs.
type WishlistStore struct {
	mu        sync.Mutex
	deps      Deps
	ids       []string
	observers []Observer[WishlistChange]
}

func validIDs(ids []string) bool {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			return false
		}
		if _, dup := seen[id]; dup {
			return false
		}
		seen[id] = struct{}{}
	}
	return true
}

// NewWishlistStore restores the wishlist from deps.Storage.
func NewWishlistStore(ctx context.Context, deps Deps) (*WishlistStore, error) {
	ids, err := restore(ctx, deps, wishlistStore, storage.WishlistKey, validIDs)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return &WishlistStore{deps: deps, ids: ids}, nil
}

func (s *WishlistStore) Subscribe(o Observer[WishlistChange]) {
	if o == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

// Toggle adds id when absent and removes it when present. It returns the
// resulting membership.
func (s *WishlistStore) Toggle(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, apperrors.InvalidInput("product id is required")
	}

	s.mu.Lock()
	next := slices.Clone(s.ids)
	added := true
	if i := slices.Index(next, id); i >= 0 {
		next = slices.Delete(next, i, i+1)
		added = false
	} else {
		next = append(next, id)
	}

	if err := persist(ctx, s.deps, wishlistStore, storage.WishlistKey, next); err != nil {
		member := !added
		s.mu.Unlock()
		return member, err
	}
	s.ids = next
	change := WishlistChange{ProductID: id, Added: added, IDs: slices.Clone(next)}
	observers := slices.Clone(s.observers)
	s.mu.Unlock()

	s.deps.Metrics.mutated(wishlistStore, "toggle")
	s.deps.logger().DebugContext(ctx, "wishlist toggled",
		slog.String("product_id", id),
		slog.Bool("added", added),
	)
	notify(ctx, observers, change)
	return added, nil
}

func (s *WishlistStore) Contains(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Contains(s.ids, id)
}

// List returns the IDs in insertion order.
func (s *WishlistStore) List() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.ids)
}

func (s *WishlistStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}

func (s *WishlistStore) CountBadge() string {
	return domain.CountBadge(s.Len())
}

// Products resolves the wishlist against lookup, skipping unknown IDs.
func (s *WishlistStore) Products(lookup ProductLookup) []domain.Product {
	ids := s.List()
	out := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := lookup.Product(id); ok {
			out = append(out, p)
		}
	}
	return out
}
