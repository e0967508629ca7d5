package store

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/Thamizhjaisankar-git/amazon-clone/internal/domain"
	"github.com/Thamizhjaisankar-git/amazon-clone/internal/storage"
	apperrors "github.com/Thamizhjaisankar-git/amazon-clone/pkg/errors"
)

const cartStore = "cart"

// Cart change kinds.
const (
	CartUpdated = "updated"
	CartCleared = "cleared"
)

// CartChange is delivered to cart observers after a committed mutation.
type CartChange struct {
	Kind  string
	Count int
	Total decimal.Decimal
	Lines domain.Lines
}

// CartStore is an ordered cart with one line per product.
type CartStore struct {
	mu        sync.Mutex
	deps      Deps
	lines     domain.Lines
	observers []Observer[CartChange]
}

// NewCartStore restores the cart from deps.Storage.
func NewCartStore(ctx context.Context, deps Deps) (*CartStore, error) {
	lines, err := restore(ctx, deps, cartStore, storage.CartKey, domain.Lines.Valid)
	if err != nil {
		return nil, err
	}
	return &CartStore{deps: deps, lines: lines.Clone()}, nil
}

// Subscribe registers o for every committed change.
func (s *CartStore) Subscribe(o Observer[CartChange]) {
	if o == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

// AddToCart increments the line for p, or appends a new line with
// quantity 1 holding a snapshot of p.
func (s *CartStore) AddToCart(ctx context.Context, p *domain.Product) error {
	if p == nil || strings.TrimSpace(p.ID) == "" {
		return apperrors.InvalidInput("product is required")
	}
	product := *p

	return s.mutate(ctx, "add", func(lines domain.Lines) (domain.Lines, bool) {
		if i := lines.Index(product.ID); i >= 0 {
			lines[i].Quantity++
			return lines, true
		}
		return append(lines, domain.NewCartLine(product, s.deps.now())), true
	})
}

// RemoveFromCart deletes the line for id. An absent id is a no-op.
func (s *CartStore) RemoveFromCart(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("product id is required")
	}
	return s.mutate(ctx, "remove", func(lines domain.Lines) (domain.Lines, bool) {
		i := lines.Index(id)
		if i < 0 {
			return lines, false
		}
		return slices.Delete(lines, i, i+1), true
	})
}

// SetQuantity sets the quantity of an existing line. A quantity of zero or
// less removes the line. An absent id is a no-op.
func (s *CartStore) SetQuantity(ctx context.Context, id string, qty int) error {
	if id == "" {
		return apperrors.InvalidInput("product id is required")
	}
	if qty <= 0 {
		return s.RemoveFromCart(ctx, id)
	}
	return s.mutate(ctx, "set_quantity", func(lines domain.Lines) (domain.Lines, bool) {
		i := lines.Index(id)
		if i < 0 {
			return lines, false
		}
		lines[i].Quantity = qty
		return lines, true
	})
}

// Clear empties the cart.
func (s *CartStore) Clear(ctx context.Context) error {
	return s.mutate(ctx, "clear", func(domain.Lines) (domain.Lines, bool) {
		return domain.Lines{}, true
	})
}

// mutate applies fn to a copy of the lines, persists the result and only
// then commits it. Observers are notified after the lock is released.
func (s *CartStore) mutate(ctx context.Context, op string, fn func(domain.Lines) (domain.Lines, bool)) error {
	s.mu.Lock()
	next, changed := fn(s.lines.Clone())
	if !changed {
		s.mu.Unlock()
		return nil
	}
	if err := persist(ctx, s.deps, cartStore, storage.CartKey, next); err != nil {
		s.mu.Unlock()
		return err
	}
	s.lines = next

	kind := CartUpdated
	if op == "clear" {
		kind = CartCleared
	}
	change := CartChange{Kind: kind, Count: next.Count(), Total: next.Total(), Lines: next.Clone()}
	observers := slices.Clone(s.observers)
	s.mu.Unlock()

	s.deps.Metrics.mutated(cartStore, op)
	s.deps.logger().DebugContext(ctx, "cart updated",
		slog.String("operation", op),
		slog.Int("count", change.Count),
		slog.String("total", change.Total.StringFixed(2)),
	)
	notify(ctx, observers, change)
	return nil
}

// Total is the sum of price times quantity over all lines.
func (s *CartStore) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lines.Total()
}

// Count is the sum of quantities.
func (s *CartStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lines.Count()
}

func (s *CartStore) IsInCart(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lines.Index(id) >= 0
}

// Quantity returns the quantity for id, or 0 when it is not in the cart.
func (s *CartStore) Quantity(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.lines.Index(id); i >= 0 {
		return s.lines[i].Quantity
	}
	return 0
}

// Lines returns a copy of the lines in insertion order.
func (s *CartStore) Lines() domain.Lines {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lines.Clone()
}

func (s *CartStore) CountBadge() string {
	return domain.CountBadge(s.Count())
}
