package event

import (
	"context"
	"log/slog"

	"github.com/Thamizhjaisankar-git/amazon-clone/internal/domain"
	"github.com/Thamizhjaisankar-git/amazon-clone/internal/store"
	pkgkafka "github.com/Thamizhjaisankar-git/amazon-clone/pkg/kafka"
	"github.com/Thamizhjaisankar-git/amazon-clone/pkg/logger"
)

// Kafka topics for storefront change events.
const (
	TopicCartUpdated     = "storefront.cart.updated"
	TopicCartCleared     = "storefront.cart.cleared"
	TopicWishlistUpdated = "storefront.wishlist.updated"
	TopicSessionChanged  = "storefront.session.changed"
)

// Aggregate types.
const (
	AggregateCart     = "cart"
	AggregateWishlist = "wishlist"
	AggregateSession  = "session"
)

const source = "storefront"

// CartData is the payload of cart events.
type CartData struct {
	ProfileID string       `json:"profile_id"`
	Lines     domain.Lines `json:"lines"`
	Count     int          `json:"count"`
	Total     string       `json:"total"`
}

// WishlistData is the payload of wishlist events.
type WishlistData struct {
	ProfileID  string   `json:"profile_id"`
	ProductID  string   `json:"product_id"`
	Added      bool     `json:"added"`
	ProductIDs []string `json:"product_ids"`
}

// SessionData is the payload of session events. Name and email are empty
// after a logout.
type SessionData struct {
	ProfileID string `json:"profile_id"`
	Kind      string `json:"kind"`
	SessionID string `json:"session_id,omitempty"`
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
}

// EventPublisher is satisfied by *pkgkafka.Producer.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event *pkgkafka.Event) error
}

// Publisher forwards store changes to Kafka. It implements store.Hooks.
// Publish failures are logged and never reach the caller that mutated the
// store.
type Publisher struct {
	kafka  EventPublisher
	logger *slog.Logger
}

// NewPublisher creates a Publisher.
func NewPublisher(kafka EventPublisher, logger *slog.Logger) *Publisher {
	return &Publisher{kafka: kafka, logger: logger}
}

var _ store.Hooks = (*Publisher)(nil)

func (p *Publisher) CartObserver(profileID string) store.Observer[store.CartChange] {
	return func(ctx context.Context, ch store.CartChange) {
		topic := TopicCartUpdated
		if ch.Kind == store.CartCleared {
			topic = TopicCartCleared
		}
		p.publish(ctx, topic, profileID, AggregateCart, CartData{
			ProfileID: profileID,
			Lines:     ch.Lines,
			Count:     ch.Count,
			Total:     ch.Total.StringFixed(2),
		})
	}
}

func (p *Publisher) WishlistObserver(profileID string) store.Observer[store.WishlistChange] {
	return func(ctx context.Context, ch store.WishlistChange) {
		p.publish(ctx, TopicWishlistUpdated, profileID, AggregateWishlist, WishlistData{
			ProfileID:  profileID,
			ProductID:  ch.ProductID,
			Added:      ch.Added,
			ProductIDs: ch.IDs,
		})
	}
}

func (p *Publisher) SessionObserver(profileID string) store.Observer[store.SessionChange] {
	return func(ctx context.Context, ch store.SessionChange) {
		data := SessionData{ProfileID: profileID, Kind: ch.Kind}
		if ch.Session != nil {
			data.SessionID = ch.Session.ID
			data.Name = ch.Session.Name
			data.Email = ch.Session.Email
		}
		p.publish(ctx, TopicSessionChanged, profileID, AggregateSession, data)
	}
}

func (p *Publisher) publish(ctx context.Context, topic, profileID, aggregate string, data any) {
	evt, err := pkgkafka.NewEvent(topic, profileID, aggregate, source, data)
	if err != nil {
		p.logger.ErrorContext(ctx, "failed to build event",
			slog.String("topic", topic),
			slog.String("error", err.Error()),
		)
		return
	}
	evt.WithMetadata("profile_id", profileID)
	if id := logger.CorrelationIDFromContext(ctx); id != "" {
		evt.WithCorrelationID(id)
	}

	if err := p.kafka.Publish(ctx, topic, evt); err != nil {
		p.logger.WarnContext(ctx, "failed to publish storefront event",
			slog.String("topic", topic),
			slog.String("profile_id", profileID),
			slog.String("error", err.Error()),
		)
	}
}
