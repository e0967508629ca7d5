// Package storage defines the key/value port the stores persist through,
// plus a key-prefixing wrapper. Adapters live in the subpackages.
package storage

import (
	"context"
	"errors"
	"strings"

	apperrors "github.com/Thamizhjaisankar-git/amazon-clone/pkg/errors"
)

// Keys under which each store persists its full state.
const (
	CartKey     = "amazonClone_cart"
	WishlistKey = "amazonClone_wishlist"
	SessionKey  = "amazonClone_user"
)

// Storage is a key/value store of opaque values. Get on a missing key
// returns an error wrapping apperrors.ErrNotFound. Remove on a missing key
// is not an error.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}

// ErrKeyNotFound builds the error adapters return for a missing key.
func ErrKeyNotFound(key string) error {
	return apperrors.NotFound("storage key", key)
}

// TraceError is err for span recording, with missing-key errors dropped
// so a miss is not reported as a failed call.
func TraceError(err error) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil
	}
	return err
}

type prefixed struct {
	next   Storage
	prefix string
}

// WithPrefix namespaces every key passed to next.
func WithPrefix(next Storage, prefix string) Storage {
	return &prefixed{next: next, prefix: prefix}
}

// ForProfile namespaces next to one storefront profile as
// "profile:<id>:<key>".
func ForProfile(next Storage, profileID string) Storage {
	return WithPrefix(next, "profile:"+strings.TrimSpace(profileID)+":")
}

func (p *prefixed) Get(ctx context.Context, key string) ([]byte, error) {
	return p.next.Get(ctx, p.prefix+key)
}

func (p *prefixed) Set(ctx context.Context, key string, value []byte) error {
	return p.next.Set(ctx, p.prefix+key, value)
}

func (p *prefixed) Remove(ctx context.Context, key string) error {
	return p.next.Remove(ctx, p.prefix+key)
}
