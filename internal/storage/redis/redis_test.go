package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/Thamizhjaisankar-git/amazon-clone/internal/storage"
	apperrors "github.com/Thamizhjaisankar-git/amazon-clone/pkg/errors"
)

func setupTestRedis(t *testing.T, ttl time.Duration) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return New(client, ttl), mr
}

func TestStore_SetWritesPrefixedKeyWithTTL(t *testing.T) {
	s, mr := setupTestRedis(t, 24*time.Hour)

	require.NoError(t, s.Set(context.Background(), "profile:p1:amazonClone_cart", []byte(`[]`)))

	got, err := mr.Get("storefront:profile:p1:amazonClone_cart")
	require.NoError(t, err)
	assert.Equal(t, `[]`, got)
	assert.Equal(t, 24*time.Hour, mr.TTL("storefront:profile:p1:amazonClone_cart"))
}

func TestStore_NoTTL(t *testing.T) {
	s, mr := setupTestRedis(t, 0)

	require.NoError(t, s.Set(context.Background(), "k", []byte("v")))
	assert.Zero(t, mr.TTL("storefront:k"))
}

func TestStore_GetMissing(t *testing.T) {
	s, _ := setupTestRedis(t, time.Hour)

	_, err := s.Get(context.Background(), "absent")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestStore_RoundTripAndRemove(t *testing.T) {
	ctx := context.Background()
	s, mr := setupTestRedis(t, time.Hour)
	profile := storage.ForProfile(s, "guest-1")

	require.NoError(t, profile.Set(ctx, storage.WishlistKey, []byte(`["1","3"]`)))
	got, err := profile.Get(ctx, storage.WishlistKey)
	require.NoError(t, err)
	assert.Equal(t, `["1","3"]`, string(got))

	require.NoError(t, profile.Remove(ctx, storage.WishlistKey))
	assert.False(t, mr.Exists("storefront:profile:guest-1:amazonClone_wishlist"))
	require.NoError(t, profile.Remove(ctx, storage.WishlistKey))
}

func TestStore_ConnectionError(t *testing.T) {
	s, mr := setupTestRedis(t, time.Hour)
	mr.Close()

	_, err := s.Get(context.Background(), "k")
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrNotFound)
	assert.Contains(t, err.Error(), "redis get k")

	assert.Error(t, s.Set(context.Background(), "k", []byte("v")))
	assert.Error(t, s.Ping(context.Background()))
}

func recordSpans(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(prev)
	})
	return exporter
}

func TestStore_MissIsNotASpanError(t *testing.T) {
	exporter := recordSpans(t)
	s, mr := setupTestRedis(t, time.Hour)

	_, err := s.Get(context.Background(), "absent")
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "db.GetState", spans[0].Name)
	assert.Equal(t, codes.Unset, spans[0].Status.Code)
	assert.Empty(t, spans[0].Events)

	mr.Close()
	_, err = s.Get(context.Background(), "absent")
	require.Error(t, err)
	spans = exporter.GetSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, codes.Error, spans[1].Status.Code)
}
