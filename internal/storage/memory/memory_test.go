package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Thamizhjaisankar-git/amazon-clone/internal/storage"
	apperrors "github.com/Thamizhjaisankar-git/amazon-clone/pkg/errors"
)

func TestStore_GetSetRemove(t *testing.T) {
	ctx := context.Background()
	s := New()

	_, err := s.Get(ctx, "k")
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	require.NoError(t, s.Set(ctx, "k", []byte("v1")))
	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), got)

	require.NoError(t, s.Set(ctx, "k", []byte("v2")))
	got, _ = s.Get(ctx, "k")
	assert.Equal(t, []byte("v2"), got)

	require.NoError(t, s.Remove(ctx, "k"))
	require.NoError(t, s.Remove(ctx, "k"))
	_, err = s.Get(ctx, "k")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestStore_CopiesValues(t *testing.T) {
	ctx := context.Background()
	s := New()

	in := []byte("abc")
	require.NoError(t, s.Set(ctx, "k", in))
	in[0] = 'X'

	out, _ := s.Get(ctx, "k")
	assert.Equal(t, "abc", string(out))
	out[0] = 'Y'

	again, _ := s.Get(ctx, "k")
	assert.Equal(t, "abc", string(again))
}

func TestForProfile_NamespacesKeys(t *testing.T) {
	ctx := context.Background()
	base := New()

	alice := storage.ForProfile(base, "alice")
	bob := storage.ForProfile(base, "bob")

	require.NoError(t, alice.Set(ctx, storage.CartKey, []byte("[1]")))
	require.NoError(t, bob.Set(ctx, storage.CartKey, []byte("[2]")))

	assert.Equal(t, []string{"profile:alice:amazonClone_cart", "profile:bob:amazonClone_cart"}, base.Keys())

	got, err := alice.Get(ctx, storage.CartKey)
	require.NoError(t, err)
	assert.Equal(t, "[1]", string(got))

	require.NoError(t, bob.Remove(ctx, storage.CartKey))
	assert.Equal(t, []string{"profile:alice:amazonClone_cart"}, base.Keys())
}
