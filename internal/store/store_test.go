package store

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/Thamizhjaisankar-git/amazon-clone/internal/domain"
	"github.com/Thamizhjaisankar-git/amazon-clone/internal/storage"
	"github.com/Thamizhjaisankar-git/amazon-clone/internal/storage/memory"
)

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testDeps(s storage.Storage) Deps {
	return Deps{
		Storage: s,
		Logger:  testLogger(),
		Now:     func() time.Time { return fixedNow },
		NewID:   func() string { return "sess-1" },
	}
}

// capturingDeps logs warnings into buf.
func capturingDeps(s storage.Storage, buf *bytes.Buffer) Deps {
	d := testDeps(s)
	d.Logger = slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelWarn}))
	return d
}

func product(id, price string) *domain.Product {
	return &domain.Product{
		ID:       id,
		Title:    "Product " + id,
		Category: "Electronics",
		Price:    decimal.RequireFromString(price),
		InStock:  true,
	}
}

// mockStorage is a testify mock of storage.Storage.
type mockStorage struct {
	mock.Mock
}

func (m *mockStorage) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

func (m *mockStorage) Set(ctx context.Context, key string, value []byte) error {
	return m.Called(ctx, key, value).Error(0)
}

func (m *mockStorage) Remove(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

var errStorageDown = errors.New("storage down")

func seeded(t *testing.T, key, value string) *memory.Store {
	t.Helper()
	s := memory.New()
	if err := s.Set(context.Background(), key, []byte(value)); err != nil {
		t.Fatal(err)
	}
	return s
}
