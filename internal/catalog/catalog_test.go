package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Thamizhjaisankar-git/amazon-clone/internal/domain"
	apperrors "github.com/Thamizhjaisankar-git/amazon-clone/pkg/errors"
	"github.com/Thamizhjaisankar-git/amazon-clone/pkg/httpclient"
)

func mustSeed(t *testing.T) *Catalog {
	t.Helper()
	c, err := Seed()
	require.NoError(t, err)
	return c
}

func TestSeed(t *testing.T) {
	c := mustSeed(t)

	require.Equal(t, 6, c.Len())
	assert.Equal(t, []string{"Electronics", "Clothing", "Books", "Home & Garden", "Sports", "Beauty", "Toys"}, c.Categories())

	p, ok := c.Product("1")
	require.True(t, ok)
	assert.Equal(t, "Wireless Bluetooth Headphones", p.Title)
	assert.Equal(t, "$79.99", domain.FormatPrice(p.Price))
	assert.Equal(t, 20, p.DiscountPercent())

	kb, ok := c.Product("5")
	require.True(t, ok)
	assert.False(t, kb.InStock)
	assert.Nil(t, kb.OriginalPrice)

	_, ok = c.Product("99")
	assert.False(t, ok)
}

func TestNew_RejectsBadProducts(t *testing.T) {
	orig := decimal.NewFromInt(5)
	tests := map[string][]domain.Product{
		"missing title": {{ID: "1", Category: "Books"}},
		"rating range":  {{ID: "1", Title: "t", Category: "Books", Rating: 6}},
		"negative":      {{ID: "1", Title: "t", Category: "Books", Price: decimal.NewFromInt(-1)}},
		"original below": {{ID: "1", Title: "t", Category: "Books", Price: decimal.NewFromInt(10), OriginalPrice: &orig}},
		"duplicate id": {
			{ID: "1", Title: "a", Category: "Books"},
			{ID: "1", Title: "b", Category: "Books"},
		},
	}
	for name, products := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := New(Document{Products: products})
			assert.Error(t, err)
		})
	}
}

func TestNew_DerivesCategoriesWhenMissing(t *testing.T) {
	c, err := New(Document{Products: []domain.Product{
		{ID: "1", Title: "a", Category: "Books"},
		{ID: "2", Title: "b", Category: "Toys"},
		{ID: "3", Title: "c", Category: "Books"},
	}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Books", "Toys"}, c.Categories())
}

func TestParse_RejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte(`{"items":[]}`))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"products":[{"id":"b1","title":"Go Programming","category":"Books","price":"39.50"}]}`), 0o600))

	c, err := LoadFile(path)
	require.NoError(t, err)
	p, ok := c.Product("b1")
	require.True(t, ok)
	assert.Equal(t, "$39.50", domain.FormatPrice(p.Price))

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoadURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Document{Products: []domain.Product{
			{ID: "r1", Title: "Remote", Category: "Toys", Price: decimal.NewFromInt(3)},
		}})
	}))
	defer srv.Close()

	client := httpclient.NewCircuitBreakerClient(
		httpclient.New(httpclient.DefaultConfig()),
		httpclient.DefaultCircuitBreakerConfig("catalog"),
		nil,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	c, err := LoadURL(context.Background(), client, srv.URL)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, []string{"Toys"}, c.Categories())
}

type failingFetcher struct{}

func (failingFetcher) GetJSON(context.Context, string, any) error { return errors.New("unreachable") }

func TestLoadURL_FetchError(t *testing.T) {
	_, err := LoadURL(context.Background(), failingFetcher{}, "http://catalog.invalid")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch catalog")
}

func TestCatalog_ProductsReturnsCopy(t *testing.T) {
	c := mustSeed(t)
	ps := c.Products()
	ps[0].Title = "changed"

	p, _ := c.Product(ps[0].ID)
	assert.Equal(t, "Wireless Bluetooth Headphones", p.Title)
}

func TestCatalog_Purchasable(t *testing.T) {
	c := mustSeed(t)

	p, err := c.Purchasable("6")
	require.NoError(t, err)
	assert.Equal(t, "Yoga Mat Premium", p.Title)

	_, err = c.Purchasable("5")
	assert.ErrorIs(t, err, ErrOutOfStock)
	assert.Equal(t, http.StatusConflict, apperrors.HTTPStatus(err))

	_, err = c.Purchasable("404")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
