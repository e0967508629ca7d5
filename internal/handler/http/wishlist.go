package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Thamizhjaisankar-git/amazon-clone/internal/catalog"
	"github.com/Thamizhjaisankar-git/amazon-clone/internal/store"
	"github.com/Thamizhjaisankar-git/amazon-clone/pkg/httputil"
)

// WishlistHandler serves the profile's wishlist.
type WishlistHandler struct {
	stores  *store.Factory
	catalog *catalog.Catalog
	logger  *slog.Logger
}

func NewWishlistHandler(stores *store.Factory, c *catalog.Catalog, logger *slog.Logger) *WishlistHandler {
	return &WishlistHandler{stores: stores, catalog: c, logger: logger}
}

// GetWishlist handles GET /api/v1/wishlist
func (h *WishlistHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	wl, err := h.stores.Wishlist(r.Context(), profileID(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, newWishlistView(wl, h.catalog))
}

// Toggle handles POST /api/v1/wishlist/{productId}/toggle
func (h *WishlistHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "productId")

	wl, err := h.stores.Wishlist(r.Context(), profileID(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	added, err := wl.Toggle(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, toggleView{
		ProductID:  id,
		InWishlist: added,
		Wishlist:   newWishlistView(wl, h.catalog),
	})
}
