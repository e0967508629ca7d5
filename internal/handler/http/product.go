package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Thamizhjaisankar-git/amazon-clone/internal/catalog"
	apperrors "github.com/Thamizhjaisankar-git/amazon-clone/pkg/errors"
	"github.com/Thamizhjaisankar-git/amazon-clone/pkg/httputil"
	"github.com/Thamizhjaisankar-git/amazon-clone/pkg/pagination"
)

// ProductHandler serves the read-only catalog.
type ProductHandler struct {
	catalog *catalog.Catalog
	logger  *slog.Logger
}

func NewProductHandler(c *catalog.Catalog, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{catalog: c, logger: logger}
}

// ListProducts handles GET /api/v1/products?category=&q=&page=&per_page=
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	category := strings.TrimSpace(r.URL.Query().Get("category"))
	if category == "" {
		category = catalog.AllCategories
	}
	query := r.URL.Query().Get("q")

	matched := h.catalog.Filter(category, query)
	page := pagination.Slice(newProductViews(matched), pagination.FromRequest(r))

	httputil.WriteData(w, productListView{
		Result:       page,
		Category:     category,
		Query:        strings.TrimSpace(query),
		ResultsLabel: catalog.ResultsLabel(len(matched), query),
		SectionTitle: catalog.SectionTitle(category, query),
	})
}

// GetProduct handles GET /api/v1/products/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, ok := h.catalog.Product(id)
	if !ok {
		httputil.WriteError(w, r, apperrors.NotFound("product", id), h.logger)
		return
	}
	httputil.WriteData(w, newProductView(p))
}

// ListCategories handles GET /api/v1/categories
func (h *ProductHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, h.catalog.Categories())
}
