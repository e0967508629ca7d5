package catalog

import (
	"fmt"
	"strings"

	"github.com/Thamizhjaisankar-git/amazon-clone/internal/domain"
)

// AllCategories disables category filtering.
const AllCategories = "All"

// Filter returns the products in category whose title, description or
// category contains query, case-insensitively. Any category other than
// AllCategories, including "", must match exactly. Order is preserved.
func Filter(products []domain.Product, category, query string) []domain.Product {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]domain.Product, 0, len(products))

	for _, p := range products {
		if category != AllCategories && p.Category != category {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Title), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) &&
			!strings.Contains(strings.ToLower(p.Category), q) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// DistinctCategories lists categories in first-seen order.
func DistinctCategories(products []domain.Product) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, p := range products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}

// ResultsLabel is the result count line, e.g. `3 results for "go"`.
func ResultsLabel(n int, query string) string {
	label := fmt.Sprintf("%d results", n)
	if n == 1 {
		label = "1 result"
	}
	if q := strings.TrimSpace(query); q != "" {
		label += ` for "` + q + `"`
	}
	return label
}

// SectionTitle is the heading above the product grid.
func SectionTitle(category, query string) string {
	switch {
	case category != "" && category != AllCategories:
		return category
	case strings.TrimSpace(query) != "":
		return "Search Results"
	default:
		return "Featured Products"
	}
}
