package catalog

import (
	"strings"

	"github.com/krishma/storefront/internal/domain"
)

// Filter is the storefront's client-side product filtering: free-text search
// plus category and status narrowing. Zero values match everything.
type Filter struct {
	Query    string
	Category string
	Status   string
}

// Apply returns the products matching the filter. Search is case-insensitive
// over name, description and category.
func (f Filter) Apply(products []domain.Product) []domain.Product {
	if f.Query == "" && f.Category == "" && f.Status == "" {
		return products
	}

	query := strings.ToLower(f.Query)
	matched := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if !f.matchQuery(p, query) {
			continue
		}
		if f.Category != "" && f.Category != "all" && p.Category != f.Category {
			continue
		}
		if f.Status != "" && f.Status != "all" && p.Status != f.Status {
			continue
		}
		matched = append(matched, p)
	}
	return matched
}

func (f Filter) matchQuery(p domain.Product, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), query) ||
		strings.Contains(strings.ToLower(p.Description), query) ||
		strings.Contains(strings.ToLower(p.Category), query)
}
