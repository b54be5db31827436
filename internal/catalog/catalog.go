// Package catalog implements the catalog query engine: it holds the
// load-time-fixed product list plus the current filter or search state and
// derives the visible set shown to the user. Like the cart, an engine is
// owned by a single session and performs no internal locking.
package catalog

import (
	"errors"
	"strings"

	"storefront-service/internal/domain"
)

// CategoryAll is the sentinel that deactivates category filtering. It is
// matched case-sensitively; only the exact string "all" resets the filter.
const CategoryAll = "all"

// ErrProductNotFound is returned by ProductByID for unknown ids.
var ErrProductNotFound = errors.New("catalog: product not found")

// Engine holds the full catalog and the derived visible subsequence. The
// visible set is recomputed from the full catalog on every filter or search
// command rather than patched incrementally, so it can never go stale.
type Engine struct {
	products       []domain.Product
	visible        []domain.Product
	activeCategory string
}

// New returns an engine with an empty catalog.
func New() *Engine {
	return &Engine{activeCategory: CategoryAll}
}

// Load replaces the catalog with products and resets derived state: the
// visible set becomes the whole catalog and the active category returns to
// "all", even if a filter or search was in effect before the reload.
func (e *Engine) Load(products []domain.Product) {
	e.products = products
	e.visible = products
	e.activeCategory = CategoryAll
}

// FilterByCategory records category as active and recomputes the visible
// set. The sentinel "all" restores the full catalog; any other value keeps
// the subsequence whose category matches case-insensitively, preserving the
// catalog's original relative order.
func (e *Engine) FilterByCategory(category string) {
	e.activeCategory = category
	if category == CategoryAll {
		e.visible = e.products
		return
	}
	visible := make([]domain.Product, 0, len(e.products))
	for _, p := range e.products {
		if strings.EqualFold(p.Category, category) {
			visible = append(visible, p)
		}
	}
	e.visible = visible
}

// Search recomputes the visible set as the products whose name or
// description contains query, case-insensitively. The empty query matches
// every product. Search does not combine with the category filter: the two
// commands are mutually exclusive and the last one issued wins, and the
// active category is left untouched by searching.
func (e *Engine) Search(query string) {
	query = strings.ToLower(query)
	visible := make([]domain.Product, 0, len(e.products))
	for _, p := range e.products {
		if strings.Contains(strings.ToLower(p.Name), query) ||
			strings.Contains(strings.ToLower(p.Description), query) {
			visible = append(visible, p)
		}
	}
	e.visible = visible
}

// ProductByID looks up a product in the full catalog, regardless of the
// current filter. Returns ErrProductNotFound for unknown ids. The scan is
// linear; the catalog is small and fixed after load.
func (e *Engine) ProductByID(id int64) (domain.Product, error) {
	for _, p := range e.products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, ErrProductNotFound
}

// Visible returns the current visible set in catalog order.
func (e *Engine) Visible() []domain.Product {
	return e.visible
}

// ActiveCategory returns the last category passed to FilterByCategory,
// or "all" if filtering is inactive.
func (e *Engine) ActiveCategory() string {
	return e.activeCategory
}

// Products returns the full catalog regardless of filter state.
func (e *Engine) Products() []domain.Product {
	return e.products
}

// Categories returns the distinct product categories in the order they
// first appear in the catalog. Used to render the category bar.
func (e *Engine) Categories() []string {
	seen := make(map[string]bool)
	categories := make([]string, 0)
	for _, p := range e.products {
		key := strings.ToLower(p.Category)
		if !seen[key] {
			seen[key] = true
			categories = append(categories, p.Category)
		}
	}
	return categories
}
