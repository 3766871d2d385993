// Package registry holds the in-memory keyed stores for products and
// providers. Each registry is an owned object guarded by a single mutex;
// callers pass it by reference instead of relying on package-level state.
package registry

import (
	"sync"

	modelx "github.com/narinth/insurepath/insurance/model"
)

// ProductRegistry stores product definitions keyed by id. Registration
// overwrites: the last registration for an id wins.
type ProductRegistry struct {
	mu       sync.Mutex
	products map[string]modelx.Product
}

func NewProductRegistry() *ProductRegistry {
	return &ProductRegistry{
		products: make(map[string]modelx.Product),
	}
}

func (r *ProductRegistry) Register(product modelx.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[product.ID] = product
}

func (r *ProductRegistry) Get(productID string) (modelx.Product, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[productID]
	return product, ok
}

// ListFilter narrows a product listing. Filters are conjunctive; zero values
// mean "no filter", so a zero ActiveOnly lists inactive products too.
type ListFilter struct {
	Category   modelx.Category
	ProviderID string
	ActiveOnly bool
}

// List returns products matching every set filter, in unspecified order.
func (r *ProductRegistry) List(filter ListFilter) []modelx.Product {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []modelx.Product
	for _, product := range r.products {
		if filter.ActiveOnly && !product.Active {
			continue
		}
		if filter.Category != "" && product.Category != filter.Category {
			continue
		}
		if filter.ProviderID != "" && product.ProviderID != filter.ProviderID {
			continue
		}
		matched = append(matched, product)
	}
	return matched
}

// CrossSell returns the active products listed in the product's
// cross_sell_products set. An unknown product id yields an empty result.
func (r *ProductRegistry) CrossSell(productID string) []modelx.Product {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[productID]
	if !ok {
		return nil
	}

	listed := make(map[string]bool, len(product.CrossSellProducts))
	for _, id := range product.CrossSellProducts {
		listed[id] = true
	}

	var matched []modelx.Product
	for _, candidate := range r.products {
		if listed[candidate.ID] && candidate.Active {
			matched = append(matched, candidate)
		}
	}
	return matched
}

// Clear removes every product. Useful for tests.
func (r *ProductRegistry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = make(map[string]modelx.Product)
}
