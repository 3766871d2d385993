package registry

import (
	"sync"

	providerx "github.com/narinth/insurepath/insurance/provider"
)

// ProviderRegistry stores carrier integrations keyed by provider id.
type ProviderRegistry struct {
	mu        sync.Mutex
	providers map[string]providerx.Provider
}

func NewProviderRegistry() *ProviderRegistry {
	return &ProviderRegistry{
		providers: make(map[string]providerx.Provider),
	}
}

func (r *ProviderRegistry) Register(p providerx.Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[p.ID()] = p
}

func (r *ProviderRegistry) Get(providerID string) (providerx.Provider, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.providers[providerID]
	return p, ok
}

func (r *ProviderRegistry) ListIDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(r.providers))
	for id := range r.providers {
		ids = append(ids, id)
	}
	return ids
}

func (r *ProviderRegistry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers = make(map[string]providerx.Provider)
}
