package stubset

import (
	"context"

	"github.com/bedrockhq/bedrock/internal/analysis"
)

// Provider answers reflection queries from a stub store. It implements
// analysis.ReflectionProvider for the runtime-backed container variant.
type Provider struct {
	store *Store
}

// NewProvider wraps a store. The provider does not own the store's lifetime.
func NewProvider(store *Store) *Provider {
	return &Provider{store: store}
}

// Store returns the underlying stub store, for bootstrap seeding.
func (p *Provider) Store() *Store { return p.store }

func (p *Provider) HasSymbol(name string) bool {
	_, err := p.store.Symbol(context.Background(), name)
	return err == nil
}

func (p *Provider) Symbol(name string) (analysis.Symbol, error) {
	return p.store.Symbol(context.Background(), name)
}
