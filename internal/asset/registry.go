package asset

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

var (
	ErrAlreadyRegistered = errors.New("asset: token already registered")
	ErrUnknownToken      = errors.New("asset: unknown token")
	ErrAmbiguousSymbol   = errors.New("asset: symbol matches several tokens")
)

// Registry is a thread-safe registry of known tokens.
type Registry struct {
	byID     map[TokenID]*Token
	bySymbol map[string][]*Token // upper-cased symbol -> tokens (can have several per chain)
	mu       sync.RWMutex
}

// NewRegistry creates a new empty token registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:     make(map[TokenID]*Token),
		bySymbol: make(map[string][]*Token),
	}
}

// Register adds a token to the registry.
func (r *Registry) Register(t *Token) error {
	if t == nil {
		return ErrNilToken
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := t.ID()
	if _, exists := r.byID[id]; exists {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, id)
	}

	r.byID[id] = t
	if t.Symbol() != "" {
		key := strings.ToUpper(t.Symbol())
		r.bySymbol[key] = append(r.bySymbol[key], t)
	}
	return nil
}

// MustRegister is Register that panics on error.
func (r *Registry) MustRegister(t *Token) {
	if err := r.Register(t); err != nil {
		panic(err)
	}
}

// Get retrieves a token by its ID.
func (r *Registry) Get(id TokenID) (*Token, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byID[id]
	return t, ok
}

// GetToken retrieves a token by chain and address.
func (r *Registry) GetToken(chainID uint64, address common.Address) (*Token, bool) {
	return r.Get(TokenID{chainID: chainID, address: address})
}

// GetBySymbolAndChain retrieves a token by symbol (case-insensitive) and chain ID.
func (r *Registry) GetBySymbolAndChain(symbol string, chainID uint64) ([]*Token, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*Token
	for _, t := range r.bySymbol[strings.ToUpper(symbol)] {
		if t.ChainID() == chainID {
			result = append(result, t)
		}
	}
	return result, len(result) > 0
}

// Resolve finds a token on chainID given either its address or its symbol.
func (r *Registry) Resolve(chainID uint64, ref string) (*Token, error) {
	if strings.HasPrefix(ref, "0x") {
		addr, err := ParseAddress(ref)
		if err != nil {
			return nil, err
		}
		if t, ok := r.GetToken(chainID, addr); ok {
			return t, nil
		}
		return nil, fmt.Errorf("%w: %s on chain %d", ErrUnknownToken, addr.Hex(), chainID)
	}

	matches, ok := r.GetBySymbolAndChain(ref, chainID)
	if !ok {
		return nil, fmt.Errorf("%w: %s on chain %d", ErrUnknownToken, ref, chainID)
	}
	if len(matches) > 1 {
		return nil, fmt.Errorf("%w: %s on chain %d", ErrAmbiguousSymbol, ref, chainID)
	}
	return matches[0], nil
}

// All returns all registered tokens.
func (r *Registry) All() []*Token {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Token, 0, len(r.byID))
	for _, t := range r.byID {
		result = append(result, t)
	}
	return result
}

// Count returns the number of registered tokens.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}
