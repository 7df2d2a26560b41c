package currency

import (
	"errors"
	"fmt"
	"go-itc-ledger"
	"sort"
	"sync"
)

var (
	// ErrUnknownCurrency no currency is registered under the requested code
	ErrUnknownCurrency = errors.New("unknown currency")

	// ErrDuplicateCode a currency is already registered under the code
	ErrDuplicateCode = errors.New("currency already registered")
)

// Source resolves currency codes to definitions.
// Implementations must be concurrency-safe.
type Source interface {
	Lookup(code ledger.Code) (Currency, error)
}

// Registry the set of currencies known to a process. It always contains ITC.
// Registry is concurrency safe.
type Registry struct {
	// currencies maps a currency code to its definition
	currencies map[ledger.Code]Currency

	// lock synchronizes access to currencies
	lock sync.RWMutex
}

// NewRegistry returns a Registry holding ITC and the given currencies
func NewRegistry(currencies ...Currency) (*Registry, error) {
	r := &Registry{
		currencies: map[ledger.Code]Currency{ITC.code: ITC},
	}
	for _, c := range currencies {
		if err := r.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds c. Definitions are fixed once registered.
func (r *Registry) Register(c Currency) error {
	if c.IsZero() {
		return ErrInvalidCode
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	if _, ok := r.currencies[c.code]; ok {
		return fmt.Errorf("register [%v]: %w", c.code, ErrDuplicateCode)
	}
	r.currencies[c.code] = c
	return nil
}

// Lookup returns the currency registered under code
func (r *Registry) Lookup(code ledger.Code) (Currency, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	c, ok := r.currencies[code]
	if !ok {
		return Currency{}, fmt.Errorf("lookup [%v]: %w", code, ErrUnknownCurrency)
	}
	return c, nil
}

// Money returns amount denominated in the currency registered under code
func (r *Registry) Money(amount ledger.Amount, code ledger.Code) (Money, error) {
	c, err := r.Lookup(code)
	if err != nil {
		return Money{}, err
	}
	return c.Of(amount), nil
}

// Currencies returns every registered currency ordered by code
func (r *Registry) Currencies() []Currency {
	r.lock.RLock()
	defer r.lock.RUnlock()
	out := make([]Currency, 0, len(r.currencies))
	for _, c := range r.currencies {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].code < out[j].code })
	return out
}
