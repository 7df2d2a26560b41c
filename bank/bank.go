// Package bank is the ledger: PIN-protected accounts holding ITC balances, with
// deposit, withdrawal and transfer. Amounts may be given in any currency and
// are converted to ITC before they touch a balance.
package bank

import (
	"go-itc-ledger"
	"go-itc-ledger/currency"
	"math"
	"slices"
	"sync"
)

// Service the operations of the ledger
type Service interface {
	AddAccount(name string, initial currency.Money, pin string) error
	RemoveAccount(name, pin string) (currency.Money, error)
	GetAccount(name, pin string) (Account, error)
	Deposit(name string, amount currency.Money) error
	Withdraw(name string, amount currency.Money, pin string) (currency.Money, error)
	Transfer(from, to string, amount currency.Money, pin string) error
}

// Bank owns every account. Each operation runs under one lock and either
// fully applies or leaves the ledger untouched.
type Bank struct {
	// accounts in insertion order
	accounts []*account

	// index maps an account name to its entry in accounts
	index map[string]*account

	// lock synchronizes access to accounts and index
	lock sync.RWMutex
}

var _ Service = (*Bank)(nil)

// NewBank returns an empty Bank
func NewBank() *Bank {
	return &Bank{
		index: map[string]*account{},
	}
}

// AddAccount opens an account holding initial, converted to ITC
func (b *Bank) AddAccount(name string, initial currency.Money, pin string) error {
	b.lock.Lock()
	defer b.lock.Unlock()

	if _, ok := b.index[name]; ok {
		return &Error{Op: "add_account", Name: name, Err: ErrDuplicateName}
	}
	balance, err := canonical(initial)
	if err != nil {
		return &Error{Op: "add_account", Name: name, Err: err}
	}

	a := &account{name: name, balance: balance, pin: pin}
	b.accounts = append(b.accounts, a)
	b.index[name] = a
	return nil
}

// RemoveAccount closes an account and returns its final balance in ITC
func (b *Bank) RemoveAccount(name, pin string) (currency.Money, error) {
	b.lock.Lock()
	defer b.lock.Unlock()

	a, err := b.authorize("remove_account", name, pin)
	if err != nil {
		return currency.Money{}, err
	}

	for i, acc := range b.accounts {
		if acc == a {
			b.accounts = slices.Delete(b.accounts, i, i+1)
			break
		}
	}
	delete(b.index, name)
	return currency.ITC.Of(a.balance), nil
}

// GetAccount returns a snapshot of an account
func (b *Bank) GetAccount(name, pin string) (Account, error) {
	b.lock.RLock()
	defer b.lock.RUnlock()

	a, err := b.authorize("get_account", name, pin)
	if err != nil {
		return Account{}, err
	}
	return a.view(), nil
}

// Deposit credits amount to an account. Anyone knowing the name may deposit.
func (b *Bank) Deposit(name string, amount currency.Money) error {
	b.lock.Lock()
	defer b.lock.Unlock()

	a, ok := b.index[name]
	if !ok {
		return &Error{Op: "deposit", Name: name, Err: ErrAccountNotFound}
	}
	credit, err := canonical(amount)
	if err != nil {
		return &Error{Op: "deposit", Name: name, Err: err}
	}
	a.balance += credit
	return nil
}

// Withdraw debits amount from an account and returns the ITC amount withdrawn.
// Checks run in order: existence, pin, solvency.
func (b *Bank) Withdraw(name string, amount currency.Money, pin string) (currency.Money, error) {
	b.lock.Lock()
	defer b.lock.Unlock()

	a, err := b.authorize("withdraw", name, pin)
	if err != nil {
		return currency.Money{}, err
	}
	debit, err := canonical(amount)
	if err != nil {
		return currency.Money{}, &Error{Op: "withdraw", Name: name, Err: err}
	}
	if a.balance < debit {
		return currency.Money{}, &Error{Op: "withdraw", Name: name, Err: ErrInsufficientFunds}
	}
	a.balance -= debit
	return currency.ITC.Of(debit), nil
}

// Transfer moves amount from one account to another. The pin of the source
// account authorizes it; the destination needs none. Checks run in order:
// source existence, pin, amount, solvency, destination existence, and nothing is
// debited unless all pass.
func (b *Bank) Transfer(from, to string, amount currency.Money, pin string) error {
	b.lock.Lock()
	defer b.lock.Unlock()

	src, ok := b.index[from]
	if !ok {
		return &Error{Op: "transfer", Name: from, Role: RoleSource, Err: ErrAccountNotFound}
	}
	if src.pin != pin {
		return &Error{Op: "transfer", Name: from, Role: RoleSource, Err: ErrWrongPin}
	}
	value, err := canonical(amount)
	if err != nil {
		return &Error{Op: "transfer", Name: from, Err: err}
	}
	if src.balance < value {
		return &Error{Op: "transfer", Name: from, Role: RoleSource, Err: ErrInsufficientFunds}
	}
	dst, ok := b.index[to]
	if !ok {
		return &Error{Op: "transfer", Name: to, Role: RoleDestination, Err: ErrAccountNotFound}
	}
	if src == dst {
		return nil
	}

	src.balance -= value
	dst.balance += value
	return nil
}

// Len returns the number of accounts
func (b *Bank) Len() int {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return len(b.accounts)
}

// Names returns account names in the order the accounts were added
func (b *Bank) Names() []string {
	b.lock.RLock()
	defer b.lock.RUnlock()
	out := make([]string, len(b.accounts))
	for i, a := range b.accounts {
		out[i] = a.name
	}
	return out
}

// authorize looks up name and checks pin. Must be called with lock held.
func (b *Bank) authorize(op, name, pin string) (*account, error) {
	a, ok := b.index[name]
	if !ok {
		return nil, &Error{Op: op, Name: name, Err: ErrAccountNotFound}
	}
	if a.pin != pin {
		return nil, &Error{Op: op, Name: name, Err: ErrWrongPin}
	}
	return a, nil
}

// canonical converts m to ITC, rejecting amounts that would break solvency
func canonical(m currency.Money) (ledger.Amount, error) {
	v := m.ToCanonical().Amount()
	f := float64(v)
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0, ErrInvalidAmount
	}
	return v, nil
}
