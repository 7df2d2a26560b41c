package bank

import (
	"fmt"
	"go-itc-ledger"
	"go-itc-ledger/currency"
)

// account the stored entity. Only Bank touches it, under Bank.lock.
type account struct {
	name    string
	balance ledger.Amount
	pin     string
}

func (a *account) view() Account {
	return Account{name: a.name, balance: a.balance}
}

// Account a read-only copy of an account taken at the time of the call
type Account struct {
	name    string
	balance ledger.Amount
}

func (a Account) Name() string {
	return a.name
}

// Balance the balance in ITC
func (a Account) Balance() currency.Money {
	return currency.ITC.Of(a.balance)
}

func (a Account) String() string {
	return fmt.Sprintf("%s: %v", a.name, a.Balance())
}
