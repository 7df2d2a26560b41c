// Package ledger holds the types shared by the currency model, the bank and
// the transports.
package ledger

// Code a currency code, e.g. "ITC" or "USD"
type Code string

// Amount a monetary amount. Balances are always expressed in ITC.
type Amount float64

// Ratio the value of one unit of a currency, in ITC
type Ratio float64

// Exchanged the result of a conversion between two currencies
type Exchanged struct {
	// Rate effective rate applied, from.ratio / to.ratio
	Rate   Ratio
	Amount Amount
}
