// Package currency models monetary units with a fixed ratio to the canonical
// unit (ITC) and converts amounts between them.
package currency

import (
	"errors"
	"fmt"
	"github.com/shopspring/decimal"
	"go-itc-ledger"
	"math"
	"strconv"
)

var (
	// ErrInvalidCode a currency was defined without a code
	ErrInvalidCode = errors.New("currency code is required")

	// ErrInvalidRatio a currency was defined with a ratio that is not a positive finite number
	ErrInvalidRatio = errors.New("currency ratio must be positive and finite")
)

// Currency an immutable currency definition: a code, a display symbol and the
// value of one unit in ITC. The zero value behaves as ITC.
type Currency struct {
	code   ledger.Code
	symbol string
	ratio  ledger.Ratio
}

// ITC the canonical unit. Every balance is stored in ITC.
var ITC = MustNew("ITC", "ITC::", 1.0)

// New constructs a valid Currency
func New(code ledger.Code, symbol string, ratio ledger.Ratio) (Currency, error) {
	if code == "" {
		return Currency{}, ErrInvalidCode
	}
	r := float64(ratio)
	if math.IsNaN(r) || math.IsInf(r, 0) || r <= 0 {
		return Currency{}, fmt.Errorf("currency [%v] ratio %v: %w", code, r, ErrInvalidRatio)
	}
	return Currency{code: code, symbol: symbol, ratio: ratio}, nil
}

// MustNew is New for package-level definitions. A bad ratio is a programming
// error, so it panics.
func MustNew(code ledger.Code, symbol string, ratio ledger.Ratio) Currency {
	c, err := New(code, symbol, ratio)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Currency) Code() ledger.Code {
	return c.orCanonical().code
}

func (c Currency) Symbol() string {
	return c.orCanonical().symbol
}

func (c Currency) Ratio() ledger.Ratio {
	return c.orCanonical().ratio
}

// IsZero reports whether c is the zero value rather than a constructed currency
func (c Currency) IsZero() bool {
	return c.ratio == 0
}

// Of returns amount denominated in c
func (c Currency) Of(amount ledger.Amount) Money {
	return Money{amount: amount, currency: c.orCanonical()}
}

// From converts m into c
func (c Currency) From(m Money) Money {
	return m.ConvertTo(c)
}

// FromCanonical converts an ITC amount into c
func (c Currency) FromCanonical(amount ledger.Amount) Money {
	return ITC.Of(amount).ConvertTo(c)
}

func (c Currency) String() string {
	return string(c.Code())
}

func (c Currency) orCanonical() Currency {
	if c.IsZero() {
		return ITC
	}
	return c
}

// Money an amount tagged with the currency it is denominated in.
// The zero value is ITC 0.
type Money struct {
	amount   ledger.Amount
	currency Currency
}

func (m Money) Amount() ledger.Amount {
	return m.amount
}

func (m Money) Currency() Currency {
	return m.currency.orCanonical()
}

func (m Money) Symbol() string {
	return m.Currency().Symbol()
}

func (m Money) Ratio() ledger.Ratio {
	return m.Currency().Ratio()
}

// ConvertTo returns m expressed in target: amount * (m.ratio / target.ratio).
// No rounding is applied beyond float64 arithmetic.
func (m Money) ConvertTo(target Currency) Money {
	target = target.orCanonical()
	converted := float64(m.amount) * (float64(m.Ratio()) / float64(target.ratio))
	return target.Of(ledger.Amount(converted))
}

// ToCanonical returns m expressed in ITC
func (m Money) ToCanonical() Money {
	return m.ConvertTo(ITC)
}

// String renders the symbol followed by the amount, e.g. "$50" or "ITC::0.65"
func (m Money) String() string {
	return m.Symbol() + formatAmount(m.amount)
}

func formatAmount(amount ledger.Amount) string {
	f := float64(amount)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return decimal.NewFromFloat(f).String()
}
