package foliotrack

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// displayCurrency is the single currency the portfolio is denominated in.
// Multi-currency accounting is out of scope; the currency only drives
// formatting and the display precision used for rounding reported values.
var displayCurrency = money.USD

// SetDisplayCurrency changes the currency used to format monetary values.
// Unknown codes are ignored.
func SetDisplayCurrency(code string) {
	if c := money.GetCurrency(code); c != nil {
		displayCurrency = c.Code
	}
}

// Money represents a monetary value in the portfolio currency.
type Money struct {
	value decimal.Decimal
}

// M builds a Money from any supported numeric type.
func M[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) Money {
	return Money{value: newDecimal(value)}
}

// currency returns the full display currency definition, never nil.
func (m Money) currency() *money.Currency {
	return money.New(0, displayCurrency).Currency()
}

// String returns the money formatted in the display currency (e.g. "$1,234.50").
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}

func (m Money) Equal(n Money) bool              { return m.value.Equal(n.value) }
func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) IsPositive() bool                { return m.value.IsPositive() }
func (m Money) IsNegative() bool                { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool           { return m.value.LessThan(n.value) }
func (m Money) LessThanOrEqual(n Money) bool    { return m.value.LessThanOrEqual(n.value) }
func (m Money) GreaterThan(n Money) bool        { return m.value.GreaterThan(n.value) }
func (m Money) GreaterThanOrEqual(n Money) bool { return m.value.GreaterThanOrEqual(n.value) }
func (m Money) Neg() Money                      { return Money{value: m.value.Neg()} }
func (m Money) Add(n Money) Money               { return Money{value: m.value.Add(n.value)} }
func (m Money) Sub(n Money) Money               { return Money{value: m.value.Sub(n.value)} }
func (m Money) Mul(q Quantity) Money            { return Money{value: m.value.Mul(q.value)} }
func (m Money) Div(q Quantity) Money            { return Money{value: m.value.Div(q.value)} }

// Round returns the value rounded to the display precision of the currency.
func (m Money) Round() Money {
	return Money{value: m.value.Round(int32(m.currency().Fraction))}
}

// Quantity converts the monetary amount into a Quantity, used to store cash
// movements as signed ledger quantities priced at 1.
func (m Money) Quantity() Quantity { return Quantity{value: m.value} }

// Amount returns the underlying decimal value.
func (m Money) Amount() decimal.Decimal { return m.value }

// InexactFloat64 returns the nearest float64, for display only.
func (m Money) InexactFloat64() float64 { return m.value.InexactFloat64() }

// MarshalJSON implements the json.Marshaler interface for Money.
// Values are persisted as bare JSON numbers.
func (m Money) MarshalJSON() ([]byte, error) {
	return m.value.MarshalJSON()
}

func (m *Money) UnmarshalJSON(decimalBytes []byte) error {
	return m.value.UnmarshalJSON(decimalBytes)
}
