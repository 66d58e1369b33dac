package foliotrack

import "github.com/shopspring/decimal"

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// CashSymbol is the reserved ledger symbol under which all cash movements are
// recorded, priced at 1.
const CashSymbol = "CASH"

// TxType classifies a transaction, inferred from its symbol and quantity sign.
type TxType string

const (
	TxCash TxType = "Cash"
	TxBuy  TxType = "Buy"
	TxSell TxType = "Sell"
)

// Transaction is a single ledger entry: a quantity of a symbol acquired (or,
// with a negative quantity, disposed) at a price on a date. IDs are unique
// and assigned monotonically by the owning Portfolio.
//
// A transaction is immutable once appended to the journal. The only mutation
// allowed anywhere is the in-place quantity reduction of a live lot during
// sell consumption.
type Transaction struct {
	ID       int64    `json:"id"`
	Symbol   string   `json:"symbol"`
	Quantity Quantity `json:"quantity"`
	Price    Money    `json:"price"`
	Date     Date     `json:"date"`
}

// Type infers the nature of the transaction: Cash for entries under
// CashSymbol, otherwise Buy or Sell by quantity sign.
func (t Transaction) Type() TxType {
	if t.Symbol == CashSymbol {
		return TxCash
	}
	if t.Quantity.IsNegative() {
		return TxSell
	}
	return TxBuy
}

// Cost returns quantity × price.
func (t Transaction) Cost() Money { return t.Price.Mul(t.Quantity) }

// CashInflow records an externally sourced cash addition. Cash generated by
// sells or spent on buys is never recorded here; the log exists solely to
// separate profit from external funding in valuation.
type CashInflow struct {
	Amount Money `json:"amount"`
	Date   Date  `json:"date"`
}
