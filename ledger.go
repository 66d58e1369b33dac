package foliotrack

import (
	"maps"
	"slices"
)

// Ledger is the append-only store of transactions.
//
// It keeps two views of the same history:
//
//   - the journal: every transaction ever committed, in ascending-ID order.
//     Sells appear as negative-quantity entries and cash movements as signed
//     entries under CashSymbol. Valuation and the history API read from it,
//     so since-sold assets keep their past contributions.
//   - the live lots: for each non-cash symbol, the ordered list of remaining
//     lots, consumed oldest-first on sale and pruned when empty.
//
// Only the owning Portfolio mutates a Ledger.
type Ledger struct {
	journal []Transaction
	lots    map[string][]Transaction
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		journal: make([]Transaction, 0),
		lots:    make(map[string][]Transaction),
	}
}

// append records a transaction in the journal, and as a live lot when it
// acquires a non-cash asset. The caller guarantees ascending IDs.
func (l *Ledger) append(tx Transaction) {
	l.journal = append(l.journal, tx)
	if tx.Symbol != CashSymbol && tx.Quantity.IsPositive() {
		l.lots[tx.Symbol] = append(l.lots[tx.Symbol], tx)
	}
}

// consume reduces the live lots of symbol by quantityToSell using FIFO:
// lots are taken in ascending transaction-ID order, fully removed when
// exhausted, and the final larger lot is decremented in place. The symbol
// entry is pruned entirely when no lot remains. The caller guarantees that
// enough quantity is held.
func (l *Ledger) consume(symbol string, quantityToSell Quantity) {
	var remaining []Transaction

	for _, currentLot := range l.lots[symbol] {
		if quantityToSell.IsZero() {
			remaining = append(remaining, currentLot)
			continue
		}
		if currentLot.Quantity.GreaterThan(quantityToSell) {
			// Partial sale from this lot.
			currentLot.Quantity = currentLot.Quantity.Sub(quantityToSell)
			remaining = append(remaining, currentLot)
			quantityToSell = Q(0)
		} else {
			// Full sale of this lot.
			quantityToSell = quantityToSell.Sub(currentLot.Quantity)
		}
	}

	if len(remaining) == 0 {
		delete(l.lots, symbol)
		return
	}
	l.lots[symbol] = remaining
}

// Transactions returns a copy of the journal in ascending-ID order.
func (l *Ledger) Transactions() []Transaction {
	return slices.Clone(l.journal)
}

// Lots returns a copy of the remaining lots of a symbol, oldest first.
func (l *Ledger) Lots(symbol string) []Transaction {
	return slices.Clone(l.lots[symbol])
}

// Symbols returns the sorted list of non-cash symbols currently held.
func (l *Ledger) Symbols() []string {
	symbols := slices.Collect(maps.Keys(l.lots))
	slices.Sort(symbols)
	return symbols
}

// EverTraded returns the sorted list of non-cash symbols that appear anywhere
// in the journal, including symbols since sold out.
func (l *Ledger) EverTraded() []string {
	visited := make(map[string]struct{})
	for _, tx := range l.journal {
		if tx.Symbol != CashSymbol {
			visited[tx.Symbol] = struct{}{}
		}
	}
	symbols := slices.Collect(maps.Keys(visited))
	slices.Sort(symbols)
	return symbols
}

// Held returns the total remaining quantity of a symbol.
func (l *Ledger) Held(symbol string) Quantity {
	var total Quantity
	for _, lot := range l.lots[symbol] {
		total = total.Add(lot.Quantity)
	}
	return total
}

// QuantityOn computes the signed quantity of symbol held on a given date by
// summing all journal entries dated on or before it. A sale or purchase only
// affects the result from its date forward.
func (l *Ledger) QuantityOn(symbol string, on Date) Quantity {
	var total Quantity
	for _, tx := range l.journal {
		if tx.Symbol == symbol && !tx.Date.After(on) {
			total = total.Add(tx.Quantity)
		}
	}
	return total
}

// CashBalance returns the current cash balance: the sum of all CASH entry
// quantities (each priced at 1).
func (l *Ledger) CashBalance() Money {
	var total Quantity
	for _, tx := range l.journal {
		if tx.Symbol == CashSymbol {
			total = total.Add(tx.Quantity)
		}
	}
	return Money{value: total.value}
}

// CashBalanceOn returns the cash balance on a given date.
func (l *Ledger) CashBalanceOn(on Date) Money {
	return Money{value: l.QuantityOn(CashSymbol, on).value}
}

// AverageCost returns the quantity-weighted average purchase price of the
// remaining lots of a symbol, or zero when the symbol is not held.
func (l *Ledger) AverageCost(symbol string) Money {
	var cost Money
	var quantity Quantity
	for _, lot := range l.lots[symbol] {
		cost = cost.Add(lot.Cost())
		quantity = quantity.Add(lot.Quantity)
	}
	if quantity.IsZero() {
		return Money{}
	}
	return cost.Div(quantity)
}
