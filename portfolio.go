package foliotrack

import (
	"context"
	"fmt"
	"log"
	"slices"
	"strings"
	"sync"
)

// Portfolio is the aggregate root: it exclusively owns its Ledger and its
// cash-inflow log, and is the only component that mutates them.
//
// All mutations run under an exclusive lock; reads take a shared lock and
// observe a consistent snapshot. Price lookups are issued outside the lock,
// and the fetched price is then used inside a short lock-held commit step
// that re-checks the operation's preconditions.
type Portfolio struct {
	mu      sync.RWMutex
	ledger  *Ledger
	inflows []CashInflow
	nextID  int64
	asOf    Date // when set, the portfolio operates as of this date
	now     func() Date
	source  PriceSource
}

// NewPortfolio creates an empty portfolio backed by the given price source.
func NewPortfolio(source PriceSource) *Portfolio {
	return &Portfolio{
		ledger: NewLedger(),
		now:    Today,
		source: source,
	}
}

// SetAsOf puts the portfolio in simulation mode: all price lookups and "now"
// resolve to the given date instead of wall-clock time. The zero Date
// returns to real time.
func (p *Portfolio) SetAsOf(on Date) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.asOf = on
}

// SetClock replaces the time source used when no simulation date is set.
func (p *Portfolio) SetClock(now func() Date) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.now = now
}

// AsOf returns the simulation date, or the zero Date in real-time mode.
func (p *Portfolio) AsOf() Date {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.asOf
}

// EffectiveDate returns the date "now" resolves to: the simulation date when
// set, the clock's current date otherwise.
func (p *Portfolio) EffectiveDate() Date {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.effectiveDate()
}

func (p *Portfolio) effectiveDate() Date {
	if !p.asOf.IsZero() {
		return p.asOf
	}
	return p.now()
}

func normalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// AddCash adds (or, with a negative amount, removes) cash. The cash balance
// must remain strictly positive after the operation. When external is true
// and the amount positive, the movement is also recorded as an external cash
// inflow; trade-driven cash movements always pass external=false.
func (p *Portfolio) AddCash(amount Money, external bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.addCash(amount, external, p.effectiveDate())
}

// addCash appends a signed CASH entry priced at 1. Callers hold the write lock.
func (p *Portfolio) addCash(amount Money, external bool, on Date) error {
	balance := p.ledger.CashBalance()
	if !balance.Add(amount).IsPositive() {
		return validationErrf("add-cash", "total cash balance must remain greater than zero (balance %s, amount %s)", balance, amount)
	}

	p.nextID++
	p.ledger.append(Transaction{
		ID:       p.nextID,
		Symbol:   CashSymbol,
		Quantity: amount.Quantity(),
		Price:    M(1),
		Date:     on,
	})
	if external && amount.IsPositive() {
		p.inflows = append(p.inflows, CashInflow{Amount: amount, Date: on})
	}
	return nil
}

// Buy purchases quantity units of symbol at the price the source reports for
// the effective date. It fails without any ledger change when the quantity
// is not positive, the price is unavailable, or the cost exceeds the cash
// balance.
func (p *Portfolio) Buy(ctx context.Context, symbol string, quantity Quantity) error {
	symbol = normalizeSymbol(symbol)
	if !quantity.IsPositive() {
		return validationErrf("buy", "quantity must be greater than zero, got %s", quantity)
	}

	on := p.EffectiveDate()
	// Fetch the price outside the lock: the source may block on network I/O.
	price, err := p.source.PriceAt(ctx, symbol, on)
	if err != nil {
		return fmt.Errorf("buy %s: %w", symbol, err)
	}
	if !price.IsPositive() {
		return fmt.Errorf("buy %s: %w", symbol, ErrPriceUnavailable)
	}
	cost := price.Mul(quantity)

	p.mu.Lock()
	defer p.mu.Unlock()

	if cost.GreaterThan(p.ledger.CashBalance()) {
		return validationErrf("buy", "not enough cash to buy %s of %s at %s", quantity, symbol, price)
	}
	if err := p.addCash(cost.Neg(), false, on); err != nil {
		return err
	}
	p.nextID++
	p.ledger.append(Transaction{
		ID:       p.nextID,
		Symbol:   symbol,
		Quantity: quantity,
		Price:    price,
		Date:     on,
	})
	return nil
}

// Sell disposes quantity units of symbol at the price the source reports for
// the effective date. The sale credits cash first, then consumes lots oldest
// first; the symbol entry is pruned when fully sold.
func (p *Portfolio) Sell(ctx context.Context, symbol string, quantity Quantity) error {
	symbol = normalizeSymbol(symbol)
	if err := p.checkSellable(symbol, quantity); err != nil {
		return err
	}

	on := p.EffectiveDate()
	price, err := p.source.PriceAt(ctx, symbol, on)
	if err != nil {
		return fmt.Errorf("sell %s: %w", symbol, err)
	}
	if !price.IsPositive() {
		return fmt.Errorf("sell %s: %w", symbol, ErrPriceUnavailable)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	// Re-check under the lock: holdings may have changed while fetching.
	if held := p.ledger.Held(symbol); quantity.GreaterThan(held) {
		return validationErrf("sell", "invalid quantity %s for selling, %s of %s held", quantity, held, symbol)
	}
	if err := p.addCash(price.Mul(quantity), false, on); err != nil {
		return err
	}
	p.nextID++
	p.ledger.append(Transaction{
		ID:       p.nextID,
		Symbol:   symbol,
		Quantity: quantity.Neg(),
		Price:    price,
		Date:     on,
	})
	p.ledger.consume(symbol, quantity)
	return nil
}

// checkSellable rejects a sale early, before any price lookup.
func (p *Portfolio) checkSellable(symbol string, quantity Quantity) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	held := p.ledger.Held(symbol)
	if held.IsZero() {
		return validationErrf("sell", "%s is not in the portfolio", symbol)
	}
	if !quantity.IsPositive() || quantity.GreaterThan(held) {
		return validationErrf("sell", "invalid quantity %s for selling, %s of %s held", quantity, held, symbol)
	}
	return nil
}

// CashBalance returns the current cash balance.
func (p *Portfolio) CashBalance() Money {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.ledger.CashBalance()
}

// Held returns the total remaining quantity of a symbol.
func (p *Portfolio) Held(symbol string) Quantity {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.ledger.Held(normalizeSymbol(symbol))
}

// Holding describes one currently held asset.
type Holding struct {
	Symbol      string
	Quantity    Quantity
	AverageCost Money // quantity-weighted average purchase price of remaining lots
}

// Holdings returns the currently held assets, sorted by symbol.
func (p *Portfolio) Holdings() []Holding {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var holdings []Holding
	for _, symbol := range p.ledger.Symbols() {
		holdings = append(holdings, Holding{
			Symbol:      symbol,
			Quantity:    p.ledger.Held(symbol),
			AverageCost: p.ledger.AverageCost(symbol),
		})
	}
	return holdings
}

// Lots returns the remaining lots of a symbol, oldest first.
func (p *Portfolio) Lots(symbol string) []Transaction {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.ledger.Lots(normalizeSymbol(symbol))
}

// History returns the full transaction history in ascending-ID order.
func (p *Portfolio) History() []Transaction {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.ledger.Transactions()
}

// Inflows returns the chronological log of external cash inflows.
func (p *Portfolio) Inflows() []CashInflow {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Clone(p.inflows)
}

// Value returns the total portfolio value at the effective date.
func (p *Portfolio) Value(ctx context.Context) Money {
	return p.ValueOn(ctx, p.EffectiveDate())
}

// ValueOn returns cash plus the market value of every held asset at the given
// date. Assets whose price is unavailable contribute zero.
func (p *Portfolio) ValueOn(ctx context.Context, on Date) Money {
	p.mu.RLock()
	total := p.ledger.CashBalance()
	type position struct {
		symbol   string
		quantity Quantity
	}
	var positions []position
	for _, symbol := range p.ledger.Symbols() {
		positions = append(positions, position{symbol, p.ledger.Held(symbol)})
	}
	p.mu.RUnlock()

	for _, pos := range positions {
		price, err := p.source.PriceAt(ctx, pos.symbol, on)
		if err != nil {
			log.Printf("no price for %s on %s: %v", pos.symbol, on, err)
			continue
		}
		total = total.Add(price.Mul(pos.quantity))
	}
	return total.Round()
}

// MarketValue returns the total value of the held assets, excluding cash.
func (p *Portfolio) MarketValue(ctx context.Context) Money {
	return p.Value(ctx).Sub(p.CashBalance()).Round()
}
