package foliotrack

import (
	"context"
	"fmt"
	"log"
)

// Point is one entry of a valuation series.
type Point struct {
	Date  Date
	Value Money
}

// ValueSeries reconstructs the total portfolio value for every calendar day
// in [from, to].
//
// For every non-cash symbol ever traded it fetches the daily close series
// over the range, then forward-fills gaps from the prior known price; a day
// before any known price yields a zero contribution for that symbol. The
// day-d value is the sum of all journal entries dated on or before d: cash
// quantities, plus each symbol's signed quantity times its forward-filled
// price. The series therefore never reflects future transactions, and
// since-sold assets keep their contributions on days before the sale.
func (p *Portfolio) ValueSeries(ctx context.Context, from, to Date) ([]Point, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("invalid range: %s is after %s", from, to)
	}

	// Snapshot the history under the read lock; prices are fetched outside it.
	p.mu.RLock()
	journal := p.ledger.Transactions()
	symbols := p.ledger.EverTraded()
	p.mu.RUnlock()

	prices := p.fetchSeries(ctx, symbols, from, to)
	return series(journal, symbols, prices, from, to), nil
}

// ProfitSeries is ValueSeries minus, for each day, the cumulative external
// cash inflows dated on or before it. It isolates trading and market profit
// from the money the user deposited.
func (p *Portfolio) ProfitSeries(ctx context.Context, from, to Date) ([]Point, error) {
	points, err := p.ValueSeries(ctx, from, to)
	if err != nil {
		return nil, err
	}

	p.mu.RLock()
	inflows := append([]CashInflow(nil), p.inflows...)
	p.mu.RUnlock()

	for i, pt := range points {
		var funded Money
		for _, in := range inflows {
			if !in.Date.After(pt.Date) {
				funded = funded.Add(in.Amount)
			}
		}
		points[i].Value = pt.Value.Sub(funded).Round()
	}
	return points, nil
}

// fetchSeries collects the price history of each symbol over the range.
// A failing lookup is logged and yields an empty history: the symbol then
// contributes zero, it never aborts the valuation.
func (p *Portfolio) fetchSeries(ctx context.Context, symbols []string, from, to Date) map[string]*PriceHistory {
	prices := make(map[string]*PriceHistory, len(symbols))
	for _, symbol := range symbols {
		h, err := p.source.PriceSeries(ctx, symbol, from, to)
		if err != nil {
			log.Printf("no price series for %s in [%s, %s]: %v", symbol, from, to, err)
			h = &PriceHistory{}
		}
		prices[symbol] = h
	}
	return prices
}

// series computes the day-by-day totals from a journal snapshot and the
// fetched price histories, through the ledger's dated accessors.
func series(journal []Transaction, symbols []string, prices map[string]*PriceHistory, from, to Date) []Point {
	ledger := &Ledger{journal: journal}

	var points []Point
	for on := from; !on.After(to); on = on.Add(1) {
		total := ledger.CashBalanceOn(on)
		for _, symbol := range symbols {
			quantity := ledger.QuantityOn(symbol, on)
			if quantity.IsZero() {
				continue
			}
			price, ok := prices[symbol].AsOf(on)
			if !ok {
				continue // no observation on or before this day
			}
			total = total.Add(price.Mul(quantity))
		}
		points = append(points, Point{Date: on, Value: total.Round()})
	}
	return points
}
