package foliotrack

import (
	"context"
	"log"
)

// Active is the reporting view of one currently held asset, with its market
// price and its price change over the trailing month and year.
type Active struct {
	Symbol      string
	Quantity    Quantity
	AverageCost Money
	Price       Money   // close at the effective date (zero when unavailable)
	Value       Money   // Quantity × Price
	MonthChange float64 // percent change of the price over the last 30 days
	YearChange  float64 // percent change of the price over the last 365 days
}

// Actives reports every currently held asset at the effective date. Price
// lookups that fail leave the corresponding figures at zero; they never
// abort the report.
func (p *Portfolio) Actives(ctx context.Context) []Active {
	on := p.EffectiveDate()

	var actives []Active
	for _, h := range p.Holdings() {
		a := Active{
			Symbol:      h.Symbol,
			Quantity:    h.Quantity,
			AverageCost: h.AverageCost.Round(),
		}

		price, err := p.source.PriceAt(ctx, h.Symbol, on)
		if err != nil {
			log.Printf("no price for %s on %s: %v", h.Symbol, on, err)
			actives = append(actives, a)
			continue
		}
		a.Price = price.Round()
		a.Value = price.Mul(h.Quantity).Round()
		a.MonthChange = p.priceChange(ctx, h.Symbol, price, on.Add(-30))
		a.YearChange = p.priceChange(ctx, h.Symbol, price, on.Add(-365))
		actives = append(actives, a)
	}
	return actives
}

// priceChange returns the percent change from the close at a past date to the
// current price, or 0 when the past close is unavailable.
func (p *Portfolio) priceChange(ctx context.Context, symbol string, current Money, past Date) float64 {
	old, err := p.source.PriceAt(ctx, symbol, past)
	if err != nil || !old.IsPositive() {
		return 0
	}
	return current.Sub(old).Div(old.Quantity()).InexactFloat64() * 100
}
