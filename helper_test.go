package foliotrack

import (
	"context"
	"fmt"
)

// fakeSource is an in-memory PriceSource seeded per symbol, so tests never
// touch the network.
type fakeSource struct {
	histories map[string]*PriceHistory
}

func newFakeSource() *fakeSource {
	return &fakeSource{histories: make(map[string]*PriceHistory)}
}

// set records a close for symbol on a date.
func (s *fakeSource) set(symbol string, on Date, price float64) *fakeSource {
	h, ok := s.histories[symbol]
	if !ok {
		h = &PriceHistory{}
		s.histories[symbol] = h
	}
	h.Append(on, M(price))
	return s
}

func (s *fakeSource) PriceAt(_ context.Context, symbol string, on Date) (Money, error) {
	h, ok := s.histories[symbol]
	if !ok {
		return Money{}, fmt.Errorf("%s: %w", symbol, ErrPriceUnavailable)
	}
	price, ok := h.AsOf(on)
	if !ok {
		return Money{}, fmt.Errorf("%s on %s: %w", symbol, on, ErrPriceUnavailable)
	}
	return price, nil
}

func (s *fakeSource) PriceSeries(_ context.Context, symbol string, from, to Date) (*PriceHistory, error) {
	h, ok := s.histories[symbol]
	if !ok {
		return nil, fmt.Errorf("%s: %w", symbol, ErrPriceUnavailable)
	}
	out := &PriceHistory{}
	for on, price := range h.Values() {
		if !on.Before(from) && !on.After(to) {
			out.Append(on, price)
		}
	}
	return out, nil
}

var _ PriceSource = (*fakeSource)(nil)

// newTestPortfolio builds a portfolio with a pinned clock, so the effective
// date is deterministic.
func newTestPortfolio(s *fakeSource, on Date) *Portfolio {
	p := NewPortfolio(s)
	p.SetClock(func() Date { return on })
	return p
}
