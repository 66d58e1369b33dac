package foliotrack

import (
	"context"
	"iter"
	"slices"
)

// PriceSource is the external collaborator that provides closing prices.
// Implementations may incur network latency and are allowed to fail; the
// engine never calls a PriceSource while holding the portfolio lock.
type PriceSource interface {
	// PriceAt returns the closing price of symbol on a date or, if that day
	// has no close, the most recent close within the preceding 14 calendar
	// days. When nothing is found it returns an error wrapping
	// ErrPriceUnavailable.
	PriceAt(ctx context.Context, symbol string, on Date) (Money, error)

	// PriceSeries returns the daily closes of symbol in [from, to]. The
	// series may have gaps (non-trading days); forward-filling them is the
	// caller's job.
	PriceSeries(ctx context.Context, symbol string, from, to Date) (*PriceHistory, error)
}

// PriceHistory stores a chronological series of prices, each associated with
// a specific date. Dates are unique and the series is always sorted.
type PriceHistory struct {
	days   []Date
	prices []Money
}

// Len returns the number of observations in the history.
func (h *PriceHistory) Len() int { return len(h.days) }

// Append adds an observation to the history. An existing value at that date
// is overwritten.
func (h *PriceHistory) Append(on Date, price Money) *PriceHistory {
	i, found := slices.BinarySearchFunc(h.days, on, Date.Compare)
	if found {
		h.prices[i] = price
		return h
	}
	h.days = slices.Insert(h.days, i, on)
	h.prices = slices.Insert(h.prices, i, price)
	return h
}

// Get returns the price observed exactly at day.
func (h *PriceHistory) Get(day Date) (Money, bool) {
	i, found := slices.BinarySearchFunc(h.days, day, Date.Compare)
	if !found {
		return Money{}, false
	}
	return h.prices[i], true
}

// AsOf returns the price on a given day, or the most recent observation
// before it: the forward-fill lookup. It reports false when the day precedes
// every observation.
func (h *PriceHistory) AsOf(day Date) (Money, bool) {
	i, found := slices.BinarySearchFunc(h.days, day, Date.Compare)
	if found {
		return h.prices[i], true
	}
	// `i` is the insertion index; the last observation before day is at i-1.
	if i == 0 {
		return Money{}, false
	}
	return h.prices[i-1], true
}

// Values returns an iterator over all date/price pairs in chronological order.
func (h *PriceHistory) Values() iter.Seq2[Date, Money] {
	return func(yield func(Date, Money) bool) {
		for i, on := range h.days {
			if !yield(on, h.prices[i]) {
				return
			}
		}
	}
}
