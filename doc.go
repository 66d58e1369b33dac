// Package foliotrack tracks a single portfolio of cash and tradable assets
// as an append-only ledger of transactions, and computes point-in-time and
// historical valuations from that ledger combined with an external price
// source.
//
// The package is organized around three collaborating parts:
//
//   - Ledger: the append-only store of per-symbol transactions plus the
//     chronological log of external cash inflows.
//   - Portfolio: the aggregate root owning the ledger, the buy/sell/add-cash
//     state transitions, and the oldest-lot-first consumption on sale.
//   - the valuation methods (Value, ValueSeries, ProfitSeries): they
//     reconstruct portfolio value at any past date, forward-filling missing
//     price observations and attributing cash inflows separately from
//     trading activity.
//
// Prices come from a PriceSource, an external collaborator that may fail or
// return no data; failures never corrupt the ledger.
package foliotrack
