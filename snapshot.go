package foliotrack

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// snapshotFile is the persisted form of a portfolio: the full ledger, the
// simulation date and the external cash-inflow log. nextTransactionId is not
// stored, it is re-derived on load from the journal.
//
// Pointer fields distinguish an absent field from an empty one: absence of
// an expected field is a load failure.
type snapshotFile struct {
	Ledger      *ledgerSnapshot `json:"ledger"`
	AsOfDate    *Date           `json:"asOfDate,omitempty"`
	CashInflows *[]CashInflow   `json:"cashInflows"`
}

type ledgerSnapshot struct {
	Journal *[]Transaction            `json:"journal"`
	Lots    *map[string][]Transaction `json:"lots"`
}

// Encode writes the portfolio snapshot as a single JSON object.
func (p *Portfolio) Encode(w io.Writer) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	snap := snapshotFile{
		Ledger: &ledgerSnapshot{
			Journal: &p.ledger.journal,
			Lots:    &p.ledger.lots,
		},
		CashInflows: &p.inflows,
	}
	if !p.asOf.IsZero() {
		asOf := p.asOf
		snap.AsOfDate = &asOf
	}
	if p.inflows == nil {
		snap.CashInflows = &[]CashInflow{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("could not encode snapshot: %w", err)
	}
	return nil
}

// decodeSnapshot parses and validates a snapshot, returning the rebuilt
// state without touching any portfolio.
func decodeSnapshot(r io.Reader) (ledger *Ledger, inflows []CashInflow, asOf Date, nextID int64, err error) {
	var snap snapshotFile
	dec := json.NewDecoder(r)
	if err := dec.Decode(&snap); err != nil {
		return nil, nil, Date{}, 0, fmt.Errorf("could not decode snapshot: %w", err)
	}

	switch {
	case snap.Ledger == nil:
		return nil, nil, Date{}, 0, fmt.Errorf("invalid snapshot: missing %q", "ledger")
	case snap.Ledger.Journal == nil:
		return nil, nil, Date{}, 0, fmt.Errorf("invalid snapshot: missing %q", "ledger.journal")
	case snap.Ledger.Lots == nil:
		return nil, nil, Date{}, 0, fmt.Errorf("invalid snapshot: missing %q", "ledger.lots")
	case snap.CashInflows == nil:
		return nil, nil, Date{}, 0, fmt.Errorf("invalid snapshot: missing %q", "cashInflows")
	}

	ledger = NewLedger()
	ledger.journal = *snap.Ledger.Journal
	for symbol, lots := range *snap.Ledger.Lots {
		if len(lots) == 0 {
			return nil, nil, Date{}, 0, fmt.Errorf("invalid snapshot: empty lot list for %q", symbol)
		}
		for _, lot := range lots {
			if !lot.Quantity.IsPositive() {
				return nil, nil, Date{}, 0, fmt.Errorf("invalid snapshot: non-positive lot %d of %q", lot.ID, symbol)
			}
		}
		ledger.lots[symbol] = lots
	}

	for _, tx := range ledger.journal {
		if tx.ID > nextID {
			nextID = tx.ID
		}
	}

	if snap.AsOfDate != nil {
		asOf = *snap.AsOfDate
	}
	return ledger, *snap.CashInflows, asOf, nextID, nil
}

// Save persists the portfolio snapshot to a file. The snapshot is written to
// a temporary file first and atomically renamed into place, so a failing
// save never partially overwrites the previous snapshot.
func (p *Portfolio) Save(path string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".snapshot-*")
	if err != nil {
		return fmt.Errorf("could not create temporary snapshot in %q: %w", dir, err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if err := p.Encode(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("could not flush snapshot %q: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("could not close snapshot %q: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("could not replace snapshot %q: %w", path, err)
	}
	return nil
}

// Load replaces the in-memory portfolio wholesale with a persisted snapshot.
// On any failure the prior in-memory state is left untouched.
func (p *Portfolio) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("could not open snapshot %q: %w", path, err)
	}
	defer f.Close()

	ledger, inflows, asOf, nextID, err := decodeSnapshot(f)
	if err != nil {
		return fmt.Errorf("could not load snapshot %q: %w", path, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.ledger = ledger
	p.inflows = inflows
	p.asOf = asOf
	p.nextID = nextID
	return nil
}
