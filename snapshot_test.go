package foliotrack

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// sameTransactions compares transaction slices by value. JSON parsing
// normalizes the decimal exponent, so representation-level comparison would
// reject semantically equal quantities and prices.
func sameTransactions(a, b []Transaction) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID || a[i].Symbol != b[i].Symbol || a[i].Date != b[i].Date ||
			!a[i].Quantity.Equal(b[i].Quantity) || !a[i].Price.Equal(b[i].Price) {
			return false
		}
	}
	return true
}

func sameInflows(a, b []CashInflow) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Date != b[i].Date || !a[i].Amount.Equal(b[i].Amount) {
			return false
		}
	}
	return true
}

func TestSnapshot_RoundTrip(t *testing.T) {
	ctx := context.Background()
	jan10 := NewDate(2025, 1, 10)
	jan20 := NewDate(2025, 1, 20)
	source := newFakeSource().
		set("ABC", jan10, 50).
		set("ABC", jan20, 60)

	p := newTestPortfolio(source, jan10)
	if err := p.AddCash(M(1000), true); err != nil {
		t.Fatal(err)
	}
	if err := p.Buy(ctx, "ABC", Q(10)); err != nil {
		t.Fatal(err)
	}
	p.SetClock(func() Date { return jan20 })
	if err := p.Sell(ctx, "ABC", Q(4)); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "portfolio.json")
	if err := p.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded := newTestPortfolio(source, jan20)
	if err := loaded.Load(path); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !sameTransactions(loaded.History(), p.History()) {
		t.Errorf("journal mismatch after round trip:\ngot  %v\nwant %v", loaded.History(), p.History())
	}
	if !sameTransactions(loaded.Lots("ABC"), p.Lots("ABC")) {
		t.Errorf("lots mismatch after round trip:\ngot  %v\nwant %v", loaded.Lots("ABC"), p.Lots("ABC"))
	}
	if !sameInflows(loaded.Inflows(), p.Inflows()) {
		t.Errorf("inflows mismatch after round trip:\ngot  %v\nwant %v", loaded.Inflows(), p.Inflows())
	}
	if got := loaded.CashBalance(); !got.Equal(p.CashBalance()) {
		t.Errorf("cash after round trip = %s, want %s", got, p.CashBalance())
	}

	// IDs keep increasing from the persisted maximum.
	if err := loaded.AddCash(M(10), false); err != nil {
		t.Fatal(err)
	}
	history := loaded.History()
	last, prev := history[len(history)-1], history[len(history)-2]
	if last.ID != prev.ID+1 {
		t.Errorf("next ID after load = %d, want %d", last.ID, prev.ID+1)
	}
}

func TestSnapshot_PersistsAsOfDate(t *testing.T) {
	sim := NewDate(2024, 6, 3)
	p := NewPortfolio(newFakeSource())
	p.SetAsOf(sim)
	if err := p.AddCash(M(100), true); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "portfolio.json")
	if err := p.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded := NewPortfolio(newFakeSource())
	if err := loaded.Load(path); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := loaded.AsOf(); got != sim {
		t.Errorf("AsOf() after load = %s, want %s", got, sim)
	}
}

func TestSnapshot_Encode(t *testing.T) {
	p := NewPortfolio(newFakeSource())

	var b strings.Builder
	if err := p.Encode(&b); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	got := b.String()

	// An empty real-time portfolio has no simulation date and empty fields.
	for _, want := range []string{`"ledger"`, `"journal"`, `"lots"`, `"cashInflows"`} {
		if !strings.Contains(got, want) {
			t.Errorf("Encode() output misses %s:\n%s", want, got)
		}
	}
	if strings.Contains(got, `"asOfDate"`) {
		t.Errorf("Encode() of a real-time portfolio must omit asOfDate:\n%s", got)
	}
}

func TestLoad_RejectsInvalidSnapshots(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{"not json", `{boom`},
		{"missing ledger", `{"cashInflows": []}`},
		{"missing journal", `{"ledger": {"lots": {}}, "cashInflows": []}`},
		{"missing lots", `{"ledger": {"journal": []}, "cashInflows": []}`},
		{"missing cashInflows", `{"ledger": {"journal": [], "lots": {}}}`},
		{
			"empty lot list",
			`{"ledger": {"journal": [], "lots": {"ABC": []}}, "cashInflows": []}`,
		},
		{
			"non-positive lot",
			`{"ledger": {"journal": [], "lots": {"ABC": [{"id": 1, "symbol": "ABC", "quantity": 0, "price": 10, "date": "2025-01-10"}]}}, "cashInflows": []}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "portfolio.json")
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatal(err)
			}

			p := NewPortfolio(newFakeSource())
			if err := p.AddCash(M(42), true); err != nil {
				t.Fatal(err)
			}

			if err := p.Load(path); err == nil {
				t.Fatal("Load() error = nil, want a failure")
			}
			// A failed load leaves the in-memory state untouched.
			if got := p.CashBalance(); !got.Equal(M(42)) {
				t.Errorf("cash after failed load = %s, want 42", got)
			}
		})
	}
}

func TestSave_ReplacesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "portfolio.json")

	p := NewPortfolio(newFakeSource())
	if err := p.AddCash(M(100), true); err != nil {
		t.Fatal(err)
	}
	if err := p.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := p.AddCash(M(50), true); err != nil {
		t.Fatal(err)
	}
	if err := p.Save(path); err != nil {
		t.Fatalf("second Save() error = %v", err)
	}

	// No temporary file left behind.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "portfolio.json" {
		t.Errorf("directory holds %v, want only portfolio.json", entries)
	}

	loaded := NewPortfolio(newFakeSource())
	if err := loaded.Load(path); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := loaded.CashBalance(); !got.Equal(M(150)) {
		t.Errorf("cash after reload = %s, want 150", got)
	}
}
