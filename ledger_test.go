package foliotrack

import (
	"testing"
)

// buyTx builds a journal-style acquisition entry.
func buyTx(id int64, symbol string, qty, price float64, on Date) Transaction {
	return Transaction{ID: id, Symbol: symbol, Quantity: Q(qty), Price: M(price), Date: on}
}

func TestLedger_ConsumeFIFO(t *testing.T) {
	jan10 := NewDate(2025, 1, 10)
	jan20 := NewDate(2025, 1, 20)

	testCases := []struct {
		name     string
		sell     float64
		wantLots []struct {
			id  int64
			qty float64
		}
	}{
		{
			name: "partial sale from the oldest lot",
			sell: 3,
			wantLots: []struct {
				id  int64
				qty float64
			}{{1, 2}, {2, 5}},
		},
		{
			name: "exact sale of the oldest lot",
			sell: 5,
			wantLots: []struct {
				id  int64
				qty float64
			}{{2, 5}},
		},
		{
			name: "sale spanning both lots",
			sell: 7,
			wantLots: []struct {
				id  int64
				qty float64
			}{{2, 3}},
		},
		{
			name:     "full sale",
			sell:     10,
			wantLots: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ledger := NewLedger()
			ledger.append(buyTx(1, "ABC", 5, 10, jan10))
			ledger.append(buyTx(2, "ABC", 5, 20, jan20))

			ledger.consume("ABC", Q(tc.sell))

			lots := ledger.Lots("ABC")
			if len(lots) != len(tc.wantLots) {
				t.Fatalf("Lots(ABC) = %d lots, want %d", len(lots), len(tc.wantLots))
			}
			for i, want := range tc.wantLots {
				if lots[i].ID != want.id {
					t.Errorf("lot %d ID = %d, want %d", i, lots[i].ID, want.id)
				}
				if !lots[i].Quantity.Equal(Q(want.qty)) {
					t.Errorf("lot %d quantity = %s, want %v", i, lots[i].Quantity, want.qty)
				}
			}
		})
	}
}

func TestLedger_FullSalePrunesSymbol(t *testing.T) {
	ledger := NewLedger()
	ledger.append(buyTx(1, "ABC", 5, 10, NewDate(2025, 1, 10)))
	ledger.consume("ABC", Q(5))

	if got := ledger.Symbols(); len(got) != 0 {
		t.Errorf("Symbols() = %v, want none", got)
	}
	if _, ok := ledger.lots["ABC"]; ok {
		t.Error("lots map still has an entry for a fully sold symbol")
	}
	// The journal keeps the acquisition regardless.
	if got := ledger.EverTraded(); len(got) != 1 || got[0] != "ABC" {
		t.Errorf("EverTraded() = %v, want [ABC]", got)
	}
}

func TestLedger_PartialLotKeepsPrice(t *testing.T) {
	ledger := NewLedger()
	ledger.append(buyTx(1, "ABC", 5, 10, NewDate(2025, 1, 10)))
	ledger.consume("ABC", Q(2))

	lots := ledger.Lots("ABC")
	if len(lots) != 1 {
		t.Fatalf("Lots(ABC) = %d lots, want 1", len(lots))
	}
	if !lots[0].Quantity.Equal(Q(3)) {
		t.Errorf("remaining quantity = %s, want 3", lots[0].Quantity)
	}
	if !lots[0].Price.Equal(M(10)) {
		t.Errorf("remaining lot price = %s, want %s", lots[0].Price, M(10))
	}
}

func TestLedger_QuantityOn(t *testing.T) {
	jan10 := NewDate(2025, 1, 10)
	feb01 := NewDate(2025, 2, 1)
	ledger := NewLedger()
	ledger.append(buyTx(1, "ABC", 10, 50, jan10))
	// A sale is a negative journal entry.
	ledger.append(buyTx(2, "ABC", -4, 60, feb01))

	testCases := []struct {
		name string
		on   Date
		want float64
	}{
		{"before any trade", NewDate(2025, 1, 9), 0},
		{"on the buy date", jan10, 10},
		{"between buy and sell", NewDate(2025, 1, 31), 10},
		{"on the sell date", feb01, 6},
		{"after the sell", NewDate(2025, 3, 1), 6},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ledger.QuantityOn("ABC", tc.on); !got.Equal(Q(tc.want)) {
				t.Errorf("QuantityOn(ABC, %s) = %s, want %v", tc.on, got, tc.want)
			}
		})
	}
}

func TestLedger_CashBalance(t *testing.T) {
	jan10 := NewDate(2025, 1, 10)
	jan20 := NewDate(2025, 1, 20)
	ledger := NewLedger()
	ledger.append(Transaction{ID: 1, Symbol: CashSymbol, Quantity: Q(1000), Price: M(1), Date: jan10})
	ledger.append(Transaction{ID: 2, Symbol: CashSymbol, Quantity: Q(-300), Price: M(1), Date: jan20})

	if got := ledger.CashBalance(); !got.Equal(M(700)) {
		t.Errorf("CashBalance() = %s, want %s", got, M(700))
	}
	if got := ledger.CashBalanceOn(jan10); !got.Equal(M(1000)) {
		t.Errorf("CashBalanceOn(%s) = %s, want %s", jan10, got, M(1000))
	}
	// Cash entries never create lots.
	if got := ledger.Symbols(); len(got) != 0 {
		t.Errorf("Symbols() = %v, want none", got)
	}
}

func TestLedger_AverageCost(t *testing.T) {
	ledger := NewLedger()
	ledger.append(buyTx(1, "ABC", 5, 10, NewDate(2025, 1, 10)))
	ledger.append(buyTx(2, "ABC", 5, 20, NewDate(2025, 1, 20)))

	if got := ledger.AverageCost("ABC"); !got.Equal(M(15)) {
		t.Errorf("AverageCost(ABC) = %s, want %s", got, M(15))
	}
	if got := ledger.AverageCost("ZZZ"); !got.IsZero() {
		t.Errorf("AverageCost(ZZZ) = %s, want zero", got)
	}

	// After consuming the cheap lot the average shifts to the expensive one.
	ledger.consume("ABC", Q(5))
	if got := ledger.AverageCost("ABC"); !got.Equal(M(20)) {
		t.Errorf("AverageCost(ABC) after FIFO sale = %s, want %s", got, M(20))
	}
}
