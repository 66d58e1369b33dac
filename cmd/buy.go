package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/foliotrack/foliotrack"
	"github.com/google/subcommands"
)

type buyCmd struct {
	symbol   string
	quantity float64
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "buy a quantity of an asset at the market price" }
func (*buyCmd) Usage() string {
	return `ft buy -s <symbol> -q <quantity>

  Buys an asset at its closing price on the effective date (today, or the
  -as-of simulation date). The purchase is funded from the cash balance and
  recorded as a new lot.
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "Ticker symbol to buy.")
	f.Float64Var(&c.quantity, "q", 0, "Number of shares to buy.")
}

func (c *buyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.symbol == "" || c.quantity <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -s symbol and a positive -q quantity are required")
		return subcommands.ExitUsageError
	}

	p, err := loadPortfolio()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	if err := p.Buy(ctx, c.symbol, foliotrack.Q(c.quantity)); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if err := savePortfolio(p); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Bought %v of %s, cash balance is now %s.\n", c.quantity, c.symbol, p.CashBalance())
	return subcommands.ExitSuccess
}
