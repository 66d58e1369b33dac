package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/foliotrack/foliotrack"
	"github.com/google/subcommands"
)

type sellCmd struct {
	symbol   string
	quantity float64
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "sell a quantity of a held asset at the market price" }
func (*sellCmd) Usage() string {
	return `ft sell -s <symbol> -q <quantity>

  Sells a held asset at its closing price on the effective date. The sale
  proceeds are credited to cash and the oldest lots are consumed first.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "Ticker symbol to sell.")
	f.Float64Var(&c.quantity, "q", 0, "Number of shares to sell.")
}

func (c *sellCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.symbol == "" || c.quantity <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -s symbol and a positive -q quantity are required")
		return subcommands.ExitUsageError
	}

	p, err := loadPortfolio()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	if err := p.Sell(ctx, c.symbol, foliotrack.Q(c.quantity)); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if err := savePortfolio(p); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Sold %v of %s, cash balance is now %s.\n", c.quantity, c.symbol, p.CashBalance())
	return subcommands.ExitSuccess
}
