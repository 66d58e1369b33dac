package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/foliotrack/foliotrack"
	"github.com/google/subcommands"
)

type addCashCmd struct {
	amount float64
}

func (*addCashCmd) Name() string     { return "add-cash" }
func (*addCashCmd) Synopsis() string { return "add external cash to the portfolio" }
func (*addCashCmd) Usage() string {
	return `ft add-cash -a <amount>

  Adds cash to the portfolio and records it as an external inflow, so that
  profit reports can separate deposits from market performance. A negative
  amount withdraws cash; the balance must stay above zero.
`
}

func (c *addCashCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.amount, "a", 0, "Amount of cash to add (negative to withdraw).")
}

func (c *addCashCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.amount == 0 {
		fmt.Fprintln(os.Stderr, "Error: -a amount is required")
		return subcommands.ExitUsageError
	}

	p, err := loadPortfolio()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	amount := foliotrack.M(c.amount)
	if err := p.AddCash(amount, true); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if err := savePortfolio(p); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Added %s to cash, balance is now %s.\n", amount, p.CashBalance())
	return subcommands.ExitSuccess
}
