package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/foliotrack/foliotrack/renderer"
	"github.com/google/subcommands"
)

type holdingsCmd struct{}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "display the held assets with prices and changes" }
func (*holdingsCmd) Usage() string {
	return `ft holdings

  Displays every held asset with its quantity, average cost, current price,
  market value, and price change over the trailing month and year, plus the
  cash balance and total portfolio value.
`
}

func (*holdingsCmd) SetFlags(_ *flag.FlagSet) {}

func (c *holdingsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := loadPortfolio()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	actives := p.Actives(ctx)
	printMarkdown(renderer.Actives(p.EffectiveDate(), actives, p.CashBalance(), p.Value(ctx)))
	return subcommands.ExitSuccess
}
