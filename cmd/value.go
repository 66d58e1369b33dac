package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/foliotrack/foliotrack"
	"github.com/google/subcommands"
)

type valueCmd struct {
	date string
}

func (*valueCmd) Name() string     { return "value" }
func (*valueCmd) Synopsis() string { return "compute the total portfolio value at a date" }
func (*valueCmd) Usage() string {
	return `ft value [-d <date>]

  Computes cash plus the market value of every held asset at the given date
  (default: the effective date).
`
}

func (c *valueCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Date for the valuation. Defaults to the effective date.")
}

func (c *valueCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := loadPortfolio()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	on := p.EffectiveDate()
	if c.date != "" {
		if on, err = foliotrack.ParseDate(c.date); err != nil {
			fmt.Fprintln(os.Stderr, "Error parsing date:", err)
			return subcommands.ExitUsageError
		}
	}

	fmt.Printf("Total portfolio value on %s: %s\n", on, p.ValueOn(ctx, on))
	return subcommands.ExitSuccess
}
