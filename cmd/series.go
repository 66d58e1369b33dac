package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/foliotrack/foliotrack"
	"github.com/foliotrack/foliotrack/renderer"
	"github.com/google/subcommands"
)

type seriesCmd struct {
	start  string
	end    string
	profit bool
}

func (*seriesCmd) Name() string     { return "series" }
func (*seriesCmd) Synopsis() string { return "print a daily value or profit series over a period" }
func (*seriesCmd) Usage() string {
	return `ft series -s <start> [-d <end>] [-profit]

  Prints the portfolio value for every day of the period, or with -profit the
  value minus cumulative external cash contributions.
`
}

func (c *seriesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.start, "s", "", "First date of the period (required).")
	f.StringVar(&c.end, "d", "", "Last date of the period. Defaults to the effective date.")
	f.BoolVar(&c.profit, "profit", false, "Subtract cumulative cash contributions from each value.")
}

func (c *seriesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.start == "" {
		fmt.Fprintln(os.Stderr, "Error: -s <start> is required")
		return subcommands.ExitUsageError
	}

	p, err := loadPortfolio()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	from, err := foliotrack.ParseDate(c.start)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error parsing start date:", err)
		return subcommands.ExitUsageError
	}
	to := p.EffectiveDate()
	if c.end != "" {
		if to, err = foliotrack.ParseDate(c.end); err != nil {
			fmt.Fprintln(os.Stderr, "Error parsing end date:", err)
			return subcommands.ExitUsageError
		}
	}
	if to.Before(from) {
		fmt.Fprintln(os.Stderr, "Error: end date is before start date")
		return subcommands.ExitUsageError
	}

	title := "Portfolio Value"
	series := p.ValueSeries
	if c.profit {
		title = "Portfolio Profit"
		series = p.ProfitSeries
	}
	points, err := series(ctx, from, to)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.Series(title, points))
	return subcommands.ExitSuccess
}
