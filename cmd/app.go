// Package cmd implements the CLI application to manage the portfolio.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/foliotrack/foliotrack"
	"github.com/google/subcommands"
)

// As a CLI application the process is short lived, so global flags are fine.

var snapshotPath = flag.String("f", "portfolio.json", "Path to the portfolio snapshot file")
var asOfFlag = flag.String("as-of", "", "Simulation date: operate the portfolio as of this date instead of today")

// commands lists every subcommand and its registration group.
var commands = []struct {
	cmd   subcommands.Command
	group string
}{
	{&addCashCmd{}, "transactions"},
	{&buyCmd{}, "transactions"},
	{&sellCmd{}, "transactions"},
	{&holdingsCmd{}, "reports"},
	{&txCmd{}, "reports"},
	{&valueCmd{}, "reports"},
	{&seriesCmd{}, "reports"},
	{&assistCmd{}, "assistant"},
}

// Register registers all subcommands on the commander.
func Register(c *subcommands.Commander) {
	for _, e := range commands {
		c.Register(e.cmd, e.group)
	}
}

// loadPortfolio builds the portfolio from the snapshot file. A missing file
// yields an empty portfolio; a corrupt one is an error, never a silent reset.
func loadPortfolio() (*foliotrack.Portfolio, error) {
	p := foliotrack.NewPortfolio(foliotrack.NewYahooSource())

	if _, err := os.Stat(*snapshotPath); err == nil {
		if err := p.Load(*snapshotPath); err != nil {
			return nil, err
		}
	}

	// The flag overrides the persisted simulation date.
	if *asOfFlag != "" {
		on, err := foliotrack.ParseDate(*asOfFlag)
		if err != nil {
			return nil, fmt.Errorf("invalid -as-of date: %w", err)
		}
		p.SetAsOf(on)
	}
	return p, nil
}

// savePortfolio persists the portfolio back to the snapshot file.
func savePortfolio(p *foliotrack.Portfolio) error {
	return p.Save(*snapshotPath)
}

// printMarkdown renders a markdown report to the terminal, falling back to
// the raw text when the renderer fails.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
