package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/foliotrack/foliotrack/agent"
	"github.com/foliotrack/foliotrack/renderer"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

type assistCmd struct{}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "start an interactive session with the AI assistant" }
func (*assistCmd) Usage() string {
	return `ft assist [question...]

  Starts an interactive chat session with an AI assistant that knows the
  current holdings report. Arguments, if any, are sent as the first question.
`
}

func (*assistCmd) SetFlags(_ *flag.FlagSet) {}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	initialPrompt := ""
	if f.NArg() > 0 {
		initialPrompt = strings.Join(f.Args(), " ")
	}

	p, err := loadPortfolio()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	// Seed the assistant with the same report "ft holdings" prints.
	report := renderer.Actives(p.EffectiveDate(), p.Actives(ctx), p.CashBalance(), p.Value(ctx))

	a := agent.New(os.Stdout, os.Stdin, report)
	if err := a.Run(ctx, client, initialPrompt); err != nil {
		fmt.Fprintln(os.Stderr, "Agent failed:", err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
