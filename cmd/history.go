package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/valutatrade/tradehub"
	"github.com/valutatrade/tradehub/renderer"
)

type historyCmd struct {
	from   string
	to     string
	source string
	limit  int
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "display recorded rate measurements" }
func (*historyCmd) Usage() string {
	return `vt history [-from <code>] [-to <code>] [-source <name>] [-limit <n>]

  Lists measurements from the append-only history, oldest first.
  -limit keeps the n most recent ones.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "filter by source currency")
	f.StringVar(&c.to, "to", "", "filter by target currency")
	f.StringVar(&c.source, "source", "", "filter by source name")
	f.IntVar(&c.limit, "limit", 0, "keep only the n most recent entries")
}

func (c *historyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := loadApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	filter := tradehub.MeasurementFilter{Source: c.source, Limit: c.limit}
	if c.from != "" {
		if filter.From, err = tradehub.NormalizeCode(c.from); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
	}
	if c.to != "" {
		if filter.To, err = tradehub.NormalizeCode(c.to); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
	}

	entries, err := a.rates.Measurements(filter)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading history: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.HistoryMarkdown(entries))
	return subcommands.ExitSuccess
}
