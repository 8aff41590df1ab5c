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

type updateRatesCmd struct {
	source string
}

func (*updateRatesCmd) Name() string     { return "update-rates" }
func (*updateRatesCmd) Synopsis() string { return "fetch fresh rates from the configured sources" }
func (*updateRatesCmd) Usage() string {
	return `vt update-rates [-source coingecko|exchangerate]

  Queries every configured source, records each measurement in the
  history and refreshes the snapshot. A failing source is reported but
  does not abort the update.
`
}

func (c *updateRatesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.source, "source", "", "restrict the update to a single source")
}

func (c *updateRatesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := loadApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	sources, err := a.sources(c.source)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	updater := tradehub.NewUpdater(a.rates, a.log, sources...)
	summary, err := updater.RunUpdate(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error updating rates: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.UpdateMarkdown(&summary))
	return subcommands.ExitSuccess
}
