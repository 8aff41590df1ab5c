package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/valutatrade/tradehub/renderer"
)

type getRateCmd struct {
	from string
	to   string
}

func (*getRateCmd) Name() string     { return "get-rate" }
func (*getRateCmd) Synopsis() string { return "quote the conversion rate between two currencies" }
func (*getRateCmd) Usage() string {
	return `vt get-rate -from <code> -to <code>

  Quotes from the cached snapshot, deriving cross rates through the cash
  currency when needed. Fails when the snapshot is stale.
`
}

func (c *getRateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "source currency code")
	f.StringVar(&c.to, "to", "", "target currency code")
}

func (c *getRateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.from == "" || c.to == "" {
		fmt.Fprintln(os.Stderr, "both -from and -to must be provided")
		return subcommands.ExitUsageError
	}
	a, err := loadApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	q, err := a.converter.Quote(c.from, c.to)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error quoting %s/%s: %v\n", c.from, c.to, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.QuoteMarkdown(q))
	return subcommands.ExitSuccess
}
