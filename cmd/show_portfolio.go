package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/valutatrade/tradehub/renderer"
)

type showPortfolioCmd struct {
	base string
}

func (*showPortfolioCmd) Name() string     { return "show-portfolio" }
func (*showPortfolioCmd) Synopsis() string { return "display the wallets of the logged-in user" }
func (*showPortfolioCmd) Usage() string {
	return `vt show-portfolio [-base <code>]

  Values every wallet in the base currency (the cash currency unless
  -base says otherwise) and totals them.
`
}

func (c *showPortfolioCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.base, "base", "", "currency to value the portfolio in")
}

func (c *showPortfolioCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := loadApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	sess, err := a.session()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	base := c.base
	if base == "" {
		base = a.cfg.BaseCurrency
	}
	report, err := a.ledger.Report(sess.UserID, base)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building report: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.PortfolioMarkdown(&report))
	return subcommands.ExitSuccess
}
