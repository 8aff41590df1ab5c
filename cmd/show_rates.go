package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/google/subcommands"

	"github.com/valutatrade/tradehub"
	"github.com/valutatrade/tradehub/renderer"
)

type showRatesCmd struct {
	currency string
	base     string
	top      int
}

func (*showRatesCmd) Name() string     { return "show-rates" }
func (*showRatesCmd) Synopsis() string { return "display the cached rates snapshot" }
func (*showRatesCmd) Usage() string {
	return `vt show-rates [-currency <code>] [-top <n>] [-base <code>]

  Displays all cached pairs. -currency keeps pairs involving one code,
  -top keeps the n highest rates quoted in the base currency.
`
}

func (c *showRatesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.currency, "currency", "", "only pairs involving this currency")
	f.StringVar(&c.base, "base", "", "base currency for the -top ranking")
	f.IntVar(&c.top, "top", 0, "only the n highest rates")
}

func (c *showRatesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := loadApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	pairs, err := a.rates.Pairs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading rates: %v\n", err)
		return subcommands.ExitFailure
	}

	filter := ""
	if c.currency != "" {
		filter, err = tradehub.NormalizeCode(c.currency)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
	}

	base := a.cfg.BaseCurrency
	if c.base != "" {
		base, err = tradehub.NormalizeCode(c.base)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
	}

	list := make([]tradehub.RatePair, 0, len(pairs))
	for _, p := range pairs {
		if filter != "" && p.From != filter && p.To != filter {
			continue
		}
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Key() < list[j].Key() })
	if c.top > 0 {
		// Rank by the rate quoted in the base currency, highest first.
		ranked := list[:0]
		for _, p := range list {
			if p.To == base {
				ranked = append(ranked, p)
			}
		}
		sort.Slice(ranked, func(i, j int) bool { return ranked[i].Rate > ranked[j].Rate })
		if c.top < len(ranked) {
			ranked = ranked[:c.top]
		}
		list = ranked
	}

	lastRefresh, _ := a.rates.LastRefresh()
	printMarkdown(renderer.RatesMarkdown(list, lastRefresh, a.rates.IsStale()))
	return subcommands.ExitSuccess
}
