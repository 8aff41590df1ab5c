package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/valutatrade/tradehub/renderer"
)

// buyCmd and sellCmd share flags and wiring; only the ledger call and the
// reported verb differ.

type buyCmd struct {
	currency string
	amount   float64
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "buy a currency against the cash wallet" }
func (*buyCmd) Usage() string {
	return `vt buy -currency <code> -amount <n>

  Debits the cash wallet by amount * rate and credits the bought wallet.
  Requires a session and fresh rates.
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.currency, "currency", "", "currency code to buy")
	f.Float64Var(&c.amount, "amount", 0, "amount to buy")
}

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return runTrade(c.currency, func(a *app, userID int) (renderable, error) {
		r, err := a.ledger.Buy(userID, c.currency, c.amount)
		return func(cash string) string { return renderer.TradeMarkdown("Bought", r, cash) }, err
	})
}

type sellCmd struct {
	currency string
	amount   float64
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "sell a currency for the cash wallet" }
func (*sellCmd) Usage() string {
	return `vt sell -currency <code> -amount <n>

  Debits the sold wallet and credits the cash wallet with the revenue.
  Fails when the wallet is missing or underfunded.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.currency, "currency", "", "currency code to sell")
	f.Float64Var(&c.amount, "amount", 0, "amount to sell")
}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return runTrade(c.currency, func(a *app, userID int) (renderable, error) {
		r, err := a.ledger.Sell(userID, c.currency, c.amount)
		return func(cash string) string { return renderer.TradeMarkdown("Sold", r, cash) }, err
	})
}

type renderable func(cash string) string

func runTrade(currency string, op func(*app, int) (renderable, error)) subcommands.ExitStatus {
	if currency == "" {
		fmt.Fprintln(os.Stderr, "-currency must be provided")
		return subcommands.ExitUsageError
	}
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
	render, err := op(a, sess.UserID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(render(a.cfg.BaseCurrency))
	return subcommands.ExitSuccess
}
