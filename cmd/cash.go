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

type depositCmd struct {
	amount float64
}

func (*depositCmd) Name() string     { return "deposit" }
func (*depositCmd) Synopsis() string { return "add funds to the cash wallet" }
func (*depositCmd) Usage() string {
	return `vt deposit -amount <n>
`
}

func (c *depositCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.amount, "amount", 0, "amount to deposit")
}

func (c *depositCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return runCash("Deposited", func(a *app, userID int) (tradehub.CashResult, error) {
		return a.ledger.Deposit(userID, c.amount)
	})
}

type cashOutCmd struct {
	amount float64
}

func (*cashOutCmd) Name() string     { return "cash-out" }
func (*cashOutCmd) Synopsis() string { return "withdraw funds from the cash wallet" }
func (*cashOutCmd) Usage() string {
	return `vt cash-out -amount <n>
`
}

func (c *cashOutCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.amount, "amount", 0, "amount to withdraw")
}

func (c *cashOutCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return runCash("Withdrew", func(a *app, userID int) (tradehub.CashResult, error) {
		return a.ledger.Withdraw(userID, c.amount)
	})
}

func runCash(verb string, op func(*app, int) (tradehub.CashResult, error)) subcommands.ExitStatus {
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
	r, err := op(a, sess.UserID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.CashMarkdown(verb, r))
	return subcommands.ExitSuccess
}
