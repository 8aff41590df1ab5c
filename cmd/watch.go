package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/subcommands"

	"github.com/valutatrade/tradehub"
)

type watchCmd struct {
	interval time.Duration
	source   string
}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "refresh rates on a schedule until interrupted" }
func (*watchCmd) Usage() string {
	return `vt watch [-interval <duration>] [-source coingecko|exchangerate]

  Runs an update immediately, then again at every interval, until
  interrupted with Ctrl-C. Keeps the snapshot fresh for other commands.
`
}

func (c *watchCmd) SetFlags(f *flag.FlagSet) {
	f.DurationVar(&c.interval, "interval", 0, "time between updates (config default when unset)")
	f.StringVar(&c.source, "source", "", "restrict updates to a single source")
}

func (c *watchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	interval := c.interval
	if interval <= 0 {
		interval = a.cfg.UpdateInterval()
	}

	updater := tradehub.NewUpdater(a.rates, a.log, sources...)
	// first update right away, the scheduler then takes over
	if _, err := updater.RunUpdate(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Initial update failed: %v\n", err)
	}

	sched := tradehub.NewScheduler(updater, interval, a.log)
	sched.Start()
	fmt.Printf("Watching rates every %s. Press Ctrl-C to stop.\n", interval)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	select {
	case <-sig:
	case <-ctx.Done():
	}
	sched.Stop()

	state := sched.State()
	if state.LastError != "" {
		fmt.Fprintf(os.Stderr, "Last scheduled update failed: %s\n", state.LastError)
	}
	fmt.Println("Stopped.")
	return subcommands.ExitSuccess
}
