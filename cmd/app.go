// Package cmd implements the CLI application of the trading hub.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/google/subcommands"
	"github.com/rs/zerolog"

	"github.com/valutatrade/tradehub"
	"github.com/valutatrade/tradehub/coingecko"
	"github.com/valutatrade/tradehub/exchangerate"
)

// Commands is the full set of subcommands. A main package registers them
// on a commander and executes the user-selected one.
var Commands = []subcommands.Command{
	&registerCmd{},
	&loginCmd{},
	&logoutCmd{},
	&passwdCmd{},
	&updateRatesCmd{},
	&showRatesCmd{},
	&getRateCmd{},
	&historyCmd{},
	&buyCmd{},
	&sellCmd{},
	&depositCmd{},
	&cashOutCmd{},
	&showPortfolioCmd{},
	&watchCmd{},
	&topicCmd{},
}

// As a CLI application it is short lived, so a global config flag is fine.
var configPath = flag.String("config", "", "path to a YAML config file (optional)")

// app wires the stores and services for one command execution.
type app struct {
	cfg    tradehub.Config
	log    zerolog.Logger
	closer io.Closer

	rates      *tradehub.RateStore
	converter  *tradehub.Converter
	users      *tradehub.UserStore
	sessions   *tradehub.SessionStore
	portfolios *tradehub.PortfolioStore
	ledger     tradehub.LedgerService
}

func loadApp() (*app, error) {
	cfg, err := tradehub.LoadConfig(*configPath)
	if err != nil {
		return nil, err
	}
	log, closer, err := tradehub.NewLogger(cfg.LogDir, cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	rates := tradehub.NewRateStore(cfg.RatesFile(), cfg.HistoryFile(), cfg.RatesTTL())
	converter := tradehub.NewConverter(rates, cfg.BaseCurrency)
	portfolios := tradehub.NewPortfolioStore(cfg.PortfoliosFile())
	ledger := tradehub.NewLoggingLedger(log,
		tradehub.NewLedger(portfolios, converter, cfg.BaseCurrency),
		cfg.BaseCurrency)
	return &app{
		cfg:        cfg,
		log:        log,
		closer:     closer,
		rates:      rates,
		converter:  converter,
		users:      tradehub.NewUserStore(cfg.UsersFile()),
		sessions:   tradehub.NewSessionStore(cfg.SessionFile()),
		portfolios: portfolios,
		ledger:     ledger,
	}, nil
}

func (a *app) Close() {
	if a.closer != nil {
		a.closer.Close()
	}
}

// session returns the current session or ErrNotLoggedIn.
func (a *app) session() (tradehub.Session, error) {
	return a.sessions.Current()
}

// sources builds the configured rate sources. filter narrows to a single
// source by name; empty keeps them all.
func (a *app) sources(filter string) ([]tradehub.RateSource, error) {
	cg := coingecko.New(a.cfg.CoinGecko.URL, a.cfg.CoinGecko.APIKey,
		a.cfg.BaseCurrency, nil, a.cfg.RequestTimeout())
	er := exchangerate.New(a.cfg.ExchangeRate.URL, a.cfg.ExchangeRate.APIKey,
		a.cfg.BaseCurrency, fiatCodes(), a.cfg.RequestTimeout())

	switch strings.ToLower(filter) {
	case "":
		return []tradehub.RateSource{cg, er}, nil
	case "coingecko":
		return []tradehub.RateSource{cg}, nil
	case "exchangerate":
		return []tradehub.RateSource{er}, nil
	default:
		return nil, fmt.Errorf("unknown source %q (want coingecko or exchangerate)", filter)
	}
}

// fiatCodes lists registered fiat currencies.
func fiatCodes() []string {
	var codes []string
	for _, code := range tradehub.Codes() {
		c, err := tradehub.Resolve(code)
		if err != nil {
			continue
		}
		if c.Kind() == tradehub.KindFiat {
			codes = append(codes, code)
		}
	}
	return codes
}
