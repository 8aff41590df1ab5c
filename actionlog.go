package tradehub

import "github.com/rs/zerolog"

// loggingLedger decorates a LedgerService with structured action records:
// one line per operation carrying actor, currency, amount and the
// before/after balances, or the error kind on failure. Composing it over
// the ledger keeps the logging an explicit call-site concern.
type loggingLedger struct {
	log  zerolog.Logger
	next LedgerService
	cash string
}

// NewLoggingLedger returns a LedgerService that logs every operation and
// delegates to next. The cash currency is only used to format the cash
// legs of trade records.
func NewLoggingLedger(log zerolog.Logger, next LedgerService, cash string) LedgerService {
	return &loggingLedger{log: log, next: next, cash: cash}
}

func (l *loggingLedger) Buy(userID int, code string, amount float64) (TradeResult, error) {
	res, err := l.next.Buy(userID, code, amount)
	l.trade("BUY", userID, code, amount, res, err)
	return res, err
}

func (l *loggingLedger) Sell(userID int, code string, amount float64) (TradeResult, error) {
	res, err := l.next.Sell(userID, code, amount)
	l.trade("SELL", userID, code, amount, res, err)
	return res, err
}

func (l *loggingLedger) Deposit(userID int, amount float64) (CashResult, error) {
	res, err := l.next.Deposit(userID, amount)
	l.cashflow("DEPOSIT", userID, amount, res, err)
	return res, err
}

func (l *loggingLedger) Withdraw(userID int, amount float64) (CashResult, error) {
	res, err := l.next.Withdraw(userID, amount)
	l.cashflow("WITHDRAW", userID, amount, res, err)
	return res, err
}

func (l *loggingLedger) Report(userID int, base string) (PortfolioReport, error) {
	// Reading a report is not a balance mutation; it is not an action record.
	return l.next.Report(userID, base)
}

func (l *loggingLedger) trade(action string, userID int, code string, amount float64, res TradeResult, err error) {
	ev := l.event(action, userID, err).
		Str("currency", code).
		Str("amount", FormatAmount(code, amount))
	if err == nil {
		ev = ev.
			Str("rate", FormatRate(res.Rate)).
			Str("balance_before", FormatAmount(code, res.Before)).
			Str("balance_after", FormatAmount(code, res.After)).
			Str("cash_before", FormatAmount(l.cash, res.CashBefore)).
			Str("cash_after", FormatAmount(l.cash, res.CashAfter))
	}
	ev.Msg("ledger action")
}

func (l *loggingLedger) cashflow(action string, userID int, amount float64, res CashResult, err error) {
	ev := l.event(action, userID, err).
		Str("currency", l.cash).
		Str("amount", FormatAmount(l.cash, amount))
	if err == nil {
		ev = ev.
			Str("balance_before", FormatAmount(l.cash, res.Before)).
			Str("balance_after", FormatAmount(l.cash, res.After))
	}
	ev.Msg("ledger action")
}

func (l *loggingLedger) event(action string, userID int, err error) *zerolog.Event {
	ev := l.log.Info().
		Str("action", action).
		Int("user_id", userID).
		Str("result", StatusOK)
	if err != nil {
		ev = l.log.Warn().
			Str("action", action).
			Int("user_id", userID).
			Str("result", StatusError).
			Str("error_type", ErrorKind(err)).
			Str("error_message", err.Error())
	}
	return ev
}
