package tradehub

import "fmt"

// TradeResult is the structured outcome of a buy or sell.
type TradeResult struct {
	UserID int
	Code   string
	Amount float64
	// Rate is the executed pivot rate, cash per unit of Code.
	Rate float64
	// Cash is the cash-currency leg: the cost debited by Buy, or the
	// revenue credited by Sell.
	Cash float64
	// Before/After are the Code wallet balances around the trade.
	Before float64
	After  float64
	// CashBefore/CashAfter are the cash wallet balances around the trade.
	CashBefore float64
	CashAfter  float64
}

// CashResult is the structured outcome of a deposit or cash-out.
type CashResult struct {
	UserID int
	Code   string
	Amount float64
	Before float64
	After  float64
}

// WalletLine is one row of a portfolio report.
type WalletLine struct {
	Code    string
	Balance float64
	// Value is the balance expressed in the report's base currency.
	Value float64
}

// PortfolioReport is a portfolio valued in a chosen base currency.
type PortfolioReport struct {
	UserID int
	Base   string
	Lines  []WalletLine
	Total  float64
}

// LedgerService applies trading operations to per-user portfolios. It is
// the only actor permitted to mutate wallet balances.
type LedgerService interface {
	Buy(userID int, code string, amount float64) (TradeResult, error)
	Sell(userID int, code string, amount float64) (TradeResult, error)
	Deposit(userID int, amount float64) (CashResult, error)
	Withdraw(userID int, amount float64) (CashResult, error)
	Report(userID int, base string) (PortfolioReport, error)
}

// Ledger is the concrete LedgerService over a portfolio store and a
// converter. Trades are always mediated by the cash currency: buys debit
// it, sells credit it. Both legs of a transfer are applied in memory and
// the whole portfolio record is persisted atomically afterwards; a
// validation or funds failure leaves the stored record untouched.
type Ledger struct {
	portfolios *PortfolioStore
	converter  *Converter
	cash       string
}

// NewLedger returns a ledger trading against the given cash currency.
func NewLedger(portfolios *PortfolioStore, converter *Converter, cash string) *Ledger {
	return &Ledger{portfolios: portfolios, converter: converter, cash: cash}
}

// Buy converts amount of code into a cash cost at the pivot rate, debits
// the cash wallet and credits the code wallet.
func (l *Ledger) Buy(userID int, code string, amount float64) (TradeResult, error) {
	code, err := l.tradeCode(code)
	if err != nil {
		return TradeResult{}, err
	}
	if err := validateOp(userID, amount); err != nil {
		return TradeResult{}, err
	}
	rate, err := l.converter.RateToBase(code, l.cash)
	if err != nil {
		return TradeResult{}, err
	}
	cost := amount * rate

	p, err := l.load(userID)
	if err != nil {
		return TradeResult{}, err
	}
	res := TradeResult{
		UserID: userID, Code: code, Amount: amount, Rate: rate, Cash: cost,
		Before: p.Balance(code), CashBefore: p.Balance(l.cash),
	}
	if err := p.Debit(l.cash, cost); err != nil {
		return TradeResult{}, err
	}
	p.Credit(code, amount)
	res.After = p.Balance(code)
	res.CashAfter = p.Balance(l.cash)
	if err := l.portfolios.Save(p); err != nil {
		return TradeResult{}, err
	}
	return res, nil
}

// Sell debits amount from the code wallet and credits the cash wallet with
// the revenue at the pivot rate. A missing wallet fails exactly like an
// underfunded one; it is never created on the fly.
func (l *Ledger) Sell(userID int, code string, amount float64) (TradeResult, error) {
	code, err := l.tradeCode(code)
	if err != nil {
		return TradeResult{}, err
	}
	if err := validateOp(userID, amount); err != nil {
		return TradeResult{}, err
	}
	rate, err := l.converter.RateToBase(code, l.cash)
	if err != nil {
		return TradeResult{}, err
	}
	revenue := amount * rate

	p, err := l.load(userID)
	if err != nil {
		return TradeResult{}, err
	}
	res := TradeResult{
		UserID: userID, Code: code, Amount: amount, Rate: rate, Cash: revenue,
		Before: p.Balance(code), CashBefore: p.Balance(l.cash),
	}
	if err := p.Debit(code, amount); err != nil {
		return TradeResult{}, err
	}
	p.Credit(l.cash, revenue)
	res.After = p.Balance(code)
	res.CashAfter = p.Balance(l.cash)
	if err := l.portfolios.Save(p); err != nil {
		return TradeResult{}, err
	}
	return res, nil
}

// Deposit credits the cash wallet directly.
func (l *Ledger) Deposit(userID int, amount float64) (CashResult, error) {
	if err := validateOp(userID, amount); err != nil {
		return CashResult{}, err
	}
	p, err := l.load(userID)
	if err != nil {
		return CashResult{}, err
	}
	res := CashResult{UserID: userID, Code: l.cash, Amount: amount, Before: p.Balance(l.cash)}
	p.Credit(l.cash, amount)
	res.After = p.Balance(l.cash)
	if err := l.portfolios.Save(p); err != nil {
		return CashResult{}, err
	}
	return res, nil
}

// Withdraw debits the cash wallet directly.
func (l *Ledger) Withdraw(userID int, amount float64) (CashResult, error) {
	if err := validateOp(userID, amount); err != nil {
		return CashResult{}, err
	}
	p, err := l.load(userID)
	if err != nil {
		return CashResult{}, err
	}
	res := CashResult{UserID: userID, Code: l.cash, Amount: amount, Before: p.Balance(l.cash)}
	if err := p.Debit(l.cash, amount); err != nil {
		return CashResult{}, err
	}
	res.After = p.Balance(l.cash)
	if err := l.portfolios.Save(p); err != nil {
		return CashResult{}, err
	}
	return res, nil
}

// Report values the user's portfolio in the given base currency.
func (l *Ledger) Report(userID int, base string) (PortfolioReport, error) {
	baseCur, err := Resolve(base)
	if err != nil {
		return PortfolioReport{}, err
	}
	if userID <= 0 {
		return PortfolioReport{}, fmt.Errorf("user id must be positive, got %d", userID)
	}
	p, err := l.load(userID)
	if err != nil {
		return PortfolioReport{}, err
	}
	report := PortfolioReport{UserID: userID, Base: baseCur.Code()}
	for _, code := range p.Codes() {
		rate, err := l.converter.RateToBase(code, report.Base)
		if err != nil {
			return PortfolioReport{}, err
		}
		value := p.Balance(code) * rate
		report.Lines = append(report.Lines, WalletLine{Code: code, Balance: p.Balance(code), Value: value})
		report.Total += value
	}
	return report, nil
}

// load returns the user's portfolio, creating it in memory with a cash
// wallet on first use. It is persisted by the operation that follows.
func (l *Ledger) load(userID int) (Portfolio, error) {
	p, ok, err := l.portfolios.Get(userID)
	if err != nil {
		return Portfolio{}, err
	}
	if !ok {
		p = Portfolio{UserID: userID, Wallets: map[string]Wallet{}}
	}
	if !p.HasWallet(l.cash) {
		p.Wallets[l.cash] = Wallet{}
	}
	return p, nil
}

// tradeCode validates a buy/sell currency: registered, and not the cash
// currency itself (cash moves through deposit and cash-out only).
func (l *Ledger) tradeCode(code string) (string, error) {
	cur, err := Resolve(code)
	if err != nil {
		return "", err
	}
	if cur.Code() == l.cash {
		return "", fmt.Errorf("%s is the cash currency: use deposit or cash-out instead", l.cash)
	}
	return cur.Code(), nil
}

func validateOp(userID int, amount float64) error {
	if userID <= 0 {
		return fmt.Errorf("user id must be positive, got %d", userID)
	}
	if amount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}
