package tradehub

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// newTestLedger builds a ledger over a fresh portfolio store and a seeded
// converter pivoting through USD.
func newTestLedger(t *testing.T) (*Ledger, *PortfolioStore) {
	t.Helper()
	_, converter := seededConverter(t)
	portfolios := NewPortfolioStore(filepath.Join(t.TempDir(), "portfolios.json"))
	return NewLedger(portfolios, converter, "USD"), portfolios
}

func TestBuy(t *testing.T) {
	l, portfolios := newTestLedger(t)
	if _, err := l.Deposit(1, 1000); err != nil {
		t.Fatal(err)
	}

	res, err := l.Buy(1, "btc", 0.01)
	if err != nil {
		t.Fatal(err)
	}
	if res.Code != "BTC" || res.Rate != 60000 {
		t.Errorf("result = %+v", res)
	}
	if !almostEqual(res.Cash, 600) {
		t.Errorf("cost = %v, want 600", res.Cash)
	}
	if !almostEqual(res.CashBefore, 1000) || !almostEqual(res.CashAfter, 400) {
		t.Errorf("cash %v -> %v, want 1000 -> 400", res.CashBefore, res.CashAfter)
	}
	if !almostEqual(res.Before, 0) || !almostEqual(res.After, 0.01) {
		t.Errorf("BTC %v -> %v, want 0 -> 0.01", res.Before, res.After)
	}

	// both legs persisted together
	p, ok, err := portfolios.Get(1)
	if err != nil || !ok {
		t.Fatalf("portfolio not persisted: %v", err)
	}
	if !almostEqual(p.Balance("USD"), 400) || !almostEqual(p.Balance("BTC"), 0.01) {
		t.Errorf("persisted balances = %v USD, %v BTC", p.Balance("USD"), p.Balance("BTC"))
	}
}

func TestBuyInsufficientCash(t *testing.T) {
	l, portfolios := newTestLedger(t)
	if _, err := l.Deposit(1, 100); err != nil {
		t.Fatal(err)
	}

	_, err := l.Buy(1, "BTC", 0.01) // costs 600
	var funds *InsufficientFundsError
	if !errors.As(err, &funds) {
		t.Fatalf("error = %v, want InsufficientFundsError", err)
	}
	if funds.Code != "USD" || funds.Available != "100.00" || funds.Required != "600.00" {
		t.Errorf("error detail = %+v", funds)
	}

	// the failed buy must not have touched the stored portfolio
	p, _, err := portfolios.Get(1)
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(p.Balance("USD"), 100) || p.HasWallet("BTC") {
		t.Errorf("failed buy mutated the portfolio: %+v", p.Wallets)
	}
}

func TestSell(t *testing.T) {
	l, _ := newTestLedger(t)
	if _, err := l.Deposit(1, 1000); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Buy(1, "BTC", 0.01); err != nil {
		t.Fatal(err)
	}

	res, err := l.Sell(1, "BTC", 0.004)
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(res.Cash, 240) {
		t.Errorf("revenue = %v, want 240", res.Cash)
	}
	if !almostEqual(res.After, 0.006) {
		t.Errorf("BTC after = %v, want 0.006", res.After)
	}
	if !almostEqual(res.CashAfter, 640) {
		t.Errorf("cash after = %v, want 640", res.CashAfter)
	}
}

func TestSellInsufficient(t *testing.T) {
	l, _ := newTestLedger(t)
	if _, err := l.Deposit(1, 1000); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Buy(1, "BTC", 0.005); err != nil {
		t.Fatal(err)
	}

	_, err := l.Sell(1, "BTC", 0.01)
	var funds *InsufficientFundsError
	if !errors.As(err, &funds) {
		t.Fatalf("error = %v, want InsufficientFundsError", err)
	}
	// crypto balances are quoted with 4 decimals
	if funds.Available != "0.0050" || funds.Required != "0.0100" {
		t.Errorf("error detail = %+v", funds)
	}
}

func TestSellMissingWallet(t *testing.T) {
	l, _ := newTestLedger(t)
	if _, err := l.Deposit(1, 1000); err != nil {
		t.Fatal(err)
	}
	// never bought ETH: the wallet does not exist and is not created
	_, err := l.Sell(1, "ETH", 0.1)
	var funds *InsufficientFundsError
	if !errors.As(err, &funds) {
		t.Fatalf("error = %v, want InsufficientFundsError", err)
	}
	if funds.Available != "0.0000" {
		t.Errorf("available = %q, want 0.0000", funds.Available)
	}
}

func TestTradeCashCurrencyRejected(t *testing.T) {
	l, _ := newTestLedger(t)
	if _, err := l.Buy(1, "USD", 10); err == nil || !strings.Contains(err.Error(), "cash currency") {
		t.Errorf("buying the cash currency: %v", err)
	}
	if _, err := l.Sell(1, "usd", 10); err == nil || !strings.Contains(err.Error(), "cash currency") {
		t.Errorf("selling the cash currency: %v", err)
	}
}

func TestValidation(t *testing.T) {
	l, _ := newTestLedger(t)
	if _, err := l.Buy(1, "BTC", 0); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("zero amount: %v", err)
	}
	if _, err := l.Deposit(1, -5); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("negative deposit: %v", err)
	}
	if _, err := l.Deposit(0, 5); err == nil {
		t.Error("zero user id accepted")
	}
	var notFound *CurrencyNotFoundError
	if _, err := l.Buy(1, "XYZ", 1); !errors.As(err, &notFound) {
		t.Errorf("unknown currency: %v", err)
	}
}

func TestWithdraw(t *testing.T) {
	l, _ := newTestLedger(t)
	if _, err := l.Deposit(1, 500); err != nil {
		t.Fatal(err)
	}
	res, err := l.Withdraw(1, 200)
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(res.Before, 500) || !almostEqual(res.After, 300) {
		t.Errorf("cash %v -> %v, want 500 -> 300", res.Before, res.After)
	}
	if _, err := l.Withdraw(1, 1000); err == nil {
		t.Error("over-withdrawal accepted")
	}
}

func TestReport(t *testing.T) {
	l, _ := newTestLedger(t)
	if _, err := l.Deposit(1, 1000); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Buy(1, "BTC", 0.01); err != nil {
		t.Fatal(err)
	}

	report, err := l.Report(1, "USD")
	if err != nil {
		t.Fatal(err)
	}
	if report.Base != "USD" || len(report.Lines) != 2 {
		t.Fatalf("report = %+v", report)
	}
	// 0.01 BTC at 60000 plus 400 cash
	if !almostEqual(report.Total, 1000) {
		t.Errorf("total = %v, want 1000", report.Total)
	}

	// valued in EUR: total / 1.1
	report, err = l.Report(1, "eur")
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(report.Total, 1000/1.1) {
		t.Errorf("EUR total = %v, want %v", report.Total, 1000/1.1)
	}
}

func TestReportFreshUser(t *testing.T) {
	l, _ := newTestLedger(t)
	report, err := l.Report(42, "USD")
	if err != nil {
		t.Fatal(err)
	}
	// a fresh user sees an empty cash wallet, not an error
	if len(report.Lines) != 1 || report.Lines[0].Code != "USD" || !almostEqual(report.Total, 0) {
		t.Errorf("report = %+v", report)
	}
}

func TestBuyStaleRates(t *testing.T) {
	s, converter := seededConverter(t)
	portfolios := NewPortfolioStore(filepath.Join(t.TempDir(), "portfolios.json"))
	l := NewLedger(portfolios, converter, "USD")
	if _, err := l.Deposit(1, 1000); err != nil {
		t.Fatal(err)
	}

	s.now = func() time.Time { return mustTS(t, "2025-10-01T12:00:00Z").Time().Add(time.Hour) }
	if _, err := l.Buy(1, "BTC", 0.01); !errors.Is(err, ErrStaleRates) {
		t.Fatalf("error = %v, want ErrStaleRates", err)
	}
}
