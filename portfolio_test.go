package tradehub

import (
	"path/filepath"
	"testing"
)

func TestPortfolioCreditDebit(t *testing.T) {
	p := Portfolio{UserID: 1, Wallets: map[string]Wallet{}}

	p.Credit("USD", 100)
	p.Credit("USD", 50)
	if !almostEqual(p.Balance("USD"), 150) {
		t.Errorf("balance = %v, want 150", p.Balance("USD"))
	}
	if p.Balance("BTC") != 0 {
		t.Errorf("missing wallet balance = %v, want 0", p.Balance("BTC"))
	}
	if p.HasWallet("BTC") {
		t.Error("reading a balance must not create a wallet")
	}

	if err := p.Debit("USD", 200); err == nil {
		t.Fatal("over-debit accepted")
	}
	if !almostEqual(p.Balance("USD"), 150) {
		t.Errorf("failed debit mutated the balance: %v", p.Balance("USD"))
	}
	if err := p.Debit("USD", 150); err != nil {
		t.Fatal(err)
	}
	if !almostEqual(p.Balance("USD"), 0) {
		t.Errorf("balance = %v, want 0", p.Balance("USD"))
	}
	// debiting a missing wallet fails like an empty one
	if err := p.Debit("BTC", 0.1); err == nil {
		t.Error("debit on a missing wallet accepted")
	}
}

func TestPortfolioStore(t *testing.T) {
	s := NewPortfolioStore(filepath.Join(t.TempDir(), "portfolios.json"))

	_, ok, err := s.Get(1)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("missing portfolio reported as present")
	}

	p := Portfolio{UserID: 1, Wallets: map[string]Wallet{"USD": {Balance: 100}}}
	if err := s.Save(p); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(Portfolio{UserID: 2, Wallets: map[string]Wallet{"USD": {Balance: 7}}}); err != nil {
		t.Fatal(err)
	}

	// replace, not duplicate
	p.Wallets["USD"] = Wallet{Balance: 42}
	if err := s.Save(p); err != nil {
		t.Fatal(err)
	}

	got, ok, err := s.Get(1)
	if err != nil || !ok {
		t.Fatalf("Get(1) = %v %v", ok, err)
	}
	if !almostEqual(got.Balance("USD"), 42) {
		t.Errorf("balance = %v, want 42", got.Balance("USD"))
	}
	other, ok, err := s.Get(2)
	if err != nil || !ok {
		t.Fatalf("Get(2) = %v %v", ok, err)
	}
	if !almostEqual(other.Balance("USD"), 7) {
		t.Errorf("user 2 balance = %v, want 7", other.Balance("USD"))
	}
}

func TestPortfolioCodes(t *testing.T) {
	p := Portfolio{Wallets: map[string]Wallet{
		"USD": {}, "BTC": {}, "ETH": {},
	}}
	codes := p.Codes()
	want := []string{"BTC", "ETH", "USD"}
	if len(codes) != len(want) {
		t.Fatalf("codes = %v", codes)
	}
	for i := range want {
		if codes[i] != want[i] {
			t.Fatalf("codes = %v, want %v", codes, want)
		}
	}
}
