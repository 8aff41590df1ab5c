package tradehub

import (
	"fmt"
	"sort"
)

// Wallet is one currency balance inside a portfolio. The balance is never
// negative; the Ledger rejects any debit beyond it before mutating.
type Wallet struct {
	Balance float64 `json:"balance"`
}

// Portfolio is the per-user balance sheet. It is created lazily on the
// first ledger operation, and once any operation has run a cash wallet in
// the base currency is guaranteed to exist.
type Portfolio struct {
	UserID  int               `json:"user_id"`
	Wallets map[string]Wallet `json:"wallets"`
}

// Balance returns the balance of the wallet, zero for a missing wallet.
func (p *Portfolio) Balance(code string) float64 {
	return p.Wallets[code].Balance
}

// HasWallet reports whether a wallet exists for the code.
func (p *Portfolio) HasWallet(code string) bool {
	_, ok := p.Wallets[code]
	return ok
}

// Credit adds amount to the wallet, creating it at zero if absent.
func (p *Portfolio) Credit(code string, amount float64) {
	w := p.Wallets[code]
	w.Balance += amount
	p.Wallets[code] = w
}

// Debit removes amount from the wallet. It fails with InsufficientFunds,
// quoting the available balance in display precision, without mutating.
func (p *Portfolio) Debit(code string, amount float64) error {
	w, ok := p.Wallets[code]
	if !ok || w.Balance < amount {
		return &InsufficientFundsError{
			Available: FormatAmount(code, w.Balance),
			Required:  FormatAmount(code, amount),
			Code:      code,
		}
	}
	w.Balance -= amount
	p.Wallets[code] = w
	return nil
}

// Codes returns the portfolio's wallet codes in alphabetical order.
func (p *Portfolio) Codes() []string {
	out := make([]string, 0, len(p.Wallets))
	for code := range p.Wallets {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// PortfolioStore persists all portfolios in a single JSON file. The Ledger
// is the only component that writes to it.
type PortfolioStore struct {
	path string
}

// NewPortfolioStore returns a store over the given portfolios file.
func NewPortfolioStore(path string) *PortfolioStore {
	return &PortfolioStore{path: path}
}

// Get returns the user's portfolio, reporting absence rather than creating.
func (s *PortfolioStore) Get(userID int) (Portfolio, bool, error) {
	all, err := s.read()
	if err != nil {
		return Portfolio{}, false, err
	}
	for _, p := range all {
		if p.UserID == userID {
			if p.Wallets == nil {
				p.Wallets = map[string]Wallet{}
			}
			return p, true, nil
		}
	}
	return Portfolio{}, false, nil
}

// Save writes the portfolio back, replacing the user's existing record or
// appending a new one. The whole file is replaced atomically.
func (s *PortfolioStore) Save(p Portfolio) error {
	all, err := s.read()
	if err != nil {
		return err
	}
	replaced := false
	for i := range all {
		if all[i].UserID == p.UserID {
			all[i] = p
			replaced = true
			break
		}
	}
	if !replaced {
		all = append(all, p)
	}
	if err := writeJSONAtomic(s.path, all); err != nil {
		return fmt.Errorf("saving portfolio of user %d: %w", p.UserID, err)
	}
	return nil
}

func (s *PortfolioStore) read() ([]Portfolio, error) {
	var all []Portfolio
	if err := readJSON(s.path, &all); err != nil {
		return nil, fmt.Errorf("reading portfolios %q: %w", s.path, err)
	}
	return all, nil
}
