package tradehub

import (
	"fmt"
	"sort"
	"strings"
)

// Currency kinds.
const (
	KindFiat   = "fiat"
	KindCrypto = "crypto"
)

// Currency is one entry of the currency registry.
//
// The registry is static: the set of supported currencies is part of the
// build, not of the persisted state.
type Currency interface {
	Code() string
	Name() string
	Kind() string
	// DisplayPrecision is the number of decimals used to render amounts of
	// this currency. It is a display rule only and never affects stored or
	// computed values.
	DisplayPrecision() int
	// DisplayInfo returns a one-line human description of the currency.
	DisplayInfo() string
}

// Fiat is a state-issued currency.
type Fiat struct {
	name           string
	code           string
	issuingCountry string
}

func (f Fiat) Code() string          { return f.code }
func (f Fiat) Name() string          { return f.name }
func (f Fiat) Kind() string          { return KindFiat }
func (f Fiat) DisplayPrecision() int { return 2 }
func (f Fiat) DisplayInfo() string {
	return fmt.Sprintf("[FIAT] %s - %s (Issuing: %s)", f.code, f.name, f.issuingCountry)
}

// Crypto is a cryptocurrency.
type Crypto struct {
	name      string
	code      string
	algorithm string
	marketCap float64
}

func (c Crypto) Code() string          { return c.code }
func (c Crypto) Name() string          { return c.name }
func (c Crypto) Kind() string          { return KindCrypto }
func (c Crypto) DisplayPrecision() int { return 4 }
func (c Crypto) DisplayInfo() string {
	return fmt.Sprintf("[CRYPTO] %s - %s (Algo: %s, MCAP: %.2e)", c.code, c.name, c.algorithm, c.marketCap)
}

var registry = map[string]Currency{
	"USD": Fiat{name: "US Dollar", code: "USD", issuingCountry: "United States"},
	"EUR": Fiat{name: "Euro", code: "EUR", issuingCountry: "Eurozone"},
	"GBP": Fiat{name: "Pound Sterling", code: "GBP", issuingCountry: "United Kingdom"},
	"RUB": Fiat{name: "Russian Ruble", code: "RUB", issuingCountry: "Russia"},
	"BTC": Crypto{name: "Bitcoin", code: "BTC", algorithm: "SHA-256", marketCap: 1.12e12},
	"ETH": Crypto{name: "Ethereum", code: "ETH", algorithm: "Ethash", marketCap: 3.00e11},
	"SOL": Crypto{name: "Solana", code: "SOL", algorithm: "PoH", marketCap: 8.00e10},
}

// NormalizeCode uppercases and trims a currency code, and validates its
// shape: 2 to 5 alphanumeric characters, no embedded whitespace.
func NormalizeCode(code string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(code))
	if len(s) < 2 || len(s) > 5 {
		return "", &CurrencyNotFoundError{Code: code}
	}
	for _, r := range s {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return "", &CurrencyNotFoundError{Code: code}
		}
	}
	return s, nil
}

// Resolve returns the registry entry for code, normalizing its casing first.
func Resolve(code string) (Currency, error) {
	s, err := NormalizeCode(code)
	if err != nil {
		return nil, err
	}
	cur, ok := registry[s]
	if !ok {
		return nil, &CurrencyNotFoundError{Code: s}
	}
	return cur, nil
}

// Codes returns all registered currency codes in alphabetical order.
func Codes() []string {
	out := make([]string, 0, len(registry))
	for code := range registry {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// CryptoCodes returns the registered crypto currency codes in alphabetical
// order. This is also the "high precision" display set.
func CryptoCodes() []string {
	var out []string
	for code, cur := range registry {
		if cur.Kind() == KindCrypto {
			out = append(out, code)
		}
	}
	sort.Strings(out)
	return out
}
