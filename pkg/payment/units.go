package payment

import (
	"fmt"
	"math/big"
	"strings"
)

// Amounts are always integers in the token's smallest unit. FormatUnits and
// ParseUnits are presentation-only conversions using the token's fixed
// decimal exponent; no floating point is involved anywhere.

// FormatUnits renders a smallest-unit amount as a human-readable decimal
// string, e.g. 150000 with 6 decimals -> "0.15".
func FormatUnits(amount *big.Int, decimals int) string {
	if decimals <= 0 {
		return amount.String()
	}

	exp := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	quo, rem := new(big.Int).QuoRem(amount, exp, new(big.Int))

	if rem.Sign() == 0 {
		return quo.String()
	}

	frac := strings.TrimRight(fmt.Sprintf("%0*s", decimals, rem.Abs(rem).String()), "0")
	return fmt.Sprintf("%s.%s", quo.String(), frac)
}

// ParseUnits converts a decimal string into a smallest-unit amount,
// e.g. "0.15" with 6 decimals -> 150000.
func ParseUnits(s string, decimals int) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty amount")
	}

	whole, frac, _ := strings.Cut(s, ".")
	if len(frac) > decimals {
		return nil, fmt.Errorf("amount %q has more than %d decimal places", s, decimals)
	}
	frac += strings.Repeat("0", decimals-len(frac))

	digits := whole + frac
	amount, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", s)
	}
	return amount, nil
}
