package common

import (
	"fmt"
	"math/big"
	"regexp"
	"strings"
)

// EtherDecimals is the base-unit scale of the chain's native currency.
// INK token decimals are read from the contract at runtime, never assumed.
const EtherDecimals = 18

var addressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// ZeroAddress is the EVM zero address in normalized form.
const ZeroAddress = "0x0000000000000000000000000000000000000000"

// FormatUnits converts base units to a decimal string without float precision loss.
// Example: FormatUnits(1500000000000000000, 18) = "1.5"
func FormatUnits(value *big.Int, decimals uint8) string {
	if value == nil {
		return "0"
	}
	s := value.String()

	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}

	// Pad with leading zeros if needed
	for len(s) <= int(decimals) {
		s = "0" + s
	}

	// Insert decimal point, trim trailing zeros in the fraction
	pos := len(s) - int(decimals)
	whole, frac := s[:pos], s[pos:]
	frac = strings.TrimRight(frac, "0")

	out := whole
	if frac != "" {
		out = whole + "." + frac
	}
	if neg {
		out = "-" + out
	}
	return out
}

// ParseUnits converts a decimal string to base units without float precision loss.
// Example: ParseUnits("1.5", 18) = 1500000000000000000
func ParseUnits(s string, decimals uint8) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty amount")
	}
	if strings.HasPrefix(s, "-") {
		return nil, fmt.Errorf("negative amount %q", s)
	}

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return nil, fmt.Errorf("invalid decimal format %q", s)
	}

	whole := parts[0]
	frac := ""
	if len(parts) == 2 {
		frac = parts[1]
	}
	if whole == "" && frac == "" {
		return nil, fmt.Errorf("invalid decimal format %q", s)
	}
	if whole == "" {
		whole = "0"
	}

	// Pad or truncate fractional part to exact decimals
	if len(frac) < int(decimals) {
		frac += strings.Repeat("0", int(decimals)-len(frac))
	} else if len(frac) > int(decimals) {
		frac = frac[:decimals]
	}

	combined := whole + frac
	n, ok := new(big.Int).SetString(combined, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", s)
	}
	return n, nil
}

// CompareAmounts compares two decimal string amounts at the given scale.
// Returns -1 if a < b, 0 if a == b, 1 if a > b, and an error if parsing fails.
func CompareAmounts(a, b string, decimals uint8) (int, error) {
	aVal, err := ParseUnits(a, decimals)
	if err != nil {
		return 0, fmt.Errorf("failed to parse amount %q: %w", a, err)
	}

	bVal, err := ParseUnits(b, decimals)
	if err != nil {
		return 0, fmt.Errorf("failed to parse amount %q: %w", b, err)
	}

	return aVal.Cmp(bVal), nil
}

// NormalizeAddress lowercases a hex address after validating its shape.
// Every membership or ownership comparison must go through this first.
func NormalizeAddress(addr string) (string, error) {
	addr = strings.TrimSpace(addr)
	if !addressPattern.MatchString(addr) {
		return "", fmt.Errorf("invalid address %q", addr)
	}
	return strings.ToLower(addr), nil
}

// SameAddress reports whether two hex addresses refer to the same account,
// ignoring checksum casing. Malformed input never matches.
func SameAddress(a, b string) bool {
	na, err := NormalizeAddress(a)
	if err != nil {
		return false
	}
	nb, err := NormalizeAddress(b)
	if err != nil {
		return false
	}
	return na == nb
}

// IsZeroAddress reports whether addr is the zero address. A default (unset)
// participant record carries the zero address as its player.
func IsZeroAddress(addr string) bool {
	return SameAddress(addr, ZeroAddress)
}
