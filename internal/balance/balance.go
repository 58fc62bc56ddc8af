// Package balance implements fixed-point token amounts denominated in rao,
// the base unit of TAO (1 TAO = 10^9 rao). Every amount carries the netuid
// of the token it is denominated in: netuid 0 is TAO itself, any other
// netuid refers to that subnet's alpha token. Conversions between units go
// through the subnet pool model, never through plain arithmetic.
package balance

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// RaoPerTao is the number of rao in one TAO.
const RaoPerTao = 1_000_000_000

// ErrUnitMismatch is returned when arithmetic is attempted on balances
// denominated in different units.
var ErrUnitMismatch = errors.New("balance: mismatched units")

// Balance is a fixed-point amount of rao tagged with the netuid whose token
// it is denominated in. The zero value is zero TAO.
type Balance struct {
	rao    int64
	netuid uint16
}

// FromRao constructs a balance from a raw rao amount.
func FromRao(rao int64, netuid uint16) Balance {
	return Balance{rao: rao, netuid: netuid}
}

// FromTao constructs a balance from a floating-point TAO-scale amount.
func FromTao(tao float64, netuid uint16) Balance {
	d := decimal.NewFromFloat(tao).Mul(decimal.NewFromInt(RaoPerTao))
	return Balance{rao: d.Round(0).IntPart(), netuid: netuid}
}

// FromDecimal constructs a balance from a TAO-scale decimal amount.
func FromDecimal(tao decimal.Decimal, netuid uint16) Balance {
	return Balance{
		rao:    tao.Mul(decimal.NewFromInt(RaoPerTao)).Round(0).IntPart(),
		netuid: netuid,
	}
}

// Rao returns the raw rao amount.
func (b Balance) Rao() int64 { return b.rao }

// Netuid returns the netuid of the unit this balance is denominated in.
func (b Balance) Netuid() uint16 { return b.netuid }

// Tao returns the amount at TAO scale as a float. Use Decimal for exact
// arithmetic; Tao is for display and sorting only.
func (b Balance) Tao() float64 {
	f, _ := b.Decimal().Float64()
	return f
}

// Decimal returns the amount at TAO scale as an exact decimal.
func (b Balance) Decimal() decimal.Decimal {
	return decimal.New(b.rao, -9)
}

// IsZero reports whether the amount is zero.
func (b Balance) IsZero() bool { return b.rao == 0 }

// WithUnit returns a copy of the balance re-tagged with the given netuid.
// The numeric amount is unchanged; this is the unit-cast used when the pool
// model has already performed the conversion.
func (b Balance) WithUnit(netuid uint16) Balance {
	b.netuid = netuid
	return b
}

// Add returns b + other. Fails if the units differ.
func (b Balance) Add(other Balance) (Balance, error) {
	if b.netuid != other.netuid {
		return Balance{}, fmt.Errorf("%w: %s vs %s", ErrUnitMismatch, UnitSymbol(b.netuid), UnitSymbol(other.netuid))
	}
	return Balance{rao: b.rao + other.rao, netuid: b.netuid}, nil
}

// Sub returns b - other. Fails if the units differ.
func (b Balance) Sub(other Balance) (Balance, error) {
	if b.netuid != other.netuid {
		return Balance{}, fmt.Errorf("%w: %s vs %s", ErrUnitMismatch, UnitSymbol(b.netuid), UnitSymbol(other.netuid))
	}
	return Balance{rao: b.rao - other.rao, netuid: b.netuid}, nil
}

// Cmp compares the numeric amounts, ignoring units. Returns -1, 0 or 1.
func (b Balance) Cmp(other Balance) int {
	switch {
	case b.rao < other.rao:
		return -1
	case b.rao > other.rao:
		return 1
	default:
		return 0
	}
}

// String renders the balance with its unit symbol and four decimal places,
// e.g. "τ 1,234.5678" for TAO or "12.3456 β" for subnet 2 alpha. TAO puts
// the symbol first, alpha tokens put it last, following chain convention.
func (b Balance) String() string {
	amount := formatGrouped(b.Decimal(), 4)
	if b.netuid == 0 {
		return fmt.Sprintf("%s %s", UnitSymbol(0), amount)
	}
	return fmt.Sprintf("%s %s", amount, UnitSymbol(b.netuid))
}

// greekUnits are the per-subnet alpha token symbols, indexed by
// (netuid-1) mod len. Index 0 of the currency system overall is τ (TAO).
var greekUnits = []string{
	"α", "β", "γ", "δ", "ε", "ζ", "η", "θ", "ι", "κ", "λ", "μ",
	"ν", "ξ", "ο", "π", "ρ", "σ", "υ", "φ", "χ", "ψ", "ω",
}

// UnitSymbol returns the display symbol for the given netuid's token.
func UnitSymbol(netuid uint16) string {
	if netuid == 0 {
		return "τ"
	}
	return greekUnits[int(netuid-1)%len(greekUnits)]
}

// Millify renders a TAO-scale value compactly: 999.99 stays plain, larger
// magnitudes collapse to k/m/b/t suffixes with two decimals.
func Millify(v float64) string {
	abs := v
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs >= 1e12:
		return fmt.Sprintf("%.2ft", v/1e12)
	case abs >= 1e9:
		return fmt.Sprintf("%.2fb", v/1e9)
	case abs >= 1e6:
		return fmt.Sprintf("%.2fm", v/1e6)
	case abs >= 1e3:
		return fmt.Sprintf("%.2fk", v/1e3)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}

// formatGrouped renders d with the given number of decimal places and
// thousands separators in the integer part.
func formatGrouped(d decimal.Decimal, places int32) string {
	s := d.StringFixed(places)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	var sb strings.Builder
	if neg {
		sb.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(r)
	}
	if frac != "" {
		sb.WriteByte('.')
		sb.WriteString(frac)
	}
	return sb.String()
}
