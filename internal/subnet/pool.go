// Package subnet models a subnet's liquidity pool and the conversions
// between the subnet's alpha token and TAO. Dynamic subnets price alpha by
// the reserve ratio of a constant-product pool; the root subnet (netuid 0)
// is fixed at 1:1 with no slippage.
package subnet

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/gztensor/btcli/internal/balance"
)

// DynamicInfo is a snapshot of a subnet's pool state, read fresh from chain
// per command invocation.
type DynamicInfo struct {
	Netuid       uint16
	SubnetName   string
	Symbol       string
	OwnerHotkey  string
	OwnerColdkey string
	Tempo        uint16

	// BlocksSinceLastStep counts blocks since the subnet's last epoch step.
	BlocksSinceLastStep uint64

	// Pool reserves. TaoIn and AlphaIn form the swap pool; AlphaOut is the
	// outstanding alpha issuance (total stake) in the subnet.
	TaoIn    balance.Balance
	AlphaIn  balance.Balance
	AlphaOut balance.Balance

	// EmissionPerBlock is the TAO emission into this subnet per block.
	EmissionPerBlock balance.Balance

	// IsDynamic is false only for the root subnet, which prices 1:1.
	IsDynamic bool
}

// Name returns the subnet's display name, falling back to the unit symbol.
func (d *DynamicInfo) Name() string {
	if d.SubnetName != "" {
		return d.SubnetName
	}
	return balance.UnitSymbol(d.Netuid)
}

// Price returns the TAO price of one alpha token, defined as the reserve
// ratio tao_in/alpha_in. Non-dynamic subnets price at exactly 1; an empty
// pool prices at 0.
func (d *DynamicInfo) Price() decimal.Decimal {
	if !d.IsDynamic {
		return decimal.NewFromInt(1)
	}
	if d.AlphaIn.IsZero() {
		return decimal.Zero
	}
	return d.TaoIn.Decimal().Div(d.AlphaIn.Decimal())
}

// AlphaToTao converts an alpha amount to TAO linearly at the current price,
// i.e. the no-slippage exchange value.
func (d *DynamicInfo) AlphaToTao(alpha balance.Balance) balance.Balance {
	return balance.FromDecimal(alpha.Decimal().Mul(d.Price()), 0)
}

// TaoToAlpha converts a TAO amount to alpha linearly at the current price.
func (d *DynamicInfo) TaoToAlpha(tao balance.Balance) balance.Balance {
	price := d.Price()
	if price.IsZero() {
		return balance.FromRao(0, d.Netuid)
	}
	return balance.FromDecimal(tao.Decimal().Div(price), d.Netuid)
}

// SwapResult is the outcome of executing a swap against the pool.
type SwapResult struct {
	// Received is the amount actually received after the swap moves the
	// reserve ratio.
	Received balance.Balance
	// Slippage is the difference between the no-slippage value and Received.
	Slippage balance.Balance
	// SlippagePct is the slippage as a percentage of the no-slippage value.
	SlippagePct float64
}

// AlphaToTaoWithSlippage executes a constant-product swap of alpha into the
// pool and returns the TAO that comes out. For non-dynamic subnets the swap
// is 1:1 with zero slippage. The result is a pure function of the snapshot;
// the pool itself is not mutated.
func (d *DynamicInfo) AlphaToTaoWithSlippage(alpha balance.Balance) SwapResult {
	if !d.IsDynamic {
		return SwapResult{Received: alpha.WithUnit(0)}
	}
	if d.TaoIn.IsZero() || d.AlphaIn.IsZero() {
		return SwapResult{Received: balance.FromRao(0, 0), Slippage: balance.FromRao(0, 0)}
	}

	taoIn := d.TaoIn.Decimal()
	alphaIn := d.AlphaIn.Decimal()
	k := taoIn.Mul(alphaIn)

	newAlphaIn := alphaIn.Add(alpha.Decimal())
	newTaoIn := k.Div(newAlphaIn)
	received := taoIn.Sub(newTaoIn)

	ideal := alpha.Decimal().Mul(d.Price())
	slippage := ideal.Sub(received)

	return SwapResult{
		Received:    balance.FromDecimal(received, 0),
		Slippage:    balance.FromDecimal(slippage, 0),
		SlippagePct: slippagePct(slippage, received),
	}
}

// TaoToAlphaWithSlippage executes a constant-product swap of TAO into the
// pool and returns the alpha that comes out.
func (d *DynamicInfo) TaoToAlphaWithSlippage(tao balance.Balance) SwapResult {
	if !d.IsDynamic {
		return SwapResult{Received: tao.WithUnit(d.Netuid)}
	}
	if d.TaoIn.IsZero() || d.AlphaIn.IsZero() {
		return SwapResult{
			Received: balance.FromRao(0, d.Netuid),
			Slippage: balance.FromRao(0, d.Netuid),
		}
	}

	taoIn := d.TaoIn.Decimal()
	alphaIn := d.AlphaIn.Decimal()
	k := taoIn.Mul(alphaIn)

	newTaoIn := taoIn.Add(tao.Decimal())
	newAlphaIn := k.Div(newTaoIn)
	received := alphaIn.Sub(newAlphaIn)

	ideal := tao.Decimal().Div(d.Price())
	slippage := ideal.Sub(received)

	return SwapResult{
		Received:    balance.FromDecimal(received, d.Netuid),
		Slippage:    balance.FromDecimal(slippage, d.Netuid),
		SlippagePct: slippagePct(slippage, received),
	}
}

// OwnershipTao returns the TAO-reserve share backing the given alpha
// position: (alpha / alpha_out) * tao_in. A subnet with zero issuance
// degenerates to zero rather than dividing by zero.
func (d *DynamicInfo) OwnershipTao(alpha balance.Balance) balance.Balance {
	issuance := d.AlphaOut
	if !d.IsDynamic {
		issuance = d.TaoIn
	}
	if issuance.IsZero() {
		return balance.FromRao(0, 0)
	}
	share := alpha.Decimal().Div(issuance.Decimal()).Mul(d.TaoIn.Decimal())
	return balance.FromDecimal(share, 0)
}

// slippagePct computes 100 * slippage / (slippage + received), guarding the
// degenerate zero-denominator case.
func slippagePct(slippage, received decimal.Decimal) float64 {
	denom := slippage.Add(received)
	if denom.IsZero() {
		return 0
	}
	pct, _ := slippage.Div(denom).Mul(decimal.NewFromInt(100)).Float64()
	return pct
}

// UnstakeSlippage computes the received TAO and slippage display values for
// unstaking the given alpha amount. For non-dynamic subnets the percentage
// string is "N/A" and the float is exactly zero, matching the fixed 1:1
// rate.
func UnstakeSlippage(d *DynamicInfo, amount balance.Balance) (balance.Balance, string, float64) {
	res := d.AlphaToTaoWithSlippage(amount)
	if !d.IsDynamic {
		return res.Received, "N/A", 0
	}
	return res.Received, fmt.Sprintf("%.4f %%", res.SlippagePct), res.SlippagePct
}

// StakeSlippage is the staking-direction analog of UnstakeSlippage.
func StakeSlippage(d *DynamicInfo, amount balance.Balance) (balance.Balance, string, float64) {
	res := d.TaoToAlphaWithSlippage(amount)
	if !d.IsDynamic {
		return res.Received, "N/A", 0
	}
	return res.Received, fmt.Sprintf("%.4f %%", res.SlippagePct), res.SlippagePct
}
