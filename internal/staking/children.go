package staking

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/gztensor/btcli/internal/chain"
)

// MaxChildkeyTake is the highest childkey take the chain accepts, 18%.
const MaxChildkeyTake = 0.18

// childCooldownBlocks is the delay before a set_children request applies.
const childCooldownBlocks = 7200

// Child is a proposed child hotkey with its proportion as a fraction in
// (0, 1].
type Child struct {
	Hotkey     string
	Proportion float64
}

// u64Max is 2^64-1, the on-chain scale of child proportions.
var u64Max = new(big.Int).SetUint64(^uint64(0))

// ProportionToU64 converts a fractional proportion to the chain's u64 scale.
// Values outside [0, 1] are clamped.
func ProportionToU64(p float64) uint64 {
	if p <= 0 {
		return 0
	}
	if p >= 1 {
		return ^uint64(0)
	}
	scaled := decimal.NewFromFloat(p).Mul(decimal.NewFromBigInt(u64Max, 0)).Floor()
	return scaled.BigInt().Uint64()
}

// U64ToProportion converts a raw on-chain proportion back to a fraction.
func U64ToProportion(p uint64) float64 {
	f, _ := decimal.NewFromUint64(p).Div(decimal.NewFromBigInt(u64Max, 0)).Float64()
	return f
}

// TakeToU16 converts a fractional childkey take to the chain's u16 scale,
// rejecting values outside [0, MaxChildkeyTake].
func TakeToU16(take float64) (uint16, error) {
	if take < 0 || take > MaxChildkeyTake {
		return 0, fmt.Errorf("invalid take value %g: must be between 0 and %g", take, MaxChildkeyTake)
	}
	return uint16(take * 65535), nil
}

// U16ToTake converts a raw on-chain take back to a fraction.
func U16ToTake(take uint16) float64 {
	return float64(take) / 65535
}

// PrepareChildren validates proposed children and converts their proportions
// to the u64 wire scale, normalizing so the total never exceeds the u64
// range. When rounding pushes the total over, the excess is taken from the
// largest child; an excess above 1% of the range means the input itself was
// bad and is rejected.
func PrepareChildren(children []Child) ([]chain.ChildHotkey, error) {
	var totalProposed float64
	for _, c := range children {
		if c.Proportion <= 0 {
			return nil, fmt.Errorf("invalid proportion %g for child %s: must be greater than 0", c.Proportion, c.Hotkey)
		}
		totalProposed += c.Proportion
	}
	if totalProposed > 1 {
		return nil, fmt.Errorf("invalid proportions: sum %g exceeds 1", totalProposed)
	}

	out := make([]chain.ChildHotkey, 0, len(children))
	total := new(big.Int)
	largest := 0
	for i, c := range children {
		p := ProportionToU64(c.Proportion)
		out = append(out, chain.ChildHotkey{Hotkey: c.Hotkey, Proportion: p})
		total.Add(total, new(big.Int).SetUint64(p))
		if p > out[largest].Proportion {
			largest = i
		}
	}

	if total.Cmp(u64Max) > 0 {
		excess := new(big.Int).Sub(total, u64Max)
		limit := new(big.Int).Div(u64Max, big.NewInt(100))
		if excess.Cmp(limit) > 0 {
			return nil, fmt.Errorf("proportions exceed the representable range by too much to normalize")
		}
		out[largest].Proportion -= excess.Uint64()
	}
	return out, nil
}

// ChildkeyCompletionBlock estimates the block at which a set_children request
// takes effect: the first epoch boundary after the cooldown expires.
func ChildkeyCompletionBlock(blockNumber, blocksSinceLastStep uint64, tempo uint16) uint64 {
	cooldown := int64(blockNumber) + childCooldownBlocks
	nextTempo := int64(blockNumber) + int64(tempo) - int64(blocksSinceLastStep)
	period := int64(tempo) + 1
	offset := ((cooldown-nextTempo)%period + period) % period
	return uint64(offset + cooldown)
}
