// Package staking plans stake and unstake batches: it resolves user filters
// against current chain positions into a fully-specified list of operations,
// validating each one independently. A bad position is reported and skipped;
// it never aborts the rest of the batch.
package staking

import (
	"github.com/shopspring/decimal"

	"github.com/gztensor/btcli/internal/balance"
	"github.com/gztensor/btcli/internal/subnet"
)

// Position is an existing stake on a (hotkey, netuid) pair.
type Position struct {
	HotkeyName string
	Hotkey     string
	Netuid     uint16
	Stake      balance.Balance
}

// DisplayName returns the hotkey's name, falling back to its address.
func (p Position) DisplayName() string {
	if p.HotkeyName != "" {
		return p.HotkeyName
	}
	return p.Hotkey
}

// Request describes how amounts and safety limits apply to a batch.
type Request struct {
	// Amount is the TAO-scale amount per position. Zero means ask the
	// prompt callback per position.
	Amount float64
	// All stakes/unstakes the full position balance without prompting.
	All bool
	// Safe enables limit-price extrinsics with the given tolerance.
	Safe          bool
	RateTolerance float64
	AllowPartial  bool
}

// Operation is one fully-resolved extrinsic to submit.
type Operation struct {
	Netuid       uint16
	HotkeyName   string
	Hotkey       string
	Amount       balance.Balance
	CurrentStake balance.Balance
	Pool         *subnet.DynamicInfo

	Received      balance.Balance
	SlippagePct   string
	SlippageFloat float64

	// Safe-mode fields. Safe selects the limit-price extrinsic; PriceLimit
	// is the rao-scale price passed to it and RateWithTolerance the same
	// bound at TAO scale for display. PriceLimit can legitimately be zero
	// (empty pool), so callers must branch on Safe, not on the limit.
	Safe              bool
	PriceLimit        uint64
	RateWithTolerance decimal.Decimal
}

// Plan is an ordered batch of operations plus its aggregate display values.
type Plan struct {
	Ops           []Operation
	TotalReceived balance.Balance
	MaxSlippage   float64
}

// AmountPrompt asks the user how much to move for a position. Returning
// quit=true cancels all remaining positions but keeps the plan built so far.
type AmountPrompt func(p Position) (amount balance.Balance, quit bool, err error)

// WarnFunc reports a skipped position to the user.
type WarnFunc func(format string, args ...interface{})

// PlanUnstake resolves positions into unstake operations. Positions with no
// stake, no pool snapshot, or a requested amount above the current balance
// are reported via warn and skipped without affecting the rest.
func PlanUnstake(positions []Position, pools map[uint16]*subnet.DynamicInfo, req Request, prompt AmountPrompt, warn WarnFunc) (*Plan, error) {
	plan := &Plan{TotalReceived: balance.FromRao(0, 0)}

	for _, pos := range positions {
		pool, ok := pools[pos.Netuid]
		if !ok {
			warn("No subnet info for netuid %d; skipping %s", pos.Netuid, pos.DisplayName())
			continue
		}
		if pos.Stake.IsZero() {
			warn("No stake to unstake from %s on netuid %d", pos.DisplayName(), pos.Netuid)
			continue
		}

		var amount balance.Balance
		switch {
		case req.All:
			amount = pos.Stake
		case req.Amount > 0:
			amount = balance.FromTao(req.Amount, pos.Netuid)
		default:
			if prompt == nil {
				amount = pos.Stake
				break
			}
			a, quit, err := prompt(pos)
			if err != nil {
				return nil, err
			}
			if quit {
				return plan, nil
			}
			amount = a.WithUnit(pos.Netuid)
		}

		if amount.Cmp(pos.Stake) > 0 {
			warn("Not enough stake to remove: balance %s < requested %s on netuid %d",
				pos.Stake, amount, pos.Netuid)
			continue
		}

		op := Operation{
			Netuid:       pos.Netuid,
			HotkeyName:   pos.DisplayName(),
			Hotkey:       pos.Hotkey,
			Amount:       amount,
			CurrentStake: pos.Stake,
			Pool:         pool,
		}
		op.Received, op.SlippagePct, op.SlippageFloat = subnet.UnstakeSlippage(pool, amount)
		if req.Safe {
			op.Safe = true
			op.RateWithTolerance, op.PriceLimit = toleranceBound(pool, req.RateTolerance, false)
		}

		plan.Ops = append(plan.Ops, op)
		plan.TotalReceived, _ = plan.TotalReceived.Add(op.Received)
		if op.SlippageFloat > plan.MaxSlippage {
			plan.MaxSlippage = op.SlippageFloat
		}
	}
	return plan, nil
}

// Target is a (hotkey, netuid) pair to stake to.
type Target struct {
	HotkeyName string
	Hotkey     string
	Netuid     uint16
}

// PlanStake resolves targets into stake operations against the wallet's free
// balance. Each operation's amount is checked against the balance remaining
// after the operations planned before it.
func PlanStake(targets []Target, pools map[uint16]*subnet.DynamicInfo, free balance.Balance, req Request, warn WarnFunc) (*Plan, error) {
	plan := &Plan{TotalReceived: balance.FromRao(0, 0)}
	remaining := free

	var perTarget balance.Balance
	if req.All {
		if len(targets) == 0 {
			return plan, nil
		}
		perTarget = balance.FromRao(free.Rao()/int64(len(targets)), 0)
	} else {
		perTarget = balance.FromTao(req.Amount, 0)
	}

	for _, tgt := range targets {
		pool, ok := pools[tgt.Netuid]
		if !ok {
			warn("No subnet info for netuid %d; skipping %s", tgt.Netuid, tgt.Hotkey)
			continue
		}
		if perTarget.Cmp(remaining) > 0 {
			warn("Not enough balance to stake %s to %s on netuid %d (free: %s)",
				perTarget, tgt.Hotkey, tgt.Netuid, remaining)
			continue
		}

		op := Operation{
			Netuid:     tgt.Netuid,
			HotkeyName: tgt.HotkeyName,
			Hotkey:     tgt.Hotkey,
			Amount:     perTarget,
			Pool:       pool,
		}
		op.Received, op.SlippagePct, op.SlippageFloat = subnet.StakeSlippage(pool, perTarget)
		if req.Safe {
			op.Safe = true
			op.RateWithTolerance, op.PriceLimit = toleranceBound(pool, req.RateTolerance, true)
		}

		plan.Ops = append(plan.Ops, op)
		remaining, _ = remaining.Sub(perTarget)
		if op.SlippageFloat > plan.MaxSlippage {
			plan.MaxSlippage = op.SlippageFloat
		}
	}
	return plan, nil
}

// toleranceBound computes the limit price passed to the safe extrinsics.
// Unstaking bounds the price from below (1-tol), staking from above (1+tol).
// Non-dynamic subnets are fixed at a price of exactly 1.
func toleranceBound(pool *subnet.DynamicInfo, tolerance float64, up bool) (decimal.Decimal, uint64) {
	if !pool.IsDynamic {
		return decimal.NewFromInt(1), balance.RaoPerTao
	}
	factor := decimal.NewFromFloat(1 - tolerance)
	if up {
		factor = decimal.NewFromFloat(1 + tolerance)
	}
	rate := pool.Price().Mul(factor)
	limit := rate.Mul(decimal.NewFromInt(balance.RaoPerTao)).Round(0).IntPart()
	if limit < 0 {
		limit = 0
	}
	return rate, uint64(limit)
}
