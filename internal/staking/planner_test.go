package staking

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gztensor/btcli/internal/balance"
	"github.com/gztensor/btcli/internal/subnet"
)

func testPools() map[uint16]*subnet.DynamicInfo {
	return map[uint16]*subnet.DynamicInfo{
		0: {
			Netuid:    0,
			TaoIn:     balance.FromTao(10_000, 0),
			IsDynamic: false,
		},
		1: {
			Netuid:    1,
			TaoIn:     balance.FromTao(1000, 0),
			AlphaIn:   balance.FromTao(500, 1),
			AlphaOut:  balance.FromTao(2000, 1),
			IsDynamic: true,
		},
	}
}

func collectWarnings(warnings *[]string) WarnFunc {
	return func(format string, args ...interface{}) {
		*warnings = append(*warnings, fmt.Sprintf(format, args...))
	}
}

func TestPlanUnstakeExplicitAmount(t *testing.T) {
	require := require.New(t)

	positions := []Position{
		{HotkeyName: "hk1", Hotkey: "5AAA", Netuid: 1, Stake: balance.FromTao(100, 1)},
	}
	var warnings []string
	plan, err := PlanUnstake(positions, testPools(), Request{Amount: 10}, nil, collectWarnings(&warnings))
	require.NoError(err)
	require.Empty(warnings)
	require.Len(plan.Ops, 1)

	op := plan.Ops[0]
	require.Equal(uint16(1), op.Netuid)
	require.False(op.Safe)
	require.Equal(int64(10*balance.RaoPerTao), op.Amount.Rao())
	// Price is 2.0; slippage makes the received amount strictly < 20.
	require.Less(op.Received.Tao(), 20.0)
	require.Greater(op.Received.Tao(), 19.0)
	require.Greater(op.SlippageFloat, 0.0)
	require.Equal(op.SlippageFloat, plan.MaxSlippage)
	require.Equal(op.Received.Rao(), plan.TotalReceived.Rao())
}

func TestPlanUnstakeOverBalanceSkipsOnlyThatPair(t *testing.T) {
	require := require.New(t)

	positions := []Position{
		{Hotkey: "5AAA", Netuid: 1, Stake: balance.FromTao(5, 1)},   // 10 > 5: skipped
		{Hotkey: "5BBB", Netuid: 1, Stake: balance.FromTao(100, 1)}, // fine
	}
	var warnings []string
	plan, err := PlanUnstake(positions, testPools(), Request{Amount: 10}, nil, collectWarnings(&warnings))
	require.NoError(err)
	require.Len(plan.Ops, 1)
	require.Equal("5BBB", plan.Ops[0].Hotkey)
	require.Len(warnings, 1)
	require.Contains(warnings[0], "Not enough stake")
}

func TestPlanUnstakeSkipsEmptyAndUnknown(t *testing.T) {
	require := require.New(t)

	positions := []Position{
		{Hotkey: "5AAA", Netuid: 1, Stake: balance.FromRao(0, 1)},
		{Hotkey: "5BBB", Netuid: 99, Stake: balance.FromTao(10, 99)},
	}
	var warnings []string
	plan, err := PlanUnstake(positions, testPools(), Request{Amount: 1}, nil, collectWarnings(&warnings))
	require.NoError(err)
	require.Empty(plan.Ops)
	require.Len(warnings, 2)
}

func TestPlanUnstakeAll(t *testing.T) {
	require := require.New(t)

	positions := []Position{
		{Hotkey: "5AAA", Netuid: 0, Stake: balance.FromTao(5, 0)},
	}
	plan, err := PlanUnstake(positions, testPools(), Request{All: true}, nil, func(string, ...interface{}) {})
	require.NoError(err)
	require.Len(plan.Ops, 1)

	// Root unstakes are exact: 5 TAO in, 5 TAO out, no slippage.
	op := plan.Ops[0]
	require.Equal(int64(5*balance.RaoPerTao), op.Received.Rao())
	require.Equal(0.0, op.SlippageFloat)
	require.Equal("N/A", op.SlippagePct)
}

func TestPlanUnstakePromptAndQuit(t *testing.T) {
	require := require.New(t)

	positions := []Position{
		{Hotkey: "5AAA", Netuid: 1, Stake: balance.FromTao(100, 1)},
		{Hotkey: "5BBB", Netuid: 1, Stake: balance.FromTao(100, 1)},
		{Hotkey: "5CCC", Netuid: 1, Stake: balance.FromTao(100, 1)},
	}
	calls := 0
	prompt := func(p Position) (balance.Balance, bool, error) {
		calls++
		if calls == 2 {
			return balance.Balance{}, true, nil // quit remaining
		}
		return balance.FromTao(1, p.Netuid), false, nil
	}
	plan, err := PlanUnstake(positions, testPools(), Request{}, prompt, func(string, ...interface{}) {})
	require.NoError(err)
	// First position planned, second quit, third never asked.
	require.Len(plan.Ops, 1)
	require.Equal(2, calls)
}

func TestPlanUnstakeSafeMode(t *testing.T) {
	require := require.New(t)

	positions := []Position{
		{Hotkey: "5AAA", Netuid: 1, Stake: balance.FromTao(100, 1)},
		{Hotkey: "5BBB", Netuid: 0, Stake: balance.FromTao(100, 0)},
	}
	req := Request{Amount: 10, Safe: true, RateTolerance: 0.05}
	plan, err := PlanUnstake(positions, testPools(), req, nil, func(string, ...interface{}) {})
	require.NoError(err)
	require.Len(plan.Ops, 2)

	// Dynamic subnet: price 2.0, bound at 2.0*(1-0.05) = 1.9.
	dyn := plan.Ops[0]
	require.True(dyn.Safe)
	require.Equal("1.9", dyn.RateWithTolerance.String())
	require.Equal(uint64(1_900_000_000), dyn.PriceLimit)

	// Root: fixed 1:1.
	root := plan.Ops[1]
	require.True(root.Safe)
	require.Equal("1", root.RateWithTolerance.String())
	require.Equal(uint64(balance.RaoPerTao), root.PriceLimit)
}

func TestPlanUnstakeSafeEmptyPoolKeepsSafeFlag(t *testing.T) {
	require := require.New(t)

	// A drained pool prices at 0, so the limit is 0 too. The operation
	// must still carry the safe marker so submission uses the limit
	// extrinsic rather than silently going unlimited.
	pools := map[uint16]*subnet.DynamicInfo{
		7: {
			Netuid:    7,
			TaoIn:     balance.FromTao(0, 0),
			AlphaIn:   balance.FromTao(0, 7),
			IsDynamic: true,
		},
	}
	positions := []Position{
		{Hotkey: "5AAA", Netuid: 7, Stake: balance.FromTao(10, 7)},
	}
	req := Request{Amount: 1, Safe: true, RateTolerance: 0.05}
	plan, err := PlanUnstake(positions, pools, req, nil, func(string, ...interface{}) {})
	require.NoError(err)
	require.Len(plan.Ops, 1)
	require.True(plan.Ops[0].Safe)
	require.Equal(uint64(0), plan.Ops[0].PriceLimit)
}

func TestPlanStake(t *testing.T) {
	require := require.New(t)

	targets := []Target{
		{Hotkey: "5AAA", Netuid: 1},
		{Hotkey: "5BBB", Netuid: 1},
	}
	free := balance.FromTao(15, 0)

	var warnings []string
	plan, err := PlanStake(targets, testPools(), free, Request{Amount: 10}, collectWarnings(&warnings))
	require.NoError(err)
	// 10 + 10 > 15: the second target no longer fits.
	require.Len(plan.Ops, 1)
	require.Len(warnings, 1)
	require.Contains(warnings[0], "Not enough balance")

	// Staking through the pool receives strictly less than the linear 5
	// alpha for 10 TAO at price 2.
	op := plan.Ops[0]
	require.Equal(uint16(1), op.Received.Netuid())
	require.Less(op.Received.Tao(), 5.0)
	require.Greater(op.Received.Tao(), 4.0)
}

func TestPlanStakeAllSplitsEvenly(t *testing.T) {
	require := require.New(t)

	targets := []Target{
		{Hotkey: "5AAA", Netuid: 1},
		{Hotkey: "5BBB", Netuid: 1},
	}
	plan, err := PlanStake(targets, testPools(), balance.FromTao(10, 0), Request{All: true}, func(string, ...interface{}) {})
	require.NoError(err)
	require.Len(plan.Ops, 2)
	require.Equal(int64(5*balance.RaoPerTao), plan.Ops[0].Amount.Rao())
	require.Equal(int64(5*balance.RaoPerTao), plan.Ops[1].Amount.Rao())
}

func TestPlanStakeSafeBoundIsAboveRate(t *testing.T) {
	require := require.New(t)

	targets := []Target{{Hotkey: "5AAA", Netuid: 1}}
	req := Request{Amount: 1, Safe: true, RateTolerance: 0.1}
	plan, err := PlanStake(targets, testPools(), balance.FromTao(10, 0), req, func(string, ...interface{}) {})
	require.NoError(err)
	require.Len(plan.Ops, 1)
	// Staking bounds the price from above: 2.0*(1+0.1) = 2.2.
	require.Equal("2.2", plan.Ops[0].RateWithTolerance.String())
	require.Equal(uint64(2_200_000_000), plan.Ops[0].PriceLimit)
}
