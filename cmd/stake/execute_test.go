package stake

import (
	"context"
	"errors"
	"testing"

	"github.com/centrifuge/go-substrate-rpc-client/v4/signature"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/stretchr/testify/require"

	"github.com/gztensor/btcli/internal/balance"
	"github.com/gztensor/btcli/internal/chain"
	"github.com/gztensor/btcli/internal/staking"
	"github.com/gztensor/btcli/internal/subnet"
)

// submittedCall records one extrinsic submission made against fakeClient.
type submittedCall struct {
	fn     string
	netuid uint16
}

// fakeClient satisfies chain.Client for submission tests: queries return
// zero values and submissions are recorded, failing where submitErr says so.
type fakeClient struct {
	submitErr map[uint16]error
	calls     []submittedCall
}

var _ chain.Client = (*fakeClient)(nil)

func (f *fakeClient) submit(fn string, netuid uint16) error {
	f.calls = append(f.calls, submittedCall{fn: fn, netuid: netuid})
	return f.submitErr[netuid]
}

func (f *fakeClient) Network() string                                         { return "test" }
func (f *fakeClient) ChainHead(context.Context) (types.Hash, error)           { return types.Hash{}, nil }
func (f *fakeClient) BlockNumber(context.Context, types.Hash) (uint64, error) { return 0, nil }
func (f *fakeClient) Balance(context.Context, string, types.Hash) (balance.Balance, error) {
	return balance.FromRao(0, 0), nil
}
func (f *fakeClient) StakeForColdkey(context.Context, string, types.Hash) ([]chain.StakeInfo, error) {
	return nil, nil
}
func (f *fakeClient) Stake(_ context.Context, _, _ string, netuid uint16, _ types.Hash) (balance.Balance, error) {
	return balance.FromRao(0, netuid), nil
}
func (f *fakeClient) AllSubnets(context.Context, types.Hash) ([]*subnet.DynamicInfo, error) {
	return nil, nil
}
func (f *fakeClient) DelegateIdentities(context.Context, types.Hash) (chain.IdentityMap, error) {
	return chain.IdentityMap{}, nil
}
func (f *fakeClient) MinStakeThreshold(context.Context, types.Hash) (balance.Balance, error) {
	return balance.FromRao(0, 0), nil
}
func (f *fakeClient) Children(context.Context, string, uint16, types.Hash) ([]chain.ChildHotkey, error) {
	return nil, nil
}
func (f *fakeClient) ChildkeyTake(context.Context, string, uint16, types.Hash) (uint16, error) {
	return 0, nil
}
func (f *fakeClient) SubnetLockCost(context.Context) (balance.Balance, error) {
	return balance.FromRao(0, 0), nil
}
func (f *fakeClient) AddStake(_ context.Context, _ signature.KeyringPair, _ string, netuid uint16, _ balance.Balance) error {
	return f.submit("add_stake", netuid)
}
func (f *fakeClient) AddStakeLimit(_ context.Context, _ signature.KeyringPair, _ string, netuid uint16, _ balance.Balance, _ uint64, _ bool) error {
	return f.submit("add_stake_limit", netuid)
}
func (f *fakeClient) RemoveStake(_ context.Context, _ signature.KeyringPair, _ string, netuid uint16, _ balance.Balance) error {
	return f.submit("remove_stake", netuid)
}
func (f *fakeClient) RemoveStakeLimit(_ context.Context, _ signature.KeyringPair, _ string, netuid uint16, _ balance.Balance, _ uint64, _ bool) error {
	return f.submit("remove_stake_limit", netuid)
}
func (f *fakeClient) UnstakeAll(context.Context, signature.KeyringPair, string, bool) error {
	return f.submit("unstake_all", 0)
}
func (f *fakeClient) SetChildren(_ context.Context, _ signature.KeyringPair, _ string, netuid uint16, _ []chain.ChildHotkey) error {
	return f.submit("set_children", netuid)
}
func (f *fakeClient) SetChildkeyTake(_ context.Context, _ signature.KeyringPair, _ string, netuid uint16, _ uint16) error {
	return f.submit("set_childkey_take", netuid)
}
func (f *fakeClient) RegisterNetwork(context.Context, signature.KeyringPair, string) error {
	return f.submit("register_network", 0)
}
func (f *fakeClient) BurnedRegister(_ context.Context, _ signature.KeyringPair, _ string, netuid uint16) error {
	return f.submit("burned_register", netuid)
}
func (f *fakeClient) Close() {}

func unstakePlan(netuids ...uint16) *staking.Plan {
	plan := &staking.Plan{}
	for _, n := range netuids {
		plan.Ops = append(plan.Ops, staking.Operation{
			Netuid: n,
			Hotkey: hotkeyA,
			Amount: balance.FromTao(1, n),
		})
	}
	return plan
}

func TestExecutePlanContinuesAfterFailure(t *testing.T) {
	require := require.New(t)

	client := &fakeClient{submitErr: map[uint16]error{2: errors.New("boom")}}
	plan := unstakePlan(1, 2, 3)

	executePlan(context.Background(), client, signature.KeyringPair{}, hotkeyB, plan, true, false)

	// The failure on netuid 2 must not stop netuid 3 from being submitted.
	require.Equal([]submittedCall{
		{fn: "remove_stake", netuid: 1},
		{fn: "remove_stake", netuid: 2},
		{fn: "remove_stake", netuid: 3},
	}, client.calls)
}

func TestExecutePlanContinuesAfterToleranceRejection(t *testing.T) {
	require := require.New(t)

	client := &fakeClient{submitErr: map[uint16]error{
		1: &chain.SubmissionError{Raw: "extrinsic failed: Custom error: 8"},
	}}
	plan := unstakePlan(1, 2)
	plan.Ops[0].Safe = true
	plan.Ops[1].Safe = true

	executePlan(context.Background(), client, signature.KeyringPair{}, hotkeyB, plan, true, false)

	require.Equal([]submittedCall{
		{fn: "remove_stake_limit", netuid: 1},
		{fn: "remove_stake_limit", netuid: 2},
	}, client.calls)
}

func TestSubmitOpSafeModeSelectsLimitExtrinsic(t *testing.T) {
	require := require.New(t)

	// A safe operation keeps the limit extrinsic even when a drained pool
	// leaves the price limit at zero.
	op := staking.Operation{Netuid: 1, Hotkey: hotkeyA, Amount: balance.FromTao(1, 1), Safe: true}

	client := &fakeClient{}
	require.NoError(submitOp(context.Background(), client, signature.KeyringPair{}, op, true, false))
	require.NoError(submitOp(context.Background(), client, signature.KeyringPair{}, op, false, false))

	op.Safe = false
	require.NoError(submitOp(context.Background(), client, signature.KeyringPair{}, op, true, false))
	require.NoError(submitOp(context.Background(), client, signature.KeyringPair{}, op, false, false))

	require.Equal([]submittedCall{
		{fn: "remove_stake_limit", netuid: 1},
		{fn: "add_stake_limit", netuid: 1},
		{fn: "remove_stake", netuid: 1},
		{fn: "add_stake", netuid: 1},
	}, client.calls)
}
