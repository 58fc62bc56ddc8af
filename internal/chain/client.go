// Package chain is the boundary to the Bittensor chain. It wraps a substrate
// RPC client with the queries and extrinsics the CLI needs; the wire
// protocol, SCALE codec and signing all live in the underlying library.
package chain

import (
	"context"

	"github.com/centrifuge/go-substrate-rpc-client/v4/signature"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"

	"github.com/gztensor/btcli/internal/balance"
	"github.com/gztensor/btcli/internal/subnet"
)

// Client is the chain query and submission surface consumed by commands.
// Implementations must be safe for concurrent reads; submission is always
// sequential.
type Client interface {
	// Network returns the configured network name, for display.
	Network() string

	// ChainHead returns the hash of the current chain head.
	ChainHead(ctx context.Context) (types.Hash, error)
	// BlockNumber returns the block number at the given hash.
	BlockNumber(ctx context.Context, at types.Hash) (uint64, error)

	// Balance returns the free balance of the given coldkey.
	Balance(ctx context.Context, coldkey string, at types.Hash) (balance.Balance, error)
	// StakeForColdkey returns all stake positions held by the coldkey.
	StakeForColdkey(ctx context.Context, coldkey string, at types.Hash) ([]StakeInfo, error)
	// Stake returns the stake for a single (hotkey, coldkey, netuid) tuple.
	Stake(ctx context.Context, hotkey, coldkey string, netuid uint16, at types.Hash) (balance.Balance, error)
	// AllSubnets returns the dynamic pool snapshot of every subnet.
	AllSubnets(ctx context.Context, at types.Hash) ([]*subnet.DynamicInfo, error)
	// DelegateIdentities returns registered identities keyed by hotkey.
	DelegateIdentities(ctx context.Context, at types.Hash) (IdentityMap, error)
	// MinStakeThreshold returns the nominator minimum required stake.
	MinStakeThreshold(ctx context.Context, at types.Hash) (balance.Balance, error)
	// Children returns the child hotkeys set for a hotkey on a subnet.
	Children(ctx context.Context, hotkey string, netuid uint16, at types.Hash) ([]ChildHotkey, error)
	// ChildkeyTake returns the raw u16 childkey take of a hotkey on a subnet.
	ChildkeyTake(ctx context.Context, hotkey string, netuid uint16, at types.Hash) (uint16, error)
	// SubnetLockCost returns the current cost of registering a new subnet.
	SubnetLockCost(ctx context.Context) (balance.Balance, error)

	// AddStake submits add_stake and waits for inclusion.
	AddStake(ctx context.Context, kp signature.KeyringPair, hotkey string, netuid uint16, amount balance.Balance) error
	// AddStakeLimit submits add_stake_limit with a price limit.
	AddStakeLimit(ctx context.Context, kp signature.KeyringPair, hotkey string, netuid uint16, amount balance.Balance, limitPrice uint64, allowPartial bool) error
	// RemoveStake submits remove_stake and waits for inclusion.
	RemoveStake(ctx context.Context, kp signature.KeyringPair, hotkey string, netuid uint16, amount balance.Balance) error
	// RemoveStakeLimit submits remove_stake_limit with a price limit.
	RemoveStakeLimit(ctx context.Context, kp signature.KeyringPair, hotkey string, netuid uint16, amount balance.Balance, limitPrice uint64, allowPartial bool) error
	// UnstakeAll submits unstake_all (or unstake_all_alpha) for a hotkey.
	UnstakeAll(ctx context.Context, kp signature.KeyringPair, hotkey string, alphaOnly bool) error
	// SetChildren submits set_children for a hotkey on a subnet. An empty
	// list revokes all children.
	SetChildren(ctx context.Context, kp signature.KeyringPair, hotkey string, netuid uint16, children []ChildHotkey) error
	// SetChildkeyTake submits set_childkey_take with a raw u16 take.
	SetChildkeyTake(ctx context.Context, kp signature.KeyringPair, hotkey string, netuid uint16, take uint16) error
	// RegisterNetwork submits register_network to create a new subnet.
	RegisterNetwork(ctx context.Context, kp signature.KeyringPair, hotkey string) error
	// BurnedRegister submits burned_register for a hotkey on a subnet.
	BurnedRegister(ctx context.Context, kp signature.KeyringPair, hotkey string, netuid uint16) error

	// Close releases the underlying connection.
	Close()
}
