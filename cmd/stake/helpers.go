package stake

import (
	"context"
	"fmt"
	"sort"

	"github.com/centrifuge/go-substrate-rpc-client/v4/signature"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"golang.org/x/sync/errgroup"

	"github.com/gztensor/btcli/cmd/common"
	"github.com/gztensor/btcli/internal/balance"
	"github.com/gztensor/btcli/internal/chain"
	"github.com/gztensor/btcli/internal/keyring"
	"github.com/gztensor/btcli/internal/staking"
	"github.com/gztensor/btcli/internal/subnet"
)

// chainState is one consistent snapshot of everything the staking commands
// display: all reads are pinned to the same block hash.
type chainState struct {
	Head        types.Hash
	BlockNumber uint64

	Free       balance.Balance
	Stakes     []chain.StakeInfo
	Pools      map[uint16]*subnet.DynamicInfo
	Identities chain.IdentityMap
}

// fetchState reads balance, stakes, pools and identities concurrently at the
// current chain head.
func fetchState(ctx context.Context, client chain.Client, coldkey string) (*chainState, error) {
	head, err := client.ChainHead(ctx)
	if err != nil {
		return nil, err
	}

	st := &chainState{Head: head}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		st.BlockNumber, err = client.BlockNumber(gctx, head)
		return err
	})
	g.Go(func() error {
		var err error
		st.Free, err = client.Balance(gctx, coldkey, head)
		return err
	})
	g.Go(func() error {
		var err error
		st.Stakes, err = client.StakeForColdkey(gctx, coldkey, head)
		return err
	})
	g.Go(func() error {
		pools, err := client.AllSubnets(gctx, head)
		if err != nil {
			return err
		}
		st.Pools = poolMap(pools)
		return nil
	})
	g.Go(func() error {
		var err error
		st.Identities, err = client.DelegateIdentities(gctx, head)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return st, nil
}

func poolMap(pools []*subnet.DynamicInfo) map[uint16]*subnet.DynamicInfo {
	m := make(map[uint16]*subnet.DynamicInfo, len(pools))
	for _, p := range pools {
		m[p.Netuid] = p
	}
	return m
}

// hotkeyNames maps every ss58 address of the wallet's hotkeys to the hotkey
// file name. Missing wallet directories yield an empty map.
func hotkeyNames(w keyring.Wallet) map[string]string {
	names := map[string]string{}
	hotkeys, err := w.Hotkeys()
	if err != nil {
		return names
	}
	for _, name := range hotkeys {
		addr, err := w.HotkeySS58(name)
		if err != nil {
			continue
		}
		names[addr] = name
	}
	return names
}

// hotkeyFilter narrows stake positions down to the hotkeys a command should
// act on.
type hotkeyFilter struct {
	all     bool
	include []string
	exclude []string
	// fallback is the wallet's configured hotkey, used when no other
	// filter is given.
	fallback string
}

func (f hotkeyFilter) matches(addr, name string) bool {
	for _, x := range f.exclude {
		if x == addr || x == name {
			return false
		}
	}
	if f.all {
		return true
	}
	if len(f.include) > 0 {
		for _, in := range f.include {
			if in == addr || in == name {
				return true
			}
		}
		return false
	}
	return addr == f.fallback || name == f.fallback
}

// resolvePositions turns the coldkey's stakes into planner positions,
// applying the hotkey filter and an optional netuid restriction (netuid < 0
// keeps every subnet).
func resolvePositions(st *chainState, names map[string]string, filter hotkeyFilter, netuid int32) []staking.Position {
	var positions []staking.Position
	for _, s := range st.Stakes {
		if netuid >= 0 && s.Netuid != uint16(netuid) {
			continue
		}
		name := names[s.Hotkey]
		if !filter.matches(s.Hotkey, name) {
			continue
		}
		if name == "" {
			name = st.Identities.DisplayName(s.Hotkey)
		}
		positions = append(positions, staking.Position{
			HotkeyName: name,
			Hotkey:     s.Hotkey,
			Netuid:     s.Netuid,
			Stake:      s.Stake,
		})
	}
	sort.Slice(positions, func(i, j int) bool {
		if positions[i].Hotkey != positions[j].Hotkey {
			return positions[i].Hotkey < positions[j].Hotkey
		}
		return positions[i].Netuid < positions[j].Netuid
	})
	return positions
}

// resolveHotkey resolves a --hotkey argument that may be either a hotkey file
// name in the wallet or a raw ss58 address.
func resolveHotkey(w keyring.Wallet, hotkey string) (string, error) {
	if chain.IsValidSS58(hotkey) {
		return hotkey, nil
	}
	addr, err := w.HotkeySS58(hotkey)
	if err != nil {
		return "", fmt.Errorf("hotkey '%s' is neither a valid ss58 address nor a hotkey of wallet %s: %w", hotkey, w.Name, err)
	}
	return addr, nil
}

// executePlan submits the plan's operations one at a time and prints the
// before and after stake for each. A failed submission is reported and the
// batch continues; price-tolerance rejections get the tailored message.
func executePlan(ctx context.Context, client chain.Client, kp signature.KeyringPair, coldkey string, plan *staking.Plan, unstake, allowPartial bool) {
	for _, op := range plan.Ops {
		verb := "Staking"
		if unstake {
			verb = "Unstaking"
		}
		err := common.RunWithSpinner(
			fmt.Sprintf("%s %s on netuid %d (%s)", verb, op.Amount, op.Netuid, op.HotkeyName),
			func() error { return submitOp(ctx, client, kp, op, unstake, allowPartial) },
		)
		if err != nil {
			if chain.IsPriceToleranceExceeded(err) {
				common.PrintErrorf("%s on netuid %d rejected: price moved beyond the rate tolerance and partial fills are disabled", verb, op.Netuid)
			} else {
				common.PrintErrorf("Failed to submit on netuid %d: %s", op.Netuid, chain.FormatError(err))
			}
			continue
		}

		head, err := client.ChainHead(ctx)
		if err != nil {
			common.Warnf("Submitted, but could not re-query chain state: %s", chain.FormatError(err))
			continue
		}
		after, err := client.Stake(ctx, op.Hotkey, coldkey, op.Netuid, head)
		if err != nil {
			common.Warnf("Submitted, but could not re-query stake: %s", chain.FormatError(err))
			continue
		}
		common.Successf("netuid %d: stake %s → %s", op.Netuid, op.CurrentStake, after)
	}
}

func submitOp(ctx context.Context, client chain.Client, kp signature.KeyringPair, op staking.Operation, unstake, allowPartial bool) error {
	switch {
	case unstake && op.Safe:
		return client.RemoveStakeLimit(ctx, kp, op.Hotkey, op.Netuid, op.Amount, op.PriceLimit, allowPartial)
	case unstake:
		return client.RemoveStake(ctx, kp, op.Hotkey, op.Netuid, op.Amount)
	case op.Safe:
		return client.AddStakeLimit(ctx, kp, op.Hotkey, op.Netuid, op.Amount, op.PriceLimit, allowPartial)
	default:
		return client.AddStake(ctx, kp, op.Hotkey, op.Netuid, op.Amount)
	}
}

// shortAddr abbreviates an ss58 address for table display.
func shortAddr(addr string) string {
	if len(addr) <= 12 {
		return addr
	}
	return addr[:6] + "…" + addr[len(addr)-6:]
}
