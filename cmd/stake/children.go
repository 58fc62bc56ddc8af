package stake

import (
	"context"
	"fmt"
	"sort"

	"github.com/centrifuge/go-substrate-rpc-client/v4/signature"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/spf13/cobra"

	"github.com/gztensor/btcli/cmd/common"
	"github.com/gztensor/btcli/config"
	"github.com/gztensor/btcli/internal/chain"
	"github.com/gztensor/btcli/internal/staking"
	"github.com/gztensor/btcli/table"
)

var (
	childNetuid      int32
	childHotkey      string
	childAddrs       []string
	childProportions []float64

	childrenCmd = &cobra.Command{
		Use:     "children",
		Short:   "Manage child hotkeys",
		Aliases: []string{"child"},
	}

	childrenGetCmd = &cobra.Command{
		Use:   "get",
		Short: "Show the child hotkeys set for a hotkey",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cfg := config.Global()
			sel := common.GetSelection(cfg)

			ctx := context.Background()
			client, err := sel.Connect(ctx)
			cobra.CheckErr(err)
			defer client.Close()

			addr := resolveChildParent(sel)
			netuids, _, err := childNetuids(ctx, client, childNetuid)
			cobra.CheckErr(err)

			head, err := client.ChainHead(ctx)
			cobra.CheckErr(err)

			found := false
			for _, netuid := range netuids {
				children, err := client.Children(ctx, addr, netuid, head)
				cobra.CheckErr(err)
				if len(children) == 0 {
					continue
				}
				found = true
				printChildren(ctx, client, head, netuid, children)
			}
			if !found {
				fmt.Printf("No child hotkeys set for %s\n", shortAddr(addr))
			}
		},
	}

	childrenSetCmd = &cobra.Command{
		Use:   "set",
		Short: "Set child hotkeys and their proportions",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cfg := config.Global()
			sel := common.GetSelection(cfg)

			if len(childAddrs) == 0 {
				cobra.CheckErr("--children is required")
			}
			if len(childAddrs) != len(childProportions) {
				cobra.CheckErr(fmt.Sprintf("got %d children but %d proportions", len(childAddrs), len(childProportions)))
			}

			ctx := context.Background()
			client, err := sel.Connect(ctx)
			cobra.CheckErr(err)
			defer client.Close()

			addr := resolveChildParent(sel)
			proposed := make([]staking.Child, 0, len(childAddrs))
			for i, child := range childAddrs {
				if !chain.IsValidSS58(child) {
					cobra.CheckErr(fmt.Sprintf("invalid ss58 address: %s", child))
				}
				if child == addr {
					cobra.CheckErr("cannot set a hotkey as its own child")
				}
				proposed = append(proposed, staking.Child{Hotkey: child, Proportion: childProportions[i]})
			}
			children, err := staking.PrepareChildren(proposed)
			cobra.CheckErr(err)

			for _, c := range proposed {
				fmt.Printf("  %s: %.4f\n", c.Hotkey, c.Proportion)
			}
			common.Confirm(
				fmt.Sprintf("Set these child hotkeys for %s?", shortAddr(addr)),
				"setting children cancelled",
			)

			kp, err := sel.Wallet.UnlockColdkey()
			cobra.CheckErr(err)

			submitSetChildren(ctx, client, kp, addr, childNetuid, children)
		},
	}

	childrenRevokeCmd = &cobra.Command{
		Use:   "revoke",
		Short: "Revoke all child hotkeys",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cfg := config.Global()
			sel := common.GetSelection(cfg)

			ctx := context.Background()
			client, err := sel.Connect(ctx)
			cobra.CheckErr(err)
			defer client.Close()

			addr := resolveChildParent(sel)
			common.Confirm(
				fmt.Sprintf("Revoke all child hotkeys for %s?", shortAddr(addr)),
				"revoking children cancelled",
			)

			kp, err := sel.Wallet.UnlockColdkey()
			cobra.CheckErr(err)

			submitSetChildren(ctx, client, kp, addr, childNetuid, nil)
		},
	}
)

// resolveChildParent resolves the parent hotkey the children subcommands act
// on, defaulting to the wallet's configured hotkey.
func resolveChildParent(sel *common.Selection) string {
	hotkey := childHotkey
	if hotkey == "" {
		hotkey = sel.Wallet.Hotkey
	}
	addr, err := resolveHotkey(sel.Wallet, hotkey)
	cobra.CheckErr(err)
	return addr
}

// childNetuids expands a --netuid argument into the list of subnets to act
// on: a single subnet when given, every dynamic subnet otherwise. The pool
// map is returned alongside for completion-block estimates.
func childNetuids(ctx context.Context, client chain.Client, netuid int32) ([]uint16, map[uint16]*subnetPool, error) {
	head, err := client.ChainHead(ctx)
	if err != nil {
		return nil, nil, err
	}
	pools, err := client.AllSubnets(ctx, head)
	if err != nil {
		return nil, nil, err
	}
	byNetuid := make(map[uint16]*subnetPool, len(pools))
	for _, p := range pools {
		byNetuid[p.Netuid] = &subnetPool{Tempo: p.Tempo, BlocksSinceLastStep: p.BlocksSinceLastStep}
	}

	if netuid >= 0 {
		if _, ok := byNetuid[uint16(netuid)]; !ok {
			return nil, nil, fmt.Errorf("subnet %d does not exist", netuid)
		}
		return []uint16{uint16(netuid)}, byNetuid, nil
	}
	var netuids []uint16
	for _, p := range pools {
		// Child hotkeys do not apply on the root subnet.
		if p.Netuid == 0 {
			continue
		}
		netuids = append(netuids, p.Netuid)
	}
	sort.Slice(netuids, func(i, j int) bool { return netuids[i] < netuids[j] })
	return netuids, byNetuid, nil
}

// subnetPool is the epoch timing slice of a pool snapshot used for
// completion-block estimates.
type subnetPool struct {
	Tempo               uint16
	BlocksSinceLastStep uint64
}

// printChildren renders one subnet's child table with each child's take.
func printChildren(ctx context.Context, client chain.Client, head types.Hash, netuid uint16, children []chain.ChildHotkey) {
	fmt.Printf("\nNetuid %d:\n", netuid)
	t := table.New()
	t.Header([]string{"Child Hotkey", "Proportion", "Childkey Take"})

	sort.Slice(children, func(i, j int) bool { return children[i].Proportion > children[j].Proportion })
	var output [][]string //nolint: prealloc
	for _, c := range children {
		take, err := client.ChildkeyTake(ctx, c.Hotkey, netuid, head)
		if err != nil {
			common.Warnf("Could not query take for %s: %s", shortAddr(c.Hotkey), chain.FormatError(err))
		}
		output = append(output, []string{
			c.Hotkey,
			fmt.Sprintf("%.4f %%", staking.U64ToProportion(c.Proportion)*100),
			fmt.Sprintf("%.2f %%", staking.U16ToTake(take)*100),
		})
	}
	cobra.CheckErr(t.Bulk(output))
	cobra.CheckErr(t.Render())
}

// submitSetChildren submits set_children on the requested subnets and prints
// the estimated completion block for each. A nil child list revokes.
func submitSetChildren(ctx context.Context, client chain.Client, kp signature.KeyringPair, addr string, netuid int32, children []chain.ChildHotkey) {
	netuids, pools, err := childNetuids(ctx, client, netuid)
	cobra.CheckErr(err)

	verb := "Setting children"
	if len(children) == 0 {
		verb = "Revoking children"
	}
	for _, n := range netuids {
		err := common.RunWithSpinner(
			fmt.Sprintf("%s for %s on netuid %d", verb, shortAddr(addr), n),
			func() error { return client.SetChildren(ctx, kp, addr, n, children) },
		)
		if err != nil {
			common.PrintErrorf("Failed to submit on netuid %d: %s", n, chain.FormatError(err))
			continue
		}

		head, err := client.ChainHead(ctx)
		if err != nil {
			common.Successf("netuid %d: request submitted", n)
			continue
		}
		block, err := client.BlockNumber(ctx, head)
		if err != nil {
			common.Successf("netuid %d: request submitted", n)
			continue
		}
		pool := pools[n]
		completion := staking.ChildkeyCompletionBlock(block, pool.BlocksSinceLastStep, pool.Tempo)
		common.Successf("netuid %d: request submitted at block %d, completes around block %d", n, block, completion)
	}
}

func init() {
	childrenCmd.AddCommand(childrenGetCmd)
	childrenCmd.AddCommand(childrenSetCmd)
	childrenCmd.AddCommand(childrenRevokeCmd)

	for _, cmd := range []*cobra.Command{childrenGetCmd, childrenSetCmd, childrenRevokeCmd} {
		f := cmd.Flags()
		f.Int32Var(&childNetuid, "netuid", -1, "restrict to a single subnet (default: all subnets)")
		f.StringVar(&childHotkey, "hotkey", "", "parent hotkey name or ss58 address")
		f.AddFlagSet(common.SelectorFlags)
	}
	childrenSetCmd.Flags().StringSliceVar(&childAddrs, "children", nil, "child hotkey ss58 addresses")
	childrenSetCmd.Flags().Float64SliceVar(&childProportions, "proportions", nil, "proportion per child, fractions summing to at most 1")
	childrenSetCmd.Flags().AddFlagSet(common.AnswerYesFlag)
	childrenRevokeCmd.Flags().AddFlagSet(common.AnswerYesFlag)
}
