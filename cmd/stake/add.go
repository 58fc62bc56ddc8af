package stake

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/gztensor/btcli/cmd/common"
	"github.com/gztensor/btcli/config"
	"github.com/gztensor/btcli/internal/balance"
	"github.com/gztensor/btcli/internal/staking"
	"github.com/gztensor/btcli/table"
)

var (
	addAmount     float64
	addStakeAll   bool
	addNetuids    []int32
	addHotkey     string
	addAllHotkeys bool
	addInclude    []string

	addCmd = &cobra.Command{
		Use:   "add",
		Short: "Stake TAO to one or more hotkeys",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cfg := config.Global()
			sel := common.GetSelection(cfg)
			safeOpts := common.GetSafeStakingOptions(cfg)

			if addAmount <= 0 && !addStakeAll {
				cobra.CheckErr("either --amount or --all is required")
			}
			if len(addNetuids) == 0 {
				cobra.CheckErr("at least one --netuid is required")
			}

			ctx := context.Background()
			client, err := sel.Connect(ctx)
			cobra.CheckErr(err)
			defer client.Close()

			coldkey, err := sel.Wallet.ColdkeyPub()
			cobra.CheckErr(err)

			st, err := fetchState(ctx, client, coldkey)
			cobra.CheckErr(err)

			if !addStakeAll {
				threshold, err := client.MinStakeThreshold(ctx, st.Head)
				if err == nil && balance.FromTao(addAmount, 0).Cmp(threshold) < 0 {
					cobra.CheckErr(fmt.Sprintf("amount %s is below the minimum stake threshold %s",
						balance.FromTao(addAmount, 0), threshold))
				}
			}

			targets := resolveTargets(sel)
			if len(targets) == 0 {
				cobra.CheckErr("no hotkeys to stake to")
			}

			req := staking.Request{
				Amount:        addAmount,
				All:           addStakeAll,
				Safe:          safeOpts.Safe,
				RateTolerance: safeOpts.RateTolerance,
				AllowPartial:  safeOpts.AllowPartial,
			}
			plan, err := staking.PlanStake(targets, st.Pools, st.Free, req, common.Warnf)
			cobra.CheckErr(err)
			if len(plan.Ops) == 0 {
				cobra.CheckErr("nothing to stake")
			}

			printStakePlan(sel, st.Free, plan, safeOpts)
			common.Confirm("Proceed with staking?", "staking cancelled")

			kp, err := sel.Wallet.UnlockColdkey()
			cobra.CheckErr(err)

			executePlan(ctx, client, kp, coldkey, plan, false, safeOpts.AllowPartial)

			head, err := client.ChainHead(ctx)
			cobra.CheckErr(err)
			free, err := client.Balance(ctx, coldkey, head)
			cobra.CheckErr(err)
			common.Successf("Free balance: %s → %s", st.Free, free)
		},
	}
)

// resolveTargets builds the (hotkey, netuid) target grid from the hotkey
// selection flags crossed with the requested netuids.
func resolveTargets(sel *common.Selection) []staking.Target {
	type hk struct{ name, addr string }
	var hotkeys []hk

	switch {
	case addAllHotkeys:
		names, err := sel.Wallet.Hotkeys()
		cobra.CheckErr(err)
		for _, name := range names {
			addr, err := sel.Wallet.HotkeySS58(name)
			if err != nil {
				common.Warnf("Skipping hotkey %s: %v", name, err)
				continue
			}
			hotkeys = append(hotkeys, hk{name, addr})
		}
	case len(addInclude) > 0:
		for _, in := range addInclude {
			addr, err := resolveHotkey(sel.Wallet, in)
			cobra.CheckErr(err)
			hotkeys = append(hotkeys, hk{in, addr})
		}
	default:
		name := addHotkey
		if name == "" {
			name = sel.Wallet.Hotkey
		}
		addr, err := resolveHotkey(sel.Wallet, name)
		cobra.CheckErr(err)
		hotkeys = append(hotkeys, hk{name, addr})
	}

	var targets []staking.Target
	for _, h := range hotkeys {
		for _, netuid := range addNetuids {
			if netuid < 0 {
				cobra.CheckErr(fmt.Sprintf("invalid netuid %d", netuid))
			}
			targets = append(targets, staking.Target{
				HotkeyName: h.name,
				Hotkey:     h.addr,
				Netuid:     uint16(netuid),
			})
		}
	}
	return targets
}

func printStakePlan(sel *common.Selection, free balance.Balance, plan *staking.Plan, safeOpts common.SafeStakingOptions) {
	fmt.Printf("Network: %s, wallet: %s, free balance: %s\n\n", sel.PrettyPrintNetwork(), sel.Wallet.Name, free)

	t := table.New()
	header := []string{"Netuid", "Hotkey", "Amount (τ)", "Rate (α/τ)", "Received (α)", "Slippage"}
	if safeOpts.Safe {
		header = append(header, "Rate with Tolerance", "Partial Stake")
	}
	t.Header(header)

	var output [][]string //nolint: prealloc
	for _, op := range plan.Ops {
		rate := "N/A"
		if price := op.Pool.Price(); !price.IsZero() {
			rate = decimal.NewFromInt(1).Div(price).StringFixed(6)
		}
		row := []string{
			fmt.Sprintf("%d", op.Netuid),
			op.HotkeyName,
			op.Amount.String(),
			rate,
			op.Received.String(),
			op.SlippagePct,
		}
		if safeOpts.Safe {
			partial := "No"
			if safeOpts.AllowPartial {
				partial = "Yes"
			}
			row = append(row, op.RateWithTolerance.StringFixed(6), partial)
		}
		output = append(output, row)
	}
	cobra.CheckErr(t.Bulk(output))
	cobra.CheckErr(t.Render())

	fmt.Printf("\nMax slippage across operations: %.4f %%\n", plan.MaxSlippage)
}

func init() {
	f := addCmd.Flags()
	f.Float64Var(&addAmount, "amount", 0, "amount of TAO to stake to each target")
	f.BoolVar(&addStakeAll, "all", false, "stake the whole free balance, split evenly across targets")
	f.Int32SliceVar(&addNetuids, "netuid", nil, "subnet(s) to stake into (repeatable)")
	f.StringVar(&addHotkey, "hotkey", "", "hotkey name or ss58 address to stake to")
	f.BoolVar(&addAllHotkeys, "all-hotkeys", false, "stake to every hotkey of the wallet")
	f.StringSliceVar(&addInclude, "include-hotkeys", nil, "hotkeys to stake to (names or ss58)")
	f.AddFlagSet(common.SelectorFlags)
	f.AddFlagSet(common.SafeStakingFlags)
	f.AddFlagSet(common.AnswerYesFlag)
}
