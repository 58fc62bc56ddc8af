package stake

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gztensor/btcli/cmd/common"
	"github.com/gztensor/btcli/config"
	"github.com/gztensor/btcli/internal/balance"
	"github.com/gztensor/btcli/internal/chain"
	"github.com/gztensor/btcli/internal/staking"
	"github.com/gztensor/btcli/table"
)

var (
	removeAmount     float64
	removeAll        bool
	removeNetuid     int32
	removeHotkey     string
	removeAllHotkeys bool
	removeInclude    []string
	removeExclude    []string
	unstakeAll       bool
	unstakeAllAlpha  bool

	removeCmd = &cobra.Command{
		Use:   "remove",
		Short: "Unstake from one or more hotkeys",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cfg := config.Global()
			sel := common.GetSelection(cfg)
			safeOpts := common.GetSafeStakingOptions(cfg)

			ctx := context.Background()
			client, err := sel.Connect(ctx)
			cobra.CheckErr(err)
			defer client.Close()

			coldkey, err := sel.Wallet.ColdkeyPub()
			cobra.CheckErr(err)

			if unstakeAll || unstakeAllAlpha {
				runUnstakeAll(ctx, client, sel, coldkey)
				return
			}

			st, err := fetchState(ctx, client, coldkey)
			cobra.CheckErr(err)

			names := hotkeyNames(sel.Wallet)
			filter := hotkeyFilter{
				all:      removeAllHotkeys,
				include:  removeInclude,
				exclude:  removeExclude,
				fallback: sel.Wallet.Hotkey,
			}
			if removeHotkey != "" {
				addr, err := resolveHotkey(sel.Wallet, removeHotkey)
				cobra.CheckErr(err)
				filter.include = []string{addr}
				filter.all = false
			}

			positions := resolvePositions(st, names, filter, removeNetuid)
			if len(positions) == 0 {
				cobra.CheckErr(fmt.Sprintf("no stake found for wallet %s with the given filters", sel.Wallet.Name))
			}

			req := staking.Request{
				Amount:        removeAmount,
				All:           removeAll,
				Safe:          safeOpts.Safe,
				RateTolerance: safeOpts.RateTolerance,
				AllowPartial:  safeOpts.AllowPartial,
			}
			prompt := func(p staking.Position) (balance.Balance, bool, error) {
				return common.PromptAmount(
					fmt.Sprintf("Amount to unstake from %s on netuid %d (balance %s, 'q' to finish):",
						p.DisplayName(), p.Netuid, p.Stake),
					p.Netuid,
				)
			}
			plan, err := staking.PlanUnstake(positions, st.Pools, req, prompt, common.Warnf)
			cobra.CheckErr(err)
			if len(plan.Ops) == 0 {
				cobra.CheckErr("nothing to unstake")
			}

			printUnstakePlan(sel, plan, safeOpts)
			common.Confirm("Proceed with unstaking?", "unstaking cancelled")

			kp, err := sel.Wallet.UnlockColdkey()
			cobra.CheckErr(err)

			executePlan(ctx, client, kp, coldkey, plan, true, safeOpts.AllowPartial)
		},
	}
)

// runUnstakeAll handles the unstake_all / unstake_all_alpha fast paths,
// which move everything for a single hotkey in one extrinsic.
func runUnstakeAll(ctx context.Context, client chain.Client, sel *common.Selection, coldkey string) {
	hotkey := removeHotkey
	if hotkey == "" {
		hotkey = sel.Wallet.Hotkey
	}
	addr, err := resolveHotkey(sel.Wallet, hotkey)
	cobra.CheckErr(err)

	what := "all stake"
	if unstakeAllAlpha {
		what = "all alpha stake"
	}
	common.Confirm(fmt.Sprintf("Unstake %s from %s?", what, addr), "unstaking cancelled")

	kp, err := sel.Wallet.UnlockColdkey()
	cobra.CheckErr(err)

	err = common.RunWithSpinner(fmt.Sprintf("Unstaking %s from %s", what, shortAddr(addr)), func() error {
		return client.UnstakeAll(ctx, kp, addr, unstakeAllAlpha)
	})
	if err != nil {
		cobra.CheckErr(chain.FormatError(err))
	}

	head, err := client.ChainHead(ctx)
	cobra.CheckErr(err)
	free, err := client.Balance(ctx, coldkey, head)
	cobra.CheckErr(err)
	common.Successf("Done. Free balance: %s", free)
}

func printUnstakePlan(sel *common.Selection, plan *staking.Plan, safeOpts common.SafeStakingOptions) {
	fmt.Printf("Network: %s, wallet: %s\n\n", sel.PrettyPrintNetwork(), sel.Wallet.Name)

	t := table.New()
	header := []string{"Netuid", "Hotkey", "Amount to Unstake", "Rate (τ/α)", "Received (τ)", "Slippage"}
	if safeOpts.Safe {
		header = append(header, "Rate with Tolerance", "Partial Unstake")
	}
	t.Header(header)

	var output [][]string //nolint: prealloc
	for _, op := range plan.Ops {
		row := []string{
			fmt.Sprintf("%d", op.Netuid),
			op.HotkeyName,
			op.Amount.String(),
			op.Pool.Price().StringFixed(6),
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

	fmt.Printf("\nExpected total received: %s (max slippage %.4f %%)\n", plan.TotalReceived, plan.MaxSlippage)
}

func init() {
	f := removeCmd.Flags()
	f.Float64Var(&removeAmount, "amount", 0, "amount to unstake from each position (prompted when omitted)")
	f.BoolVar(&removeAll, "all", false, "unstake the full balance of each position")
	f.Int32Var(&removeNetuid, "netuid", -1, "restrict to a single subnet")
	f.StringVar(&removeHotkey, "hotkey", "", "hotkey name or ss58 address to unstake from")
	f.BoolVar(&removeAllHotkeys, "all-hotkeys", false, "unstake from every hotkey with stake")
	f.StringSliceVar(&removeInclude, "include-hotkeys", nil, "hotkeys to unstake from (names or ss58)")
	f.StringSliceVar(&removeExclude, "exclude-hotkeys", nil, "hotkeys to skip (names or ss58)")
	f.BoolVar(&unstakeAll, "unstake-all", false, "submit a single unstake_all extrinsic for the hotkey")
	f.BoolVar(&unstakeAllAlpha, "unstake-all-alpha", false, "submit a single unstake_all_alpha extrinsic for the hotkey")
	f.AddFlagSet(common.SelectorFlags)
	f.AddFlagSet(common.SafeStakingFlags)
	f.AddFlagSet(common.AnswerYesFlag)
}
