package stake

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gztensor/btcli/cmd/common"
	"github.com/gztensor/btcli/config"
	"github.com/gztensor/btcli/internal/chain"
	"github.com/gztensor/btcli/internal/staking"
	"github.com/gztensor/btcli/table"
)

var (
	childTake float64

	childkeyTakeCmd = &cobra.Command{
		Use:   "take",
		Short: "Show or set the childkey take of a hotkey",
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

			if !cmd.Flags().Changed("take") {
				printChildkeyTakes(ctx, client, addr, netuids)
				return
			}

			take, err := staking.TakeToU16(childTake)
			cobra.CheckErr(err)

			common.Confirm(
				fmt.Sprintf("Set childkey take for %s to %.2f%%?", shortAddr(addr), childTake*100),
				"setting take cancelled",
			)

			kp, err := sel.Wallet.UnlockColdkey()
			cobra.CheckErr(err)

			for _, n := range netuids {
				err := common.RunWithSpinner(
					fmt.Sprintf("Setting childkey take on netuid %d", n),
					func() error { return client.SetChildkeyTake(ctx, kp, addr, n, take) },
				)
				if err != nil {
					common.PrintErrorf("Failed to submit on netuid %d: %s", n, chain.FormatError(err))
					continue
				}
				common.Successf("netuid %d: childkey take set to %.2f%%", n, childTake*100)
			}
		},
	}
)

func printChildkeyTakes(ctx context.Context, client chain.Client, addr string, netuids []uint16) {
	head, err := client.ChainHead(ctx)
	cobra.CheckErr(err)

	t := table.New()
	t.Header([]string{"Netuid", "Childkey Take"})
	var output [][]string //nolint: prealloc
	for _, n := range netuids {
		take, err := client.ChildkeyTake(ctx, addr, n, head)
		cobra.CheckErr(err)
		output = append(output, []string{
			fmt.Sprintf("%d", n),
			fmt.Sprintf("%.2f %%", staking.U16ToTake(take)*100),
		})
	}
	cobra.CheckErr(t.Bulk(output))
	cobra.CheckErr(t.Render())
}

func init() {
	childrenCmd.AddCommand(childkeyTakeCmd)

	f := childkeyTakeCmd.Flags()
	f.Int32Var(&childNetuid, "netuid", -1, "restrict to a single subnet (default: all subnets)")
	f.StringVar(&childHotkey, "hotkey", "", "hotkey name or ss58 address")
	f.Float64Var(&childTake, "take", 0, "take to set, as a fraction between 0 and 0.18 (omit to display)")
	f.AddFlagSet(common.SelectorFlags)
	f.AddFlagSet(common.AnswerYesFlag)
}
