package subnets

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gztensor/btcli/cmd/common"
	"github.com/gztensor/btcli/config"
	"github.com/gztensor/btcli/internal/chain"
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Register a new subnet, locking the current lock cost",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Global()
		sel := common.GetSelection(cfg)

		ctx := context.Background()
		client, err := sel.Connect(ctx)
		cobra.CheckErr(err)
		defer client.Close()

		cost, err := client.SubnetLockCost(ctx)
		cobra.CheckErr(err)

		hotkey, err := sel.Wallet.HotkeySS58(sel.Wallet.Hotkey)
		cobra.CheckErr(err)

		common.Confirm(
			fmt.Sprintf("Register a new subnet with hotkey %s? This locks %s.", hotkey, cost),
			"subnet registration cancelled",
		)

		kp, err := sel.Wallet.UnlockColdkey()
		cobra.CheckErr(err)

		err = common.RunWithSpinner("Registering subnet", func() error {
			return client.RegisterNetwork(ctx, kp, hotkey)
		})
		if err != nil {
			cobra.CheckErr(chain.FormatError(err))
		}
		common.Successf("Subnet registered")
	},
}

func init() {
	f := createCmd.Flags()
	f.AddFlagSet(common.SelectorFlags)
	f.AddFlagSet(common.AnswerYesFlag)
}
