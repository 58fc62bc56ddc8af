package subnets

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gztensor/btcli/cmd/common"
	"github.com/gztensor/btcli/config"
)

var lockCostCmd = &cobra.Command{
	Use:   "lock-cost",
	Short: "Show the current cost of registering a new subnet",
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

		fmt.Printf("Subnet lock cost: %s\n", cost)
	},
}

func init() {
	lockCostCmd.Flags().AddFlagSet(common.SelectorNFlags)
}
