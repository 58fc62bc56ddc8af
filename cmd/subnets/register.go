package subnets

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gztensor/btcli/cmd/common"
	"github.com/gztensor/btcli/config"
	"github.com/gztensor/btcli/internal/chain"
)

var (
	registerNetuid int32

	registerCmd = &cobra.Command{
		Use:   "register",
		Short: "Register the wallet's hotkey on a subnet by burning stake",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cfg := config.Global()
			sel := common.GetSelection(cfg)

			if registerNetuid < 0 {
				cobra.CheckErr("--netuid is required")
			}

			ctx := context.Background()
			client, err := sel.Connect(ctx)
			cobra.CheckErr(err)
			defer client.Close()

			hotkey, err := sel.Wallet.HotkeySS58(sel.Wallet.Hotkey)
			cobra.CheckErr(err)

			common.Confirm(
				fmt.Sprintf("Register hotkey %s on netuid %d? The registration burn is deducted from your balance.", hotkey, registerNetuid),
				"registration cancelled",
			)

			kp, err := sel.Wallet.UnlockColdkey()
			cobra.CheckErr(err)

			err = common.RunWithSpinner(fmt.Sprintf("Registering on netuid %d", registerNetuid), func() error {
				return client.BurnedRegister(ctx, kp, hotkey, uint16(registerNetuid))
			})
			if err != nil {
				cobra.CheckErr(chain.FormatError(err))
			}
			common.Successf("Hotkey registered on netuid %d", registerNetuid)
		},
	}
)

func init() {
	f := registerCmd.Flags()
	f.Int32Var(&registerNetuid, "netuid", -1, "subnet to register on")
	f.AddFlagSet(common.SelectorFlags)
	f.AddFlagSet(common.AnswerYesFlag)
}
