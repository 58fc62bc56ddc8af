package subnets

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gztensor/btcli/cmd/common"
	"github.com/gztensor/btcli/config"
	"github.com/gztensor/btcli/table"
)

var showCmd = &cobra.Command{
	Use:   "show <netuid>",
	Short: "Show one subnet's pool state and ownership",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Global()
		sel := common.GetSelection(cfg)

		netuid, err := strconv.ParseUint(args[0], 10, 16)
		if err != nil {
			cobra.CheckErr(fmt.Sprintf("malformed netuid '%s'", args[0]))
		}

		ctx := context.Background()
		client, err := sel.Connect(ctx)
		cobra.CheckErr(err)
		defer client.Close()

		head, err := client.ChainHead(ctx)
		cobra.CheckErr(err)
		pools, err := client.AllSubnets(ctx, head)
		cobra.CheckErr(err)
		identities, err := client.DelegateIdentities(ctx, head)
		cobra.CheckErr(err)

		for _, p := range pools {
			if p.Netuid != uint16(netuid) {
				continue
			}

			fmt.Printf("Subnet %d: %s %s\n\n", p.Netuid, p.Symbol, p.Name())

			t := table.New()
			t.Header("Field", "Value")
			mechanism := "Dynamic"
			if !p.IsDynamic {
				mechanism = "Stable (1:1)"
			}
			rows := [][]string{
				{"Owner hotkey", identities.DisplayName(p.OwnerHotkey)},
				{"Owner coldkey", identities.DisplayName(p.OwnerColdkey)},
				{"Mechanism", mechanism},
				{"Price (τ/α)", p.Price().StringFixed(6)},
				{"TAO pool", p.TaoIn.String()},
				{"Alpha pool", p.AlphaIn.String()},
				{"Alpha outstanding", p.AlphaOut.String()},
				{"Emission", p.EmissionPerBlock.String() + " per block"},
				{"Tempo", fmt.Sprintf("%d blocks", p.Tempo)},
			}
			cobra.CheckErr(t.Bulk(rows))
			cobra.CheckErr(t.Render())
			return
		}
		cobra.CheckErr(fmt.Sprintf("subnet %d does not exist", netuid))
	},
}

func init() {
	showCmd.Flags().AddFlagSet(common.SelectorNFlags)
}
