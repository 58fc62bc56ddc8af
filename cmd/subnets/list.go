package subnets

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/gztensor/btcli/cmd/common"
	"github.com/gztensor/btcli/config"
	"github.com/gztensor/btcli/internal/balance"
	"github.com/gztensor/btcli/internal/subnet"
)

const listCommandKey = "subnets_list"

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all subnets with their pool state",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Global()
		sel := common.GetSelection(cfg)

		if common.ShouldReuseLast() {
			ct, err := common.LoadCachedTable(listCommandKey)
			cobra.CheckErr(err)
			ct.Print()
			maybeExportHTML(ct)
			return
		}

		ctx := context.Background()
		client, err := sel.Connect(ctx)
		cobra.CheckErr(err)
		defer client.Close()

		head, err := client.ChainHead(ctx)
		cobra.CheckErr(err)
		blockNumber, err := client.BlockNumber(ctx, head)
		cobra.CheckErr(err)
		pools, err := client.AllSubnets(ctx, head)
		cobra.CheckErr(err)

		sort.Slice(pools, func(i, j int) bool { return pools[i].Netuid < pools[j].Netuid })

		ct := buildListTable(sel, pools, blockNumber)
		ct.Print()

		if err := ct.Persist(); err != nil {
			common.Warnf("Failed to update the result cache: %v", err)
		}
		maybeExportHTML(ct)
	},
}

func buildListTable(sel *common.Selection, pools []*subnet.DynamicInfo, blockNumber uint64) *common.CachedTable {
	ct := &common.CachedTable{
		Command: listCommandKey,
		Title:   "Subnets",
		Header:  []string{"Netuid", "Name", "Price (τ/α)", "Market Cap (τ)", "Emission (τ/block)", "TAO Pool (τ)", "Alpha Pool (α)", "Stake (α)", "Tempo"},
		Types:   []string{"INTEGER", "TEXT", "REAL", "REAL", "REAL", "REAL", "REAL", "REAL", "INTEGER"},
	}

	for _, p := range pools {
		price := p.Price()
		marketCap := price.Mul(p.AlphaIn.Decimal().Add(p.AlphaOut.Decimal()))

		ct.Rows = append(ct.Rows, []string{
			fmt.Sprintf("%d", p.Netuid),
			fmt.Sprintf("%s %s", p.Symbol, p.Name()),
			price.StringFixed(6),
			balance.Millify(marketCap.InexactFloat64()),
			p.EmissionPerBlock.String(),
			balance.Millify(p.TaoIn.Tao()),
			balance.Millify(p.AlphaIn.Tao()),
			balance.Millify(p.AlphaOut.Tao()),
			fmt.Sprintf("%d", p.Tempo),
		})
		ct.Typed = append(ct.Typed, []interface{}{
			int64(p.Netuid),
			p.Name(),
			price.InexactFloat64(),
			marketCap.InexactFloat64(),
			p.EmissionPerBlock.Tao(),
			p.TaoIn.Tao(),
			p.AlphaIn.Tao(),
			p.AlphaOut.Tao(),
			int64(p.Tempo),
		})
	}

	ct.Summary = fmt.Sprintf("Network: %s, block: %d, subnets: %d\nQueried at %s",
		sel.PrettyPrintNetwork(), blockNumber, len(pools), time.Now().Format(time.RFC3339))
	return ct
}

func maybeExportHTML(ct *common.CachedTable) {
	if !common.ShouldWriteHTML() {
		return
	}
	path, err := ct.ExportHTML()
	cobra.CheckErr(err)
	common.Successf("HTML export written to %s", path)
}

func init() {
	f := listCmd.Flags()
	f.AddFlagSet(common.SelectorNFlags)
	f.AddFlagSet(common.CacheFlags)
}
