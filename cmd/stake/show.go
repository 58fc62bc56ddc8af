package stake

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/gztensor/btcli/cmd/common"
	"github.com/gztensor/btcli/config"
	"github.com/gztensor/btcli/internal/balance"
)

const showCommandKey = "stake_show"

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the wallet's stake accounts overview",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Global()
		sel := common.GetSelection(cfg)

		if common.ShouldReuseLast() {
			ct, err := common.LoadCachedTable(showCommandKey)
			cobra.CheckErr(err)
			ct.Print()
			maybeExportHTML(ct)
			return
		}

		ctx := context.Background()
		client, err := sel.Connect(ctx)
		cobra.CheckErr(err)
		defer client.Close()

		coldkey, err := sel.Wallet.ColdkeyPub()
		cobra.CheckErr(err)

		st, err := fetchState(ctx, client, coldkey)
		cobra.CheckErr(err)

		names := hotkeyNames(sel.Wallet)
		ct := buildShowTable(sel, st, names)
		ct.Print()

		if err := ct.Persist(); err != nil {
			common.Warnf("Failed to update the result cache: %v", err)
		}
		maybeExportHTML(ct)
	},
}

func buildShowTable(sel *common.Selection, st *chainState, names map[string]string) *common.CachedTable {
	ct := &common.CachedTable{
		Command: showCommandKey,
		Title:   "Stake accounts",
		Header:  []string{"Hotkey", "Address", "Netuid", "Stake (α)", "Value (τ)", "Registered", "Emission (α/block)"},
		Types:   []string{"TEXT", "TEXT", "INTEGER", "REAL", "REAL", "TEXT", "REAL"},
	}

	totalValue := balance.FromRao(0, 0)
	for _, s := range st.Stakes {
		pool, ok := st.Pools[s.Netuid]
		if !ok {
			continue
		}
		name := names[s.Hotkey]
		if name == "" {
			name = st.Identities.DisplayName(s.Hotkey)
		}
		value := pool.AlphaToTao(s.Stake)
		totalValue, _ = totalValue.Add(value.WithUnit(0))

		registered := "No"
		if s.IsRegistered {
			registered = "Yes"
		}
		ct.Rows = append(ct.Rows, []string{
			name,
			shortAddr(s.Hotkey),
			fmt.Sprintf("%d", s.Netuid),
			s.Stake.String(),
			value.String(),
			registered,
			s.Emission.String(),
		})
		ct.Typed = append(ct.Typed, []interface{}{
			name,
			s.Hotkey,
			int64(s.Netuid),
			s.Stake.Tao(),
			value.Tao(),
			registered,
			s.Emission.Tao(),
		})
	}

	ct.Summary = fmt.Sprintf("Network: %s, wallet: %s, block: %d\nFree balance: %s, total staked value: %s\nQueried at %s",
		sel.PrettyPrintNetwork(), sel.Wallet.Name, st.BlockNumber, st.Free, totalValue,
		time.Now().Format(time.RFC3339))
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
	f := showCmd.Flags()
	f.AddFlagSet(common.SelectorFlags)
	f.AddFlagSet(common.CacheFlags)
}
