package stake

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/gztensor/btcli/cmd/common"
	"github.com/gztensor/btcli/config"
	"github.com/gztensor/btcli/internal/balance"
	"github.com/gztensor/btcli/internal/chain"
	"github.com/gztensor/btcli/table"
)

const liveRefreshInterval = 10 * time.Second

var (
	listNetuid int32
	listLive   bool

	listCmd = &cobra.Command{
		Use:   "list",
		Short: "List the wallet's stake positions per hotkey",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cfg := config.Global()
			sel := common.GetSelection(cfg)

			ctx := context.Background()
			client, err := sel.Connect(ctx)
			cobra.CheckErr(err)
			defer client.Close()

			coldkey, err := sel.Wallet.ColdkeyPub()
			cobra.CheckErr(err)
			names := hotkeyNames(sel.Wallet)

			if listLive {
				runLiveList(ctx, client, sel, coldkey, names)
				return
			}

			st, err := fetchState(ctx, client, coldkey)
			cobra.CheckErr(err)
			out, _ := renderStakeList(sel, st, names, nil)
			fmt.Print(out)
		},
	}
)

// liveSnapshot remembers the previous poll's per-position values so the next
// render can color the deltas.
type liveSnapshot map[string][2]float64

func positionKey(hotkey string, netuid uint16) string {
	return fmt.Sprintf("%s/%d", hotkey, netuid)
}

// renderStakeList renders one table per hotkey that has stake. It returns
// the rendered text and the snapshot used for delta coloring on the next
// refresh.
func renderStakeList(sel *common.Selection, st *chainState, names map[string]string, prev liveSnapshot) (string, liveSnapshot) {
	var b strings.Builder
	next := liveSnapshot{}

	fmt.Fprintf(&b, "Network: %s, wallet: %s, block: %d\n", sel.PrettyPrintNetwork(), sel.Wallet.Name, st.BlockNumber)
	fmt.Fprintf(&b, "Free balance: %s\n", st.Free)

	byHotkey := map[string][]int{}
	for i, s := range st.Stakes {
		if listNetuid >= 0 && s.Netuid != uint16(listNetuid) {
			continue
		}
		byHotkey[s.Hotkey] = append(byHotkey[s.Hotkey], i)
	}
	hotkeys := make([]string, 0, len(byHotkey))
	for hk := range byHotkey {
		hotkeys = append(hotkeys, hk)
	}
	sort.Strings(hotkeys)

	for _, hk := range hotkeys {
		name := names[hk]
		if name == "" {
			name = st.Identities.DisplayName(hk)
		}
		fmt.Fprintf(&b, "\nHotkey: %s (%s)\n", name, shortAddr(hk))

		t := table.NewTo(&b)
		t.Header("Netuid", "Name", "Value (τ)", "Stake (α)", "Price (τ/α)", "Swap (α → τ)", "Registered", "Emission (α/block)")

		idx := byHotkey[hk]
		sort.Slice(idx, func(i, j int) bool { return st.Stakes[idx[i]].Netuid < st.Stakes[idx[j]].Netuid })

		var output [][]string //nolint: prealloc
		totalValue := balance.FromRao(0, 0)
		for _, i := range idx {
			s := st.Stakes[i]
			pool, ok := st.Pools[s.Netuid]
			if !ok {
				continue
			}

			value := pool.AlphaToTao(s.Stake)
			swap := pool.AlphaToTaoWithSlippage(s.Stake)
			totalValue, _ = totalValue.Add(value.WithUnit(0))

			key := positionKey(hk, s.Netuid)
			next[key] = [2]float64{s.Stake.Tao(), value.Tao()}

			stakeCell := s.Stake.String()
			valueCell := value.String()
			if prev != nil {
				if old, ok := prev[key]; ok {
					stakeCell += deltaCell(s.Stake.Tao() - old[0])
					valueCell += deltaCell(value.Tao() - old[1])
				}
			}

			registered := "No"
			if s.IsRegistered {
				registered = "Yes"
			}
			output = append(output, []string{
				fmt.Sprintf("%d", s.Netuid),
				pool.Name(),
				valueCell,
				stakeCell,
				pool.Price().StringFixed(6),
				fmt.Sprintf("%s (%v)", swap.Received, swap.SlippagePct),
				registered,
				s.Emission.String(),
			})
		}
		cobra.CheckErr(t.Bulk(output))
		cobra.CheckErr(t.Render())
		fmt.Fprintf(&b, "Total value: %s\n", totalValue)
	}

	if len(hotkeys) == 0 {
		fmt.Fprintf(&b, "\nNo stake found for wallet %s\n", sel.Wallet.Name)
	}
	return b.String(), next
}

// deltaCell formats a change against the previous poll, green when positive
// and red when negative. Unchanged values get no marker.
func deltaCell(diff float64) string {
	const epsilon = 1e-9
	switch {
	case diff > epsilon:
		return " " + pterm.Green(fmt.Sprintf("(+%.4f)", diff))
	case diff < -epsilon:
		return " " + pterm.Red(fmt.Sprintf("(%.4f)", diff))
	default:
		return ""
	}
}

// refreshBar renders the countdown to the next poll.
func refreshBar(remaining, total time.Duration) string {
	const width = 20
	elapsed := total - remaining
	filled := int(float64(width) * float64(elapsed) / float64(total))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("Next refresh: %s %ds (Ctrl-C to exit)", bar, int(remaining.Seconds()))
}

// runLiveList polls the chain every refresh interval and repaints the stake
// tables in place, coloring per-cell deltas against the previous poll.
// Ctrl-C cancels the context and exits cleanly.
func runLiveList(ctx context.Context, client chain.Client, sel *common.Selection, coldkey string, names map[string]string) {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	area, err := pterm.DefaultArea.Start()
	cobra.CheckErr(err)
	defer func() {
		_ = area.Stop()
	}()

	var prev liveSnapshot
	render := func() string {
		st, err := fetchState(ctx, client, coldkey)
		if err != nil {
			if ctx.Err() != nil {
				return ""
			}
			return fmt.Sprintf("Refresh failed: %s\n", chain.FormatError(err))
		}
		out, next := renderStakeList(sel, st, names, prev)
		prev = next
		return out
	}

	body := render()
	nextRefresh := time.Now().Add(liveRefreshInterval)
	area.Update(body + "\n" + refreshBar(time.Until(nextRefresh), liveRefreshInterval))

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			remaining := time.Until(nextRefresh)
			if remaining <= 0 {
				body = render()
				if ctx.Err() != nil {
					return
				}
				nextRefresh = time.Now().Add(liveRefreshInterval)
				remaining = liveRefreshInterval
			}
			area.Update(body + "\n" + refreshBar(remaining, liveRefreshInterval))
		}
	}
}

func init() {
	f := listCmd.Flags()
	f.Int32Var(&listNetuid, "netuid", -1, "restrict to a single subnet")
	f.BoolVar(&listLive, "live", false, "keep refreshing the view every 10 seconds")
	f.AddFlagSet(common.SelectorFlags)
}
