package subnets

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gztensor/btcli/cmd/common"
	"github.com/gztensor/btcli/internal/balance"
	"github.com/gztensor/btcli/internal/subnet"
)

func TestBuildListTable(t *testing.T) {
	require := require.New(t)

	sel := &common.Selection{NetworkName: "finney", Endpoint: "wss://example:443"}
	pools := []*subnet.DynamicInfo{
		{
			Netuid:           0,
			SubnetName:       "root",
			Symbol:           "τ",
			TaoIn:            balance.FromTao(0, 0),
			AlphaIn:          balance.FromTao(0, 0),
			AlphaOut:         balance.FromTao(1000, 0),
			EmissionPerBlock: balance.FromTao(0, 0),
		},
		{
			Netuid:           1,
			SubnetName:       "apex",
			Symbol:           "α",
			IsDynamic:        true,
			TaoIn:            balance.FromTao(1000, 0),
			AlphaIn:          balance.FromTao(500, 1),
			AlphaOut:         balance.FromTao(2000, 1),
			EmissionPerBlock: balance.FromTao(1, 0),
			Tempo:            360,
		},
	}

	ct := buildListTable(sel, pools, 1234)
	require.Equal(listCommandKey, ct.Command)
	require.Len(ct.Rows, 2)
	require.Len(ct.Typed, 2)
	require.Len(ct.Header, len(ct.Types))

	// Root prices 1:1 regardless of reserves.
	require.Equal("1.000000", ct.Rows[0][2])
	// Dynamic price is the reserve ratio 1000/500.
	require.Equal("2.000000", ct.Rows[1][2])
	require.Contains(ct.Rows[1][1], "apex")
	require.Contains(ct.Summary, "block: 1234")
	require.Contains(ct.Summary, "subnets: 2")
}
