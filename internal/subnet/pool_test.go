package subnet

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gztensor/btcli/internal/balance"
)

func dynamicPool(netuid uint16, taoIn, alphaIn, alphaOut float64) *DynamicInfo {
	return &DynamicInfo{
		Netuid:    netuid,
		TaoIn:     balance.FromTao(taoIn, 0),
		AlphaIn:   balance.FromTao(alphaIn, netuid),
		AlphaOut:  balance.FromTao(alphaOut, netuid),
		IsDynamic: true,
	}
}

func rootPool() *DynamicInfo {
	return &DynamicInfo{
		Netuid:    0,
		TaoIn:     balance.FromTao(10_000, 0),
		IsDynamic: false,
	}
}

func TestPrice(t *testing.T) {
	require := require.New(t)

	pool := dynamicPool(1, 1000, 500, 2000)
	require.Equal("2", pool.Price().String())

	// Root always prices at 1.
	require.Equal("1", rootPool().Price().String())

	// Empty pool prices at 0 without faulting.
	empty := dynamicPool(2, 0, 0, 0)
	require.True(empty.Price().IsZero())
}

func TestAlphaToTaoWithSlippage(t *testing.T) {
	require := require.New(t)

	// tao_in=1000, alpha_in=500 gives price 2.0 TAO/alpha. Unstaking 10
	// alpha is worth 20 TAO at the linear rate but strictly less through
	// the pool.
	pool := dynamicPool(1, 1000, 500, 2000)
	amount := balance.FromTao(10, 1)

	ideal := pool.AlphaToTao(amount)
	require.Equal(20.0, ideal.Tao())

	res := pool.AlphaToTaoWithSlippage(amount)
	require.Less(res.Received.Tao(), 20.0)
	require.Greater(res.Received.Tao(), 0.0)
	require.Greater(res.SlippagePct, 0.0)

	// received = 1000 - (1000*500)/510
	require.InDelta(1000.0-500_000.0/510.0, res.Received.Tao(), 1e-6)

	// Slippage accounts for the entire gap to the linear value.
	require.InDelta(ideal.Tao()-res.Received.Tao(), res.Slippage.Tao(), 1e-6)
}

func TestRootSwapIsExact(t *testing.T) {
	require := require.New(t)

	pool := rootPool()
	amount := balance.FromTao(5, 0)

	res := pool.AlphaToTaoWithSlippage(amount)
	require.Equal(5.0, res.Received.Tao())
	require.Equal(uint16(0), res.Received.Netuid())
	require.Equal(0.0, res.SlippagePct)
	require.True(res.Slippage.IsZero())

	received, pctStr, pctFloat := UnstakeSlippage(pool, amount)
	require.Equal(5.0, received.Tao())
	require.Equal("N/A", pctStr)
	require.Equal(0.0, pctFloat)
}

func TestSwapMonotonicity(t *testing.T) {
	require := require.New(t)

	pool := dynamicPool(3, 1000, 500, 2000)

	// A larger input never gets a better average rate.
	prevRate := 0.0
	first := true
	for _, amt := range []float64{1, 5, 10, 50, 100, 400} {
		res := pool.AlphaToTaoWithSlippage(balance.FromTao(amt, 3))
		rate := res.Received.Tao() / amt
		if !first {
			require.LessOrEqual(rate, prevRate, "rate improved for amount %v", amt)
		}
		prevRate = rate
		first = false
	}
}

func TestSwapIdempotent(t *testing.T) {
	require := require.New(t)

	pool := dynamicPool(1, 1234.5, 678.9, 4000)
	amount := balance.FromTao(42, 1)

	a := pool.AlphaToTaoWithSlippage(amount)
	b := pool.AlphaToTaoWithSlippage(amount)
	require.Equal(a, b)
}

func TestTaoToAlphaWithSlippage(t *testing.T) {
	require := require.New(t)

	pool := dynamicPool(1, 1000, 500, 2000)
	amount := balance.FromTao(20, 0)

	res := pool.TaoToAlphaWithSlippage(amount)
	// Linear value is 10 alpha; the pool pays out strictly less.
	require.Less(res.Received.Tao(), 10.0)
	require.Greater(res.Received.Tao(), 0.0)
	require.Equal(uint16(1), res.Received.Netuid())
	require.Greater(res.SlippagePct, 0.0)
}

func TestZeroReserves(t *testing.T) {
	require := require.New(t)

	pool := dynamicPool(1, 0, 0, 0)
	res := pool.AlphaToTaoWithSlippage(balance.FromTao(10, 1))
	require.True(res.Received.IsZero())
	require.Equal(0.0, res.SlippagePct)

	res = pool.TaoToAlphaWithSlippage(balance.FromTao(10, 0))
	require.True(res.Received.IsZero())
	require.Equal(0.0, res.SlippagePct)
}

func TestZeroAmount(t *testing.T) {
	require := require.New(t)

	pool := dynamicPool(1, 1000, 500, 2000)
	res := pool.AlphaToTaoWithSlippage(balance.FromRao(0, 1))
	require.True(res.Received.IsZero())
	require.Equal(0.0, res.SlippagePct)
}

func TestOwnershipTao(t *testing.T) {
	require := require.New(t)

	pool := dynamicPool(1, 1000, 500, 2000)
	// 200 alpha of 2000 issued backs 10% of the 1000 TAO reserve.
	own := pool.OwnershipTao(balance.FromTao(200, 1))
	require.InDelta(100.0, own.Tao(), 1e-9)

	// Zero issuance degenerates to zero, not a division fault.
	empty := dynamicPool(2, 1000, 500, 0)
	require.True(empty.OwnershipTao(balance.FromTao(200, 2)).IsZero())
}

func TestUnstakeSlippageFormatting(t *testing.T) {
	require := require.New(t)

	pool := dynamicPool(1, 1000, 500, 2000)
	received, pctStr, pctFloat := UnstakeSlippage(pool, balance.FromTao(10, 1))
	require.Less(received.Tao(), 20.0)
	require.Greater(pctFloat, 0.0)
	require.Regexp(`^\d+\.\d{4} %$`, pctStr)
}
