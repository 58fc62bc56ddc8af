package balance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestConversions(t *testing.T) {
	require := require.New(t)

	b := FromTao(1.5, 0)
	require.Equal(int64(1_500_000_000), b.Rao())
	require.Equal(1.5, b.Tao())

	require.Equal(int64(1), FromRao(1, 0).Rao())
	require.True(decimal.New(1, -9).Equal(FromRao(1, 0).Decimal()))

	// Round-trips through decimal keep full rao precision.
	d := decimal.RequireFromString("0.123456789")
	require.Equal(int64(123_456_789), FromDecimal(d, 3).Rao())
	require.Equal(uint16(3), FromDecimal(d, 3).Netuid())
}

func TestArithmeticUnitTracking(t *testing.T) {
	require := require.New(t)

	a := FromTao(2, 1)
	b := FromTao(0.5, 1)

	sum, err := a.Add(b)
	require.NoError(err)
	require.Equal(int64(2_500_000_000), sum.Rao())

	diff, err := a.Sub(b)
	require.NoError(err)
	require.Equal(int64(1_500_000_000), diff.Rao())

	_, err = a.Add(FromTao(1, 2))
	require.ErrorIs(err, ErrUnitMismatch)
	_, err = a.Sub(FromTao(1, 0))
	require.ErrorIs(err, ErrUnitMismatch)
}

func TestWithUnit(t *testing.T) {
	require := require.New(t)

	b := FromTao(5, 3).WithUnit(0)
	require.Equal(uint16(0), b.Netuid())
	require.Equal(int64(5_000_000_000), b.Rao())
}

func TestString(t *testing.T) {
	require := require.New(t)

	require.Equal("τ 1,234.5678", FromTao(1234.5678, 0).String())
	require.Equal("12.3456 β", FromTao(12.3456, 2).String())
	require.Equal("τ -0.5000", FromTao(-0.5, 0).String())
}

func TestUnitSymbol(t *testing.T) {
	require := require.New(t)

	require.Equal("τ", UnitSymbol(0))
	require.Equal("α", UnitSymbol(1))
	require.Equal("β", UnitSymbol(2))
	// Symbols cycle once the alphabet runs out.
	require.Equal(UnitSymbol(1), UnitSymbol(uint16(1+len(greekUnits))))
}

func TestMillify(t *testing.T) {
	require := require.New(t)

	require.Equal("999.99", Millify(999.99))
	require.Equal("1.23k", Millify(1234))
	require.Equal("12.35m", Millify(12_345_678))
	require.Equal("1.00b", Millify(1e9))
	require.Equal("2.50t", Millify(2.5e12))
	require.Equal("-1.23k", Millify(-1234))
}
