package cache

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "btcli.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRowsRoundTrip(t *testing.T) {
	require := require.New(t)
	s := openTestStore(t)

	rendered := [][]string{
		{"w1", "τ 10.0000", "", "", ""},
		{"", "", "hk1", "5AAA", "τ 2.5000"},
	}
	meta := map[string]string{
		"total_stake":   "τ 2.50000",
		"total_balance": "τ 10.00000",
	}
	require.NoError(s.SaveRows("stakeshow", meta, rendered))

	// Replay reproduces the rows byte for byte.
	got, gotMeta, err := s.Rows("stakeshow")
	require.NoError(err)
	require.Equal(rendered, got)
	require.Equal("τ 2.50000", gotMeta["total_stake"])
	require.Equal("τ 10.00000", gotMeta["total_balance"])
}

func TestTypedTableRoundTrip(t *testing.T) {
	require := require.New(t)
	s := openTestStore(t)

	cols := []Column{
		{Name: "COLDKEY", Type: "TEXT"},
		{Name: "BALANCE", Type: "REAL"},
		{Name: "CHILD", Type: "INTEGER"},
	}
	rows := [][]interface{}{
		{"w1", 10.5, 0},
		{"w2", nil, 1},
	}
	require.NoError(s.SaveTable("stakeshow", cols, rows))

	gotCols, gotRows, err := s.Table("stakeshow")
	require.NoError(err)
	require.Equal([]string{"COLDKEY", "BALANCE", "CHILD"}, gotCols)
	require.Len(gotRows, 2)
	require.Equal("w1", gotRows[0][0])
	require.Equal("", gotRows[1][1]) // NULL renders empty

	// Saving again replaces rather than appends.
	require.NoError(s.SaveTable("stakeshow", cols, rows[:1]))
	_, gotRows, err = s.Table("stakeshow")
	require.NoError(err)
	require.Len(gotRows, 1)
}

func TestMissingCacheIsRecoverable(t *testing.T) {
	require := require.New(t)
	s := openTestStore(t)

	_, _, err := s.Rows("nevercached")
	require.ErrorIs(err, ErrNoCachedResult)

	_, err = s.Metadata("nevercached")
	require.ErrorIs(err, ErrNoCachedResult)

	_, _, err = s.Table("nevercached")
	require.ErrorIs(err, ErrNoCachedResult)
}

func TestCorruptRowsAreRecoverable(t *testing.T) {
	require := require.New(t)
	s := openTestStore(t)

	require.NoError(s.SaveMetadata("stakeshow", map[string]string{"rows": "{not json"}))
	_, _, err := s.Rows("stakeshow")
	require.ErrorIs(err, ErrNoCachedResult)
}

func TestCommandsAreIsolated(t *testing.T) {
	require := require.New(t)
	s := openTestStore(t)

	require.NoError(s.SaveRows("stakeshow", nil, [][]string{{"a"}}))
	require.NoError(s.SaveRows("subnetslist", nil, [][]string{{"b"}}))

	got, _, err := s.Rows("stakeshow")
	require.NoError(err)
	require.Equal([][]string{{"a"}}, got)

	got, _, err = s.Rows("subnetslist")
	require.NoError(err)
	require.Equal([][]string{{"b"}}, got)
}
