package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/require"
)

// isolateXDG points the XDG directories at a temp dir so cache and export
// files stay out of the real user directories.
func isolateXDG(t *testing.T) {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", filepath.Join(tmp, "cache"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(tmp, "data"))
	xdg.Reload()
	t.Cleanup(xdg.Reload)
}

func TestExportHTMLUsesTypedTable(t *testing.T) {
	require := require.New(t)
	isolateXDG(t)

	ct := &CachedTable{
		Command: "stake_show",
		Title:   "Stake Show",
		Header:  []string{"Coldkey", "Balance"},
		Rows:    [][]string{{"w1", "τ 2.5000"}},
		Typed:   [][]interface{}{{"w1", 2.5}},
		Types:   []string{"TEXT", "REAL"},
	}
	require.NoError(ct.Persist())

	path, err := ct.ExportHTML()
	require.NoError(err)
	data, err := os.ReadFile(path)
	require.NoError(err)

	// The export carries the raw value from the typed table, not the
	// rendered terminal cell.
	require.Contains(string(data), "<td>2.5</td>")
	require.NotContains(string(data), "τ 2.5000")
}

func TestExportHTMLFallsBackToRenderedRows(t *testing.T) {
	require := require.New(t)
	isolateXDG(t)

	// No Types, so no typed table is persisted.
	ct := &CachedTable{
		Command: "subnets_list",
		Title:   "Subnets",
		Header:  []string{"Netuid", "Price"},
		Rows:    [][]string{{"1", "2.000000"}},
	}
	require.NoError(ct.Persist())

	path, err := ct.ExportHTML()
	require.NoError(err)
	data, err := os.ReadFile(path)
	require.NoError(err)
	require.Contains(string(data), "<td>2.000000</td>")
}
