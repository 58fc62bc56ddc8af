package common

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gztensor/btcli/internal/cache"
	"github.com/gztensor/btcli/internal/htmlexport"
	"github.com/gztensor/btcli/table"
)

// CachedTable is a rendered result table together with everything needed to
// replay it from the cache or export it as HTML.
type CachedTable struct {
	// Command keys the cache entry, e.g. "stake_show".
	Command string
	Title   string
	Summary string
	Header  []string
	// Rows are the rendered cells, replayed byte for byte by --reuse-last.
	Rows [][]string
	// Typed mirrors Rows with SQLite-typed values for the HTML export
	// table; Types carries the column types (TEXT, REAL, INTEGER).
	Typed [][]interface{}
	Types []string
}

// Print renders the table and its summary to stdout.
func (ct *CachedTable) Print() {
	if ct.Summary != "" {
		fmt.Println(ct.Summary)
		fmt.Println()
	}
	t := table.New()
	t.Header(ct.Header)
	cobra.CheckErr(t.Bulk(ct.Rows))
	cobra.CheckErr(t.Render())
}

// Persist writes the table to the reuse-last cache. Skipped entirely under
// --no-cache.
func (ct *CachedTable) Persist() error {
	if !ShouldCache() {
		return nil
	}
	path, err := cache.DefaultPath()
	if err != nil {
		return err
	}
	store, err := cache.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	header, err := json.Marshal(ct.Header)
	if err != nil {
		return fmt.Errorf("failed to encode cached header: %w", err)
	}
	meta := map[string]string{
		"title":   ct.Title,
		"summary": ct.Summary,
		"header":  string(header),
	}
	if err := store.SaveRows(ct.Command, meta, ct.Rows); err != nil {
		return err
	}

	if len(ct.Types) != len(ct.Header) {
		return nil
	}
	cols := make([]cache.Column, len(ct.Header))
	for i, name := range ct.Header {
		cols[i] = cache.Column{Name: name, Type: ct.Types[i]}
	}
	return store.SaveTable(ct.Command, cols, ct.Typed)
}

// LoadCachedTable replays the table cached for the given command.
func LoadCachedTable(command string) (*CachedTable, error) {
	path, err := cache.DefaultPath()
	if err != nil {
		return nil, err
	}
	store, err := cache.Open(path)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	rows, meta, err := store.Rows(command)
	if err != nil {
		return nil, err
	}
	ct := &CachedTable{
		Command: command,
		Title:   meta["title"],
		Summary: meta["summary"],
		Rows:    rows,
	}
	if err := json.Unmarshal([]byte(meta["header"]), &ct.Header); err != nil {
		return nil, cache.ErrNoCachedResult
	}
	return ct, nil
}

// ExportHTML writes the table to an HTML page in the XDG data dir and
// returns the file path. The page is built from the typed cache table when
// one was persisted, so the export carries the raw values rather than the
// rendered terminal cells; the rendered rows are the fallback.
func (ct *CachedTable) ExportHTML() (string, error) {
	columns, rows := ct.Header, ct.Rows
	if cols, typed, err := ct.typedRows(); err == nil {
		columns, rows = cols, typed
	}
	return htmlexport.WriteFile(ct.Command, htmlexport.Page{
		Title:   ct.Title,
		Summary: ct.Summary,
		Columns: columns,
		Rows:    rows,
	})
}

// typedRows reads the typed cache table persisted for this command.
func (ct *CachedTable) typedRows() ([]string, [][]string, error) {
	if !ShouldCache() {
		return nil, nil, cache.ErrNoCachedResult
	}
	path, err := cache.DefaultPath()
	if err != nil {
		return nil, nil, err
	}
	store, err := cache.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer store.Close()
	return store.Table(ct.Command)
}
