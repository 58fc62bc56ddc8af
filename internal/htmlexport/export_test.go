package htmlexport

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	require := require.New(t)

	var buf bytes.Buffer
	err := Render(&buf, Page{
		Title:   "Stake Show",
		Summary: "Total Balance: τ 10.00000",
		Columns: []string{"Coldkey", "Balance"},
		Rows:    [][]string{{"w1", "τ 10.0000"}},
	})
	require.NoError(err)

	out := buf.String()
	require.Contains(out, "<title>Stake Show</title>")
	require.Contains(out, "Total Balance: τ 10.00000")
	require.Contains(out, "<th>Coldkey</th>")
	require.Contains(out, "<td>τ 10.0000</td>")
}

func TestRenderEscapesContent(t *testing.T) {
	require := require.New(t)

	var buf bytes.Buffer
	err := Render(&buf, Page{
		Title:   "x",
		Columns: []string{"c"},
		Rows:    [][]string{{`<script>alert(1)</script>`}},
	})
	require.NoError(err)
	require.NotContains(buf.String(), "<script>alert(1)</script>")
}

func TestRenderDeterministic(t *testing.T) {
	require := require.New(t)

	p := Page{Title: "t", Columns: []string{"a", "b"}, Rows: [][]string{{"1", "2"}, {"3", "4"}}}
	var first, second bytes.Buffer
	require.NoError(Render(&first, p))
	require.NoError(Render(&second, p))
	require.Equal(first.String(), second.String())
}
