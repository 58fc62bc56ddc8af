// Package htmlexport renders a cached result table into a standalone HTML
// page, the only machine-shareable output mode of the CLI.
package htmlexport

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Page is the data rendered into the HTML document.
type Page struct {
	Title   string
	Summary string
	Columns []string
	Rows    [][]string
}

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: -apple-system, "Segoe UI", sans-serif; margin: 2rem; background: #101014; color: #e8e8e8; }
h1 { font-size: 1.3rem; }
p.summary { color: #9a9aa2; }
table { border-collapse: collapse; width: 100%; }
th, td { text-align: left; padding: 0.35rem 0.8rem; border-bottom: 1px solid #2a2a33; }
th { color: #c9c9d4; border-bottom: 2px solid #44444f; }
tr:hover td { background: #1a1a21; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{if .Summary}}<p class="summary">{{.Summary}}</p>{{end}}
<table>
<thead><tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}</tbody>
</table>
</body>
</html>
`))

// Render writes the page document to w.
func Render(w io.Writer, p Page) error {
	if err := pageTmpl.Execute(w, p); err != nil {
		return fmt.Errorf("failed to render HTML: %w", err)
	}
	return nil
}

// WriteFile renders the page into the XDG data dir and returns the file
// path.
func WriteFile(command string, p Page) (string, error) {
	path, err := xdg.DataFile(filepath.Join("btcli", command+".html"))
	if err != nil {
		return "", fmt.Errorf("failed to resolve export path: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()
	if err := Render(f, p); err != nil {
		return "", err
	}
	return path, nil
}
