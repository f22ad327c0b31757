// internal/app/system/grid/export.go
package grid

import (
	"encoding/csv"
	"io"
	"path"
	"strings"
)

// utf8BOM makes spreadsheet tools read the file as Unicode.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DefaultExportFilename is used when neither the request nor the caller
// names the file.
const DefaultExportFilename = "export.csv"

// ExportOptions tunes ExportCSV.
type ExportOptions struct {
	// OnlySelected exports the rows named by Selected instead of the
	// filtered rows. Sort order still applies; filters do not.
	OnlySelected bool
	Selected     []string
	// SkipBOM omits the UTF-8 byte order mark.
	SkipBOM bool
}

// ExportCSV writes a header row plus one record per exported row and
// returns the number of data rows written. By default the exported rows are
// exactly the rows passing the current filters, in sort order, across all
// pages.
func (g *Grid[T]) ExportCSV(w io.Writer, req Request, opts ExportOptions) (int, error) {
	var idx []int
	if opts.OnlySelected {
		idx = g.selectedIndices(opts.Selected)
		g.sortIndices(idx, req.Sort)
	} else {
		idx = g.visible(req)
	}

	if !opts.SkipBOM {
		if _, err := w.Write(utf8BOM); err != nil {
			return 0, err
		}
	}

	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	record := make([]string, len(g.cols))
	for i, c := range g.cols {
		record[i] = c.Header()
	}
	if err := cw.Write(record); err != nil {
		return 0, err
	}

	n := 0
	for _, i := range idx {
		for j, c := range g.cols {
			record[j] = c.TextOf(g.rows[i])
		}
		if err := cw.Write(record); err != nil {
			return n, err
		}
		n++
	}

	cw.Flush()
	return n, cw.Error()
}

// Filename returns a safe download name: requested if given, else fallback,
// else DefaultExportFilename. Directory parts and quotes are stripped and a
// ".csv" suffix is enforced.
func Filename(requested, fallback string) string {
	name := clean(requested)
	if name == "" {
		name = clean(fallback)
	}
	if name == "" {
		name = DefaultExportFilename
	}
	if !strings.HasSuffix(strings.ToLower(name), ".csv") {
		name += ".csv"
	}
	return name
}

func clean(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(name)
	name = strings.Map(func(r rune) rune {
		if r == '"' || r < 0x20 {
			return -1
		}
		return r
	}, name)
	if name == "." || name == ".." || name == "/" {
		return ""
	}
	return strings.TrimSpace(name)
}
