// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package csvio

import (
	"bufio"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/danielhkuo/quickly-rank/ranking"
)

// ExportHeader is the first line written by Export.
var ExportHeader = []string{"rank", FieldID, FieldTitle, "score", FieldDescription, FieldImageURL}

const (
	exportPrefix    = "ranked_"
	defaultBaseName = "items.csv"
)

// Export writes ranked as comma-delimited text. Line breaks inside a field
// are written as LF.
func Export(w io.Writer, ranked []ranking.Ranked) error {
	bw := bufio.NewWriter(w)
	writeRow(bw, ExportHeader)
	for _, r := range ranked {
		writeRow(bw, []string{
			strconv.Itoa(r.Rank),
			r.Item.ID.String(),
			r.Item.Title,
			strconv.Itoa(r.Score),
			r.Item.Description,
			r.Item.ImageURL,
		})
	}
	return bw.Flush()
}

// WriteItems writes items in the import layout, so the output can be edited
// and imported again.
func WriteItems(w io.Writer, items []ranking.Item) error {
	bw := bufio.NewWriter(w)
	writeRow(bw, requiredFields)
	for _, item := range items {
		writeRow(bw, []string{item.ID.String(), item.Title, item.Description, item.ImageURL})
	}
	return bw.Flush()
}

// ExportFilename returns the download name for a ranking of source.
func ExportFilename(source string) string {
	base := filepath.Base(strings.ReplaceAll(source, `\`, "/"))
	if source == "" || base == "." || base == "/" {
		base = defaultBaseName
	}
	return exportPrefix + base
}

func writeRow(w *bufio.Writer, fields []string) {
	for i, f := range fields {
		if i > 0 {
			w.WriteByte(',')
		}
		w.WriteString(quoteField(f))
	}
	w.WriteByte('\n')
}

// quoteField wraps f in double quotes when it holds a comma, a quote or a
// line break. Inner quotes are doubled. CR-LF inside a field is written as
// LF, which is what Import reads back either way.
func quoteField(f string) string {
	if !strings.ContainsAny(f, ",\"\r\n") {
		return f
	}
	f = strings.ReplaceAll(f, "\r\n", "\n")
	return `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
}
