package export

import (
	"bufio"
	"io"
	"strings"

	"github.com/tsawler/layoutkit/model"
)

var cellEscaper = strings.NewReplacer("|", `\|`, "\r\n", " ", "\n", " ")

// exportMarkdown writes paragraphs as text blocks and tables as pipe
// tables, separated by blank lines.
func (e *Exporter) exportMarkdown(comps []model.Component, w io.Writer) error {
	bw := bufio.NewWriter(w)
	for i, c := range comps {
		if i > 0 {
			bw.WriteString("\n")
		}
		switch {
		case c.Table != nil:
			writeMarkdownTable(bw, c.Table)
		case c.Text != nil:
			for _, line := range strings.Split(c.Text.Text, "\n") {
				// a trailing double space keeps the line break
				bw.WriteString(line)
				bw.WriteString("  \n")
			}
		}
	}
	return bw.Flush()
}

func writeMarkdownTable(w *bufio.Writer, t *model.TableComponent) {
	rows := tableRows(t)
	if len(rows) == 0 {
		return
	}
	writeRow := func(cells []string) {
		for _, cell := range cells {
			w.WriteString("| ")
			w.WriteString(cellEscaper.Replace(cell))
			w.WriteString(" ")
		}
		w.WriteString("|\n")
	}

	writeRow(rows[0])
	for range rows[0] {
		w.WriteString("|---")
	}
	w.WriteString("|\n")
	for _, r := range rows[1:] {
		writeRow(r)
	}
}
