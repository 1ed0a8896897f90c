package export

import (
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/layoutkit/model"
)

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, Data: a.String(), DataAtom: a, Attr: attrs}
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

// exportHTML renders a standalone document with one element per
// component: <table> for tables, <p> for paragraphs.
func (e *Exporter) exportHTML(comps []model.Component, w io.Writer) error {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := element(atom.Html)
	doc.AppendChild(root)

	head := element(atom.Head)
	head.AppendChild(element(atom.Meta, attr("charset", "utf-8")))
	title := element(atom.Title)
	title.AppendChild(text(e.config.Title))
	head.AppendChild(title)
	root.AppendChild(head)

	body := element(atom.Body)
	root.AppendChild(body)
	for _, c := range comps {
		if n := componentNode(c); n != nil {
			body.AppendChild(n)
		}
	}
	return html.Render(w, doc)
}

func componentNode(c model.Component) *html.Node {
	page := attr("data-page", strconv.Itoa(c.Page))
	switch {
	case c.Table != nil:
		return tableNode(c.Table, page)
	case c.Text != nil:
		p := element(atom.P, page)
		for i, line := range strings.Split(c.Text.Text, "\n") {
			if i > 0 {
				p.AppendChild(element(atom.Br))
			}
			p.AppendChild(text(line))
		}
		return p
	}
	return nil
}

func tableNode(t *model.TableComponent, page html.Attribute) *html.Node {
	table := element(atom.Table, page, attr("data-origin", string(t.Origin)))
	rows := tableRows(t)
	if len(rows) == 0 {
		return table
	}

	thead := element(atom.Thead)
	thead.AppendChild(rowNode(atom.Th, rows[0]))
	table.AppendChild(thead)

	tbody := element(atom.Tbody)
	for _, r := range rows[1:] {
		tbody.AppendChild(rowNode(atom.Td, r))
	}
	table.AppendChild(tbody)
	return table
}

func rowNode(cell atom.Atom, cells []string) *html.Node {
	tr := element(atom.Tr)
	for _, s := range cells {
		td := element(cell)
		td.AppendChild(text(s))
		tr.AppendChild(td)
	}
	return tr
}
