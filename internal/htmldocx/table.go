package htmldocx

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// table emits an HTML table as a Word table. A table inside a cell has no
// Word equivalent here and degrades to one paragraph per row.
func (w *walker) table(n *html.Node, t target, st blockState) {
	rows := tableRows(n)
	cols := 0
	for _, tr := range rows {
		cols = max(cols, len(rowCells(tr)))
	}
	if len(rows) == 0 || cols == 0 {
		return
	}

	if t.inCell {
		for _, tr := range rows {
			p := w.newParagraph(t, st)
			for i, cell := range rowCells(tr) {
				if i > 0 {
					p.Children = append(p.Children, textRun(" | ", format{}))
				}
				w.inlines(p, children(cell), format{}, t)
			}
		}
		return
	}

	tbl := w.doc.AddTable(len(rows), cols, defaultTableWidth, nil)
	tbl.Justification("center")

	for i, tr := range rows {
		cells := rowCells(tr)
		for j := range cols {
			cell := tbl.TableRows[i].TableCells[j]
			p := cell.AddParagraph()
			if j >= len(cells) {
				continue
			}
			src := cells[j]
			f := format{}
			if src.DataAtom == atom.Th {
				f.bold = true
				cell.Shade("clear", "auto", headerFill)
			}
			if align := cellAlignment(src); align != "" {
				p.Justification(align)
			}
			w.inlines(p, children(src), f, cellTarget(cell))
		}
	}
}

// tableRows returns the tr elements of thead, tbody and tfoot in order.
func tableRows(n *html.Node) []*html.Node {
	var rows []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.DataAtom {
		case atom.Tr:
			rows = append(rows, c)
		case atom.Thead, atom.Tbody, atom.Tfoot:
			rows = append(rows, tableRows(c)...)
		}
	}
	return rows
}

func rowCells(tr *html.Node) []*html.Node {
	var cells []*html.Node
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.DataAtom == atom.Td || c.DataAtom == atom.Th) {
			cells = append(cells, c)
		}
	}
	return cells
}

// cellAlignment reads GFM column alignment from align or style attributes.
func cellAlignment(n *html.Node) string {
	align := attr(n, "align")
	if align == "" {
		for decl := range strings.SplitSeq(attr(n, "style"), ";") {
			if name, value, ok := strings.Cut(decl, ":"); ok && strings.TrimSpace(name) == "text-align" {
				align = strings.TrimSpace(value)
			}
		}
	}
	switch align {
	case "left", "center", "right":
		return align
	default:
		return ""
	}
}
