package render

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const pageStyle = `body { font-family: sans-serif; margin: 2em; }
pre { background: #f6f6f6; padding: 1em; }
mark { background: #ffd0d0; }`

// HTML writes a standalone page with the highlighted document followed by the
// report. Text is escaped by html.Render.
func HTML(w io.Writer, title string, s Summary) error {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := element(atom.Html)
	doc.AppendChild(root)

	head := element(atom.Head)
	head.AppendChild(element(atom.Meta, html.Attribute{Key: "charset", Val: "utf-8"}))
	head.AppendChild(withText(element(atom.Title), title))
	head.AppendChild(withText(element(atom.Style), pageStyle))
	root.AppendChild(head)

	body := element(atom.Body)
	root.AppendChild(body)
	body.AppendChild(withText(element(atom.H1), title))
	body.AppendChild(withText(element(atom.P), fmt.Sprintf("Checked %d words.", s.Words)))

	pre := element(atom.Pre)
	for _, line := range s.Lines {
		pos := 0
		if !s.Matcher.Empty() {
			for _, sp := range s.Matcher.FindAll(line) {
				appendText(pre, line[pos:sp.Start])
				pre.AppendChild(withText(element(atom.Mark), line[sp.Start:sp.End]))
				pos = sp.End
			}
		}
		appendText(pre, line[pos:]+"\n")
	}
	body.AppendChild(pre)

	if s.Report.Empty() {
		body.AppendChild(withText(element(atom.P), AllClearMessage))
	} else {
		ul := element(atom.Ul)
		for _, lm := range s.Report.Matched() {
			item := fmt.Sprintf("Line %d: %s", lm.Index+s.LineBase, strings.Join(lm.Tokens, ", "))
			ul.AppendChild(withText(element(atom.Li), item))
		}
		body.AppendChild(ul)
	}

	return html.Render(w, doc)
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func withText(n *html.Node, s string) *html.Node {
	appendText(n, s)
	return n
}

func appendText(n *html.Node, s string) {
	if s == "" {
		return
	}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: s})
}
