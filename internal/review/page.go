package review

import (
	"fmt"
	"io"
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/ppiankov/diatax/internal/model"
)

// Page is the data behind the per-call review view
type Page struct {
	CallID     string
	Keyword    string
	Employee   []string
	Customer   []string
	Categories []model.Category
	Pending    []string // unclassified keywords offered in the picker
	Notice     string   // result of the last classification, if any
}

const pageStyle = `body{font-family:sans-serif;margin:2em;}
.side{display:inline-block;vertical-align:top;width:45%;margin-right:2%;}
mark{background:yellow;}
li{margin:.3em 0;}`

// RenderPage writes a standalone HTML document for p. All transcript text is
// escaped by the renderer; matches are wrapped in <mark>.
func RenderPage(w io.Writer, p Page) error {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := element(atom.Html, "lang", "es")
	doc.AppendChild(root)

	head := element(atom.Head)
	head.AppendChild(element(atom.Meta, "charset", "utf-8"))
	head.AppendChild(withText(element(atom.Title), "Call "+p.CallID))
	head.AppendChild(withText(element(atom.Style), pageStyle))
	root.AppendChild(head)

	body := element(atom.Body)
	root.AppendChild(body)
	body.AppendChild(withText(element(atom.H1), "Call "+p.CallID))
	if p.Notice != "" {
		body.AppendChild(withText(element(atom.P, "class", "notice"), p.Notice))
	}

	body.AppendChild(pickerForm(p))
	if p.Keyword != "" && len(p.Categories) > 0 {
		body.AppendChild(classifyForm(p))
	}

	if p.Keyword != "" {
		n := countMatches(p.Employee, p.Keyword) + countMatches(p.Customer, p.Keyword)
		body.AppendChild(withText(element(atom.P, "class", "summary"),
			fmt.Sprintf("%q: %d occurrence(s)", p.Keyword, n)))
	}

	body.AppendChild(side("Employee", p.Employee, p.Keyword))
	body.AppendChild(side("Customer", p.Customer, p.Keyword))

	return html.Render(w, doc)
}

func pickerForm(p Page) *html.Node {
	form := element(atom.Form, "method", "get", "action", "/review/"+p.CallID)

	sel := element(atom.Select, "name", "highlight")
	for _, kw := range p.Pending {
		opt := withText(element(atom.Option, "value", kw), kw)
		if kw == p.Keyword {
			opt.Attr = append(opt.Attr, html.Attribute{Key: "selected"})
		}
		sel.AppendChild(opt)
	}
	form.AppendChild(sel)
	form.AppendChild(withText(element(atom.Button, "type", "submit"), "Highlight"))
	return form
}

// classifyForm posts the highlighted keyword and a chosen category back to
// the review page.
func classifyForm(p Page) *html.Node {
	form := element(atom.Form, "method", "post", "action", "/review/"+p.CallID)
	form.AppendChild(element(atom.Input, "type", "hidden", "name", "keyword", "value", p.Keyword))

	sel := element(atom.Select, "name", "category")
	for _, c := range p.Categories {
		sel.AppendChild(withText(element(atom.Option, "value", string(c)), c.Short()))
	}
	form.AppendChild(sel)
	form.AppendChild(withText(element(atom.Button, "type", "submit"), "Classify"))
	return form
}

func side(title string, lines []string, keyword string) *html.Node {
	div := element(atom.Div, "class", "side")
	div.AppendChild(withText(element(atom.H2), title+" ("+strconv.Itoa(len(lines))+")"))

	ol := element(atom.Ol)
	for _, l := range Lines(lines, keyword) {
		li := element(atom.Li)
		prev := 0
		for _, s := range l.Matches {
			appendText(li, l.Text[prev:s.Start])
			li.AppendChild(withText(element(atom.Mark), l.Text[s.Start:s.End]))
			prev = s.End
		}
		appendText(li, l.Text[prev:])
		ol.AppendChild(li)
	}
	div.AppendChild(ol)
	return div
}

func countMatches(lines []string, keyword string) int {
	n := 0
	for _, l := range lines {
		n += len(Find(l, keyword))
	}
	return n
}

// element builds an element node; attrs are key/value pairs
func element(a atom.Atom, attrs ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

func withText(n *html.Node, text string) *html.Node {
	appendText(n, text)
	return n
}

func appendText(n *html.Node, text string) {
	if text == "" {
		return
	}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}
