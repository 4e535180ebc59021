package funtext

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ParseHTML parses an HTML document and returns a Document rooted at its
// body element. Comments and doctypes are dropped; class and style
// attributes are split into the node's class list and inline Style.
func ParseHTML(r io.Reader) (*Document, error) {
	top, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("funtext: parse html: %w", err)
	}
	body := findElement(top, atom.Body)
	if body == nil {
		return nil, fmt.Errorf("funtext: parse html: no body element")
	}
	doc := NewDocument()
	copyAttrs(doc.root, body)
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if n := fromHTML(c); n != nil {
			doc.root.AddChild(n)
		}
	}
	return doc, nil
}

// ParseHTMLString is ParseHTML over a string.
func ParseHTMLString(s string) (*Document, error) {
	return ParseHTML(strings.NewReader(s))
}

func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}

func fromHTML(h *html.Node) *Node {
	switch h.Type {
	case html.TextNode:
		return NewText(h.Data)
	case html.ElementNode:
		n := NewElement(h.Data)
		copyAttrs(n, h)
		for c := h.FirstChild; c != nil; c = c.NextSibling {
			if child := fromHTML(c); child != nil {
				n.AddChild(child)
			}
		}
		return n
	default:
		return nil
	}
}

func copyAttrs(n *Node, h *html.Node) {
	for _, a := range h.Attr {
		switch a.Key {
		case "class":
			for _, c := range strings.Fields(a.Val) {
				n.AddClass(c)
			}
		case "style":
			n.Style = ParseStyle(a.Val)
		default:
			n.SetAttr(a.Key, a.Val)
		}
	}
}

// WriteHTML writes the document's root element and its subtree as HTML.
func (d *Document) WriteHTML(w io.Writer) error {
	if err := html.Render(w, toHTML(d.root)); err != nil {
		return fmt.Errorf("funtext: render html: %w", err)
	}
	return nil
}

// HTML returns the node and its subtree serialized as HTML.
func (n *Node) HTML() string {
	var buf bytes.Buffer
	// Rendering into a bytes.Buffer cannot fail.
	_ = html.Render(&buf, toHTML(n))
	return buf.String()
}

func toHTML(n *Node) *html.Node {
	if n.Type == NodeTypeText {
		return &html.Node{Type: html.TextNode, Data: n.Text}
	}
	h := &html.Node{
		Type:     html.ElementNode,
		Data:     n.Tag,
		DataAtom: atom.Lookup([]byte(n.Tag)),
	}
	if len(n.classes) > 0 {
		h.Attr = append(h.Attr, html.Attribute{Key: "class", Val: strings.Join(n.classes, " ")})
	}
	for _, a := range n.attrs {
		h.Attr = append(h.Attr, html.Attribute{Key: a.Key, Val: a.Val})
	}
	if css := n.Style.CSS(); css != "" {
		h.Attr = append(h.Attr, html.Attribute{Key: "style", Val: css})
	}
	for _, c := range n.children {
		h.AppendChild(toHTML(c))
	}
	return h
}
