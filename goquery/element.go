package goquery

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagesnip"
	"golang.org/x/net/html"
)

// Ensure Element implements pagesnip.Element at compile time.
var _ pagesnip.Element = (*Element)(nil)

// Element is a node of a Document.
type Element struct {
	doc  *Document
	node *html.Node
}

// Node returns the underlying HTML node.
func (e *Element) Node() *html.Node {
	return e.node
}

// TagName returns the lowercase tag name.
func (e *Element) TagName() string {
	return e.node.Data
}

// ID returns the id attribute.
func (e *Element) ID() string {
	v, _ := e.Attr("id")
	return v
}

// Classes returns the class list.
func (e *Element) Classes() []string {
	v, _ := e.Attr("class")
	return strings.Fields(v)
}

// Attr returns an attribute value and whether it exists.
func (e *Element) Attr(name string) (string, bool) {
	return getAttr(e.node, name)
}

// SetAttr sets an attribute value.
func (e *Element) SetAttr(name, value string) {
	setAttr(e.node, name, value)
}

// RemoveAttr removes an attribute if present.
func (e *Element) RemoveAttr(name string) {
	removeAttr(e.node, name)
}

// Rect returns the geometry recorded in the layout annotation.
// Elements without an annotation have an empty rectangle.
func (e *Element) Rect() pagesnip.Rect {
	v, ok := e.Attr(pagesnip.RectAttr)
	if !ok {
		return pagesnip.Rect{}
	}
	parts := strings.Split(v, ",")
	if len(parts) != 4 {
		return pagesnip.Rect{}
	}
	var vals [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return pagesnip.Rect{}
		}
		vals[i] = f
	}
	return pagesnip.Rect{Top: vals[0], Left: vals[1], Width: vals[2], Height: vals[3]}
}

// Visible reports whether neither the element nor any ancestor is hidden.
func (e *Element) Visible() bool {
	for n := e.node; n != nil && n.Type == html.ElementNode; n = n.Parent {
		if isHidden(n) {
			return false
		}
	}
	return true
}

// Text returns the visible text with whitespace collapsed.
func (e *Element) Text() string {
	var sb strings.Builder
	collectText(e.node, &sb)
	return strings.Join(strings.Fields(sb.String()), " ")
}

// OuterHTML returns the serialized markup of the element with layout
// annotations removed.
func (e *Element) OuterHTML() string {
	var sb strings.Builder
	if err := html.Render(&sb, withoutAnnotations(e.node)); err != nil {
		return ""
	}
	return sb.String()
}

// Parent returns the parent element.
func (e *Element) Parent() pagesnip.Element {
	p := e.node.Parent
	if p == nil || p.Type != html.ElementNode {
		return nil
	}
	return e.doc.wrap(p)
}

// Children returns the element children.
func (e *Element) Children() []pagesnip.Element {
	var children []pagesnip.Element
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			children = append(children, e.doc.wrap(c))
		}
	}
	return children
}

// PrevSibling returns the previous element sibling.
func (e *Element) PrevSibling() pagesnip.Element {
	for s := e.node.PrevSibling; s != nil; s = s.PrevSibling {
		if s.Type == html.ElementNode {
			return e.doc.wrap(s)
		}
	}
	return nil
}

// NextSibling returns the next element sibling.
func (e *Element) NextSibling() pagesnip.Element {
	for s := e.node.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == html.ElementNode {
			return e.doc.wrap(s)
		}
	}
	return nil
}

// Query returns descendants matching selector.
func (e *Element) Query(selector string) ([]pagesnip.Element, error) {
	m, err := compile(selector)
	if err != nil {
		return nil, err
	}
	return e.doc.wrapAll(e.selection().FindMatcher(m).Nodes), nil
}

// Style returns the inline outline and background.
func (e *Element) Style() pagesnip.Style {
	v, _ := e.Attr("style")
	decls := parseDeclarations(v)
	return pagesnip.Style{
		Outline:    decls.get("outline"),
		Background: decls.get("background"),
	}
}

// SetStyle replaces the inline outline and background, keeping every other
// inline declaration as it was.
func (e *Element) SetStyle(style pagesnip.Style) {
	v, _ := e.Attr("style")
	decls := parseDeclarations(v)
	decls.set("outline", style.Outline)
	decls.set("background", style.Background)

	if s := decls.String(); s != "" {
		e.SetAttr("style", s)
	} else {
		e.RemoveAttr("style")
	}
}

// Attached reports whether the element is still reachable from its document.
func (e *Element) Attached() bool {
	root := e.doc.root()
	for n := e.node; n != nil; n = n.Parent {
		if n == root {
			return true
		}
	}
	return false
}

func (e *Element) selection() *goquery.Selection {
	return goquery.NewDocumentFromNode(e.node).Selection
}

// nonRendered lists elements whose content is never drawn.
var nonRendered = map[string]bool{
	"head":     true,
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
}

// isHidden reports whether n itself is hidden, regardless of ancestors.
func isHidden(n *html.Node) bool {
	if nonRendered[n.Data] {
		return true
	}
	if _, ok := getAttr(n, pagesnip.HiddenAttr); ok {
		return true
	}
	if _, ok := getAttr(n, "hidden"); ok {
		return true
	}
	v, _ := getAttr(n, "style")
	decls := parseDeclarations(v)
	return strings.EqualFold(decls.get("display"), "none") ||
		strings.EqualFold(decls.get("visibility"), "hidden")
}

// blockLevel lists elements whose boundaries separate words.
var blockLevel = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"br": true, "dd": true, "div": true, "dl": true, "dt": true,
	"figcaption": true, "figure": true, "footer": true, "form": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"header": true, "hr": true, "li": true, "main": true, "nav": true,
	"ol": true, "p": true, "pre": true, "section": true, "table": true,
	"td": true, "th": true, "tr": true, "ul": true,
}

func collectText(n *html.Node, sb *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(n.Data)
		return
	case html.ElementNode:
		if isHidden(n) {
			return
		}
	}

	block := n.Type == html.ElementNode && blockLevel[n.Data]
	if block {
		sb.WriteByte(' ')
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
	if block {
		sb.WriteByte(' ')
	}
}

// withoutAnnotations returns a detached deep copy of n without layout
// annotation attributes.
func withoutAnnotations(n *html.Node) *html.Node {
	c := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
	}
	for _, a := range n.Attr {
		if !strings.HasPrefix(a.Key, pagesnip.AnnotationPrefix) {
			c.Attr = append(c.Attr, a)
		}
	}
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		c.AppendChild(withoutAnnotations(ch))
	}
	return c
}

func getAttr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func removeAttr(n *html.Node, key string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			return
		}
	}
}
