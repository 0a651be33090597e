// Package goquery implements the pagesnip element tree over a rendered HTML
// snapshot parsed with goquery. Geometry and visibility come from the layout
// annotations a renderer writes onto each element (see pagesnip.RectAttr).
package goquery

import (
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/pagesnip"
	"golang.org/x/net/html"
)

// Default viewport used when the page carries no viewport annotation.
const (
	DefaultViewportWidth  = 1280
	DefaultViewportHeight = 800
)

// Ensure Document implements pagesnip.Document at compile time.
var _ pagesnip.Document = (*Document)(nil)

// Document is a parsed page. Reads are live: removing nodes through
// Selection is immediately visible to every Element of the document.
type Document struct {
	doc      *goquery.Document
	url      string
	viewport pagesnip.Rect

	mu       sync.Mutex
	elements map[*html.Node]*Element
}

// Option configures a Document.
type Option func(*Document)

// WithViewport sets the viewport used when the page has no viewport annotation.
func WithViewport(width, height float64) Option {
	return func(d *Document) {
		d.viewport = pagesnip.Rect{Width: width, Height: height}
	}
}

// NewDocument parses HTML from r.
func NewDocument(r io.Reader, url string, opts ...Option) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, pagesnip.Errorf(pagesnip.EINVALID, "failed to parse HTML: %v", err)
	}

	d := &Document{
		doc:      doc,
		url:      url,
		viewport: pagesnip.Rect{Width: DefaultViewportWidth, Height: DefaultViewportHeight},
		elements: make(map[*html.Node]*Element),
	}
	for _, opt := range opts {
		opt(d)
	}

	if v, ok := doc.Find("html").First().Attr(pagesnip.ViewportAttr); ok {
		if w, h, ok := parseViewport(v); ok {
			d.viewport = pagesnip.Rect{Width: w, Height: h}
		}
	}

	return d, nil
}

// ParseHTML parses an HTML string.
func ParseHTML(s string, url string, opts ...Option) (*Document, error) {
	return NewDocument(strings.NewReader(s), url, opts...)
}

// URL returns the address the page was loaded from.
func (d *Document) URL() string {
	return d.url
}

// Root returns the <html> element.
func (d *Document) Root() pagesnip.Element {
	return d.first("html")
}

// Body returns the <body> element.
func (d *Document) Body() pagesnip.Element {
	return d.first("body")
}

// Viewport returns the viewport the page was rendered in.
func (d *Document) Viewport() pagesnip.Rect {
	return d.viewport
}

// Query returns all elements matching selector in document order.
func (d *Document) Query(selector string) ([]pagesnip.Element, error) {
	m, err := compile(selector)
	if err != nil {
		return nil, err
	}
	return d.wrapAll(d.doc.FindMatcher(m).Nodes), nil
}

// Selection exposes the underlying goquery selection, e.g. for mutating the
// tree the way page scripts would.
func (d *Document) Selection() *goquery.Selection {
	return d.doc.Selection
}

// HTML serializes the current state of the document.
func (d *Document) HTML() (string, error) {
	return d.doc.Html()
}

func (d *Document) first(tag string) pagesnip.Element {
	sel := d.doc.Find(tag).First()
	if sel.Length() == 0 {
		return nil
	}
	return d.wrap(sel.Nodes[0])
}

// wrap returns the canonical Element for n so elements compare with ==.
func (d *Document) wrap(n *html.Node) *Element {
	d.mu.Lock()
	defer d.mu.Unlock()

	if el, ok := d.elements[n]; ok {
		return el
	}
	el := &Element{doc: d, node: n}
	d.elements[n] = el
	return el
}

func (d *Document) wrapAll(nodes []*html.Node) []pagesnip.Element {
	elements := make([]pagesnip.Element, 0, len(nodes))
	for _, n := range nodes {
		if n.Type == html.ElementNode {
			elements = append(elements, d.wrap(n))
		}
	}
	return elements
}

// root returns the document node every attached element descends from.
func (d *Document) root() *html.Node {
	return d.doc.Nodes[0]
}

// compile parses a CSS selector group, reporting syntax errors as EINVALID.
func compile(selector string) (goquery.Matcher, error) {
	if strings.TrimSpace(selector) == "" {
		return nil, pagesnip.Errorf(pagesnip.EINVALID, "empty selector")
	}
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, pagesnip.Errorf(pagesnip.EINVALID, "invalid selector %q: %v", selector, err)
	}
	return sel, nil
}

// parseViewport parses "WIDTHxHEIGHT".
func parseViewport(s string) (float64, float64, bool) {
	w, h, ok := strings.Cut(strings.TrimSpace(s), "x")
	if !ok {
		return 0, 0, false
	}
	width, err := strconv.ParseFloat(w, 64)
	if err != nil || width <= 0 {
		return 0, 0, false
	}
	height, err := strconv.ParseFloat(h, 64)
	if err != nil || height <= 0 {
		return 0, 0, false
	}
	return width, height, true
}
