package pagesnip

import "math"

// Layout annotation attributes. A renderer (see rod/) writes these onto every
// element of a page before serializing it, so a static parse of the HTML
// still knows where each element was drawn and whether it was visible.
const (
	// AnnotationPrefix is shared by every layout annotation attribute.
	// Annotations are never part of serialized element markup.
	AnnotationPrefix = "data-pagesnip-"

	// RectAttr holds "top,left,width,height" in viewport pixels.
	RectAttr = "data-pagesnip-rect"

	// HiddenAttr is present when the computed style hides the element.
	HiddenAttr = "data-pagesnip-hidden"

	// ViewportAttr holds "WIDTHxHEIGHT" on the root element.
	ViewportAttr = "data-pagesnip-viewport"
)

// Rect is an element's bounding box in viewport coordinates.
type Rect struct {
	Top    float64 `json:"top"`
	Left   float64 `json:"left"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Area returns the rectangle's area in square pixels.
func (r Rect) Area() float64 {
	return r.Width * r.Height
}

// Center returns the coordinates of the rectangle's center.
func (r Rect) Center() (x, y float64) {
	return r.Left + r.Width/2, r.Top + r.Height/2
}

// HalfDiagonal returns half of the rectangle's diagonal length.
func (r Rect) HalfDiagonal() float64 {
	return math.Hypot(r.Width, r.Height) / 2
}

// Style is the presentation state touched by highlighting.
// Empty fields mean the property is not set inline.
type Style struct {
	Outline    string
	Background string
}

// Element is a node in the rendered page tree. Elements are owned by the
// page; this system only reads them and temporarily changes their inline
// style.
//
// Implementations must return the same value for the same node so elements
// can be compared with == and used as map keys.
type Element interface {
	// TagName returns the lowercase tag name (e.g., "div").
	TagName() string

	// ID returns the id attribute, or "" if absent.
	ID() string

	// Classes returns the class list in document order.
	Classes() []string

	// Attr returns an attribute value and whether it exists.
	Attr(name string) (string, bool)

	// SetAttr sets an attribute value.
	SetAttr(name, value string)

	// RemoveAttr removes an attribute if present.
	RemoveAttr(name string)

	// Rect returns the rendered geometry.
	Rect() Rect

	// Visible reports whether the element is rendered at all
	// (no display:none or visibility:hidden on it or an ancestor).
	Visible() bool

	// Text returns the visible text with whitespace collapsed.
	Text() string

	// OuterHTML returns the serialized markup of the element, without
	// layout annotations.
	OuterHTML() string

	// Parent returns the parent element, or nil at the top of the tree.
	Parent() Element

	// Children returns the element children in document order.
	Children() []Element

	// PrevSibling returns the previous element sibling, or nil.
	PrevSibling() Element

	// NextSibling returns the next element sibling, or nil.
	NextSibling() Element

	// Query returns descendants matching a CSS selector in document order.
	// Returns EINVALID if the selector cannot be parsed.
	Query(selector string) ([]Element, error)

	// Style returns the current inline highlight-related style.
	Style() Style

	// SetStyle replaces the inline highlight-related style, keeping every
	// other inline declaration.
	SetStyle(style Style)

	// Attached reports whether the element is still part of its document.
	Attached() bool
}

// Document is a rendered page exposed as an element tree.
type Document interface {
	// URL returns the address the page was loaded from.
	URL() string

	// Root returns the <html> element.
	Root() Element

	// Body returns the <body> element, or nil if the page has none.
	Body() Element

	// Viewport returns the viewport the page was rendered in.
	Viewport() Rect

	// Query returns all elements matching a CSS selector in document order.
	// Returns EINVALID if the selector cannot be parsed.
	Query(selector string) ([]Element, error)
}

// Parser builds a Document from rendered HTML.
type Parser interface {
	Parse(html string, url string) (Document, error)
}

// IsRootContainer reports whether el is one of the page's root containers
// (<html> or <body>). Root containers are never highlighted or selected.
func IsRootContainer(el Element) bool {
	if el == nil {
		return false
	}
	switch el.TagName() {
	case "html", "body":
		return true
	}
	return el.Parent() == nil
}
