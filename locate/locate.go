// Package locate finds the main content region of a rendered page.
//
// Known sites are handled by a PresetMatcher, which maps page addresses to
// content selectors. Everything else falls through to a Scorer, which ranks
// candidate regions by structural, textual and positional signals.
package locate

import (
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/pagesnip"
)

// Validity thresholds.
const (
	MinWidth      = 100
	MinHeight     = 100
	MinTextLength = 50
)

// IsValid reports whether el can be a content region: rendered, at least
// MinWidth×MinHeight pixels, and carrying at least MinTextLength characters
// of visible text.
func IsValid(el pagesnip.Element) bool {
	if el == nil || !el.Visible() {
		return false
	}
	r := el.Rect()
	if r.Width < MinWidth || r.Height < MinHeight {
		return false
	}
	return utf8.RuneCountInString(el.Text()) >= MinTextLength
}

// ElementView is an immutable snapshot of everything Score reads from an
// element.
type ElementView struct {
	Tag   string
	ID    string
	Class string
	Role  string

	// Lengths in runes.
	TextLength   int
	MarkupLength int

	// ParagraphChildren counts direct paragraph-like children.
	ParagraphChildren int

	// Descendant counts.
	Headings   int
	Paragraphs int
	Lists      int
	Images     int

	Rect     pagesnip.Rect
	Viewport pagesnip.Rect
}

// NewView takes a snapshot of el rendered in viewport.
func NewView(el pagesnip.Element, viewport pagesnip.Rect) ElementView {
	class, _ := el.Attr("class")
	role, _ := el.Attr("role")

	v := ElementView{
		Tag:          el.TagName(),
		ID:           el.ID(),
		Class:        class,
		Role:         role,
		TextLength:   utf8.RuneCountInString(el.Text()),
		MarkupLength: utf8.RuneCountInString(el.OuterHTML()),
		Headings:     count(el, "h1, h2, h3, h4, h5, h6"),
		Paragraphs:   count(el, "p"),
		Lists:        count(el, "ul, ol"),
		Images:       count(el, "img"),
		Rect:         el.Rect(),
		Viewport:     viewport,
	}
	for _, c := range el.Children() {
		if paragraphLike[c.TagName()] {
			v.ParagraphChildren++
		}
	}
	return v
}

var paragraphLike = map[string]bool{
	"p":          true,
	"blockquote": true,
	"pre":        true,
}

func count(el pagesnip.Element, selector string) int {
	els, err := el.Query(selector)
	if err != nil {
		return 0
	}
	return len(els)
}

// containsAny returns the words of vocab that occur in s, ignoring case.
// Words match anywhere, so "ad" matches "adbox" as well as "ad-slot".
func containsAny(s string, vocab []string) []string {
	s = strings.ToLower(s)
	if s == "" {
		return nil
	}

	var hits []string
	for _, w := range vocab {
		if strings.Contains(s, w) {
			hits = append(hits, w)
		}
	}
	return hits
}
