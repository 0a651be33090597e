package htmltomarkdown

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagesnip"
)

// FallbackSlug names content that has no usable title.
const FallbackSlug = "selection"

// Ensure ElementConverter implements pagesnip.ElementConverter at compile time.
var _ pagesnip.ElementConverter = (*ElementConverter)(nil)

// ElementConverter turns a selected element into cleaned HTML, Markdown and
// a slug taken from its first heading.
type ElementConverter struct {
	Converter pagesnip.Converter
}

// NewElementConverter returns an ElementConverter backed by a Converter.
func NewElementConverter() *ElementConverter {
	return &ElementConverter{Converter: NewConverter()}
}

// ConvertElement converts el without modifying it.
func (c *ElementConverter) ConvertElement(el pagesnip.Element) (*pagesnip.Content, error) {
	if el == nil {
		return nil, pagesnip.Errorf(pagesnip.EINVALID, "no element to convert")
	}

	html, title, err := Clean(el.OuterHTML())
	if err != nil {
		return nil, err
	}

	md, err := c.Converter.Convert(html)
	if err != nil {
		return nil, fmt.Errorf("convert element: %w", err)
	}

	if title == "" {
		title = el.Text()
	}
	slug := pagesnip.Slugify(title)
	if slug == "" {
		slug = FallbackSlug
	}

	return &pagesnip.Content{HTML: html, Markdown: md, Slug: slug}, nil
}

// Clean removes non-content elements and inline styles from an HTML
// fragment. It also returns the text of the first heading, if any.
func Clean(fragment string) (html string, title string, err error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", "", fmt.Errorf("parse fragment: %w", err)
	}

	body := doc.Find("body")
	body.Find("script, style, noscript, template, iframe").Remove()
	body.Find("[style]").RemoveAttr("style")
	body.Find("[hidden]").Remove()

	title = strings.Join(strings.Fields(body.Find("h1, h2, h3, h4, h5, h6").First().Text()), " ")

	html, err = body.Html()
	if err != nil {
		return "", "", fmt.Errorf("render fragment: %w", err)
	}
	return strings.TrimSpace(html), title, nil
}
