package goquery

import "github.com/fwojciec/pagesnip"

// Ensure Parser implements pagesnip.Parser at compile time.
var _ pagesnip.Parser = (*Parser)(nil)

// Parser builds Documents from rendered HTML.
type Parser struct {
	opts []Option
}

// NewParser creates a new Parser that applies opts to every Document.
func NewParser(opts ...Option) *Parser {
	return &Parser{opts: opts}
}

// Parse builds a Document from rendered HTML.
func (p *Parser) Parse(html string, url string) (pagesnip.Document, error) {
	if html == "" {
		return nil, pagesnip.Errorf(pagesnip.EINVALID, "empty HTML input")
	}
	return ParseHTML(html, url, p.opts...)
}
