package mock

import "github.com/fwojciec/pagesnip"

var _ pagesnip.Converter = (*Converter)(nil)

// Converter is a mock implementation of pagesnip.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

var _ pagesnip.ElementConverter = (*ElementConverter)(nil)

// ElementConverter is a mock implementation of pagesnip.ElementConverter.
type ElementConverter struct {
	ConvertElementFn func(el pagesnip.Element) (*pagesnip.Content, error)
}

func (c *ElementConverter) ConvertElement(el pagesnip.Element) (*pagesnip.Content, error) {
	return c.ConvertElementFn(el)
}
