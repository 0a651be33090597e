package pagesnip

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	// The input should be clean HTML (e.g., from an ElementConverter).
	// Returns the Markdown representation of the content.
	Convert(html string) (string, error)
}

// Content is the converted form of an element.
type Content struct {
	HTML     string
	Markdown string
	Slug     string
}

// ElementConverter turns a selected element into portable content.
// It must not modify the element.
type ElementConverter interface {
	ConvertElement(el Element) (*Content, error)
}
