package pagesnip

import (
	"context"
	"time"
)

// Capture is a confirmed selection saved as a Markdown document.
type Capture struct {
	SourceURL  string
	Path       string
	Slug       string
	Markdown   string
	CapturedAt time.Time
}

// Validate returns an error if the capture contains invalid fields.
func (c *Capture) Validate() error {
	if c.SourceURL == "" {
		return Errorf(EINVALID, "capture source URL required")
	}
	if c.Slug == "" {
		return Errorf(EINVALID, "capture slug required")
	}
	return nil
}

// CaptureWriter writes captures to storage.
type CaptureWriter interface {
	WriteCapture(ctx context.Context, c *Capture) error
}
