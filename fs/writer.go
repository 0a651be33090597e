// Package fs writes captured selections to disk as Markdown files.
package fs

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/pagesnip"
	"gopkg.in/yaml.v3"
)

// URLToDir converts a page URL to a relative directory.
// Example: https://example.com/blog/post.html → example.com/blog/post.html
func URLToDir(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", pagesnip.Errorf(pagesnip.EINVALID, "invalid URL %q: %v", rawURL, err)
	}
	if u.Host == "" {
		return "", pagesnip.Errorf(pagesnip.EINVALID, "URL %q has no host", rawURL)
	}

	path := strings.Trim(u.Path, "/")
	if path == "" {
		path = "index"
	}

	return filepath.Join(u.Host, filepath.FromSlash(path)), nil
}

// CapturePath returns the path of c relative to the output directory.
func CapturePath(c *pagesnip.Capture) (string, error) {
	dir, err := URLToDir(c.SourceURL)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, c.Slug+".md"), nil
}

// frontMatter is the YAML header of a capture file.
type frontMatter struct {
	Source   string `yaml:"source"`
	Path     string `yaml:"path,omitempty"`
	Slug     string `yaml:"slug"`
	Captured string `yaml:"captured"`
}

// FormatCapture formats a capture with YAML front matter.
func FormatCapture(c *pagesnip.Capture) (string, error) {
	header, err := yaml.Marshal(frontMatter{
		Source:   c.SourceURL,
		Path:     c.Path,
		Slug:     c.Slug,
		Captured: c.CapturedAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return "", fmt.Errorf("marshal front matter: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n\n")
	b.WriteString(c.Markdown)
	if !strings.HasSuffix(c.Markdown, "\n") {
		b.WriteString("\n")
	}
	return b.String(), nil
}

// ParseFrontMatter splits a capture file into its header fields and body.
func ParseFrontMatter(content []byte) (map[string]string, string, error) {
	rest, ok := bytes.CutPrefix(content, []byte("---\n"))
	if !ok {
		return nil, "", pagesnip.Errorf(pagesnip.EINVALID, "missing front matter")
	}
	header, body, ok := bytes.Cut(rest, []byte("\n---\n"))
	if !ok {
		return nil, "", pagesnip.Errorf(pagesnip.EINVALID, "unterminated front matter")
	}

	fields := make(map[string]string)
	if err := yaml.Unmarshal(header, &fields); err != nil {
		return nil, "", pagesnip.Errorf(pagesnip.EINVALID, "invalid front matter: %v", err)
	}
	return fields, strings.TrimPrefix(string(body), "\n"), nil
}

// Ensure Writer implements pagesnip.CaptureWriter at compile time.
var _ pagesnip.CaptureWriter = (*Writer)(nil)

// Writer writes captures as markdown files to a directory.
type Writer struct {
	baseDir string
	now     func() time.Time
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir, now: time.Now}
}

// WriteCapture writes c to disk, replacing any earlier capture with the
// same source URL and slug. The file is written to a temporary name first
// and renamed into place, so readers never see a partial file.
func (w *Writer) WriteCapture(ctx context.Context, c *pagesnip.Capture) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.CapturedAt.IsZero() {
		c.CapturedAt = w.now()
	}

	relPath, err := CapturePath(c)
	if err != nil {
		return err
	}
	fullPath := filepath.Join(w.baseDir, relPath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	content, err := FormatCapture(c)
	if err != nil {
		return err
	}

	tmp := fullPath + ".tmp"
	if err := os.WriteFile(tmp, []byte(content), 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, fullPath); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
