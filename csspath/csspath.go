// Package csspath generates deterministic CSS paths for elements and resolves
// them back against a document.
//
// A path has one segment per level below <body>, joined root-to-leaf with the
// descendant combinator:
//
//	div#page main.post.wide:nth-of-type(2) p:nth-of-type(3)
//
// Each segment is the tag, the id, at most three classes, and an
// nth-of-type index when the element has same-tag siblings.
package csspath

import (
	"fmt"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/pagesnip"
)

// MaxClasses is the number of class names included per segment.
const MaxClasses = 3

// Generate returns the path of el. Root containers have an empty path.
func Generate(el pagesnip.Element) string {
	var segments []string
	for cur := el; cur != nil && !pagesnip.IsRootContainer(cur); cur = cur.Parent() {
		segments = append(segments, segment(cur))
	}
	for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
		segments[i], segments[j] = segments[j], segments[i]
	}
	return strings.Join(segments, " ")
}

// Resolve finds the element addressed by path.
// Returns EINVALID if path is not a valid selector and ENOTFOUND if nothing
// matches. When several elements match, the one whose own path equals path
// wins; otherwise the first match in document order.
func Resolve(doc pagesnip.Document, path string) (pagesnip.Element, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, pagesnip.Errorf(pagesnip.EINVALID, "empty path")
	}
	if _, err := cascadia.Compile(path); err != nil {
		return nil, pagesnip.Errorf(pagesnip.EINVALID, "invalid path %q: %v", path, err)
	}

	matches, err := doc.Query(path)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, pagesnip.Errorf(pagesnip.ENOTFOUND, "no element matches path %q", path)
	}

	for _, m := range matches {
		if Generate(m) == path {
			return m, nil
		}
	}
	return matches[0], nil
}

func segment(el pagesnip.Element) string {
	var sb strings.Builder
	sb.WriteString(el.TagName())

	if id := el.ID(); id != "" {
		sb.WriteByte('#')
		sb.WriteString(Escape(id))
	}

	classes := el.Classes()
	if len(classes) > MaxClasses {
		classes = classes[:MaxClasses]
	}
	for _, c := range classes {
		sb.WriteByte('.')
		sb.WriteString(Escape(c))
	}

	if k, ok := typeIndex(el); ok {
		fmt.Fprintf(&sb, ":nth-of-type(%d)", k)
	}
	return sb.String()
}

// typeIndex returns the 1-based position of el among its same-tag siblings.
// It reports false when el has no same-tag siblings.
func typeIndex(el pagesnip.Element) (int, bool) {
	parent := el.Parent()
	if parent == nil {
		return 0, false
	}

	tag := el.TagName()
	index, count := 0, 0
	for _, c := range parent.Children() {
		if c.TagName() != tag {
			continue
		}
		count++
		if c == el {
			index = count
		}
	}
	if count < 2 || index == 0 {
		return 0, false
	}
	return index, true
}

// Escape escapes an identifier for use in a CSS selector, following the
// rules of CSS.escape.
func Escape(s string) string {
	var sb strings.Builder
	for i, r := range s {
		switch {
		case r == 0:
			sb.WriteRune('\uFFFD')
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&sb, `\%x `, r)
		case i == 0 && r >= '0' && r <= '9':
			fmt.Fprintf(&sb, `\%x `, r)
		case i == 1 && r >= '0' && r <= '9' && s[0] == '-':
			fmt.Fprintf(&sb, `\%x `, r)
		case i == 0 && r == '-' && len(s) == 1:
			sb.WriteString(`\-`)
		case r >= 0x80 || r == '-' || r == '_' ||
			(r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			sb.WriteRune(r)
		default:
			sb.WriteByte('\\')
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
