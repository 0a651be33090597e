package goquery

import (
	"strings"

	"github.com/gorilla/css/scanner"
)

// declaration is one "property: value" pair of an inline style. Text that
// is not a declaration has an empty property and is kept as raw.
type declaration struct {
	property string
	value    string
	raw      string
}

// declarations is an ordered inline style attribute.
type declarations []declaration

// parseDeclarations splits an inline style into declarations. Semicolons
// and colons inside strings, url() and other functions do not split.
// Property names are lowercased.
func parseDeclarations(style string) declarations {
	var (
		decls    declarations
		chunk    strings.Builder
		colon    = -1
		depth    int
		consumed int
	)
	flush := func() {
		decls = decls.add(chunk.String(), colon)
		chunk.Reset()
		colon = -1
	}

	s := scanner.New(style)
	for {
		tok := s.Next()
		if tok.Type == scanner.TokenEOF {
			break
		}
		if tok.Type == scanner.TokenError {
			// Unclosed string or comment: the rest belongs to the current chunk.
			if consumed < len(style) {
				chunk.WriteString(style[consumed:])
			}
			break
		}
		consumed += len(tok.Value)

		switch tok.Type {
		case scanner.TokenFunction:
			depth++
		case scanner.TokenChar:
			switch tok.Value {
			case "(":
				depth++
			case ")":
				if depth > 0 {
					depth--
				}
			case ":":
				if depth == 0 && colon < 0 {
					colon = chunk.Len()
				}
			case ";":
				if depth == 0 {
					flush()
					continue
				}
			}
		}
		chunk.WriteString(tok.Value)
	}
	flush()

	return decls
}

func (d declarations) add(raw string, colon int) declarations {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return d
	}
	decl := declaration{raw: trimmed}
	if colon >= 0 {
		prop := strings.ToLower(strings.TrimSpace(raw[:colon]))
		if prop != "" {
			decl.property = prop
			decl.value = strings.TrimSpace(raw[colon+1:])
		}
	}
	return append(d, decl)
}

// get returns the last value declared for property.
func (d declarations) get(property string) string {
	v := ""
	for _, decl := range d {
		if decl.property == property {
			v = decl.value
		}
	}
	return v
}

// set replaces every declaration of property with a single one in the
// position of the first, or removes them when value is empty.
func (d *declarations) set(property, value string) {
	out := (*d)[:0]
	placed := false
	for _, decl := range *d {
		if decl.property != property {
			out = append(out, decl)
			continue
		}
		if value != "" && !placed {
			out = append(out, declaration{property: property, value: value})
			placed = true
		}
	}
	if value != "" && !placed {
		out = append(out, declaration{property: property, value: value})
	}
	*d = out
}

// String serializes the declarations as an inline style. Declarations that
// were parsed keep their source text.
func (d declarations) String() string {
	parts := make([]string, 0, len(d))
	for _, decl := range d {
		if decl.raw != "" {
			parts = append(parts, decl.raw)
			continue
		}
		parts = append(parts, decl.property+": "+decl.value)
	}
	return strings.Join(parts, "; ")
}
