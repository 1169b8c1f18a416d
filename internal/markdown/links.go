package markdown

// LinkKind distinguishes the syntactic form a link was written in.
type LinkKind string

const (
	LinkKindInline              LinkKind = "inline"
	LinkKindImage               LinkKind = "image"
	LinkKindAuto                LinkKind = "auto"
	LinkKindReferenceDefinition LinkKind = "reference_definition"
)

// Link is a link-like construct found in a Markdown body.
type Link struct {
	Kind        LinkKind
	Destination string
}

// IsDocLink reports whether the destination points at another Markdown file
// in the same content tree (relative, .md/.mdx, optional #fragment).
func (l Link) IsDocLink() bool {
	if l.Kind == LinkKindImage || l.Kind == LinkKindAuto {
		return false
	}
	dest := l.Path()
	if dest == "" || hasScheme(dest) {
		return false
	}
	return hasSuffixFold(dest, ".md") || hasSuffixFold(dest, ".mdx")
}

// Path returns the destination without fragment or query.
func (l Link) Path() string {
	d := l.Destination
	for i := 0; i < len(d); i++ {
		if d[i] == '#' || d[i] == '?' {
			return d[:i]
		}
	}
	return d
}

func hasScheme(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == ':':
			return i > 0
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case i > 0 && (c >= '0' && c <= '9' || c == '+' || c == '-' || c == '.'):
		default:
			return false
		}
	}
	return false
}

func hasSuffixFold(s, suffix string) bool {
	if len(s) < len(suffix) {
		return false
	}
	tail := s[len(s)-len(suffix):]
	for i := 0; i < len(suffix); i++ {
		c := tail[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		if c != suffix[i] {
			return false
		}
	}
	return true
}
