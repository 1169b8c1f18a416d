package markdown

import (
	"bytes"
	"regexp"
	"sort"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Analysis is the navigation-relevant summary of a Markdown body.
type Analysis struct {
	Title   string // text of the first level-1 heading
	Links   []Link
	HasMath bool
}

var inlineMath = regexp.MustCompile(`(^|[^\\$])\$[^\s$][^$\n]*\$`)

// Analyze parses a Markdown body (frontmatter already removed).
//
// This is an analysis API; it does not attempt to render Markdown.
func Analyze(body []byte) Analysis {
	md := goldmark.New()
	ctx := parser.NewContext()
	root := md.Parser().Parse(text.NewReader(body), parser.WithContext(ctx))

	var a Analysis
	var prose bytes.Buffer // text outside code
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *gmast.Heading:
			if node.Level == 1 && a.Title == "" {
				a.Title = string(bytes.TrimSpace(nodeText(node, body)))
			}
		case *gmast.AutoLink:
			a.Links = append(a.Links, Link{Kind: LinkKindAuto, Destination: string(node.URL(body))})
		case *gmast.Image:
			a.Links = append(a.Links, Link{Kind: LinkKindImage, Destination: string(node.Destination)})
		case *gmast.Link:
			a.Links = append(a.Links, Link{Kind: LinkKindInline, Destination: string(node.Destination)})
		case *gmast.FencedCodeBlock, *gmast.CodeBlock, *gmast.CodeSpan:
			return gmast.WalkSkipChildren, nil
		case *gmast.Text:
			value := node.Segment.Value(body)
			if !a.HasMath && containsMath(value) {
				a.HasMath = true
			}
			prose.Write(value)
			prose.WriteByte('\n')
		}
		return gmast.WalkContinue, nil
	})

	// Reference definitions are stored in the parse context (not represented as AST nodes).
	refs := ctx.References()
	sort.Slice(refs, func(i, j int) bool {
		return string(refs[i].Label()) < string(refs[j].Label())
	})
	for _, ref := range refs {
		a.Links = append(a.Links, Link{Kind: LinkKindReferenceDefinition, Destination: string(ref.Destination())})
	}

	// Display math spans paragraphs; goldmark splits it into separate text nodes.
	if !a.HasMath && bytes.Contains(prose.Bytes(), []byte("$$")) {
		a.HasMath = true
	}
	return a
}

// ExtractLinks parses a Markdown body and returns its links.
func ExtractLinks(body []byte) []Link {
	return Analyze(body).Links
}

func containsMath(b []byte) bool {
	return bytes.Contains(b, []byte("$$")) || inlineMath.Match(b)
}

func nodeText(n gmast.Node, source []byte) []byte {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *gmast.Text:
			buf.Write(t.Segment.Value(source))
			if t.SoftLineBreak() {
				buf.WriteByte(' ')
			}
		case *gmast.String:
			buf.Write(t.Value)
		default:
			buf.Write(nodeText(c, source))
		}
	}
	return buf.Bytes()
}
