package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"git.home.luguber.info/inful/notesite/internal/config"
)

// headPartial renders the extra <head> markup: meta tags, head tags,
// stylesheets and scripts, one element per line.
func headPartial(s *config.Site) ([]byte, error) {
	nodes := []*html.Node{{Type: html.CommentNode, Data: " Code generated by notesite. DO NOT EDIT. "}}
	nodes = append(nodes, metaNodes(s)...)
	for i, h := range s.ThemeConfig.HeadTags {
		n, err := headTagNode(h)
		if err != nil {
			return nil, fmt.Errorf("head_tags[%d]: %w", i, err)
		}
		nodes = append(nodes, n)
	}
	for _, st := range s.Stylesheets {
		nodes = append(nodes, stylesheetNode(st))
	}
	for _, sc := range s.Scripts {
		nodes = append(nodes, scriptNode(sc))
	}

	var buf bytes.Buffer
	for _, n := range nodes {
		if err := html.Render(&buf, n); err != nil {
			return nil, err
		}
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// metaNodes emits one <meta> per key. A key declared more than once keeps its
// first position and its last content. Project-root paths become public URLs.
func metaNodes(s *config.Site) []*html.Node {
	type entry struct {
		attr, key, content string
	}
	var order []*entry
	byKey := map[string]*entry{}
	for _, m := range s.ThemeConfig.Metadata {
		attr := "name"
		if m.Name == "" {
			attr = "property"
		}
		key := attr + "\x00" + m.Key()
		content := s.AssetURL(m.Content)
		if e, ok := byKey[key]; ok {
			e.content = content
			continue
		}
		e := &entry{attr: attr, key: m.Key(), content: content}
		byKey[key] = e
		order = append(order, e)
	}
	nodes := make([]*html.Node, 0, len(order))
	for _, e := range order {
		nodes = append(nodes, element(atom.Meta, []html.Attribute{
			{Key: e.attr, Val: e.key},
			{Key: "content", Val: e.content},
		}))
	}
	return nodes
}

func headTagNode(h config.HeadTag) (*html.Node, error) {
	if h.JSONLD != nil {
		body, err := json.Marshal(h.JSONLD)
		if err != nil {
			return nil, fmt.Errorf("encode structured data: %w", err)
		}
		n := element(atom.Script, []html.Attribute{{Key: "type", Val: "application/ld+json"}})
		n.AppendChild(&html.Node{Type: html.TextNode, Data: string(body)})
		return n, nil
	}
	tag := strings.ToLower(h.TagName)
	if tag == "" {
		return nil, fmt.Errorf("tag name required")
	}
	n := &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag)), Attr: sortedAttrs(h.Attributes)}
	if h.InnerHTML != "" {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: h.InnerHTML})
	}
	return n, nil
}

func stylesheetNode(st config.Stylesheet) *html.Node {
	attrs := []html.Attribute{{Key: "rel", Val: "stylesheet"}, {Key: "href", Val: st.Href}}
	attrs = appendIf(attrs, "type", st.Type)
	attrs = appendIf(attrs, "integrity", st.Integrity)
	attrs = appendIf(attrs, "crossorigin", st.CrossOrigin)
	return element(atom.Link, attrs)
}

func scriptNode(sc config.Script) *html.Node {
	attrs := []html.Attribute{{Key: "src", Val: sc.Src}}
	if sc.Async {
		attrs = append(attrs, html.Attribute{Key: "async"})
	}
	if sc.Defer {
		attrs = append(attrs, html.Attribute{Key: "defer"})
	}
	attrs = appendIf(attrs, "crossorigin", sc.CrossOrigin)
	return element(atom.Script, attrs)
}

func element(a atom.Atom, attrs []html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, Data: a.String(), DataAtom: a, Attr: attrs}
}

func appendIf(attrs []html.Attribute, key, val string) []html.Attribute {
	if val == "" {
		return attrs
	}
	return append(attrs, html.Attribute{Key: key, Val: val})
}

func sortedAttrs(m map[string]string) []html.Attribute {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	attrs := make([]html.Attribute, 0, len(keys))
	for _, k := range keys {
		attrs = append(attrs, html.Attribute{Key: strings.ToLower(k), Val: m[k]})
	}
	return attrs
}
