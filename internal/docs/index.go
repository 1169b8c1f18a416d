package docs

import (
	"path"
	"sort"
	"strings"

	"git.home.luguber.info/inful/notesite/internal/markdown"
)

// Doc is one documentation page discovered under the docs root.
type Doc struct {
	ID           string // dir-qualified identifier, e.g. "plt/syllabus"
	Path         string // slash-separated path relative to the docs root, e.g. "plt/syllabus.md"
	Dir          string // directory part of Path ("" for top level)
	Route        string // site-relative route, e.g. "/docs/plt/syllabus"
	Title        string
	SidebarLabel string
	Position     float64
	HasPosition  bool
	HasMath      bool
	Links        []markdown.Link
}

// Label returns the text used for the doc in navigation.
func (d *Doc) Label() string {
	if d.SidebarLabel != "" {
		return d.SidebarLabel
	}
	if d.Title != "" {
		return d.Title
	}
	return path.Base(d.ID)
}

// Index is an immutable lookup structure over scanned docs.
type Index struct {
	docs    []*Doc
	byID    map[string]*Doc
	byRoute map[string]*Doc
	byPath  map[string]*Doc
}

// NewIndex builds an index over docs. Docs are ordered by ID.
// Duplicate IDs or routes are reported as *DuplicateError.
func NewIndex(docs []*Doc) (*Index, error) {
	ix := &Index{
		docs:    append([]*Doc(nil), docs...),
		byID:    make(map[string]*Doc, len(docs)),
		byRoute: make(map[string]*Doc, len(docs)),
		byPath:  make(map[string]*Doc, len(docs)),
	}
	sort.Slice(ix.docs, func(i, j int) bool { return ix.docs[i].ID < ix.docs[j].ID })
	for _, d := range ix.docs {
		if prev, ok := ix.byID[d.ID]; ok {
			return nil, &DuplicateError{Kind: "id", Value: d.ID, Paths: [2]string{prev.Path, d.Path}}
		}
		if prev, ok := ix.byRoute[d.Route]; ok {
			return nil, &DuplicateError{Kind: "route", Value: d.Route, Paths: [2]string{prev.Path, d.Path}}
		}
		ix.byID[d.ID] = d
		ix.byRoute[d.Route] = d
		ix.byPath[d.Path] = d
	}
	return ix, nil
}

// DuplicateError reports two docs claiming the same id or route.
type DuplicateError struct {
	Kind  string
	Value string
	Paths [2]string
}

func (e *DuplicateError) Error() string {
	return "duplicate doc " + e.Kind + " " + e.Value + " (" + e.Paths[0] + ", " + e.Paths[1] + ")"
}

// Docs returns all docs ordered by ID.
func (ix *Index) Docs() []*Doc {
	return ix.docs
}

// Len returns the number of docs.
func (ix *Index) Len() int {
	return len(ix.docs)
}

// Doc looks a doc up by ID.
func (ix *Index) Doc(id string) (*Doc, bool) {
	d, ok := ix.byID[id]
	return d, ok
}

// ByRoute looks a doc up by its route. Trailing slashes are ignored.
func (ix *Index) ByRoute(route string) (*Doc, bool) {
	d, ok := ix.byRoute[CleanRoute(route)]
	return d, ok
}

// HasRoute reports whether any doc is served at route.
func (ix *Index) HasRoute(route string) bool {
	_, ok := ix.ByRoute(route)
	return ok
}

// ByPath looks a doc up by its path relative to the docs root.
func (ix *Index) ByPath(rel string) (*Doc, bool) {
	d, ok := ix.byPath[path.Clean(strings.TrimPrefix(rel, "/"))]
	return d, ok
}

// ResolveLink resolves a relative Markdown link written in from.
func (ix *Index) ResolveLink(from *Doc, link markdown.Link) (*Doc, bool) {
	p := link.Path()
	if strings.HasPrefix(p, "/") {
		return ix.ByPath(p)
	}
	return ix.ByPath(path.Join(from.Dir, p))
}

// Under returns docs located in dir or its subdirectories, ordered by sidebar
// position (docs without a position last) and then by ID.
func (ix *Index) Under(dir string) []*Doc {
	dir = strings.Trim(dir, "/")
	var out []*Doc
	for _, d := range ix.docs {
		if dir == "" || dir == "." || d.Dir == dir || strings.HasPrefix(d.Dir, dir+"/") {
			out = append(out, d)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.HasPosition != b.HasPosition {
			return a.HasPosition
		}
		if a.HasPosition && a.Position != b.Position {
			return a.Position < b.Position
		}
		return a.ID < b.ID
	})
	return out
}

// MathDocs counts docs containing math notation.
func (ix *Index) MathDocs() int {
	n := 0
	for _, d := range ix.docs {
		if d.HasMath {
			n++
		}
	}
	return n
}

// CleanRoute normalizes a site-relative route: leading slash, no trailing slash,
// no fragment or query.
func CleanRoute(route string) string {
	if i := strings.IndexAny(route, "#?"); i >= 0 {
		route = route[:i]
	}
	return path.Clean("/" + route)
}
