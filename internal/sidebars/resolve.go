package sidebars

import (
	"git.home.luguber.info/inful/notesite/internal/docs"
	"git.home.luguber.info/inful/notesite/internal/foundation/errors"
)

// Entry is a resolved sidebar node.
type Entry struct {
	Type     ItemType `yaml:"type" json:"type"`
	Label    string   `yaml:"label" json:"label"`
	DocID    string   `yaml:"doc_id,omitempty" json:"doc_id,omitempty"`
	Route    string   `yaml:"route,omitempty" json:"route,omitempty"`
	Href     string   `yaml:"href,omitempty" json:"href,omitempty"`
	Children []Entry  `yaml:"children,omitempty" json:"children,omitempty"`
}

// Resolve expands sidebar id against the index. Autogenerated items become the
// docs under their directory; doc ids missing from the index are returned in
// missing rather than failing, so callers can apply their own link policy.
func (s Set) Resolve(id string, ix *docs.Index) (entries []Entry, missing []string, err error) {
	items, ok := s[id]
	if !ok {
		return nil, nil, errors.NotFoundError("unknown sidebar").WithContext("sidebar", id).Build()
	}
	entries = resolveItems(items, ix, &missing)
	return entries, missing, nil
}

func resolveItems(items []Item, ix *docs.Index, missing *[]string) []Entry {
	var out []Entry
	for _, it := range items {
		switch it.Type {
		case ItemDoc:
			d, ok := ix.Doc(it.ID)
			if !ok {
				*missing = append(*missing, it.ID)
				continue
			}
			out = append(out, docEntry(d, it.Label))
		case ItemCategory:
			out = append(out, Entry{
				Type:     ItemCategory,
				Label:    it.Label,
				Children: resolveItems(it.Items, ix, missing),
			})
		case ItemLink:
			out = append(out, Entry{Type: ItemLink, Label: it.Label, Href: it.Href})
		case ItemAutogenerated:
			for _, d := range ix.Under(it.DirName) {
				out = append(out, docEntry(d, ""))
			}
		}
	}
	return out
}

func docEntry(d *docs.Doc, label string) Entry {
	if label == "" {
		label = d.Label()
	}
	return Entry{Type: ItemDoc, Label: label, DocID: d.ID, Route: d.Route}
}

// FirstDoc returns the first doc entry of a resolved sidebar in depth-first
// order. A navbar item pointing at a sidebar links to this doc.
func FirstDoc(entries []Entry) (Entry, bool) {
	for _, e := range entries {
		if e.Type == ItemDoc {
			return e, true
		}
		if first, ok := FirstDoc(e.Children); ok {
			return first, true
		}
	}
	return Entry{}, false
}
