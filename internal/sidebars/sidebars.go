// Package sidebars loads named sidebar definitions and resolves them against
// the docs index.
//
// A sidebar file maps sidebar ids to ordered items. An item is either a bare doc
// id or a mapping:
//
//	pltSidebar:
//	  - plt/syllabus
//	  - type: category
//	    label: Unit 1
//	    items: [plt/unit-1/intro]
//	  - type: autogenerated
//	    dir_name: plt/labs
//	  - type: link
//	    label: Reference
//	    href: https://example.com
package sidebars

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/notesite/internal/foundation/errors"
)

// ItemType is the kind of a sidebar item.
type ItemType string

const (
	ItemDoc           ItemType = "doc"
	ItemCategory      ItemType = "category"
	ItemLink          ItemType = "link"
	ItemAutogenerated ItemType = "autogenerated"
)

// Item is one entry of a sidebar.
type Item struct {
	Type      ItemType `yaml:"type"`
	ID        string   `yaml:"id,omitempty"`
	Label     string   `yaml:"label,omitempty"`
	Href      string   `yaml:"href,omitempty"`
	DirName   string   `yaml:"dir_name,omitempty"`
	Collapsed *bool    `yaml:"collapsed,omitempty"`
	Items     []Item   `yaml:"items,omitempty"`
}

// UnmarshalYAML accepts a bare scalar as a doc item.
func (it *Item) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*it = Item{Type: ItemDoc, ID: node.Value}
		return nil
	}
	type plain Item
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*it = Item(p)
	if it.Type == "" {
		switch {
		case it.ID != "":
			it.Type = ItemDoc
		case it.Href != "":
			it.Type = ItemLink
		case len(it.Items) > 0:
			it.Type = ItemCategory
		}
	}
	switch it.Type {
	case ItemDoc:
		if it.ID == "" {
			return fmt.Errorf("line %d: doc item requires id", node.Line)
		}
	case ItemCategory:
		if it.Label == "" {
			return fmt.Errorf("line %d: category item requires label", node.Line)
		}
	case ItemLink:
		if it.Href == "" || it.Label == "" {
			return fmt.Errorf("line %d: link item requires label and href", node.Line)
		}
	case ItemAutogenerated:
	default:
		return fmt.Errorf("line %d: unsupported sidebar item type %q", node.Line, it.Type)
	}
	return nil
}

// Set is a collection of named sidebars.
type Set map[string][]Item

// Load reads a sidebar definition file.
func Load(path string) (Set, error) {
	// #nosec G304 -- path is the configured sidebar file
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundError("sidebar file not found").WithContext("path", path).Build()
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read sidebar file").
			WithContext("path", path).
			Build()
	}
	set, err := Parse(data)
	if err != nil {
		return nil, errors.SidebarsError("invalid sidebar file").WithCause(err).
			WithContext("path", path).
			Build()
	}
	return set, nil
}

// Parse decodes sidebar YAML.
func Parse(data []byte) (Set, error) {
	set := Set{}
	if len(bytes.TrimSpace(data)) == 0 {
		return set, nil
	}
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, err
	}
	return set, nil
}

// IDs returns the sidebar ids in sorted order.
func (s Set) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Has reports whether a sidebar with id exists.
func (s Set) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// DocIDs returns every doc id referenced explicitly in sidebar id, in order.
func (s Set) DocIDs(id string) []string {
	var out []string
	var walk func([]Item)
	walk = func(items []Item) {
		for _, it := range items {
			switch it.Type {
			case ItemDoc:
				out = append(out, it.ID)
			case ItemCategory:
				walk(it.Items)
			}
		}
	}
	walk(s[id])
	return out
}
