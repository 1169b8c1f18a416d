package sidebars

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/notesite/internal/docs"
	"git.home.luguber.info/inful/notesite/internal/foundation/errors"
)

const sidebarYAML = `pltSidebar:
  - plt/syllabus
  - type: category
    label: Units
    items:
      - plt/unit-1
      - id: plt/unit-2
        label: Second unit
  - type: link
    label: Reference
    href: https://example.com/plt
madtSideBar:
  - type: autogenerated
    dir_name: madt
emptySidebar: []
`

func testIndex(t *testing.T) *docs.Index {
	t.Helper()
	ix, err := docs.NewIndex([]*docs.Doc{
		{ID: "plt/syllabus", Path: "plt/syllabus.md", Dir: "plt", Route: "/docs/plt/syllabus", Title: "Syllabus"},
		{ID: "plt/unit-1", Path: "plt/unit-1.md", Dir: "plt", Route: "/docs/plt/unit-1", Title: "Unit 1"},
		{ID: "madt/index", Path: "madt/index.md", Dir: "madt", Route: "/docs/madt", Title: "MADT", Position: 1, HasPosition: true},
		{ID: "madt/lab", Path: "madt/lab.md", Dir: "madt", Route: "/docs/madt/lab", Title: "Lab"},
	})
	require.NoError(t, err)
	return ix
}

func TestParse(t *testing.T) {
	set, err := Parse([]byte(sidebarYAML))
	require.NoError(t, err)
	assert.Equal(t, []string{"emptySidebar", "madtSideBar", "pltSidebar"}, set.IDs())
	assert.True(t, set.Has("pltSidebar"))
	assert.False(t, set.Has("linuxSidebar"))

	plt := set["pltSidebar"]
	require.Len(t, plt, 3)
	assert.Equal(t, Item{Type: ItemDoc, ID: "plt/syllabus"}, plt[0])
	assert.Equal(t, ItemCategory, plt[1].Type)
	assert.Equal(t, ItemLink, plt[2].Type)
	assert.Equal(t, []string{"plt/syllabus", "plt/unit-1", "plt/unit-2"}, set.DocIDs("pltSidebar"))
}

func TestParse_InvalidItems(t *testing.T) {
	for name, yml := range map[string]string{
		"unknown type":    "s:\n  - type: dropdown\n",
		"link no href":    "s:\n  - type: link\n    label: x\n",
		"category label":  "s:\n  - type: category\n    items: [a]\n",
		"doc without id":  "s:\n  - type: doc\n",
	} {
		_, err := Parse([]byte(yml))
		assert.Error(t, err, name)
	}
}

func TestResolve(t *testing.T) {
	set, err := Parse([]byte(sidebarYAML))
	require.NoError(t, err)
	ix := testIndex(t)

	entries, missing, err := set.Resolve("pltSidebar", ix)
	require.NoError(t, err)
	assert.Equal(t, []string{"plt/unit-2"}, missing)
	require.Len(t, entries, 3)
	assert.Equal(t, "Syllabus", entries[0].Label)
	require.Len(t, entries[1].Children, 1)
	assert.Equal(t, "/docs/plt/unit-1", entries[1].Children[0].Route)

	first, ok := FirstDoc(entries)
	require.True(t, ok)
	assert.Equal(t, "/docs/plt/syllabus", first.Route)

	madt, missing, err := set.Resolve("madtSideBar", ix)
	require.NoError(t, err)
	assert.Empty(t, missing)
	require.Len(t, madt, 2)
	assert.Equal(t, "madt/index", madt[0].DocID)
	assert.Equal(t, "madt/lab", madt[1].DocID)

	empty, _, err := set.Resolve("emptySidebar", ix)
	require.NoError(t, err)
	_, ok = FirstDoc(empty)
	assert.False(t, ok)

	_, _, err = set.Resolve("nope", ix)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryNotFound))
}

func TestFirstDoc_DescendsIntoCategories(t *testing.T) {
	entries := []Entry{
		{Type: ItemLink, Label: "x", Href: "https://example.com"},
		{Type: ItemCategory, Label: "c", Children: []Entry{{Type: ItemDoc, DocID: "a", Route: "/docs/a"}}},
	}
	first, ok := FirstDoc(entries)
	require.True(t, ok)
	assert.Equal(t, "/docs/a", first.Route)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "sidebars.yaml")
	require.NoError(t, os.WriteFile(p, []byte(sidebarYAML), 0o600))
	set, err := Load(p)
	require.NoError(t, err)
	assert.Len(t, set, 3)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryNotFound))

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("s:\n  - type: dropdown\n"), 0o600))
	_, err = Load(bad)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategorySidebars))
}
