package frontmatter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplit_NoFrontmatter_ReturnsBodyOnly(t *testing.T) {
	input := []byte("# Title\n\nHello\n")

	fm, body, had, err := Split(input)
	require.NoError(t, err)
	require.False(t, had)
	require.Empty(t, fm)
	require.Equal(t, input, body)
}

func TestSplit_YAMLFrontmatter_SplitsFrontmatterAndBody(t *testing.T) {
	input := []byte("---\nkey: value\n---\n# Title\n")

	fm, body, had, err := Split(input)
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("key: value\n"), fm)
	require.Equal(t, []byte("# Title\n"), body)
}

func TestSplit_MissingClosingDelimiter_ReturnsError(t *testing.T) {
	_, _, had, err := Split([]byte("---\nkey: value\n# Title\n"))
	require.Error(t, err)
	require.False(t, had)
	require.True(t, errors.Is(err, ErrMissingClosingDelimiter))
}

func TestSplit_CRLF_SplitsFrontmatterAndBody(t *testing.T) {
	input := []byte("---\r\nkey: value\r\n---\r\n# Title\r\n")

	fm, body, had, err := Split(input)
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("key: value\r\n"), fm)
	require.Equal(t, []byte("# Title\r\n"), body)
}

func TestSplit_EmptyFrontmatterBlock(t *testing.T) {
	fm, body, had, err := Split([]byte("---\n---\n# Title\n"))
	require.NoError(t, err)
	require.True(t, had)
	require.Empty(t, fm)
	require.Equal(t, []byte("# Title\n"), body)
}

func TestSplit_ClosingDelimiterAtEOF(t *testing.T) {
	fm, body, had, err := Split([]byte("---\ntitle: x\n---"))
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("title: x\n"), fm)
	require.Empty(t, body)
}

func TestParse_DecodesKnownFields(t *testing.T) {
	input := []byte("---\nid: intro\nslug: /plt\ntitle: Programming Logic\nsidebar_position: 2\nauthor: someone\n---\nBody\n")

	f, body, err := Parse(input)
	require.NoError(t, err)
	require.Equal(t, "intro", f.ID)
	require.Equal(t, "/plt", f.Slug)
	require.Equal(t, "Programming Logic", f.Title)
	require.NotNil(t, f.SidebarPosition)
	require.InDelta(t, 2.0, *f.SidebarPosition, 0.0001)
	require.Equal(t, []byte("Body\n"), body)
}

func TestParse_InvalidYAML(t *testing.T) {
	_, _, err := Parse([]byte("---\ntitle: [unclosed\n---\nBody\n"))
	require.Error(t, err)
}

func TestParse_SidebarPositionZeroIsSet(t *testing.T) {
	f, _, err := Parse([]byte("---\nsidebar_position: 0\n---\nBody\n"))
	require.NoError(t, err)
	require.NotNil(t, f.SidebarPosition)
	require.Zero(t, *f.SidebarPosition)

	f, _, err = Parse([]byte("---\ntitle: x\n---\nBody\n"))
	require.NoError(t, err)
	require.Nil(t, f.SidebarPosition)
}
