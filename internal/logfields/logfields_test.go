package logfields

import (
	"errors"
	"log/slog"
	"testing"
)

// TestHelperKeyNames verifies string-based helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    slog.Attr
	}{
		{"Path", KeyPath, "/tmp/x", Path("/tmp/x")},
		{"File", KeyFile, "intro.md", File("intro.md")},
		{"Rule", KeyRule, "footer-link", Rule("footer-link")},
		{"Sidebar", KeySidebar, "pltSidebar", Sidebar("pltSidebar")},
		{"Route", KeyRoute, "/docs/plt", Route("/docs/plt")},
		{"Locale", KeyLocale, "en", Locale("en")},
		{"Digest", KeyDigest, "abc", Digest("abc")},
		{"RenderID", KeyRenderID, "r1", RenderID("r1")},
	}
	for _, c := range cases {
		if c.attr.Key != c.attrKey {
			t.Errorf("%s: key = %q, want %q", c.name, c.attr.Key, c.attrKey)
		}
		if c.attr.Value.String() != c.attrVal {
			t.Errorf("%s: value = %q, want %q", c.name, c.attr.Value.String(), c.attrVal)
		}
	}
}

func TestNumericAndErrorHelpers(t *testing.T) {
	if a := Count(3); a.Key != KeyCount || a.Value.Int64() != 3 {
		t.Errorf("unexpected count attr %v", a)
	}
	if a := DurationMS(1.5); a.Value.Float64() != 1.5 {
		t.Errorf("unexpected duration attr %v", a)
	}
	if a := Error(nil); a.Value.String() != "" {
		t.Errorf("nil error should log empty string, got %q", a.Value.String())
	}
	if a := Error(errors.New("x")); a.Value.String() != "x" {
		t.Errorf("unexpected error attr %v", a)
	}
}
