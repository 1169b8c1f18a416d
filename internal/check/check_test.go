package check

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/notesite/internal/config"
	"git.home.luguber.info/inful/notesite/internal/docs"
	"git.home.luguber.info/inful/notesite/internal/sidebars"
	"git.home.luguber.info/inful/notesite/internal/testutil"
)

// loadInput writes p and builds the check input from disk.
func loadInput(t *testing.T, p *testutil.Project) *Input {
	t.Helper()
	p.Write()
	set, err := sidebars.Parse([]byte(p.Sidebars))
	require.NoError(t, err)
	ix, err := docs.Scan(filepath.Join(p.Root, p.Site.Docs.Path), p.Site.Docs.RouteBasePath)
	require.NoError(t, err)
	return &Input{Site: p.Site, Sidebars: set, Docs: ix}
}

func rules(issues []Issue) []string {
	var out []string
	for _, i := range issues {
		out = append(out, i.Rule)
	}
	return out
}

func TestRun_DefaultSite(t *testing.T) {
	in := loadInput(t, testutil.NewProject(t))
	before, err := in.Site.Digest()
	require.NoError(t, err)

	res := Run(in)

	assert.False(t, res.HasErrors(), "%+v", res.Issues)
	assert.Equal(t, len(DefaultRules()), res.Rules)
	assert.Equal(t, len(testutil.DDSDocs()), res.Docs)
	require.Len(t, res.ByRule("metadata-duplicate"), 1)
	assert.Contains(t, res.ByRule("metadata-duplicate")[0].Message, "twitter:card")
	assert.Len(t, res.ByRule("metadata-site-path"), 3)
	assert.Equal(t, "use https://dds.com.np/img/social-card.png", res.ByRule("metadata-site-path")[0].Fix)
	assert.Equal(t, 4, res.WarningCount())

	after, err := in.Site.Digest()
	require.NoError(t, err)
	assert.Equal(t, before, after, "checking must not modify the site")
}

func TestNavbarSidebarRule(t *testing.T) {
	p := testutil.NewProject(t).WithSite(func(s *config.Site) {
		s.ThemeConfig.Navbar.Items = append(s.ThemeConfig.Navbar.Items,
			config.NavbarItem{Type: config.NavbarDocSidebar, SidebarID: "dbmsSidebar", Label: "DBMS"},
			config.NavbarItem{Type: config.NavbarDocSidebar, SidebarID: "emptySidebar", Label: "Empty"})
	}).WithSidebars(testutil.DDSSidebars + "emptySidebar: []\n")

	issues := (&NavbarSidebarRule{}).Check(loadInput(t, p))
	require.Len(t, issues, 2)
	assert.Contains(t, issues[0].Message, `unknown sidebar "dbmsSidebar"`)
	assert.Equal(t, SeverityError, issues[0].Severity)
	assert.Contains(t, issues[1].Message, "has no doc")
}

func TestNavbarDocRule(t *testing.T) {
	p := testutil.NewProject(t).WithSite(func(s *config.Site) {
		s.OnBrokenLinks = config.LinkPolicyThrow
		s.ThemeConfig.Navbar.Items = []config.NavbarItem{
			{Type: config.NavbarDoc, DocID: "plt/syllabus", Label: "ok"},
			{Type: config.NavbarDoc, DocID: "plt/missing", Label: "missing doc"},
			{Type: config.NavbarLink, To: "/docs/nowhere", Label: "missing route"},
			{Type: config.NavbarLink, To: "/", Label: "home"},
			{Type: config.NavbarLink, Href: "github.com/x", Label: "bad href"},
		}
	})

	issues := (&NavbarDocRule{}).Check(loadInput(t, p))
	require.Len(t, issues, 3)
	for _, i := range issues {
		assert.Equal(t, SeverityError, i.Severity)
	}
	assert.Equal(t, "navbar.items[1]", issues[0].Subject)
	assert.Equal(t, "navbar.items[2]", issues[1].Subject)
	assert.Equal(t, "navbar.items[4]", issues[2].Subject)
}

func TestSidebarDocRule(t *testing.T) {
	p := testutil.NewProject(t).WithSidebars(testutil.DDSSidebars + `extra:
  - plt/unit-9
  - type: category
    label: Labs
    items:
      - type: autogenerated
        dir_name: labs
`)
	issues := (&SidebarDocRule{}).Check(loadInput(t, p))
	require.Len(t, issues, 2)
	assert.Equal(t, SeverityError, issues[0].Severity)
	assert.Contains(t, issues[0].Message, "plt/unit-9")
	assert.Equal(t, SeverityWarning, issues[1].Severity)
	assert.Contains(t, issues[1].Message, `"labs"`)
}

func TestSidebarDocRule_RemovedDoc(t *testing.T) {
	p := testutil.NewProject(t).WithoutDoc("plt/unit-1.md")
	issues := (&SidebarDocRule{}).Check(loadInput(t, p))
	require.Len(t, issues, 1)
	assert.Equal(t, "sidebars.pltSidebar", issues[0].Subject)
	assert.Contains(t, issues[0].Message, "plt/unit-1")
}

func TestFooterLinkRule_FollowsPolicy(t *testing.T) {
	broken := func(policy config.LinkPolicy) *testutil.Project {
		return testutil.NewProject(t).WithSite(func(s *config.Site) {
			s.OnBrokenLinks = policy
			s.ThemeConfig.Footer.Links[0].Items = append(s.ThemeConfig.Footer.Links[0].Items,
				config.FooterLink{Label: "DBMS", To: "/docs/dbms"})
		})
	}
	cases := []struct {
		policy config.LinkPolicy
		want   []Severity
	}{
		{config.LinkPolicyIgnore, nil},
		{config.LinkPolicyLog, []Severity{SeverityInfo}},
		{config.LinkPolicyWarn, []Severity{SeverityWarning}},
		{config.LinkPolicyThrow, []Severity{SeverityError}},
	}
	for _, tc := range cases {
		t.Run(string(tc.policy), func(t *testing.T) {
			issues := (&FooterLinkRule{}).Check(loadInput(t, broken(tc.policy)))
			var got []Severity
			for _, i := range issues {
				got = append(got, i.Severity)
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFooterLinkRule_Malformed(t *testing.T) {
	p := testutil.NewProject(t).WithSite(func(s *config.Site) {
		s.ThemeConfig.Footer.Links[1].Items = []config.FooterLink{
			{Label: "relative", To: "docs/plt/syllabus"},
			{Label: "no scheme", Href: "twitter.com/x"},
			{Label: "mail", Href: "mailto:notes@dds.com.np"},
		}
	})
	issues := (&FooterLinkRule{}).Check(loadInput(t, p))
	require.Len(t, issues, 2)
	assert.Equal(t, "footer.links[1].items[0]", issues[0].Subject)
	assert.Equal(t, "footer.links[1].items[1]", issues[1].Subject)
}

func TestMarkdownLinkRule(t *testing.T) {
	p := testutil.NewProject(t).
		WithDoc("plt/unit-2.md", "# Unit 2\n\nBack to [unit one](./unit-1.md), on to [three](unit-3.md).\n\n```md\n[ignored](nope.md)\n```\n")
	in := loadInput(t, p)

	issues := (&MarkdownLinkRule{}).Check(in)
	require.Len(t, issues, 1)
	assert.Equal(t, "plt/unit-2.md", issues[0].Subject)
	assert.Equal(t, SeverityWarning, issues[0].Severity)

	in.Site.OnBrokenMarkdownLinks = config.LinkPolicyIgnore
	assert.Empty(t, (&MarkdownLinkRule{}).Check(in))
}

func TestLocaleRule(t *testing.T) {
	site := config.Default()
	assert.Empty(t, (&LocaleRule{}).Check(&Input{Site: site}))

	site.I18n.Locales = []string{"ne"}
	issues := (&LocaleRule{}).Check(&Input{Site: site})
	require.Len(t, issues, 1)
	assert.Equal(t, SeverityError, issues[0].Severity)
}

func TestJSONLDRule(t *testing.T) {
	site := config.Default()
	site.ThemeConfig.HeadTags = append(site.ThemeConfig.HeadTags,
		config.HeadTag{JSONLD: map[string]any{"@type": "WebSite", "url": "/"}},
		config.HeadTag{TagName: "script", Attributes: map[string]string{"type": "application/ld+json"}, InnerHTML: "{not json"},
		config.HeadTag{TagName: "script", Attributes: map[string]string{"type": "application/ld+json"}, InnerHTML: `{"@context":"https://schema.org","@type":"Person"}`},
		config.HeadTag{TagName: "link", Attributes: map[string]string{"rel": "preconnect", "href": "https://fonts.example.com"}},
	)
	issues := (&JSONLDRule{}).Check(&Input{Site: site})
	require.Len(t, issues, 3)
	assert.Equal(t, "head_tags[1]", issues[0].Subject)
	assert.Contains(t, issues[0].Message, "@context")
	assert.Equal(t, SeverityWarning, issues[1].Severity)
	assert.Equal(t, "head_tags[2]", issues[2].Subject)
}

func TestAssetURLRule(t *testing.T) {
	site := config.Default()
	site.Scripts = append(site.Scripts, config.Script{Src: "/js/local.js"}, config.Script{Src: "js/relative.js"})
	site.Stylesheets = append(site.Stylesheets, config.Stylesheet{Href: "http://cdn.example.com/a.css"})

	issues := (&AssetURLRule{}).Check(&Input{Site: site})
	require.Len(t, issues, 2)
	assert.Equal(t, "scripts[2]", issues[0].Subject)
	assert.Equal(t, SeverityError, issues[0].Severity)
	assert.Equal(t, "stylesheets[1]", issues[1].Subject)
	assert.Equal(t, SeverityWarning, issues[1].Severity)
}

func TestJSONLDRule_Arrays(t *testing.T) {
	site := config.Default()
	n := len(site.ThemeConfig.HeadTags)
	ldScript := func(body string) config.HeadTag {
		return config.HeadTag{TagName: "script", Attributes: map[string]string{"type": "application/ld+json"}, InnerHTML: body}
	}
	site.ThemeConfig.HeadTags = append(site.ThemeConfig.HeadTags,
		ldScript(`[{"@context":"https://schema.org","@type":"WebSite"},{"@context":"https://schema.org","@type":"Organization"}]`),
		ldScript(`[{"@context":"https://schema.org","@type":"WebSite"},{"@type":"Organization"}]`),
		ldScript(`"just a string"`),
		ldScript(`[1, 2]`),
	)
	issues := (&JSONLDRule{}).Check(&Input{Site: site})
	require.Len(t, issues, 3)
	assert.Equal(t, fmt.Sprintf("head_tags[%d][1]", n+1), issues[0].Subject)
	assert.Contains(t, issues[0].Message, "@context")
	assert.Equal(t, fmt.Sprintf("head_tags[%d]", n+2), issues[1].Subject)
	assert.Contains(t, issues[1].Message, "array of objects")
	assert.Equal(t, fmt.Sprintf("head_tags[%d]", n+3), issues[2].Subject)
}

func TestAssetURLRule_ProtocolRelative(t *testing.T) {
	site := config.Default()
	n := len(site.Scripts)
	site.Scripts = append(site.Scripts, config.Script{Src: "//cdn.example.com/lib.js"})

	issues := (&AssetURLRule{}).Check(&Input{Site: site})
	require.Len(t, issues, 1)
	assert.Equal(t, fmt.Sprintf("scripts[%d]", n), issues[0].Subject)
	assert.Equal(t, SeverityWarning, issues[0].Severity)
	assert.Equal(t, "use https://cdn.example.com/lib.js", issues[0].Fix)
}

func TestSearchCredentialsRule(t *testing.T) {
	site := config.Default()
	assert.Empty(t, (&SearchCredentialsRule{}).Check(&Input{Site: site}))

	site.ThemeConfig.Algolia = &config.AlgoliaConfig{
		AppID:            "1vuxql0700",
		APIKey:           "not-a-key",
		IndexName:        "dds com",
		ExternalURLRegex: "(",
		SearchPagePath:   "/search",
		ContextualSearch: true,
	}
	issues := (&SearchCredentialsRule{}).Check(&Input{Site: site})
	assert.Equal(t, []string{
		"algolia.app_id", "algolia.api_key", "algolia.index_name",
		"algolia.external_url_regex", "algolia.search_page_path", "algolia.contextual_search",
	}, subjects(issues))

	site.ThemeConfig.Algolia = nil
	assert.Empty(t, (&SearchCredentialsRule{}).Check(&Input{Site: site}))
}

func subjects(issues []Issue) []string {
	var out []string
	for _, i := range issues {
		out = append(out, i.Subject)
	}
	return out
}

func TestMathPluginRule(t *testing.T) {
	mathDocs, err := docs.NewIndex([]*docs.Doc{{ID: "a", Path: "a.md", Route: "/docs/a", HasMath: true}})
	require.NoError(t, err)
	plainDocs, err := docs.NewIndex([]*docs.Doc{{ID: "a", Path: "a.md", Route: "/docs/a"}})
	require.NoError(t, err)

	cases := []struct {
		name   string
		mutate func(s *config.Site)
		ix     *docs.Index
		want   []Severity
	}{
		{"configured", func(*config.Site) {}, mathDocs, nil},
		{"unused", func(*config.Site) {}, plainDocs, []Severity{SeverityInfo}},
		{"remark only", func(s *config.Site) { s.Docs.RehypePlugins = nil }, mathDocs, []Severity{SeverityError}},
		{"rehype only", func(s *config.Site) { s.Docs.RemarkPlugins = nil }, mathDocs, []Severity{SeverityError}},
		{"no stylesheet", func(s *config.Site) { s.Stylesheets = nil }, mathDocs, []Severity{SeverityWarning}},
		{"not configured", func(s *config.Site) {
			s.Docs.RemarkPlugins = nil
			s.Docs.RehypePlugins = nil
		}, mathDocs, []Severity{SeverityWarning}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			site := config.Default()
			tc.mutate(site)
			var got []Severity
			for _, i := range (&MathPluginRule{}).Check(&Input{Site: site, Docs: tc.ix}) {
				got = append(got, i.Severity)
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPrismThemeRule(t *testing.T) {
	site := config.Default()
	assert.Empty(t, (&PrismThemeRule{}).Check(&Input{Site: site}))

	site.ThemeConfig.Prism.DarkTheme = "solarized"
	issues := (&PrismThemeRule{}).Check(&Input{Site: site})
	require.Len(t, issues, 1)
	assert.Equal(t, "prism.dark_theme", issues[0].Subject)
}

func TestEditURLRule(t *testing.T) {
	site := config.Default()
	assert.Empty(t, (&EditURLRule{}).Check(&Input{Site: site}))

	site.Docs.EditURL = "https://github.com/sunil-9/bca_notes/tree/main"
	require.Len(t, (&EditURLRule{}).Check(&Input{Site: site}), 1)

	site.Docs.EditURL = "github.com/sunil-9"
	issues := (&EditURLRule{}).Check(&Input{Site: site})
	require.Len(t, issues, 1)
	assert.Equal(t, SeverityError, issues[0].Severity)
}

func TestRun_NilDocs(t *testing.T) {
	site := config.Default()
	set, err := sidebars.Parse([]byte(testutil.DDSSidebars))
	require.NoError(t, err)

	res := Run(&Input{Site: site, Sidebars: set})
	assert.True(t, res.HasErrors())
	assert.Contains(t, rules(res.Issues), "sidebar-doc-ref")
	assert.Equal(t, 0, res.Docs)
}

func TestSeverityForPolicy(t *testing.T) {
	_, ok := SeverityForPolicy(config.LinkPolicyIgnore)
	assert.False(t, ok)
	sev, ok := SeverityForPolicy(config.LinkPolicyLog)
	assert.True(t, ok)
	assert.Equal(t, SeverityInfo, sev)
	sev, _ = SeverityForPolicy("")
	assert.Equal(t, SeverityWarning, sev)
}

func TestFormatters(t *testing.T) {
	res := &Result{
		Docs:  3,
		Rules: 2,
		Issues: []Issue{
			{Rule: "footer-link", Severity: SeverityError, Subject: "footer.links[0].items[0]", Message: "broken", Fix: "fix it"},
			{Rule: "prism-theme", Severity: SeverityWarning, Subject: "prism.theme", Message: "unknown"},
		},
	}

	text, err := NewFormatter("text")
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, text.Format(&buf, res, "notesite.yaml"))
	out := buf.String()
	assert.Contains(t, out, "✗ ERROR [footer-link] footer.links[0].items[0]")
	assert.Contains(t, out, "fix: fix it")
	assert.Contains(t, out, "1 error (blocks render)")
	assert.Contains(t, out, "1 warning (should fix)")

	jf, err := NewFormatter("JSON")
	require.NoError(t, err)
	buf.Reset()
	require.NoError(t, jf.Format(&buf, res, "notesite.yaml"))
	var decoded struct {
		Issues []struct {
			Rule     string `json:"rule"`
			Severity string `json:"severity"`
		} `json:"issues"`
		Summary struct {
			Errors int  `json:"errors"`
			Passed bool `json:"passed"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "ERROR", decoded.Issues[0].Severity)
	assert.Equal(t, 1, decoded.Summary.Errors)
	assert.False(t, decoded.Summary.Passed)

	buf.Reset()
	require.NoError(t, text.Format(&buf, &Result{}, "notesite.yaml"))
	assert.Contains(t, buf.String(), "passes all checks")

	_, err = NewFormatter("xml")
	assert.Error(t, err)
}
