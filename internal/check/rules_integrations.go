package check

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"git.home.luguber.info/inful/notesite/internal/config"
)

var (
	algoliaAppID     = regexp.MustCompile(`^[A-Z0-9]{10}$`)
	algoliaAPIKey    = regexp.MustCompile(`^[a-f0-9]{32}$`)
	algoliaIndexName = regexp.MustCompile(`^[A-Za-z0-9_.\-]+$`)
)

// SearchCredentialsRule verifies the shape of the hosted search credentials.
type SearchCredentialsRule struct{}

func (r *SearchCredentialsRule) Name() string { return "search-credentials" }

func (r *SearchCredentialsRule) Check(in *Input) []Issue {
	a := in.Site.ThemeConfig.Algolia
	if a == nil {
		return nil
	}
	var issues []Issue
	add := func(sev Severity, subject, msg string) {
		issues = append(issues, Issue{Rule: r.Name(), Severity: sev, Subject: "algolia." + subject, Message: msg})
	}
	if !algoliaAppID.MatchString(a.AppID) {
		add(SeverityError, "app_id", fmt.Sprintf("application id %q is not 10 upper-case alphanumerics", a.AppID))
	}
	if !algoliaAPIKey.MatchString(a.APIKey) {
		add(SeverityError, "api_key", "api key is not a 32 character hex search key")
	}
	if !algoliaIndexName.MatchString(a.IndexName) {
		add(SeverityError, "index_name", fmt.Sprintf("index name %q contains unsupported characters", a.IndexName))
	}
	if a.ExternalURLRegex != "" {
		if _, err := regexp.Compile(a.ExternalURLRegex); err != nil {
			add(SeverityError, "external_url_regex", fmt.Sprintf("external URL pattern does not compile: %v", err))
		}
	}
	if strings.HasPrefix(a.SearchPagePath, "/") {
		add(SeverityWarning, "search_page_path", "search page path is relative to the base URL and should not start with '/'")
	}
	if a.ContextualSearch && len(in.Site.I18n.Locales) <= 1 {
		add(SeverityInfo, "contextual_search", "contextual search has no effect with a single locale")
	}
	return issues
}

// MathPluginRule verifies the math transform plugins are wired consistently.
type MathPluginRule struct{}

func (r *MathPluginRule) Name() string { return "math-plugins" }

func (r *MathPluginRule) Check(in *Input) []Issue {
	var issues []Issue
	add := func(sev Severity, msg, fix string) {
		issues = append(issues, Issue{Rule: r.Name(), Severity: sev, Subject: "docs", Message: msg, Fix: fix})
	}
	s := in.Site
	remark := slices.Contains(s.Docs.RemarkPlugins, config.PluginRemarkMath)
	rehype := slices.Contains(s.Docs.RehypePlugins, config.PluginRehypeKatex)
	switch {
	case remark && !rehype:
		add(SeverityError, "remark-math is configured without rehype-katex; math is parsed but never rendered", "add rehype-katex to docs.rehype_plugins")
	case rehype && !remark:
		add(SeverityError, "rehype-katex is configured without remark-math; math is never parsed", "add remark-math to docs.remark_plugins")
	}

	mathDocs := in.index().MathDocs()
	if s.MathEnabled() {
		if !hasKatexStylesheet(s) {
			add(SeverityWarning, "math rendering is enabled but no KaTeX stylesheet is injected", "add the katex.min.css stylesheet")
		}
		if mathDocs == 0 && in.Docs != nil {
			add(SeverityInfo, "math plugins are enabled but no doc contains math", "")
		}
	} else if mathDocs > 0 {
		add(SeverityWarning, fmt.Sprintf("%d docs contain math notation but math plugins are not configured", mathDocs), "add remark-math and rehype-katex")
	}
	return issues
}

func hasKatexStylesheet(s *config.Site) bool {
	for _, st := range s.Stylesheets {
		if strings.Contains(strings.ToLower(st.Href), "katex") {
			return true
		}
	}
	return false
}

// PrismThemeRule verifies the syntax-highlighting theme names.
type PrismThemeRule struct{}

func (r *PrismThemeRule) Name() string { return "prism-theme" }

func (r *PrismThemeRule) Check(in *Input) []Issue {
	var issues []Issue
	p := in.Site.ThemeConfig.Prism
	for _, t := range []struct{ field, name string }{{"prism.theme", p.Theme}, {"prism.dark_theme", p.DarkTheme}} {
		if config.IsKnownPrismTheme(t.name) {
			continue
		}
		issues = append(issues, Issue{
			Rule:     r.Name(),
			Severity: SeverityWarning,
			Subject:  t.field,
			Message:  fmt.Sprintf("unknown syntax theme %q", t.name),
			Fix:      "use one of: " + strings.Join(config.PrismThemes(), ", "),
		})
	}
	return issues
}
