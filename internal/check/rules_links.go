package check

import (
	"fmt"
	"net/url"
	"strings"

	"git.home.luguber.info/inful/notesite/internal/config"
)

// FooterLinkRule verifies that every footer link is either an existing internal
// route or a well-formed external URL.
type FooterLinkRule struct{}

func (r *FooterLinkRule) Name() string { return "footer-link" }

func (r *FooterLinkRule) Check(in *Input) []Issue {
	var issues []Issue
	ix := in.index()
	for si, section := range in.Site.ThemeConfig.Footer.Links {
		for li, link := range section.Items {
			subject := fmt.Sprintf("footer.links[%d].items[%d]", si, li)
			switch {
			case link.To != "":
				if !strings.HasPrefix(link.To, "/") {
					issues = append(issues, Issue{
						Rule:     r.Name(),
						Severity: SeverityError,
						Subject:  subject,
						Message:  fmt.Sprintf("footer link %q route %q must be site-relative (start with /)", link.Label, link.To),
					})
					continue
				}
				if routeExists(ix, link.To) {
					continue
				}
				if sev, ok := SeverityForPolicy(in.Site.OnBrokenLinks); ok {
					issues = append(issues, Issue{
						Rule:     r.Name(),
						Severity: sev,
						Subject:  subject,
						Message:  fmt.Sprintf("footer link %q points to missing route %q", link.Label, link.To),
						Fix:      "create a doc served at " + link.To + " or fix the route",
					})
				}
			case link.Href != "":
				if !isExternalLink(link.Href) {
					issues = append(issues, Issue{
						Rule:     r.Name(),
						Severity: SeverityError,
						Subject:  subject,
						Message:  fmt.Sprintf("footer link %q has malformed external URL %q", link.Label, link.Href),
					})
				}
			}
		}
	}
	return issues
}

func isExternalLink(raw string) bool {
	if config.IsAbsoluteHTTPURL(raw) {
		return true
	}
	u, err := url.Parse(raw)
	return err == nil && u.Scheme == "mailto" && u.Opaque != ""
}

// MarkdownLinkRule verifies that relative links between Markdown docs resolve.
type MarkdownLinkRule struct{}

func (r *MarkdownLinkRule) Name() string { return "markdown-link" }

func (r *MarkdownLinkRule) Check(in *Input) []Issue {
	sev, ok := SeverityForPolicy(in.Site.OnBrokenMarkdownLinks)
	if !ok {
		return nil
	}
	var issues []Issue
	ix := in.index()
	for _, d := range ix.Docs() {
		for _, link := range d.Links {
			if !link.IsDocLink() {
				continue
			}
			if _, found := ix.ResolveLink(d, link); found {
				continue
			}
			issues = append(issues, Issue{
				Rule:     r.Name(),
				Severity: sev,
				Subject:  d.Path,
				Message:  fmt.Sprintf("markdown link %q in %s does not resolve to a doc", link.Destination, d.Path),
			})
		}
	}
	return issues
}

// EditURLRule verifies the docs edit URL prefix.
type EditURLRule struct{}

func (r *EditURLRule) Name() string { return "edit-url" }

func (r *EditURLRule) Check(in *Input) []Issue {
	edit := in.Site.Docs.EditURL
	if edit == "" {
		return nil
	}
	if !config.IsAbsoluteHTTPURL(edit) {
		return []Issue{{
			Rule:     r.Name(),
			Severity: SeverityError,
			Subject:  "docs.edit_url",
			Message:  fmt.Sprintf("edit URL %q is not an absolute http(s) URL", edit),
		}}
	}
	if !strings.HasSuffix(edit, "/") {
		return []Issue{{
			Rule:     r.Name(),
			Severity: SeverityWarning,
			Subject:  "docs.edit_url",
			Message:  fmt.Sprintf("edit URL %q should end with '/' so doc paths append cleanly", edit),
		}}
	}
	return nil
}
