package check

import (
	"fmt"

	"git.home.luguber.info/inful/notesite/internal/config"
	"git.home.luguber.info/inful/notesite/internal/docs"
	"git.home.luguber.info/inful/notesite/internal/sidebars"
)

var emptyIndex, _ = docs.NewIndex(nil)

func (in *Input) index() *docs.Index {
	if in.Docs == nil {
		return emptyIndex
	}
	return in.Docs
}

// NavbarSidebarRule verifies that every sidebar navbar item names an existing
// sidebar that resolves to at least one doc.
type NavbarSidebarRule struct{}

func (r *NavbarSidebarRule) Name() string { return "navbar-sidebar-ref" }

func (r *NavbarSidebarRule) Check(in *Input) []Issue {
	var issues []Issue
	for i, item := range in.Site.ThemeConfig.Navbar.Items {
		if item.Type != config.NavbarDocSidebar {
			continue
		}
		subject := fmt.Sprintf("navbar.items[%d]", i)
		if !in.Sidebars.Has(item.SidebarID) {
			issues = append(issues, Issue{
				Rule:     r.Name(),
				Severity: SeverityError,
				Subject:  subject,
				Message:  fmt.Sprintf("navbar item %q references unknown sidebar %q", item.Label, item.SidebarID),
				Fix:      "add the sidebar to " + in.Site.Docs.SidebarPath + " or fix sidebar_id",
			})
			continue
		}
		entries, _, err := in.Sidebars.Resolve(item.SidebarID, in.index())
		if err != nil {
			continue
		}
		if _, ok := sidebars.FirstDoc(entries); !ok {
			issues = append(issues, Issue{
				Rule:     r.Name(),
				Severity: SeverityError,
				Subject:  subject,
				Message:  fmt.Sprintf("sidebar %q has no doc for navbar item %q to link to", item.SidebarID, item.Label),
			})
		}
	}
	return issues
}

// NavbarDocRule verifies doc navbar items and internal navbar links.
type NavbarDocRule struct{}

func (r *NavbarDocRule) Name() string { return "navbar-doc-ref" }

func (r *NavbarDocRule) Check(in *Input) []Issue {
	var issues []Issue
	ix := in.index()
	for i, item := range in.Site.ThemeConfig.Navbar.Items {
		subject := fmt.Sprintf("navbar.items[%d]", i)
		switch item.Type {
		case config.NavbarDoc:
			if _, ok := ix.Doc(item.DocID); !ok {
				issues = append(issues, Issue{
					Rule:     r.Name(),
					Severity: SeverityError,
					Subject:  subject,
					Message:  fmt.Sprintf("navbar item %q references unknown doc %q", item.Label, item.DocID),
				})
			}
		case config.NavbarLink:
			if item.To != "" && !routeExists(ix, item.To) {
				if sev, ok := SeverityForPolicy(in.Site.OnBrokenLinks); ok {
					issues = append(issues, Issue{
						Rule:     r.Name(),
						Severity: sev,
						Subject:  subject,
						Message:  fmt.Sprintf("navbar item %q links to missing route %q", item.Label, item.To),
					})
				}
			}
			if item.Href != "" && !config.IsAbsoluteHTTPURL(item.Href) {
				issues = append(issues, Issue{
					Rule:     r.Name(),
					Severity: SeverityError,
					Subject:  subject,
					Message:  fmt.Sprintf("navbar item %q has malformed external URL %q", item.Label, item.Href),
				})
			}
		}
	}
	return issues
}

// SidebarDocRule verifies that every doc id referenced by a sidebar exists and
// that autogenerated sections are not empty.
type SidebarDocRule struct{}

func (r *SidebarDocRule) Name() string { return "sidebar-doc-ref" }

func (r *SidebarDocRule) Check(in *Input) []Issue {
	var issues []Issue
	ix := in.index()
	for _, id := range in.Sidebars.IDs() {
		_, missing, err := in.Sidebars.Resolve(id, ix)
		if err != nil {
			continue
		}
		for _, docID := range missing {
			issues = append(issues, Issue{
				Rule:     r.Name(),
				Severity: SeverityError,
				Subject:  "sidebars." + id,
				Message:  fmt.Sprintf("sidebar %q references unknown doc %q", id, docID),
				Fix:      "create the doc or remove it from the sidebar",
			})
		}
		for _, dir := range autogeneratedDirs(in.Sidebars[id]) {
			if len(ix.Under(dir)) == 0 {
				issues = append(issues, Issue{
					Rule:     r.Name(),
					Severity: SeverityWarning,
					Subject:  "sidebars." + id,
					Message:  fmt.Sprintf("autogenerated section %q contains no docs", dir),
				})
			}
		}
	}
	return issues
}

func autogeneratedDirs(items []sidebars.Item) []string {
	var out []string
	for _, it := range items {
		switch it.Type {
		case sidebars.ItemAutogenerated:
			out = append(out, it.DirName)
		case sidebars.ItemCategory:
			out = append(out, autogeneratedDirs(it.Items)...)
		}
	}
	return out
}

// LocaleRule verifies that the locale set contains the default locale.
type LocaleRule struct{}

func (r *LocaleRule) Name() string { return "locale-default" }

func (r *LocaleRule) Check(in *Input) []Issue {
	if in.Site.HasLocale(in.Site.I18n.DefaultLocale) {
		return nil
	}
	return []Issue{{
		Rule:     r.Name(),
		Severity: SeverityError,
		Subject:  "i18n.locales",
		Message:  fmt.Sprintf("locales %v do not contain default locale %q", in.Site.I18n.Locales, in.Site.I18n.DefaultLocale),
		Fix:      "add " + in.Site.I18n.DefaultLocale + " to i18n.locales",
	}}
}

func routeExists(ix *docs.Index, route string) bool {
	clean := docs.CleanRoute(route)
	return clean == "/" || ix.HasRoute(clean)
}
