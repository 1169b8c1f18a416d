package config

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/language"

	"git.home.luguber.info/inful/notesite/internal/foundation/errors"
)

// Validate checks the structural shape of the site configuration. It does not
// look at sidebars or content; cross-reference checks live in package check.
func Validate(s *Site) error {
	v := &siteValidator{site: s}
	v.validateIdentity()
	v.validatePolicies()
	v.validateI18n()
	v.validateNavbar()
	v.validateFooter()
	v.validateHead()
	v.validateAlgolia()
	if len(v.problems) == 0 {
		return nil
	}
	return errors.ValidationError("invalid site configuration").
		WithCause(fmt.Errorf("%s", strings.Join(v.problems, "; "))).
		WithContext("problems", v.problems).
		Build()
}

type siteValidator struct {
	site     *Site
	problems []string
}

func (v *siteValidator) addf(format string, args ...any) {
	v.problems = append(v.problems, fmt.Sprintf(format, args...))
}

func (v *siteValidator) validateIdentity() {
	s := v.site
	if s.Title == "" {
		v.addf("title is required")
	}
	if s.URL == "" {
		v.addf("url is required")
	} else if !IsAbsoluteHTTPURL(s.URL) {
		v.addf("url must be an absolute http(s) URL: %q", s.URL)
	} else if u, _ := url.Parse(s.URL); u.Path != "" && u.Path != "/" {
		v.addf("url must not contain a path (use base_url): %q", s.URL)
	}
	if !strings.HasPrefix(s.BaseURL, "/") || !strings.HasSuffix(s.BaseURL, "/") {
		v.addf("base_url must start and end with '/': %q", s.BaseURL)
	}
}

func (v *siteValidator) validatePolicies() {
	policies := []struct {
		field  string
		policy LinkPolicy
	}{
		{"on_broken_links", v.site.OnBrokenLinks},
		{"on_broken_markdown_links", v.site.OnBrokenMarkdownLinks},
	}
	for _, p := range policies {
		switch p.policy {
		case LinkPolicyIgnore, LinkPolicyLog, LinkPolicyWarn, LinkPolicyThrow:
		default:
			v.addf("%s has unsupported value %q", p.field, p.policy)
		}
	}
}

func (v *siteValidator) validateI18n() {
	i := v.site.I18n
	if _, err := language.Parse(i.DefaultLocale); err != nil {
		v.addf("i18n.default_locale %q is not a valid language tag", i.DefaultLocale)
	}
	for _, l := range i.Locales {
		if _, err := language.Parse(l); err != nil {
			v.addf("i18n.locales entry %q is not a valid language tag", l)
		}
	}
}

func (v *siteValidator) validateNavbar() {
	for i, item := range v.site.ThemeConfig.Navbar.Items {
		if item.Label == "" {
			v.addf("navbar item %d has no label", i)
		}
		switch item.Type {
		case NavbarDocSidebar:
			if item.SidebarID == "" {
				v.addf("navbar item %d (%s) requires sidebar_id", i, item.Label)
			}
		case NavbarDoc:
			if item.DocID == "" {
				v.addf("navbar item %d (%s) requires doc_id", i, item.Label)
			}
		case NavbarLink:
			if (item.Href == "") == (item.To == "") {
				v.addf("navbar item %d (%s) requires exactly one of href or to", i, item.Label)
			}
		default:
			v.addf("navbar item %d has unsupported type %q", i, item.Type)
		}
		if item.Position != PositionLeft && item.Position != PositionRight {
			v.addf("navbar item %d has unsupported position %q", i, item.Position)
		}
	}
}

func (v *siteValidator) validateFooter() {
	for si, section := range v.site.ThemeConfig.Footer.Links {
		for li, link := range section.Items {
			if link.Label == "" {
				v.addf("footer section %d link %d has no label", si, li)
			}
			if (link.To == "") == (link.Href == "") {
				v.addf("footer link %q requires exactly one of to or href", link.Label)
			}
		}
	}
}

func (v *siteValidator) validateHead() {
	for i, m := range v.site.ThemeConfig.Metadata {
		if m.Key() == "" {
			v.addf("metadata entry %d requires name or property", i)
		}
	}
	for i, h := range v.site.ThemeConfig.HeadTags {
		if h.TagName == "" && h.JSONLD == nil {
			v.addf("head tag %d requires tag_name or json_ld", i)
		}
		if h.TagName != "" && h.JSONLD != nil {
			v.addf("head tag %d sets both tag_name and json_ld", i)
		}
	}
	for i, sc := range v.site.Scripts {
		if sc.Src == "" {
			v.addf("script %d requires src", i)
		}
	}
	for i, st := range v.site.Stylesheets {
		if st.Href == "" {
			v.addf("stylesheet %d requires href", i)
		}
	}
}

func (v *siteValidator) validateAlgolia() {
	a := v.site.ThemeConfig.Algolia
	if a == nil {
		return
	}
	set := 0
	for _, f := range []string{a.AppID, a.APIKey, a.IndexName} {
		if f != "" {
			set++
		}
	}
	if set != 3 {
		v.addf("algolia requires app_id, api_key and index_name together")
	}
}

// IsAbsoluteHTTPURL reports whether raw parses as an absolute http or https URL with a host.
func IsAbsoluteHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
