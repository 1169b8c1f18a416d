package config

import (
	"fmt"
	"strings"
)

// DefaultApplier applies defaults for a specific configuration domain.
type DefaultApplier interface {
	ApplyDefaults(s *Site) error
	Domain() string
}

// SiteDefaultApplier handles identity and link policy defaults.
type SiteDefaultApplier struct{}

func (SiteDefaultApplier) Domain() string { return "site" }

func (SiteDefaultApplier) ApplyDefaults(s *Site) error {
	if s.BaseURL == "" {
		s.BaseURL = "/"
	}
	if !strings.HasPrefix(s.BaseURL, "/") {
		s.BaseURL = "/" + s.BaseURL
	}
	if !strings.HasSuffix(s.BaseURL, "/") {
		s.BaseURL += "/"
	}
	if s.OnBrokenLinks == "" {
		s.OnBrokenLinks = LinkPolicyWarn
	}
	if s.OnBrokenMarkdownLinks == "" {
		s.OnBrokenMarkdownLinks = LinkPolicyWarn
	}
	return nil
}

// I18nDefaultApplier fills the default locale and locale set.
type I18nDefaultApplier struct{}

func (I18nDefaultApplier) Domain() string { return "i18n" }

func (I18nDefaultApplier) ApplyDefaults(s *Site) error {
	if s.I18n.DefaultLocale == "" {
		s.I18n.DefaultLocale = "en"
	}
	if len(s.I18n.Locales) == 0 {
		s.I18n.Locales = []string{s.I18n.DefaultLocale}
	}
	return nil
}

// DocsDefaultApplier fills content source paths.
type DocsDefaultApplier struct{}

func (DocsDefaultApplier) Domain() string { return "docs" }

func (DocsDefaultApplier) ApplyDefaults(s *Site) error {
	if s.Docs.Path == "" {
		s.Docs.Path = "docs"
	}
	if s.Docs.RouteBasePath == "" {
		s.Docs.RouteBasePath = "docs"
	}
	s.Docs.RouteBasePath = strings.Trim(s.Docs.RouteBasePath, "/")
	if s.Docs.SidebarPath == "" {
		s.Docs.SidebarPath = "sidebars.yaml"
	}
	return nil
}

// ThemeDefaultApplier fills navbar, footer, prism and search defaults.
type ThemeDefaultApplier struct{}

func (ThemeDefaultApplier) Domain() string { return "theme_config" }

func (ThemeDefaultApplier) ApplyDefaults(s *Site) error {
	tc := &s.ThemeConfig
	for i := range tc.Navbar.Items {
		if tc.Navbar.Items[i].Position == "" {
			tc.Navbar.Items[i].Position = PositionLeft
		}
	}
	if tc.Footer.Style == "" {
		tc.Footer.Style = FooterDark
	}
	if tc.Prism.Theme == "" {
		tc.Prism.Theme = "github"
	}
	if tc.Prism.DarkTheme == "" {
		tc.Prism.DarkTheme = "dracula"
	}
	if tc.Algolia != nil && tc.Algolia.SearchPagePath == "" {
		tc.Algolia.SearchPagePath = "search"
	}
	return nil
}

// ApplyDefaults runs every domain applier in order.
func ApplyDefaults(s *Site) error {
	appliers := []DefaultApplier{
		SiteDefaultApplier{},
		I18nDefaultApplier{},
		DocsDefaultApplier{},
		ThemeDefaultApplier{},
	}
	for _, a := range appliers {
		if err := a.ApplyDefaults(s); err != nil {
			return fmt.Errorf("%s defaults: %w", a.Domain(), err)
		}
	}
	return nil
}
