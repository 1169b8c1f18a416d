package config

import (
	"fmt"
	"strings"
)

// NormalizationResult captures adjustments & warnings from normalization pass.
type NormalizationResult struct{ Warnings []string }

// Normalize performs canonicalization on enumerated fields prior to default application.
// It mutates the provided site in-place and returns a result describing any coercions.
// Unknown navbar item types are left untouched so Validate can reject them.
func Normalize(s *Site) (*NormalizationResult, error) {
	if s == nil {
		return nil, fmt.Errorf("site config nil")
	}
	res := &NormalizationResult{}

	s.Title = strings.TrimSpace(s.Title)
	s.URL = strings.TrimSpace(s.URL)
	s.BaseURL = strings.TrimSpace(s.BaseURL)

	s.OnBrokenLinks = normalizePolicy("on_broken_links", s.OnBrokenLinks, res)
	s.OnBrokenMarkdownLinks = normalizePolicy("on_broken_markdown_links", s.OnBrokenMarkdownLinks, res)

	s.I18n.DefaultLocale = strings.TrimSpace(s.I18n.DefaultLocale)
	s.I18n.Locales = dedupeOrdered("i18n.locales", trimStringSlice(s.I18n.Locales), res)
	s.Docs.RemarkPlugins = dedupeOrdered("docs.remark_plugins", trimStringSlice(s.Docs.RemarkPlugins), res)
	s.Docs.RehypePlugins = dedupeOrdered("docs.rehype_plugins", trimStringSlice(s.Docs.RehypePlugins), res)

	normalizeNavbar(&s.ThemeConfig.Navbar, res)
	normalizeFooter(&s.ThemeConfig.Footer, res)
	return res, nil
}

func normalizePolicy(label string, p LinkPolicy, res *NormalizationResult) LinkPolicy {
	if strings.TrimSpace(string(p)) == "" {
		return ""
	}
	if np := NormalizeLinkPolicy(string(p)); np != "" {
		if np != p {
			res.Warnings = append(res.Warnings, warnChanged(label, p, np))
		}
		return np
	}
	res.Warnings = append(res.Warnings, warnUnknown(label, string(p), string(LinkPolicyWarn)))
	return LinkPolicyWarn
}

func normalizeNavbar(n *Navbar, res *NormalizationResult) {
	for i := range n.Items {
		item := &n.Items[i]
		label := fmt.Sprintf("theme_config.navbar.items[%d]", i)
		switch {
		case strings.TrimSpace(string(item.Type)) == "":
			item.Type = inferNavbarItemType(*item)
		default:
			if t := NormalizeNavbarItemType(string(item.Type)); t != "" && t != item.Type {
				res.Warnings = append(res.Warnings, warnChanged(label+".type", item.Type, t))
				item.Type = t
			}
		}
		if strings.TrimSpace(string(item.Position)) != "" {
			if p := NormalizePosition(string(item.Position)); p != "" {
				item.Position = p
			} else {
				res.Warnings = append(res.Warnings, warnUnknown(label+".position", string(item.Position), string(PositionLeft)))
				item.Position = PositionLeft
			}
		}
	}
}

func inferNavbarItemType(item NavbarItem) NavbarItemType {
	switch {
	case item.SidebarID != "":
		return NavbarDocSidebar
	case item.DocID != "":
		return NavbarDoc
	default:
		return NavbarLink
	}
}

func normalizeFooter(f *Footer, res *NormalizationResult) {
	if strings.TrimSpace(string(f.Style)) == "" {
		return
	}
	if st := NormalizeFooterStyle(string(f.Style)); st != "" {
		f.Style = st
		return
	}
	res.Warnings = append(res.Warnings, warnUnknown("theme_config.footer.style", string(f.Style), string(FooterDark)))
	f.Style = FooterDark
}

// trimStringSlice removes empty entries (after trimming whitespace) from a string slice.
// Does not dedupe or sort. Use this for order-sensitive configuration fields.
func trimStringSlice(in []string) []string {
	if len(in) == 0 {
		return in
	}
	out := make([]string, 0, len(in))
	for _, p := range in {
		if tp := strings.TrimSpace(p); tp != "" {
			out = append(out, tp)
		}
	}
	return out
}

// dedupeOrdered drops repeated entries while keeping first occurrence order.
func dedupeOrdered(label string, in []string, res *NormalizationResult) []string {
	if len(in) <= 1 {
		return in
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	if len(out) != len(in) {
		res.Warnings = append(res.Warnings, fmt.Sprintf("normalized %s list (%d -> %d entries)", label, len(in), len(out)))
	}
	return out
}

func warnChanged[T ~string](field string, from, to T) string {
	return fmt.Sprintf("normalized %s from %q to %q", field, string(from), string(to))
}

func warnUnknown(field, value, fallback string) string {
	return fmt.Sprintf("unknown %s %q, using %q", field, value, fallback)
}
