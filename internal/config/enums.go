package config

import "strings"

// LinkPolicy decides how a broken link is reported.
type LinkPolicy string

const (
	LinkPolicyIgnore LinkPolicy = "ignore"
	LinkPolicyLog    LinkPolicy = "log"
	LinkPolicyWarn   LinkPolicy = "warn"
	LinkPolicyThrow  LinkPolicy = "throw"
)

// NormalizeLinkPolicy returns the canonical policy or "" when unknown.
func NormalizeLinkPolicy(raw string) LinkPolicy {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "ignore", "off", "none":
		return LinkPolicyIgnore
	case "log", "info":
		return LinkPolicyLog
	case "warn", "warning":
		return LinkPolicyWarn
	case "throw", "error", "fail":
		return LinkPolicyThrow
	default:
		return ""
	}
}

// NavbarItemType is the kind of a navbar entry.
type NavbarItemType string

const (
	NavbarDocSidebar NavbarItemType = "doc_sidebar"
	NavbarDoc        NavbarItemType = "doc"
	NavbarLink       NavbarItemType = "link"
)

// NormalizeNavbarItemType maps accepted spellings to the canonical type or "".
func NormalizeNavbarItemType(raw string) NavbarItemType {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.NewReplacer("-", "", "_", "").Replace(s)
	switch s {
	case "docsidebar", "sidebar":
		return NavbarDocSidebar
	case "doc":
		return NavbarDoc
	case "link", "default":
		return NavbarLink
	default:
		return ""
	}
}

// Position places a navbar item.
type Position string

const (
	PositionLeft  Position = "left"
	PositionRight Position = "right"
)

// NormalizePosition returns the canonical position or "".
func NormalizePosition(raw string) Position {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "left":
		return PositionLeft
	case "right":
		return PositionRight
	default:
		return ""
	}
}

// FooterStyle is the footer color scheme.
type FooterStyle string

const (
	FooterDark  FooterStyle = "dark"
	FooterLight FooterStyle = "light"
)

// NormalizeFooterStyle returns the canonical style or "".
func NormalizeFooterStyle(raw string) FooterStyle {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "dark":
		return FooterDark
	case "light":
		return FooterLight
	default:
		return ""
	}
}
