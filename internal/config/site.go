package config

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Content-transform plugins understood by the math pipeline.
const (
	PluginRemarkMath  = "remark-math"
	PluginRehypeKatex = "rehype-katex"
)

// YearPlaceholder is replaced by the build year in the footer copyright.
const YearPlaceholder = "{{year}}"

// Copyright expands the footer copyright template for the given year.
func (s *Site) Copyright(year int) string {
	return strings.ReplaceAll(s.ThemeConfig.Footer.Copyright, YearPlaceholder, strconv.Itoa(year))
}

// Root returns the canonical origin joined with the base path, with a trailing slash.
func (s *Site) Root() string {
	return strings.TrimRight(s.URL, "/") + s.BaseURL
}

// Permalink returns the absolute URL of a site-relative route.
func (s *Site) Permalink(route string) string {
	return strings.TrimRight(s.Root(), "/") + "/" + strings.TrimLeft(route, "/")
}

// DocsRoute returns the route of a doc path relative to the docs route base.
func (s *Site) DocsRoute(rel string) string {
	p := path.Join("/", s.Docs.RouteBasePath, rel)
	return p
}

// MathEnabled reports whether the math transform plugins are configured.
func (s *Site) MathEnabled() bool {
	return slices.Contains(s.Docs.RemarkPlugins, PluginRemarkMath) ||
		slices.Contains(s.Docs.RehypePlugins, PluginRehypeKatex)
}

// HasLocale reports whether the locale set contains l.
func (s *Site) HasLocale(l string) bool {
	return slices.Contains(s.I18n.Locales, l)
}

// Digest returns a stable SHA-256 over the canonical YAML encoding of the site.
func (s *Site) Digest() (string, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("marshal site: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// SitePathPrefix marks a path relative to the project root rather than a public URL.
const SitePathPrefix = "@site/"

// AssetURL returns the public URL of an asset reference. Project-root paths
// (@site/static/img/x.png) map to the permalink of the served file; anything
// else is returned unchanged.
func (s *Site) AssetURL(ref string) string {
	if !strings.HasPrefix(ref, SitePathPrefix) {
		return ref
	}
	p := strings.TrimPrefix(ref, SitePathPrefix)
	p = strings.TrimPrefix(p, "static/")
	return s.Permalink(p)
}
