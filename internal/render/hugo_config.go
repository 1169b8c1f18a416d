package render

import (
	"log/slog"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"git.home.luguber.info/inful/notesite/internal/config"
	"git.home.luguber.info/inful/notesite/internal/foundation/errors"
	"git.home.luguber.info/inful/notesite/internal/logfields"
	"git.home.luguber.info/inful/notesite/internal/sidebars"
)

// hugoConfig builds the hugo.yaml document.
func hugoConfig(in *Input, year int) (map[string]any, error) {
	s := in.Site

	// Phase 1: core settings
	root := map[string]any{
		"title":                  s.Title,
		"baseURL":                s.Root(),
		"languageCode":           s.I18n.DefaultLocale,
		"defaultContentLanguage": s.I18n.DefaultLocale,
		"languages":              languages(s.I18n),
		"enableRobotsTXT":        true,
		"refLinksErrorLevel":     refLinksErrorLevel(s.OnBrokenMarkdownLinks),
		"markup": map[string]any{
			"goldmark": map[string]any{"renderer": map[string]any{"unsafe": true}},
			"highlight": map[string]any{
				"style":     config.ChromaStyle(s.ThemeConfig.Prism.Theme),
				"noClasses": false,
				"tabWidth":  4,
			},
		},
	}

	// Phase 2: math passthrough so the math renderer sees raw delimiters
	if s.MathEnabled() {
		markup := root["markup"].(map[string]any)
		gm := markup["goldmark"].(map[string]any)
		gm["extensions"] = map[string]any{
			"passthrough": map[string]any{
				"delimiters": map[string]any{
					"block":  [][]string{{"\\[", "\\]"}, {"$$", "$$"}},
					"inline": [][]string{{"\\(", "\\)"}, {"$", "$"}},
				},
				"enable": true,
			},
		}
	}

	// Phase 3: menus
	mainMenu, err := mainMenu(in)
	if err != nil {
		return nil, err
	}
	root["menu"] = map[string]any{
		"main":   mainMenu,
		"footer": footerMenu(s.ThemeConfig.Footer),
	}

	// Phase 4: params
	root["params"] = params(s, year)
	return root, nil
}

func languages(i18n config.I18nConfig) map[string]any {
	out := map[string]any{}
	for i, l := range i18n.Locales {
		entry := map[string]any{"weight": i + 1}
		if tag, err := language.Parse(l); err == nil {
			entry["languageName"] = display.Self.Name(tag)
			entry["languageCode"] = tag.String()
		}
		out[l] = entry
	}
	return out
}

func refLinksErrorLevel(p config.LinkPolicy) string {
	if p == config.LinkPolicyThrow {
		return "ERROR"
	}
	return "WARNING"
}

// mainMenu maps navbar items to Hugo menu entries. A sidebar item links to the
// first doc of its sidebar. Unresolvable items fail the render unless in.Lenient,
// in which case they are dropped with a warning.
func mainMenu(in *Input) ([]map[string]any, error) {
	items := in.Site.ThemeConfig.Navbar.Items
	menu := make([]map[string]any, 0, len(items))
	for i, item := range items {
		entry, err := menuEntry(in, item, (i+1)*10)
		if err != nil {
			if !in.Lenient {
				return nil, err
			}
			slog.Warn("Skipping unresolvable navbar item",
				slog.Int("index", i),
				slog.String("label", item.Label),
				logfields.Error(err))
			continue
		}
		menu = append(menu, entry)
	}
	return menu, nil
}

func menuEntry(in *Input, item config.NavbarItem, weight int) (map[string]any, error) {
	entry := map[string]any{
		"name":   item.Label,
		"weight": weight,
	}
	p := map[string]any{"position": string(item.Position)}
	switch item.Type {
	case config.NavbarDocSidebar:
		entries, _, err := in.Sidebars.Resolve(item.SidebarID, in.Docs)
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryRender, "navbar item references unknown sidebar").
				WithContext("sidebar", item.SidebarID).
				Build()
		}
		first, ok := sidebars.FirstDoc(entries)
		if !ok {
			return nil, errors.RenderError("navbar sidebar has no doc to link to").
				WithContext("sidebar", item.SidebarID).
				Build()
		}
		entry["identifier"] = item.SidebarID
		entry["pageRef"] = first.Route
		p["sidebar"] = item.SidebarID
	case config.NavbarDoc:
		d, ok := in.Docs.Doc(item.DocID)
		if !ok {
			return nil, errors.RenderError("navbar item references unknown doc").
				WithContext("doc", item.DocID).
				Build()
		}
		entry["identifier"] = d.ID
		entry["pageRef"] = d.Route
	case config.NavbarLink:
		if item.Href != "" {
			entry["url"] = item.Href
			p["external"] = true
		} else {
			entry["pageRef"] = item.To
		}
	}
	entry["params"] = p
	return entry, nil
}

// footerMenu flattens footer sections into a two-level Hugo menu.
func footerMenu(f config.Footer) []map[string]any {
	var menu []map[string]any
	for si, section := range f.Links {
		parent := "footer-" + slug(section.Title)
		menu = append(menu, map[string]any{
			"identifier": parent,
			"name":       section.Title,
			"weight":     si + 1,
		})
		for li, link := range section.Items {
			entry := map[string]any{
				"name":   link.Label,
				"parent": parent,
				"weight": li + 1,
			}
			if link.To != "" {
				entry["pageRef"] = link.To
			} else {
				entry["url"] = link.Href
				entry["params"] = map[string]any{"external": true}
			}
			menu = append(menu, entry)
		}
	}
	return menu
}

func params(s *config.Site, year int) map[string]any {
	tc := s.ThemeConfig
	p := map[string]any{
		"description":  s.Tagline,
		"organization": s.OrganizationName,
		"project":      s.ProjectName,
		"docsRoute":    "/" + strings.Trim(s.Docs.RouteBasePath, "/"),
		"sidebar": map[string]any{
			"collapsed":   s.Docs.SidebarCollapsed,
			"collapsible": s.Docs.Collapsible(),
			"hideable":    tc.Docs.Sidebar.Hideable,
		},
		"footer": map[string]any{
			"style":     string(tc.Footer.Style),
			"copyright": s.Copyright(year),
		},
		"prism": map[string]any{
			"theme":     tc.Prism.Theme,
			"darkTheme": tc.Prism.DarkTheme,
			"style":     config.ChromaStyle(tc.Prism.Theme),
			"darkStyle": config.ChromaStyle(tc.Prism.DarkTheme),
		},
		"math": s.MathEnabled(),
	}
	if s.Favicon != "" {
		p["favicon"] = absoluteAsset(s, s.Favicon)
	}
	if tc.Image != "" {
		p["images"] = []string{absoluteAsset(s, tc.Image)}
	}
	if s.Docs.EditURL != "" {
		p["editURL"] = strings.TrimRight(s.Docs.EditURL, "/") + "/" + strings.Trim(s.Docs.Path, "/") + "/"
	}
	if s.Theme.CustomCSS != "" {
		p["customCSS"] = []string{s.Theme.CustomCSS}
	}
	navbar := map[string]any{}
	if tc.Navbar.Title != "" {
		navbar["title"] = tc.Navbar.Title
	}
	if tc.Navbar.Logo != nil {
		navbar["logo"] = map[string]any{"alt": tc.Navbar.Logo.Alt, "src": tc.Navbar.Logo.Src}
	}
	if len(navbar) > 0 {
		p["navbar"] = navbar
	}
	if a := tc.Algolia; a != nil {
		p["docsearch"] = map[string]any{
			"appId":            a.AppID,
			"apiKey":           a.APIKey,
			"indexName":        a.IndexName,
			"contextualSearch": a.ContextualSearch,
			"searchPagePath":   a.SearchPagePath,
		}
	}
	return p
}

// absoluteAsset returns the absolute public URL of a static asset reference.
func absoluteAsset(s *config.Site, ref string) string {
	u := s.AssetURL(ref)
	if config.IsAbsoluteHTTPURL(u) {
		return u
	}
	return s.Permalink(u)
}

// slug lower-cases s and joins its words with '-'.
func slug(s string) string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
	if len(fields) == 0 {
		return "section"
	}
	return strings.Join(fields, "-")
}
