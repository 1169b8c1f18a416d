package config

const (
	socialTitle       = "DDS Notes - PU BCA Study Materials"
	socialDescription = "Comprehensive study materials and notes for BCA students at Pokhara University"
	socialCard        = "@site/static/img/social-card.png"
)

// Default returns the DDS Notes site configuration. Init writes it as the
// starting point for a new project.
func Default() *Site {
	collapsible := true
	return &Site{
		Title:                 "DDS Notes",
		Tagline:               "BCA Notes",
		Favicon:               "img/favicon.ico",
		URL:                   "https://dds.com.np",
		BaseURL:               "/",
		OrganizationName:      "sunil-9",
		ProjectName:           "bca_notes",
		OnBrokenLinks:         LinkPolicyWarn,
		OnBrokenMarkdownLinks: LinkPolicyWarn,
		I18n: I18nConfig{
			DefaultLocale: "en",
			Locales:       []string{"en"},
		},
		Docs: DocsConfig{
			Path:               "docs",
			RouteBasePath:      "docs",
			SidebarPath:        "sidebars.yaml",
			EditURL:            "https://github.com/sunil-9/bca_notes/tree/main/",
			SidebarCollapsed:   false,
			SidebarCollapsible: &collapsible,
			RemarkPlugins:      []string{PluginRemarkMath},
			RehypePlugins:      []string{PluginRehypeKatex},
		},
		Theme: StyleConfig{CustomCSS: "./src/css/custom.css"},
		Stylesheets: []Stylesheet{
			{Href: "https://cdn.jsdelivr.net/npm/katex@0.15.3/dist/katex.min.css", Type: "text/css"},
		},
		Scripts: []Script{
			{
				Src:         "https://pagead2.googlesyndication.com/pagead/js/adsbygoogle.js?client=ca-pub-4987525106509640",
				Async:       true,
				CrossOrigin: "anonymous",
			},
		},
		ThemeConfig: ThemeSettings{
			Docs: hideableSidebar(),
			Metadata: []MetaTag{
				{Name: "keywords", Content: "BCA, Bachelor of computer application, PU,Pokhara University, DDS Notes, DDS BCA Notes"},
				{Name: "twitter:card", Content: socialCard},
				{Name: "og:type", Content: "website"},
				{Name: "og:title", Content: socialTitle},
				{Name: "og:description", Content: socialDescription},
				{Name: "og:image", Content: socialCard},
				{Name: "twitter:card", Content: "summary_large_image"},
				{Name: "twitter:image", Content: socialCard},
				{Name: "twitter:title", Content: socialTitle},
				{Name: "twitter:description", Content: socialDescription},
			},
			HeadTags: []HeadTag{
				{
					JSONLD: map[string]any{
						"@context": "https://schema.org/",
						"@type":    "Organization",
						"name":     "DDS Notes",
						"url":      "https://dds.com.np/",
						"logo":     "https://dds.com.np/img/logo.svg",
					},
				},
			},
			Image: "img/social-card.jpg",
			Navbar: Navbar{
				Logo: &Logo{Alt: "DDS Notes", Src: "img/logo.svg"},
				Items: []NavbarItem{
					{Type: NavbarDocSidebar, SidebarID: "pltSidebar", Position: PositionLeft, Label: "PLT"},
					{Type: NavbarDocSidebar, SidebarID: "linuxSidebar", Position: PositionLeft, Label: "Linux"},
					{Type: NavbarDocSidebar, SidebarID: "madtSideBar", Position: PositionLeft, Label: "MADT"},
					{Type: NavbarDocSidebar, SidebarID: "project", Position: PositionLeft, Label: "Project"},
					{Type: NavbarDocSidebar, SidebarID: "workshopSidebar", Position: PositionLeft, Label: "Workshop"},
					{Type: NavbarDocSidebar, SidebarID: "webii", Position: PositionLeft, Label: "Web II"},
					{Type: NavbarDocSidebar, SidebarID: "bssSidebar", Position: PositionLeft, Label: "Business Support System"},
					{Type: NavbarDocSidebar, SidebarID: "mlSidebar", Position: PositionLeft, Label: "Machine Learning"},
					{Type: NavbarLink, Href: "https://github.com/sunil-9/bca_notes/", Label: "GitHub", Position: PositionRight},
				},
			},
			Footer: Footer{
				Style: FooterDark,
				Links: []FooterSection{
					{
						Title: "Docs",
						Items: []FooterLink{
							{Label: "PLT", To: "/docs/plt/syllabus"},
							{Label: "MADT", To: "/docs/madt"},
							{Label: "LINUX", To: "/docs/linux/syllabus"},
						},
					},
					{
						Title: "Connect",
						Items: []FooterLink{
							{Label: "Stack Overflow", Href: "https://stackoverflow.com/users/8008979/sunil-sapkota"},
							{Label: "Twitter", Href: "https://twitter.com/sunilsapkota09"},
						},
					},
					{
						Title: "More",
						Items: []FooterLink{
							{Label: "Portfolio", Href: "https://sapkotasunil.com.np/"},
							{Label: "GitHub", Href: "https://github.com/sunil-9/"},
						},
					},
				},
				Copyright: "Copyright " + YearPlaceholder + " DDS Notes, for PU BCA students.",
			},
			Prism: PrismConfig{Theme: "nightOwlLight", DarkTheme: "dracula"},
			Algolia: &AlgoliaConfig{
				AppID:            "1VUXQL0700",
				APIKey:           "5300d8545a649134bfd771cdff579db7",
				IndexName:        "dds-com",
				ContextualSearch: false,
				SearchPagePath:   "search",
			},
		},
	}
}

func hideableSidebar() DocsUI {
	var ui DocsUI
	ui.Sidebar.Hideable = true
	return ui
}
