package config

// Site is the declarative configuration record of a documentation site. It is
// read once by Load and never mutated afterwards; renderers and checkers only
// read from it.
type Site struct {
	Title            string `yaml:"title"`
	Tagline          string `yaml:"tagline,omitempty"`
	Favicon          string `yaml:"favicon,omitempty"`
	URL              string `yaml:"url"`      // canonical site origin, e.g. https://dds.com.np
	BaseURL          string `yaml:"base_url"` // path prefix the site is served under, always /-delimited
	OrganizationName string `yaml:"organization_name,omitempty"`
	ProjectName      string `yaml:"project_name,omitempty"`

	OnBrokenLinks         LinkPolicy `yaml:"on_broken_links,omitempty"`
	OnBrokenMarkdownLinks LinkPolicy `yaml:"on_broken_markdown_links,omitempty"`

	I18n        I18nConfig    `yaml:"i18n"`
	Docs        DocsConfig    `yaml:"docs"`
	Theme       StyleConfig   `yaml:"theme,omitempty"`
	Scripts     []Script      `yaml:"scripts,omitempty"`
	Stylesheets []Stylesheet  `yaml:"stylesheets,omitempty"`
	ThemeConfig ThemeSettings `yaml:"theme_config"`

	dir string
}

// I18nConfig declares the default locale and the full locale set.
type I18nConfig struct {
	DefaultLocale string   `yaml:"default_locale"`
	Locales       []string `yaml:"locales"`
}

// DocsConfig describes the documentation content source.
type DocsConfig struct {
	Path               string   `yaml:"path"`
	RouteBasePath      string   `yaml:"route_base_path"`
	SidebarPath        string   `yaml:"sidebar_path"`
	EditURL            string   `yaml:"edit_url,omitempty"`
	SidebarCollapsed   bool     `yaml:"sidebar_collapsed"`
	SidebarCollapsible *bool    `yaml:"sidebar_collapsible,omitempty"`
	RemarkPlugins      []string `yaml:"remark_plugins,omitempty"`
	RehypePlugins      []string `yaml:"rehype_plugins,omitempty"`
}

// Collapsible reports whether sidebar categories may be collapsed (default true).
func (d DocsConfig) Collapsible() bool {
	return d.SidebarCollapsible == nil || *d.SidebarCollapsible
}

// StyleConfig references the site's custom stylesheet.
type StyleConfig struct {
	CustomCSS string `yaml:"custom_css,omitempty"`
}

// Script is an external script injected into every page head.
type Script struct {
	Src         string `yaml:"src"`
	Async       bool   `yaml:"async,omitempty"`
	Defer       bool   `yaml:"defer,omitempty"`
	CrossOrigin string `yaml:"crossorigin,omitempty"`
}

// Stylesheet is an external stylesheet injected into every page head.
type Stylesheet struct {
	Href        string `yaml:"href"`
	Type        string `yaml:"type,omitempty"`
	Integrity   string `yaml:"integrity,omitempty"`
	CrossOrigin string `yaml:"crossorigin,omitempty"`
}

// ThemeSettings groups presentation and integration settings consumed by the theme.
type ThemeSettings struct {
	Docs     DocsUI         `yaml:"docs,omitempty"`
	Metadata []MetaTag      `yaml:"metadata,omitempty"`
	HeadTags []HeadTag      `yaml:"head_tags,omitempty"`
	Image    string         `yaml:"image,omitempty"`
	Navbar   Navbar         `yaml:"navbar"`
	Footer   Footer         `yaml:"footer"`
	Prism    PrismConfig    `yaml:"prism"`
	Algolia  *AlgoliaConfig `yaml:"algolia,omitempty"`
}

// DocsUI holds docs page UI toggles.
type DocsUI struct {
	Sidebar struct {
		Hideable bool `yaml:"hideable"`
	} `yaml:"sidebar"`
}

// MetaTag is a single SEO/social <meta> tag. Either Name or Property is set.
type MetaTag struct {
	Name     string `yaml:"name,omitempty"`
	Property string `yaml:"property,omitempty"`
	Content  string `yaml:"content"`
}

// Key returns the attribute value identifying the tag.
func (m MetaTag) Key() string {
	if m.Name != "" {
		return m.Name
	}
	return m.Property
}

// HeadTag is an arbitrary element injected into the page head. JSONLD is a
// shorthand for a <script type="application/ld+json"> tag whose body is the
// JSON encoding of the map.
type HeadTag struct {
	TagName    string            `yaml:"tag_name,omitempty"`
	Attributes map[string]string `yaml:"attributes,omitempty"`
	InnerHTML  string            `yaml:"inner_html,omitempty"`
	JSONLD     map[string]any    `yaml:"json_ld,omitempty"`
}

// Navbar is the top navigation bar.
type Navbar struct {
	Title string       `yaml:"title,omitempty"`
	Logo  *Logo        `yaml:"logo,omitempty"`
	Items []NavbarItem `yaml:"items"`
}

// Logo is an image with alt text.
type Logo struct {
	Alt string `yaml:"alt"`
	Src string `yaml:"src"`
}

// NavbarItem references a sidebar, a single doc or a link.
type NavbarItem struct {
	Type      NavbarItemType `yaml:"type,omitempty"`
	SidebarID string         `yaml:"sidebar_id,omitempty"`
	DocID     string         `yaml:"doc_id,omitempty"`
	Href      string         `yaml:"href,omitempty"`
	To        string         `yaml:"to,omitempty"`
	Label     string         `yaml:"label"`
	Position  Position       `yaml:"position,omitempty"`
}

// Footer is the site footer with categorized link columns.
type Footer struct {
	Style     FooterStyle     `yaml:"style,omitempty"`
	Links     []FooterSection `yaml:"links,omitempty"`
	Copyright string          `yaml:"copyright,omitempty"`
}

// FooterSection is a titled column of footer links.
type FooterSection struct {
	Title string       `yaml:"title"`
	Items []FooterLink `yaml:"items"`
}

// FooterLink points to an internal route (To) or an external URL (Href).
type FooterLink struct {
	Label string `yaml:"label"`
	To    string `yaml:"to,omitempty"`
	Href  string `yaml:"href,omitempty"`
}

// Target returns the link destination regardless of kind.
func (l FooterLink) Target() string {
	if l.To != "" {
		return l.To
	}
	return l.Href
}

// PrismConfig selects the light and dark syntax-highlighting themes.
type PrismConfig struct {
	Theme     string `yaml:"theme"`
	DarkTheme string `yaml:"dark_theme"`
}

// AlgoliaConfig holds the hosted search credentials. The API key is the
// public search-only key and is safe to commit.
type AlgoliaConfig struct {
	AppID            string `yaml:"app_id"`
	APIKey           string `yaml:"api_key"`
	IndexName        string `yaml:"index_name"`
	ContextualSearch bool   `yaml:"contextual_search"`
	SearchPagePath   string `yaml:"search_page_path,omitempty"`
	ExternalURLRegex string `yaml:"external_url_regex,omitempty"`
}
