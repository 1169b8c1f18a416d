package config

import "sort"

// prismChromaStyles maps the theme's syntax-highlighting theme names to the
// closest Hugo (chroma) highlight style.
var prismChromaStyles = map[string]string{
	"dracula":              "dracula",
	"duotoneDark":          "monokai",
	"duotoneLight":         "solarized-light",
	"github":               "github",
	"gruvboxMaterialDark":  "gruvbox",
	"gruvboxMaterialLight": "gruvbox-light",
	"jettwaveDark":         "onedark",
	"jettwaveLight":        "github",
	"nightOwl":             "nord",
	"nightOwlLight":        "solarized-light",
	"oceanicNext":          "nord",
	"okaidia":              "monokai",
	"oneDark":              "onedark",
	"oneLight":             "github",
	"palenight":            "dracula",
	"shadesOfPurple":       "dracula",
	"synthwave84":          "dracula",
	"ultramin":             "bw",
	"vsDark":               "vim",
	"vsLight":              "vs",
}

// IsKnownPrismTheme reports whether name is a syntax theme the site theme ships.
func IsKnownPrismTheme(name string) bool {
	_, ok := prismChromaStyles[name]
	return ok
}

// PrismThemes returns the known syntax theme names, sorted.
func PrismThemes() []string {
	names := make([]string, 0, len(prismChromaStyles))
	for n := range prismChromaStyles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ChromaStyle maps a syntax theme name to a Hugo highlight style. Unknown
// names fall back to github.
func ChromaStyle(theme string) string {
	if style, ok := prismChromaStyles[theme]; ok {
		return style
	}
	return "github"
}
