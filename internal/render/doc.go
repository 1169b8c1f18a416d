// Package render turns a checked site configuration into the configuration
// surface of a Hugo site:
//
//	hugo.yaml                          site config, menus and params
//	layouts/partials/head-extra.html   meta tags, JSON-LD, stylesheets, scripts
//	data/sidebars.yaml                 resolved sidebars
//	static/docsearch.json              hosted search parameters (when configured)
//
// Output is a pure function of the configuration, the sidebars, the doc index
// and the build year. No wall-clock value reaches a generated file.
package render
