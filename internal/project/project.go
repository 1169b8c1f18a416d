// Package project loads everything a check or render works from: the site
// configuration, the sidebar definitions and the docs index.
package project

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/notesite/internal/check"
	"git.home.luguber.info/inful/notesite/internal/config"
	"git.home.luguber.info/inful/notesite/internal/docs"
	"git.home.luguber.info/inful/notesite/internal/logfields"
	"git.home.luguber.info/inful/notesite/internal/render"
	"git.home.luguber.info/inful/notesite/internal/sidebars"
)

// Project is a loaded notesite project. It is read-only once Load returns.
type Project struct {
	ConfigPath string
	Site       *config.Site
	Sidebars   sidebars.Set
	Docs       *docs.Index
}

// Load reads the configuration at configPath, then the sidebar file and docs
// tree it references.
func Load(configPath string) (*Project, error) {
	start := time.Now()
	site, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	set, err := sidebars.Load(site.ResolvePath(site.Docs.SidebarPath))
	if err != nil {
		return nil, err
	}
	ix, err := docs.Scan(site.ResolvePath(site.Docs.Path), site.Docs.RouteBasePath)
	if err != nil {
		return nil, err
	}
	slog.Debug("Loaded project",
		logfields.Path(configPath),
		logfields.Count(ix.Len()),
		logfields.DurationMS(float64(time.Since(start).Milliseconds())))
	return &Project{ConfigPath: configPath, Site: site, Sidebars: set, Docs: ix}, nil
}

// WatchPaths returns the files and directories whose changes invalidate the project.
func (p *Project) WatchPaths() []string {
	return []string{
		p.ConfigPath,
		p.Site.ResolvePath(p.Site.Docs.SidebarPath),
		p.Site.ResolvePath(p.Site.Docs.Path),
	}
}

// CheckInput returns the input for check.Run.
func (p *Project) CheckInput() *check.Input {
	return &check.Input{Site: p.Site, Sidebars: p.Sidebars, Docs: p.Docs}
}

// RenderInput returns the input for render.Render.
func (p *Project) RenderInput() *render.Input {
	return &render.Input{Site: p.Site, Sidebars: p.Sidebars, Docs: p.Docs}
}

// Check runs the default rule set.
func (p *Project) Check() *check.Result {
	return check.Run(p.CheckInput())
}

// InputDigest is a SHA-256 over everything a render for year reads: the site
// configuration, the sidebars and the navigation-relevant fields of every doc.
func (p *Project) InputDigest(year int) (string, error) {
	h := sha256.New()
	siteDigest, err := p.Site.Digest()
	if err != nil {
		return "", err
	}
	sb, err := yaml.Marshal(p.Sidebars)
	if err != nil {
		return "", fmt.Errorf("marshal sidebars: %w", err)
	}
	fmt.Fprintf(h, "year=%d\nsite=%s\n", year, siteDigest)
	h.Write(sb)
	for _, d := range p.Docs.Docs() {
		fmt.Fprintf(h, "doc %q %q %q %q %v %v %v\n", d.ID, d.Route, d.Title, d.SidebarLabel, d.Position, d.HasPosition, d.HasMath)
		for _, l := range d.Links {
			fmt.Fprintf(h, "  link %s %q\n", l.Kind, l.Destination)
		}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
