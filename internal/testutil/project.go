package testutil

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"git.home.luguber.info/inful/notesite/internal/config"
)

// ConfigFile is the config file name written by Project.
const ConfigFile = "notesite.yaml"

// DDSSidebars covers every sidebar the default navbar references.
const DDSSidebars = config.StarterSidebars

// DDSDocs returns a docs tree matching DDSSidebars and the default footer.
func DDSDocs() map[string]string {
	return config.StarterDocs()
}

// Project is a notesite project rooted in a temporary directory.
type Project struct {
	t        *testing.T
	Root     string
	Site     *config.Site
	Sidebars string
	Docs     map[string]string
}

// NewProject returns the default DDS Notes project. Nothing is written until Write.
func NewProject(t *testing.T) *Project {
	t.Helper()
	return &Project{
		t:        t,
		Root:     t.TempDir(),
		Site:     config.Default(),
		Sidebars: DDSSidebars,
		Docs:     DDSDocs(),
	}
}

// WithSite applies fn to the site configuration before it is written.
func (p *Project) WithSite(fn func(s *config.Site)) *Project {
	fn(p.Site)
	return p
}

// WithDoc adds or replaces a doc.
func (p *Project) WithDoc(rel, content string) *Project {
	p.Docs[rel] = content
	return p
}

// WithoutDoc removes a doc.
func (p *Project) WithoutDoc(rel string) *Project {
	delete(p.Docs, rel)
	return p
}

// WithSidebars replaces the sidebar file content.
func (p *Project) WithSidebars(yml string) *Project {
	p.Sidebars = yml
	return p
}

// Write writes the project and returns the config file path.
func (p *Project) Write() string {
	p.t.Helper()
	data, err := config.Marshal(p.Site)
	if err != nil {
		p.t.Fatalf("marshal config: %v", err)
	}
	p.WriteFile(ConfigFile, string(data))
	p.WriteFile(p.Site.Docs.SidebarPath, p.Sidebars)

	rels := make([]string, 0, len(p.Docs))
	for rel := range p.Docs {
		rels = append(rels, rel)
	}
	sort.Strings(rels)
	for _, rel := range rels {
		p.WriteFile(filepath.Join(p.Site.Docs.Path, rel), p.Docs[rel])
	}
	return p.ConfigPath()
}

// ConfigPath returns the path of the config file.
func (p *Project) ConfigPath() string {
	return filepath.Join(p.Root, ConfigFile)
}

// Path joins rel onto the project root.
func (p *Project) Path(rel string) string {
	return filepath.Join(p.Root, filepath.FromSlash(rel))
}

// WriteFile writes content at rel below the project root, creating directories.
func (p *Project) WriteFile(rel, content string) {
	p.t.Helper()
	full := p.Path(rel)
	if err := os.MkdirAll(filepath.Dir(full), testDirPermissions); err != nil {
		p.t.Fatalf("mkdir %s: %v", filepath.Dir(full), err)
	}
	if err := os.WriteFile(full, []byte(content), testFilePermissions); err != nil {
		p.t.Fatalf("write %s: %v", full, err)
	}
}
