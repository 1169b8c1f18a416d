package config

import (
	"os"
	"path/filepath"
	"sort"

	"git.home.luguber.info/inful/notesite/internal/foundation/errors"
)

// StarterSidebars defines every sidebar the default navbar references.
const StarterSidebars = `pltSidebar:
  - plt/syllabus
  - type: category
    label: Units
    items:
      - plt/unit-1
linuxSidebar:
  - linux/syllabus
madtSideBar:
  - type: autogenerated
    dir_name: madt
project:
  - project/guide
workshopSidebar:
  - workshop/intro
webii:
  - webii/intro
bssSidebar:
  - bss/intro
mlSidebar:
  - ml/intro
`

// StarterDocs returns a docs tree, keyed by path below the docs root, that
// matches StarterSidebars and the default footer.
func StarterDocs() map[string]string {
	return map[string]string{
		"plt/syllabus.md":   "# PLT Syllabus\n\nStart with [unit one](unit-1.md).\n",
		"plt/unit-1.md":     "---\nsidebar_position: 1\n---\n# Unit 1\n\nThe area of a circle is $A = r^2$.\n",
		"linux/syllabus.md": "# Linux Syllabus\n",
		"madt/index.md":     "---\nsidebar_position: 1\n---\n# MADT\n",
		"madt/lab-1.md":     "---\nsidebar_position: 2\n---\n# Lab 1\n",
		"project/guide.md":  "# Project Guide\n",
		"workshop/intro.md": "# Workshop\n",
		"webii/intro.md":    "# Web Technology II\n",
		"bss/intro.md":      "# Business Support System\n",
		"ml/intro.md":       "---\ntitle: Machine Learning\n---\nIntroduction.\n",
	}
}

// InitProject writes the default configuration to configPath, then the
// starter sidebar file and docs next to it. Existing sidebar and doc files are
// never overwritten; force only applies to the configuration. It returns the
// files written.
func InitProject(configPath string, force bool) ([]string, error) {
	if err := Init(configPath, force); err != nil {
		return nil, err
	}
	written := []string{configPath}

	site := Default()
	if err := ApplyDefaults(site); err != nil {
		return written, err
	}
	site.dir = filepath.Dir(configPath)

	files := map[string]string{site.ResolvePath(site.Docs.SidebarPath): StarterSidebars}
	for rel, content := range StarterDocs() {
		files[filepath.Join(site.ResolvePath(site.Docs.Path), filepath.FromSlash(rel))] = content
	}
	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			continue
		}
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return written, errors.WrapError(err, errors.CategoryFileSystem, "failed to create directory").
				WithContext("path", filepath.Dir(p)).
				Build()
		}
		// #nosec G306 -- starter content is meant to be world-readable
		if err := os.WriteFile(p, []byte(files[p]), 0o644); err != nil {
			return written, errors.WrapError(err, errors.CategoryFileSystem, "failed to write starter file").
				WithContext("path", p).
				Build()
		}
		written = append(written, p)
	}
	return written, nil
}
