package docs

import (
	stderrors "errors"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/notesite/internal/foundation/errors"
	"git.home.luguber.info/inful/notesite/internal/frontmatter"
	"git.home.luguber.info/inful/notesite/internal/logfields"
	"git.home.luguber.info/inful/notesite/internal/markdown"
)

// Scan walks root for Markdown docs and builds an Index. routeBasePath is the
// URL prefix docs are served under ("docs" serves plt/syllabus.md at /docs/plt/syllabus).
// Files and directories starting with "_" or "." are skipped, as are drafts.
func Scan(root, routeBasePath string) (*Index, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryDocs, "docs directory not readable").
			WithContext("path", root).
			Build()
	}
	if !info.IsDir() {
		return nil, errors.DocsError("docs path is not a directory").WithContext("path", root).Build()
	}

	var found []*Doc
	walkErr := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if p != root && (strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !isDocFile(name) {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		doc, draft, err := loadDoc(p, filepath.ToSlash(rel), routeBasePath)
		if err != nil {
			return err
		}
		if draft {
			slog.Debug("Skipping draft doc", logfields.File(rel))
			return nil
		}
		found = append(found, doc)
		return nil
	})
	if walkErr != nil {
		if _, ok := errors.AsClassified(walkErr); ok {
			return nil, walkErr
		}
		return nil, errors.WrapError(walkErr, errors.CategoryDocs, "failed to scan docs").
			WithContext("path", root).
			Build()
	}

	ix, err := NewIndex(found)
	if err != nil {
		var dup *DuplicateError
		if stderrors.As(err, &dup) {
			return nil, errors.WrapError(err, errors.CategoryDocs, "conflicting docs").
				WithContext("kind", dup.Kind).
				WithContext("value", dup.Value).
				Build()
		}
		return nil, err
	}
	slog.Debug("Scanned docs", logfields.Path(root), logfields.Count(ix.Len()))
	return ix, nil
}

func loadDoc(absPath, rel, routeBasePath string) (*Doc, bool, error) {
	// #nosec G304 -- path comes from walking the configured docs root
	content, err := os.ReadFile(absPath)
	if err != nil {
		return nil, false, errors.WrapError(err, errors.CategoryFileSystem, "failed to read doc").
			WithContext("file", rel).
			Build()
	}
	fields, body, err := frontmatter.Parse(content)
	if err != nil {
		return nil, false, errors.WrapError(err, errors.CategoryDocs, "invalid frontmatter").
			WithContext("file", rel).
			Build()
	}
	if fields.Draft {
		return nil, true, nil
	}

	analysis := markdown.Analyze(body)
	dir := path.Dir(rel)
	if dir == "." {
		dir = ""
	}
	stem := strings.TrimSuffix(path.Base(rel), path.Ext(rel))

	localID := stem
	if fields.ID != "" {
		localID = fields.ID
	}
	title := fields.Title
	if title == "" {
		title = analysis.Title
	}

	var position float64
	if fields.SidebarPosition != nil {
		position = *fields.SidebarPosition
	}

	return &Doc{
		ID:           path.Join(dir, localID),
		Path:         rel,
		Dir:          dir,
		Route:        docRoute(routeBasePath, dir, stem, fields),
		Title:        title,
		SidebarLabel: fields.SidebarLabel,
		Position:     position,
		HasPosition:  fields.SidebarPosition != nil,
		HasMath:      analysis.HasMath,
		Links:        analysis.Links,
	}, false, nil
}

// docRoute derives the served route. An absolute slug is taken relative to the
// route base, a relative slug relative to the doc's directory. index, README and
// a file named after its directory are served at the directory route.
func docRoute(routeBasePath, dir, stem string, fields frontmatter.Fields) string {
	base := "/" + strings.Trim(routeBasePath, "/")
	switch {
	case strings.HasPrefix(fields.Slug, "/"):
		return CleanRoute(path.Join(base, fields.Slug))
	case fields.Slug != "":
		return CleanRoute(path.Join(base, dir, fields.Slug))
	case isIndexName(stem, dir):
		return CleanRoute(path.Join(base, dir))
	case fields.ID != "":
		return CleanRoute(path.Join(base, dir, fields.ID))
	default:
		return CleanRoute(path.Join(base, dir, stem))
	}
}

func isIndexName(stem, dir string) bool {
	lower := strings.ToLower(stem)
	if lower == "index" || lower == "readme" {
		return true
	}
	return dir != "" && stem == path.Base(dir)
}

func isDocFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".md" || ext == ".mdx"
}
