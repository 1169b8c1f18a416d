package render

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"git.home.luguber.info/inful/notesite/internal/config"
	"git.home.luguber.info/inful/notesite/internal/docs"
	"git.home.luguber.info/inful/notesite/internal/foundation/errors"
	"git.home.luguber.info/inful/notesite/internal/logfields"
	"git.home.luguber.info/inful/notesite/internal/sidebars"
)

// Generated file paths, relative to the output directory.
const (
	HugoConfigFile = "hugo.yaml"
	HeadPartial    = "layouts/partials/head-extra.html"
	SidebarsData   = "data/sidebars.yaml"
	DocSearchFile  = "static/docsearch.json"
)

// managedFiles are removed from the output directory when a render no longer produces them.
var managedFiles = []string{HugoConfigFile, HeadPartial, SidebarsData, DocSearchFile}

const generatedHeader = "# Code generated by notesite. DO NOT EDIT.\n"

// Input is the read-only material a render works from.
type Input struct {
	Site     *config.Site
	Sidebars sidebars.Set
	Docs     *docs.Index

	// Lenient skips navbar items whose sidebar or doc cannot be resolved
	// instead of failing the render.
	Lenient bool
}

// Options controls where and for which year output is rendered.
type Options struct {
	OutputDir string
	Year      int
}

// File describes one written file.
type File struct {
	Path   string `json:"path"`
	Size   int    `json:"size"`
	SHA256 string `json:"sha256"`
}

// Output describes a completed render.
type Output struct {
	Dir    string `json:"dir"`
	Year   int    `json:"year"`
	Files  []File `json:"files"`
	Digest string `json:"digest"`
}

// Generate produces every output file in memory, keyed by slash-separated path.
func Generate(in *Input, year int) (map[string][]byte, error) {
	if in == nil || in.Site == nil {
		return nil, errors.InternalError("render input requires a site").Build()
	}
	if in.Docs == nil {
		ix, err := docs.NewIndex(nil)
		if err != nil {
			return nil, err
		}
		in = &Input{Site: in.Site, Sidebars: in.Sidebars, Docs: ix, Lenient: in.Lenient}
	}

	files := map[string][]byte{}

	hugo, err := hugoConfig(in, year)
	if err != nil {
		return nil, err
	}
	if files[HugoConfigFile], err = marshalYAML(hugo); err != nil {
		return nil, errors.WrapError(err, errors.CategoryRender, "failed to marshal Hugo config").Build()
	}

	if files[HeadPartial], err = headPartial(in.Site); err != nil {
		return nil, errors.WrapError(err, errors.CategoryRender, "failed to render head partial").Build()
	}

	data, err := sidebarsData(in)
	if err != nil {
		return nil, err
	}
	if files[SidebarsData], err = marshalYAML(data); err != nil {
		return nil, errors.WrapError(err, errors.CategoryRender, "failed to marshal sidebars data").Build()
	}

	if in.Site.ThemeConfig.Algolia != nil {
		if files[DocSearchFile], err = docSearchJSON(in.Site); err != nil {
			return nil, errors.WrapError(err, errors.CategoryRender, "failed to marshal search parameters").Build()
		}
	}
	return files, nil
}

// Render generates the output and writes it atomically below opts.OutputDir.
func Render(ctx context.Context, in *Input, opts Options) (*Output, error) {
	if opts.OutputDir == "" {
		return nil, errors.ValidationError("output directory required").Build()
	}
	if info, err := os.Stat(opts.OutputDir); err == nil && !info.IsDir() {
		return nil, errors.FileSystemError("output path is not a directory").
			WithContext("path", opts.OutputDir).
			Build()
	}
	files, err := Generate(in, opts.Year)
	if err != nil {
		return nil, err
	}

	out := &Output{Dir: opts.OutputDir, Year: opts.Year, Digest: Digest(files)}
	for _, rel := range sortedPaths(files) {
		if err := ctx.Err(); err != nil {
			return nil, errors.WrapError(err, errors.CategoryRuntime, "render canceled").Build()
		}
		data := files[rel]
		if err := writeAtomic(filepath.Join(opts.OutputDir, filepath.FromSlash(rel)), data); err != nil {
			return nil, err
		}
		sum := sha256.Sum256(data)
		out.Files = append(out.Files, File{Path: rel, Size: len(data), SHA256: hex.EncodeToString(sum[:])})
		slog.Debug("Wrote generated file", logfields.File(rel))
	}
	if err := removeStale(opts.OutputDir, files); err != nil {
		return nil, err
	}
	slog.Info("Rendered site configuration",
		logfields.Path(opts.OutputDir),
		logfields.Count(len(out.Files)),
		logfields.Digest(out.Digest))
	return out, nil
}

// Digest is the SHA-256 over every file's path and content, in path order.
func Digest(files map[string][]byte) string {
	h := sha256.New()
	for _, rel := range sortedPaths(files) {
		h.Write([]byte(rel))
		h.Write([]byte{0})
		h.Write(files[rel])
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

func sortedPaths(files map[string][]byte) []string {
	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

func removeStale(dir string, produced map[string][]byte) error {
	for _, rel := range managedFiles {
		if _, ok := produced[rel]; ok {
			continue
		}
		p := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return errors.FileSystemError("failed to remove stale output").WithCause(err).
				WithContext("path", p).
				Build()
		} else if err == nil {
			slog.Info("Removed stale generated file", logfields.File(rel))
		}
	}
	return nil
}
