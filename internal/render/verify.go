package render

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"git.home.luguber.info/inful/notesite/internal/foundation/errors"
)

// Verification is the outcome of a determinism check.
type Verification struct {
	Digest    string   `json:"digest"`
	Files     int      `json:"files"`
	Identical bool     `json:"identical"`
	Differing []string `json:"differing,omitempty"`
}

// VerifyDeterminism renders in twice into fresh temporary directories and
// compares the written bytes file by file.
func VerifyDeterminism(ctx context.Context, in *Input, year int) (*Verification, error) {
	var outs [2]*Output
	for i := range outs {
		dir, err := os.MkdirTemp("", "notesite-verify-*")
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to create temporary directory").Build()
		}
		defer os.RemoveAll(dir)

		outs[i], err = Render(ctx, in, Options{OutputDir: dir, Year: year})
		if err != nil {
			return nil, err
		}
	}

	v := &Verification{Digest: outs[0].Digest, Files: len(outs[0].Files)}
	v.Differing = diffOutputs(outs[0], outs[1])
	v.Identical = outs[0].Digest == outs[1].Digest && len(v.Differing) == 0
	return v, nil
}

func diffOutputs(a, b *Output) []string {
	sums := map[string]string{}
	for _, f := range a.Files {
		sums[f.Path] = f.SHA256
	}
	seen := map[string]bool{}
	var diff []string
	for _, f := range b.Files {
		seen[f.Path] = true
		if sums[f.Path] != f.SHA256 {
			diff = append(diff, f.Path)
		}
	}
	for p := range sums {
		if !seen[p] {
			diff = append(diff, p)
		}
	}
	sort.Strings(diff)
	return diff
}

// ReadOutput hashes the managed files currently present in dir.
func ReadOutput(dir string) (map[string][]byte, error) {
	files := map[string][]byte{}
	for _, rel := range managedFiles {
		// #nosec G304 -- fixed set of generated paths below dir
		data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read generated file").
				WithContext("path", rel).
				Build()
		}
		files[rel] = data
	}
	return files, nil
}
