package render

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/notesite/internal/foundation/errors"
)

const (
	dirPermissions  = 0o755
	filePermissions = 0o644
)

// writeAtomic replaces path with data: temp file, fsync, rename.
func writeAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
		return errors.FileSystemError("failed to create output directory").WithCause(err).
			WithContext("path", filepath.Dir(path)).
			Build()
	}
	pending, err := renameio.NewPendingFile(path, renameio.WithPermissions(filePermissions))
	if err != nil {
		return errors.FileSystemError("failed to create pending file").WithCause(err).
			WithContext("path", path).
			Build()
	}
	defer func() {
		if err := pending.Cleanup(); err != nil {
			slog.Debug("cleanup pending file", "path", path, "error", err)
		}
	}()

	if _, err := pending.Write(data); err != nil {
		return errors.FileSystemError("failed to write pending file").WithCause(err).
			WithContext("path", path).
			Build()
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return errors.FileSystemError("failed to replace file").WithCause(err).
			WithContext("path", path).
			Build()
	}
	return nil
}

// marshalYAML encodes v with two-space indentation behind the generated-file header.
// Map keys are emitted in sorted order.
func marshalYAML(v any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(generatedHeader)
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}
