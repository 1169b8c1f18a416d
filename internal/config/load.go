package config

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/notesite/internal/foundation/errors"
)

// Load reads, normalizes, defaults and validates the site configuration at configPath.
// Relative content paths in the result resolve against the config file's directory.
func Load(configPath string) (*Site, error) {
	dir := filepath.Dir(configPath)
	if err := loadEnvFile(dir); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundError("configuration file not found").
				WithContext("path", configPath).
				Build()
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read config file").
			WithContext("path", configPath).
			Build()
	}

	site, err := Parse([]byte(os.ExpandEnv(string(data))))
	if err != nil {
		return nil, err
	}
	site.dir = dir
	return site, nil
}

// Parse decodes YAML into a Site and runs normalization, defaults and validation.
func Parse(data []byte) (*Site, error) {
	var site Site
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&site); err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, errors.ConfigError("configuration file is empty").Build()
		}
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to unmarshal config").Fatal().Build()
	}

	nres, err := Normalize(&site)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "normalize").Fatal().Build()
	}
	for _, w := range nres.Warnings {
		slog.Warn("config normalization", "detail", w)
	}
	if err := ApplyDefaults(&site); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to apply defaults").Fatal().Build()
	}
	if err := Validate(&site); err != nil {
		return nil, err
	}
	return &site, nil
}

// Init writes the default site configuration to configPath.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.NewError(errors.CategoryConfig, "configuration file already exists (use --force to overwrite)").
			WithContext("path", configPath).
			Build()
	}
	data, err := Marshal(Default())
	if err != nil {
		return err
	}
	if dir := filepath.Dir(configPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "failed to create config directory").Build()
		}
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write config file").
			WithContext("path", configPath).
			Build()
	}
	return nil
}

// Marshal encodes the site as YAML with two-space indentation.
func Marshal(s *Site) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return buf.Bytes(), nil
}

// Dir returns the directory content paths are resolved against.
func (s *Site) Dir() string {
	return s.dir
}

// ResolvePath resolves a config-relative path.
func (s *Site) ResolvePath(p string) string {
	if filepath.IsAbs(p) || s.dir == "" {
		return p
	}
	return filepath.Join(s.dir, p)
}
