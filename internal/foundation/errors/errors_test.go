package errors

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"testing"
)

func TestClassifiedError(t *testing.T) {
	t.Run("Basic error creation", func(t *testing.T) {
		err := NewError(CategoryConfig, "invalid configuration").
			WithSeverity(SeverityFatal).
			WithContext("file", "notesite.yaml").
			Build()

		if err.Category() != CategoryConfig {
			t.Errorf("expected category %s, got %s", CategoryConfig, err.Category())
		}
		if err.Severity() != SeverityFatal {
			t.Errorf("expected severity %s, got %s", SeverityFatal, err.Severity())
		}
		file, exists := err.Context().GetString("file")
		if !exists || file != "notesite.yaml" {
			t.Errorf("expected context file=notesite.yaml, got %v", file)
		}
		if err.Error() != "[config:fatal] invalid configuration" {
			t.Errorf("unexpected message %q", err.Error())
		}
	})

	t.Run("Wrapped chain detection", func(t *testing.T) {
		cause := errors.New("boom")
		err := fmt.Errorf("outer: %w", WrapError(cause, CategoryDocs, "scan failed").Build())

		if !IsClassified(err) {
			t.Fatal("expected wrapped error to be classified")
		}
		if !HasCategory(err, CategoryDocs) {
			t.Error("expected docs category")
		}
		if !errors.Is(err, cause) {
			t.Error("expected cause to be reachable")
		}
		if GetCategory(errors.New("plain")) != CategoryInternal {
			t.Error("expected plain errors to map to internal")
		}
	})
}

func TestErrorContextMerge(t *testing.T) {
	a := ErrorContext{"a": 1, "b": 2}
	b := ErrorContext{"b": 3}
	merged := a.Merge(b)
	if merged["a"] != 1 || merged["b"] != 3 {
		t.Errorf("unexpected merge result: %v", merged)
	}
	if a["b"] != 2 {
		t.Error("merge must not mutate receiver")
	}
}

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "nil error", err: nil, expected: 0},
		{name: "validation", err: ValidationError("broken link").Build(), expected: 2},
		{name: "docs", err: DocsError("bad frontmatter").Build(), expected: 3},
		{name: "config", err: ConfigError("bad yaml").Build(), expected: 7},
		{name: "render", err: RenderError("write failed").Build(), expected: 11},
		{name: "wrapped config", err: fmt.Errorf("load: %w", ConfigError("x").Build()), expected: 7},
		{name: "plain", err: errors.New("plain"), expected: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := adapter.ExitCodeFor(tt.err); got != tt.expected {
				t.Errorf("ExitCodeFor() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestCLIErrorAdapter_HandleError(t *testing.T) {
	var logs, out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	adapter := NewCLIErrorAdapter(false, logger)
	adapter.out = &out

	code := adapter.HandleError(InternalError("nil pointer").Build())
	if code != 10 {
		t.Errorf("expected exit code 10, got %d", code)
	}
	if out.String() != "Internal error occurred (use -v for details)\n" {
		t.Errorf("unexpected user message %q", out.String())
	}
	if !bytes.Contains(logs.Bytes(), []byte("category=internal")) {
		t.Errorf("expected category in log output, got %q", logs.String())
	}
}
