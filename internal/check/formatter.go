package check

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Formatter formats check results for output.
type Formatter interface {
	Format(w io.Writer, result *Result, configPath string) error
}

// NewFormatter returns the formatter for name ("text" or "json").
func NewFormatter(name string) (Formatter, error) {
	switch strings.ToLower(name) {
	case "", "text":
		return &TextFormatter{}, nil
	case "json":
		return &JSONFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format %q", name)
	}
}

// TextFormatter formats results as human-readable text.
type TextFormatter struct{}

// Format outputs results in human-readable text format.
func (f *TextFormatter) Format(w io.Writer, result *Result, configPath string) error {
	p := &printer{w: w}
	p.printf("Checking site configuration: %s\n", configPath)
	p.println(strings.Repeat("━", 60))
	p.println()

	for _, issue := range result.Issues {
		p.printf("%s %s [%s] %s\n", icon(issue.Severity), issue.Severity, issue.Rule, issue.Subject)
		p.printf("  %s\n", issue.Message)
		if issue.Fix != "" {
			p.printf("  fix: %s\n", issue.Fix)
		}
		p.println()
	}

	p.println(strings.Repeat("━", 60))
	p.println("Results:")
	p.printf("  %d docs scanned, %d rules applied\n", result.Docs, result.Rules)
	if n := result.ErrorCount(); n > 0 {
		p.printf("  %d error%s (blocks render)\n", n, pluralize(n))
	}
	if n := result.WarningCount(); n > 0 {
		p.printf("  %d warning%s (should fix)\n", n, pluralize(n))
	}
	if n := result.InfoCount(); n > 0 {
		p.printf("  %d info\n", n)
	}
	p.println()

	switch {
	case result.HasErrors():
		p.println("❌ Site configuration has errors that will break the generated site.")
	case result.WarningCount() > 0:
		p.println("⚠️  Site configuration has warnings. Consider fixing before publishing.")
	case len(result.Issues) > 0:
		p.println("ℹ️  All issues are informational.")
	default:
		p.println("✨ Site configuration passes all checks!")
	}
	return p.err
}

func icon(s Severity) string {
	switch s {
	case SeverityError:
		return "✗"
	case SeverityWarning:
		return "⚠"
	default:
		return "ℹ"
	}
}

func pluralize(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

// printer remembers the first write error so callers check once.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err == nil {
		_, p.err = fmt.Fprintf(p.w, format, args...)
	}
}

func (p *printer) println(args ...any) {
	if p.err == nil {
		_, p.err = fmt.Fprintln(p.w, args...)
	}
}

// JSONFormatter formats results as JSON.
type JSONFormatter struct{}

type jsonOutput struct {
	Config  string      `json:"config"`
	Issues  []Issue     `json:"issues"`
	Summary jsonSummary `json:"summary"`
}

type jsonSummary struct {
	Docs     int  `json:"docs"`
	Rules    int  `json:"rules"`
	Errors   int  `json:"errors"`
	Warnings int  `json:"warnings"`
	Info     int  `json:"info"`
	Passed   bool `json:"passed"`
}

// Format outputs results as an indented JSON document.
func (f *JSONFormatter) Format(w io.Writer, result *Result, configPath string) error {
	issues := result.Issues
	if issues == nil {
		issues = []Issue{}
	}
	out := jsonOutput{
		Config: configPath,
		Issues: issues,
		Summary: jsonSummary{
			Docs:     result.Docs,
			Rules:    result.Rules,
			Errors:   result.ErrorCount(),
			Warnings: result.WarningCount(),
			Info:     result.InfoCount(),
			Passed:   !result.HasErrors(),
		},
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
