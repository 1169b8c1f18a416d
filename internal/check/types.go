package check

import (
	"git.home.luguber.info/inful/notesite/internal/config"
	"git.home.luguber.info/inful/notesite/internal/docs"
	"git.home.luguber.info/inful/notesite/internal/sidebars"
)

// Severity indicates the importance level of an issue.
type Severity int

const (
	// SeverityInfo marks observations that need no action.
	SeverityInfo Severity = iota
	// SeverityWarning marks issues that should be fixed but do not fail the check.
	SeverityWarning
	// SeverityError marks issues that would break the generated site.
	SeverityError
)

// String returns the human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// MarshalText encodes the severity by name.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// SeverityForPolicy maps a broken-link policy to a severity. ok is false when
// the policy ignores the issue entirely.
func SeverityForPolicy(p config.LinkPolicy) (sev Severity, ok bool) {
	switch p {
	case config.LinkPolicyIgnore:
		return SeverityInfo, false
	case config.LinkPolicyLog:
		return SeverityInfo, true
	case config.LinkPolicyThrow:
		return SeverityError, true
	default:
		return SeverityWarning, true
	}
}

// Issue is a single problem found in the site configuration.
type Issue struct {
	Rule     string   `json:"rule"`
	Severity Severity `json:"severity"`
	Subject  string   `json:"subject"` // configuration location, e.g. "navbar.items[2]"
	Message  string   `json:"message"`
	Fix      string   `json:"fix,omitempty"`
}

// Result contains all issues found during a check run.
type Result struct {
	Issues []Issue `json:"issues"`
	Docs   int     `json:"docs"`
	Rules  int     `json:"rules"`
}

// HasErrors returns true if any error-level issues exist.
func (r *Result) HasErrors() bool {
	return r.ErrorCount() > 0
}

// ErrorCount returns the number of error-level issues.
func (r *Result) ErrorCount() int {
	return r.count(SeverityError)
}

// WarningCount returns the number of warning-level issues.
func (r *Result) WarningCount() int {
	return r.count(SeverityWarning)
}

// InfoCount returns the number of info-level issues.
func (r *Result) InfoCount() int {
	return r.count(SeverityInfo)
}

// ByRule returns the issues reported by rule.
func (r *Result) ByRule(rule string) []Issue {
	var out []Issue
	for _, issue := range r.Issues {
		if issue.Rule == rule {
			out = append(out, issue)
		}
	}
	return out
}

func (r *Result) count(sev Severity) int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == sev {
			n++
		}
	}
	return n
}

// Input is everything a rule may inspect. Rules must not modify it.
type Input struct {
	Site     *config.Site
	Sidebars sidebars.Set
	Docs     *docs.Index
}

// Rule checks one property of the site configuration.
type Rule interface {
	// Name returns the unique identifier for this rule.
	Name() string

	// Check inspects the input and returns any issues found.
	Check(in *Input) []Issue
}
