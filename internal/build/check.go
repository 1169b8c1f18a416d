package build

import (
	"git.home.luguber.info/inful/notesite/internal/check"
	"git.home.luguber.info/inful/notesite/internal/metrics"
	"git.home.luguber.info/inful/notesite/internal/project"
)

// Check loads the project at configPath and runs the default rule set.
func Check(configPath string, recorder metrics.Recorder) (*project.Project, *check.Result, error) {
	proj, err := project.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	res := proj.Check()
	if recorder != nil {
		recorder.SetDocsIndexed(proj.Docs.Len())
		RecordCheck(recorder, res)
	}
	return proj, res, nil
}

// RecordCheck counts check issues by rule and severity.
func RecordCheck(recorder metrics.Recorder, res *check.Result) {
	type key struct{ rule, severity string }
	counts := map[key]int{}
	for _, issue := range res.Issues {
		counts[key{issue.Rule, issue.Severity.String()}]++
	}
	for k, n := range counts {
		recorder.AddCheckIssues(k.rule, k.severity, n)
	}
}
