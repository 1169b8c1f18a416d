package metrics

import "time"

// ResultLabel enumerates stage result categories for counters.
type ResultLabel string

const (
	ResultSuccess  ResultLabel = "success"
	ResultWarning  ResultLabel = "warning"
	ResultFatal    ResultLabel = "fatal"
	ResultCanceled ResultLabel = "canceled"
)

// RenderOutcomeLabel is the final status of a render.
type RenderOutcomeLabel string

const (
	RenderOutcomeSuccess   RenderOutcomeLabel = "success"
	RenderOutcomeUnchanged RenderOutcomeLabel = "unchanged"
	RenderOutcomeFailed    RenderOutcomeLabel = "failed"
	RenderOutcomeRejected  RenderOutcomeLabel = "rejected" // check reported errors
	RenderOutcomeCanceled  RenderOutcomeLabel = "canceled"
)

// Recorder defines observability hooks for check and render runs.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObserveRenderDuration(d time.Duration)
	IncStageResult(stage string, result ResultLabel)
	IncRenderOutcome(outcome RenderOutcomeLabel)
	AddCheckIssues(rule, severity string, n int)
	SetDocsIndexed(n int)
	SetOutputFiles(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) ObserveRenderDuration(time.Duration)        {}
func (NoopRecorder) IncStageResult(string, ResultLabel)         {}
func (NoopRecorder) IncRenderOutcome(RenderOutcomeLabel)        {}
func (NoopRecorder) AddCheckIssues(string, string, int)         {}
func (NoopRecorder) SetDocsIndexed(int)                         {}
func (NoopRecorder) SetOutputFiles(int)                         {}
