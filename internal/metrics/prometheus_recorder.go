package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "notesite"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	stageDuration  *prom.HistogramVec
	renderDuration prom.Histogram
	stageResults   *prom.CounterVec
	renderOutcome  *prom.CounterVec
	checkIssues    *prom.CounterVec
	docsIndexed    prom.Gauge
	outputFiles    prom.Gauge
}

// NewPrometheusRecorder constructs metrics and registers them with reg.
// A nil reg gets a fresh registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual render stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"}),
		renderDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Total render duration",
			Buckets:   prom.DefBuckets,
		}),
		stageResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "stage_results_total",
			Help:      "Stage result counts by outcome",
		}, []string{"stage", "result"}),
		renderOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "render_outcomes_total",
			Help:      "Render outcomes by final status",
		}, []string{"outcome"}),
		checkIssues: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "check_issues_total",
			Help:      "Configuration check issues by rule and severity",
		}, []string{"rule", "severity"}),
		docsIndexed: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "docs_indexed",
			Help:      "Docs found by the last content scan",
		}),
		outputFiles: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "output_files",
			Help:      "Files written by the last render",
		}),
	}
	reg.MustRegister(pr.stageDuration, pr.renderDuration, pr.stageResults, pr.renderOutcome,
		pr.checkIssues, pr.docsIndexed, pr.outputFiles)
	return pr
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveRenderDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.renderDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStageResult(stage string, result ResultLabel) {
	if p == nil {
		return
	}
	p.stageResults.WithLabelValues(stage, string(result)).Inc()
}

func (p *PrometheusRecorder) IncRenderOutcome(outcome RenderOutcomeLabel) {
	if p == nil {
		return
	}
	p.renderOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) AddCheckIssues(rule, severity string, n int) {
	if p == nil || n <= 0 {
		return
	}
	p.checkIssues.WithLabelValues(rule, severity).Add(float64(n))
}

func (p *PrometheusRecorder) SetDocsIndexed(n int) {
	if p == nil {
		return
	}
	p.docsIndexed.Set(float64(n))
}

func (p *PrometheusRecorder) SetOutputFiles(n int) {
	if p == nil {
		return
	}
	p.outputFiles.Set(float64(n))
}
