// Package build provides the canonical load → check → render → record pipeline.
// The render, verify and watch commands all route through Service.
package build

import (
	"context"
	"time"

	"git.home.luguber.info/inful/notesite/internal/check"
	"git.home.luguber.info/inful/notesite/internal/history"
	"git.home.luguber.info/inful/notesite/internal/render"
)

// Service executes renders.
type Service interface {
	// Run loads the project, checks it and, unless the check reports errors,
	// renders it. The result is returned even when err is non-nil.
	Run(ctx context.Context, req Request) (*Result, error)
}

// Request contains all inputs required to execute a render.
type Request struct {
	// ConfigPath is the site configuration file.
	ConfigPath string

	// OutputDir is the Hugo site directory generated files are written into.
	OutputDir string

	// Year expands the footer copyright. Zero resolves it from SOURCE_DATE_EPOCH.
	Year int

	// HistoryPath is the render history database. Empty disables history.
	HistoryPath string

	// Force renders even when the check reports errors.
	Force bool
}

// Result contains the outcome of a render.
type Result struct {
	Status   Status
	RenderID string

	Check  *check.Result
	Output *render.Output

	// History compares this render with earlier ones (empty without history).
	History  history.Status
	Previous *history.Record

	Duration time.Duration
}

// Status represents the outcome of a render.
type Status string

const (
	// StatusSuccess indicates new output was written.
	StatusSuccess Status = "success"

	// StatusUnchanged indicates the output equals the previous render.
	StatusUnchanged Status = "unchanged"

	// StatusRejected indicates the check reported errors and nothing was written.
	StatusRejected Status = "rejected"

	// StatusFailed indicates the render encountered an error.
	StatusFailed Status = "failed"

	// StatusCanceled indicates the render was canceled.
	StatusCanceled Status = "canceled"
)

// IsSuccess returns true if output is current.
func (s Status) IsSuccess() bool {
	return s == StatusSuccess || s == StatusUnchanged
}
