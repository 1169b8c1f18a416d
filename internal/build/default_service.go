package build

import (
	"context"
	stderrors "errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/notesite/internal/foundation/errors"
	"git.home.luguber.info/inful/notesite/internal/history"
	"git.home.luguber.info/inful/notesite/internal/logfields"
	"git.home.luguber.info/inful/notesite/internal/metrics"
	"git.home.luguber.info/inful/notesite/internal/observability"
	"git.home.luguber.info/inful/notesite/internal/project"
	"git.home.luguber.info/inful/notesite/internal/render"
)

// Stage names used for logging and metrics.
const (
	StageLoad    = "load"
	StageCheck   = "check"
	StageRender  = "render"
	StageHistory = "history"
)

// HistoryFactory opens the history store at path.
type HistoryFactory func(path string) (history.Store, error)

// DefaultService is the standard implementation of Service.
type DefaultService struct {
	recorder       metrics.Recorder
	historyFactory HistoryFactory
}

// NewService creates a DefaultService with no metrics and a SQLite history.
func NewService() *DefaultService {
	return &DefaultService{
		recorder: metrics.NoopRecorder{},
		historyFactory: func(path string) (history.Store, error) {
			return history.NewSQLiteStore(path)
		},
	}
}

// WithRecorder sets the metrics recorder.
func (s *DefaultService) WithRecorder(r metrics.Recorder) *DefaultService {
	if r == nil {
		r = metrics.NoopRecorder{}
	}
	s.recorder = r
	return s
}

// WithHistoryFactory allows injecting a custom history store (for testing).
func (s *DefaultService) WithHistoryFactory(f HistoryFactory) *DefaultService {
	s.historyFactory = f
	return s
}

// Run executes the complete pipeline.
func (s *DefaultService) Run(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	result := &Result{RenderID: uuid.NewString()}
	ctx = observability.WithRenderID(ctx, result.RenderID)

	finish := func(status Status, err error) (*Result, error) {
		result.Status = status
		result.Duration = time.Since(start)
		s.recorder.ObserveRenderDuration(result.Duration)
		s.recorder.IncRenderOutcome(outcomeLabel(status))
		return result, err
	}

	if req.OutputDir == "" {
		return finish(StatusFailed, errors.ValidationError("output directory required").Build())
	}
	year, err := render.ResolveYear(req.Year)
	if err != nil {
		return finish(StatusFailed, err)
	}

	// Stage 1: load configuration, sidebars and docs
	stageStart := time.Now()
	ctx = observability.WithStage(ctx, StageLoad)
	proj, err := project.Load(req.ConfigPath)
	s.observeStage(StageLoad, stageStart, err)
	if err != nil {
		return finish(StatusFailed, err)
	}
	s.recorder.SetDocsIndexed(proj.Docs.Len())

	// Stage 2: check
	stageStart = time.Now()
	ctx = observability.WithStage(ctx, StageCheck)
	result.Check = proj.Check()
	RecordCheck(s.recorder, result.Check)
	s.recorder.ObserveStageDuration(StageCheck, time.Since(stageStart))
	if result.Check.HasErrors() {
		s.recorder.IncStageResult(StageCheck, metrics.ResultFatal)
		if !req.Force {
			observability.WarnContext(ctx, "Check reported errors; nothing rendered",
				logfields.Count(result.Check.ErrorCount()))
			return finish(StatusRejected, errors.ValidationError("site configuration check failed").
				WithContext("errors", result.Check.ErrorCount()).
				Build())
		}
		observability.WarnContext(ctx, "Rendering despite check errors", logfields.Count(result.Check.ErrorCount()))
	} else if result.Check.WarningCount() > 0 {
		s.recorder.IncStageResult(StageCheck, metrics.ResultWarning)
	} else {
		s.recorder.IncStageResult(StageCheck, metrics.ResultSuccess)
	}

	// Stage 3: render
	if err := ctx.Err(); err != nil {
		return finish(StatusCanceled, err)
	}
	stageStart = time.Now()
	ctx = observability.WithStage(ctx, StageRender)
	in := proj.RenderInput()
	in.Lenient = req.Force
	result.Output, err = render.Render(ctx, in, render.Options{OutputDir: req.OutputDir, Year: year})
	s.observeStage(StageRender, stageStart, err)
	if err != nil {
		if stderrors.Is(err, context.Canceled) || ctx.Err() != nil {
			return finish(StatusCanceled, err)
		}
		return finish(StatusFailed, err)
	}
	s.recorder.SetOutputFiles(len(result.Output.Files))

	// Stage 4: history
	status := StatusSuccess
	if req.HistoryPath != "" {
		stageStart = time.Now()
		ctx = observability.WithStage(ctx, StageHistory)
		err = s.recordHistory(ctx, req, proj, year, result)
		s.observeStage(StageHistory, stageStart, err)
		if err != nil {
			return finish(StatusFailed, err)
		}
		if result.History == history.StatusUnchanged {
			status = StatusUnchanged
		}
	}

	observability.InfoContext(ctx, "Render complete",
		slog.String("status", string(status)),
		logfields.Digest(result.Output.Digest),
		logfields.DurationMS(float64(time.Since(start).Milliseconds())))
	return finish(status, nil)
}

func (s *DefaultService) recordHistory(ctx context.Context, req Request, proj *project.Project, year int, result *Result) error {
	store, err := s.historyFactory(req.HistoryPath)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			slog.Debug("close history store", logfields.Error(cerr))
		}
	}()

	configDigest, err := proj.Site.Digest()
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "digest site configuration").Build()
	}
	inputDigest, err := proj.InputDigest(year)
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "digest render input").Build()
	}

	last, err := store.Last(ctx)
	if err != nil {
		return err
	}
	sameInput, err := store.LastForInput(ctx, inputDigest)
	if err != nil {
		return err
	}

	rec := history.Record{
		ConfigDigest: configDigest,
		InputDigest:  inputDigest,
		OutputDigest: result.Output.Digest,
		OutputDir:    req.OutputDir,
		Year:         year,
		Files:        len(result.Output.Files),
		Errors:       result.Check.ErrorCount(),
		Warnings:     result.Check.WarningCount(),
	}
	result.History = history.Compare(rec, last, sameInput)
	result.Previous = last

	switch result.History {
	case history.StatusNondeterministic:
		observability.WarnContext(ctx, "Identical input produced different output",
			slog.String("previous_render", sameInput.ID),
			logfields.Digest(sameInput.OutputDigest))
	case history.StatusUnchanged:
		observability.InfoContext(ctx, "Output unchanged since previous render", slog.String("previous_render", last.ID))
	}

	if _, err := store.Record(ctx, rec); err != nil {
		return err
	}
	return nil
}

func (s *DefaultService) observeStage(stage string, start time.Time, err error) {
	s.recorder.ObserveStageDuration(stage, time.Since(start))
	switch {
	case err == nil:
		s.recorder.IncStageResult(stage, metrics.ResultSuccess)
	case stderrors.Is(err, context.Canceled):
		s.recorder.IncStageResult(stage, metrics.ResultCanceled)
	default:
		s.recorder.IncStageResult(stage, metrics.ResultFatal)
	}
}

func outcomeLabel(s Status) metrics.RenderOutcomeLabel {
	switch s {
	case StatusSuccess:
		return metrics.RenderOutcomeSuccess
	case StatusUnchanged:
		return metrics.RenderOutcomeUnchanged
	case StatusRejected:
		return metrics.RenderOutcomeRejected
	case StatusCanceled:
		return metrics.RenderOutcomeCanceled
	default:
		return metrics.RenderOutcomeFailed
	}
}
