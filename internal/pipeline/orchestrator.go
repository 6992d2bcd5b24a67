package pipeline

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kapu/ai-creative-studio-go/internal/constants"
	"github.com/kapu/ai-creative-studio-go/internal/domain"
	"github.com/kapu/ai-creative-studio-go/internal/metrics"
	"github.com/kapu/ai-creative-studio-go/internal/service/session"
	"github.com/kapu/ai-creative-studio-go/internal/util"
	"github.com/kapu/ai-creative-studio-go/pkg/errors"
	"github.com/sourcegraph/conc/panics"
	"go.uber.org/zap"
)

type Optimizer interface {
	Optimize(ctx context.Context, rawPrompt string) (string, error)
}

type Translator interface {
	ToEnglish(ctx context.Context, text string) (string, error)
}

type ImageGenerator interface {
	Generate(ctx context.Context, prompt string) (*domain.GeneratedImage, error)
}

type VideoGenerator interface {
	Generate(ctx context.Context, prompt string, durationSeconds, fps int, requestID string) (*domain.VideoHandle, error)
}

type Dependencies struct {
	Optimizer    Optimizer
	Translator   Translator
	Images       ImageGenerator
	Videos       VideoGenerator
	Store        session.Store
	HistoryLimit int
	Logger       *zap.Logger
}

// Orchestrator sequences optimize -> translate -> generate for each session.
// At most one stage runs per session; other sessions proceed in parallel.
type Orchestrator struct {
	optimizer    Optimizer
	translator   Translator
	images       ImageGenerator
	videos       VideoGenerator
	store        session.Store
	historyLimit int
	logger       *zap.Logger

	mu   sync.Mutex
	busy map[string]domain.Phase
}

func NewOrchestrator(deps Dependencies) *Orchestrator {
	limit := deps.HistoryLimit
	if limit == 0 {
		limit = constants.SessionConfig.HistoryLimit
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		optimizer:    deps.Optimizer,
		translator:   deps.Translator,
		images:       deps.Images,
		videos:       deps.Videos,
		store:        deps.Store,
		historyLimit: limit,
		logger:       logger,
		busy:         make(map[string]domain.Phase),
	}
}

// Optimize rewrites raw and translates the rewrite. Session state changes only
// when both steps succeed.
func (o *Orchestrator) Optimize(ctx context.Context, sessionID, raw string) (*domain.OptimizedResult, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		verr := errors.NewValidationError("prompt is required", "raw_prompt", raw)
		verr.Cause = errors.ErrEmptyInput
		return nil, verr
	}

	release, err := o.acquire(sessionID, domain.PhaseOptimizing)
	if err != nil {
		return nil, err
	}
	defer release()

	state, err := o.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	started := time.Now()

	var optimized string
	err = o.runStage(errors.StageOptimize, func() (err error) {
		optimized, err = o.optimizer.Optimize(ctx, raw)
		return err
	})
	if err != nil {
		o.logger.Warn("Optimize failed", zap.String("session_id", sessionID), zap.Error(err))
		return nil, err
	}

	var english string
	err = o.runStage(errors.StageTranslate, func() (err error) {
		english, err = o.translator.ToEnglish(ctx, optimized)
		return err
	})
	if err != nil {
		o.logger.Warn("Translation of optimized prompt failed", zap.String("session_id", sessionID), zap.Error(err))
		return nil, err
	}

	next := state.Clone()
	next.OptimizedPrompt = optimized
	next.EnglishPrompt = english
	next.AppendHistory(domain.HistoryEntry{
		Action: domain.ActionOptimize,
		Input:  raw,
		Output: optimized,
	}, o.historyLimit)

	if err := o.store.Save(ctx, next); err != nil {
		return nil, err
	}

	elapsed := time.Since(started)
	o.logger.Info("Prompt optimized",
		zap.String("session_id", sessionID),
		zap.String("optimized", util.TruncateString(optimized, constants.LogLimits.PromptPreview)),
		zap.Duration("elapsed", elapsed),
	)

	return &domain.OptimizedResult{
		SessionID:       sessionID,
		RawPrompt:       raw,
		OptimizedPrompt: optimized,
		EnglishPrompt:   english,
		Elapsed:         elapsed,
	}, nil
}

// GenerateImage renders the session's optimized prompt. Prompt state is
// never modified.
func (o *Orchestrator) GenerateImage(ctx context.Context, sessionID string) (*domain.ImageResult, error) {
	release, err := o.acquire(sessionID, domain.PhaseGeneratingImage)
	if err != nil {
		return nil, err
	}
	defer release()

	state, err := o.loadOptimized(ctx, sessionID, errors.StageImage)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	var img *domain.GeneratedImage
	err = o.runStage(errors.StageImage, func() (err error) {
		img, err = o.images.Generate(ctx, state.OptimizedPrompt)
		return err
	})
	if err != nil {
		o.logger.Warn("Image generation failed", zap.String("session_id", sessionID), zap.Error(err))
		return nil, err
	}

	o.recordGeneration(ctx, sessionID, domain.ActionImage, state.OptimizedPrompt,
		fmt.Sprintf("%dx%d %s", img.Width, img.Height, img.MIMEType))

	return &domain.ImageResult{
		SessionID: sessionID,
		Image:     img,
		Elapsed:   time.Since(started),
	}, nil
}

// GenerateVideo renders the session's optimized prompt into a video file
// unique to this request.
func (o *Orchestrator) GenerateVideo(ctx context.Context, sessionID string, durationSeconds, fps int) (*domain.VideoResult, error) {
	release, err := o.acquire(sessionID, domain.PhaseGeneratingVideo)
	if err != nil {
		return nil, err
	}
	defer release()

	state, err := o.loadOptimized(ctx, sessionID, errors.StageVideo)
	if err != nil {
		return nil, err
	}

	requestID := sessionID + "-" + uuid.NewString()
	started := time.Now()
	var video *domain.VideoHandle
	err = o.runStage(errors.StageVideo, func() (err error) {
		video, err = o.videos.Generate(ctx, state.OptimizedPrompt, durationSeconds, fps, requestID)
		return err
	})
	if err != nil {
		o.logger.Warn("Video generation failed", zap.String("session_id", sessionID), zap.Error(err))
		return nil, err
	}

	o.recordGeneration(ctx, sessionID, domain.ActionVideo, state.OptimizedPrompt, video.Path)

	return &domain.VideoResult{
		SessionID: sessionID,
		Video:     video,
		Elapsed:   time.Since(started),
	}, nil
}

func (o *Orchestrator) State(ctx context.Context, sessionID string) (*domain.SessionState, error) {
	return o.store.Load(ctx, sessionID)
}

// Reset clears the session. It is refused while a stage is in flight.
func (o *Orchestrator) Reset(ctx context.Context, sessionID string) error {
	release, err := o.acquire(sessionID, domain.PhaseIdle)
	if err != nil {
		return err
	}
	defer release()

	return o.store.Reset(ctx, sessionID)
}

func (o *Orchestrator) Phase(ctx context.Context, sessionID string) domain.Phase {
	o.mu.Lock()
	phase, busy := o.busy[sessionID]
	o.mu.Unlock()
	if busy && phase.IsBusy() {
		return phase
	}

	state, err := o.store.Load(ctx, sessionID)
	if err != nil {
		return domain.PhaseIdle
	}
	return state.Phase()
}

func (o *Orchestrator) acquire(sessionID string, phase domain.Phase) (func(), error) {
	if sessionID == "" {
		return nil, errors.NewSessionError("session id is required", sessionID, errors.ErrEmptyInput)
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if current, ok := o.busy[sessionID]; ok {
		metrics.StageTotal.WithLabelValues(phase.String(), metrics.OutcomeBusy).Inc()
		return nil, errors.NewSessionError("session is busy: "+current.String(), sessionID, errors.ErrSessionBusy)
	}
	o.busy[sessionID] = phase
	metrics.ActiveSessions.Inc()

	return func() {
		o.mu.Lock()
		delete(o.busy, sessionID)
		o.mu.Unlock()
		metrics.ActiveSessions.Dec()
	}, nil
}

func (o *Orchestrator) loadOptimized(ctx context.Context, sessionID, stage string) (*domain.SessionState, error) {
	state, err := o.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !state.HasPrompt() {
		return nil, errors.NewGenerationError(stage, "optimize a prompt first", errors.ErrNotOptimized)
	}
	return state, nil
}

// recordGeneration appends a history entry. The media was already produced,
// so a store failure is logged rather than returned.
func (o *Orchestrator) recordGeneration(ctx context.Context, sessionID string, action domain.Action, input, output string) {
	state, err := o.store.Load(ctx, sessionID)
	if err != nil {
		o.logger.Error("Failed to reload session for history", zap.String("session_id", sessionID), zap.Error(err))
		return
	}
	state.AppendHistory(domain.HistoryEntry{
		Action: action,
		Input:  input,
		Output: output,
	}, o.historyLimit)
	if err := o.store.Save(ctx, state); err != nil {
		o.logger.Error("Failed to record history", zap.String("session_id", sessionID), zap.Error(err))
	}
}

// runStage executes fn, converting a panic into the stage's typed error and
// recording the outcome.
func (o *Orchestrator) runStage(stage string, fn func() error) error {
	started := time.Now()

	var err error
	var pc panics.Catcher
	pc.Try(func() { err = fn() })

	outcome := metrics.OutcomeSuccess
	if recovered := pc.Recovered(); recovered != nil {
		outcome = metrics.OutcomePanic
		o.logger.Error("Stage panicked",
			zap.String("stage", stage),
			zap.Any("panic", recovered.Value),
			zap.String("stack", string(recovered.Stack)),
		)
		err = stageError(stage, "stage panicked", recovered.AsError())
	} else if err != nil {
		outcome = metrics.OutcomeFailure
		if errors.StageOf(err) == "" {
			err = stageError(stage, stage+" failed", err)
		}
	}

	metrics.ObserveStage(stage, outcome, time.Since(started))
	return err
}

func stageError(stage, message string, cause error) error {
	switch stage {
	case errors.StageOptimize:
		return errors.NewOptimizationError(message, cause)
	case errors.StageTranslate:
		return errors.NewTranslationError(message, cause)
	default:
		return errors.NewGenerationError(stage, message, cause)
	}
}
