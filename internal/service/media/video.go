package media

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/kapu/ai-creative-studio-go/internal/constants"
	"github.com/kapu/ai-creative-studio-go/internal/domain"
	"github.com/kapu/ai-creative-studio-go/internal/util"
	"github.com/kapu/ai-creative-studio-go/pkg/errors"
	"go.uber.org/zap"
)

// VideoSaver persists decoded video bytes and returns where they went.
type VideoSaver interface {
	Save(requestID, mimeType string, data []byte) (string, int64, error)
}

// VideoService turns a prompt in any language into a video file on disk.
type VideoService struct {
	translator Translator
	provider   Provider
	store      VideoSaver
	width      int
	height     int
	logger     *zap.Logger
}

func NewVideoService(translator Translator, provider Provider, store VideoSaver, width, height int, logger *zap.Logger) *VideoService {
	if width <= 0 {
		width = constants.VideoDefaults.Width
	}
	if height <= 0 {
		height = constants.VideoDefaults.Height
	}
	return &VideoService{
		translator: translator,
		provider:   provider,
		store:      store,
		width:      width,
		height:     height,
		logger:     logger,
	}
}

// ValidateVideoParams enforces the duration and frame-rate bounds.
func ValidateVideoParams(durationSeconds, fps int) error {
	limits := constants.VideoLimits
	if durationSeconds < limits.MinDurationSeconds || durationSeconds > limits.MaxDurationSeconds {
		return errors.NewValidationError("duration must be between 1 and 10 seconds", "duration_seconds", durationSeconds)
	}
	if fps < limits.MinFPS || fps > limits.MaxFPS {
		return errors.NewValidationError("fps must be between 12 and 60", "fps", fps)
	}
	return nil
}

// Generate validates the bounds before any remote call. requestID names the
// output file; an empty one gets a random id.
func (s *VideoService) Generate(ctx context.Context, prompt string, durationSeconds, fps int, requestID string) (*domain.VideoHandle, error) {
	if err := ValidateVideoParams(durationSeconds, fps); err != nil {
		return nil, errors.NewGenerationError(errors.StageVideo, "invalid video parameters", err)
	}
	if strings.TrimSpace(prompt) == "" {
		return nil, errors.NewGenerationError(errors.StageVideo, "video prompt is empty", errors.ErrEmptyInput)
	}
	if requestID == "" {
		requestID = uuid.NewString()
	}

	englishPrompt, err := s.translator.ToEnglish(ctx, prompt)
	if err != nil {
		return nil, errors.NewGenerationError(errors.StageVideo, "prompt translation failed", err)
	}

	s.logger.Debug("Requesting video",
		zap.String("provider", s.provider.Name()),
		zap.String("request_id", requestID),
		zap.String("prompt", util.TruncateString(englishPrompt, constants.LogLimits.PromptPreview)),
		zap.Int("duration", durationSeconds),
		zap.Int("fps", fps),
	)

	resp, err := s.provider.GenerateVideo(ctx, VideoRequest{
		Prompt:          englishPrompt,
		DurationSeconds: durationSeconds,
		FPS:             fps,
		Width:           s.width,
		Height:          s.height,
	})
	if err != nil {
		s.logger.Error("Video provider failed", zap.String("request_id", requestID), zap.Error(err))
		return nil, errors.NewGenerationError(errors.StageVideo, "video provider failed", err)
	}

	data, err := firstArtifact(resp)
	if err != nil {
		s.logger.Warn("Video response carried no usable artifact", zap.String("request_id", requestID), zap.Error(err))
		return nil, errors.NewGenerationError(errors.StageVideo, "video response carried no usable artifact", err)
	}

	mime := detectMIME(data)
	if !isVideoMIME(mime) {
		s.logger.Error("Video artifact is not a video container", zap.String("mime", mime.String()))
		return nil, errors.NewGenerationError(errors.StageVideo, "video decode failed: artifact is "+mime.String(), nil)
	}

	path, size, err := s.store.Save(requestID, mime.String(), data)
	if err != nil {
		s.logger.Error("Video write failed", zap.String("request_id", requestID), zap.Error(err))
		return nil, errors.NewGenerationError(errors.StageVideo, "video write failed", err)
	}

	appliedDuration, appliedFPS := durationSeconds, fps
	if resp.DurationSeconds > 0 {
		appliedDuration = resp.DurationSeconds
	}
	if resp.FPSIgnored {
		appliedFPS = 0
	}

	s.logger.Info("Video generated",
		zap.String("request_id", requestID),
		zap.String("path", path),
		zap.String("mime", mime.String()),
		zap.Int64("bytes", size),
		zap.Int("duration", appliedDuration),
		zap.Int("fps", appliedFPS),
	)

	return &domain.VideoHandle{
		Path:            path,
		MIMEType:        mime.String(),
		Size:            size,
		DurationSeconds: appliedDuration,
		FPS:             appliedFPS,
		EnglishPrompt:   englishPrompt,
	}, nil
}
