package command

import (
	"context"

	"github.com/kapu/ai-creative-studio-go/internal/adapter"
	"github.com/kapu/ai-creative-studio-go/internal/domain"
	"go.uber.org/zap"
)

type Command interface {
	Name() string
	Usage() string
	Description() string
	Execute(ctx context.Context, cmdCtx *domain.CommandContext, params map[string]any) error
}

// Pipeline is the orchestrator surface the commands drive.
type Pipeline interface {
	Optimize(ctx context.Context, sessionID, raw string) (*domain.OptimizedResult, error)
	GenerateImage(ctx context.Context, sessionID string) (*domain.ImageResult, error)
	GenerateVideo(ctx context.Context, sessionID string, durationSeconds, fps int) (*domain.VideoResult, error)
	State(ctx context.Context, sessionID string) (*domain.SessionState, error)
	Reset(ctx context.Context, sessionID string) error
}

type ImageSaver interface {
	SaveImage(requestID string, img *domain.GeneratedImage) (string, error)
}

type Dependencies struct {
	Pipeline    Pipeline
	Formatter   *adapter.ResponseFormatter
	Images      ImageSaver
	Registry    *Registry
	SendMessage func(sessionID, message string) error
	SendError   func(sessionID, message string) error
	Logger      *zap.Logger
}
