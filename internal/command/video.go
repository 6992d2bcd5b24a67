package command

import (
	"context"
	"fmt"

	"github.com/kapu/ai-creative-studio-go/internal/constants"
	"github.com/kapu/ai-creative-studio-go/internal/domain"
	"go.uber.org/zap"
)

type VideoCommand struct {
	deps *Dependencies
}

func NewVideoCommand(deps *Dependencies) *VideoCommand {
	return &VideoCommand{deps: deps}
}

func (c *VideoCommand) Name() string {
	return "video"
}

func (c *VideoCommand) Usage() string {
	return fmt.Sprintf("video [%d-%d] [%d-%d]",
		constants.VideoLimits.MinDurationSeconds, constants.VideoLimits.MaxDurationSeconds,
		constants.VideoLimits.MinFPS, constants.VideoLimits.MaxFPS,
	)
}

func (c *VideoCommand) Description() string {
	labels := c.deps.Formatter.Labels()
	return fmt.Sprintf("%s (%s, %s)", labels.GenerateVideo, labels.VideoDuration, labels.VideoFPS)
}

func (c *VideoCommand) Execute(ctx context.Context, cmdCtx *domain.CommandContext, params map[string]any) error {
	if err := ensureDeps(c.deps); err != nil {
		return err
	}

	duration := intParam(params, "duration", constants.VideoDefaults.DurationSeconds)
	fps := intParam(params, "fps", constants.VideoDefaults.FPS)

	_ = c.deps.SendMessage(cmdCtx.SessionID, c.deps.Formatter.FormatLoading())
	result, err := c.deps.Pipeline.GenerateVideo(ctx, cmdCtx.SessionID, duration, fps)
	if err != nil {
		c.deps.Logger.Warn("Video command failed",
			zap.String("session_id", cmdCtx.SessionID),
			zap.Int("duration", duration),
			zap.Int("fps", fps),
			zap.Error(err),
		)
		return c.deps.SendError(cmdCtx.SessionID, c.deps.Formatter.FormatError(err))
	}

	return c.deps.SendMessage(cmdCtx.SessionID, c.deps.Formatter.FormatVideo(result))
}

func intParam(params map[string]any, key string, fallback int) int {
	switch v := params[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return fallback
	}
}
