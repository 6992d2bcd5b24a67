package command

import (
	"context"

	"github.com/kapu/ai-creative-studio-go/internal/domain"
	"go.uber.org/zap"
)

type ImageCommand struct {
	deps *Dependencies
}

func NewImageCommand(deps *Dependencies) *ImageCommand {
	return &ImageCommand{deps: deps}
}

func (c *ImageCommand) Name() string {
	return "image"
}

func (c *ImageCommand) Usage() string {
	return "image"
}

func (c *ImageCommand) Description() string {
	return c.deps.Formatter.Labels().GenerateImage
}

func (c *ImageCommand) Execute(ctx context.Context, cmdCtx *domain.CommandContext, _ map[string]any) error {
	if err := ensureDeps(c.deps); err != nil {
		return err
	}

	_ = c.deps.SendMessage(cmdCtx.SessionID, c.deps.Formatter.FormatLoading())
	result, err := c.deps.Pipeline.GenerateImage(ctx, cmdCtx.SessionID)
	if err != nil {
		c.deps.Logger.Warn("Image command failed",
			zap.String("session_id", cmdCtx.SessionID),
			zap.Error(err),
		)
		return c.deps.SendError(cmdCtx.SessionID, c.deps.Formatter.FormatError(err))
	}

	savedPath := ""
	if c.deps.Images != nil {
		savedPath, err = c.deps.Images.SaveImage(cmdCtx.SessionID, result.Image)
		if err != nil {
			// The image itself was produced; only the local copy is missing.
			c.deps.Logger.Error("Failed to save generated image",
				zap.String("session_id", cmdCtx.SessionID),
				zap.Error(err),
			)
			savedPath = ""
		}
	}

	return c.deps.SendMessage(cmdCtx.SessionID, c.deps.Formatter.FormatImage(result, savedPath))
}
